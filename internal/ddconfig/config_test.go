package ddconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kralamoure/sadelta/internal/ddconfig"
)

func Test_Load_Returns_Defaults_When_File_Missing(t *testing.T) {
	t.Parallel()

	cfg, err := ddconfig.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ddconfig.DefaultDriverConfig(), cfg)
}

func Test_Load_Overlays_Present_Fields_Only(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sadelta.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunk_size: 1048576\n"), 0o600))

	cfg, err := ddconfig.Load(path)
	require.NoError(t, err)

	want := ddconfig.DefaultDriverConfig()
	want.ChunkSize = 1 << 20
	assert.Equal(t, want, cfg)
}

func Test_Load_Rejects_Unparsable_Yaml(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sadelta.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunk_size: [this is not a scalar\n"), 0o600))

	_, err := ddconfig.Load(path)
	assert.Error(t, err)
}

func Test_Load_Rejects_Non_Positive_Chunk_Size(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		yaml string
	}{
		{name: "Zero", yaml: "chunk_size: 0\n"},
		{name: "Negative", yaml: "chunk_size: -1\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "sadelta.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.yaml), 0o600))

			_, err := ddconfig.Load(path)
			assert.Error(t, err)
		})
	}
}

func Test_Load_Full_Override(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sadelta.yaml")
	content := "chunk_size: 2097152\n" +
		"log_level: debug\n" +
		"old_path: old.bin\n" +
		"new_path: new.bin\n" +
		"patch_path: out.patch\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := ddconfig.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ddconfig.DriverConfig{
		ChunkSize: 2 << 20,
		LogLevel:  "debug",
		OldPath:   "old.bin",
		NewPath:   "new.bin",
		PatchPath: "out.patch",
	}, cfg)
}
