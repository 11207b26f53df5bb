// Package ddconfig loads YAML driver configuration for the sadelta CLI-style
// entry points (chunk size, log level, default paths). It mirrors the
// precedence-based config loading shape used across calvinalkan-agent-task's
// config.go, adapted from JSONC/hujson to gopkg.in/yaml.v3.
package ddconfig

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// errChunkSizeInvalid is returned when the merged ChunkSize is not positive.
var errChunkSizeInvalid = errors.New("ddconfig: chunk_size must be positive")

// DriverConfig is the declarative, file-loadable configuration for a
// sadelta driver program: the generator/applier CLI wrapping this package's
// Generate/Apply/GenerateChunked/ApplyChunked functions.
type DriverConfig struct {
	// ChunkSize is the GenerateOptions.ChunkSize used by GenerateChunked.
	ChunkSize int `yaml:"chunk_size,omitempty"`
	// LogLevel is a zapcore.Level name ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level,omitempty"`
	// OldPath, NewPath, PatchPath are the default file locations a driver
	// program operates on when not overridden on the command line.
	OldPath   string `yaml:"old_path,omitempty"`
	NewPath   string `yaml:"new_path,omitempty"`
	PatchPath string `yaml:"patch_path,omitempty"`
}

// DefaultDriverConfig returns the zero-configuration defaults: the Balanced
// chunk profile and "info" logging.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		ChunkSize: 16 << 20,
		LogLevel:  "info",
	}
}

// Load reads a YAML config file at path and overlays it onto
// DefaultDriverConfig. A missing file is not an error: Load returns the
// defaults unchanged. A present-but-unparsable file is.
func Load(path string) (DriverConfig, error) {
	cfg := DefaultDriverConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is caller-controlled, same as calvinalkan-agent-task's loadConfigFile
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return DriverConfig{}, fmt.Errorf("ddconfig: read %s: %w", path, err)
	}

	var overlay DriverConfig
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return DriverConfig{}, fmt.Errorf("ddconfig: parse %s: %w", path, err)
	}

	cfg = merge(cfg, overlay)

	// merge cannot tell "chunk_size: 0" from an absent key; a present
	// chunk_size is applied here so that validate sees it.
	var present struct {
		ChunkSize *int `yaml:"chunk_size"`
	}
	if err := yaml.Unmarshal(data, &present); err == nil && present.ChunkSize != nil {
		cfg.ChunkSize = *present.ChunkSize
	}

	if err := validate(cfg); err != nil {
		return DriverConfig{}, fmt.Errorf("ddconfig: %s: %w", path, err)
	}
	return cfg, nil
}

func merge(base, overlay DriverConfig) DriverConfig {
	if overlay.ChunkSize != 0 {
		base.ChunkSize = overlay.ChunkSize
	}
	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}
	if overlay.OldPath != "" {
		base.OldPath = overlay.OldPath
	}
	if overlay.NewPath != "" {
		base.NewPath = overlay.NewPath
	}
	if overlay.PatchPath != "" {
		base.PatchPath = overlay.PatchPath
	}
	return base
}

func validate(cfg DriverConfig) error {
	if cfg.ChunkSize <= 0 {
		return errChunkSizeInvalid
	}
	return nil
}
