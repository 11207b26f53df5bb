package sadelta

import (
	"bytes"
	"math/rand"
	"testing"
)

func readEntries(t *testing.T, patch []byte) ([]entryRecord, fileHeader) {
	t.Helper()

	r := bytes.NewReader(patch)
	header, err := readFileHeader(r)
	if err != nil {
		t.Fatalf("readFileHeader: %v", err)
	}

	var entries []entryRecord
	for {
		e, err := readEntryRecord(r)
		if err != nil {
			t.Fatalf("readEntryRecord: %v", err)
		}
		if e.isTerminator() {
			break
		}
		entries = append(entries, e)

		skip := make([]byte, e.Diff+e.Extra)
		if _, err := r.Read(skip); err != nil {
			t.Fatalf("skip payload: %v", err)
		}
	}
	return entries, header
}

func TestGenerate_IdenticalBuffers(t *testing.T) {
	old := []byte("abcdef")
	newBuf := []byte("abcdef")

	var patch bytes.Buffer
	if err := Generate(old, newBuf, &patch, nil); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	entries, header := readEntries(t, patch.Bytes())
	if header.NewFileSize != 6 {
		t.Fatalf("NewFileSize = %d, want 6", header.NewFileSize)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1: %+v", len(entries), entries)
	}
	e := entries[0]
	if e.Diff != 6 || e.Extra != 0 || e.Seek != 0 {
		t.Fatalf("entry = %+v, want {Diff:6 Extra:0 Seek:0}", e)
	}
}

func TestGenerate_EmptyOld(t *testing.T) {
	old := []byte{}
	newBuf := []byte("hello")

	var patch bytes.Buffer
	if err := Generate(old, newBuf, &patch, nil); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	entries, _ := readEntries(t, patch.Bytes())
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1: %+v", len(entries), entries)
	}
	e := entries[0]
	if e.Diff != 0 || e.Extra != 5 || e.Seek != 0 {
		t.Fatalf("entry = %+v, want {Diff:0 Extra:5 Seek:0}", e)
	}
}

func TestGenerate_SingleByteChange_PatchSmallerThanDoubleNew(t *testing.T) {
	old := []byte("abcdef")
	newBuf := []byte("ab!def")

	var patch bytes.Buffer
	if err := Generate(old, newBuf, &patch, nil); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if patch.Len() >= 2*len(newBuf) {
		t.Fatalf("patch size %d not < 2*len(new) = %d", patch.Len(), 2*len(newBuf))
	}

	var out bytes.Buffer
	if err := Apply(bytes.NewReader(old), bytes.NewReader(patch.Bytes()), &out, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !bytes.Equal(out.Bytes(), newBuf) {
		t.Fatalf("round-trip mismatch: got %q, want %q", out.Bytes(), newBuf)
	}
}

func TestGenerate_RearrangedBuffers_RoundTrip(t *testing.T) {
	old := []byte("xyzabc")
	newBuf := []byte("abcxyz")

	var patch bytes.Buffer
	if err := Generate(old, newBuf, &patch, nil); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var out bytes.Buffer
	if err := Apply(bytes.NewReader(old), bytes.NewReader(patch.Bytes()), &out, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !bytes.Equal(out.Bytes(), newBuf) {
		t.Fatalf("round-trip mismatch: got %q, want %q", out.Bytes(), newBuf)
	}
}

func TestGenerate_SelfPatchIsASingleZeroExtentRecord(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog"), 37)

	var patch bytes.Buffer
	if err := Generate(data, data, &patch, nil); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	entries, _ := readEntries(t, patch.Bytes())
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1: %+v", len(entries), entries)
	}
	if entries[0].Diff != uint64(len(data)) || entries[0].Extra != 0 {
		t.Fatalf("entry = %+v, want Diff=%d Extra=0", entries[0], len(data))
	}
}

func TestGenerate_RoundTripRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 20; i++ {
		old := randBytes(rng, rng.Intn(4000))
		newBuf := mutate(rng, old, rng.Intn(4000))

		var patch bytes.Buffer
		if err := Generate(old, newBuf, &patch, nil); err != nil {
			t.Fatalf("case %d: Generate: %v", i, err)
		}

		var out bytes.Buffer
		if err := Apply(bytes.NewReader(old), bytes.NewReader(patch.Bytes()), &out, nil); err != nil {
			t.Fatalf("case %d: Apply: %v", i, err)
		}
		if !bytes.Equal(out.Bytes(), newBuf) {
			t.Fatalf("case %d: round-trip mismatch: got %d bytes, want %d", i, out.Len(), len(newBuf))
		}
	}
}

func randBytes(rng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	rng.Read(b)
	return b
}

// mutate derives a new buffer of length n from base by sampling bytes from
// base at random offsets (simulating coarse-grained similarity) and
// occasionally substituting a random byte.
func mutate(rng *rand.Rand, base []byte, n int) []byte {
	out := make([]byte, n)
	if len(base) == 0 {
		rng.Read(out)
		return out
	}
	pos := rng.Intn(len(base))
	for i := range out {
		if rng.Intn(20) == 0 {
			out[i] = byte(rng.Intn(256))
			pos = rng.Intn(len(base))
			continue
		}
		out[i] = base[pos]
		pos++
		if pos >= len(base) {
			pos = 0
		}
	}
	return out
}

func TestGenerate_SingleInputSizeLimit(t *testing.T) {
	// Allocating 2^31 bytes is not practical in a unit test, so this checks
	// only that the limit Generate enforces is 2^31-1 bytes; the rejection
	// path itself is not exercised.
	if maxSingleInputSize != 1<<31-1 {
		t.Fatalf("maxSingleInputSize = %d, want %d", maxSingleInputSize, 1<<31-1)
	}
}
