// Adapted from original_source/src/diff.rs::generate_chunked and
// original_source/src/patch.rs::apply_chunked (djugei/ddelta-rs).

package sadelta

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"
)

// maxChunkSize is the largest ChunkSize GenerateChunked will honor
// (SPEC_FULL.md §6, spec.md's "capped at 2^31-2").
const maxChunkSize = 1<<31 - 2

// GenerateChunked writes a chunked ddelta stream: one independent sub-patch
// per ChunkSize-sized window of old/newR, concatenated. It has no 2^31-1
// input-size limit, unlike Generate, but its output is a different format —
// ApplyChunked, not Apply, must be used to consume it (SPEC_FULL.md §4.5).
//
// GenerateChunked reads newR to completion in ChunkSize windows and emits
// one sub-patch per window. For each window it reads the matching window of
// old, which may be shorter than ChunkSize, or empty once old is exhausted;
// bytes of old beyond the last window of newR are never read. This is the
// same read-loop contract original_source/src/diff.rs's generate_chunked
// implements.
//
// opts may be nil. ChunkSize <= 0 uses BalancedChunkProfile; values above
// maxChunkSize are clamped.
func GenerateChunked(old, newR io.Reader, w io.Writer, opts *GenerateOptions) error {
	if opts == nil {
		opts = DefaultGenerateOptions()
	}
	logger := resolveLogger(opts.Logger)

	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = BalancedChunkProfile.ChunkSize
	}
	if chunkSize > maxChunkSize {
		chunkSize = maxChunkSize
	}

	oldBuf := make([]byte, chunkSize)
	newBuf := make([]byte, chunkSize)

	var bytesCompleted uint64
	chunkIndex := 0
	for {
		reportProgress(opts, ProgressState{Phase: phaseReading})
		newRead, err := readUpTo(newR, newBuf)
		if err != nil {
			return err
		}
		newChunk := newBuf[:newRead]

		if len(newChunk) == 0 {
			if bytesCompleted == 0 {
				// Empty input still produces a well-formed (empty) patch.
				if err := writeFileHeader(w, 0); err != nil {
					return err
				}
				if err := writeEntryRecord(w, entryRecord{}); err != nil {
					return err
				}
			}
			break
		}

		oldRead, err := readUpTo(old, oldBuf)
		if err != nil {
			return err
		}
		oldChunk := oldBuf[:oldRead]

		chunkOpts := &GenerateOptions{
			Logger: opts.Logger,
		}
		if opts.Progress != nil {
			offset := bytesCompleted
			chunkOpts.Progress = func(s ProgressState) {
				if s.Phase == phaseWorking {
					s.BytesCompleted += offset
				}
				opts.Progress(s)
			}
		}

		logger.Debug("generating sub-patch",
			zap.Int("chunk_index", chunkIndex),
			zap.Int("old_bytes", len(oldChunk)),
			zap.Int("new_bytes", len(newChunk)))

		if err := Generate(oldChunk, newChunk, w, chunkOpts); err != nil {
			return err
		}

		bytesCompleted += uint64(len(newChunk))
		chunkIndex++
	}

	return nil
}

// readUpTo fills buf as far as it can from r, stopping at EOF instead of
// treating it as an error (bytes.Reader/io.Reader contract; unlike
// readFull/readFullAllowEOF this is for the chunked generator's read side,
// not the applier's). Grounded on original_source/src/diff.rs's
// read_up_to, which likewise loops on short reads and only stops at a
// genuine zero-byte read.
func readUpTo(r io.Reader, buf []byte) (int, error) {
	var n int
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			if err == io.EOF {
				return n, nil
			}
			return n, err
		}
		if m == 0 {
			return n, nil
		}
	}
	return n, nil
}

// ApplyChunked reconstructs new from old using a chunked ddelta stream
// produced by GenerateChunked. old must support Seek: each sub-patch
// restarts old at the cumulative new-file offset written so far, since
// GenerateChunked pairs matching windows of old and newR
// (SPEC_FULL.md §4.5). Not compatible with streams written by Generate; use
// Apply for those.
func ApplyChunked(old io.ReadSeeker, patch io.Reader, w io.Writer, opts *ApplyOptions) error {
	if opts == nil {
		opts = DefaultApplyOptions()
	}
	logger := resolveLogger(opts.Logger)

	var bytesWritten uint64
	for {
		header, err := readChunkHeader(patch)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		if _, err := old.Seek(int64(bytesWritten), io.SeekStart); err != nil {
			return err
		}
		bytesWritten += header.NewFileSize

		logger.Debug("applying sub-patch", zap.Uint64("new_file_size", header.NewFileSize))

		if err := applyWithHeader(old, w, patch, header, logger); err != nil {
			return err
		}
	}
}

// readChunkHeader reads one fileHeader, returning io.EOF verbatim (not
// wrapped) when the stream ends cleanly at a header boundary — the normal
// termination condition for a chunked stream (spec.md's "presence of
// further bytes after a terminator indicates another sub-patch header
// follows").
func readChunkHeader(r io.Reader) (fileHeader, error) {
	var buf [fileHeaderSize]byte
	if err := readFullAllowEOF(r, buf[:]); err != nil {
		return fileHeader{}, err
	}

	var h fileHeader
	copy(h.Magic[:], buf[:8])
	h.NewFileSize = binary.LittleEndian.Uint64(buf[8:16])
	return h, nil
}

// GenerateFileChunked computes a chunked ddelta patch from the files at
// oldPath/newPath and atomically writes it to patchPath — either the
// complete patch appears at patchPath or (on error, or on an interrupted
// process) the previous contents do, never a half-written file. Grounded on
// github.com/natefinch/atomic, part of the teacher's pack-wide dependency
// surface (see DESIGN.md).
func GenerateFileChunked(oldPath, newPath, patchPath string, opts *GenerateOptions) error {
	oldF, err := os.Open(oldPath)
	if err != nil {
		return err
	}
	defer oldF.Close()

	newF, err := os.Open(newPath)
	if err != nil {
		return err
	}
	defer newF.Close()

	var buf bytes.Buffer
	if err := GenerateChunked(oldF, newF, &buf, opts); err != nil {
		return err
	}

	return atomic.WriteFile(patchPath, &buf)
}
