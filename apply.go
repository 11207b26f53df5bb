// Adapted from original_source/src/patch.rs (djugei/ddelta-rs).

package sadelta

import (
	"io"

	"go.uber.org/zap"
)

// blockSize bounds the scratch buffers applyDiff/copyBytes use, so the
// applier never holds a whole file resident (SPEC_FULL.md §4.4). Grounded
// on original_source/src/patch.rs's BLOCK_SIZE constant (32 KiB).
const blockSize = 32 * 1024

// Apply reconstructs new from old using a single-patch ddelta stream read
// from patch, writing the result to w. old must support Seek because entry
// records advance oldcursor by a signed relative offset (SPEC_FULL.md §4.4).
// opts may be nil (DefaultApplyOptions).
//
// Apply is not compatible with streams written by GenerateChunked; use
// ApplyChunked for those.
func Apply(old io.ReadSeeker, patch io.Reader, w io.Writer, opts *ApplyOptions) error {
	if opts == nil {
		opts = DefaultApplyOptions()
	}
	logger := resolveLogger(opts.Logger)

	header, err := readFileHeader(patch)
	if err != nil {
		return err
	}
	return applyWithHeader(old, w, patch, header, logger)
}

func applyWithHeader(old io.ReadSeeker, w io.Writer, patch io.Reader, header fileHeader, logger *zap.Logger) error {
	if header.Magic != DDeltaMagic {
		return ErrMagicMismatch
	}

	logger.Debug("applying sub-patch", zap.Uint64("new_file_size", header.NewFileSize))

	var bytesWritten uint64
	for {
		entry, err := readEntryRecord(patch)
		if err != nil {
			return err
		}

		if entry.isTerminator() {
			if bytesWritten != header.NewFileSize {
				return ErrSizeMismatch
			}
			return nil
		}

		if err := applyDiff(patch, old, w, entry.Diff); err != nil {
			return err
		}
		if err := copyBytes(patch, w, entry.Extra); err != nil {
			return err
		}
		if entry.Seek != 0 {
			if _, err := old.Seek(entry.Seek, io.SeekCurrent); err != nil {
				return err
			}
		}

		bytesWritten += entry.Diff + entry.Extra
	}
}

// applyDiff reads size bytes from patch and from old, writes their
// byte-wise wrapping sum to w, and advances both readers by size.
func applyDiff(patch io.Reader, old io.Reader, w io.Writer, size uint64) error {
	var oldBuf, patchBuf [blockSize]byte
	for size > 0 {
		n := blockSize
		if uint64(n) > size {
			n = int(size)
		}
		oldChunk, patchChunk := oldBuf[:n], patchBuf[:n]

		if err := readFull(patch, patchChunk); err != nil {
			return err
		}
		if err := readFull(old, oldChunk); err != nil {
			return err
		}

		for i := range oldChunk {
			oldChunk[i] += patchChunk[i] // byte add wraps mod 256
		}
		if _, err := w.Write(oldChunk); err != nil {
			return err
		}

		size -= uint64(n)
	}
	return nil
}

// copyBytes copies n bytes verbatim from src to dst in blockSize chunks.
func copyBytes(src io.Reader, dst io.Writer, n uint64) error {
	var buf [blockSize]byte
	for n > 0 {
		chunkLen := blockSize
		if uint64(chunkLen) > n {
			chunkLen = int(n)
		}
		chunk := buf[:chunkLen]

		if err := readFull(src, chunk); err != nil {
			return err
		}
		if _, err := dst.Write(chunk); err != nil {
			return err
		}

		n -= uint64(chunkLen)
	}
	return nil
}
