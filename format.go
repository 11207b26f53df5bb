// Adapted from original_source/src/diff.rs and src/patch.rs (djugei/ddelta-rs),
// which define the PatchHeader/EntryHeader wire layout this file encodes.

package sadelta

import (
	"encoding/binary"
	"io"
)

// DDeltaMagic identifies the patch format on the wire. Shared with the
// reference ddelta tool (see original_source/src/diff.rs, DDELTA_MAGIC) so
// single (non-chunked) patches stay byte-compatible with it.
var DDeltaMagic = [8]byte{'D', 'D', 'E', 'L', 'T', 'A', '1', 0}

const (
	fileHeaderSize = 8 + 8  // magic + new_file_size
	entryRecordSize = 8 + 8 + 8 // diff + extra + seek

	// maxSingleInputSize is the largest old/new buffer Generate will accept
	// before requiring the chunked driver (2^31-1, see SPEC_FULL.md §7).
	maxSingleInputSize = 1<<31 - 1
)

// fileHeader is the 16-byte header (magic[8] + new_file_size uint64)
// preceding every sub-patch. See DESIGN.md, "Open Question resolutions" for
// why this is 16 bytes despite spec.md's header label: the field list is
// packed/no-padding per spec.md and sums to 16; original_source's
// PatchHeader carries the same two fields.
type fileHeader struct {
	Magic       [8]byte
	NewFileSize uint64
}

// entryRecord is one 24-byte (diff, extra, seek) triple. The all-zero
// record is the sub-patch terminator.
type entryRecord struct {
	Diff  uint64
	Extra uint64
	Seek  int64
}

func (e entryRecord) isTerminator() bool {
	return e.Diff == 0 && e.Extra == 0 && e.Seek == 0
}

func writeFileHeader(w io.Writer, newFileSize uint64) error {
	var buf [fileHeaderSize]byte
	copy(buf[:8], DDeltaMagic[:])
	binary.LittleEndian.PutUint64(buf[8:16], newFileSize)
	_, err := w.Write(buf[:])
	return err
}

func readFileHeader(r io.Reader) (fileHeader, error) {
	var buf [fileHeaderSize]byte
	if err := readFull(r, buf[:]); err != nil {
		return fileHeader{}, err
	}

	var h fileHeader
	copy(h.Magic[:], buf[:8])
	h.NewFileSize = binary.LittleEndian.Uint64(buf[8:16])
	return h, nil
}

func writeEntryRecord(w io.Writer, e entryRecord) error {
	var buf [entryRecordSize]byte
	binary.LittleEndian.PutUint64(buf[0:8], e.Diff)
	binary.LittleEndian.PutUint64(buf[8:16], e.Extra)
	binary.LittleEndian.PutUint64(buf[16:24], uint64(e.Seek))
	_, err := w.Write(buf[:])
	return err
}

func readEntryRecord(r io.Reader) (entryRecord, error) {
	var buf [entryRecordSize]byte
	if err := readFull(r, buf[:]); err != nil {
		return entryRecord{}, err
	}

	return entryRecord{
		Diff:  binary.LittleEndian.Uint64(buf[0:8]),
		Extra: binary.LittleEndian.Uint64(buf[8:16]),
		Seek:  int64(binary.LittleEndian.Uint64(buf[16:24])),
	}, nil
}

// readFull reads exactly len(buf) bytes, retrying on short reads, and maps
// any EOF before buf is full to ErrPatchTruncated. Unlike io.ReadFull it
// never returns io.EOF/io.ErrUnexpectedEOF directly, so chunked-mode callers
// that need to distinguish "clean EOF at a header boundary" from "truncated
// mid-record" must use readFullAllowEOF for header reads instead.
func readFull(r io.Reader, buf []byte) error {
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if n == 0 && err == io.EOF {
			return ErrPatchTruncated
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrPatchTruncated
		}
		return err
	}
	return nil
}

// readFullAllowEOF behaves like readFull but returns io.EOF verbatim when
// zero bytes were read before hitting end of stream — the "clean EOF at a
// header boundary" case the chunked applier treats as normal termination
// (see SPEC_FULL.md §15, ApplyChunked).
func readFullAllowEOF(r io.Reader, buf []byte) error {
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if n == 0 && err == io.EOF {
			return io.EOF
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrPatchTruncated
		}
		return err
	}
	return nil
}
