// Adapted from original_source/src/diff.rs (djugei/ddelta-rs).

package sadelta

import (
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// fuzz is the tolerance window used by the pathology escape (see
// SPEC_FULL.md §4.3, §9) and by the accept condition. Part of the format's
// contract, not a tunable: re-tuning it requires re-deriving the accept
// constants (§9, "FUZZ and the 100-stuck escape").
const fuzz = 8

// maxStuck bounds how many consecutive inner-loop iterations may sit inside
// the FUZZ window before the generator gives up and emits a record anyway,
// to keep long near-identical plateaus (e.g. patched executables) from
// turning into a quadratic scan.
const maxStuck = 100

// Generate writes a single-patch ddelta stream reconstructing newBuf from old
// to w. Fails with ErrTooLarge if either buffer is larger than 2^31-1 bytes; use
// GenerateChunked for larger inputs. opts may be nil (DefaultGenerateOptions).
func Generate(old, newBuf []byte, w io.Writer, opts *GenerateOptions) error {
	if opts == nil {
		opts = DefaultGenerateOptions()
	}
	logger := resolveLogger(opts.Logger)

	if len(old) > maxSingleInputSize || len(newBuf) > maxSingleInputSize {
		return ErrTooLarge
	}

	reportProgress(opts, ProgressState{Phase: phaseSorting})
	sortStart := time.Now()
	sa := buildSuffixArray(old)
	logger.Debug("suffix array built",
		zap.Int("old_size", len(old)),
		zap.Duration("elapsed", time.Since(sortStart)))

	if err := writeFileHeader(w, uint64(len(newBuf))); err != nil {
		return err
	}

	// search compares against old truncated by one trailing byte; kept
	// exactly as original_source/src/diff.rs does (see search.go's doc
	// comment and DESIGN.md) even though spec.md does not call it out.
	searchOld := old
	if len(old) > 0 {
		searchOld = old[:len(old)-1]
	}

	g := &generateState{
		old:       old,
		newBuf:    newBuf,
		sa:        sa,
		searchOld: searchOld,
		w:         w,
		opts:      opts,
		logger:    logger,
	}
	entries := 0
	genStart := time.Now()

	for g.scan < len(newBuf) {
		if emitted, err := g.step(); err != nil {
			return err
		} else if emitted {
			entries++
		}
	}

	if err := writeEntryRecord(w, entryRecord{}); err != nil {
		return err
	}

	logger.Info("patch generated",
		zap.String("old_size", humanize.Bytes(uint64(len(old)))),
		zap.String("new_size", humanize.Bytes(uint64(len(newBuf)))),
		zap.Int("entries", entries),
		zap.Duration("elapsed", time.Since(genStart)))
	return nil
}

// generateState carries the scan cursor and anchor positions across outer
// iterations (SPEC_FULL.md §4.3). The init-then-advance shape — a struct
// whose fields persist across repeated calls to a stepping method — mirrors
// teacher match.go's initMatcher/advanceMatchFinder pairing, though the
// matching algorithm itself (suffix array vs. hash chains) is unrelated.
type generateState struct {
	old, newBuf []byte
	sa          []int32
	searchOld   []byte
	w           io.Writer
	opts        *GenerateOptions
	logger      *zap.Logger

	scan, matchLen, pos           int
	lastscan, lastpos, lastoffset int
}

// step advances scan by one outer-loop iteration: it runs the inner
// extension loop to find the next point worth emitting a record at, then
// emits that record. It reports whether a record was emitted (the very last
// outer iteration, when scan reaches len(newBuf) exactly on a byte that was
// already consumed by a prior accept, emits nothing new in principle, but in
// practice the scan==len(newBuf) emission condition always fires at least
// once per Generate call with newBuf non-empty).
func (g *generateState) step() (bool, error) {
	g.scan += g.matchLen
	scsc := g.scan
	oldscore := 0
	stuck := 0

	for g.scan < len(g.newBuf) {
		if g.scan%10_000 == 0 {
			reportProgress(g.opts, ProgressState{Phase: phaseWorking, BytesCompleted: uint64(g.scan)})
		}

		prevLen, prevOldscore, prevPos := g.matchLen, oldscore, g.pos

		g.matchLen, g.pos = search(g.sa, g.searchOld, g.newBuf[g.scan:], 0, len(g.sa)-1)

		for scsc < g.scan+g.matchLen {
			if scsc+g.lastoffset < len(g.old) && g.old[scsc+g.lastoffset] == g.newBuf[scsc] {
				oldscore++
			}
			scsc++
		}

		if (g.matchLen == oldscore && g.matchLen != 0) || g.matchLen > oldscore+fuzz {
			break
		}

		if g.scan+g.lastoffset < len(g.old) && g.old[g.scan+g.lastoffset] == g.newBuf[g.scan] {
			oldscore--
		}

		if prevLen-fuzz <= g.matchLen && g.matchLen <= prevLen &&
			prevOldscore-fuzz <= oldscore && oldscore <= prevOldscore &&
			prevPos <= g.pos && g.pos <= prevPos+fuzz &&
			oldscore <= g.matchLen && g.matchLen <= oldscore+fuzz {
			stuck++
		} else {
			stuck = 0
		}

		if stuck > maxStuck {
			g.logger.Warn("pathology escape triggered", zap.Int("scan", g.scan))
			break
		}

		g.scan++
	}

	if g.matchLen != oldscore || g.scan == len(g.newBuf) {
		return true, g.emit()
	}
	return false, nil
}

// emit performs the forward/backward extension and overlap resolution
// described in SPEC_FULL.md §4.3 and writes the resulting entry record plus
// its diff/extra payloads.
func (g *generateState) emit() error {
	old, newBuf := g.old, g.newBuf
	scan, pos := g.scan, g.pos
	lastscan, lastpos := g.lastscan, g.lastpos

	s, sf, lenf := 0, 0, 0
	for i := 0; lastscan+i < scan && lastpos+i < len(old); {
		if old[lastpos+i] == newBuf[lastscan+i] {
			s++
		}
		i++
		if s*2-i > sf*2-lenf {
			sf = s
			lenf = i
		}
	}

	lenb := 0
	if scan < len(newBuf) {
		s, sb := 0, 0
		for i := 1; scan >= lastscan+i && pos >= i; i++ {
			if old[pos-i] == newBuf[scan-i] {
				s++
			}
			if s*2-i > sb*2-lenb {
				sb = s
				lenb = i
			}
		}
	}

	if lastscan+lenf > scan-lenb {
		overlap := (lastscan + lenf) - (scan - lenb)
		s, ss, lens := 0, 0, 0
		for i := 0; i < overlap; i++ {
			if newBuf[lastscan+lenf-overlap+i] == old[lastpos+lenf-overlap+i] {
				s++
			}
			if newBuf[scan-lenb+i] == old[pos-lenb+i] {
				s--
			}
			if s > ss {
				ss = s
				lens = i + 1
			}
		}
		lenf += lens - overlap
		lenb -= lens
	}

	if lenf < 0 || (scan-lenb)-(lastscan+lenf) < 0 {
		return ErrInvariant
	}

	extra := (scan - lenb) - (lastscan + lenf)
	seek := (pos - lenb) - (lastpos + lenf)
	if scan == len(newBuf) {
		// No match follows the last record (pos is left over from an
		// earlier search), so the old cursor is not moved.
		seek = 0
	}

	if err := writeEntryRecord(g.w, entryRecord{
		Diff:  uint64(lenf),
		Extra: uint64(extra),
		Seek:  int64(seek),
	}); err != nil {
		return err
	}

	if lenf > 0 {
		diffPayload := make([]byte, lenf)
		for i := 0; i < lenf; i++ {
			diffPayload[i] = newBuf[lastscan+i] - old[lastpos+i]
		}
		if _, err := g.w.Write(diffPayload); err != nil {
			return err
		}
	}

	if extra > 0 {
		if _, err := g.w.Write(newBuf[lastscan+lenf : scan-lenb]); err != nil {
			return err
		}
	}

	g.lastscan = scan - lenb
	g.lastpos = pos - lenb
	g.lastoffset = pos - scan
	return nil
}

func reportProgress(opts *GenerateOptions, s ProgressState) {
	if opts != nil && opts.Progress != nil {
		opts.Progress(s)
	}
}
