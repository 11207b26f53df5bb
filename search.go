// Adapted from original_source/src/diff.rs (djugei/ddelta-rs).

package sadelta

import "bytes"

// search performs the binary search over suffix-array interval [st, en]
// described in SPEC_FULL.md §4.2: it returns the length of the longer of the
// two common-prefix matches at the interval's endpoints once the interval
// has shrunk below two elements, recursing into the upper half on ties.
// This is a locally-longest, not globally-longest, common prefix — see
// SPEC_FULL.md §9, "Search is not an exact LCP".
//
// Faithful port of original_source/src/diff.rs's search/match_len/min_memcmp,
// including the caller-side one-byte truncation of old it relies on (see
// searchOld in generate.go's Generate) — spec.md is silent on this detail, so
// it is kept exactly as the original implements it.
func search(sa []int32, old, query []byte, st, en int) (length, pos int) {
	if en-st < 2 {
		x := matchLen(old[sa[st]:], query)
		y := matchLen(old[sa[en]:], query)
		if x > y {
			return x, int(sa[st])
		}
		return y, int(sa[en])
	}

	mid := st + (en-st)/2
	if minMemcmp(old[sa[mid]:], query) <= 0 {
		return search(sa, old, query, mid, en)
	}
	return search(sa, old, query, st, mid)
}

// matchLen returns the length of the common prefix of a and b.
func matchLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// minMemcmp compares the common-length prefix of a and b lexicographically:
// negative if that prefix of a sorts before b's, zero if equal, positive if
// after. When one slice is a prefix of the other they compare equal here,
// which is the "common-prefix compare" semantics SPEC_FULL.md §4.2 requires
// (shorter-is-smaller tie-breaking does not apply).
func minMemcmp(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	return bytes.Compare(a[:n], b[:n])
}
