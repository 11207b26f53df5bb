// Construction contract (not the algorithm) follows original_source/src/diff.rs's
// use of divsufsort (djugei/ddelta-rs); no Go binding for it exists in this
// module's dependency set, so the sort itself is rank-doubling, not a port.

package sadelta

import "sort"

// buildSuffixArray builds the suffix array of old: a permutation of
// [0, len(old)) such that the suffixes old[sa[i]:] are lexicographically
// non-decreasing, followed by the synthetic terminal 0 (see SPEC_FULL.md
// §4.1 and §9, "Sentinel in the suffix array"). The returned slice always
// has length len(old)+1.
//
// No third-party suffix-array construction library is available anywhere in
// this module's dependency pack (see DESIGN.md), so this hand-rolls the
// classic Manber-Myers rank-doubling construction: O(log n) rounds, each
// sorting by the current rank pair in O(n log n), for O(n log²n) overall.
// This is a conscious simplicity tradeoff over the asymptotically optimal
// but substantially more intricate SA-IS/DC3 family (see DESIGN.md, "Open
// Question resolutions").
func buildSuffixArray(old []byte) []int32 {
	n := len(old)
	if n == 0 {
		return []int32{0}
	}

	scratch := acquireSortScratch(n)
	defer releaseSortScratch(scratch)
	rank, tmp := scratch.rank, scratch.tmp

	sa := make([]int32, n)
	for i := 0; i < n; i++ {
		sa[i] = int32(i)
		rank[i] = int32(old[i])
	}

	for k := 1; ; k *= 2 {
		rankAt := func(pos int32) int32 {
			if int(pos)+k >= n {
				return -1
			}
			return rank[pos+int32(k)]
		}
		less := func(a, b int32) bool {
			if rank[a] != rank[b] {
				return rank[a] < rank[b]
			}
			return rankAt(a) < rankAt(b)
		}

		sort.Slice(sa, func(i, j int) bool { return less(sa[i], sa[j]) })

		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			tmp[sa[i]] = tmp[sa[i-1]]
			if less(sa[i-1], sa[i]) {
				tmp[sa[i]]++
			}
		}
		copy(rank, tmp)

		if int(rank[sa[n-1]]) == n-1 || k >= n {
			break
		}
	}

	return append(sa, 0)
}
