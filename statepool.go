package sadelta

import "sync"

// sortScratch holds the rank/tmp scratch slices buildSuffixArray needs. It is
// pooled because GenerateChunked calls buildSuffixArray once per chunk with
// the same chunk size, and re-allocating two int32 slices of chunk-size
// length every chunk is wasted work the teacher's own sliding_window_pool.go
// avoids for its match-finder state in the same way.
type sortScratch struct {
	rank []int32
	tmp  []int32
}

var sortScratchPool = sync.Pool{
	New: func() any {
		return &sortScratch{}
	},
}

// acquireSortScratch returns a sortScratch whose rank/tmp slices have length
// n, reusing pooled backing arrays when they are already large enough.
func acquireSortScratch(n int) *sortScratch {
	s := sortScratchPool.Get().(*sortScratch)
	if cap(s.rank) < n {
		s.rank = make([]int32, n)
	} else {
		s.rank = s.rank[:n]
	}
	if cap(s.tmp) < n {
		s.tmp = make([]int32, n)
	} else {
		s.tmp = s.tmp[:n]
	}
	return s
}

func releaseSortScratch(s *sortScratch) {
	if s == nil {
		return
	}
	sortScratchPool.Put(s)
}
