package sadelta

// ChunkProfile names a tradeoff between RAM use and patch quality for the
// chunked driver (see GenerateOptions.ChunkSize). Smaller chunks bound peak
// memory tighter (roughly 6x chunk size, see SPEC_FULL.md §5) at the cost of
// more sub-patch headers and less cross-chunk match opportunity; larger
// chunks do the opposite.
type ChunkProfile struct {
	// Name is a short human-readable label, e.g. for log lines and CLI help.
	Name string
	// Description explains the tradeoff this profile makes.
	Description string
	// ChunkSize is the window size passed to GenerateChunked through
	// GenerateOptions.ChunkSize.
	ChunkSize int
}

// Named chunk profiles, analogous in spirit to teacher's fixedLevels table
// (level_params.go) but with one real tunable knob instead of six: a
// suffix-array diff generator has no hash-chain depth or lazy-match budget
// to tune, only how much of each side it holds resident at once.
var (
	// FastChunkProfile favors low memory and fast turnaround over patch
	// size, for memory-constrained embedding or very large files.
	FastChunkProfile = ChunkProfile{
		Name:        "fast",
		Description: "1 MiB chunks: lowest RAM, more sub-patch overhead",
		ChunkSize:   1 << 20,
	}
	// BalancedChunkProfile is the default: a reasonable compromise for most
	// inputs up to a few hundred megabytes per side.
	BalancedChunkProfile = ChunkProfile{
		Name:        "balanced",
		Description: "16 MiB chunks: default tradeoff",
		ChunkSize:   16 << 20,
	}
	// MaxChunkProfile favors patch quality, accepting higher peak RAM, by
	// using the largest chunk size still safely below the single-patch
	// 2^31-1 byte limit.
	MaxChunkProfile = ChunkProfile{
		Name:        "max",
		Description: "near-2^31 chunks: best patch quality, highest RAM",
		ChunkSize:   maxChunkSize,
	}
)
