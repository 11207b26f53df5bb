package sadelta

import "go.uber.org/zap"

// ProgressState is the phase reported to a GenerateOptions.Progress callback.
type ProgressState struct {
	// Phase is one of "reading", "sorting", or "working".
	Phase string
	// BytesCompleted is only meaningful when Phase == "working": the number
	// of new-file bytes scanned so far (cumulative across chunks, for the
	// chunked driver).
	BytesCompleted uint64
}

const (
	phaseReading = "reading"
	phaseSorting = "sorting"
	phaseWorking = "working"
)

// ProgressFunc receives periodic ProgressState updates during Generate and
// GenerateChunked. It is always called from the goroutine driving the
// generator; implementations must not call back into the generator from it.
type ProgressFunc func(ProgressState)

// GenerateOptions configures patch generation.
type GenerateOptions struct {
	// ChunkSize bounds RAM use for GenerateChunked (ignored by Generate,
	// which never splits its input). Capped at 2^31-2. Zero means the
	// default chunk profile (see BalancedChunkProfile).
	//
	// The wire format does not record ChunkSize and ApplyChunked takes none:
	// it starts each sub-patch at the old offset equal to the output written
	// so far, which is where GenerateChunked's matching old window began
	// (see DESIGN.md, "Open Question resolutions").
	ChunkSize int
	// Progress, if non-nil, is invoked with phase transitions.
	Progress ProgressFunc
	// Logger receives structured diagnostics (sort timing, pathology-escape
	// warnings, per-chunk boundaries). A nil Logger falls back to a no-op
	// logger.
	Logger *zap.Logger
}

// DefaultGenerateOptions returns options using the Balanced chunk profile, no
// progress callback, and a no-op logger.
func DefaultGenerateOptions() *GenerateOptions {
	return &GenerateOptions{ChunkSize: BalancedChunkProfile.ChunkSize}
}

// ApplyOptions configures patch application.
type ApplyOptions struct {
	// Logger receives structured diagnostics. A nil Logger falls back to a
	// no-op logger.
	Logger *zap.Logger
}

// DefaultApplyOptions returns options with a no-op logger.
func DefaultApplyOptions() *ApplyOptions {
	return &ApplyOptions{}
}
