package sadelta

import "go.uber.org/zap"

// resolveLogger returns logger if non-nil, otherwise a no-op logger. Callers
// of this package's generator/applier/chunked entry points may leave
// GenerateOptions.Logger / ApplyOptions.Logger nil; nothing in this package
// requires a configured logger to function correctly (see SPEC_FULL.md §10:
// logging here is diagnostic, never load-bearing).
func resolveLogger(logger *zap.Logger) *zap.Logger {
	if logger != nil {
		return logger
	}
	return zap.NewNop()
}
