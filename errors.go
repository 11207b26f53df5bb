package sadelta

import "errors"

// Sentinel errors for patch generation and application.
var (
	// ErrTooLarge is returned by Generate when either side is >= 2^31 bytes;
	// use the chunked driver instead.
	ErrTooLarge = errors.New("sadelta: input exceeds single-patch size limit (2^31-1 bytes); use the chunked driver")
	// ErrInvariant is returned when the forward/backward/overlap extension
	// computation yields a negative span. This indicates a bug in the
	// generator, not bad input.
	ErrInvariant = errors.New("sadelta: internal invariant violation during patch generation")
	// ErrMagicMismatch is returned by Apply/ApplyChunked when a patch header's
	// magic does not match DDeltaMagic.
	ErrMagicMismatch = errors.New("sadelta: patch header magic mismatch")
	// ErrPatchTruncated is returned when the patch stream ends before a
	// record, its payload, or the terminator is fully read.
	ErrPatchTruncated = errors.New("sadelta: patch stream truncated")
	// ErrSizeMismatch is returned when bytes written at the terminator does
	// not equal the header's declared new_file_size.
	ErrSizeMismatch = errors.New("sadelta: bytes written does not match declared new file size")
)
