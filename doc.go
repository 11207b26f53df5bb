/*
Package sadelta implements suffix-array binary delta patching in the
bsdiff/ddelta tradition: it produces and consumes patches that encode an old
and a new byte sequence as a run of (diff, extra, seek) records rather than a
strict edit script, exploiting coarse-grained similarity between the two
inputs.

The core match finder builds a suffix array over the old buffer and, for
each position in the new buffer, binary-searches it for the longest
locally-matching old substring; matches are extended forward and backward
and encoded as a byte-wise wrapping difference plus a literal run. The
applier reverses this in a single streaming pass.

# Generate

Old and new must each be at most 2^31-1 bytes:

	var patch bytes.Buffer
	err := sadelta.Generate(old, newBuf, &patch, nil)

For larger inputs, use the chunked driver, which produces an independent
sub-patch per window of the input instead of a single patch:

	err := sadelta.GenerateChunked(oldFile, newFile, &patch, &sadelta.GenerateOptions{
		ChunkSize: sadelta.BalancedChunkProfile.ChunkSize,
	})

# Apply

	var out bytes.Buffer
	err := sadelta.Apply(bytes.NewReader(old), &patch, &out, nil)

A patch produced by GenerateChunked must be applied with ApplyChunked, and
vice versa — the two wire formats are not interchangeable:

	err := sadelta.ApplyChunked(oldFile, &patch, newFile, nil)

# Progress and logging

GenerateOptions.Progress receives Reading/Sorting/Working phase updates;
GenerateOptions.Logger and ApplyOptions.Logger accept a *zap.Logger for
diagnostic logging (sort timing, pathology-escape warnings, per-chunk
boundaries). Both are optional.
*/
package sadelta
