package levenshtein

import "errors"

// InvalidEditops is returned by Apply when an edit script references
// out-of-range or non-monotonic positions and cannot be replayed against
// the sequences it names. Wrap it with fmt.Errorf("%w: ...", InvalidEditops)
// for context; callers should still match it with errors.Is.
var InvalidEditops = errors.New("levenshtein: invalid editops")

// ErrUnsupportedWeights is returned wherever a caller may request a
// non-uniform per-operation cost model. The core only ever computes the
// all-ones case; this keeps that boundary explicit instead of accepting
// Weights values it would silently ignore.
//
// A C implementation of this kernel would signal exhaustion of the scratch
// buffer used for the multi-word path as a distinct allocation failure.
// Go's allocator has no equivalent recoverable state — make silently
// terminates the process on true OOM — so no AllocationFailure error kind
// exists here; that failure mode simply isn't representable as a value.
var ErrUnsupportedWeights = errors.New("levenshtein: non-uniform weights are not supported")
