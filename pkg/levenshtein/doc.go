// Package levenshtein implements the classical Levenshtein edit distance
// over arbitrary sequences of code units (8, 16, or 32 bits wide).
//
// The distance kernel is Myers' bit-parallel algorithm: one dynamic
// programming row is advanced per word-level arithmetic operation instead
// of per cell, giving O(ceil(m/w)*n) time for a pattern of length m, a text
// of length n, and a machine word width w. Minimal edit scripts are
// reconstructed with a Hirschberg-style divide-and-conquer that keeps
// auxiliary memory linear in the input lengths (each cost row spans the
// second input).
//
// Every exported function here is synchronous, stateless, and allocates
// only scratch memory that is released before it returns — callers may
// invoke it concurrently from multiple goroutines on disjoint (or aliased,
// read-only) inputs without any coordination of their own.
package levenshtein
