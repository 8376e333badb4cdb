// Package perm enumerates permutations of {1..n} and builds the per-vertex
// lookup tables that the parent oracle in [pkg/oracle] depends on.
//
// # Vertices of the bubble-sort graph
//
// A vertex of B_n is a permutation of {1, ..., n}; vertices are identified
// by a dense integer id in [0, n!) assigned in strictly increasing
// lexicographic order, with id 0 always the identity permutation
// ⟨1, 2, ..., n⟩.
//
// [AllPerms] produces that ordering. [Key] encodes a permutation as a
// compact string suitable for use as a map key or a DOT node label. [NewTable]
// builds the per-vertex lookup tables (symbol position, mismatch position,
// key-to-id inverse) that the rest of the pipeline treats as read-only once
// constructed.
package perm
