// Package oracle implements the parent-assignment rule that turns the
// bubble-sort graph B_n into n−1 independent spanning trees rooted at the
// identity permutation.
//
// [FindParent] is a pure function of a vertex and a tree index: it never
// blocks, allocates no shared state, and is safe to call concurrently from
// many goroutines against the same [perm.Table], which is exactly how
// pkg/builder drives it during edge generation.
package oracle
