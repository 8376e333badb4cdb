// Package cohort implements the aggregator protocol of spec.md §4.7: a
// two-phase gather of per-worker (tree, parent, child) tuples onto rank 0.
//
// [Transport] abstracts the message-passing primitive so the same
// pkg/builder aggregation logic runs over two backends:
//
//   - [NewLocal] — an in-process, channel-based transport for single-binary
//     simulation of a distributed run and for tests.
//   - [NewRedis] — a real inter-process transport backed by Redis lists,
//     for workers running as genuinely separate OS processes.
//
// Both backends honor the ordering guarantee of spec.md §4.7: rank 0
// receives from workers 1, 2, … in that order, and places its own edges
// first.
package cohort
