// Package pkg provides the core libraries for constructing independent
// spanning trees of the bubble-sort graph B_n.
//
// # Overview
//
// B_n is the Cayley graph of the symmetric group S_n generated by adjacent
// transpositions: vertices are permutations of {1,...,n}, and two
// permutations are joined by an edge when they differ by swapping two
// neighboring positions. This module constructs n-1 edge-disjoint spanning
// trees of B_n, all rooted at the identity permutation, and writes each as
// a Graphviz DOT file. The packages here are organized into four areas:
//
//  1. Permutation representation ([perm])
//  2. Parent assignment ([oracle])
//  3. Parallel construction ([partition], [cohort], [builder])
//  4. Operational support ([errors], [observability], [config], [history],
//     [statusserver])
//
// # Architecture
//
// The typical data flow through a build:
//
//	n
//	 ↓
//	[perm] package (enumerate vertices, key-index them)
//	 ↓
//	[partition] package (assign each worker a contiguous range of trees)
//	 ↓
//	[oracle] package (compute each vertex's parent in each assigned tree)
//	 ↓
//	[cohort] package (ship partial results to the coordinator)
//	 ↓
//	[builder] package (aggregate, then emit DOT files)
//
// # Quick Start
//
// Build every tree of B_5 in a single process:
//
//	import (
//	    "context"
//	    "github.com/distspan/ist/pkg/builder"
//	)
//
//	res, err := builder.RunSerial(context.Background(), 5, "dot")
//
// Distribute the same build across three in-process workers:
//
//	import (
//	    "context"
//	    "github.com/distspan/ist/pkg/builder"
//	    "github.com/distspan/ist/pkg/cohort"
//	)
//
//	transport := cohort.NewLocal(3)
//	for rank := 1; rank < 3; rank++ {
//	    go builder.Run(ctx, builder.Options{N: 5, Rank: rank, World: 3}, transport)
//	}
//	res, err := builder.Run(ctx, builder.Options{N: 5, Rank: 0, World: 3}, transport)
//
// # Main Packages
//
// [perm] - Permutation enumeration, a vertex lookup table keyed by a
// fixed-width string encoding, and the DOT parse/render pair used by
// verification.
//
// [oracle] - The parent-assignment function: given a tree index and a
// non-identity vertex, returns that vertex's parent in that tree.
//
// [partition] - Splits the n-1 trees into balanced, contiguous ranges
// across a cohort of workers.
//
// [cohort] - The inter-process transport abstraction (in-memory or Redis)
// workers use to ship their generated edges to the coordinator.
//
// [builder] - Orchestrates a single rank's run: table construction, tree
// assignment, edge generation, aggregation on rank 0, and DOT emission.
//
// [errors] - A small structured error taxonomy shared across the module.
//
// [observability] - Build and transport hooks for instrumentation, with
// no-op defaults.
//
// [config] - ist.toml configuration loading and XDG path resolution.
//
// [history] - Optional MongoDB-backed recording of completed build runs.
//
// [statusserver] - Optional HTTP status endpoint for a running coordinator.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...       # All tests
//	go test ./pkg/builder/...
//
// [perm]: https://pkg.go.dev/github.com/distspan/ist/pkg/perm
// [oracle]: https://pkg.go.dev/github.com/distspan/ist/pkg/oracle
// [partition]: https://pkg.go.dev/github.com/distspan/ist/pkg/partition
// [cohort]: https://pkg.go.dev/github.com/distspan/ist/pkg/cohort
// [builder]: https://pkg.go.dev/github.com/distspan/ist/pkg/builder
// [errors]: https://pkg.go.dev/github.com/distspan/ist/pkg/errors
// [observability]: https://pkg.go.dev/github.com/distspan/ist/pkg/observability
// [config]: https://pkg.go.dev/github.com/distspan/ist/pkg/config
// [history]: https://pkg.go.dev/github.com/distspan/ist/pkg/history
// [statusserver]: https://pkg.go.dev/github.com/distspan/ist/pkg/statusserver
package pkg
