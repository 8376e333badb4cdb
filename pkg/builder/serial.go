package builder

import "context"

// RunSerial runs the entire construction pipeline in a single process,
// equivalent to the distributed path with World=1 (spec.md §4.9). It is
// the test oracle that every serial/distributed equivalence check
// compares against.
func RunSerial(ctx context.Context, n int, outDir string) (Result, error) {
	opts := Options{N: n, Rank: 0, World: 1, OutDir: outDir}
	return Run(ctx, opts, nil)
}
