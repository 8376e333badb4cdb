package builder

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/distspan/ist/pkg/cohort"
	"github.com/distspan/ist/pkg/observability"
	"github.com/distspan/ist/pkg/oracle"
	"github.com/distspan/ist/pkg/partition"
	"github.com/distspan/ist/pkg/perm"
)

// flushThreshold bounds how many tuples a goroutine accumulates locally
// before draining into the shared per-process edge list, per spec.md §5's
// "representative thread-local flush threshold on the order of 10^5
// tuples" — chosen here to bound worst-case critical-section contention
// without growing per-goroutine memory unreasonably for large n.
const flushThreshold = 100_000

// GenerateEdges computes, for every tree in rng, the parent of every
// non-identity vertex (spec.md §4.6). Vertex iteration is data-parallel
// across a worker pool sized to the host's CPU count; each goroutine
// accumulates edges in a thread-local buffer and flushes into the shared
// per-tree lists under a single mutex, mirroring the table-construction
// fan-out in pkg/perm.
func GenerateEdges(ctx context.Context, rank int, table *perm.Table, rng partition.Range) ([]cohort.TreeEdges, error) {
	begin := time.Now()
	observability.Build().OnGenerateStart(ctx, rank, rng.Lo, rng.Hi)

	trees := rng.Trees()
	result := make([]cohort.TreeEdges, len(trees))
	for i, t := range trees {
		result[i] = cohort.TreeEdges{Tree: t}
	}

	if len(trees) == 0 {
		observability.Build().OnGenerateComplete(ctx, rank, 0, time.Since(begin), nil)
		return result, nil
	}

	var mu sync.Mutex
	count := table.Len()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	const chunk = 4096
	for lo := 0; lo < count; lo += chunk {
		lo := lo
		hi := min(lo+chunk, count)
		g.Go(func() error {
			return generateChunk(gctx, table, trees, lo, hi, &mu, result)
		})
	}

	if err := g.Wait(); err != nil {
		observability.Build().OnGenerateComplete(ctx, rank, 0, time.Since(begin), err)
		return nil, err
	}

	// Chunks flush into result in whichever order their goroutine finishes,
	// not index order, so each tree's edges need a final sort to make
	// output byte-reproducible regardless of scheduling (spec.md §4.9).
	edgeCount := 0
	for i := range result {
		sort.Slice(result[i].Edges, func(a, b int) bool {
			return result[i].Edges[a].Child < result[i].Edges[b].Child
		})
		edgeCount += len(result[i].Edges)
	}
	observability.Build().OnGenerateComplete(ctx, rank, edgeCount, time.Since(begin), nil)
	return result, nil
}

// generateChunk processes vertices [lo, hi) for every tree the rank owns,
// buffering per-tree edges locally and flushing into result under mu once
// the buffer crosses flushThreshold or the chunk is exhausted.
func generateChunk(ctx context.Context, table *perm.Table, trees []int, lo, hi int, mu *sync.Mutex, result []cohort.TreeEdges) error {
	local := make([][]cohort.Edge, len(trees))

	flush := func() {
		mu.Lock()
		for li := range trees {
			if len(local[li]) == 0 {
				continue
			}
			result[li].Edges = append(result[li].Edges, local[li]...)
			local[li] = local[li][:0]
		}
		mu.Unlock()
	}

	buffered := 0
	for v := lo; v < hi; v++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if perm.IsIdentity(table.Perms[v]) {
			continue
		}
		for li, t := range trees {
			p, err := oracle.FindParent(table, v, t)
			if err != nil {
				return err
			}
			local[li] = append(local[li], cohort.Edge{Parent: uint32(p), Child: uint32(v)})
			buffered++
		}
		if buffered >= flushThreshold {
			flush()
			buffered = 0
		}
	}
	flush()
	return nil
}
