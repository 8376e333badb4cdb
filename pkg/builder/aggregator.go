package builder

import (
	"context"
	"time"

	"github.com/distspan/ist/pkg/cohort"
	"github.com/distspan/ist/pkg/observability"
)

// Adjacency holds, for each tree t, the children list of every parent
// vertex: Adjacency[t][p] is the ordered slice of p's children in tree t
// (spec.md §4.7's children_t[parent]).
type Adjacency map[int][][]uint32

// Aggregate assembles the coordinator's per-tree adjacency from rank 0's
// own generated edges plus the payloads received from every other worker,
// in ascending rank order (spec.md §4.7's ordering guarantee: "the
// coordinator places its own edges first, then worker 1, then 2, and so
// on").
//
// vertexCount sizes each tree's parent-indexed slice; it is n! for the
// job's dimension n.
func Aggregate(ctx context.Context, vertexCount int, treeCount int, own []cohort.TreeEdges, payloads []cohort.Payload) Adjacency {
	start := time.Now()
	observability.Build().OnAggregateStart(ctx, len(payloads)+1)

	adj := make(Adjacency, treeCount)
	for t := 1; t <= treeCount; t++ {
		adj[t] = make([][]uint32, vertexCount)
	}

	edgeCount := 0
	place := func(trees []cohort.TreeEdges) {
		for _, te := range trees {
			bucket := adj[te.Tree]
			for _, e := range te.Edges {
				bucket[e.Parent] = append(bucket[e.Parent], e.Child)
				edgeCount++
			}
		}
	}

	place(own)
	for _, payload := range payloads {
		place(payload.Trees)
	}

	observability.Build().OnAggregateComplete(ctx, edgeCount, time.Since(start), nil)
	return adj
}

// Recv gathers payloads from worker ranks 1..world-1, in that order, over
// transport. It implements the receive half of spec.md §4.7: "Rank 0
// receives from each other worker in rank order."
func Recv(ctx context.Context, transport cohort.Transport, world int) ([]cohort.Payload, error) {
	payloads := make([]cohort.Payload, 0, world-1)
	for r := 1; r < world; r++ {
		start := time.Now()
		payload, err := transport.Recv(ctx, r)
		if err != nil {
			observability.Transport().OnRecv(ctx, r, 0, time.Since(start), err)
			return nil, err
		}
		observability.Transport().OnRecv(ctx, r, 0, time.Since(start), nil)
		payloads = append(payloads, payload)
	}
	return payloads, nil
}
