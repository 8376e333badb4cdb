package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/distspan/ist/pkg/cohort"
	"github.com/distspan/ist/pkg/observability"
	"github.com/distspan/ist/pkg/partition"
	"github.com/distspan/ist/pkg/perm"
)

// Result summarizes a completed build, returned by Run on rank 0 and by
// RunSerial. Non-coordinator ranks return a Result with Adjacency nil,
// since only rank 0 writes output (spec.md §5, "The output filesystem
// tree is written by rank 0 only").
type Result struct {
	VertexCount int
	EdgeCount   int
	Adjacency   Adjacency // nil on ranks other than 0
}

// Run drives one rank through the full pipeline: table construction, tree
// assignment, edge generation, and — on rank 0 — aggregation and DOT
// emission. Ranks other than 0 send their generated edges over transport
// and return.
//
// transport may be nil when opts.World == 1: the single rank is
// necessarily the coordinator and has nothing to send or receive.
func Run(ctx context.Context, opts Options, transport cohort.Transport) (Result, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	logger := loggerFromContext(ctx).With("rank", opts.Rank, "n", opts.N)

	p := newProgress(logger)
	observability.Build().OnTableInitStart(ctx, opts.N)
	table, err := perm.NewTable(opts.N)
	if err != nil {
		observability.Build().OnTableInitComplete(ctx, opts.N, 0, time.Since(p.start), err)
		return Result{}, err
	}
	observability.Build().OnTableInitComplete(ctx, opts.N, table.Len(), time.Since(p.start), nil)
	p.done(fmt.Sprintf("table initialized (%d vertices)", table.Len()))

	rng, err := partition.Assign(opts.N, opts.Rank, opts.World)
	if err != nil {
		return Result{}, err
	}
	logger.Debug("assigned tree range", "lo", rng.Lo, "hi", rng.Hi)

	p = newProgress(logger)
	own, err := GenerateEdges(ctx, opts.Rank, table, rng)
	if err != nil {
		return Result{}, err
	}
	p.done(fmt.Sprintf("edge generation complete (%d trees)", len(own)))

	if opts.Rank != 0 {
		payload := cohort.Payload{Rank: opts.Rank, Trees: own}
		p = newProgress(logger)
		err := transport.Send(ctx, payload)
		observability.Transport().OnSend(ctx, opts.Rank, payloadSize(payload), time.Since(p.start), err)
		if err != nil {
			return Result{}, err
		}
		p.done("sent payload to coordinator")
		return Result{}, nil
	}

	var payloads []cohort.Payload
	if opts.World > 1 {
		p = newProgress(logger)
		payloads, err = Recv(ctx, transport, opts.World)
		if err != nil {
			return Result{}, err
		}
		p.done(fmt.Sprintf("received payloads from %d workers", len(payloads)))
	}

	p = newProgress(logger)
	adj := Aggregate(ctx, table.Len(), opts.N-1, own, payloads)
	p.done("aggregation complete")

	p = newProgress(logger)
	if err := WriteDOT(ctx, table, opts.N, adj, opts.OutDir); err != nil {
		return Result{}, err
	}

	edgeCount := 0
	for _, kids := range adj {
		for _, c := range kids {
			edgeCount += len(c)
		}
	}
	p.done(fmt.Sprintf("wrote %d trees (%d edges)", len(adj), edgeCount))
	logger.Info("build complete", "trees", len(adj), "edges", edgeCount)

	return Result{VertexCount: table.Len(), EdgeCount: edgeCount, Adjacency: adj}, nil
}

// payloadSize estimates a payload's wire size in bytes for instrumentation
// (8 bytes per edge: two uint32 fields).
func payloadSize(p cohort.Payload) int {
	n := 0
	for _, te := range p.Trees {
		n += len(te.Edges) * 8
	}
	return n
}
