package cohort

import (
	"context"

	"github.com/distspan/ist/pkg/errors"
)

// Local is an in-process [Transport] that simulates W distributed workers
// within a single binary using one buffered channel per rank, mirroring
// the job/result channel hand-off of a worker-pool crawler: each rank's
// Send is a single non-blocking enqueue, and the coordinator's Recv is a
// blocking dequeue from that rank's channel.
//
// It backs `ist build --transport=local` (the default) and every test
// that exercises the aggregator without spawning real processes.
type Local struct {
	chans []chan Payload
}

// NewLocal creates a Local transport for a cohort of the given world size.
// Each rank's channel is buffered to depth 1, since spec.md §4.6 completes
// all of a rank's generation before that rank sends exactly once.
func NewLocal(world int) *Local {
	chans := make([]chan Payload, world)
	for r := range chans {
		chans[r] = make(chan Payload, 1)
	}
	return &Local{chans: chans}
}

// Send enqueues payload onto its rank's channel.
func (l *Local) Send(ctx context.Context, payload Payload) error {
	if payload.Rank < 0 || payload.Rank >= len(l.chans) {
		return errors.New(errors.ErrCodeTransport, "local transport: rank %d out of range [0,%d)", payload.Rank, len(l.chans))
	}
	select {
	case l.chans[payload.Rank] <- payload:
		return nil
	case <-ctx.Done():
		return errors.Wrap(errors.ErrCodeTransport, ctx.Err(), "local transport: send from rank %d canceled", payload.Rank)
	}
}

// Recv blocks until the payload from fromRank is available.
func (l *Local) Recv(ctx context.Context, fromRank int) (Payload, error) {
	if fromRank < 0 || fromRank >= len(l.chans) {
		return Payload{}, errors.New(errors.ErrCodeTransport, "local transport: rank %d out of range [0,%d)", fromRank, len(l.chans))
	}
	select {
	case payload := <-l.chans[fromRank]:
		return payload, nil
	case <-ctx.Done():
		return Payload{}, errors.Wrap(errors.ErrCodeTransport, ctx.Err(), "local transport: recv from rank %d canceled", fromRank)
	}
}

// Close is a no-op for Local; channels are garbage collected once
// unreferenced.
func (l *Local) Close() error {
	return nil
}
