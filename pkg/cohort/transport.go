package cohort

import "context"

// Transport is the inter-process message-passing abstraction behind
// spec.md §4.7's aggregator protocol. A worker Send()s its Payload exactly
// once; the coordinator Recv()s from each worker rank in ascending rank
// order, per the ordering guarantee.
//
// Any Send or Recv failure is fatal for the whole job (spec.md §4.7,
// "Failure semantics") and is returned wrapped with
// errors.ErrCodeTransport.
type Transport interface {
	// Send ships a worker's payload to the coordinator. Called by every
	// rank > 0; rank 0 never calls Send and instead appends its own
	// payload directly into the aggregation (spec.md §4.7, "Rank 0 also
	// places its own local buffer first").
	Send(ctx context.Context, payload Payload) error

	// Recv blocks until the payload from fromRank has arrived. Called
	// only by rank 0, once per worker rank in ascending order.
	Recv(ctx context.Context, fromRank int) (Payload, error)

	// Close releases any resources held by the transport.
	Close() error
}
