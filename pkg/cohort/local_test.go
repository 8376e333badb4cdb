package cohort

import (
	"context"
	"testing"
	"time"
)

func TestLocal_SendRecv(t *testing.T) {
	l := NewLocal(3)
	ctx := context.Background()

	payload := Payload{
		Rank: 1,
		Trees: []TreeEdges{
			{Tree: 1, Edges: []Edge{{Parent: 0, Child: 1}}},
		},
	}

	if err := l.Send(ctx, payload); err != nil {
		t.Fatalf("Send: %v", err)
	}

	got, err := l.Recv(ctx, 1)
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if got.Rank != 1 || len(got.Trees) != 1 || got.Trees[0].Tree != 1 {
		t.Errorf("Recv() = %+v, want rank 1 with one tree", got)
	}
}

func TestLocal_RecvOrderingAcrossRanks(t *testing.T) {
	l := NewLocal(3)
	ctx := context.Background()

	for r := 1; r < 3; r++ {
		if err := l.Send(ctx, Payload{Rank: r}); err != nil {
			t.Fatalf("Send(rank %d): %v", r, err)
		}
	}

	// The coordinator receives in ascending rank order regardless of send
	// order, since each rank owns its own channel.
	for _, want := range []int{1, 2} {
		got, err := l.Recv(ctx, want)
		if err != nil {
			t.Fatalf("Recv(%d): %v", want, err)
		}
		if got.Rank != want {
			t.Errorf("Recv(%d) = rank %d", want, got.Rank)
		}
	}
}

func TestLocal_RecvCanceledContext(t *testing.T) {
	l := NewLocal(2)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := l.Recv(ctx, 1); err == nil {
		t.Fatal("Recv on empty channel with canceled context: want error, got nil")
	}
}

func TestLocal_SendRankOutOfRange(t *testing.T) {
	l := NewLocal(2)
	if err := l.Send(context.Background(), Payload{Rank: 5}); err == nil {
		t.Fatal("Send with out-of-range rank: want error, got nil")
	}
}
