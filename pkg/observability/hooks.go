// Package observability provides hooks for instrumenting the build pipeline
// and cohort transport without adding hard dependencies on specific metrics
// or tracing backends.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps pkg/builder and pkg/cohort dependency-free from observability
//     frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, a plain logger)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetBuildHooks(&myBuildHooks{})
//	    observability.SetTransportHooks(&myTransportHooks{})
//	    // ... run the build
//	}
//
// pkg/builder calls hooks to emit events:
//
//	observability.Build().OnGenerateStart(ctx, rank, treeLo, treeHi)
//	// ... generate edges ...
//	observability.Build().OnGenerateComplete(ctx, rank, edgeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Build Hooks
// =============================================================================

// BuildHooks receives events from a single rank's build pipeline: table
// construction, edge generation, aggregation, and DOT emission (spec.md §4).
type BuildHooks interface {
	// OnTableInitStart records the start of permutation-table construction.
	OnTableInitStart(ctx context.Context, n int)
	// OnTableInitComplete records table construction finishing.
	OnTableInitComplete(ctx context.Context, n int, vertexCount int, duration time.Duration, err error)

	// OnGenerateStart records a rank beginning edge generation for its
	// assigned inclusive tree range [treeLo, treeHi] (empty when treeHi <
	// treeLo).
	OnGenerateStart(ctx context.Context, rank, treeLo, treeHi int)
	// OnGenerateComplete records a rank finishing edge generation.
	OnGenerateComplete(ctx context.Context, rank int, edgeCount int, duration time.Duration, err error)

	// OnAggregateStart records the coordinator beginning to collect edges
	// from every rank.
	OnAggregateStart(ctx context.Context, workerCount int)
	// OnAggregateComplete records aggregation finishing.
	OnAggregateComplete(ctx context.Context, edgeCount int, duration time.Duration, err error)

	// OnWriteStart records the coordinator beginning to write DOT files.
	OnWriteStart(ctx context.Context, treeCount int, outDir string)
	// OnWriteComplete records DOT emission finishing.
	OnWriteComplete(ctx context.Context, treeCount int, duration time.Duration, err error)
}

// =============================================================================
// Transport Hooks
// =============================================================================

// TransportHooks receives events from the cohort's inter-process transport
// (spec.md §4.7).
type TransportHooks interface {
	// OnSend records a rank sending its partial result to the coordinator.
	OnSend(ctx context.Context, rank int, byteCount int, duration time.Duration, err error)

	// OnRecv records the coordinator receiving a partial result.
	OnRecv(ctx context.Context, fromRank int, byteCount int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopBuildHooks is a no-op implementation of BuildHooks.
type NoopBuildHooks struct{}

func (NoopBuildHooks) OnTableInitStart(context.Context, int)                               {}
func (NoopBuildHooks) OnTableInitComplete(context.Context, int, int, time.Duration, error)  {}
func (NoopBuildHooks) OnGenerateStart(context.Context, int, int, int)                       {}
func (NoopBuildHooks) OnGenerateComplete(context.Context, int, int, time.Duration, error)   {}
func (NoopBuildHooks) OnAggregateStart(context.Context, int)                                {}
func (NoopBuildHooks) OnAggregateComplete(context.Context, int, time.Duration, error)        {}
func (NoopBuildHooks) OnWriteStart(context.Context, int, string)                            {}
func (NoopBuildHooks) OnWriteComplete(context.Context, int, time.Duration, error)            {}

// NoopTransportHooks is a no-op implementation of TransportHooks.
type NoopTransportHooks struct{}

func (NoopTransportHooks) OnSend(context.Context, int, int, time.Duration, error) {}
func (NoopTransportHooks) OnRecv(context.Context, int, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	buildHooks     BuildHooks     = NoopBuildHooks{}
	transportHooks TransportHooks = NoopTransportHooks{}
	hooksMu        sync.RWMutex
)

// SetBuildHooks registers custom build hooks.
// This should be called once at application startup before any build runs.
func SetBuildHooks(h BuildHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		buildHooks = h
	}
}

// SetTransportHooks registers custom transport hooks.
// This should be called once at application startup before any transport
// operations.
func SetTransportHooks(h TransportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		transportHooks = h
	}
}

// Build returns the registered build hooks.
func Build() BuildHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return buildHooks
}

// Transport returns the registered transport hooks.
func Transport() TransportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return transportHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	buildHooks = NoopBuildHooks{}
	transportHooks = NoopTransportHooks{}
}
