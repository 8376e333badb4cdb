package builder

import (
	"github.com/google/uuid"

	"github.com/distspan/ist/pkg/errors"
)

// Options configures a single rank's build run.
type Options struct {
	// N is the bubble-sort graph dimension, in [perm.MinN, perm.MaxN].
	N int

	// Rank is this process's worker identifier, in [0, World).
	Rank int

	// World is the total number of workers in the cohort.
	World int

	// OutDir is the root output directory; DOT files land under
	// OutDir/<n>/. Defaults to "dot" when empty.
	OutDir string

	// BuildID identifies the run. Generated with [uuid.NewString] when
	// empty. The transport is not derived from it: the Redis transport
	// takes its key namespace from cohort.RedisConfig.BuildID.
	BuildID string
}

// DefaultOutDir is the output root used when Options.OutDir is empty,
// matching the original implementation's relative "dot/" directory
// (spec.md §6).
const DefaultOutDir = "dot"

// WithDefaults returns a copy of o with zero-valued fields filled in.
func (o Options) WithDefaults() Options {
	if o.OutDir == "" {
		o.OutDir = DefaultOutDir
	}
	if o.BuildID == "" {
		o.BuildID = uuid.NewString()
	}
	return o
}

// Validate checks o against spec.md §6's usage constraints.
func (o Options) Validate() error {
	if err := errors.ValidateN(o.N); err != nil {
		return err
	}
	if err := errors.ValidateWorkers(o.World); err != nil {
		return err
	}
	if err := errors.ValidateRank(o.Rank, o.World); err != nil {
		return err
	}
	return nil
}
