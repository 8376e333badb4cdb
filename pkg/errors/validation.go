package errors

import "github.com/distspan/ist/pkg/perm"

// ValidateN reports whether n falls within the supported range
// [perm.MinN, perm.MaxN], returning an *Error with code ErrCodeUsage
// otherwise. Every CLI entry point that accepts n calls this before doing
// any work.
func ValidateN(n int) error {
	if n < perm.MinN || n > perm.MaxN {
		return New(ErrCodeUsage, "n=%d out of supported range [%d,%d]", n, perm.MinN, perm.MaxN)
	}
	return nil
}

// ValidateWorkers reports whether workers is a positive worker count,
// returning an *Error with code ErrCodeUsage otherwise.
func ValidateWorkers(workers int) error {
	if workers < 1 {
		return New(ErrCodeUsage, "workers=%d must be >= 1", workers)
	}
	return nil
}

// ValidateRank reports whether rank falls within [0, workers), returning an
// *Error with code ErrCodeUsage otherwise.
func ValidateRank(rank, workers int) error {
	if rank < 0 || rank >= workers {
		return New(ErrCodeUsage, "rank=%d out of range [0,%d)", rank, workers)
	}
	return nil
}
