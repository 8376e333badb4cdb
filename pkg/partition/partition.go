package partition

import "github.com/distspan/ist/pkg/errors"

// Range is a worker's assigned, inclusive tree range [Lo, Hi]. An empty
// assignment (W > T) is represented by Hi < Lo.
type Range struct {
	Lo, Hi int
}

// Empty reports whether the range contains no trees.
func (r Range) Empty() bool {
	return r.Hi < r.Lo
}

// Len returns the number of trees in the range.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.Hi - r.Lo + 1
}

// Trees returns the tree indices in the range, in ascending order.
func (r Range) Trees() []int {
	out := make([]int, 0, r.Len())
	for t := r.Lo; t <= r.Hi; t++ {
		out = append(out, t)
	}
	return out
}

// Assign computes rank's tree range for a job with n-1 total trees spread
// across world workers, per spec.md §4.5's block distribution:
//
//	per = T/W, rem = T mod W
//	r < rem:  lo = r*(per+1)+1, hi = lo+per
//	r >= rem: lo = rem*(per+1) + (r-rem)*per + 1, hi = lo+per-1
//
// It returns an *errors.Error with code ErrCodeUsage if rank or world is
// out of range.
func Assign(n, rank, world int) (Range, error) {
	if err := errors.ValidateN(n); err != nil {
		return Range{}, err
	}
	if err := errors.ValidateWorkers(world); err != nil {
		return Range{}, err
	}
	if err := errors.ValidateRank(rank, world); err != nil {
		return Range{}, err
	}

	total := n - 1
	per := total / world
	rem := total % world

	var lo, hi int
	if rank < rem {
		lo = rank*(per+1) + 1
		hi = lo + per
	} else {
		lo = rem*(per+1) + (rank-rem)*per + 1
		hi = lo + per - 1
	}
	return Range{Lo: lo, Hi: hi}, nil
}

// AssignAll computes the tree range for every rank in [0, world), in rank
// order. It is a convenience wrapper over Assign; pkg/builder calls Assign
// for its own rank directly.
func AssignAll(n, world int) ([]Range, error) {
	ranges := make([]Range, world)
	for r := 0; r < world; r++ {
		rng, err := Assign(n, r, world)
		if err != nil {
			return nil, err
		}
		ranges[r] = rng
	}
	return ranges, nil
}
