package oracle

import (
	"github.com/distspan/ist/pkg/errors"
	"github.com/distspan/ist/pkg/perm"
)

// Slide returns the neighbor of vertex v reached by swapping symbol s with
// the symbol immediately to its right. If s already occupies the last
// position, the permutation is returned unchanged (spec.md §4.4).
func Slide(table *perm.Table, v, s int) []int {
	p := table.Perms[v]
	j := table.Pos[v][s]

	out := make([]int, len(p))
	copy(out, p)

	if j+1 >= table.N {
		return out
	}
	out[j], out[j+1] = out[j+1], out[j]
	return out
}

// fallback implements the fallback variant used when the direct swap by
// symbol t would not produce a valid parent (spec.md §4.4).
func fallback(table *perm.Table, v, t int) []int {
	cand := Slide(table, v, t)

	if t == 2 && perm.IsIdentity(cand) {
		return Slide(table, v, 1)
	}

	n := table.N
	p := table.Perms[v]
	pen := p[n-2]
	if pen == t || pen == n-1 {
		return Slide(table, v, table.Mismatch[v]+1)
	}
	return cand
}

// FindParent computes π(v, t): the parent of non-identity vertex v in tree
// t, per the case analysis of spec.md §4.4. It returns an *errors.Error with
// code ErrCodeInvariant if the resulting permutation is not a row of table
// (a fatal internal error anywhere it occurs).
func FindParent(table *perm.Table, v, t int) (int, error) {
	n := table.N
	p := table.Perms[v]
	last := p[n-1]
	prev := p[n-2]

	var parent []int
	switch {
	case last == n:
		// Case A
		if t != n-1 {
			parent = fallback(table, v, t)
		} else {
			parent = Slide(table, v, prev)
		}

	case last == n-1 && prev == n && !perm.IsIdentity(Slide(table, v, n)):
		// Case B
		if t == 1 {
			parent = Slide(table, v, n)
		} else {
			parent = Slide(table, v, t-1)
		}

	default:
		// Case C
		if last == t {
			parent = Slide(table, v, n)
		} else {
			parent = Slide(table, v, t)
		}
	}

	id, ok := table.IndexOf(perm.Key(parent))
	if !ok {
		return 0, errors.New(errors.ErrCodeInvariant,
			"parent oracle produced unknown permutation %v for vertex %d, tree %d", parent, v, t)
	}
	return id, nil
}
