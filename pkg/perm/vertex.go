package perm

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Table holds the per-vertex lookup tables of spec.md §3, built once per n
// and treated as immutable and read-only thereafter: every worker in a
// distributed build constructs its own copy, since the tables are a
// deterministic function of n alone.
type Table struct {
	N int

	// Perms holds perm[i], the permutation sequence for vertex i.
	Perms [][]int

	// Pos holds pos[i][s], the 0-based position of symbol s within Perms[i].
	// Indexed pos[i][1..n]; index 0 is unused.
	Pos [][]int

	// Mismatch holds mismatch[i], the tail-descent marker used by the
	// parent oracle's fallback rule.
	Mismatch []int

	// indexOf is the inverse of Key(Perms[i]) -> i.
	indexOf map[string]int
}

// NewTable enumerates all permutations of {1..n}, builds the inverse-lookup
// table in one serial pass, and builds the position and mismatch tables in
// parallel across vertices.
//
// Table construction has no cross-vertex dependencies (§4.3), so the
// per-vertex fill loop is split across a worker pool sized to the host's
// CPU count via errgroup.SetLimit, the same pattern used to bound
// concurrency in a fan-out graph traversal.
func NewTable(n int) (*Table, error) {
	perms, err := AllPerms(n)
	if err != nil {
		return nil, err
	}

	count := len(perms)
	t := &Table{
		N:        n,
		Perms:    perms,
		Pos:      make([][]int, count),
		Mismatch: make([]int, count),
		indexOf:  make(map[string]int, count),
	}

	for i, p := range perms {
		t.indexOf[Key(p)] = i
	}

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())

	const chunk = 4096
	for start := 0; start < count; start += chunk {
		end := min(start+chunk, count)
		g.Go(func() error {
			for i := start; i < end; i++ {
				t.fillVertex(i)
			}
			return nil
		})
	}
	_ = g.Wait() // fillVertex never errors; no error path to propagate

	return t, nil
}

func (t *Table) fillVertex(i int) {
	p := t.Perms[i]
	n := t.N

	pos := make([]int, n+1)
	for j, s := range p {
		pos[s] = j
	}
	t.Pos[i] = pos

	k := n - 1
	for k >= 0 && p[k] == k+1 {
		k--
	}
	if k < 0 {
		t.Mismatch[i] = 1
	} else {
		t.Mismatch[i] = k
	}
}

// IndexOf returns the vertex id for the permutation with the given key, and
// reports whether it was found. A miss is a fatal internal error upstream
// (spec.md's InvariantViolated): every permutation the parent oracle can
// produce must already be a row of Table.Perms.
func (t *Table) IndexOf(key string) (int, bool) {
	i, ok := t.indexOf[key]
	return i, ok
}

// Len returns n!, the number of vertices.
func (t *Table) Len() int {
	return len(t.Perms)
}
