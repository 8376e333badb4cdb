package oracle

import (
	"testing"

	"github.com/distspan/ist/pkg/perm"
)

// idOf returns the vertex id for permutation p within table.
func idOf(t *testing.T, table *perm.Table, p string) int {
	t.Helper()
	id, ok := table.IndexOf(p)
	if !ok {
		t.Fatalf("permutation %q not found", p)
	}
	return id
}

// TestFindParent_N3Scenario reproduces spec.md §8's exact n=3 mappings for
// trees 1 and 2, verified against the original source's case analysis.
func TestFindParent_N3Scenario(t *testing.T) {
	table, err := perm.NewTable(3)
	if err != nil {
		t.Fatal(err)
	}

	tree1 := map[string]string{
		"132": "123",
		"213": "123",
		"231": "132",
		"312": "321",
		"321": "231",
	}
	tree2 := map[string]string{
		"132": "123",
		"213": "123",
		"231": "213",
		"312": "132",
		"321": "231",
	}

	for child, parent := range tree1 {
		v := idOf(t, table, child)
		want := idOf(t, table, parent)
		got, err := FindParent(table, v, 1)
		if err != nil {
			t.Fatalf("FindParent(%s, 1): %v", child, err)
		}
		if got != want {
			t.Errorf("tree 1: FindParent(%s) = %s, want %s", child, perm.Key(table.Perms[got]), parent)
		}
	}

	for child, parent := range tree2 {
		v := idOf(t, table, child)
		want := idOf(t, table, parent)
		got, err := FindParent(table, v, 2)
		if err != nil {
			t.Fatalf("FindParent(%s, 2): %v", child, err)
		}
		if got != want {
			t.Errorf("tree 2: FindParent(%s) = %s, want %s", child, perm.Key(table.Perms[got]), parent)
		}
	}
}

// TestFindParent_NeverReturnsSelf checks invariant 3 of spec.md §8 across
// small n.
func TestFindParent_NeverReturnsSelf(t *testing.T) {
	for n := perm.MinN; n <= 6; n++ {
		table, err := perm.NewTable(n)
		if err != nil {
			t.Fatal(err)
		}
		for v, p := range table.Perms {
			if perm.IsIdentity(p) {
				continue
			}
			for treeT := 1; treeT <= n-1; treeT++ {
				got, err := FindParent(table, v, treeT)
				if err != nil {
					t.Fatalf("n=%d FindParent(%d, %d): %v", n, v, treeT, err)
				}
				if got == v {
					t.Errorf("n=%d FindParent(%d, %d) returned self", n, v, treeT)
				}
			}
		}
	}
}

// TestFindParent_IsAdjacentTransposition checks invariant 3's second
// clause: the parent differs from v by exactly one adjacent swap.
func TestFindParent_IsAdjacentTransposition(t *testing.T) {
	for n := perm.MinN; n <= 6; n++ {
		table, err := perm.NewTable(n)
		if err != nil {
			t.Fatal(err)
		}
		for v, p := range table.Perms {
			if perm.IsIdentity(p) {
				continue
			}
			for treeT := 1; treeT <= n-1; treeT++ {
				parentID, err := FindParent(table, v, treeT)
				if err != nil {
					t.Fatal(err)
				}
				if !isAdjacentSwap(p, table.Perms[parentID]) {
					t.Errorf("n=%d v=%v t=%d: parent %v is not an adjacent transposition",
						n, p, treeT, table.Perms[parentID])
				}
			}
		}
	}
}

func isAdjacentSwap(a, b []int) bool {
	diffs := make([]int, 0, 2)
	for i := range a {
		if a[i] != b[i] {
			diffs = append(diffs, i)
		}
	}
	if len(diffs) != 2 {
		return false
	}
	i, j := diffs[0], diffs[1]
	return j == i+1 && a[i] == b[j] && a[j] == b[i]
}
