package perm

import "testing"

func TestNewTable_PosInvariant(t *testing.T) {
	for n := MinN; n <= 7; n++ {
		table, err := NewTable(n)
		if err != nil {
			t.Fatalf("NewTable(%d): %v", n, err)
		}
		for i, p := range table.Perms {
			for j, s := range p {
				if table.Pos[i][s] != j {
					t.Fatalf("n=%d vertex=%d: Pos[%d][%d] = %d, want %d", n, i, i, s, table.Pos[i][s], j)
				}
			}
		}
	}
}

func TestNewTable_IndexOfInvariant(t *testing.T) {
	table, err := NewTable(6)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range table.Perms {
		got, ok := table.IndexOf(Key(p))
		if !ok {
			t.Fatalf("IndexOf(Key(perm[%d])) missing", i)
		}
		if got != i {
			t.Fatalf("IndexOf(Key(perm[%d])) = %d, want %d", i, got, i)
		}
	}
}

func TestNewTable_Mismatch(t *testing.T) {
	table, err := NewTable(3)
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]int{
		"123": 1, // identity: no k with perm[k] != k+1, fallback to 1
		"132": 2, // perm[2]=2 != 3
		"213": 1, // perm[2]=3 == 3, perm[1]=1 != 2
		"231": 2,
		"312": 2,
		"321": 2,
	}
	for i, p := range table.Perms {
		want, ok := cases[Key(p)]
		if !ok {
			t.Fatalf("unexpected permutation %v", p)
		}
		if table.Mismatch[i] != want {
			t.Errorf("Mismatch[%v] = %d, want %d", p, table.Mismatch[i], want)
		}
	}
}

func TestNewTable_Len(t *testing.T) {
	table, err := NewTable(4)
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 24 {
		t.Errorf("Len() = %d, want 24", table.Len())
	}
}
