package perm

import (
	"testing"
)

func TestAllPerms_CountAndOrder(t *testing.T) {
	for n := MinN; n <= 6; n++ {
		perms, err := AllPerms(n)
		if err != nil {
			t.Fatalf("AllPerms(%d): %v", n, err)
		}
		if len(perms) != Factorial(n) {
			t.Fatalf("AllPerms(%d) returned %d permutations, want %d", n, len(perms), Factorial(n))
		}
		if !IsIdentity(perms[0]) {
			t.Fatalf("AllPerms(%d)[0] = %v, want identity", n, perms[0])
		}
		for i := 1; i < len(perms); i++ {
			if !lexLess(perms[i-1], perms[i]) {
				t.Fatalf("AllPerms(%d) not strictly increasing at index %d: %v, %v", n, i, perms[i-1], perms[i])
			}
		}
		seen := make(map[string]bool, len(perms))
		for _, p := range perms {
			k := Key(p)
			if seen[k] {
				t.Fatalf("AllPerms(%d) produced duplicate permutation %v", n, p)
			}
			seen[k] = true
		}
	}
}

func TestAllPerms_N3Exact(t *testing.T) {
	perms, err := AllPerms(3)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]int{
		{1, 2, 3}, {1, 3, 2}, {2, 1, 3}, {2, 3, 1}, {3, 1, 2}, {3, 2, 1},
	}
	if len(perms) != len(want) {
		t.Fatalf("got %d perms, want %d", len(perms), len(want))
	}
	for i := range want {
		if !equal(perms[i], want[i]) {
			t.Errorf("perms[%d] = %v, want %v", i, perms[i], want[i])
		}
	}
}

func TestAllPerms_RangeError(t *testing.T) {
	if _, err := AllPerms(1); err == nil {
		t.Error("expected error for n=1")
	}
	if _, err := AllPerms(11); err == nil {
		t.Error("expected error for n=11")
	}
}

func TestKey_Uniqueness(t *testing.T) {
	perms, err := AllPerms(5)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[string]bool, len(perms))
	for _, p := range perms {
		k := Key(p)
		if len(k) != len(p) {
			t.Fatalf("Key(%v) has length %d, want %d", p, len(k), len(p))
		}
		if seen[k] {
			t.Fatalf("Key collision for %v", p)
		}
		seen[k] = true
	}
}

func TestKey_N10UsesNonDigitForTen(t *testing.T) {
	p := Identity(10)
	k := Key(p)
	if k[9] != ':' {
		t.Errorf("Key(%v)[9] = %q, want ':'", p, k[9])
	}
}

func lexLess(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
