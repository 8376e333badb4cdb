package builder

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/distspan/ist/pkg/cohort"
)

func countLines(t *testing.T, path string, prefix string) int {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.HasPrefix(strings.TrimSpace(sc.Text()), prefix) {
			n++
		}
	}
	return n
}

func TestRunSerial_N2SingleEdge(t *testing.T) {
	dir := t.TempDir()
	res, err := RunSerial(context.Background(), 2, dir)
	if err != nil {
		t.Fatal(err)
	}
	if res.EdgeCount != 1 {
		t.Errorf("EdgeCount = %d, want 1", res.EdgeCount)
	}

	path := filepath.Join(dir, "2", "Tree_2_1.dot")
	if got := countLines(t, path, `"`); got != 1 {
		t.Errorf("Tree_2_1.dot has %d edge lines, want 1", got)
	}
}

func TestRunSerial_N4EdgeCountPerTree(t *testing.T) {
	dir := t.TempDir()
	if _, err := RunSerial(context.Background(), 4, dir); err != nil {
		t.Fatal(err)
	}
	for treeT := 1; treeT <= 3; treeT++ {
		path := filepath.Join(dir, "4", "Tree_4_"+strconv.Itoa(treeT)+".dot")
		if got := countLines(t, path, `"`); got != 23 {
			t.Errorf("Tree_4_%d.dot has %d edge lines, want 23", treeT, got)
		}
	}
}

func TestRunSerial_N5FileCount(t *testing.T) {
	dir := t.TempDir()
	if _, err := RunSerial(context.Background(), 5, dir); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(filepath.Join(dir, "5"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 {
		t.Errorf("dot/5 has %d files, want 4", len(entries))
	}
}

func TestRunSerial_Determinism(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	if _, err := RunSerial(context.Background(), 4, dirA); err != nil {
		t.Fatal(err)
	}
	if _, err := RunSerial(context.Background(), 4, dirB); err != nil {
		t.Fatal(err)
	}
	for treeT := 1; treeT <= 3; treeT++ {
		name := "Tree_4_" + strconv.Itoa(treeT) + ".dot"
		a, err := os.ReadFile(filepath.Join(dirA, "4", name))
		if err != nil {
			t.Fatal(err)
		}
		b, err := os.ReadFile(filepath.Join(dirB, "4", name))
		if err != nil {
			t.Fatal(err)
		}
		if string(a) != string(b) {
			t.Errorf("%s differs across runs", name)
		}
	}
}

func TestRun_DistributedMatchesSerial(t *testing.T) {
	const n = 5
	const world = 3

	serialDir := t.TempDir()
	if _, err := RunSerial(context.Background(), n, serialDir); err != nil {
		t.Fatal(err)
	}

	distDir := t.TempDir()
	transport := cohort.NewLocal(world)
	defer transport.Close()

	errs := make(chan error, world)
	for rank := 1; rank < world; rank++ {
		go func(rank int) {
			_, err := Run(context.Background(), Options{N: n, Rank: rank, World: world, OutDir: distDir}, transport)
			errs <- err
		}(rank)
	}

	_, err := Run(context.Background(), Options{N: n, Rank: 0, World: world, OutDir: distDir}, transport)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < world; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("worker rank failed: %v", err)
		}
	}

	for treeT := 1; treeT <= n-1; treeT++ {
		name := "Tree_5_" + strconv.Itoa(treeT) + ".dot"
		serialBytes, err := os.ReadFile(filepath.Join(serialDir, "5", name))
		if err != nil {
			t.Fatal(err)
		}
		distBytes, err := os.ReadFile(filepath.Join(distDir, "5", name))
		if err != nil {
			t.Fatal(err)
		}
		if string(serialBytes) != string(distBytes) {
			t.Errorf("%s differs between serial (W=1) and distributed (W=%d) builds", name, world)
		}
	}
}

