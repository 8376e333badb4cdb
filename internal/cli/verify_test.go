package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/distspan/ist/pkg/builder"
	"github.com/distspan/ist/pkg/perm"
)

func newTestCLI() *CLI {
	return &CLI{Logger: newLogger(&bytes.Buffer{}, log.InfoLevel)}
}

// TestRunVerify_RealBuildPasses builds a real forest of trees with
// pkg/builder and checks runVerify accepts it: every tree spans the full
// vertex set exactly once (acyclic, reaches the root, n!-1 edges) and the
// n-1 trees are pairwise edge-disjoint.
func TestRunVerify_RealBuildPasses(t *testing.T) {
	const n = 5
	dir := t.TempDir()

	if _, err := builder.RunSerial(context.Background(), n, dir); err != nil {
		t.Fatalf("RunSerial(%d): %v", n, err)
	}

	c := newTestCLI()
	if err := c.runVerify(context.Background(), n, dir, false); err != nil {
		t.Fatalf("runVerify(%d) on a real build: %v", n, err)
	}
}

// TestRunVerify_DetectsSharedEdge corrupts one tree's file so it reuses an
// edge from another tree and checks runVerify rejects the forest.
func TestRunVerify_DetectsSharedEdge(t *testing.T) {
	const n = 4
	dir := t.TempDir()

	if _, err := builder.RunSerial(context.Background(), n, dir); err != nil {
		t.Fatalf("RunSerial(%d): %v", n, err)
	}

	tree1Path := filepath.Join(dir, fmt.Sprintf("%d", n), fmt.Sprintf("Tree_%d_1.dot", n))
	tree2Path := filepath.Join(dir, fmt.Sprintf("%d", n), fmt.Sprintf("Tree_%d_2.dot", n))

	tree1, err := os.ReadFile(tree1Path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(tree2Path, tree1, 0o644); err != nil {
		t.Fatal(err)
	}

	c := newTestCLI()
	if err := c.runVerify(context.Background(), n, dir, false); err == nil {
		t.Fatal("runVerify accepted two trees sharing every edge, want an error")
	}
}

// TestIndependentSpanningTrees_VertexDisjointPaths checks spec.md's
// independence property directly: for every non-root vertex, its path to
// the root in each of the n-1 trees shares no internal vertex with its path
// in any other tree.
func TestIndependentSpanningTrees_VertexDisjointPaths(t *testing.T) {
	const n = 5
	dir := t.TempDir()

	if _, err := builder.RunSerial(context.Background(), n, dir); err != nil {
		t.Fatalf("RunSerial(%d): %v", n, err)
	}

	table, err := perm.NewTable(n)
	if err != nil {
		t.Fatal(err)
	}
	root := perm.Key(perm.Identity(n))

	parentMaps := make([]map[string]string, n-1)
	for tIdx := 1; tIdx <= n-1; tIdx++ {
		path := filepath.Join(dir, fmt.Sprintf("%d", n), fmt.Sprintf("Tree_%d_%d.dot", n, tIdx))
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		edges, err := perm.ParseDOT(data)
		if err != nil {
			t.Fatal(err)
		}
		parentOf := make(map[string]string, len(edges))
		for _, e := range edges {
			parentOf[e.Child] = e.Parent
		}
		parentMaps[tIdx-1] = parentOf
	}

	pathToRoot := func(parentOf map[string]string, v string) []string {
		var path []string
		cur := v
		for i := 0; i < table.Len(); i++ {
			if cur == root {
				return path
			}
			path = append(path, cur)
			next, ok := parentOf[cur]
			if !ok {
				t.Fatalf("vertex %q does not reach root", v)
			}
			cur = next
		}
		t.Fatalf("vertex %q: path to root exceeded vertex count, likely a cycle", v)
		return nil
	}

	checked := 0
	for _, p := range table.Perms {
		v := perm.Key(p)
		if v == root {
			continue
		}

		paths := make([][]string, n-1)
		for i, parentOf := range parentMaps {
			paths[i] = pathToRoot(parentOf, v)
		}

		for i := 0; i < len(paths); i++ {
			internalI := paths[i]
			if len(internalI) > 0 {
				internalI = internalI[1:] // drop v itself, keep only internal vertices
			}
			seen := make(map[string]bool, len(internalI))
			for _, u := range internalI {
				seen[u] = true
			}
			for j := i + 1; j < len(paths); j++ {
				internalJ := paths[j]
				if len(internalJ) > 0 {
					internalJ = internalJ[1:]
				}
				for _, u := range internalJ {
					if seen[u] {
						t.Fatalf("vertex %q: tree %d and tree %d paths to root share internal vertex %q", v, i+1, j+1, u)
					}
				}
			}
		}
		checked++
	}

	if checked != table.Len()-1 {
		t.Fatalf("checked %d vertices, want %d", checked, table.Len()-1)
	}
}
