package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/distspan/ist/pkg/errors"
	"github.com/distspan/ist/pkg/perm"
)

// verifyCommand implements `ist verify <n>`: it re-parses every DOT file a
// prior `ist build <n>` wrote and checks the testable structural properties
// of an independent spanning tree forest (spec.md §8): each tree spans
// every non-identity vertex exactly once, has no cycles, and the n-1 trees
// are pairwise edge-disjoint.
func (c *CLI) verifyCommand() *cobra.Command {
	var dir string
	var svg bool

	cmd := &cobra.Command{
		Use:   "verify <n>",
		Short: "Re-parse and validate a previously built forest of trees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeUsage, err, "parse n %q", args[0])
			}
			return c.runVerify(cmd.Context(), n, dir, svg)
		},
	}

	cmd.Flags().StringVar(&dir, "out", "dot", "output directory root the build wrote into")
	cmd.Flags().BoolVar(&svg, "svg", false, "also render each tree to an .svg file alongside its .dot")

	return cmd
}

func (c *CLI) runVerify(ctx context.Context, n int, outDir string, svg bool) error {
	if err := errors.ValidateN(n); err != nil {
		return err
	}

	table, err := perm.NewTable(n)
	if err != nil {
		return err
	}
	identity := perm.Key(perm.Identity(n))

	seen := make(map[[2]string]int) // undirected edge -> first tree that used it
	ok := true

	for t := 1; t <= n-1; t++ {
		path := filepath.Join(outDir, strconv.Itoa(n), fmt.Sprintf("Tree_%d_%d.dot", n, t))
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
		}

		edges, err := perm.ParseDOT(data)
		if err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "parse %s", path)
		}

		if len(edges) != table.Len()-1 {
			printError("tree %d: %d edges, want %d (one per non-identity vertex)", t, len(edges), table.Len()-1)
			ok = false
		}

		parentOf := make(map[string]string, len(edges))
		for _, e := range edges {
			if _, dup := parentOf[e.Child]; dup {
				printError("tree %d: vertex %q has more than one parent", t, e.Child)
				ok = false
			}
			parentOf[e.Child] = e.Parent

			key := undirectedKey(e.Parent, e.Child)
			if owner, used := seen[key]; used && owner != t {
				printError("tree %d: edge %s-%s was already used by tree %d (trees must be edge-disjoint)", t, e.Parent, e.Child, owner)
				ok = false
			} else if !used {
				seen[key] = t
			}
		}

		for child := range parentOf {
			if !reachesRoot(parentOf, child, identity, table.Len()) {
				printError("tree %d: vertex %q does not reach the root", t, child)
				ok = false
				break
			}
		}

		if svg {
			if err := renderTreeSVG(path); err != nil {
				c.Logger.Warn("render svg", "tree", t, "err", err)
			}
		}
	}

	if !ok {
		return errors.New(errors.ErrCodeInvariant, "verification failed for B_%d", n)
	}
	printSuccess("B_%d: %d trees verified (%d vertices each)", n, n-1, table.Len())
	return nil
}

// undirectedKey normalizes a (parent, child) pair so the same underlying
// graph edge always hashes the same regardless of which tree's direction it
// was recorded in.
func undirectedKey(a, b string) [2]string {
	if a <= b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}

// reachesRoot walks parentOf from start and reports whether it reaches
// root within maxSteps hops, which bounds the walk against a cycle caused
// by a malformed file.
func reachesRoot(parentOf map[string]string, start, root string, maxSteps int) bool {
	cur := start
	for i := 0; i < maxSteps; i++ {
		if cur == root {
			return true
		}
		next, ok := parentOf[cur]
		if !ok {
			return cur == root
		}
		cur = next
	}
	return false
}

// renderTreeSVG renders the DOT file at dotPath to a sibling .svg file.
func renderTreeSVG(dotPath string) error {
	data, err := os.ReadFile(dotPath)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "read %s", dotPath)
	}
	svgData, err := perm.RenderSVG(string(data))
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "render %s", dotPath)
	}
	svgPath := dotPath[:len(dotPath)-len(filepath.Ext(dotPath))] + ".svg"
	if err := os.WriteFile(svgPath, svgData, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", svgPath)
	}
	return nil
}
