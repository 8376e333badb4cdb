package builder

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/distspan/ist/pkg/errors"
	"github.com/distspan/ist/pkg/observability"
	"github.com/distspan/ist/pkg/perm"
)

// WriteDOT emits one DOT file per tree under outDir/<n>/, per spec.md §4.8.
// Edges are written by iterating parent ids in ascending order; parents
// with no children are skipped. Children of a given parent are written in
// the order adj stores them, which Aggregate populates per the §4.7
// ordering guarantee.
func WriteDOT(ctx context.Context, table *perm.Table, n int, adj Adjacency, outDir string) error {
	start := time.Now()
	dir := filepath.Join(outDir, fmt.Sprintf("%d", n))
	observability.Build().OnWriteStart(ctx, len(adj), dir)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		err = errors.Wrap(errors.ErrCodeIO, err, "create output directory %s", dir)
		observability.Build().OnWriteComplete(ctx, 0, time.Since(start), err)
		return err
	}

	for t := 1; t <= len(adj); t++ {
		if err := writeTree(table, n, t, adj[t], dir); err != nil {
			observability.Build().OnWriteComplete(ctx, t-1, time.Since(start), err)
			return err
		}
	}

	observability.Build().OnWriteComplete(ctx, len(adj), time.Since(start), nil)
	return nil
}

func writeTree(table *perm.Table, n, t int, children [][]uint32, dir string) error {
	path := filepath.Join(dir, fmt.Sprintf("Tree_%d_%d.dot", n, t))

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "digraph Tree%d_%d {\n", n, t)
	w.WriteString("    rankdir = LR;\n")

	for p, kids := range children {
		if len(kids) == 0 {
			continue
		}
		parentKey := perm.Key(table.Perms[p])
		for _, c := range kids {
			fmt.Fprintf(w, "    \"%s\" -> \"%s\";\n", parentKey, perm.Key(table.Perms[c]))
		}
	}
	w.WriteString("}\n")

	if err := w.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
