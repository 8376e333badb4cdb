package perm

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// Edge is a single parsed "parent" -> "child" line from a DOT file written
// by [pkg/builder]'s emitter, keyed by the permutation's [Key] encoding
// rather than its vertex id (DOT files carry no numeric ids).
type Edge struct {
	Parent string
	Child  string
}

// ParseDOT recovers the edge list from a digraph written in the format
// produced by pkg/builder's DOT emitter (one `"parent" -> "child";` line per
// edge, ASCII, LF line endings). It is deliberately narrow: it does not
// implement the general DOT grammar, only the single-attribute-free subset
// this system ever writes.
//
// ParseDOT satisfies spec.md's round-trip property: re-parsing an emitted
// file recovers the same parent mapping that produced it, for any edge
// ordering.
func ParseDOT(data []byte) ([]Edge, error) {
	var edges []Edge
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		parent, child, ok := parseEdgeLine(line)
		if !ok {
			continue
		}
		edges = append(edges, Edge{Parent: parent, Child: child})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan dot: %w", err)
	}
	return edges, nil
}

func parseEdgeLine(line string) (parent, child string, ok bool) {
	const sep = "\" -> \""
	if !strings.HasPrefix(line, "\"") {
		return "", "", false
	}
	idx := strings.Index(line, sep)
	if idx < 0 {
		return "", "", false
	}
	parent = line[1:idx]
	rest := line[idx+len(sep):]
	end := strings.Index(rest, "\"")
	if end < 0 {
		return "", "", false
	}
	child = rest[:end]
	return parent, child, true
}

// RenderSVG renders a DOT document to SVG using Graphviz. It is not on the
// core build path; it backs the optional `ist verify --svg` flag for
// inspecting a generated tree.
func RenderSVG(dot string) ([]byte, error) {
	gv, err := graphviz.New(context.Background())
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse dot: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(context.Background(), g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
