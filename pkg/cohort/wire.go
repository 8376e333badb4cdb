package cohort

// Edge is a single (parent_id, child_id) tuple, the payload element of
// spec.md §4.7's M_EDGES message.
type Edge struct {
	Parent uint32
	Child  uint32
}

// TreeEdges holds the generated edges for one tree, in the unspecified
// order the generator produced them (spec.md §4.6).
type TreeEdges struct {
	Tree  int
	Edges []Edge
}

// Payload is everything a single worker sends to the coordinator: its
// M_COUNT, M_TREES and per-tree M_EDGE_COUNT/M_EDGES messages of spec.md
// §4.7, bundled as one unit for the Go transport.
type Payload struct {
	Rank  int
	Trees []TreeEdges
}
