// Package partition implements the work partitioner of spec.md §4.5: a
// balanced block distribution of the tree range {1..n-1} across W
// distributed workers, with the remainder absorbed by the low-numbered
// ranks.
package partition
