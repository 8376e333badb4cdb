// Package builder orchestrates a single rank's pass through the full
// construction pipeline of spec.md §4: table initialization, tree-range
// assignment, edge generation, aggregation onto rank 0, and DOT emission.
//
// [Run] drives one rank end to end; [RunSerial] is the W=1 special case
// used as spec.md §4.9's test oracle and is guaranteed to produce
// byte-identical output to the distributed path run with world size 1.
package builder
