// Package order computes a deterministic topological order over indexed
// nodes, with pluggable tie-breaking and cycle reporting.
package order
