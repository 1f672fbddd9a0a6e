// Package solver implements an exact, value-maximizing multi-container
// packing solver. Items carry a weight and a value, containers carry a
// capacity, and synergy rules award a bonus when specific named items end up
// in the same container. The search is a single-threaded depth-first branch
// and bound: items are ordered by descending value/weight ratio, a fractional
// relaxation over the pooled remaining capacity bounds each subtree, and the
// best complete assignment found is aggregated into per-container results.
package solver
