// SPDX-License-Identifier: MIT

package dfs

import "errors"

// VertexState represents the DFS visitation state of a vertex.
const (
	White = iota // White: the vertex has not been visited yet.
	Gray         // Gray: the vertex is on the DFS stack (visiting).
	Black        // Black: the vertex and all its descendants have been fully explored.
)

var (
	// ErrNilNeighborhood is returned when a nil adjacency function is passed.
	ErrNilNeighborhood = errors.New("dfs: neighborhood is nil")

	// ErrCycleDetected indicates that a cycle was encountered during TopologicalSort.
	ErrCycleDetected = errors.New("dfs: cycle detected")
)

// Neighborhood lists the successors of v along directed edges.
type Neighborhood[V comparable] func(v V) []V
