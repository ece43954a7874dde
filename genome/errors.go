// SPDX-License-Identifier: MIT

package genome

import "errors"

// Sentinel errors for genome store operations.
var (
	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("genome: node not found")

	// ErrEdgeNotFound indicates RemoveEdge on a pair that is not connected.
	ErrEdgeNotFound = errors.New("genome: edge not found")

	// ErrGenomeNotFound indicates a query for an unknown genome id.
	ErrGenomeNotFound = errors.New("genome: genome not found")

	// ErrIncompatibleEdge indicates the compatibility gate rejected an edge.
	// No mutation has occurred when it is returned.
	ErrIncompatibleEdge = errors.New("genome: incompatible edge")

	// ErrSelfLoop indicates an edge from a node to itself.
	ErrSelfLoop = errors.New("genome: self-loop")

	// ErrCycle indicates an edge (or edge set) that would close a directed cycle.
	ErrCycle = errors.New("genome: edge would create a cycle")

	// ErrEdgeIndexOutOfRange indicates an imported edge naming a missing node index.
	ErrEdgeIndexOutOfRange = errors.New("genome: edge index out of range")

	// ErrInvariant indicates Verify found an inconsistent store.
	ErrInvariant = errors.New("genome: invariant violated")
)
