// SPDX-License-Identifier: MIT

// Package dfs implements depth-first algorithms on directed graphs given as
// adjacency functions: reachability (used as an acyclicity guard before an
// edge is inserted) and topological sort (execution order of a layer graph).
//
// TopologicalSort uses three-color marking:
//
//	White – not visited yet
//	Gray  – on the current DFS path
//	Black – fully explored
//
// A Gray→Gray edge is a back-edge and reports ErrCycleDetected.
//
// Complexity:
//
//   - Time:   O(V + E)
//   - Memory: O(V)
package dfs
