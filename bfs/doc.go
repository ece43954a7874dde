// SPDX-License-Identifier: MIT

// Package bfs provides breadth-first search over any adjacency function,
// returning visit order and depths.
//
// The graph is described by a Neighborhood: a function that lists the
// vertices adjacent to a vertex, in the order they must be explored.
// BFS accepts several start vertices at once (multi-source search); every
// start is enqueued at depth 0 before any neighbor is expanded, so the
// visit order is the first-visit order of a single frontier.
//
// Hooks:
//
//	WithOnVisit(fn) – called for every visited vertex; an error aborts the search
//
// Result.Reached and Result.Set answer membership questions about the
// visited vertices.
//
// Complexity:
//
//   - Time:   O(V + E) with O(1) hooks
//   - Memory: O(V)
//
// The search is synchronous and bounded by the size of the reachable
// subgraph; there is no cancellation.
package bfs
