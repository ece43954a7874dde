// SPDX-License-Identifier: MIT

package bfs

import "errors"

// ErrNilNeighborhood is returned if a nil adjacency function is passed.
var ErrNilNeighborhood = errors.New("bfs: neighborhood is nil")

// Neighborhood lists the vertices adjacent to v, in exploration order.
// It must not mutate the underlying graph.
type Neighborhood[V comparable] func(v V) []V

// Option configures BFS behavior via functional arguments.
type Option[V comparable] func(*Options[V])

// Options holds callbacks to customize BFS execution.
type Options[V comparable] struct {
	// OnVisit is called when visiting a vertex. If it returns an error,
	// BFS aborts and propagates that error.
	OnVisit func(id V, depth int) error
}

// DefaultOptions returns Options with a no-op visit hook.
func DefaultOptions[V comparable]() Options[V] {
	return Options[V]{
		OnVisit: func(V, int) error { return nil },
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the BFS.
func WithOnVisit[V comparable](fn func(id V, depth int) error) Option[V] {
	return func(o *Options[V]) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// Result holds the outcome of a BFS traversal:
//   - Order: vertices visited, in first-visit sequence.
//   - Depth: map from vertex to its distance (in edges) from the nearest start.
type Result[V comparable] struct {
	Order []V
	Depth map[V]int
}

// Reached reports whether v was visited.
func (r *Result[V]) Reached(v V) bool {
	_, ok := r.Depth[v]
	return ok
}

// Set returns the visited vertices as a membership set.
func (r *Result[V]) Set() map[V]struct{} {
	out := make(map[V]struct{}, len(r.Order))
	for _, v := range r.Order {
		out[v] = struct{}{}
	}
	return out
}
