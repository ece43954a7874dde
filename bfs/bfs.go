// SPDX-License-Identifier: MIT

package bfs

import "fmt"

// queueItem pairs a vertex with its BFS depth.
type queueItem[V comparable] struct {
	id    V
	depth int
}

// walker encapsulates mutable BFS state.
type walker[V comparable] struct {
	next    Neighborhood[V]
	opts    Options[V]
	queue   []queueItem[V]
	visited map[V]bool
	res     *Result[V]
}

// BFS runs breadth-first search from every vertex in starts, applying any
// number of functional Options. Duplicate starts are visited once.
// Returns ErrNilNeighborhood for a nil adjacency or any user-supplied hook
// error.
func BFS[V comparable](next Neighborhood[V], starts []V, opts ...Option[V]) (*Result[V], error) {
	if next == nil {
		return nil, ErrNilNeighborhood
	}
	o := DefaultOptions[V]()
	for _, opt := range opts {
		opt(&o)
	}

	w := &walker[V]{
		next:    next,
		opts:    o,
		queue:   make([]queueItem[V], 0, len(starts)),
		visited: make(map[V]bool, len(starts)),
		res: &Result[V]{
			Order: make([]V, 0, len(starts)),
			Depth: make(map[V]int, len(starts)),
		},
	}

	// Seed the frontier with every start
	for _, s := range starts {
		if !w.visited[s] {
			w.enqueue(s, 0)
		}
	}

	return w.res, w.loop()
}

// enqueue marks id visited at depth d and adds it to the queue.
func (w *walker[V]) enqueue(id V, d int) {
	w.visited[id] = true
	w.res.Depth[id] = d
	w.queue = append(w.queue, queueItem[V]{id: id, depth: d})
}

// loop processes the queue until empty or a hook error.
func (w *walker[V]) loop() error {
	for len(w.queue) > 0 {
		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %v: %w", item.id, err)
		}
		w.enqueueNeighbors(item)
	}
	return nil
}

// enqueueNeighbors enqueues each unseen neighbor one level deeper.
func (w *walker[V]) enqueueNeighbors(item queueItem[V]) {
	for _, nbr := range w.next(item.id) {
		if !w.visited[nbr] {
			w.enqueue(nbr, item.depth+1)
		}
	}
}
