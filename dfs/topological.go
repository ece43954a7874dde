// SPDX-License-Identifier: MIT

package dfs

import "fmt"

// frame is one vertex on the explicit DFS stack together with the
// successors still to be explored.
type frame[V comparable] struct {
	id   V
	succ []V
	i    int
}

// topoSorter encapsulates state for a topological sort traversal.
type topoSorter[V comparable] struct {
	next  Neighborhood[V] // successor lookup
	state map[V]int       // visitation state: White, Gray, Black
	stack []frame[V]      // Gray vertices, innermost last
	order []V             // recorded post-order sequence
}

// TopologicalSort computes an ordering of vertices such that for every
// directed edge u→v, u appears before v.
//
// DFS is launched from each vertex in the given order, so the result is
// deterministic for a deterministic neighborhood. Successors that are not
// listed in vertices are still explored and included. The walk keeps its
// own stack, so depth is bounded by memory rather than the goroutine stack.
// If a cycle is detected, returns ErrCycleDetected.
func TopologicalSort[V comparable](vertices []V, next Neighborhood[V]) ([]V, error) {
	// 1. Validate adjacency
	if next == nil {
		return nil, ErrNilNeighborhood
	}
	// 2. Initialize sorter state
	sorter := &topoSorter[V]{
		next:  next,
		state: make(map[V]int, len(vertices)),
		order: make([]V, 0, len(vertices)),
	}
	// 3. Drive DFS from every unvisited vertex
	for _, v := range vertices {
		if sorter.state[v] == White {
			if err := sorter.visit(v); err != nil {
				return nil, err
			}
		}
	}
	// 4. Reverse post-order to produce topological order
	for i, j := 0, len(sorter.order)-1; i < j; i, j = i+1, j-1 {
		sorter.order[i], sorter.order[j] = sorter.order[j], sorter.order[i]
	}

	return sorter.order, nil
}

// push marks id in progress and stacks it with its successors.
func (t *topoSorter[V]) push(id V) {
	t.state[id] = Gray
	t.stack = append(t.stack, frame[V]{id: id, succ: t.next(id)})
}

// visit runs DFS from root, recording vertices in post-order. Reaching a
// Gray vertex means a back-edge, i.e. a cycle.
func (t *topoSorter[V]) visit(root V) error {
	t.push(root)
	for len(t.stack) > 0 {
		top := &t.stack[len(t.stack)-1]
		if top.i == len(top.succ) {
			// All successors done: mark Black and emit
			t.state[top.id] = Black
			t.order = append(t.order, top.id)
			t.stack = t.stack[:len(t.stack)-1]
			continue
		}
		nbr := top.succ[top.i]
		top.i++
		switch t.state[nbr] {
		case Gray:
			t.stack = t.stack[:0]
			return fmt.Errorf("%w: at %v", ErrCycleDetected, nbr)
		case White:
			t.push(nbr)
		}
	}
	return nil
}
