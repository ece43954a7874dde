// SPDX-License-Identifier: MIT

package genome

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/genograph/bfs"
	"github.com/katalvlaran/genograph/dfs"
	"github.com/katalvlaran/genograph/layer"
)

// forward is the live successor list of id. It is read-only for callers.
func (s *Store) forward(id NodeID) []NodeID {
	if n, ok := s.nodes[id]; ok {
		return n.Next
	}
	return nil
}

// walk searches from starts along next. The result is empty, never nil.
func walk(next bfs.Neighborhood[NodeID], starts ...NodeID) *bfs.Result[NodeID] {
	res, err := bfs.BFS(next, starts)
	if err != nil {
		// Only a nil neighbourhood fails, and callers never pass one.
		return &bfs.Result[NodeID]{Depth: map[NodeID]int{}}
	}
	return res
}

// link appends the edge to both endpoint lists without touching shapes.
func (s *Store) link(from, to *Node) {
	from.Next = append(from.Next, to.ID)
	to.Previous = append(to.Previous, from.ID)
}

// unlink removes one occurrence of the edge from both endpoint lists.
// It reports false when the edge does not exist.
func (s *Store) unlink(from, to *Node) bool {
	i := indexOf(from.Next, to.ID)
	j := indexOf(to.Previous, from.ID)
	if i < 0 || j < 0 {
		return false
	}
	from.Next = removeAt(from.Next, i)
	to.Previous = removeAt(to.Previous, j)
	return true
}

// attach links from → to and cascades shapes forward from to.
func (s *Store) attach(from, to *Node) {
	s.link(from, to)
	s.propagate(to.ID)
}

// detach unlinks from → to and re-derives to and everything downstream.
func (s *Store) detach(from, to *Node) bool {
	if !s.unlink(from, to) {
		return false
	}
	s.propagate(to.ID)
	return true
}

// propagate re-derives seed and cascades into its forward closure.
//
// The closure is processed in topological order; a node is recomputed only
// when it is the seed or a predecessor's output changed, so every node is
// visited at most once per call.
func (s *Store) propagate(seed NodeID) {
	closure := walk(s.forward, seed).Order
	order, err := dfs.TopologicalSort(closure, s.forward)
	if err != nil {
		s.logger.Warn("shape cascade over cyclic closure",
			zap.Uint64("seed", uint64(seed)), zap.Error(err))
		order = closure
	}

	dirty := map[NodeID]struct{}{seed: {}}
	for _, id := range order {
		if _, ok := dirty[id]; !ok {
			continue
		}
		n := s.nodes[id]
		if !s.derive(n) {
			continue
		}
		for _, succ := range n.Next {
			dirty[succ] = struct{}{}
		}
	}
}

// derive recomputes n's input shape from its predecessors and its output
// shape from that input. It reports whether the output shape changed.
func (s *Store) derive(n *Node) bool {
	in, out := s.expected(n)
	changed := !out.Equal(n.OutputShape)
	n.InputShape = in
	n.OutputShape = out
	return changed
}

// expected computes the shapes n should carry given its current predecessors.
func (s *Store) expected(n *Node) (layer.Shape, layer.Shape) {
	preds := make([]layer.Shape, 0, len(n.Previous))
	for _, p := range n.Previous {
		if pn, ok := s.nodes[p]; ok {
			preds = append(preds, pn.OutputShape)
		}
	}
	in := layer.MergeInputs(n.Spec, preds)
	return in, layer.OutputShape(n.Spec, in)
}

func indexOf(ids []NodeID, id NodeID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func removeAt(ids []NodeID, i int) []NodeID {
	out := make([]NodeID, 0, len(ids)-1)
	out = append(out, ids[:i]...)
	return append(out, ids[i+1:]...)
}

func countOf(ids []NodeID, id NodeID) int {
	c := 0
	for _, v := range ids {
		if v == id {
			c++
		}
	}
	return c
}
