// SPDX-License-Identifier: MIT

package genome

import (
	"fmt"

	"github.com/katalvlaran/genograph/dfs"
	"github.com/katalvlaran/genograph/layer"
)

// gate decides whether from → to may be attached given to's live state.
// It never mutates the store.
func (s *Store) gate(from, to *Node) error {
	if err := s.acyclic(from, to); err != nil {
		return err
	}
	port := layer.Port{Predecessors: len(to.Previous), Input: to.InputShape}
	if !layer.Accepts(to.Spec, port, from.OutputShape) {
		return rejection(from, to)
	}
	return nil
}

// gateDetached is gate without the predecessor-count precondition. to's
// input shape still constrains merge kinds.
func (s *Store) gateDetached(from, to *Node) error {
	if err := s.acyclic(from, to); err != nil {
		return err
	}
	if !layer.AcceptsDetached(to.Spec, to.InputShape, from.OutputShape) {
		return rejection(from, to)
	}
	return nil
}

// acyclic rejects self-loops and edges that would close a directed cycle.
func (s *Store) acyclic(from, to *Node) error {
	if from.ID == to.ID {
		return fmt.Errorf("%w: %w: node %d", ErrIncompatibleEdge, ErrSelfLoop, from.ID)
	}
	if dfs.Reaches(s.forward, to.ID, from.ID) {
		return fmt.Errorf("%w: %w: %d -> %d", ErrIncompatibleEdge, ErrCycle, from.ID, to.ID)
	}
	return nil
}

func rejection(from, to *Node) error {
	return fmt.Errorf("%w: %s %d (output %s) -> %s %d (input %s, %d predecessors)",
		ErrIncompatibleEdge,
		from.Kind(), from.ID, from.OutputShape,
		to.Kind(), to.ID, to.InputShape, len(to.Previous))
}
