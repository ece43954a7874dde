// SPDX-License-Identifier: MIT

package genome

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/genograph/dfs"
	"github.com/katalvlaran/genograph/layer"
)

// Import adds specs as new nodes and connects them by index pairs, bypassing
// the compatibility gate. It restores persisted state, so the only structural
// requirement is that the edge set is acyclic.
//
// Everything is validated first: a bad spec, an out-of-range index or a
// cycle fails the call with the store untouched. Shapes are derived in
// topological order and one genome is created per component.
func (s *Store) Import(specs []layer.Spec, edges []Edge) (*Imported, error) {
	ev := Event{Op: OpImport}
	imp, err := s.importGraph(specs, edges)
	ev.Err = err
	if imp != nil {
		ev.Created = len(imp.Genomes)
	}
	s.emit(ev)
	return imp, err
}

func (s *Store) importGraph(specs []layer.Spec, edges []Edge) (*Imported, error) {
	for i, spec := range specs {
		if err := layer.Validate(spec); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
	}
	adj := make([][]int, len(specs))
	for k, e := range edges {
		if e.From < 0 || e.From >= len(specs) || e.To < 0 || e.To >= len(specs) {
			return nil, fmt.Errorf("%w: edge %d (%d -> %d) with %d nodes",
				ErrEdgeIndexOutOfRange, k, e.From, e.To, len(specs))
		}
		adj[e.From] = append(adj[e.From], e.To)
	}
	indices := make([]int, len(specs))
	for i := range indices {
		indices[i] = i
	}
	order, err := dfs.TopologicalSort(indices, func(i int) []int { return adj[i] })
	if err != nil {
		if errors.Is(err, dfs.ErrCycleDetected) {
			return nil, fmt.Errorf("%w: %w", ErrCycle, err)
		}
		return nil, err
	}

	nodes := make([]*Node, len(specs))
	imp := &Imported{Nodes: make([]NodeID, len(specs))}
	for i, spec := range specs {
		nodes[i] = &Node{ID: nextNodeID(), Spec: layer.Clone(spec)}
		s.nodes[nodes[i].ID] = nodes[i]
		imp.Nodes[i] = nodes[i].ID
	}
	for _, e := range edges {
		s.link(nodes[e.From], nodes[e.To])
	}
	for _, i := range order {
		s.derive(nodes[i])
	}
	for _, comp := range s.components(imp.Nodes) {
		imp.Genomes = append(imp.Genomes, s.adopt(comp).id)
	}

	s.logger.Debug("graph imported",
		zap.Int("nodes", len(specs)),
		zap.Int("edges", len(edges)),
		zap.Int("genomes", len(imp.Genomes)))
	return imp, nil
}

// Order returns the members of genome id in topological (execution) order.
// The result is deterministic for a given graph.
func (s *Store) Order(id GenomeID) ([]NodeID, error) {
	rec, ok := s.genomes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGenomeNotFound, id)
	}
	members := rec.snapshot().Members
	order, err := dfs.TopologicalSort(members, s.forward)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvariant, err)
	}
	return order, nil
}
