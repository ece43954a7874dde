// SPDX-License-Identifier: MIT

package genome

import (
	"fmt"

	"go.uber.org/zap"
)

// AddEdge connects from → to through the compatibility gate.
//
// On rejection the store is untouched and the error wraps
// ErrIncompatibleEdge. On success shapes cascade forward from to; when the
// endpoints sit in different genomes, to's genome is absorbed into from's
// (from's id survives). The surviving genome's summary is then rescanned.
func (s *Store) AddEdge(from, to NodeID) error {
	ev := Event{Op: OpAddEdge}
	err := s.addEdge(from, to, &ev)
	ev.Err = err
	s.emit(ev)
	return err
}

func (s *Store) addEdge(fromID, toID NodeID, ev *Event) error {
	from, to, err := s.endpoints(fromID, toID)
	if err != nil {
		return err
	}
	if err := s.gate(from, to); err != nil {
		s.logger.Debug("edge rejected",
			zap.Uint64("from", uint64(fromID)),
			zap.Uint64("to", uint64(toID)),
			zap.Error(err))
		return err
	}

	s.attach(from, to)

	gf := s.genomes[s.owner[fromID]]
	gt := s.genomes[s.owner[toID]]
	if gf != gt {
		s.merge(gf, gt)
		ev.Merged = true
		ev.Retired = 1
		return nil
	}
	s.summarize(gf)
	return nil
}

// RemoveEdge disconnects one from → to edge and re-derives shapes downstream.
//
// If from and to remain weakly connected the genome keeps its id and only
// its summary is rescanned. Otherwise the genome is retired and both sides
// become new genomes with fresh ids.
func (s *Store) RemoveEdge(from, to NodeID) error {
	ev := Event{Op: OpRemoveEdge}
	err := s.removeEdge(from, to, &ev)
	ev.Err = err
	s.emit(ev)
	return err
}

func (s *Store) removeEdge(fromID, toID NodeID, ev *Event) error {
	from, to, err := s.endpoints(fromID, toID)
	if err != nil {
		return err
	}
	if !s.detach(from, to) {
		return fmt.Errorf("%w: %d -> %d", ErrEdgeNotFound, fromID, toID)
	}

	rec := s.genomes[s.owner[fromID]]
	if s.component(toID).Reached(fromID) {
		s.summarize(rec)
		return nil
	}

	ids := s.repartition(rec, []NodeID{toID, fromID})
	ev.Retired = 1
	ev.Created = len(ids)
	s.logger.Debug("genome split by edge removal",
		zap.Uint64("from", uint64(fromID)),
		zap.Uint64("to", uint64(toID)))
	return nil
}

// endpoints resolves both ends of an edge.
func (s *Store) endpoints(fromID, toID NodeID) (*Node, *Node, error) {
	from, ok := s.nodes[fromID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %d", ErrNodeNotFound, fromID)
	}
	to, ok := s.nodes[toID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %d", ErrNodeNotFound, toID)
	}
	return from, to, nil
}
