// SPDX-License-Identifier: MIT

package genome

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/genograph/layer"
)

// RemoveNode severs every edge incident to id and discards the node.
//
// An isolated node takes its genome with it. Otherwise the genome is retired
// and every distinct remainder reachable from a former neighbour becomes a
// new genome with a fresh id.
func (s *Store) RemoveNode(id NodeID) error {
	ev := Event{Op: OpRemoveNode}
	err := s.removeNode(id, &ev)
	ev.Err = err
	s.emit(ev)
	return err
}

func (s *Store) removeNode(id NodeID, ev *Event) error {
	n, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	neighbors := s.Neighbors(id)
	s.sever(n)

	rec := s.genomes[s.owner[id]]
	delete(rec.members, id)
	delete(s.owner, id)
	delete(s.nodes, id)
	ev.Retired = 1

	if len(rec.members) == 0 {
		s.retire(rec)
		s.logger.Debug("node removed with its genome",
			zap.Uint64("node", uint64(id)),
			zap.Stringer("genome", rec.id))
		return nil
	}

	ids := s.repartition(rec, neighbors)
	ev.Created = len(ids)
	s.logger.Debug("node removed",
		zap.Uint64("node", uint64(id)),
		zap.Int("genomes", len(ids)))
	return nil
}

// sever detaches every edge of n, successors first, re-deriving shapes of
// each former successor.
func (s *Store) sever(n *Node) {
	for _, succ := range cloneIDs(n.Next) {
		s.detach(n, s.nodes[succ])
	}
	for _, pred := range cloneIDs(n.Previous) {
		s.unlink(s.nodes[pred], n)
	}
}

// EditNode replaces node id with a new node built from spec.
//
// The replacement gets a fresh NodeID and inherits the genome and position.
// Former incoming edges are retried through the gate against the
// replacement's live state; former outgoing edges through the detached
// check. Edges that fail are dropped and counted in the report. If the drops
// disconnect the genome it is split into fresh genomes.
func (s *Store) EditNode(id NodeID, spec layer.Spec) (EditReport, error) {
	ev := Event{Op: OpEditNode}
	rep, err := s.editNode(id, spec, &ev)
	ev.Err = err
	ev.Dropped = rep.Dropped
	s.emit(ev)
	return rep, err
}

func (s *Store) editNode(id NodeID, spec layer.Spec, ev *Event) (EditReport, error) {
	old, ok := s.nodes[id]
	if !ok {
		return EditReport{}, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	if err := layer.Validate(spec); err != nil {
		return EditReport{}, err
	}

	prevs, nexts := cloneIDs(old.Previous), cloneIDs(old.Next)
	s.sever(old)

	rec := s.genomes[s.owner[id]]
	delete(rec.members, id)
	delete(s.owner, id)
	delete(s.nodes, id)

	repl := &Node{ID: nextNodeID(), Spec: layer.Clone(spec), Position: old.Position}
	s.derive(repl)
	s.nodes[repl.ID] = repl
	s.owner[repl.ID] = rec.id
	rec.members[repl.ID] = struct{}{}

	rep := EditReport{Node: repl.ID}
	for _, p := range prevs {
		s.restore(s.nodes[p], repl, s.gate, &rep)
	}
	for _, q := range nexts {
		s.restore(repl, s.nodes[q], s.gateDetached, &rep)
	}

	seeds := make([]NodeID, 0, 1+len(prevs)+len(nexts))
	seeds = append(seeds, repl.ID)
	seeds = append(seeds, prevs...)
	seeds = append(seeds, nexts...)
	if len(s.components(seeds)) == 1 {
		s.summarize(rec)
		rep.Genomes = []GenomeID{rec.id}
	} else {
		rep.Genomes = s.repartition(rec, seeds)
		ev.Retired = 1
		ev.Created = len(rep.Genomes)
	}

	s.logger.Debug("node edited",
		zap.Uint64("old", uint64(id)),
		zap.Uint64("node", uint64(repl.ID)),
		zap.Stringer("kind", repl.Kind()),
		zap.Int("restored", rep.Restored),
		zap.Int("dropped", rep.Dropped))
	return rep, nil
}

// restore reattaches from → to if check allows it, counting the outcome.
func (s *Store) restore(from, to *Node, check func(from, to *Node) error, rep *EditReport) {
	if err := check(from, to); err != nil {
		rep.Dropped++
		s.logger.Debug("edge dropped on edit",
			zap.Uint64("from", uint64(from.ID)),
			zap.Uint64("to", uint64(to.ID)),
			zap.Error(err))
		return
	}
	s.attach(from, to)
	rep.Restored++
}
