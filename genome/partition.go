// SPDX-License-Identifier: MIT

package genome

import (
	"maps"

	"go.uber.org/zap"

	"github.com/katalvlaran/genograph/bfs"
	"github.com/katalvlaran/genograph/layer"
)

// adopt creates a genome with a fresh id over members and points their
// owner entries at it.
func (s *Store) adopt(members []NodeID) *genomeRecord {
	rec := &genomeRecord{
		id:      s.newGenomeID(),
		members: make(map[NodeID]struct{}, len(members)),
	}
	for _, id := range members {
		rec.members[id] = struct{}{}
		s.owner[id] = rec.id
	}
	s.genomes[rec.id] = rec
	s.summarize(rec)
	return rec
}

// merge moves every member of loser into winner and discards loser's record.
func (s *Store) merge(winner, loser *genomeRecord) {
	for id := range loser.members {
		winner.members[id] = struct{}{}
		s.owner[id] = winner.id
	}
	delete(s.genomes, loser.id)
	s.summarize(winner)
	s.logger.Debug("genomes merged",
		zap.Stringer("genome", winner.id),
		zap.Stringer("absorbed", loser.id),
		zap.Int("members", len(winner.members)))
}

// retire discards a genome record. Members must already be re-owned or gone.
func (s *Store) retire(rec *genomeRecord) {
	delete(s.genomes, rec.id)
}

// summarize refreshes the boundary summary by a fresh degree scan.
func (s *Store) summarize(rec *genomeRecord) {
	rec.inputs, rec.outputs, rec.valid = s.scan(rec.members)
}

// scan classifies members by degree: empty Previous → input boundary,
// empty Next → output boundary. Valid requires at least one of each with
// every input of kind Input and every output of kind Output.
func (s *Store) scan(members map[NodeID]struct{}) ([]NodeID, []NodeID, bool) {
	ids := make([]NodeID, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sortIDs(ids)

	var inputs, outputs []NodeID
	valid := true
	for _, id := range ids {
		n := s.nodes[id]
		if len(n.Previous) == 0 {
			inputs = append(inputs, id)
			valid = valid && n.Kind() == layer.KindInput
		}
		if len(n.Next) == 0 {
			outputs = append(outputs, id)
			valid = valid && n.Kind() == layer.KindOutput
		}
	}
	valid = valid && len(inputs) > 0 && len(outputs) > 0
	return inputs, outputs, valid
}

// component searches the weakly-connected component of start.
func (s *Store) component(start NodeID) *bfs.Result[NodeID] {
	return walk(s.Neighbors, start)
}

// components enumerates the distinct components reached from seeds, in
// seed order. Seeds that are gone or already absorbed are skipped.
func (s *Store) components(seeds []NodeID) [][]NodeID {
	seen := make(map[NodeID]struct{})
	var out [][]NodeID
	for _, seed := range seeds {
		if _, ok := s.nodes[seed]; !ok {
			continue
		}
		if _, ok := seen[seed]; ok {
			continue
		}
		comp := s.component(seed)
		maps.Copy(seen, comp.Set())
		if len(comp.Order) > 0 {
			out = append(out, comp.Order)
		}
	}
	return out
}

// repartition replaces rec with one fresh genome per component reached from
// seeds and returns the new ids.
func (s *Store) repartition(rec *genomeRecord, seeds []NodeID) []GenomeID {
	s.retire(rec)
	comps := s.components(seeds)
	ids := make([]GenomeID, 0, len(comps))
	for _, comp := range comps {
		ids = append(ids, s.adopt(comp).id)
	}
	s.logger.Debug("genome repartitioned",
		zap.Stringer("retired", rec.id),
		zap.Int("genomes", len(ids)))
	return ids
}
