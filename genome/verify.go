// SPDX-License-Identifier: MIT

package genome

import (
	"fmt"
)

// Verify checks every store invariant and returns the first violation,
// wrapped in ErrInvariant:
//
//   - partition: every node is owned by exactly one live genome whose member
//     set lists it, and no genome is empty;
//   - connectivity: each genome is exactly one weakly-connected component;
//   - mirror: from.Next holds to as many times as to.Previous holds from;
//   - shapes: every node's shapes equal their recomputation;
//   - summary: boundary lists and validity equal a fresh degree scan.
func (s *Store) Verify() error {
	if err := s.verifyPartition(); err != nil {
		return err
	}
	for _, id := range s.nodeIDs() {
		if err := s.verifyNode(s.nodes[id]); err != nil {
			return err
		}
	}
	for _, rec := range s.genomes {
		if err := s.verifyGenome(rec); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) verifyPartition() error {
	total := 0
	for gid, rec := range s.genomes {
		if gid != rec.id {
			return violation("genome %s keyed as %s", rec.id, gid)
		}
		if len(rec.members) == 0 {
			return violation("genome %s is empty", gid)
		}
		for id := range rec.members {
			if _, ok := s.nodes[id]; !ok {
				return violation("genome %s lists missing node %d", gid, id)
			}
			if s.owner[id] != gid {
				return violation("node %d listed by %s but owned by %s", id, gid, s.owner[id])
			}
		}
		total += len(rec.members)
	}
	if total != len(s.nodes) || len(s.owner) != len(s.nodes) {
		return violation("%d nodes, %d owned, %d genome members", len(s.nodes), len(s.owner), total)
	}
	return nil
}

func (s *Store) verifyNode(n *Node) error {
	for _, q := range n.Next {
		succ, ok := s.nodes[q]
		if !ok {
			return violation("node %d points to missing successor %d", n.ID, q)
		}
		if countOf(n.Next, q) != countOf(succ.Previous, n.ID) {
			return violation("edge %d -> %d not mirrored", n.ID, q)
		}
	}
	for _, p := range n.Previous {
		pred, ok := s.nodes[p]
		if !ok {
			return violation("node %d points to missing predecessor %d", n.ID, p)
		}
		if countOf(n.Previous, p) != countOf(pred.Next, n.ID) {
			return violation("edge %d -> %d not mirrored", p, n.ID)
		}
	}
	in, out := s.expected(n)
	if !in.Equal(n.InputShape) || !out.Equal(n.OutputShape) {
		return violation("node %d shapes %s -> %s, want %s -> %s",
			n.ID, n.InputShape, n.OutputShape, in, out)
	}
	return nil
}

func (s *Store) verifyGenome(rec *genomeRecord) error {
	var first NodeID
	for id := range rec.members {
		first = id
		break
	}
	comp := s.component(first).Order
	if len(comp) != len(rec.members) {
		return violation("genome %s has %d members but its component has %d",
			rec.id, len(rec.members), len(comp))
	}
	for _, id := range comp {
		if _, ok := rec.members[id]; !ok {
			return violation("node %d is connected to genome %s but not a member", id, rec.id)
		}
	}

	inputs, outputs, valid := s.scan(rec.members)
	if !sameIDs(inputs, rec.inputs) || !sameIDs(outputs, rec.outputs) || valid != rec.valid {
		return violation("genome %s summary is stale", rec.id)
	}
	return nil
}

func violation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}

func sameIDs(a, b []NodeID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
