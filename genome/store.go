// SPDX-License-Identifier: MIT

package genome

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/genograph/layer"
)

// Store owns the node arena and the genome partition.
type Store struct {
	nodes   map[NodeID]*Node           // node arena
	owner   map[NodeID]GenomeID        // node → genome
	genomes map[GenomeID]*genomeRecord // genome id → record

	newGenomeID func() GenomeID
	logger      *zap.Logger
	observer    Observer
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver registers an Observer for operation events. A nil observer is ignored.
func WithObserver(o Observer) Option {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithGenomeIDs overrides the genome id source (random UUIDs by default).
// The source must never return the same id twice.
func WithGenomeIDs(fn func() GenomeID) Option {
	return func(s *Store) {
		if fn != nil {
			s.newGenomeID = fn
		}
	}
}

// NewStore creates an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		nodes:       make(map[NodeID]*Node),
		owner:       make(map[NodeID]GenomeID),
		genomes:     make(map[GenomeID]*genomeRecord),
		newGenomeID: func() GenomeID { return GenomeID(uuid.New()) },
		logger:      zap.NewNop(),
		observer:    nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateNode validates spec and adds an isolated node holding a copy of it.
// The node forms its own genome (input = output = {node}).
func (s *Store) CreateNode(spec layer.Spec) (NodeID, error) {
	if err := layer.Validate(spec); err != nil {
		s.emit(Event{Op: OpCreateNode, Err: err})
		return 0, err
	}
	id := s.insert(spec, Position{})
	s.emit(Event{Op: OpCreateNode, Created: 1})
	return id, nil
}

// CloneNode creates a parameter-identical node with a new identity and no
// edges, in its own genome.
func (s *Store) CloneNode(id NodeID) (NodeID, error) {
	n, ok := s.nodes[id]
	if !ok {
		err := fmt.Errorf("%w: %d", ErrNodeNotFound, id)
		s.emit(Event{Op: OpCloneNode, Err: err})
		return 0, err
	}
	clone := s.insert(n.Spec, Position{})
	s.emit(Event{Op: OpCloneNode, Created: 1})
	return clone, nil
}

// insert adds a validated spec as a new isolated node with its own genome.
func (s *Store) insert(spec layer.Spec, pos Position) NodeID {
	n := &Node{ID: nextNodeID(), Spec: layer.Clone(spec), Position: pos}
	s.derive(n)
	s.nodes[n.ID] = n
	s.adopt([]NodeID{n.ID})
	return n.ID
}

// SetPosition stores UI placement metadata for a node.
func (s *Store) SetPosition(id NodeID, pos Position) error {
	n, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	n.Position = pos
	return nil
}

// Node returns a snapshot of the node with the given id.
func (s *Store) Node(id NodeID) (Node, error) {
	n, ok := s.nodes[id]
	if !ok {
		return Node{}, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	return n.snapshot(), nil
}

// Nodes returns snapshots of all nodes sorted by id.
func (s *Store) Nodes() []Node {
	ids := s.nodeIDs()
	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.nodes[id].snapshot())
	}
	return out
}

// HasNode reports whether id is in the arena.
func (s *Store) HasNode(id NodeID) bool {
	_, ok := s.nodes[id]
	return ok
}

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int { return len(s.nodes) }

// GenomeCount returns the number of genomes.
func (s *Store) GenomeCount() int { return len(s.genomes) }

// Successors returns a copy of id's Next list (nil for unknown ids).
func (s *Store) Successors(id NodeID) []NodeID {
	if n, ok := s.nodes[id]; ok {
		return cloneIDs(n.Next)
	}
	return nil
}

// Neighbors returns id's Previous list followed by its Next list.
func (s *Store) Neighbors(id NodeID) []NodeID {
	n, ok := s.nodes[id]
	if !ok {
		return nil
	}
	out := make([]NodeID, 0, len(n.Previous)+len(n.Next))
	out = append(out, n.Previous...)
	return append(out, n.Next...)
}

// GenomeOf returns the id of the genome containing node id.
func (s *Store) GenomeOf(id NodeID) (GenomeID, error) {
	gid, ok := s.owner[id]
	if !ok {
		return GenomeID{}, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	return gid, nil
}

// Genome returns a snapshot of the genome with the given id.
func (s *Store) Genome(id GenomeID) (Genome, error) {
	rec, ok := s.genomes[id]
	if !ok {
		return Genome{}, fmt.Errorf("%w: %s", ErrGenomeNotFound, id)
	}
	return rec.snapshot(), nil
}

// Genomes returns snapshots of all genomes ordered by their smallest member id.
func (s *Store) Genomes() []Genome {
	out := make([]Genome, 0, len(s.genomes))
	for _, rec := range s.genomes {
		out = append(out, rec.snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Members[0] < out[j].Members[0] })
	return out
}

// nodeIDs returns every node id sorted ascending.
func (s *Store) nodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids
}

// emit fills in store sizes and forwards ev to the observer.
func (s *Store) emit(ev Event) {
	ev.Nodes = len(s.nodes)
	ev.Genomes = len(s.genomes)
	s.observer.Observe(ev)
}

func sortIDs(ids []NodeID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

func (rec *genomeRecord) snapshot() Genome {
	members := make([]NodeID, 0, len(rec.members))
	for id := range rec.members {
		members = append(members, id)
	}
	sortIDs(members)
	return Genome{
		ID:          rec.id,
		Members:     members,
		InputNodes:  cloneIDs(rec.inputs),
		OutputNodes: cloneIDs(rec.outputs),
		Valid:       rec.valid,
	}
}
