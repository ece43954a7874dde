// SPDX-License-Identifier: MIT

package genome

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/katalvlaran/genograph/layer"
)

// NodeID identifies a node. IDs are unique within the process and never reused.
type NodeID uint64

// lastNodeID is the process-wide node ID counter.
var lastNodeID atomic.Uint64

// nextNodeID returns a fresh NodeID; the first one is 1.
func nextNodeID() NodeID {
	return NodeID(lastNodeID.Add(1))
}

// GenomeID identifies a genome. A fresh id is drawn whenever a genome is
// created by a split or rebuild; a merge keeps the from-side id.
type GenomeID uuid.UUID

// String renders the id in canonical UUID form.
func (id GenomeID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether id is the zero value.
func (id GenomeID) IsZero() bool { return id == GenomeID(uuid.Nil) }

// Position is opaque placement metadata owned by the UI layer.
// The store keeps it across in-place edits and never interprets it.
type Position struct {
	X, Y float64
}

// Node is a read-only snapshot of one node. Slices are copies.
type Node struct {
	ID          NodeID
	Spec        layer.Spec
	InputShape  layer.Shape
	OutputShape layer.Shape
	Previous    []NodeID
	Next        []NodeID
	Position    Position
}

// Kind returns the node's layer kind.
func (n Node) Kind() layer.Kind { return n.Spec.Kind() }

// snapshot copies n so callers cannot alias arena state.
func (n *Node) snapshot() Node {
	return Node{
		ID:          n.ID,
		Spec:        layer.Clone(n.Spec),
		InputShape:  n.InputShape.Clone(),
		OutputShape: n.OutputShape.Clone(),
		Previous:    cloneIDs(n.Previous),
		Next:        cloneIDs(n.Next),
		Position:    n.Position,
	}
}

// Genome is a read-only snapshot of one genome.
//
// Members, InputNodes and OutputNodes are sorted by NodeID ascending.
// Valid is true iff there is at least one input and one output node, every
// input node is of kind Input and every output node is of kind Output.
type Genome struct {
	ID          GenomeID
	Members     []NodeID
	InputNodes  []NodeID
	OutputNodes []NodeID
	Valid       bool
}

// genomeRecord is the live per-genome state.
type genomeRecord struct {
	id      GenomeID
	members map[NodeID]struct{}
	inputs  []NodeID
	outputs []NodeID
	valid   bool
}

// EditReport describes the outcome of EditNode.
type EditReport struct {
	// Node is the id of the replacement node.
	Node NodeID
	// Restored counts edges reattached to the replacement.
	Restored int
	// Dropped counts edges the compatibility gate refused to restore.
	Dropped int
	// Genomes lists the genome(s) holding the replacement's former component
	// after the edit; more than one means dropped edges split it.
	Genomes []GenomeID
}

// Edge is a directed pair of node indices used by Import.
type Edge struct {
	From, To int
}

// Imported describes the nodes and genomes created by Import.
type Imported struct {
	// Nodes holds the new node ids in input order.
	Nodes []NodeID
	// Genomes holds one id per component, ordered by first node index.
	Genomes []GenomeID
}

func cloneIDs(ids []NodeID) []NodeID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]NodeID, len(ids))
	copy(out, ids)
	return out
}
