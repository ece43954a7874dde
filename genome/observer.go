// SPDX-License-Identifier: MIT

package genome

// Op names a structural operation reported to an Observer.
type Op string

// Operations reported by Store.
const (
	OpCreateNode Op = "create_node"
	OpCloneNode  Op = "clone_node"
	OpAddEdge    Op = "add_edge"
	OpRemoveEdge Op = "remove_edge"
	OpRemoveNode Op = "remove_node"
	OpEditNode   Op = "edit_node"
	OpImport     Op = "import"
)

// Event is emitted once per completed or rejected operation.
type Event struct {
	Op Op
	// Err is the returned error, nil on success.
	Err error
	// Merged is true when an AddEdge joined two genomes.
	Merged bool
	// Created counts genomes created by the operation (splits, rebuilds, new nodes).
	Created int
	// Retired counts genome ids discarded by the operation.
	Retired int
	// Dropped counts edges EditNode could not restore.
	Dropped int
	// Nodes and Genomes are the store sizes after the operation.
	Nodes   int
	Genomes int
}

// Observer receives store events. Implementations must not call back into
// the Store.
type Observer interface {
	Observe(Event)
}

// nopObserver discards events.
type nopObserver struct{}

func (nopObserver) Observe(Event) {}
