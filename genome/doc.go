// SPDX-License-Identifier: MIT

// Package genome keeps a graph of layer nodes partitioned into genomes: one
// genome per weakly-connected component, each with a boundary summary
// (input nodes, output nodes) and a validity flag.
//
// Store is the single owned state object. Nodes live in an arena keyed by
// NodeID; Previous/Next are ordered ID lists mirrored on both endpoints, so
// the graph is a directed multigraph without aliasing between nodes.
//
// Structural operations:
//
//	CreateNode(spec)         – new node in a new single-node genome
//	CloneNode(id)            – parameter-identical node, new identity, no edges
//	AddEdge(from, to)        – gate, attach, cascade shapes, merge genomes
//	RemoveEdge(from, to)     – detach, re-derive shapes, split on a bridge
//	RemoveNode(id)           – sever all edges, rebuild one genome per remainder
//	EditNode(id, spec)       – replace in place, restore edges through the gate
//	Import(specs, edges)     – bulk restore of persisted nodes and edges
//
// Every operation either fails without touching the store or leaves it fully
// consistent: every node belongs to exactly one genome, Previous/Next mirror
// each other, every shape matches its recomputation rule and every summary
// matches a fresh degree scan. Verify checks all of this.
//
// Compatibility gate (applied before any mutation):
//
//	from == to                 → ErrIncompatibleEdge wrapping ErrSelfLoop
//	!layer.Accepts(to, from)   → ErrIncompatibleEdge
//	from reachable from to     → ErrIncompatibleEdge wrapping ErrCycle
//
// Shape propagation is an explicit worklist over the forward closure of the
// changed node, processed in topological order, so each node is recomputed
// at most once per change and only while its inputs actually changed.
//
// Concurrency: Store is not safe for concurrent use. Operations are
// synchronous and bounded by O(V+E) of the affected component.
package genome
