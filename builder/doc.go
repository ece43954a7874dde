// SPDX-License-Identifier: MIT

// Package builder assembles genomes through the gated store operations.
//
// Two entry points:
//
//   - Chain(st, specs...) creates one node per spec and connects them in
//     order, the common "stack of layers" case.
//   - Apply(st, bp) realises a Blueprint: named node declarations plus edges
//     between names, usually loaded from YAML with LoadBlueprint.
//
// Both are all-or-nothing: if any node is refused by validation or any edge
// by the compatibility gate, every node created by the call is removed
// again and the store is left as it was (apart from the monotonic id
// counters). Errors wrap ErrConstructFailed plus the underlying cause, so
// callers can branch on genome.ErrIncompatibleEdge or layer.ErrInvalidParams.
//
// Blueprint YAML:
//
//	nodes:
//	  - name: in
//	    kind: Input
//	    params: {output_shape: [4]}
//	  - name: hidden
//	    kind: Dense
//	    params: {units: 10, activation: relu, use_bias: true}
//	    position: {x: 120, y: 40}
//	  - name: out
//	    kind: Output
//	    params: {input_shape: [10]}
//	edges:
//	  - {from: in, to: hidden}
//	  - {from: hidden, to: out}
//
// Params use the same keys as the text format records.
package builder
