// SPDX-License-Identifier: MIT

// Package codec converts genomes to and from their plain-text form.
//
// Format (one record per line, every line terminated by '\n'):
//
//	{"node":"Input","params":{"output_shape":[4]}}
//	{"node":"Dense","params":{"units":10,"activation":"relu","use_bias":true}}
//	{"node":"Output","params":{"input_shape":[10]}}
//	CONNECTIONS
//	0 1
//	1 2
//
// The Nth node line (0-based) has index N. Encode numbers nodes in
// first-visit order of a breadth-first walk that starts from the genome's
// input nodes and follows both Previous and Next edges. Connection rows
// follow node order, one row per outgoing edge.
//
// Decode parses and validates the whole text before touching the store,
// then restores nodes and edges through genome.Store.Import. Round trip:
// Decode(Encode(g)) yields the same kinds, parameters and edge relation by
// index; node identities are new.
package codec
