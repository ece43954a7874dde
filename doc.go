// SPDX-License-Identifier: MIT

// Package genograph keeps neural-network layer graphs consistent while they
// are edited.
//
// A genome is one weakly-connected component of layer nodes. Every edit
// goes through a compatibility gate, tensor shapes are re-derived along
// the affected part of the graph, and genomes are merged or split so the
// partition always matches connectivity.
//
// Packages:
//
//	layer/     node kinds, parameter records and shape rules
//	genome/    the node arena, edit operations, partition and Verify
//	codec/     the line-oriented text format (records, CONNECTIONS, rows)
//	sampler/   seeded random sub-path sampling
//	builder/   all-or-nothing construction from chains and YAML blueprints
//	archive/   named storage of encoded genomes (Badger or a directory)
//	metrics/   Prometheus counters fed by store events
//	config/    YAML configuration and zap logger setup
//	bfs/, dfs/ generic traversal used by propagation, partition and order
//
//	cmd/genomectl  command-line front end over all of the above
//
// Quick start:
//
//	st := genome.NewStore()
//	ids, err := builder.Chain(st,
//		layer.Input{OutputShape: layer.Shape{4}},
//		layer.Dense{Units: 10, Activation: layer.ReLU},
//		layer.Output{InputShape: layer.Shape{10}},
//	)
//	gid, _ := st.GenomeOf(ids[0])
//	text, _ := codec.Encode(st, gid)
package genograph
