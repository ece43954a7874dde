// SPDX-License-Identifier: MIT

package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/genograph/genome"
	"github.com/katalvlaran/genograph/layer"
	"github.com/katalvlaran/genograph/metrics"
)

func TestCollector_ObservesStore(t *testing.T) {
	c := metrics.NewCollector("genograph")
	s := genome.NewStore(genome.WithObserver(c))

	in, err := s.CreateNode(layer.Input{OutputShape: layer.Shape{4}})
	require.NoError(t, err)
	d, err := s.CreateNode(layer.Dense{Units: 3, Activation: layer.ReLU})
	require.NoError(t, err)
	require.NoError(t, s.AddEdge(in, d))
	require.ErrorIs(t, s.AddEdge(d, in), genome.ErrIncompatibleEdge)
	require.ErrorIs(t, s.RemoveNode(genome.NodeID(1<<62)), genome.ErrNodeNotFound)

	ops := c.Operations
	assert.Equal(t, 2.0, testutil.ToFloat64(ops.WithLabelValues("create_node", metrics.ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(ops.WithLabelValues("add_edge", metrics.ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(ops.WithLabelValues("add_edge", metrics.ResultRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(ops.WithLabelValues("remove_node", metrics.ResultError)))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Merges))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.GenomesCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.GenomesRetired))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Genomes))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Nodes))
}

func TestCollector_EditDrops(t *testing.T) {
	c := metrics.NewCollector("genograph")
	s := genome.NewStore(genome.WithObserver(c))

	in, err := s.CreateNode(layer.Input{OutputShape: layer.Shape{4}})
	require.NoError(t, err)
	d, err := s.CreateNode(layer.Dense{Units: 3, Activation: layer.Softmax})
	require.NoError(t, err)
	require.NoError(t, s.AddEdge(in, d))

	// Dense -> Input: the incoming edge cannot be restored.
	rep, err := s.EditNode(d, layer.Input{OutputShape: layer.Shape{3}})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Dropped)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.DroppedEdges))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Operations.WithLabelValues("edit_node", metrics.ResultOK)))
}

func TestCollector_SnapshotAndLines(t *testing.T) {
	c := metrics.NewCollector("gg")
	c.Observe(genome.Event{Op: genome.OpImport, Created: 2, Nodes: 5, Genomes: 2})

	snap, err := c.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 1.0, snap["gg_operations_total{op=import,result=ok}"])
	assert.Equal(t, 2.0, snap["gg_genomes_created_total"])
	assert.Equal(t, 5.0, snap["gg_nodes"])
	assert.Equal(t, 2.0, snap["gg_genomes"])

	lines := metrics.Lines(snap)
	assert.Len(t, lines, len(snap))
	assert.IsNonDecreasing(t, lines)
	assert.Contains(t, lines, "gg_nodes 5")
}

func TestCollector_SeparateRegistries(t *testing.T) {
	a := metrics.NewCollector("gg")
	b := metrics.NewCollector("gg")
	a.Observe(genome.Event{Op: genome.OpCreateNode, Created: 1, Nodes: 1, Genomes: 1})

	assert.Equal(t, 1.0, testutil.ToFloat64(a.GenomesCreated))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.GenomesCreated))
	n, err := testutil.GatherAndCount(b.Registry(), "gg_genomes_created_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
