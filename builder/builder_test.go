// SPDX-License-Identifier: MIT

package builder_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/genograph/builder"
	"github.com/katalvlaran/genograph/genome"
	"github.com/katalvlaran/genograph/layer"
)

const mnist = `
nodes:
  - name: in
    kind: Input
    params: {output_shape: [28, 28, 1]}
  - name: conv
    kind: Conv2D
    params: {filters: 8, kernel_size: {h: 3, w: 3}, stride: 1, padding: 1, dilation: 1, use_bias: true}
  - name: pool
    kind: Pooling
    params: {pool_type: max, kernel_size: {h: 2, w: 2}, stride: 2, padding: 0}
  - name: flat
    kind: Flatten
  - name: head
    kind: Dense
    params: {units: 10, activation: softmax, use_bias: true}
    position: {x: 120, y: 40}
  - name: out
    kind: Output
    params: {input_shape: [10]}
edges:
  - {from: in, to: conv}
  - {from: conv, to: pool}
  - {from: pool, to: flat}
  - {from: flat, to: head}
  - {from: head, to: out}
`

func TestChain(t *testing.T) {
	st := genome.NewStore()
	ids, err := builder.Chain(st,
		layer.Input{OutputShape: layer.Shape{4}},
		layer.Dense{Units: 10, Activation: layer.ReLU, UseBias: true},
		layer.Output{InputShape: layer.Shape{10}},
	)
	require.NoError(t, err)
	require.NoError(t, st.Verify())
	require.Len(t, ids, 3)
	assert.Equal(t, 1, st.GenomeCount())

	gid, err := st.GenomeOf(ids[0])
	require.NoError(t, err)
	g, err := st.Genome(gid)
	require.NoError(t, err)
	assert.True(t, g.Valid)

	_, err = builder.Chain(st)
	assert.ErrorIs(t, err, builder.ErrTooFewNodes)
}

func TestChain_RollsBack(t *testing.T) {
	st := genome.NewStore()
	keep, err := st.CreateNode(layer.Flatten{})
	require.NoError(t, err)

	_, err = builder.Chain(st,
		layer.Input{OutputShape: layer.Shape{4}},
		layer.Dense{Units: 3, Activation: layer.ReLU},
		layer.Flatten{},
	)
	assert.ErrorIs(t, err, builder.ErrConstructFailed)
	assert.ErrorIs(t, err, genome.ErrIncompatibleEdge)
	assert.Equal(t, 1, st.NodeCount())
	assert.True(t, st.HasNode(keep))
	require.NoError(t, st.Verify())

	_, err = builder.Chain(st, layer.Dense{Units: 0})
	assert.ErrorIs(t, err, layer.ErrInvalidParams)
	assert.Equal(t, 1, st.NodeCount())
}

func TestParseBlueprint_AndApply(t *testing.T) {
	bp, err := builder.ParseBlueprint([]byte(mnist))
	require.NoError(t, err)
	require.Len(t, bp.Nodes, 6)

	st := genome.NewStore()
	ids, err := builder.Apply(st, bp)
	require.NoError(t, err)
	require.NoError(t, st.Verify())

	pool, err := st.Node(ids["pool"])
	require.NoError(t, err)
	assert.Equal(t, layer.Shape{14, 14, 8}, pool.OutputShape)

	flat, err := st.Node(ids["flat"])
	require.NoError(t, err)
	assert.Equal(t, layer.Shape{1568}, flat.OutputShape)

	head, err := st.Node(ids["head"])
	require.NoError(t, err)
	assert.Equal(t, genome.Position{X: 120, Y: 40}, head.Position)

	gid, err := st.GenomeOf(ids["out"])
	require.NoError(t, err)
	g, err := st.Genome(gid)
	require.NoError(t, err)
	assert.True(t, g.Valid)
}

func TestLoadBlueprint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mnist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(mnist), 0o600))
	bp, err := builder.LoadBlueprint(path)
	require.NoError(t, err)
	assert.Equal(t, "in", bp.Nodes[0].Name)

	_, err = builder.LoadBlueprint(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBlueprint_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"no nodes", "edges: []\n"},
		{"unknown key", "nodes:\n  - {name: a, kind: Add, colour: red}\n"},
		{"missing kind", "nodes:\n  - {name: a}\n"},
		{"duplicate name", "nodes:\n  - {name: a, kind: Add}\n  - {name: a, kind: Add}\n"},
		{"unknown edge end", "nodes:\n  - {name: a, kind: Add}\nedges:\n  - {from: a, to: b}\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.ParseBlueprint([]byte(tc.yaml))
			assert.ErrorIs(t, err, builder.ErrInvalidBlueprint)
		})
	}
}

func TestApply_RollsBack(t *testing.T) {
	st := genome.NewStore()

	bp, err := builder.ParseBlueprint([]byte(`
nodes:
  - {name: in, kind: Input, params: {output_shape: [4]}}
  - {name: flat, kind: Flatten}
edges:
  - {from: in, to: flat}
`))
	require.NoError(t, err)
	_, err = builder.Apply(st, bp)
	assert.ErrorIs(t, err, builder.ErrConstructFailed)
	assert.ErrorIs(t, err, genome.ErrIncompatibleEdge)
	assert.Zero(t, st.NodeCount())
	assert.Zero(t, st.GenomeCount())

	bp, err = builder.ParseBlueprint([]byte("nodes:\n  - {name: x, kind: LSTM}\n"))
	require.NoError(t, err)
	_, err = builder.Apply(st, bp)
	assert.ErrorIs(t, err, layer.ErrUnknownKind)
	assert.Zero(t, st.NodeCount())
}
