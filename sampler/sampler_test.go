// SPDX-License-Identifier: MIT

package sampler_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/genograph/genome"
	"github.com/katalvlaran/genograph/layer"
	"github.com/katalvlaran/genograph/sampler"
)

func build(t *testing.T, specs []layer.Spec, edges [][2]int) (*genome.Store, []genome.NodeID, genome.GenomeID) {
	t.Helper()
	s := genome.NewStore()
	ids := make([]genome.NodeID, len(specs))
	for i, spec := range specs {
		id, err := s.CreateNode(spec)
		require.NoError(t, err)
		ids[i] = id
	}
	for _, e := range edges {
		require.NoError(t, s.AddEdge(ids[e[0]], ids[e[1]]))
	}
	gid, err := s.GenomeOf(ids[0])
	require.NoError(t, err)
	return s, ids, gid
}

func dense(units int) layer.Dense {
	return layer.Dense{Units: units, Activation: layer.ReLU, UseBias: true}
}

func conv(filters int) layer.Conv2D {
	return layer.Conv2D{Filters: filters, KernelSize: layer.Kernel{H: 3, W: 3}, Stride: 1, Padding: 1, Dilation: 1}
}

// branching: in → c1, in → c2, c1 → cat, c2 → cat, cat → flat → d → out.
func branching(t *testing.T) (*genome.Store, []genome.NodeID, genome.GenomeID) {
	return build(t,
		[]layer.Spec{
			layer.Input{OutputShape: layer.Shape{8, 8, 3}},
			conv(4), conv(2),
			layer.Concat{}, layer.Flatten{},
			dense(10),
			layer.Output{InputShape: layer.Shape{10}},
		},
		[][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {3, 4}, {4, 5}, {5, 6}},
	)
}

func TestSample_NoValidStartNode(t *testing.T) {
	s, _, gid := build(t,
		[]layer.Spec{layer.Input{OutputShape: layer.Shape{4}}, layer.Output{InputShape: layer.Shape{4}}},
		[][2]int{{0, 1}},
	)
	smp, err := sampler.New()
	require.NoError(t, err)
	_, err = smp.Sample(s, gid)
	assert.ErrorIs(t, err, sampler.ErrNoValidStartNode)

	_, err = smp.Sample(s, genome.GenomeID{})
	assert.ErrorIs(t, err, genome.ErrGenomeNotFound)
}

func TestSample_ShortChain(t *testing.T) {
	s, ids, gid := build(t,
		[]layer.Spec{layer.Input{OutputShape: layer.Shape{4}}, dense(10), layer.Output{InputShape: layer.Shape{10}}},
		[][2]int{{0, 1}, {1, 2}},
	)
	smp, err := sampler.New(sampler.WithSeed(42))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		path, err := smp.Sample(s, gid)
		require.NoError(t, err)
		assert.Equal(t, []genome.NodeID{ids[1], ids[2]}, path)
	}
}

func TestSample_StopProbabilityBounds(t *testing.T) {
	specs := []layer.Spec{layer.Input{OutputShape: layer.Shape{4}}, dense(4), dense(4), dense(4), layer.Output{InputShape: layer.Shape{4}}}
	s, ids, gid := build(t, specs, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}})

	never, err := sampler.New(sampler.WithStopProbability(0))
	require.NoError(t, err)
	path, err := never.Sample(s, gid)
	require.NoError(t, err)
	assert.Equal(t, ids[1:], path)

	always, err := sampler.New(sampler.WithStopProbability(1))
	require.NoError(t, err)
	path, err = always.Sample(s, gid)
	require.NoError(t, err)
	assert.Equal(t, ids[1:3], path)
}

func TestSample_ContiguousAndDeterministic(t *testing.T) {
	s, ids, gid := branching(t)

	starts, err := sampler.Starts(s, gid)
	require.NoError(t, err)
	assert.Equal(t, []genome.NodeID{ids[1], ids[2]}, starts)

	a, err := sampler.New(sampler.WithSeed(7))
	require.NoError(t, err)
	b, err := sampler.New(sampler.WithRand(rand.New(rand.NewSource(7))))
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		pa, err := a.Sample(s, gid)
		require.NoError(t, err)
		pb, err := b.Sample(s, gid)
		require.NoError(t, err)
		assert.Equal(t, pa, pb)

		require.GreaterOrEqual(t, len(pa), 2)
		assert.Contains(t, starts, pa[0])
		for j := 1; j < len(pa); j++ {
			assert.Contains(t, s.Successors(pa[j-1]), pa[j])
		}
	}
}

func TestFork(t *testing.T) {
	s, _, gid := branching(t)
	parent, err := sampler.New(sampler.WithStopProbability(0))
	require.NoError(t, err)
	child := parent.Fork()
	path, err := child.Sample(s, gid)
	require.NoError(t, err)
	assert.Len(t, path, 5, "stop probability is inherited")
}

func TestNew_Options(t *testing.T) {
	for _, p := range []float64{-0.1, 1.5, math.NaN()} {
		_, err := sampler.New(sampler.WithStopProbability(p))
		assert.ErrorIs(t, err, sampler.ErrOptionViolation)
	}
	_, err := sampler.New(sampler.WithRand(nil))
	assert.ErrorIs(t, err, sampler.ErrOptionViolation)
}
