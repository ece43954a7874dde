// SPDX-License-Identifier: MIT

package dfs_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/genograph/dfs"
)

func adjacency(m map[string][]string) dfs.Neighborhood[string] {
	return func(v string) []string { return m[v] }
}

// TestReaches covers direct, transitive, self and unreachable targets.
func TestReaches(t *testing.T) {
	// A -> B -> C -> D
	//      |
	//      E
	g := adjacency(map[string][]string{
		"A": {"B"},
		"B": {"C", "E"},
		"C": {"D"},
	})

	assert.True(t, dfs.Reaches(g, "A", "B"))
	assert.True(t, dfs.Reaches(g, "A", "D"))
	assert.True(t, dfs.Reaches(g, "B", "E"))
	assert.True(t, dfs.Reaches(g, "C", "C"), "a vertex reaches itself")
	assert.False(t, dfs.Reaches(g, "D", "A"), "edges are directed")
	assert.False(t, dfs.Reaches(g, "E", "C"))
	assert.False(t, dfs.Reaches[string](nil, "A", "B"))
}

// TestReaches_Cyclic terminates on cyclic input.
func TestReaches_Cyclic(t *testing.T) {
	g := adjacency(map[string][]string{
		"A": {"B"},
		"B": {"A"},
	})
	assert.True(t, dfs.Reaches(g, "A", "B"))
	assert.False(t, dfs.Reaches(g, "A", "Z"))
}

// TestTopologicalSort_Chain orders a simple chain.
func TestTopologicalSort_Chain(t *testing.T) {
	g := adjacency(map[string][]string{
		"A": {"B"},
		"B": {"C"},
	})
	order, err := dfs.TopologicalSort([]string{"C", "B", "A"}, g)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, order)
}

// TestTopologicalSort_Diamond verifies every edge points forward.
func TestTopologicalSort_Diamond(t *testing.T) {
	edges := map[string][]string{
		"A": {"B", "C"},
		"B": {"D"},
		"C": {"D"},
	}
	order, err := dfs.TopologicalSort([]string{"A", "B", "C", "D"}, adjacency(edges))
	require.NoError(t, err)
	require.Len(t, order, 4)
	assert.Equal(t, []string{"A", "C", "B", "D"}, order, "reverse post-order")

	pos := make(map[string]int, len(order))
	for i, v := range order {
		pos[v] = i
	}
	for from, tos := range edges {
		for _, to := range tos {
			assert.Less(t, pos[from], pos[to], "%s must precede %s", from, to)
		}
	}
}

// TestTopologicalSort_Cycle reports ErrCycleDetected.
func TestTopologicalSort_Cycle(t *testing.T) {
	g := adjacency(map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {"A"},
	})
	_, err := dfs.TopologicalSort([]string{"A"}, g)
	assert.ErrorIs(t, err, dfs.ErrCycleDetected)

	self := adjacency(map[string][]string{"A": {"A"}})
	_, err = dfs.TopologicalSort([]string{"A"}, self)
	assert.ErrorIs(t, err, dfs.ErrCycleDetected)

	_, err = dfs.TopologicalSort[string]([]string{"A"}, nil)
	assert.ErrorIs(t, err, dfs.ErrNilNeighborhood)
}

// TestTopologicalSort_LongChain sorts a chain far deeper than a recursive
// walk could handle on a default goroutine stack.
func TestTopologicalSort_LongChain(t *testing.T) {
	const n = 200_000
	next := func(v int) []int {
		if v+1 < n {
			return []int{v + 1}
		}
		return nil
	}

	order, err := dfs.TopologicalSort([]int{n - 1, 0}, next)
	require.NoError(t, err)
	require.Len(t, order, n)
	assert.Equal(t, 0, order[0])
	assert.Equal(t, n-1, order[n-1])
	for i := 1; i < n; i++ {
		if order[i] != order[i-1]+1 {
			t.Fatalf("order[%d] = %d after %d", i, order[i], order[i-1])
		}
	}
}

// TestTopologicalSort_DeepCycle finds a back-edge at the end of a long chain
// and names the vertex it closes on.
func TestTopologicalSort_DeepCycle(t *testing.T) {
	const n = 100_000
	next := func(v int) []int {
		if v+1 < n {
			return []int{v + 1}
		}
		return []int{n / 2}
	}

	_, err := dfs.TopologicalSort([]int{0}, next)
	require.ErrorIs(t, err, dfs.ErrCycleDetected)
	assert.Contains(t, err.Error(), fmt.Sprintf("at %d", n/2))
}
