// SPDX-License-Identifier: MIT

package dfs

// Reaches reports whether target is reachable from 'from' along directed
// edges. A vertex always reaches itself.
//
// The walk uses an explicit stack so deep chains do not grow the goroutine
// stack. A nil neighborhood reaches nothing but 'from'.
//
// Complexity: O(V + E) over the subgraph reachable from 'from'.
func Reaches[V comparable](next Neighborhood[V], from, target V) bool {
	if from == target {
		return true
	}
	if next == nil {
		return false
	}

	seen := map[V]struct{}{from: {}}
	stack := []V{from}
	for len(stack) > 0 {
		// pop
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, nbr := range next(cur) {
			if nbr == target {
				return true
			}
			if _, ok := seen[nbr]; ok {
				continue
			}
			seen[nbr] = struct{}{}
			stack = append(stack, nbr)
		}
	}

	return false
}
