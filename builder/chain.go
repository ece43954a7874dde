// SPDX-License-Identifier: MIT

package builder

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/genograph/genome"
	"github.com/katalvlaran/genograph/layer"
)

// Chain creates one node per spec and connects them as
// specs[0] → specs[1] → … → specs[n-1].
//
// Returns the new ids in spec order. On failure every node created by this
// call is removed and the error wraps ErrConstructFailed and the cause.
//
// Complexity: O(n) store operations, each bounded by the growing chain.
func Chain(st *genome.Store, specs ...layer.Spec) ([]genome.NodeID, error) {
	if len(specs) == 0 {
		return nil, ErrTooFewNodes
	}

	b := &batch{st: st}
	for i, spec := range specs {
		if _, err := b.node(spec); err != nil {
			return nil, b.fail(fmt.Errorf("node %d: %w", i, err))
		}
	}
	for i := 1; i < len(b.created); i++ {
		if err := st.AddEdge(b.created[i-1], b.created[i]); err != nil {
			return nil, b.fail(fmt.Errorf("edge %d -> %d: %w", i-1, i, err))
		}
	}
	return b.created, nil
}

// batch tracks nodes created by one build so a failure can undo them.
type batch struct {
	st      *genome.Store
	created []genome.NodeID
}

func (b *batch) node(spec layer.Spec) (genome.NodeID, error) {
	id, err := b.st.CreateNode(spec)
	if err != nil {
		return 0, err
	}
	b.created = append(b.created, id)
	return id, nil
}

// fail removes every created node, newest first, and wraps cause.
// New nodes only ever connect to each other, so removing them restores the
// rest of the store exactly.
func (b *batch) fail(cause error) error {
	var errs []error
	for i := len(b.created) - 1; i >= 0; i-- {
		if err := b.st.RemoveNode(b.created[i]); err != nil {
			errs = append(errs, err)
		}
	}
	b.created = nil
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w (rollback: %w)", ErrConstructFailed, cause, errors.Join(errs...))
	}
	return fmt.Errorf("%w: %w", ErrConstructFailed, cause)
}
