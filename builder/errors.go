// SPDX-License-Identifier: MIT

package builder

import "errors"

var (
	// ErrConstructFailed wraps any failure that made a build roll back.
	ErrConstructFailed = errors.New("builder: construction failed")

	// ErrInvalidBlueprint indicates a blueprint that fails structural
	// validation (missing names or kinds, duplicates, unknown edge ends).
	ErrInvalidBlueprint = errors.New("builder: invalid blueprint")

	// ErrTooFewNodes indicates Chain was called without specs.
	ErrTooFewNodes = errors.New("builder: at least one node is required")
)
