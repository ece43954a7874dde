// SPDX-License-Identifier: MIT

package layer

import "errors"

// Sentinel errors for layer specs and records.
var (
	// ErrUnknownKind indicates a kind tag that matches no node kind.
	ErrUnknownKind = errors.New("layer: unknown node kind")

	// ErrInvalidParams indicates parameters that fail validation.
	ErrInvalidParams = errors.New("layer: invalid parameters")

	// ErrNilSpec indicates a nil Spec was passed where a node kind is required.
	ErrNilSpec = errors.New("layer: spec is nil")
)
