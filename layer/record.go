// SPDX-License-Identifier: MIT

package layer

import (
	"encoding/json"
	"fmt"
)

// Record is the wire form of a node: {"node": <kind>, "params": {...}}.
type Record struct {
	Node   string          `json:"node"`
	Params json.RawMessage `json:"params"`
}

// NewRecord renders s as a Record. Parameter keys follow the struct field
// order of the kind, so the encoding is stable.
func NewRecord(s Spec) (Record, error) {
	if err := Validate(s); err != nil {
		return Record{}, err
	}
	params, err := json.Marshal(s)
	if err != nil {
		return Record{}, fmt.Errorf("layer: marshal %s params: %w", s.Kind(), err)
	}
	return Record{Node: s.Kind().String(), Params: params}, nil
}

// FromRecord dispatches on the kind tag and decodes the parameter map with
// the matching constructor. Returns ErrUnknownKind for an unrecognized tag
// and ErrInvalidParams for malformed or out-of-range parameters.
func FromRecord(r Record) (Spec, error) {
	kind, err := ParseKind(r.Node)
	if err != nil {
		return nil, err
	}

	var spec Spec
	switch kind {
	case KindInput:
		spec, err = decodeParams[Input](r.Params)
	case KindOutput:
		spec, err = decodeParams[Output](r.Params)
	case KindDense:
		spec, err = decodeParams[Dense](r.Params)
	case KindConv2D:
		spec, err = decodeParams[Conv2D](r.Params)
	case KindPooling:
		spec, err = decodeParams[Pooling](r.Params)
	case KindFlatten:
		spec = Flatten{}
	case KindAdd:
		spec = Add{}
	case KindConcat:
		spec = Concat{}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidParams, kind, err)
	}
	if err = Validate(spec); err != nil {
		return nil, err
	}

	return spec, nil
}

// decodeParams unmarshals a parameter object into a zero T. Missing params
// decode to the zero value and are caught by validation.
func decodeParams[T Spec](raw json.RawMessage) (T, error) {
	var v T
	if len(raw) == 0 {
		return v, nil
	}
	err := json.Unmarshal(raw, &v)
	return v, err
}
