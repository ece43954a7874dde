// SPDX-License-Identifier: MIT

package builder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/genograph/genome"
	"github.com/katalvlaran/genograph/layer"
)

// Blueprint declares a graph by name.
type Blueprint struct {
	Nodes []NodeDecl `yaml:"nodes" validate:"required,min=1,dive"`
	Edges []EdgeDecl `yaml:"edges" validate:"dive"`
}

// NodeDecl declares one node. Params uses the text-format parameter keys.
type NodeDecl struct {
	Name     string         `yaml:"name" validate:"required"`
	Kind     string         `yaml:"kind" validate:"required"`
	Params   map[string]any `yaml:"params"`
	Position *PositionDecl  `yaml:"position"`
}

// PositionDecl is optional UI placement for a declared node.
type PositionDecl struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// EdgeDecl connects two declared names.
type EdgeDecl struct {
	From string `yaml:"from" validate:"required"`
	To   string `yaml:"to" validate:"required"`
}

var validate = validator.New()

// ParseBlueprint decodes and validates YAML. Unknown keys are rejected.
func ParseBlueprint(data []byte) (*Blueprint, error) {
	var bp Blueprint
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&bp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBlueprint, err)
	}
	if err := bp.Validate(); err != nil {
		return nil, err
	}
	return &bp, nil
}

// LoadBlueprint reads and parses a YAML blueprint file.
func LoadBlueprint(path string) (*Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("builder: read blueprint: %w", err)
	}
	return ParseBlueprint(data)
}

// Validate checks required fields, unique names and that every edge names
// a declared node. Layer parameters are checked later, by Spec.
func (bp *Blueprint) Validate() error {
	if err := validate.Struct(bp); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidBlueprint, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidBlueprint, err)
	}

	names := make(map[string]struct{}, len(bp.Nodes))
	for _, n := range bp.Nodes {
		if _, dup := names[n.Name]; dup {
			return fmt.Errorf("%w: duplicate node name %q", ErrInvalidBlueprint, n.Name)
		}
		names[n.Name] = struct{}{}
	}
	for _, e := range bp.Edges {
		for _, end := range []string{e.From, e.To} {
			if _, ok := names[end]; !ok {
				return fmt.Errorf("%w: edge %s -> %s names unknown node %q",
					ErrInvalidBlueprint, e.From, e.To, end)
			}
		}
	}
	return nil
}

// Spec converts a declaration into a validated layer spec.
func (d NodeDecl) Spec() (layer.Spec, error) {
	params := d.Params
	if params == nil {
		params = map[string]any{}
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("%w: node %q params: %v", layer.ErrInvalidParams, d.Name, err)
	}
	spec, err := layer.FromRecord(layer.Record{Node: d.Kind, Params: raw})
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", d.Name, err)
	}
	return spec, nil
}

// Apply creates every declared node, places it, then adds every edge through
// the gate in declaration order. It returns the new id of each name.
// On failure the store is rolled back and the error wraps ErrConstructFailed.
func Apply(st *genome.Store, bp *Blueprint) (map[string]genome.NodeID, error) {
	if err := bp.Validate(); err != nil {
		return nil, err
	}
	specs := make([]layer.Spec, len(bp.Nodes))
	for i, d := range bp.Nodes {
		spec, err := d.Spec()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConstructFailed, err)
		}
		specs[i] = spec
	}

	b := &batch{st: st}
	ids := make(map[string]genome.NodeID, len(bp.Nodes))
	for i, d := range bp.Nodes {
		id, err := b.node(specs[i])
		if err != nil {
			return nil, b.fail(fmt.Errorf("node %q: %w", d.Name, err))
		}
		ids[d.Name] = id
		if d.Position != nil {
			if err := st.SetPosition(id, genome.Position{X: d.Position.X, Y: d.Position.Y}); err != nil {
				return nil, b.fail(err)
			}
		}
	}
	for _, e := range bp.Edges {
		if err := st.AddEdge(ids[e.From], ids[e.To]); err != nil {
			return nil, b.fail(fmt.Errorf("edge %s -> %s: %w", e.From, e.To, err))
		}
	}
	return ids, nil
}
