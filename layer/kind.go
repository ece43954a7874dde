// SPDX-License-Identifier: MIT

package layer

import "fmt"

// Kind tags a node's layer type.
type Kind uint8

// Node kinds. KindInvalid is the zero value and never names a real node.
const (
	KindInvalid Kind = iota
	KindInput
	KindOutput
	KindDense
	KindConv2D
	KindPooling
	KindFlatten
	KindAdd
	KindConcat
)

// kindNames holds the wire tags, indexed by Kind.
var kindNames = [...]string{
	KindInvalid: "",
	KindInput:   "Input",
	KindOutput:  "Output",
	KindDense:   "Dense",
	KindConv2D:  "Conv2D",
	KindPooling: "Pooling",
	KindFlatten: "Flatten",
	KindAdd:     "Add",
	KindConcat:  "Concat",
}

// Kinds lists every valid kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindInput, KindOutput, KindDense, KindConv2D, KindPooling, KindFlatten, KindAdd, KindConcat}
}

// String returns the wire tag of k, or "Kind(n)" for out-of-range values.
func (k Kind) String() string {
	if int(k) < len(kindNames) && k != KindInvalid {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Boundary reports whether k is Input or Output, whose shapes are fixed
// at construction.
func (k Kind) Boundary() bool {
	return k == KindInput || k == KindOutput
}

// ParseKind maps a wire tag to its Kind. Tags are case-sensitive.
func ParseKind(tag string) (Kind, error) {
	for _, k := range Kinds() {
		if kindNames[k] == tag {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("%w: %q", ErrUnknownKind, tag)
}
