// SPDX-License-Identifier: MIT

package layer

import (
	"strconv"
	"strings"
)

// Shape is an ordered sequence of positive tensor dimensions.
// A nil or empty Shape means "unknown": the node is not connected yet.
type Shape []int

// Rank returns the number of dimensions.
func (s Shape) Rank() int { return len(s) }

// Empty reports whether the shape is unknown.
func (s Shape) Empty() bool { return len(s) == 0 }

// Equal compares two shapes element-wise. Two empty shapes are equal.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy; the clone of an empty shape is nil.
func (s Shape) Clone() Shape {
	if len(s) == 0 {
		return nil
	}
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

// Size returns the product of all dimensions, or 0 for an empty shape.
func (s Shape) Size() int {
	if len(s) == 0 {
		return 0
	}
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Positive reports whether the shape is non-empty and every dimension is > 0.
func (s Shape) Positive() bool {
	if len(s) == 0 {
		return false
	}
	for _, d := range s {
		if d <= 0 {
			return false
		}
	}
	return true
}

// String renders the shape as "[28,28,1]"; an empty shape renders as "[]".
func (s Shape) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, d := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(d))
	}
	b.WriteByte(']')
	return b.String()
}
