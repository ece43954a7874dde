// SPDX-License-Identifier: MIT

package layer

// Port is the live connection state of a node, as seen by the
// compatibility rules.
type Port struct {
	// Predecessors is the number of incoming edges currently attached.
	Predecessors int
	// Input is the node's current input shape (empty when unconnected).
	Input Shape
}

// MergeInputs derives a node's input shape from the output shapes of its
// predecessors, in edge order.
//
//   - Input:  always empty (no predecessors allowed).
//   - Output: always the fixed input shape.
//   - Concat: [H, W, ΣC] over rank-3 predecessors, H and W from the first.
//   - others: the first predecessor's output shape.
//
// Unconnected nodes (no predecessors) get an empty input shape.
func MergeInputs(s Spec, preds []Shape) Shape {
	switch v := s.(type) {
	case Input:
		return nil
	case Output:
		return v.InputShape.Clone()
	case Concat:
		return concatShapes(preds)
	default:
		if len(preds) == 0 {
			return nil
		}
		return preds[0].Clone()
	}
}

// concatShapes sums the channel axis of rank-3 shapes. Empty or non-rank-3
// shapes contribute nothing; if none remain the result is empty.
func concatShapes(preds []Shape) Shape {
	var out Shape
	for _, p := range preds {
		if p.Rank() != 3 {
			continue
		}
		if out == nil {
			out = p.Clone()
			continue
		}
		out[2] += p[2]
	}
	return out
}

// OutputShape computes the output shape from an input shape. It is pure;
// boundary kinds ignore in and return their fixed shape. A kind that cannot
// process in returns an empty shape.
func OutputShape(s Spec, in Shape) Shape {
	switch v := s.(type) {
	case Input:
		return v.OutputShape.Clone()
	case Output:
		return v.InputShape.Clone()
	case Dense:
		if in.Empty() {
			return nil
		}
		out := in.Clone()
		out[len(out)-1] = v.Units
		return out
	case Conv2D:
		if in.Rank() != 3 {
			return nil
		}
		h := windowDim(in[0], v.KernelSize.H, v.Stride, v.Padding, v.Dilation)
		w := windowDim(in[1], v.KernelSize.W, v.Stride, v.Padding, v.Dilation)
		return positiveOrNil(Shape{h, w, v.Filters})
	case Pooling:
		if in.Rank() != 3 {
			return nil
		}
		h := windowDim(in[0], v.KernelSize.H, v.Stride, v.Padding, 1)
		w := windowDim(in[1], v.KernelSize.W, v.Stride, v.Padding, 1)
		return positiveOrNil(Shape{h, w, in[2]})
	case Flatten:
		if in.Empty() {
			return nil
		}
		return Shape{in.Size()}
	case Add, Concat:
		return in.Clone()
	default:
		return nil
	}
}

// windowDim is the sliding-window output length:
// ⌊(n + 2p − d(k−1) − 1) / s⌋ + 1, or 0 when the window does not fit.
func windowDim(n, k, stride, pad, dilation int) int {
	if stride < 1 {
		return 0
	}
	span := n + 2*pad - dilation*(k-1) - 1
	if span < 0 {
		return 0
	}
	return span/stride + 1
}

func positiveOrNil(s Shape) Shape {
	if !s.Positive() {
		return nil
	}
	return s
}

// Accepts reports whether an edge from a predecessor whose output shape is
// candidate into a node of spec s with connection state p is legal.
//
//   - Input:   never.
//   - Output:  no predecessor yet, or candidate equals the fixed input shape.
//   - Dense:   no predecessor yet (any rank).
//   - Conv2D, Pooling, Flatten: no predecessor yet and candidate has rank 3.
//   - Add:     no input shape yet, or candidate equals the current input shape.
//   - Concat:  candidate has rank 3; once an input exists, H and W must match.
//
// Acyclicity is a graph-level property and is enforced by the caller.
func Accepts(s Spec, p Port, candidate Shape) bool {
	switch v := s.(type) {
	case Input:
		return false
	case Output:
		return p.Predecessors == 0 || candidate.Equal(v.InputShape)
	case Dense:
		return p.Predecessors == 0
	case Conv2D, Pooling, Flatten:
		return p.Predecessors == 0 && candidate.Rank() == 3
	case Add:
		return p.Input.Empty() || candidate.Equal(p.Input)
	case Concat:
		if candidate.Rank() != 3 {
			return false
		}
		if p.Input.Rank() != 3 {
			return true
		}
		return p.Input[0] == candidate[0] && p.Input[1] == candidate[1]
	default:
		return false
	}
}

// AcceptsDetached applies a kind's shape rule without the predecessor-count
// precondition. It re-validates edges restored after a node is replaced in
// place. input is the target's current input shape, derived from the
// predecessors it still has, so merge kinds keep checking against their
// remaining siblings.
//
//   - Output:  candidate equals the fixed input shape.
//   - Add:     input is empty, or candidate equals input.
//   - Concat:  candidate has rank 3 and, when input is rank 3, H and W match.
//   - others:  as Accepts with no predecessors.
func AcceptsDetached(s Spec, input, candidate Shape) bool {
	switch v := s.(type) {
	case Output:
		return candidate.Equal(v.InputShape)
	default:
		return Accepts(s, Port{Input: input}, candidate)
	}
}
