// SPDX-License-Identifier: MIT

package layer

// Spec is the parameter record of one node. The set of implementations is
// closed: only the types in this file satisfy it.
type Spec interface {
	// Kind returns the node kind tag.
	Kind() Kind
	isSpec()
}

// Activation names a Dense activation function.
type Activation string

// Supported activations.
const (
	ReLU      Activation = "relu"
	LeakyReLU Activation = "leaky_relu"
	Softmax   Activation = "softmax"
)

// PoolType names a pooling reduction.
type PoolType string

// Supported pooling reductions.
const (
	MaxPool PoolType = "max"
	AvgPool PoolType = "avg"
)

// Kernel is a 2-D window size.
type Kernel struct {
	H int `json:"h" validate:"gte=1"`
	W int `json:"w" validate:"gte=1"`
}

// Input is a graph entry point with a fixed output shape.
type Input struct {
	OutputShape Shape `json:"output_shape" validate:"required,min=1,dive,gt=0"`
}

// Output is a graph exit point with a fixed input shape.
type Output struct {
	InputShape Shape `json:"input_shape" validate:"required,min=1,dive,gt=0"`
}

// Dense is a fully connected layer.
type Dense struct {
	Units      int        `json:"units" validate:"gte=1"`
	Activation Activation `json:"activation" validate:"oneof=relu leaky_relu softmax"`
	UseBias    bool       `json:"use_bias"`
}

// Conv2D is a 2-D convolution over [H,W,C] inputs.
type Conv2D struct {
	Filters    int    `json:"filters" validate:"gte=1"`
	KernelSize Kernel `json:"kernel_size"`
	Stride     int    `json:"stride" validate:"gte=1"`
	Padding    int    `json:"padding" validate:"gte=0"`
	Dilation   int    `json:"dilation" validate:"gte=1"`
	UseBias    bool   `json:"use_bias"`
}

// Pooling is a 2-D max or average pooling over [H,W,C] inputs.
type Pooling struct {
	PoolType   PoolType `json:"pool_type" validate:"oneof=max avg"`
	KernelSize Kernel   `json:"kernel_size"`
	Stride     int      `json:"stride" validate:"gte=1"`
	Padding    int      `json:"padding" validate:"gte=0"`
}

// Flatten collapses a rank-3 input into one dimension.
type Flatten struct{}

// Add sums inputs of identical shape.
type Add struct{}

// Concat joins rank-3 inputs along the channel axis.
type Concat struct{}

func (Input) Kind() Kind   { return KindInput }
func (Output) Kind() Kind  { return KindOutput }
func (Dense) Kind() Kind   { return KindDense }
func (Conv2D) Kind() Kind  { return KindConv2D }
func (Pooling) Kind() Kind { return KindPooling }
func (Flatten) Kind() Kind { return KindFlatten }
func (Add) Kind() Kind     { return KindAdd }
func (Concat) Kind() Kind  { return KindConcat }

func (Input) isSpec()   {}
func (Output) isSpec()  {}
func (Dense) isSpec()   {}
func (Conv2D) isSpec()  {}
func (Pooling) isSpec() {}
func (Flatten) isSpec() {}
func (Add) isSpec()     {}
func (Concat) isSpec()  {}

// Clone returns a parameter-identical copy of s that shares no memory with it.
// Clone(nil) returns nil.
func Clone(s Spec) Spec {
	switch v := s.(type) {
	case Input:
		return Input{OutputShape: v.OutputShape.Clone()}
	case Output:
		return Output{InputShape: v.InputShape.Clone()}
	case nil:
		return nil
	default:
		// remaining kinds hold only value fields
		return v
	}
}
