// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tensor provides a minimal dense float32 tensor: row-major storage
// with a shape, plus the reductions the quantization kernels need.
package tensor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrEmpty is returned by reductions over a tensor with no elements.
	ErrEmpty = errors.New("tensor: empty tensor")

	// ErrShapeMismatch is returned when data length or buffer sizes do not
	// match the shape.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")

	// ErrAxis is returned when an axis is out of range for the tensor rank.
	ErrAxis = errors.New("tensor: axis out of range")
)

// Shape lists the dimension sizes, outermost first. An empty shape is a scalar.
type Shape []int

// Numel returns the number of elements described by s.
func (s Shape) Numel() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Equal reports whether s and o have the same dimensions.
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

func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = strconv.Itoa(d)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (s Shape) validate() error {
	for i, d := range s {
		if d < 0 {
			return fmt.Errorf("%w: dimension %d is negative (%d)", ErrShapeMismatch, i, d)
		}
	}
	return nil
}

// Dense is a row-major float32 tensor.
type Dense struct {
	shape Shape
	data  []float32
}

// New returns a zero-filled tensor with the given shape.
func New(shape ...int) (*Dense, error) {
	s := Shape(shape)
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &Dense{shape: append(Shape(nil), s...), data: make([]float32, s.Numel())}, nil
}

// FromSlice wraps data as a tensor with the given shape. The tensor shares
// data with the caller; use Clone for an independent copy.
func FromSlice(data []float32, shape ...int) (*Dense, error) {
	s := Shape(shape)
	if err := s.validate(); err != nil {
		return nil, err
	}
	if len(data) != s.Numel() {
		return nil, fmt.Errorf("%w: %d elements for shape %v", ErrShapeMismatch, len(data), s)
	}
	return &Dense{shape: append(Shape(nil), s...), data: data}, nil
}

// Shape returns a copy of the tensor shape.
func (t *Dense) Shape() Shape { return append(Shape(nil), t.shape...) }

// Rank returns the number of dimensions.
func (t *Dense) Rank() int { return len(t.shape) }

// Dim returns the size of dimension i.
func (t *Dense) Dim(i int) int { return t.shape[i] }

// Numel returns the number of elements.
func (t *Dense) Numel() int { return len(t.data) }

// Data returns the backing slice.
func (t *Dense) Data() []float32 { return t.data }

// Clone returns a deep copy of t.
func (t *Dense) Clone() *Dense {
	return &Dense{
		shape: append(Shape(nil), t.shape...),
		data:  append([]float32(nil), t.data...),
	}
}

// ZerosLike returns a zero-filled tensor with the shape of t.
func (t *Dense) ZerosLike() *Dense {
	return &Dense{shape: append(Shape(nil), t.shape...), data: make([]float32, len(t.data))}
}

// SplitAxis views the tensor as [outer, channels, inner] around axis:
// element (o, c, i) lives at index (o*channels+c)*inner + i.
func (t *Dense) SplitAxis(axis int) (outer, channels, inner int, err error) {
	if axis < 0 || axis >= len(t.shape) {
		return 0, 0, 0, fmt.Errorf("%w: axis %d for rank %d", ErrAxis, axis, len(t.shape))
	}
	outer, inner = 1, 1
	for _, d := range t.shape[:axis] {
		outer *= d
	}
	for _, d := range t.shape[axis+1:] {
		inner *= d
	}
	return outer, t.shape[axis], inner, nil
}

// Channel returns the contiguous slice of channel c along axis 0.
func (t *Dense) Channel(c int) ([]float32, error) {
	_, channels, inner, err := t.SplitAxis(0)
	if err != nil {
		return nil, err
	}
	if c < 0 || c >= channels {
		return nil, fmt.Errorf("%w: channel %d of %d", ErrShapeMismatch, c, channels)
	}
	return t.data[c*inner : (c+1)*inner : (c+1)*inner], nil
}

// OnesMask returns a mask of n true values.
func OnesMask(n int) []bool {
	mask := make([]bool, n)
	for i := range mask {
		mask[i] = true
	}
	return mask
}
