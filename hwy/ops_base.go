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

package hwy

import "math"

// This file provides pure Go (scalar) implementations of the core Highway
// operations. They define the reference semantics: a vector of n lanes
// behaves exactly like n independent scalar evaluations.

// Load creates a vector by loading data from a slice.
// If src is shorter than a full vector, the vector has len(src) lanes.
func Load[T Lanes](src []T) Vec[T] {
	n := MaxLanes[T]()
	if len(src) < n {
		n = len(src)
	}
	data := make([]T, n)
	copy(data, src[:n])
	return Vec[T]{data: data}
}

// LoadN loads min(count, len(src)) values into a full vector and zeroes the
// remaining lanes.
func LoadN[T Lanes](src []T, count int) Vec[T] {
	data := make([]T, MaxLanes[T]())
	n := min(count, len(src), len(data))
	copy(data, src[:max(n, 0)])
	return Vec[T]{data: data}
}

// Store writes a vector's data to a slice.
func Store[T Lanes](v Vec[T], dst []T) {
	n := len(v.data)
	if len(dst) < n {
		n = len(dst)
	}
	copy(dst[:n], v.data[:n])
}

// StoreN writes the first count lanes of v to dst.
func StoreN[T Lanes](v Vec[T], dst []T, count int) {
	n := min(count, len(v.data), len(dst))
	if n <= 0 {
		return
	}
	copy(dst[:n], v.data[:n])
}

// Set creates a vector with all lanes set to the same value.
func Set[T Lanes](value T) Vec[T] {
	n := MaxLanes[T]()
	data := make([]T, n)
	for i := range data {
		data[i] = value
	}
	return Vec[T]{data: data}
}

// Zero creates a vector with all lanes set to zero.
func Zero[T Lanes]() Vec[T] {
	n := MaxLanes[T]()
	data := make([]T, n)
	return Vec[T]{data: data}
}

// Iota returns a vector with lanes set to [0, 1, 2, 3, ...].
func Iota[T Numeric]() Vec[T] {
	n := MaxLanes[T]()
	data := make([]T, n)
	for i := range data {
		data[i] = T(i)
	}
	return Vec[T]{data: data}
}

// GetLane returns lane i, or the zero value if i is out of range.
func GetLane[T Lanes](v Vec[T], i int) T {
	if i < 0 || i >= len(v.data) {
		var zero T
		return zero
	}
	return v.data[i]
}

// Add performs element-wise addition.
func Add[T Numeric](a, b Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data))
	result := make([]T, n)
	for i := 0; i < n; i++ {
		result[i] = a.data[i] + b.data[i]
	}
	return Vec[T]{data: result}
}

// Sub performs element-wise subtraction.
func Sub[T Numeric](a, b Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data))
	result := make([]T, n)
	for i := 0; i < n; i++ {
		result[i] = a.data[i] - b.data[i]
	}
	return Vec[T]{data: result}
}

// Mul performs element-wise multiplication.
func Mul[T Numeric](a, b Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data))
	result := make([]T, n)
	for i := 0; i < n; i++ {
		result[i] = a.data[i] * b.data[i]
	}
	return Vec[T]{data: result}
}

// Div performs element-wise division. Integer lanes dividing by zero yield
// zero instead of panicking, matching the lane-parallel hardware behavior of
// leaving the lane undefined.
func Div[T Numeric](a, b Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data))
	result := make([]T, n)
	var zero T
	float := isFloat[T]()
	for i := 0; i < n; i++ {
		if b.data[i] == zero && !float {
			continue
		}
		result[i] = a.data[i] / b.data[i]
	}
	return Vec[T]{data: result}
}

// Neg negates all lanes. The minimum signed integer wraps to itself.
func Neg[T Numeric](v Vec[T]) Vec[T] {
	result := make([]T, len(v.data))
	for i := 0; i < len(v.data); i++ {
		result[i] = -v.data[i]
	}
	return Vec[T]{data: result}
}

// Abs computes absolute value. The minimum signed integer wraps to itself.
func Abs[T Numeric](v Vec[T]) Vec[T] {
	result := make([]T, len(v.data))
	for i := 0; i < len(v.data); i++ {
		val := v.data[i]
		switch {
		case val < 0:
			result[i] = -val
		case val == 0:
			// Clears the sign of -0.0.
			result[i] = 0
		default:
			result[i] = val
		}
	}
	return Vec[T]{data: result}
}

// Min returns element-wise minimum. When a lane compares unordered (NaN),
// the lane from b is returned, like x86 MINPS.
func Min[T Numeric](a, b Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data))
	result := make([]T, n)
	for i := 0; i < n; i++ {
		if a.data[i] < b.data[i] {
			result[i] = a.data[i]
		} else {
			result[i] = b.data[i]
		}
	}
	return Vec[T]{data: result}
}

// Max returns element-wise maximum. When a lane compares unordered (NaN),
// the lane from b is returned, like x86 MAXPS.
func Max[T Numeric](a, b Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data))
	result := make([]T, n)
	for i := 0; i < n; i++ {
		if a.data[i] > b.data[i] {
			result[i] = a.data[i]
		} else {
			result[i] = b.data[i]
		}
	}
	return Vec[T]{data: result}
}

// Minimum returns the element-wise minimum, propagating NaN from either input.
func Minimum[T Numeric](a, b Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data))
	result := make([]T, n)
	for i := 0; i < n; i++ {
		result[i] = minimumScalar(a.data[i], b.data[i])
	}
	return Vec[T]{data: result}
}

// Maximum returns the element-wise maximum, propagating NaN from either input.
func Maximum[T Numeric](a, b Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data))
	result := make([]T, n)
	for i := 0; i < n; i++ {
		result[i] = maximumScalar(a.data[i], b.data[i])
	}
	return Vec[T]{data: result}
}

// ClampMin raises every lane of v to at least lo. NaN lanes of v stay NaN.
func ClampMin[T Numeric](v, lo Vec[T]) Vec[T] {
	return Maximum(lo, v)
}

// ClampMax lowers every lane of v to at most hi. NaN lanes of v stay NaN.
func ClampMax[T Numeric](v, hi Vec[T]) Vec[T] {
	return Minimum(hi, v)
}

// Clamp restricts every lane of v to [lo, hi]. NaN lanes of v stay NaN.
func Clamp[T Numeric](v, lo, hi Vec[T]) Vec[T] {
	return Minimum(hi, Maximum(lo, v))
}

// Sqrt computes square root.
func Sqrt[T FloatsNative](v Vec[T]) Vec[T] {
	result := make([]T, len(v.data))
	for i := 0; i < len(v.data); i++ {
		result[i] = T(math.Sqrt(float64(v.data[i])))
	}
	return Vec[T]{data: result}
}

// RSqrt computes 1/sqrt(x).
func RSqrt[T FloatsNative](v Vec[T]) Vec[T] {
	result := make([]T, len(v.data))
	for i := 0; i < len(v.data); i++ {
		result[i] = 1 / T(math.Sqrt(float64(v.data[i])))
	}
	return Vec[T]{data: result}
}

// Reciprocal computes 1/x.
func Reciprocal[T FloatsNative](v Vec[T]) Vec[T] {
	result := make([]T, len(v.data))
	for i := 0; i < len(v.data); i++ {
		result[i] = 1 / v.data[i]
	}
	return Vec[T]{data: result}
}

// FMA performs fused multiply-add: a*b + c with a single rounding.
func FMA[T FloatsNative](a, b, c Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data), len(c.data))
	result := make([]T, n)
	for i := 0; i < n; i++ {
		result[i] = fmaScalar(a.data[i], b.data[i], c.data[i])
	}
	return Vec[T]{data: result}
}

// MulAdd computes a*b + c. It is an alias of FMA.
func MulAdd[T FloatsNative](a, b, c Vec[T]) Vec[T] {
	return FMA(a, b, c)
}

// ReduceSum sums all lanes.
func ReduceSum[T Numeric](v Vec[T]) T {
	var sum T
	for i := 0; i < len(v.data); i++ {
		sum += v.data[i]
	}
	return sum
}

// ReduceMin returns the minimum value across all lanes, propagating NaN.
func ReduceMin[T Numeric](v Vec[T]) T {
	if len(v.data) == 0 {
		var zero T
		return zero
	}
	m := v.data[0]
	for i := 1; i < len(v.data); i++ {
		m = minimumScalar(m, v.data[i])
	}
	return m
}

// ReduceMax returns the maximum value across all lanes, propagating NaN.
func ReduceMax[T Numeric](v Vec[T]) T {
	if len(v.data) == 0 {
		var zero T
		return zero
	}
	m := v.data[0]
	for i := 1; i < len(v.data); i++ {
		m = maximumScalar(m, v.data[i])
	}
	return m
}

// fmaScalar evaluates in float64. For float32 lanes the product is exact, so
// only the final narrowing can differ from hardware FMA, in rare halfway cases.
func fmaScalar[T FloatsNative](a, b, c T) T {
	return T(math.FMA(float64(a), float64(b), float64(c)))
}

func isNaNScalar[T Numeric](x T) bool {
	return x != x
}

func minimumScalar[T Numeric](a, b T) T {
	if isNaNScalar(a) {
		return a
	}
	if isNaNScalar(b) {
		return b
	}
	if b < a {
		return b
	}
	return a
}

func maximumScalar[T Numeric](a, b T) T {
	if isNaNScalar(a) {
		return a
	}
	if isNaNScalar(b) {
		return b
	}
	if b > a {
		return b
	}
	return a
}

func isFloat[T Numeric]() bool {
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		return true
	}
	// Named float types fall back to a behavioral check: only floats can
	// represent a fraction.
	half := T(1) / 2
	return half != 0
}
