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

// float32 -> float64 is exact and every rounded float32 is representable,
// so the float64 library functions give correctly rounded float32 results.
func roundWith[T FloatsNative](v Vec[T], fn func(float64) float64) Vec[T] {
	result := make([]T, len(v.data))
	for i, x := range v.data {
		result[i] = T(fn(float64(x)))
	}
	return Vec[T]{data: result}
}

// Round rounds to the nearest integer, ties to even.
func Round[T FloatsNative](v Vec[T]) Vec[T] {
	return roundWith(v, math.RoundToEven)
}

// Ceil rounds toward positive infinity.
func Ceil[T FloatsNative](v Vec[T]) Vec[T] {
	return roundWith(v, math.Ceil)
}

// Floor rounds toward negative infinity.
func Floor[T FloatsNative](v Vec[T]) Vec[T] {
	return roundWith(v, math.Floor)
}

// Trunc rounds toward zero.
func Trunc[T FloatsNative](v Vec[T]) Vec[T] {
	return roundWith(v, math.Trunc)
}

// Frac returns x - Trunc(x). The result has the sign of x.
func Frac[T FloatsNative](v Vec[T]) Vec[T] {
	result := make([]T, len(v.data))
	for i, x := range v.data {
		result[i] = x - T(math.Trunc(float64(x)))
	}
	return Vec[T]{data: result}
}

// Fmod returns the floating-point remainder of a/b with the sign of a.
func Fmod[T FloatsNative](a, b Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data))
	result := make([]T, n)
	for i := 0; i < n; i++ {
		result[i] = T(math.Mod(float64(a.data[i]), float64(b.data[i])))
	}
	return Vec[T]{data: result}
}

// Convert converts every lane with Go conversion semantics. Float to integer
// conversion of out of range values is platform dependent; use
// ConvertToInt32 when saturation is required.
func Convert[To, From Numeric](v Vec[From]) Vec[To] {
	result := make([]To, len(v.data))
	for i, x := range v.data {
		result[i] = To(x)
	}
	return Vec[To]{data: result}
}

// ConvertToInt32 truncates toward zero and saturates to the int32 range.
// NaN lanes become math.MinInt32, the x86 "integer indefinite" value.
func ConvertToInt32[T FloatsNative](v Vec[T]) Vec[int32] {
	result := make([]int32, len(v.data))
	for i, x := range v.data {
		result[i] = saturateInt32(float64(x))
	}
	return Vec[int32]{data: result}
}

func saturateInt32(f float64) int32 {
	switch {
	case f != f:
		return math.MinInt32
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int32(f)
}

// PromoteToFloat64 widens the lower MaxLanes[float64]() lanes of v.
func PromoteToFloat64(v Vec[float32]) Vec[float64] {
	n := min(len(v.data), MaxLanes[float64]())
	result := make([]float64, n)
	for i := range n {
		result[i] = float64(v.data[i])
	}
	return Vec[float64]{data: result}
}

// DemoteToFloat32 narrows every lane with round-to-nearest-even. The result
// occupies the lower half of a float32 vector.
func DemoteToFloat32(v Vec[float64]) Vec[float32] {
	result := make([]float32, len(v.data))
	for i, x := range v.data {
		result[i] = float32(x)
	}
	return Vec[float32]{data: result}
}
