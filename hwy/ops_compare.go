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

func compare[T Numeric](a, b Vec[T], pred func(x, y T) bool) Mask[T] {
	n := min(len(a.data), len(b.data))
	bits := make([]bool, n)
	for i := 0; i < n; i++ {
		bits[i] = pred(a.data[i], b.data[i])
	}
	return Mask[T]{bits: bits}
}

// Equal performs element-wise equality comparison.
func Equal[T Numeric](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x == y })
}

// NotEqual performs element-wise inequality comparison. NaN lanes compare not equal.
func NotEqual[T Numeric](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x != y })
}

// LessThan performs element-wise less-than comparison.
func LessThan[T Numeric](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x < y })
}

// GreaterThan performs element-wise greater-than comparison.
func GreaterThan[T Numeric](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x > y })
}

// LessEqual performs element-wise less-or-equal comparison.
func LessEqual[T Numeric](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x <= y })
}

// GreaterEqual performs element-wise greater-or-equal comparison.
func GreaterEqual[T Numeric](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x >= y })
}

// IsNaN marks NaN lanes.
func IsNaN[T FloatsNative](v Vec[T]) Mask[T] {
	bits := make([]bool, len(v.data))
	for i, x := range v.data {
		bits[i] = math.IsNaN(float64(x))
	}
	return Mask[T]{bits: bits}
}

// IsInf marks infinite lanes of either sign.
func IsInf[T FloatsNative](v Vec[T]) Mask[T] {
	bits := make([]bool, len(v.data))
	for i, x := range v.data {
		bits[i] = math.IsInf(float64(x), 0)
	}
	return Mask[T]{bits: bits}
}

// MaskAnd returns the lane-wise conjunction of two masks.
func MaskAnd[T Lanes](a, b Mask[T]) Mask[T] {
	n := min(len(a.bits), len(b.bits))
	bits := make([]bool, n)
	for i := range n {
		bits[i] = a.bits[i] && b.bits[i]
	}
	return Mask[T]{bits: bits}
}

// MaskOr returns the lane-wise disjunction of two masks.
func MaskOr[T Lanes](a, b Mask[T]) Mask[T] {
	n := min(len(a.bits), len(b.bits))
	bits := make([]bool, n)
	for i := range n {
		bits[i] = a.bits[i] || b.bits[i]
	}
	return Mask[T]{bits: bits}
}

// MaskNot inverts every lane of m.
func MaskNot[T Lanes](m Mask[T]) Mask[T] {
	bits := make([]bool, len(m.bits))
	for i, b := range m.bits {
		bits[i] = !b
	}
	return Mask[T]{bits: bits}
}

// RebindMask reinterprets a mask computed on T lanes as a mask on U lanes
// with the same lane count.
func RebindMask[U, T Lanes](m Mask[T]) Mask[U] {
	bits := make([]bool, len(m.bits))
	copy(bits, m.bits)
	return Mask[U]{bits: bits}
}

// VecFromMask returns all-ones lanes where m is active and zero elsewhere.
func VecFromMask[T Lanes](m Mask[T]) Vec[T] {
	ones := fromBits[T](^uint64(0))
	data := make([]T, len(m.bits))
	for i, b := range m.bits {
		if b {
			data[i] = ones
		}
	}
	return Vec[T]{data: data}
}

// IfThenElse performs conditional selection.
func IfThenElse[T Lanes](mask Mask[T], a, b Vec[T]) Vec[T] {
	n := min(len(mask.bits), len(a.data), len(b.data))
	result := make([]T, n)
	for i := 0; i < n; i++ {
		if mask.bits[i] {
			result[i] = a.data[i]
		} else {
			result[i] = b.data[i]
		}
	}
	return Vec[T]{data: result}
}

// Blend selects lane i from b when bit i of mask is set and from a otherwise.
func Blend[T Lanes](a, b Vec[T], mask uint64) Vec[T] {
	n := min(len(a.data), len(b.data))
	result := make([]T, n)
	for i := 0; i < n; i++ {
		if i < 64 && mask&(1<<uint(i)) != 0 {
			result[i] = b.data[i]
		} else {
			result[i] = a.data[i]
		}
	}
	return Vec[T]{data: result}
}

// Blendv selects lane i from b when lane i of mask has any bit set and from a
// otherwise. Masks produced by VecFromMask are all-ones or all-zero.
func Blendv[T Lanes](a, b, mask Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data), len(mask.data))
	result := make([]T, n)
	for i := 0; i < n; i++ {
		if toBits(mask.data[i]) != 0 {
			result[i] = b.data[i]
		} else {
			result[i] = a.data[i]
		}
	}
	return Vec[T]{data: result}
}

// MergeFirstN takes the first count lanes from b and the rest from a.
func MergeFirstN[T Lanes](a, b Vec[T], count int) Vec[T] {
	n := min(len(a.data), len(b.data))
	result := make([]T, n)
	for i := 0; i < n; i++ {
		if i < count {
			result[i] = b.data[i]
		} else {
			result[i] = a.data[i]
		}
	}
	return Vec[T]{data: result}
}

// ZeroMask returns a bit mask with bit i set when lane i equals zero
// (either sign for floats).
func ZeroMask[T Numeric](v Vec[T]) uint64 {
	var out uint64
	var zero T
	for i, x := range v.data {
		if i >= 64 {
			break
		}
		if x == zero {
			out |= 1 << uint(i)
		}
	}
	return out
}

// MaskLoad loads data from a slice only for lanes where the mask is true.
func MaskLoad[T Lanes](mask Mask[T], src []T) Vec[T] {
	n := min(len(mask.bits), len(src))
	result := make([]T, len(mask.bits))
	for i := 0; i < n; i++ {
		if mask.bits[i] {
			result[i] = src[i]
		}
	}
	return Vec[T]{data: result}
}

// MaskStore stores vector data to a slice only for lanes where the mask is true.
func MaskStore[T Lanes](mask Mask[T], v Vec[T], dst []T) {
	n := min(len(mask.bits), len(v.data), len(dst))
	for i := 0; i < n; i++ {
		if mask.bits[i] {
			dst[i] = v.data[i]
		}
	}
}
