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

// Bitwise operations act on the lane bit pattern, so float lanes are
// combined through their IEEE representation.

func bitwise[T Lanes](a, b Vec[T], op func(x, y uint64) uint64) Vec[T] {
	n := min(len(a.data), len(b.data))
	result := make([]T, n)
	for i := 0; i < n; i++ {
		result[i] = fromBits[T](op(toBits(a.data[i]), toBits(b.data[i])))
	}
	return Vec[T]{data: result}
}

// And performs bitwise AND.
func And[T Lanes](a, b Vec[T]) Vec[T] {
	return bitwise(a, b, func(x, y uint64) uint64 { return x & y })
}

// Or performs bitwise OR.
func Or[T Lanes](a, b Vec[T]) Vec[T] {
	return bitwise(a, b, func(x, y uint64) uint64 { return x | y })
}

// Xor performs bitwise XOR.
func Xor[T Lanes](a, b Vec[T]) Vec[T] {
	return bitwise(a, b, func(x, y uint64) uint64 { return x ^ y })
}

// AndNot computes (^a) & b.
func AndNot[T Lanes](a, b Vec[T]) Vec[T] {
	return bitwise(a, b, func(x, y uint64) uint64 { return ^x & y })
}

// Not inverts every bit.
func Not[T Lanes](v Vec[T]) Vec[T] {
	result := make([]T, len(v.data))
	for i, x := range v.data {
		result[i] = fromBits[T](^toBits(x))
	}
	return Vec[T]{data: result}
}

// ShiftLeft shifts every lane left by bits.
func ShiftLeft[T Integers](v Vec[T], bits int) Vec[T] {
	result := make([]T, len(v.data))
	for i, x := range v.data {
		result[i] = x << uint(bits)
	}
	return Vec[T]{data: result}
}

// ShiftRight shifts every lane right by bits. The shift is arithmetic for
// signed lanes and logical for unsigned lanes.
func ShiftRight[T Integers](v Vec[T], bits int) Vec[T] {
	result := make([]T, len(v.data))
	for i, x := range v.data {
		result[i] = x >> uint(bits)
	}
	return Vec[T]{data: result}
}

// SignBit returns a vector with only the sign bit set in each lane.
// For floats, this is -0.0. For signed integers, this is the minimum value.
func SignBit[T Lanes]() Vec[T] {
	var zero T
	bits := uint64(1) << (8*laneSize(zero) - 1)
	return Set(fromBits[T](bits))
}

func laneSize[T Lanes](x T) uint {
	switch any(x).(type) {
	case int8, uint8:
		return 1
	case int16, uint16, Float16, BFloat16:
		return 2
	case int32, uint32, float32:
		return 4
	default:
		return 8
	}
}

// toBits returns the lane bit pattern zero-extended to 64 bits.
func toBits[T Lanes](x T) uint64 {
	switch v := any(x).(type) {
	case float32:
		return uint64(math.Float32bits(v))
	case float64:
		return math.Float64bits(v)
	case Float16:
		return uint64(v)
	case BFloat16:
		return uint64(v)
	case int8:
		return uint64(uint8(v))
	case int16:
		return uint64(uint16(v))
	case int32:
		return uint64(uint32(v))
	case int64:
		return uint64(v)
	case uint8:
		return uint64(v)
	case uint16:
		return uint64(v)
	case uint32:
		return uint64(v)
	case uint64:
		return v
	default:
		panic("hwy: unsupported lane type")
	}
}

// fromBits truncates bits to the lane size and reinterprets them as T.
func fromBits[T Lanes](bits uint64) T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(math.Float32frombits(uint32(bits))).(T)
	case float64:
		return any(math.Float64frombits(bits)).(T)
	case Float16:
		return any(Float16(uint16(bits))).(T)
	case BFloat16:
		return any(BFloat16(uint16(bits))).(T)
	case int8:
		return any(int8(uint8(bits))).(T)
	case int16:
		return any(int16(uint16(bits))).(T)
	case int32:
		return any(int32(uint32(bits))).(T)
	case int64:
		return any(int64(bits)).(T)
	case uint8:
		return any(uint8(bits)).(T)
	case uint16:
		return any(uint16(bits)).(T)
	case uint32:
		return any(uint32(bits)).(T)
	case uint64:
		return any(bits).(T)
	default:
		panic("hwy: unsupported lane type")
	}
}
