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

import (
	"math"
	"unsafe"
)

// Quantized lanes store affine-quantized values: real = (q - zeroPoint) * scale.
// Rounding follows nearbyint in the default rounding mode (ties to even) and
// all intermediate arithmetic is float32, so results match the scalar
// reference quantizer bit for bit.

// QLimits returns the representable range of the quantized storage type Q.
func QLimits[Q QInts]() (lo, hi int64) {
	var zero Q
	bits := 8 * unsafe.Sizeof(zero)
	if zero-1 < zero {
		return -1 << (bits - 1), 1<<(bits-1) - 1
	}
	return 0, 1<<bits - 1
}

// SaturateInt64 converts f to int64, truncating toward zero. Values beyond
// the int64 range saturate and NaN maps to math.MinInt64.
func SaturateInt64(f float64) int64 {
	switch {
	case f != f:
		return math.MinInt64
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// QuantizeFloat32 maps every lane x to clamp(zeroPoint + roundEven(x*invScale))
// in the range of Q.
func QuantizeFloat32[Q QInts](v Vec[float32], zeroPoint int32, invScale float32) Vec[Q] {
	lo, hi := QLimits[Q]()
	zp := float32(zeroPoint)
	result := make([]Q, len(v.data))
	for i, x := range v.data {
		qf := zp + float32(math.RoundToEven(float64(x*invScale)))
		result[i] = Q(min(max(SaturateInt64(float64(qf)), lo), hi))
	}
	return Vec[Q]{data: result}
}

// DequantizeToFloat32 maps every lane q to (q - zeroPoint) * scale.
func DequantizeToFloat32[Q QInts](v Vec[Q], scale float32, zeroPoint int32) Vec[float32] {
	zp := float32(zeroPoint)
	result := make([]float32, len(v.data))
	for i, q := range v.data {
		result[i] = (float32(q) - zp) * scale
	}
	return Vec[float32]{data: result}
}

// RequantizeFromInt32 rescales int32 accumulators into Q:
// clamp(zeroPoint + roundEven(x*multiplier)).
func RequantizeFromInt32[Q QInts](v Vec[int32], multiplier float32, zeroPoint int32) Vec[Q] {
	lo, hi := QLimits[Q]()
	result := make([]Q, len(v.data))
	for i, x := range v.data {
		r := SaturateInt64(math.RoundToEven(float64(float32(x) * multiplier)))
		result[i] = Q(min(max(int64(zeroPoint)+r, lo), hi))
	}
	return Vec[Q]{data: result}
}

// WideningSubtract returns a - b computed in int32. For int32 storage the
// subtraction wraps.
func WideningSubtract[Q QInts](a, b Vec[Q]) Vec[int32] {
	n := min(len(a.data), len(b.data))
	result := make([]int32, n)
	for i := 0; i < n; i++ {
		result[i] = int32(a.data[i]) - int32(b.data[i])
	}
	return Vec[int32]{data: result}
}

// QRelu clamps every lane below at the zero point lanes.
func QRelu[Q QInts](v, zeroPoint Vec[Q]) Vec[Q] {
	return Max(v, zeroPoint)
}

// QRelu6 clamps every lane into [zeroPoint, q6].
func QRelu6[Q QInts](v, zeroPoint, q6 Vec[Q]) Vec[Q] {
	return Min(Max(v, zeroPoint), q6)
}
