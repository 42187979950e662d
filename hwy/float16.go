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

	"github.com/x448/float16"
)

// Float16 is an IEEE 754 binary16 value stored in a uint16.
type Float16 uint16

// BFloat16 is a brain float (upper 16 bits of a float32) stored in a uint16.
type BFloat16 uint16

// Float32ToFloat16 converts with round-to-nearest-even.
func Float32ToFloat16(f float32) Float16 {
	return Float16(float16.Fromfloat32(f).Bits())
}

// Float16ToFloat32 widens exactly.
func Float16ToFloat32(h Float16) float32 {
	return float16.Frombits(uint16(h)).Float32()
}

// Float32 returns the value as float32.
func (h Float16) Float32() float32 { return Float16ToFloat32(h) }

// IsNaN reports whether h is a NaN.
func (h Float16) IsNaN() bool { return float16.Frombits(uint16(h)).IsNaN() }

// Float32ToBFloat16 keeps the upper half of the float32 bit pattern with
// round-to-nearest-even. NaNs stay quiet NaNs.
func Float32ToBFloat16(f float32) BFloat16 {
	bits := math.Float32bits(f)
	if math.IsNaN(float64(f)) {
		return BFloat16((bits >> 16) | 0x0040)
	}
	rounding := uint32(0x7FFF) + ((bits >> 16) & 1)
	return BFloat16((bits + rounding) >> 16)
}

// BFloat16ToFloat32 widens exactly.
func BFloat16ToFloat32(b BFloat16) float32 {
	return math.Float32frombits(uint32(b) << 16)
}

// Float32 returns the value as float32.
func (b BFloat16) Float32() float32 { return BFloat16ToFloat32(b) }

// IsNaN reports whether b is a NaN.
func (b BFloat16) IsNaN() bool { return b&0x7F80 == 0x7F80 && b&0x007F != 0 }

// PromoteBF16ToF32 widens src into dst and returns the number of values written.
func PromoteBF16ToF32(dst []float32, src []BFloat16) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = BFloat16ToFloat32(src[i])
	}
	return n
}

// DemoteF32ToBF16 narrows src into dst and returns the number of values written.
func DemoteF32ToBF16(dst []BFloat16, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = Float32ToBFloat16(src[i])
	}
	return n
}

// PromoteF16ToF32 widens src into dst and returns the number of values written.
func PromoteF16ToF32(dst []float32, src []Float16) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = Float16ToFloat32(src[i])
	}
	return n
}

// DemoteF32ToF16 narrows src into dst and returns the number of values written.
func DemoteF32ToF16(dst []Float16, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = Float32ToFloat16(src[i])
	}
	return n
}
