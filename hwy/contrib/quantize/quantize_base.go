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

package quantize

import (
	"math"

	"github.com/ajroetker/hwyqat/hwy"
)

// QuantizeAffine converts float32 values to quantized storage.
//
//	output[i] = clamp(zeroPoint + roundEven(input[i] / scale), Q range)
func QuantizeAffine[Q hwy.QInts](input []float32, output []Q, scale float32, zeroPoint int32) {
	n := min(len(input), len(output))
	if n == 0 {
		return
	}

	lanes := hwy.NumLanes[float32]()
	invScale := 1 / scale

	i := 0
	for ; i+lanes <= n; i += lanes {
		v := hwy.Load(input[i : i+lanes])
		hwy.Store(hwy.QuantizeFloat32[Q](v, zeroPoint, invScale), output[i:i+lanes])
	}

	// Scalar tail
	lo, hi := hwy.QLimits[Q]()
	for ; i < n; i++ {
		qf := float32(zeroPoint) + float32(math.RoundToEven(float64(input[i]*invScale)))
		output[i] = Q(min(max(hwy.SaturateInt64(float64(qf)), lo), hi))
	}
}

// DequantizeAffine converts quantized values back to float32.
//
//	output[i] = (float32(input[i]) - zeroPoint) * scale
func DequantizeAffine[Q hwy.QInts](input []Q, output []float32, scale float32, zeroPoint int32) {
	n := min(len(input), len(output))
	if n == 0 {
		return
	}

	lanes := hwy.NumLanes[Q]()
	i := 0
	for ; i+lanes <= n; i += lanes {
		v := hwy.Load(input[i : i+lanes])
		hwy.Store(hwy.DequantizeToFloat32(v, scale, zeroPoint), output[i:i+lanes])
	}

	// Scalar tail
	zp := float32(zeroPoint)
	for ; i < n; i++ {
		output[i] = (float32(input[i]) - zp) * scale
	}
}
