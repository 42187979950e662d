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

// Package quantize provides affine quantization kernels built on hwy vectors.
//
// An affine mapping is described by a scale and an integer zero point:
//
//	real = (q - zeroPoint) * scale
//
// # Parameter Selection
//
// A Chooser derives (scale, zeroPoint) from an observed [min, max] range and
// an integer range [qmin, qmax]. Two implementations are provided:
//
//   - Portable: scalar float64 arithmetic, one range at a time
//   - Vectorized: one channel per float64 lane
//
// Both produce bit-identical results. Default selects one from the
// HWY_QPARAMS_BACKEND environment variable.
//
// # Fake Quantization
//
// FakeQuantizePerTensorAffineCachemask and FakeQuantizePerChannelAffineCachemask
// round-trip float32 data through the quantization grid and report, per
// element, whether the value was inside the representable range.
//
// # Core Functions
//
//   - QuantizeAffine(input []float32, output []Q, scale, zeroPoint)
//   - DequantizeAffine(input []Q, output []float32, scale, zeroPoint)
//
// # Example Usage
//
//	import "github.com/ajroetker/hwyqat/hwy/contrib/quantize"
//
//	p, err := quantize.Default().Choose(-1, 1, 0, 255, quantize.Options{})
//	if err != nil {
//	    return err
//	}
//	packed := make([]uint8, len(floats))
//	quantize.QuantizeAffine(floats, packed, p.Scale, p.ZeroPoint)
package quantize
