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
	"errors"
	"fmt"

	"github.com/ajroetker/hwyqat/hwy"
	"github.com/ajroetker/hwyqat/hwy/contrib/tensor"
)

var (
	// ErrInvalidScale is returned when a scale is not strictly positive.
	ErrInvalidScale = errors.New("quantize: scale must be positive")

	// ErrZeroPointRange is returned when a zero point lies outside [qmin, qmax].
	ErrZeroPointRange = errors.New("quantize: zero point outside quantization range")
)

// FakeQuantizePerTensorAffineCachemask quantizes and dequantizes every element
// of x with a single (scale, zeroPoint):
//
//	q       = zeroPoint + roundEven(x / scale)
//	out     = (clamp(q, qmin, qmax) - zeroPoint) * scale
//	mask[i] = qmin <= q <= qmax
//
// The mask marks elements that were not clipped; gradients flow only through
// those. x is not modified.
func FakeQuantizePerTensorAffineCachemask(x *tensor.Dense, scale float32, zeroPoint, qmin, qmax int32) (*tensor.Dense, []bool, error) {
	if qmin >= qmax {
		return nil, nil, fmt.Errorf("%w: [%d, %d]", ErrInvalidQuantRange, qmin, qmax)
	}
	if err := checkParams(scale, zeroPoint, qmin, qmax); err != nil {
		return nil, nil, err
	}
	out := x.ZerosLike()
	mask := make([]bool, x.Numel())
	fakeQuantizeRow(x.Data(), out.Data(), mask, scale, zeroPoint, qmin, qmax)
	return out, mask, nil
}

// FakeQuantizePerChannelAffineCachemask is the per-channel form of
// FakeQuantizePerTensorAffineCachemask: elements whose index along axis is c
// use scales[c] and zeroPoints[c].
func FakeQuantizePerChannelAffineCachemask(x *tensor.Dense, scales []float32, zeroPoints []int32, axis int, qmin, qmax int32) (*tensor.Dense, []bool, error) {
	if qmin >= qmax {
		return nil, nil, fmt.Errorf("%w: [%d, %d]", ErrInvalidQuantRange, qmin, qmax)
	}
	outer, channels, inner, err := x.SplitAxis(axis)
	if err != nil {
		return nil, nil, err
	}
	if len(scales) != channels || len(zeroPoints) != channels {
		return nil, nil, fmt.Errorf("%w: axis %d has %d channels, got %d scales and %d zero points",
			ErrLengthMismatch, axis, channels, len(scales), len(zeroPoints))
	}
	for c := range channels {
		if err := checkParams(scales[c], zeroPoints[c], qmin, qmax); err != nil {
			return nil, nil, fmt.Errorf("channel %d: %w", c, err)
		}
	}

	out := x.ZerosLike()
	mask := make([]bool, x.Numel())
	src, dst := x.Data(), out.Data()
	for o := range outer {
		for c := range channels {
			start := (o*channels + c) * inner
			end := start + inner
			fakeQuantizeRow(src[start:end], dst[start:end], mask[start:end], scales[c], zeroPoints[c], qmin, qmax)
		}
	}
	return out, mask, nil
}

func checkParams(scale float32, zeroPoint, qmin, qmax int32) error {
	if !(scale > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidScale, scale)
	}
	if zeroPoint < qmin || zeroPoint > qmax {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrZeroPointRange, zeroPoint, qmin, qmax)
	}
	return nil
}

// fakeQuantizeRow computes the rounded grid position with vector ops and
// finishes clamping, masking and dequantization per lane in integer space.
func fakeQuantizeRow(src, dst []float32, mask []bool, scale float32, zeroPoint, qmin, qmax int32) {
	n := len(src)
	if n == 0 {
		return
	}
	invScale := 1 / scale
	lanes := hwy.NumLanes[float32]()
	invVec := hwy.Set(invScale)
	zpVec := hwy.Set(float32(zeroPoint))
	buf := make([]float32, lanes)

	for i := 0; i < n; i += lanes {
		end := min(i+lanes, n)
		v := hwy.Load(src[i:end])
		q := hwy.Add(zpVec, hwy.Round(hwy.Mul(v, invVec)))

		// Store to buffer and finish in int64
		hwy.Store(q, buf)
		for j := range end - i {
			dst[i+j], mask[i+j] = dequantizeGrid(buf[j], scale, zeroPoint, qmin, qmax)
		}
	}
}

// dequantizeGrid clamps the grid position qf and maps it back to real space.
// ok reports whether qf was already inside [qmin, qmax].
func dequantizeGrid(qf, scale float32, zeroPoint, qmin, qmax int32) (out float32, ok bool) {
	q := hwy.SaturateInt64(float64(qf))
	lo, hi := int64(qmin), int64(qmax)
	ok = lo <= q && q <= hi
	q = min(max(q, lo), hi)
	return float32((float64(q) - float64(zeroPoint)) * float64(scale)), ok
}
