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
	"github.com/ajroetker/hwyqat/hwy"
	hwymath "github.com/ajroetker/hwyqat/hwy/contrib/math"
)

// Vectorized computes parameters for NumLanes[float64]() ranges at a time,
// one channel per lane. Every branch of the scalar formula becomes a lane
// select, so results match Portable exactly.
type Vectorized struct{}

// Name implements Chooser.
func (Vectorized) Name() string { return string(BackendVectorized) }

// Choose implements Chooser.
func (v Vectorized) Choose(min, max float32, qmin, qmax int32, opts Options) (Params, error) {
	scales := make([]float32, 1)
	zeroPoints := make([]int32, 1)
	if err := v.ChooseBatch([]float32{min}, []float32{max}, qmin, qmax, opts, scales, zeroPoints); err != nil {
		return Params{}, err
	}
	return Params{Scale: scales[0], ZeroPoint: zeroPoints[0]}, nil
}

// ChooseBatch implements Chooser.
func (v Vectorized) ChooseBatch(mins, maxs []float32, qmin, qmax int32, opts Options, scales []float32, zeroPoints []int32) error {
	qmin, qmax, err := validateQuantRange(qmin, qmax, opts)
	if err != nil {
		return err
	}
	if err := validateBatch(mins, maxs, scales, zeroPoints); err != nil {
		return err
	}

	n := len(mins)
	lanes := hwy.NumLanes[float64]()
	buf := make([]float64, lanes)
	for i := 0; i < n; i += lanes {
		end := min(i+lanes, n)
		lo := hwy.PromoteToFloat64(hwy.Load(mins[i:end]))
		hi := hwy.PromoteToFloat64(hwy.Load(maxs[i:end]))

		scale, zp := chooseLanes(lo, hi, qmin, qmax, opts)

		hwy.Store(hwy.DemoteToFloat32(scale), scales[i:end])

		// Store to buffer and narrow float64 → int32
		hwy.Store(zp, buf)
		for j := range end - i {
			zeroPoints[i+j] = int32(buf[j])
		}
	}
	return nil
}

func chooseLanes(lo, hi hwy.Vec[float64], qmin, qmax int32, opts Options) (scale, zp hwy.Vec[float64]) {
	fqmin, fqmax := float64(qmin), float64(qmax)
	span := fqmax - fqmin
	zero := hwy.Zero[float64]()
	one := hwy.Set[float64](1)
	qminVec := hwy.Set(fqmin)
	qmaxVec := hwy.Set(fqmax)
	thrVec := hwy.Set[float64](smallScaleThreshold)

	lo = hwy.Min(lo, zero)
	hi = hwy.Max(hi, zero)

	var symmetric hwy.Mask[float64]
	if opts.PreserveSparsity {
		symmetric = hwy.MaskAnd(hwy.LessThan(lo, zero), hwy.GreaterThan(hi, zero))
		sqmin, sqmax := symmetricBounds(qmin, qmax)
		sqminVec, sqmaxVec := hwy.Set(sqmin), hwy.Set(sqmax)
		s := hwy.Max(hwy.Abs(hwy.Div(lo, sqminVec)), hwy.Abs(hwy.Div(hi, sqmaxVec)))
		lo = hwy.IfThenElse(symmetric, hwy.Mul(s, sqminVec), lo)
		hi = hwy.IfThenElse(symmetric, hwy.Mul(s, sqmaxVec), hi)
	}

	scale = hwy.Div(hwy.Sub(hi, lo), hwy.Set(span))

	s32 := hwy.DemoteToFloat32(scale)
	degenerate := hwy.MaskOr(
		hwy.Equal(s32, hwy.Zero[float32]()),
		hwy.IsInf(hwy.Div(hwy.Set[float32](1), s32)),
	)
	scale = hwy.IfThenElse(hwy.RebindMask[float64](degenerate), hwy.Set(0.1), scale)

	if opts.ForcePowerOfTwo {
		below := hwy.Div(one, hwymath.Exp2(hwy.Floor(hwymath.Log2(hwy.Div(one, scale)))))
		above := hwymath.Exp2(hwy.Ceil(hwymath.Log2(scale)))
		scale = hwy.IfThenElse(hwy.LessThan(scale, one), below, above)
	}

	small := hwy.LessThan(scale, thrVec)
	amp := hwy.Div(thrVec, scale)
	loZero := hwy.Equal(lo, zero)
	hiZero := hwy.Equal(hi, zero)
	widened := hwy.Set(smallScaleThreshold * span)
	newHi := hwy.IfThenElse(loZero, widened, hwy.IfThenElse(hiZero, hi, hwy.Mul(hi, amp)))
	newLo := hwy.IfThenElse(loZero, lo, hwy.IfThenElse(hiZero, hwy.Neg(widened), hwy.Mul(lo, amp)))
	lo = hwy.IfThenElse(small, newLo, lo)
	hi = hwy.IfThenElse(small, newHi, hi)
	scale = hwy.IfThenElse(small, thrVec, scale)

	loScaled := hwy.Div(lo, scale)
	hiScaled := hwy.Div(hi, scale)
	fromMin := hwy.Sub(qminVec, loScaled)
	fromMax := hwy.Sub(qmaxVec, hiScaled)
	errMin := hwy.Sub(hwy.Abs(qminVec), hwy.Abs(loScaled))
	errMax := hwy.Sub(hwy.Abs(qmaxVec), hwy.Abs(hiScaled))
	initial := hwy.IfThenElse(hwy.LessThan(errMin, errMax), fromMin, fromMax)
	if opts.PreserveSparsity {
		initial = hwy.IfThenElse(symmetric, hwy.Set((fqmin+fqmax)/2), initial)
	}

	zp = hwy.Round(initial)
	zp = hwy.IfThenElse(hwy.GreaterThan(initial, qmaxVec), qmaxVec, zp)
	zp = hwy.IfThenElse(hwy.LessThan(initial, qminVec), qminVec, zp)
	return scale, zp
}
