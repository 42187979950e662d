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
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ajroetker/hwyqat/hwy"
)

var choosers = []Chooser{Portable{}, Vectorized{}}

var allOptions = func() []Options {
	var opts []Options
	for _, sym := range []bool{false, true} {
		for _, pow2 := range []bool{false, true} {
			for _, reduce := range []bool{false, true} {
				opts = append(opts, Options{PreserveSparsity: sym, ForcePowerOfTwo: pow2, ReduceRange: reduce})
			}
		}
	}
	return opts
}()

var quantRanges = [][2]int32{
	{0, 255},
	{-128, 127},
	{0, 15},
	{-8, 7},
	{0, 65535},
	{-32768, 32767},
	{-2, 3},
}

func TestChooseKnownRanges(t *testing.T) {
	tests := []struct {
		name       string
		min, max   float32
		qmin, qmax int32
		opts       Options
		wantScale  float32
		wantZP     int32
	}{
		{
			name: "centered uint8", min: -2, max: 2, qmin: 0, qmax: 255,
			wantScale: float32(4.0 / 255.0), wantZP: 128,
		},
		{
			name: "non-negative", min: 0, max: 1, qmin: 0, qmax: 255,
			wantScale: float32(1.0 / 255.0), wantZP: 0,
		},
		{
			name: "non-positive", min: -1, max: 0, qmin: 0, qmax: 255,
			wantScale: float32(1.0 / 255.0), wantZP: 255,
		},
		{
			name: "range extended to zero", min: 2, max: 4, qmin: 0, qmax: 255,
			wantScale: float32(4.0 / 255.0), wantZP: 0,
		},
		{
			name: "degenerate", min: 0, max: 0, qmin: 0, qmax: 255,
			wantScale: 0.1, wantZP: 0,
		},
		{
			name: "tiny range", min: 0, max: 1e-6, qmin: 0, qmax: 255,
			wantScale: smallScaleThreshold, wantZP: 0,
		},
		{
			name: "symmetric uint8", min: -1, max: 3, qmin: 0, qmax: 255,
			opts:      Options{PreserveSparsity: true},
			wantScale: float32(3.0 / 127.0), wantZP: 128,
		},
		{
			name: "symmetric int8", min: -1, max: 3, qmin: -128, qmax: 127,
			opts:      Options{PreserveSparsity: true},
			wantScale: float32(3.0 / 127.0), wantZP: 0,
		},
		{
			name: "symmetric degenerate", min: 0, max: 0, qmin: 0, qmax: 255,
			opts:      Options{PreserveSparsity: true},
			wantScale: 0.1, wantZP: 0,
		},
		{
			name: "symmetric non-negative", min: 0, max: 1, qmin: 0, qmax: 255,
			opts:      Options{PreserveSparsity: true},
			wantScale: float32(1.0 / 255.0), wantZP: 0,
		},
		{
			name: "symmetric non-positive", min: -1, max: 0, qmin: 0, qmax: 255,
			opts:      Options{PreserveSparsity: true},
			wantScale: float32(1.0 / 255.0), wantZP: 255,
		},
		{
			name: "power of two below one", min: -1, max: 1, qmin: 0, qmax: 255,
			opts:      Options{ForcePowerOfTwo: true},
			wantScale: 1.0 / 64, wantZP: 64,
		},
		{
			name: "power of two above one", min: 0, max: 1000, qmin: 0, qmax: 255,
			opts:      Options{ForcePowerOfTwo: true},
			wantScale: 4, wantZP: 0,
		},
		{
			name: "reduced range", min: 0, max: 127, qmin: 0, qmax: 255,
			opts:      Options{ReduceRange: true},
			wantScale: 1, wantZP: 0,
		},
	}

	for _, c := range choosers {
		for _, tt := range tests {
			t.Run(c.Name()+"/"+tt.name, func(t *testing.T) {
				got, err := c.Choose(tt.min, tt.max, tt.qmin, tt.qmax, tt.opts)
				if err != nil {
					t.Fatalf("Choose: %v", err)
				}
				if math.Abs(float64(got.Scale-tt.wantScale)) > 1e-6*float64(tt.wantScale) {
					t.Errorf("scale: got %v, want %v", got.Scale, tt.wantScale)
				}
				if got.ZeroPoint != tt.wantZP {
					t.Errorf("zero point: got %d, want %d", got.ZeroPoint, tt.wantZP)
				}
			})
		}
	}
}

func TestChooseErrors(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	tests := []struct {
		name       string
		min, max   float32
		qmin, qmax int32
		opts       Options
		want       error
	}{
		{name: "nan min", min: nan, max: 1, qmin: 0, qmax: 255, want: ErrInvalidRange},
		{name: "nan max", min: 0, max: nan, qmin: 0, qmax: 255, want: ErrInvalidRange},
		{name: "inf max", min: 0, max: inf, qmin: 0, qmax: 255, want: ErrInvalidRange},
		{name: "unobserved sentinels", min: inf, max: -inf, qmin: 0, qmax: 255, want: ErrInvalidRange},
		{name: "inverted", min: 1, max: -1, qmin: 0, qmax: 255, want: ErrInvalidRange},
		{name: "equal quant bounds", min: 0, max: 1, qmin: 5, qmax: 5, want: ErrInvalidQuantRange},
		{name: "inverted quant bounds", min: 0, max: 1, qmin: 255, qmax: 0, want: ErrInvalidQuantRange},
		{
			name: "reduced to empty", min: 0, max: 1, qmin: 0, qmax: 1,
			opts: Options{ReduceRange: true}, want: ErrInvalidQuantRange,
		},
	}

	for _, c := range choosers {
		for _, tt := range tests {
			t.Run(c.Name()+"/"+tt.name, func(t *testing.T) {
				_, err := c.Choose(tt.min, tt.max, tt.qmin, tt.qmax, tt.opts)
				if !errors.Is(err, tt.want) {
					t.Errorf("got error %v, want %v", err, tt.want)
				}
			})
		}
	}
}

func TestChooseBatchErrorsLeaveOutputs(t *testing.T) {
	for _, c := range choosers {
		t.Run(c.Name(), func(t *testing.T) {
			scales := []float32{-1, -1, -1}
			zps := []int32{-7, -7, -7}

			err := c.ChooseBatch([]float32{0, float32(math.NaN()), 0}, []float32{1, 1, 1}, 0, 255, Options{}, scales, zps)
			if !errors.Is(err, ErrInvalidRange) {
				t.Fatalf("got error %v, want ErrInvalidRange", err)
			}
			if diff := cmp.Diff([]float32{-1, -1, -1}, scales); diff != "" {
				t.Errorf("scales modified (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]int32{-7, -7, -7}, zps); diff != "" {
				t.Errorf("zero points modified (-want +got):\n%s", diff)
			}

			err = c.ChooseBatch([]float32{0, 0}, []float32{1, 1, 1}, 0, 255, Options{}, scales, zps)
			if !errors.Is(err, ErrLengthMismatch) {
				t.Errorf("got error %v, want ErrLengthMismatch", err)
			}

			err = c.ChooseBatch([]float32{0, 0, 0}, []float32{1, 1, 1}, 3, 3, Options{}, scales, zps)
			if !errors.Is(err, ErrInvalidQuantRange) {
				t.Errorf("got error %v, want ErrInvalidQuantRange", err)
			}
		})
	}
}

// randomRanges returns finite ranges covering mixed signs, one-sided ranges,
// degenerate ranges and magnitudes from 1e-12 to 1e6.
func randomRanges(rng *rand.Rand, n int) (mins, maxs []float32) {
	mins = make([]float32, n)
	maxs = make([]float32, n)
	for i := range n {
		mag := float32(math.Pow(10, float64(rng.IntN(19)-12)))
		a := (rng.Float32()*2 - 1) * mag
		b := (rng.Float32()*2 - 1) * mag
		switch i % 5 {
		case 0:
			a = float32(math.Abs(float64(a)))
			b = float32(math.Abs(float64(b)))
		case 1:
			a = -float32(math.Abs(float64(a)))
			b = -float32(math.Abs(float64(b)))
		case 2:
			b = a
		}
		mins[i], maxs[i] = min(a, b), max(a, b)
	}
	return mins, maxs
}

func TestBackendsAgree(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	mins, maxs := randomRanges(rng, 97)
	mins = append(mins, 0, -1, 0, float32(math.SmallestNonzeroFloat32), -math.MaxFloat32/4)
	maxs = append(maxs, 0, 0, 1, float32(math.SmallestNonzeroFloat32), math.MaxFloat32/4)
	n := len(mins)

	for _, width := range []int{16, 32, 64} {
		restore := hwy.OverrideWidth(width)
		for _, qr := range quantRanges {
			for _, opts := range allOptions {
				if opts.ReduceRange && qr[1]/2 <= qr[0]/2 {
					continue
				}
				name := fmt.Sprintf("w%d/q[%d,%d]/%+v", width, qr[0], qr[1], opts)
				pScales, pZPs := make([]float32, n), make([]int32, n)
				vScales, vZPs := make([]float32, n), make([]int32, n)

				if err := (Portable{}).ChooseBatch(mins, maxs, qr[0], qr[1], opts, pScales, pZPs); err != nil {
					t.Fatalf("%s: portable: %v", name, err)
				}
				if err := (Vectorized{}).ChooseBatch(mins, maxs, qr[0], qr[1], opts, vScales, vZPs); err != nil {
					t.Fatalf("%s: vectorized: %v", name, err)
				}
				if diff := cmp.Diff(pScales, vScales); diff != "" {
					t.Errorf("%s: scales differ (-portable +vectorized):\n%s", name, diff)
				}
				if diff := cmp.Diff(pZPs, vZPs); diff != "" {
					t.Errorf("%s: zero points differ (-portable +vectorized):\n%s", name, diff)
				}

				qmin, qmax := qr[0], qr[1]
				if opts.ReduceRange {
					qmin, qmax = qmin/2, qmax/2
				}
				for i := range n {
					if !(pScales[i] > 0) || math.IsInf(float64(pScales[i]), 0) {
						t.Errorf("%s: range [%v, %v]: scale %v not positive and finite", name, mins[i], maxs[i], pScales[i])
					}
					if pZPs[i] < qmin || pZPs[i] > qmax {
						t.Errorf("%s: range [%v, %v]: zero point %d outside [%d, %d]", name, mins[i], maxs[i], pZPs[i], qmin, qmax)
					}
				}
			}
		}
		restore()
	}
}

func TestChooseMatchesChooseBatch(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	mins, maxs := randomRanges(rng, 20)
	for _, c := range choosers {
		scales := make([]float32, len(mins))
		zps := make([]int32, len(mins))
		if err := c.ChooseBatch(mins, maxs, -128, 127, Options{}, scales, zps); err != nil {
			t.Fatalf("%s: %v", c.Name(), err)
		}
		for i := range mins {
			p, err := c.Choose(mins[i], maxs[i], -128, 127, Options{})
			if err != nil {
				t.Fatalf("%s: %v", c.Name(), err)
			}
			if p != (Params{Scale: scales[i], ZeroPoint: zps[i]}) {
				t.Errorf("%s: range %d: Choose %+v, ChooseBatch {%v %d}", c.Name(), i, p, scales[i], zps[i])
			}
		}
	}
}

func TestSymmetricZeroPoint(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	mins, maxs := randomRanges(rng, 30)
	for _, c := range choosers {
		for _, qr := range quantRanges {
			mid := int32(math.RoundToEven(float64(qr[0]+qr[1]) / 2))
			for i := range mins {
				got, err := c.Choose(mins[i], maxs[i], qr[0], qr[1], Options{PreserveSparsity: true})
				if err != nil {
					t.Fatal(err)
				}
				if mins[i] < 0 && maxs[i] > 0 {
					if got.ZeroPoint != mid {
						t.Errorf("%s q[%d,%d] range [%v, %v]: zero point %d, want %d",
							c.Name(), qr[0], qr[1], mins[i], maxs[i], got.ZeroPoint, mid)
					}
					continue
				}
				// One-sided ranges fall back to the affine mapping.
				want, err := c.Choose(mins[i], maxs[i], qr[0], qr[1], Options{})
				if err != nil {
					t.Fatal(err)
				}
				if got != want {
					t.Errorf("%s q[%d,%d] range [%v, %v]: got %+v, want affine %+v",
						c.Name(), qr[0], qr[1], mins[i], maxs[i], got, want)
				}
			}
		}
	}
}

func TestNewChooser(t *testing.T) {
	for _, b := range []Backend{BackendPortable, BackendVectorized} {
		c, err := NewChooser(b)
		if err != nil {
			t.Fatalf("NewChooser(%q): %v", b, err)
		}
		if c.Name() != string(b) {
			t.Errorf("NewChooser(%q).Name() = %q", b, c.Name())
		}
	}
	if _, err := NewChooser("gpu"); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("got error %v, want ErrUnknownBackend", err)
	}
}

func TestDefaultChooser(t *testing.T) {
	t.Setenv("HWY_QPARAMS_BACKEND", "portable")
	if got := Default().Name(); got != string(BackendPortable) {
		t.Errorf("Default() = %q, want portable", got)
	}
	t.Setenv("HWY_QPARAMS_BACKEND", "vectorized")
	if got := Default().Name(); got != string(BackendVectorized) {
		t.Errorf("Default() = %q, want vectorized", got)
	}
}

func BenchmarkChooseBatch(b *testing.B) {
	rng := rand.New(rand.NewPCG(7, 8))
	mins, maxs := randomRanges(rng, 256)
	scales := make([]float32, len(mins))
	zps := make([]int32, len(mins))
	for _, c := range choosers {
		b.Run(c.Name(), func(b *testing.B) {
			for b.Loop() {
				_ = c.ChooseBatch(mins, maxs, 0, 255, Options{}, scales, zps)
			}
		})
	}
}
