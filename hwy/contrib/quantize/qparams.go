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
	"log/slog"
	"math"

	"github.com/ajroetker/hwyqat/internal/envconfig"
)

var (
	// ErrInvalidRange is returned when min or max is not finite or min > max.
	ErrInvalidRange = errors.New("quantize: invalid min/max range")

	// ErrInvalidQuantRange is returned when qmin >= qmax.
	ErrInvalidQuantRange = errors.New("quantize: qmin must be less than qmax")

	// ErrLengthMismatch is returned when batch buffers differ in length.
	ErrLengthMismatch = errors.New("quantize: buffer length mismatch")

	// ErrUnknownBackend is returned by NewChooser for an unrecognized backend name.
	ErrUnknownBackend = errors.New("quantize: unknown backend")
)

// smallScaleThreshold is the smallest scale the chooser emits; smaller scales
// are raised to it and the range widened to match.
const smallScaleThreshold = 6.1e-5

// Params is an affine quantization mapping: real = (q - ZeroPoint) * Scale.
type Params struct {
	Scale     float32
	ZeroPoint int32
}

// Options tune parameter selection.
type Options struct {
	// PreserveSparsity makes a range that straddles zero symmetric around it
	// and fixes the zero point at the midpoint of [qmin, qmax] (symmetric
	// quantization). Ranges with min == 0 or max == 0 are mapped as usual.
	PreserveSparsity bool
	// ForcePowerOfTwo rounds the scale to a power of two.
	ForcePowerOfTwo bool
	// ReduceRange halves qmin and qmax.
	ReduceRange bool
}

// Chooser derives quantization parameters from observed ranges.
//
// Implementations are interchangeable: for the same inputs every Chooser
// returns bit-identical results.
type Chooser interface {
	// Name identifies the backend.
	Name() string
	// Choose derives parameters for a single range.
	Choose(min, max float32, qmin, qmax int32, opts Options) (Params, error)
	// ChooseBatch derives parameters for every (mins[i], maxs[i]) pair and
	// writes them to scales[i] and zeroPoints[i]. All inputs are validated
	// before any output is written.
	ChooseBatch(mins, maxs []float32, qmin, qmax int32, opts Options, scales []float32, zeroPoints []int32) error
}

// Backend names a Chooser implementation.
type Backend string

const (
	BackendPortable   Backend = envconfig.BackendPortable
	BackendVectorized Backend = envconfig.BackendVectorized
)

// NewChooser returns the Chooser for backend b.
func NewChooser(b Backend) (Chooser, error) {
	switch b {
	case BackendPortable:
		return Portable{}, nil
	case BackendVectorized:
		return Vectorized{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, string(b))
	}
}

// Default returns the Chooser selected by HWY_QPARAMS_BACKEND.
func Default() Chooser {
	b := Backend(envconfig.QParamsBackend())
	c, err := NewChooser(b)
	if err != nil {
		// QParamsBackend only returns known names.
		panic(err)
	}
	slog.Debug("quantization parameter backend", "backend", c.Name())
	return c
}

// validateQuantRange applies ReduceRange and checks the integer range.
func validateQuantRange(qmin, qmax int32, opts Options) (int32, int32, error) {
	if opts.ReduceRange {
		qmin /= 2
		qmax /= 2
	}
	if qmin >= qmax {
		return 0, 0, fmt.Errorf("%w: [%d, %d]", ErrInvalidQuantRange, qmin, qmax)
	}
	return qmin, qmax, nil
}

func validateRange(min, max float32) bool {
	lo, hi := float64(min), float64(max)
	return !math.IsNaN(lo) && !math.IsNaN(hi) && !math.IsInf(lo, 0) && !math.IsInf(hi, 0) && lo <= hi
}

func validateBatch(mins, maxs []float32, scales []float32, zeroPoints []int32) error {
	n := len(mins)
	if len(maxs) != n || len(scales) != n || len(zeroPoints) != n {
		return fmt.Errorf("%w: mins %d, maxs %d, scales %d, zero points %d",
			ErrLengthMismatch, len(mins), len(maxs), len(scales), len(zeroPoints))
	}
	for i := range n {
		if !validateRange(mins[i], maxs[i]) {
			return fmt.Errorf("%w: channel %d has [%v, %v]", ErrInvalidRange, i, mins[i], maxs[i])
		}
	}
	return nil
}

// symmetricBounds returns the integer bounds of the symmetric grid.
func symmetricBounds(qmin, qmax int32) (float64, float64) {
	span := int64(qmax) - int64(qmin)
	return float64(-(span/2 + 1)), float64(span / 2)
}

// Portable computes parameters one range at a time in float64 arithmetic.
type Portable struct{}

// Name implements Chooser.
func (Portable) Name() string { return string(BackendPortable) }

// Choose implements Chooser.
func (p Portable) Choose(min, max float32, qmin, qmax int32, opts Options) (Params, error) {
	qmin, qmax, err := validateQuantRange(qmin, qmax, opts)
	if err != nil {
		return Params{}, err
	}
	if !validateRange(min, max) {
		return Params{}, fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, min, max)
	}
	return chooseScalar(float64(min), float64(max), qmin, qmax, opts), nil
}

// ChooseBatch implements Chooser.
func (p Portable) ChooseBatch(mins, maxs []float32, qmin, qmax int32, opts Options, scales []float32, zeroPoints []int32) error {
	qmin, qmax, err := validateQuantRange(qmin, qmax, opts)
	if err != nil {
		return err
	}
	if err := validateBatch(mins, maxs, scales, zeroPoints); err != nil {
		return err
	}
	for i := range mins {
		params := chooseScalar(float64(mins[i]), float64(maxs[i]), qmin, qmax, opts)
		scales[i], zeroPoints[i] = params.Scale, params.ZeroPoint
	}
	return nil
}

// selectLess and selectGreater pick like the vector Min and Max: the first
// operand wins only on a strict comparison.
func selectLess(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func selectGreater(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func chooseScalar(lo, hi float64, qmin, qmax int32, opts Options) Params {
	fqmin, fqmax := float64(qmin), float64(qmax)
	span := fqmax - fqmin

	// The range must contain zero so that zero is exactly representable.
	lo = selectLess(lo, 0)
	hi = selectGreater(hi, 0)

	symmetric := opts.PreserveSparsity && lo < 0 && hi > 0
	if symmetric {
		sqmin, sqmax := symmetricBounds(qmin, qmax)
		s := selectGreater(math.Abs(lo/sqmin), math.Abs(hi/sqmax))
		lo = s * sqmin
		hi = s * sqmax
	}

	scale := (hi - lo) / span
	if s32 := float32(scale); s32 == 0 || math.IsInf(float64(1/s32), 0) {
		scale = 0.1
	}

	if opts.ForcePowerOfTwo {
		if scale < 1 {
			scale = 1 / math.Exp2(math.Floor(math.Log2(1/scale)))
		} else {
			scale = math.Exp2(math.Ceil(math.Log2(scale)))
		}
	}

	if scale < smallScaleThreshold {
		amp := smallScaleThreshold / scale
		switch {
		case lo == 0:
			hi = smallScaleThreshold * span
		case hi == 0:
			lo = -smallScaleThreshold * span
		default:
			lo *= amp
			hi *= amp
		}
		scale = smallScaleThreshold
	}

	var initial float64
	if symmetric {
		initial = (fqmin + fqmax) / 2
	} else {
		fromMin := fqmin - lo/scale
		fromMax := fqmax - hi/scale
		errMin := math.Abs(fqmin) - math.Abs(lo/scale)
		errMax := math.Abs(fqmax) - math.Abs(hi/scale)
		if errMin < errMax {
			initial = fromMin
		} else {
			initial = fromMax
		}
	}

	zp := math.RoundToEven(initial)
	if initial > fqmax {
		zp = fqmax
	}
	if initial < fqmin {
		zp = fqmin
	}
	return Params{Scale: float32(scale), ZeroPoint: int32(zp)}
}
