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

package fakequant

import (
	"fmt"
	"log/slog"

	"github.com/ajroetker/hwyqat/hwy/contrib/quantize"
	"github.com/ajroetker/hwyqat/hwy/contrib/tensor"
	"github.com/ajroetker/hwyqat/internal/logutil"
)

// Options configure the fused operator.
type Options struct {
	// AveragingConstant weights the newest batch in the moving average, in (0, 1].
	AveragingConstant float32
	// QuantMin and QuantMax bound the integer grid.
	QuantMin, QuantMax int32
	// ChannelAxis is the per-channel axis. Only 0 is supported.
	ChannelAxis int
	// PerChannel selects per-channel statistics and parameters.
	PerChannel bool
	// Symmetric fixes the zero point at the grid midpoint and derives the
	// scale from max(|min|, |max|).
	Symmetric bool
}

// DefaultOptions returns per-tensor asymmetric uint8 settings with an
// averaging constant of 0.01.
func DefaultOptions() Options {
	return Options{
		AveragingConstant: 0.01,
		QuantMin:          0,
		QuantMax:          255,
	}
}

// Validate reports configuration errors.
func (o Options) Validate() error {
	if !(o.AveragingConstant > 0 && o.AveragingConstant <= 1) {
		return fmt.Errorf("%w: %v", ErrAveragingConstant, o.AveragingConstant)
	}
	if o.QuantMin >= o.QuantMax {
		return fmt.Errorf("%w: [%d, %d]", quantize.ErrInvalidQuantRange, o.QuantMin, o.QuantMax)
	}
	if o.PerChannel && o.ChannelAxis != 0 {
		return fmt.Errorf("%w: axis %d", ErrUnsupportedAxis, o.ChannelAxis)
	}
	return nil
}

func (o Options) qparamOptions() quantize.Options {
	return quantize.Options{PreserveSparsity: o.Symmetric}
}

// Operator runs the fused observe and fake-quantize step with a fixed
// configuration.
type Operator struct {
	opts    Options
	chooser quantize.Chooser
	logger  *slog.Logger
}

// New returns an Operator. A nil chooser selects quantize.Default().
func New(opts Options, chooser quantize.Chooser) (*Operator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if chooser == nil {
		chooser = quantize.Default()
	}
	return &Operator{opts: opts, chooser: chooser, logger: slog.Default()}, nil
}

// WithLogger sets the logger used for debug and trace output.
func (op *Operator) WithLogger(logger *slog.Logger) *Operator {
	op.logger = logger
	return op
}

// Options returns the operator configuration.
func (op *Operator) Options() Options { return op.opts }

// Chooser returns the quantization parameter backend.
func (op *Operator) Chooser() quantize.Chooser { return op.chooser }

// Channels returns the number of state slots needed for x.
func (op *Operator) Channels(x *tensor.Dense) (int, error) {
	return channelCount(x, op.opts.PerChannel)
}

func channelCount(x *tensor.Dense, perChannel bool) (int, error) {
	if !perChannel {
		return 1, nil
	}
	if x.Rank() == 0 {
		return 0, fmt.Errorf("%w: scalar input has no channel axis", ErrUnsupportedAxis)
	}
	return x.Dim(0), nil
}

// Run observes x when observe is set and fake-quantizes it when fakeQuant is
// set. Running statistics and parameters in st are updated in place. With
// fakeQuant off, Run returns a copy of x and an all-true mask.
//
// Configuration and shape errors are reported before st is modified.
func (op *Operator) Run(x *tensor.Dense, observe, fakeQuant bool, st *State) (*tensor.Dense, []bool, error) {
	if x == nil || st == nil {
		return nil, nil, ErrNilInput
	}
	channels, err := op.Channels(x)
	if err != nil {
		return nil, nil, err
	}
	if err := st.validate(channels); err != nil {
		return nil, nil, err
	}

	logutil.Trace(op.logger, "fused observe fake quant", "shape", x.Shape(), "observe", observe, "fake_quant", fakeQuant)

	if observe {
		bootstrap := !st.Observed()
		if err := ObserveMovingAverage(x, op.opts.AveragingConstant, st.RunningMin, st.RunningMax, op.opts.PerChannel); err != nil {
			return nil, nil, err
		}
		if bootstrap {
			op.logger.Debug("observer initialized from first batch", "channels", channels)
		}
	}

	if fakeQuant {
		return ChooseQParamsFakeQuant(x, st, op.opts, op.chooser)
	}

	op.logger.Debug("fake quantization disabled, passing input through")
	return x.Clone(), tensor.OnesMask(x.Numel()), nil
}

// ChooseQParamsFakeQuant derives quantization parameters from the running
// statistics in st, stores them in st.Scale and st.ZeroPoint, and
// fake-quantizes x with them. Configuration and shape errors are reported
// before st is modified.
func ChooseQParamsFakeQuant(x *tensor.Dense, st *State, opts Options, chooser quantize.Chooser) (*tensor.Dense, []bool, error) {
	if x == nil || st == nil || chooser == nil {
		return nil, nil, ErrNilInput
	}
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	channels, err := channelCount(x, opts.PerChannel)
	if err != nil {
		return nil, nil, err
	}
	if err := st.validate(channels); err != nil {
		return nil, nil, err
	}

	if opts.PerChannel {
		err := chooser.ChooseBatch(st.RunningMin, st.RunningMax, opts.QuantMin, opts.QuantMax,
			opts.qparamOptions(), st.Scale, st.ZeroPoint)
		if err != nil {
			return nil, nil, fmt.Errorf("choose per-channel qparams: %w", err)
		}
		return quantize.FakeQuantizePerChannelAffineCachemask(x, st.Scale, st.ZeroPoint, opts.ChannelAxis, opts.QuantMin, opts.QuantMax)
	}

	p, err := chooser.Choose(st.RunningMin[0], st.RunningMax[0], opts.QuantMin, opts.QuantMax, opts.qparamOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("choose qparams: %w", err)
	}
	st.Scale[0], st.ZeroPoint[0] = p.Scale, p.ZeroPoint
	return quantize.FakeQuantizePerTensorAffineCachemask(x, p.Scale, p.ZeroPoint, opts.QuantMin, opts.QuantMax)
}

// FusedMovingAvgObsFakeQuant runs a single fused step with the default
// quantization parameter backend.
func FusedMovingAvgObsFakeQuant(x *tensor.Dense, observe, fakeQuant bool, opts Options, st *State) (*tensor.Dense, []bool, error) {
	op, err := New(opts, nil)
	if err != nil {
		return nil, nil, err
	}
	return op.Run(x, observe, fakeQuant, st)
}
