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
	"bytes"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/hwyqat/hwy/contrib/quantize"
	"github.com/ajroetker/hwyqat/hwy/contrib/tensor"
	"github.com/ajroetker/hwyqat/internal/logutil"
)

func mustTensor(t *testing.T, data []float32, shape ...int) *tensor.Dense {
	t.Helper()
	x, err := tensor.FromSlice(data, shape...)
	require.NoError(t, err)
	return x
}

// ema mirrors the update rule with every product rounded to float32.
func ema(old, cur, c float32) float32 {
	return old + float32(c*(cur-old))
}

func newOperator(t *testing.T, opts Options) *Operator {
	t.Helper()
	op, err := New(opts, quantize.Portable{})
	require.NoError(t, err)
	return op
}

func TestNewState(t *testing.T) {
	st := NewState(3)
	assert.Equal(t, 3, st.Channels())
	assert.False(t, st.Observed())
	for i := range 3 {
		assert.True(t, math.IsInf(float64(st.RunningMin[i]), 1))
		assert.True(t, math.IsInf(float64(st.RunningMax[i]), -1))
		assert.Equal(t, float32(1), st.Scale[i])
		assert.Equal(t, int32(0), st.ZeroPoint[i])
	}

	st.RunningMin[0], st.RunningMax[0] = -1, 1
	assert.False(t, st.Observed(), "one unobserved slot keeps the state unobserved")

	c := st.Clone()
	c.RunningMin[0] = -5
	assert.Equal(t, float32(-1), st.RunningMin[0])

	st.Reset()
	assert.True(t, math.IsInf(float64(st.RunningMin[0]), 1))
	assert.Equal(t, float32(-5), c.RunningMin[0])
}

func TestOptionsValidate(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())

	tests := []struct {
		name   string
		modify func(*Options)
		want   error
	}{
		{"zero averaging constant", func(o *Options) { o.AveragingConstant = 0 }, ErrAveragingConstant},
		{"averaging constant above one", func(o *Options) { o.AveragingConstant = 1.5 }, ErrAveragingConstant},
		{"nan averaging constant", func(o *Options) { o.AveragingConstant = float32(math.NaN()) }, ErrAveragingConstant},
		{"empty quant range", func(o *Options) { o.QuantMin, o.QuantMax = 4, 4 }, quantize.ErrInvalidQuantRange},
		{"per-channel axis 1", func(o *Options) { o.PerChannel, o.ChannelAxis = true, 1 }, ErrUnsupportedAxis},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			require.ErrorIs(t, opts.Validate(), tt.want)
			_, err := New(opts, nil)
			require.ErrorIs(t, err, tt.want)
		})
	}

	opts := DefaultOptions()
	opts.AveragingConstant = 1
	require.NoError(t, opts.Validate())
}

func TestRunPerTensorBootstrap(t *testing.T) {
	op := newOperator(t, DefaultOptions())
	st := NewState(1)
	x := mustTensor(t, []float32{-2, -1, 1, 2}, 4)

	out, mask, err := op.Run(x, true, true, st)
	require.NoError(t, err)

	assert.Equal(t, float32(-2), st.RunningMin[0], "first batch replaces the sentinel")
	assert.Equal(t, float32(2), st.RunningMax[0])
	assert.InDelta(t, 4.0/255.0, st.Scale[0], 1e-6)
	assert.Equal(t, int32(128), st.ZeroPoint[0])

	wantOut, wantMask, err := quantize.FakeQuantizePerTensorAffineCachemask(x, st.Scale[0], st.ZeroPoint[0], 0, 255)
	require.NoError(t, err)
	assert.Equal(t, wantOut.Data(), out.Data())
	assert.Equal(t, wantMask, mask)
	assert.Equal(t, []float32{-2, -1, 1, 2}, x.Data(), "input is not modified")

	for i, v := range out.Data() {
		assert.InDelta(t, x.Data()[i], v, float64(st.Scale[0]), "index %d", i)
	}
}

func TestRunMovingAverage(t *testing.T) {
	opts := DefaultOptions()
	opts.AveragingConstant = 0.5
	op := newOperator(t, opts)
	st := NewState(1)

	_, _, err := op.Run(mustTensor(t, []float32{-2, 0, 2}, 3), true, true, st)
	require.NoError(t, err)
	_, _, err = op.Run(mustTensor(t, []float32{-4, 0, 4}, 3), true, true, st)
	require.NoError(t, err)
	assert.Equal(t, float32(-3), st.RunningMin[0])
	assert.Equal(t, float32(3), st.RunningMax[0])

	opts.AveragingConstant = 0.1
	op = newOperator(t, opts)
	wantMin := ema(st.RunningMin[0], -1, 0.1)
	wantMax := ema(st.RunningMax[0], 7, 0.1)
	_, _, err = op.Run(mustTensor(t, []float32{-1, 7}, 2), true, true, st)
	require.NoError(t, err)
	assert.Equal(t, wantMin, st.RunningMin[0])
	assert.Equal(t, wantMax, st.RunningMax[0])

	want, err := quantize.Portable{}.Choose(wantMin, wantMax, 0, 255, quantize.Options{})
	require.NoError(t, err)
	assert.Equal(t, want, quantize.Params{Scale: st.Scale[0], ZeroPoint: st.ZeroPoint[0]})
}

func TestRunPerChannel(t *testing.T) {
	opts := DefaultOptions()
	opts.PerChannel = true
	opts.AveragingConstant = 0.5
	op := newOperator(t, opts)

	x := mustTensor(t, []float32{
		-1, 0, 2,
		1, 3, 5,
	}, 2, 3)
	n, err := op.Channels(x)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	st := NewState(n)

	_, _, err = op.Run(x, true, true, st)
	require.NoError(t, err)
	assert.Equal(t, []float32{-1, 1}, st.RunningMin)
	assert.Equal(t, []float32{2, 5}, st.RunningMax)

	y := mustTensor(t, []float32{
		-3, 0, 0,
		1, 1, 7,
	}, 2, 3)
	out, mask, err := op.Run(y, true, true, st)
	require.NoError(t, err)
	assert.Equal(t, []float32{-2, 1}, st.RunningMin)
	assert.Equal(t, []float32{1, 6}, st.RunningMax)

	scales := make([]float32, 2)
	zps := make([]int32, 2)
	require.NoError(t, quantize.Portable{}.ChooseBatch(st.RunningMin, st.RunningMax, 0, 255, quantize.Options{}, scales, zps))
	assert.Equal(t, scales, st.Scale)
	assert.Equal(t, zps, st.ZeroPoint)

	wantOut, wantMask, err := quantize.FakeQuantizePerChannelAffineCachemask(y, scales, zps, 0, 0, 255)
	require.NoError(t, err)
	assert.Equal(t, wantOut.Data(), out.Data())
	assert.Equal(t, wantMask, mask)
	assert.False(t, mask[0], "-3 lies outside the averaged range of channel 0")
	assert.False(t, mask[5], "7 lies outside the averaged range of channel 1")
}

func TestRunSymmetric(t *testing.T) {
	opts := DefaultOptions()
	opts.Symmetric = true
	opts.QuantMin, opts.QuantMax = -128, 127
	op := newOperator(t, opts)
	st := NewState(1)

	_, _, err := op.Run(mustTensor(t, []float32{-1, 3}, 2), true, true, st)
	require.NoError(t, err)
	assert.Equal(t, int32(0), st.ZeroPoint[0])
	assert.InDelta(t, 3.0/127.0, st.Scale[0], 1e-6)
}

func TestRunPassThrough(t *testing.T) {
	op := newOperator(t, DefaultOptions())
	st := NewState(1)
	x := mustTensor(t, []float32{0.1, -0.2, 0.3}, 3)

	out, mask, err := op.Run(x, false, false, st)
	require.NoError(t, err)
	assert.Equal(t, x.Data(), out.Data())
	assert.Equal(t, []bool{true, true, true}, mask)
	out.Data()[0] = 9
	assert.Equal(t, float32(0.1), x.Data()[0], "pass-through returns a copy")
	assert.False(t, st.Observed(), "state untouched without observe")

	_, _, err = op.Run(x, true, false, st)
	require.NoError(t, err)
	assert.Equal(t, float32(-0.2), st.RunningMin[0])
	assert.Equal(t, float32(0.3), st.RunningMax[0])
	assert.Equal(t, float32(1), st.Scale[0], "parameters are only chosen when fake quantizing")
	assert.Equal(t, int32(0), st.ZeroPoint[0])
}

func TestRunFakeQuantWithoutObservation(t *testing.T) {
	op := newOperator(t, DefaultOptions())
	st := NewState(1)
	_, _, err := op.Run(mustTensor(t, []float32{1}, 1), false, true, st)
	require.ErrorIs(t, err, quantize.ErrInvalidRange)
	assert.Equal(t, float32(1), st.Scale[0])
}

func TestRunErrorsLeaveState(t *testing.T) {
	perChannel := DefaultOptions()
	perChannel.PerChannel = true

	tests := []struct {
		name  string
		opts  Options
		x     []float32
		shape []int
		slots int
		want  error
	}{
		{"per-tensor state with two slots", DefaultOptions(), []float32{1, 2}, []int{2}, 2, ErrStateShape},
		{"per-channel state too small", perChannel, []float32{1, 2, 3, 4}, []int{2, 2}, 1, ErrStateShape},
		{"per-channel scalar input", perChannel, []float32{1}, nil, 1, ErrUnsupportedAxis},
		{"empty input", DefaultOptions(), []float32{}, []int{0}, 1, tensor.ErrEmpty},
		{"empty channel", perChannel, []float32{}, []int{2, 0}, 2, tensor.ErrEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := newOperator(t, tt.opts)
			st := NewState(tt.slots)
			before := st.Clone()

			_, _, err := op.Run(mustTensor(t, tt.x, tt.shape...), true, true, st)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, st)
		})
	}

	op := newOperator(t, DefaultOptions())
	_, _, err := op.Run(nil, true, true, NewState(1))
	require.ErrorIs(t, err, ErrNilInput)
	_, _, err = op.Run(mustTensor(t, []float32{1}, 1), true, true, nil)
	require.ErrorIs(t, err, ErrNilInput)
}

func TestChooseQParamsFakeQuantChecksState(t *testing.T) {
	perChannel := DefaultOptions()
	perChannel.PerChannel = true
	x := mustTensor(t, []float32{-1, 0, 1, 2, 3, 4}, 3, 2)

	observed := func(n int) *State {
		st := NewState(n)
		for i := range n {
			st.RunningMin[i], st.RunningMax[i] = -1, float32(i+1)
		}
		return st
	}

	tests := []struct {
		name string
		opts Options
		st   *State
		want error
	}{
		{"per-tensor empty state", DefaultOptions(), &State{}, ErrStateShape},
		{"per-tensor extra slots", DefaultOptions(), observed(2), ErrStateShape},
		{"per-channel too few slots", perChannel, observed(2), ErrStateShape},
		{"per-channel too many slots", perChannel, observed(4), ErrStateShape},
		{"per-channel empty state", perChannel, &State{}, ErrStateShape},
		{"per-channel axis 1", Options{AveragingConstant: 0.01, QuantMax: 255, PerChannel: true, ChannelAxis: 1}, observed(3), ErrUnsupportedAxis},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.st.Clone()
			_, _, err := ChooseQParamsFakeQuant(x, tt.st, tt.opts, quantize.Portable{})
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, tt.st)
		})
	}

	_, _, err := ChooseQParamsFakeQuant(x, observed(3), perChannel, nil)
	require.ErrorIs(t, err, ErrNilInput)

	st := observed(3)
	out, mask, err := ChooseQParamsFakeQuant(x, st, perChannel, quantize.Portable{})
	require.NoError(t, err)
	assert.Len(t, out.Data(), 6)
	assert.Len(t, mask, 6)
	assert.Equal(t, []int32{128, 85, 64}, st.ZeroPoint)
}

func TestObserveMovingAverage(t *testing.T) {
	x := mustTensor(t, []float32{3, -1, 4, 1, -5, 9}, 2, 3)
	mins := []float32{float32(math.Inf(1)), 0}
	maxs := []float32{float32(math.Inf(-1)), 0}

	require.NoError(t, ObserveMovingAverage(x, 0.25, mins, maxs, true))
	assert.Equal(t, float32(-1), mins[0])
	assert.Equal(t, float32(4), maxs[0])
	assert.Equal(t, ema(0, -5, 0.25), mins[1])
	assert.Equal(t, ema(0, 9, 0.25), maxs[1])

	before := slices.Clone(mins)
	require.ErrorIs(t, ObserveMovingAverage(x, 0, mins, maxs, true), ErrAveragingConstant)
	require.ErrorIs(t, ObserveMovingAverage(x, 0.5, mins[:1], maxs, true), ErrStateShape)
	require.ErrorIs(t, ObserveMovingAverage(x, 0.5, mins, maxs, false), ErrStateShape)
	assert.Equal(t, before, mins)

	one := []float32{float32(math.Inf(1))}
	other := []float32{float32(math.Inf(-1))}
	require.NoError(t, ObserveMovingAverage(x, 1, one, other, false))
	assert.Equal(t, []float32{-5}, one)
	assert.Equal(t, []float32{9}, other)
}

func TestObserveManyChannels(t *testing.T) {
	// More channels than lanes exercises the vector loop and its tail.
	const channels, inner = 37, 5
	data := make([]float32, channels*inner)
	for c := range channels {
		for i := range inner {
			data[c*inner+i] = float32(c) - float32(i)
		}
	}
	x := mustTensor(t, data, channels, inner)
	st := NewState(channels)
	require.NoError(t, ObserveMovingAverage(x, 0.5, st.RunningMin, st.RunningMax, true))
	for c := range channels {
		assert.Equal(t, float32(c-inner+1), st.RunningMin[c], "channel %d", c)
		assert.Equal(t, float32(c), st.RunningMax[c], "channel %d", c)
	}

	require.NoError(t, ObserveMovingAverage(x, 0.5, st.RunningMin, st.RunningMax, true))
	assert.Equal(t, float32(channels-1), st.RunningMax[channels-1], "same batch leaves the average fixed")
}

func TestFusedMovingAvgObsFakeQuant(t *testing.T) {
	x := mustTensor(t, []float32{-0.5, 0.25, 0.75, 1.5}, 2, 2)
	opts := DefaultOptions()
	opts.PerChannel = true

	t.Setenv("HWY_QPARAMS_BACKEND", "vectorized")
	st := NewState(2)
	out, mask, err := FusedMovingAvgObsFakeQuant(x, true, true, opts, st)
	require.NoError(t, err)

	ref := NewState(2)
	wantOut, wantMask, err := newOperator(t, opts).Run(x, true, true, ref)
	require.NoError(t, err)

	assert.Equal(t, ref, st, "vectorized and portable backends agree")
	assert.Equal(t, wantOut.Data(), out.Data())
	assert.Equal(t, wantMask, mask)

	opts.AveragingConstant = 2
	_, _, err = FusedMovingAvgObsFakeQuant(x, true, true, opts, st)
	require.ErrorIs(t, err, ErrAveragingConstant)
}

func TestRunLogs(t *testing.T) {
	var buf bytes.Buffer
	op := newOperator(t, DefaultOptions()).WithLogger(logutil.NewLogger(&buf, logutil.LevelTrace))
	st := NewState(1)

	_, _, err := op.Run(mustTensor(t, []float32{1, 2}, 2), true, true, st)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "observer initialized from first batch")
	assert.Contains(t, buf.String(), "level=TRACE")

	buf.Reset()
	_, _, err = op.Run(mustTensor(t, []float32{1, 2}, 2), true, false, st)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "observer initialized")
	assert.Contains(t, buf.String(), "fake quantization disabled")
}
