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

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"runtime"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/hwyqat/hwy/contrib/fakequant"
	"github.com/ajroetker/hwyqat/hwy/contrib/tensor"
)

// batchFile is the on-disk form of one input tensor.
type batchFile struct {
	Shape []int     `json:"shape"`
	Data  []float32 `json:"data"`
}

// readBatch decodes a batch file into a tensor.
func readBatch(path string) (*tensor.Dense, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var bf batchFile
	if err := json.Unmarshal(b, &bf); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	x, err := tensor.FromSlice(bf.Data, bf.Shape...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return x, nil
}

// readBatches decodes paths concurrently and returns the tensors in
// argument order.
func readBatches(ctx context.Context, paths []string) ([]*tensor.Dense, error) {
	batches := make([]*tensor.Dense, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(runtime.GOMAXPROCS(0)-1, 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			x, err := readBatch(path)
			if err != nil {
				return err
			}
			batches[i] = x
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return batches, nil
}

// stateFile is the on-disk form of the observer state. Unobserved running
// statistics are infinite and are stored as null.
type stateFile struct {
	RunningMin []*float32 `json:"running_min"`
	RunningMax []*float32 `json:"running_max"`
	Scale      []float32  `json:"scale"`
	ZeroPoint  []int32    `json:"zero_point"`
}

// errNaNStatistics is returned when saving a state whose running statistics
// hold NaN. Such a state cannot be told apart from an unobserved one on disk.
var errNaNStatistics = errors.New("running statistics hold NaN; reset the observer state")

func finiteOrNull(name string, vals []float32) ([]*float32, error) {
	out := make([]*float32, len(vals))
	for i, v := range vals {
		if math.IsNaN(float64(v)) {
			return nil, fmt.Errorf("%w: %s[%d]", errNaNStatistics, name, i)
		}
		if !math.IsInf(float64(v), 0) {
			out[i] = &vals[i]
		}
	}
	return out, nil
}

func fromNullable(vals []*float32, sentinel float32) []float32 {
	out := make([]float32, len(vals))
	for i, v := range vals {
		out[i] = sentinel
		if v != nil {
			out[i] = *v
		}
	}
	return out
}

func encodeState(st *fakequant.State) (stateFile, error) {
	mins, err := finiteOrNull("running_min", st.RunningMin)
	if err != nil {
		return stateFile{}, err
	}
	maxs, err := finiteOrNull("running_max", st.RunningMax)
	if err != nil {
		return stateFile{}, err
	}
	return stateFile{
		RunningMin: mins,
		RunningMax: maxs,
		Scale:      st.Scale,
		ZeroPoint:  st.ZeroPoint,
	}, nil
}

func (sf stateFile) decode() (*fakequant.State, error) {
	n := len(sf.RunningMin)
	if len(sf.RunningMax) != n || len(sf.Scale) != n || len(sf.ZeroPoint) != n {
		return nil, fmt.Errorf("%w: running_min %d, running_max %d, scale %d, zero_point %d",
			fakequant.ErrStateShape, n, len(sf.RunningMax), len(sf.Scale), len(sf.ZeroPoint))
	}
	return &fakequant.State{
		RunningMin: fromNullable(sf.RunningMin, float32(math.Inf(1))),
		RunningMax: fromNullable(sf.RunningMax, float32(math.Inf(-1))),
		Scale:      append([]float32(nil), sf.Scale...),
		ZeroPoint:  append([]int32(nil), sf.ZeroPoint...),
	}, nil
}

// loadState reads a state file. A missing file yields a nil state.
func loadState(path string) (*fakequant.State, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	var sf stateFile
	if err := json.Unmarshal(b, &sf); err != nil {
		return nil, fmt.Errorf("decode state %s: %w", path, err)
	}
	st, err := sf.decode()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return st, nil
}

// saveState writes st to path through a temporary file in the same directory.
func saveState(path string, st *fakequant.State) error {
	sf, err := encodeState(st)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
