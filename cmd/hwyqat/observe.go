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
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/ajroetker/hwyqat/hwy/contrib/fakequant"
	"github.com/ajroetker/hwyqat/hwy/contrib/quantize"
	"github.com/ajroetker/hwyqat/hwy/contrib/tensor"
)

func newObserveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "observe BATCH [BATCH...]",
		Short: "Observe batches and fake-quantize them",
		Long: `Observe folds each batch into moving-average min/max statistics, derives
quantization parameters from them and fake-quantizes the batch. Batches are
JSON files of the form {"shape": [...], "data": [...]} and are processed in
argument order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runObserve,
	}
	cmd.Flags().String("config", "", "YAML config file")
	cmd.Flags().String("state", "", "Observer state file, created if missing")
	cmd.Flags().Float32("averaging-constant", 0.01, "Weight of the newest batch in the moving average")
	cmd.Flags().Int32("qmin", 0, "Lower bound of the quantized range")
	cmd.Flags().Int32("qmax", 255, "Upper bound of the quantized range")
	cmd.Flags().Bool("per-channel", false, "Track statistics per slice of axis 0")
	cmd.Flags().Bool("symmetric", false, "Use a symmetric range around zero")
	cmd.Flags().String("backend", "", "Quantization parameter backend (portable, vectorized)")
	cmd.Flags().Bool("observe", true, "Update the running statistics")
	cmd.Flags().Bool("fake-quant", true, "Fake-quantize the batches")
	cmd.Flags().Bool("json", false, "Print the final state as JSON")
	return cmd
}

// batchSummary reports how one batch fared through fake quantization.
type batchSummary struct {
	Name     string
	Elements int
	Clipped  int
	MaxError float64
	RMSE     float64
}

func summarize(name string, in, out *tensor.Dense, mask []bool) batchSummary {
	s := batchSummary{Name: name, Elements: in.Numel()}
	for _, ok := range mask {
		if !ok {
			s.Clipped++
		}
	}
	if s.Elements == 0 {
		return s
	}
	a := toFloat64(in.Data())
	b := toFloat64(out.Data())
	s.MaxError = floats.Distance(a, b, math.Inf(1))
	s.RMSE = floats.Distance(a, b, 2) / math.Sqrt(float64(s.Elements))
	return s
}

func toFloat64(src []float32) []float64 {
	dst := make([]float64, len(src))
	for i, v := range src {
		dst[i] = float64(v)
	}
	return dst
}

func chooserFor(b quantize.Backend) (quantize.Chooser, error) {
	if b == "" {
		return quantize.Default(), nil
	}
	return quantize.NewChooser(b)
}

func runObserve(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	chooser, err := chooserFor(s.backend)
	if err != nil {
		return err
	}
	op, err := fakequant.New(s.opts, chooser)
	if err != nil {
		return err
	}
	op.WithLogger(slog.Default())

	statePath, _ := cmd.Flags().GetString("state")
	var st *fakequant.State
	if statePath != "" {
		if st, err = loadState(statePath); err != nil {
			return err
		}
	}

	batches, err := readBatches(cmd.Context(), args)
	if err != nil {
		return err
	}

	slog.Debug("observe", "batches", len(batches), "backend", chooser.Name(),
		"per_channel", s.opts.PerChannel, "symmetric", s.opts.Symmetric)

	summaries := make([]batchSummary, 0, len(batches))
	for i, x := range batches {
		if st == nil {
			channels, err := op.Channels(x)
			if err != nil {
				return fmt.Errorf("%s: %w", args[i], err)
			}
			st = fakequant.NewState(channels)
		}
		out, mask, err := op.Run(x, s.observe, s.fakeQuant, st)
		if err != nil {
			return fmt.Errorf("%s: %w", args[i], err)
		}
		summaries = append(summaries, summarize(args[i], x, out, mask))
	}

	if statePath != "" {
		if err := saveState(statePath, st); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		sf, err := encodeState(st)
		if err != nil {
			return err
		}
		b, err := json.MarshalIndent(sf, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return err
	}

	w := cmd.OutOrStdout()
	table := newTable(w, "BATCH", "ELEMENTS", "CLIPPED", "MAX ERROR", "RMSE")
	for _, sum := range summaries {
		table.Append([]string{
			sum.Name,
			strconv.Itoa(sum.Elements),
			strconv.Itoa(sum.Clipped),
			strconv.FormatFloat(sum.MaxError, 'g', 6, 64),
			strconv.FormatFloat(sum.RMSE, 'g', 6, 64),
		})
	}
	table.Render()
	fmt.Fprintln(w)

	table = newTable(w, "CHANNEL", "RUNNING MIN", "RUNNING MAX", "SCALE", "ZERO POINT")
	table.AppendBulk(stateRows(st))
	table.Render()
	return nil
}

func stateRows(st *fakequant.State) [][]string {
	rows := make([][]string, 0, st.Channels())
	for i := range st.Channels() {
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.FormatFloat(float64(st.RunningMin[i]), 'g', -1, 32),
			strconv.FormatFloat(float64(st.RunningMax[i]), 'g', -1, 32),
			strconv.FormatFloat(float64(st.Scale[i]), 'g', -1, 32),
			strconv.Itoa(int(st.ZeroPoint[i])),
		})
	}
	return rows
}
