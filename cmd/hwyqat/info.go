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
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ajroetker/hwyqat/hwy/contrib/quantize"
	"github.com/ajroetker/hwyqat/internal/cpuinfo"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the SIMD dispatch target and CPU features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := cpuinfo.Collect()
			w := cmd.OutOrStdout()

			table := newTable(w, "PROPERTY", "VALUE")
			table.AppendBulk(infoRows(r, quantize.Default().Name()))
			table.Render()

			if len(r.Features) > 0 {
				fmt.Fprintln(w)
				table = newTable(w, "FEATURE", "PRESENT", "NOTE")
				table.AppendBulk(featureRows(append(r.Features, r.HalfPrecision...)))
				table.Render()
			}
			return nil
		},
	}
}

func infoRows(r cpuinfo.Report, backend string) [][]string {
	title := cases.Title(language.English)
	pairs := [][2]string{
		{"os", r.GOOS},
		{"arch", r.GOARCH},
		{"cpus", strconv.Itoa(r.NumCPU)},
		{"dispatch level", r.Level.String()},
		{"dispatch target", r.Target},
		{"vector width", strconv.Itoa(r.Width) + " bytes"},
		{"qparams backend", backend},
	}
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{title.String(p[0]), p[1]})
	}
	return rows
}

func featureRows(features []cpuinfo.Feature) [][]string {
	rows := make([][]string, 0, len(features))
	for _, f := range features {
		present := "no"
		if f.Present {
			present = "yes"
		}
		rows = append(rows, []string{f.Name, present, f.Note})
	}
	return rows
}
