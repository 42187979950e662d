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
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ajroetker/hwyqat/internal/envconfig"
)

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List HWY_* environment variables and their effective values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := newTable(cmd.OutOrStdout(), "NAME", "VALUE", "DESCRIPTION")
			table.AppendBulk(envRows(envconfig.AsMap(), envconfig.Values()))
			table.Render()
			return nil
		},
	}
}

func envRows(vars map[string]envconfig.EnvVar, values map[string]string) [][]string {
	rows := make([][]string, 0, len(vars))
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		rows = append(rows, []string{name, values[name], vars[name].Description})
	}
	return rows
}
