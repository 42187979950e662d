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

	"github.com/spf13/cobra"

	"github.com/ajroetker/hwyqat/internal/envconfig"
	"github.com/ajroetker/hwyqat/internal/logutil"
)

// appendEnvDocs adds an "Environment Variables" section to the usage text.
func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

func newRootCmd() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "hwyqat",
		Short:         "Moving-average observer and fake quantization on portable SIMD",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := envconfig.LogLevel()
			if s, _ := cmd.Flags().GetString("log-level"); s != "" {
				level = logutil.ParseLevel(s)
			}
			newLogger := logutil.NewLogger
			if format, _ := cmd.Flags().GetString("log-format"); format == "json" {
				newLogger = logutil.NewJSONLogger
			}
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), level))
		},
	}
	rootCmd.PersistentFlags().String("log-level", "", "Log level (trace, debug, info, warn, error); overrides HWY_DEBUG")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")

	observeCmd := newObserveCmd()
	infoCmd := newInfoCmd()
	envCmd := newEnvCmd()

	envVars := envconfig.AsMap()
	appendEnvDocs(observeCmd, []envconfig.EnvVar{
		envVars["HWY_QPARAMS_BACKEND"],
		envVars["HWY_NO_SIMD"],
		envVars["HWY_DEBUG"],
	})
	appendEnvDocs(infoCmd, []envconfig.EnvVar{envVars["HWY_NO_SIMD"]})

	rootCmd.AddCommand(observeCmd, infoCmd, envCmd)
	return rootCmd
}
