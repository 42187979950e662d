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

// Package envconfig reads the HWY_* environment variables that tune dispatch,
// backend selection, logging and test seeding.
package envconfig

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ajroetker/hwyqat/internal/logutil"
)

// Var returns an environment variable stripped of surrounding whitespace and quotes.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// BoolWithDefault returns a reader for a boolean variable. Any value that
// does not parse as a bool counts as set.
func BoolWithDefault(k string) func(defaultValue bool) bool {
	return func(defaultValue bool) bool {
		if s := Var(k); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return true
			}
			return b
		}
		return defaultValue
	}
}

// Bool returns a reader for a boolean variable that defaults to false.
func Bool(k string) func() bool {
	withDefault := BoolWithDefault(k)
	return func() bool {
		return withDefault(false)
	}
}

// String returns a reader for a string variable.
func String(k string) func() string {
	return func() string {
		return Var(k)
	}
}

// Uint64 returns a reader for an unsigned variable with a default.
func Uint64(key string, defaultValue uint64) func() uint64 {
	return func() uint64 {
		if s := Var(key); s != "" {
			n, err := strconv.ParseUint(s, 10, 64)
			if err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
				return defaultValue
			}
			return n
		}
		return defaultValue
	}
}

var (
	// NoSimd forces scalar dispatch (HWY_NO_SIMD).
	NoSimd = Bool("HWY_NO_SIMD")
	// TestSeed pins the seed used by randomized vector tests (HWY_TEST_SEED). Zero means "pick one".
	TestSeed = Uint64("HWY_TEST_SEED", 0)
)

// Backend names accepted by HWY_QPARAMS_BACKEND.
const (
	BackendPortable   = "portable"
	BackendVectorized = "vectorized"
)

// QParamsBackend returns the quantization parameter backend (HWY_QPARAMS_BACKEND).
// Unset selects the vectorized backend unless HWY_NO_SIMD is set.
func QParamsBackend() string {
	s := strings.ToLower(Var("HWY_QPARAMS_BACKEND"))
	switch s {
	case BackendPortable, BackendVectorized:
		return s
	case "":
	default:
		slog.Warn("invalid HWY_QPARAMS_BACKEND, using default", "value", s)
	}
	if NoSimd() {
		return BackendPortable
	}
	return BackendVectorized
}

// LogLevel returns the log level (HWY_DEBUG). 1 or true enables debug,
// 2 enables trace.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("HWY_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}
	if level < logutil.LevelTrace {
		level = logutil.LevelTrace
	}
	return level
}

// EnvVar describes one configuration variable.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every variable with its current value.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"HWY_NO_SIMD":         {"HWY_NO_SIMD", NoSimd(), "Force scalar dispatch"},
		"HWY_QPARAMS_BACKEND": {"HWY_QPARAMS_BACKEND", QParamsBackend(), "Quantization parameter backend (portable, vectorized)"},
		"HWY_DEBUG":           {"HWY_DEBUG", LogLevel(), "Show additional debug information (e.g. HWY_DEBUG=1)"},
		"HWY_TEST_SEED":       {"HWY_TEST_SEED", TestSeed(), "Seed for randomized vector tests (0 picks one)"},
	}
}

// Values returns the variables as name/value strings.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = strings.TrimSpace(formatValue(v.Value))
	}
	return vals
}

func formatValue(v any) string {
	switch t := v.(type) {
	case bool:
		return strconv.FormatBool(t)
	case uint64:
		return strconv.FormatUint(t, 10)
	case slog.Level:
		return t.String()
	case string:
		return t
	default:
		return ""
	}
}
