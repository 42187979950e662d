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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/hwyqat/hwy/contrib/fakequant"
	"github.com/ajroetker/hwyqat/hwy/contrib/quantize"
)

// Config is the YAML configuration for observe. Nil fields are unset and
// keep the built-in default or the command-line value.
type Config struct {
	AveragingConstant *float32 `yaml:"averaging_constant"`
	QuantMin          *int32   `yaml:"quant_min"`
	QuantMax          *int32   `yaml:"quant_max"`
	PerChannel        *bool    `yaml:"per_channel"`
	Symmetric         *bool    `yaml:"symmetric"`
	Backend           *string  `yaml:"backend"`
	Observe           *bool    `yaml:"observe"`
	FakeQuant         *bool    `yaml:"fake_quant"`
}

// LoadConfig reads a YAML config file. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// An empty file decodes to io.EOF and means "no overrides".
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// settings are the resolved observe parameters.
type settings struct {
	opts      fakequant.Options
	backend   quantize.Backend
	observe   bool
	fakeQuant bool
}

func defaultSettings() settings {
	return settings{
		opts:      fakequant.DefaultOptions(),
		observe:   true,
		fakeQuant: true,
	}
}

// apply copies every set field of cfg into s.
func (cfg *Config) apply(s *settings) {
	if cfg == nil {
		return
	}
	if cfg.AveragingConstant != nil {
		s.opts.AveragingConstant = *cfg.AveragingConstant
	}
	if cfg.QuantMin != nil {
		s.opts.QuantMin = *cfg.QuantMin
	}
	if cfg.QuantMax != nil {
		s.opts.QuantMax = *cfg.QuantMax
	}
	if cfg.PerChannel != nil {
		s.opts.PerChannel = *cfg.PerChannel
	}
	if cfg.Symmetric != nil {
		s.opts.Symmetric = *cfg.Symmetric
	}
	if cfg.Backend != nil {
		s.backend = quantize.Backend(*cfg.Backend)
	}
	if cfg.Observe != nil {
		s.observe = *cfg.Observe
	}
	if cfg.FakeQuant != nil {
		s.fakeQuant = *cfg.FakeQuant
	}
}

// resolveSettings layers defaults, the --config file and explicitly set
// flags, in that order.
func resolveSettings(cmd *cobra.Command) (settings, error) {
	s := defaultSettings()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err := LoadConfig(path)
		if err != nil {
			return s, err
		}
		cfg.apply(&s)
	}

	flags := cmd.Flags()
	var err error
	if flags.Changed("averaging-constant") {
		s.opts.AveragingConstant, err = flags.GetFloat32("averaging-constant")
	}
	if err == nil && flags.Changed("qmin") {
		s.opts.QuantMin, err = flags.GetInt32("qmin")
	}
	if err == nil && flags.Changed("qmax") {
		s.opts.QuantMax, err = flags.GetInt32("qmax")
	}
	if err == nil && flags.Changed("per-channel") {
		s.opts.PerChannel, err = flags.GetBool("per-channel")
	}
	if err == nil && flags.Changed("symmetric") {
		s.opts.Symmetric, err = flags.GetBool("symmetric")
	}
	if err == nil && flags.Changed("backend") {
		var b string
		b, err = flags.GetString("backend")
		s.backend = quantize.Backend(b)
	}
	if err == nil && flags.Changed("observe") {
		s.observe, err = flags.GetBool("observe")
	}
	if err == nil && flags.Changed("fake-quant") {
		s.fakeQuant, err = flags.GetBool("fake-quant")
	}
	if err != nil {
		return s, err
	}
	return s, s.opts.Validate()
}
