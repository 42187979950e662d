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

// Package cpuinfo collects the CPU features detected by Go and the hwy
// dispatch decision for diagnostics.
package cpuinfo

import (
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/ajroetker/hwyqat/hwy"
)

// Feature is one CPU capability bit.
type Feature struct {
	Name    string
	Present bool
	Note    string
}

// Report describes the host and the selected dispatch target.
type Report struct {
	GOOS     string
	GOARCH   string
	NumCPU   int
	Level    hwy.DispatchLevel
	Width    int
	Target   string
	Features []Feature
	// Half precision support as seen by hwy.
	HalfPrecision []Feature
}

// Collect gathers the report for the running process.
func Collect() Report {
	return Report{
		GOOS:     runtime.GOOS,
		GOARCH:   runtime.GOARCH,
		NumCPU:   runtime.NumCPU(),
		Level:    hwy.CurrentLevel(),
		Width:    hwy.CurrentWidth(),
		Target:   hwy.CurrentName(),
		Features: Features(runtime.GOARCH),
		HalfPrecision: []Feature{
			{Name: "F16C", Present: hwy.HasF16C()},
			{Name: "AVX512FP16", Present: hwy.HasAVX512FP16()},
			{Name: "AVX512BF16", Present: hwy.HasAVX512BF16()},
			{Name: "ARMFP16", Present: hwy.HasARMFP16()},
			{Name: "ARMBF16", Present: hwy.HasARMBF16()},
		},
	}
}

// Features lists the x/sys/cpu feature bits relevant to goarch. Unknown
// architectures have none.
func Features(goarch string) []Feature {
	switch goarch {
	case "arm64":
		return []Feature{
			{"ASIMD", cpu.ARM64.HasASIMD, "NEON baseline"},
			{"FP", cpu.ARM64.HasFP, "floating point"},
			{"FPHP", cpu.ARM64.HasFPHP, "FP16 scalar, ARMv8.2-A"},
			{"ASIMDHP", cpu.ARM64.HasASIMDHP, "FP16 NEON, ARMv8.2-A"},
			{"ASIMDFHM", cpu.ARM64.HasASIMDFHM, "FP16 FMA, ARMv8.4-A"},
			{"SVE", cpu.ARM64.HasSVE, "scalable vector extension"},
			{"SVE2", cpu.ARM64.HasSVE2, ""},
			{"ATOMICS", cpu.ARM64.HasATOMICS, "large system extensions"},
		}
	case "amd64":
		return []Feature{
			{"SSE2", cpu.X86.HasSSE2, ""},
			{"SSE41", cpu.X86.HasSSE41, ""},
			{"SSE42", cpu.X86.HasSSE42, ""},
			{"AVX", cpu.X86.HasAVX, ""},
			{"AVX2", cpu.X86.HasAVX2, ""},
			{"FMA", cpu.X86.HasFMA, ""},
			{"AVX512F", cpu.X86.HasAVX512F, ""},
			{"AVX512BW", cpu.X86.HasAVX512BW, ""},
			{"AVX512VL", cpu.X86.HasAVX512VL, ""},
			{"AVX512BF16", cpu.X86.HasAVX512BF16, ""},
		}
	default:
		return nil
	}
}
