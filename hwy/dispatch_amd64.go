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

//go:build amd64

package hwy

import "golang.org/x/sys/cpu"

func init() {
	if NoSimdEnv() {
		setScalarMode()
		return
	}

	detectCPUFeatures()
}

func detectCPUFeatures() {
	switch {
	case cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW && cpu.X86.HasAVX512VL:
		currentLevel = DispatchAVX512
		currentWidth = 64
		currentName = "avx512"
	case cpu.X86.HasAVX2 && cpu.X86.HasFMA:
		currentLevel = DispatchAVX2
		currentWidth = 32
		currentName = "avx2"
	default:
		// SSE2 is baseline for amd64
		currentLevel = DispatchSSE2
		currentWidth = 16
		currentName = "sse2"
	}
}

// HasF16C reports hardware float16 conversion support. x/sys/cpu has no F16C
// bit; every AVX2+FMA part ships F16C.
func HasF16C() bool {
	return cpu.X86.HasAVX && cpu.X86.HasFMA && cpu.X86.HasAVX2
}

// HasAVX512FP16 reports AVX-512 FP16 arithmetic support, approximated by the
// BF16 and VBMI2 extensions that accompany it on Sapphire Rapids and later.
func HasAVX512FP16() bool {
	return cpu.X86.HasAVX512F && cpu.X86.HasAVX512BF16 && cpu.X86.HasAVX512VBMI2
}

// HasAVX512BF16 reports AVX-512 BF16 dot-product support.
func HasAVX512BF16() bool {
	return cpu.X86.HasAVX512BF16
}

// HasARMFP16 returns false on x86.
func HasARMFP16() bool {
	return false
}

// HasARMBF16 returns false on x86.
func HasARMBF16() bool {
	return false
}
