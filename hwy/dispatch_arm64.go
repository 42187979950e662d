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

//go:build arm64

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
	// SVE vector length is not visible through x/sys/cpu; keep 16 bytes,
	// which every SVE implementation supports.
	switch {
	case cpu.ARM64.HasSVE:
		currentLevel = DispatchSVE
		currentName = "sve"
	default:
		currentLevel = DispatchNEON
		currentName = "neon"
	}
	currentWidth = 16
}

// HasF16C returns false on ARM (F16C is an x86-specific feature).
func HasF16C() bool {
	return false
}

// HasAVX512FP16 returns false on ARM.
func HasAVX512FP16() bool {
	return false
}

// HasAVX512BF16 returns false on ARM.
func HasAVX512BF16() bool {
	return false
}

// HasARMFP16 reports FP16 NEON arithmetic (ARMv8.2-A).
func HasARMFP16() bool {
	return cpu.ARM64.HasFPHP && cpu.ARM64.HasASIMDHP
}

// HasARMBF16 reports BF16 support. x/sys/cpu does not expose the BF16
// feature bit, so SVE2 (which implies it on shipping cores) is used as proxy.
func HasARMBF16() bool {
	return cpu.ARM64.HasSVE2
}
