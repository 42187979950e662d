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

package hwy

import (
	"fmt"
	"unsafe"

	"github.com/ajroetker/hwyqat/internal/envconfig"
)

// DispatchLevel identifies the instruction set the vector width was chosen for.
type DispatchLevel int

const (
	DispatchScalar DispatchLevel = iota
	DispatchSSE2
	DispatchAVX2
	DispatchAVX512
	DispatchNEON
	DispatchSVE
)

func (l DispatchLevel) String() string {
	switch l {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	case DispatchSVE:
		return "sve"
	default:
		return fmt.Sprintf("DispatchLevel(%d)", int(l))
	}
}

var (
	currentLevel DispatchLevel
	currentWidth int
	currentName  string
)

// CurrentLevel returns the dispatch level selected at init.
func CurrentLevel() DispatchLevel { return currentLevel }

// CurrentWidth returns the vector width in bytes.
func CurrentWidth() int { return currentWidth }

// CurrentName returns a short name for the active target.
func CurrentName() string { return currentName }

// NoSimdEnv reports whether HWY_NO_SIMD asks for scalar dispatch.
func NoSimdEnv() bool { return envconfig.NoSimd() }

// MaxLanes returns the number of T lanes in a full vector.
func MaxLanes[T Lanes]() int {
	var zero T
	n := currentWidth / int(unsafe.Sizeof(zero))
	if n < 1 {
		return 1
	}
	return n
}

// NumLanes is an alias of MaxLanes kept for call sites that read better with it.
func NumLanes[T Lanes]() int {
	return MaxLanes[T]()
}

// OverrideWidth switches the vector width to bytes (16, 32 or 64) and returns
// a function restoring the previous target. It is meant for tests that run the
// same kernel across lane widths and is not safe for concurrent use.
func OverrideWidth(bytes int) (restore func()) {
	switch bytes {
	case 16, 32, 64:
	default:
		panic(fmt.Sprintf("hwy: unsupported vector width %d", bytes))
	}
	prevLevel, prevWidth, prevName := currentLevel, currentWidth, currentName
	currentWidth = bytes
	currentName = fmt.Sprintf("%s/w%d", prevName, bytes)
	return func() {
		currentLevel, currentWidth, currentName = prevLevel, prevWidth, prevName
	}
}

func setScalarMode() {
	currentLevel = DispatchScalar
	currentWidth = 16 // Use 16-byte vectors even in scalar mode for consistency
	currentName = "scalar"
}
