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

package fakequant

import (
	"fmt"
	"math"
	"slices"
)

// State holds the running statistics and the most recent quantization
// parameters, one slot per channel (a single slot in per-tensor mode).
type State struct {
	RunningMin []float32
	RunningMax []float32
	Scale      []float32
	ZeroPoint  []int32
}

// NewState returns a state with the given number of slots. Running min and
// max start at +Inf and -Inf, scale at 1 and zero point at 0.
func NewState(channels int) *State {
	s := &State{
		RunningMin: make([]float32, channels),
		RunningMax: make([]float32, channels),
		Scale:      make([]float32, channels),
		ZeroPoint:  make([]int32, channels),
	}
	s.Reset()
	return s
}

// Channels returns the number of slots.
func (s *State) Channels() int { return len(s.RunningMin) }

// Reset restores the never-observed sentinels and default parameters.
func (s *State) Reset() {
	for i := range s.RunningMin {
		s.RunningMin[i] = float32(math.Inf(1))
		s.RunningMax[i] = float32(math.Inf(-1))
		s.Scale[i] = 1
		s.ZeroPoint[i] = 0
	}
}

// Observed reports whether every slot has seen at least one batch.
func (s *State) Observed() bool {
	for i := range s.RunningMin {
		if math.IsInf(float64(s.RunningMin[i]), 0) || math.IsInf(float64(s.RunningMax[i]), 0) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	return &State{
		RunningMin: slices.Clone(s.RunningMin),
		RunningMax: slices.Clone(s.RunningMax),
		Scale:      slices.Clone(s.Scale),
		ZeroPoint:  slices.Clone(s.ZeroPoint),
	}
}

func (s *State) validate(channels int) error {
	if len(s.RunningMin) != channels || len(s.RunningMax) != channels ||
		len(s.Scale) != channels || len(s.ZeroPoint) != channels {
		return fmt.Errorf("%w: want %d slots, have min %d, max %d, scale %d, zero point %d",
			ErrStateShape, channels, len(s.RunningMin), len(s.RunningMax), len(s.Scale), len(s.ZeroPoint))
	}
	return nil
}
