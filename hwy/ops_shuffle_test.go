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
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestShuffle(t *testing.T) {
	runCases(t, numericCases(
		checkShuffle[float32], checkShuffle[float64],
		checkShuffle[int8], checkShuffle[int16], checkShuffle[int32], checkShuffle[int64],
		checkShuffle[uint8], checkShuffle[uint16], checkShuffle[uint32], checkShuffle[uint64],
	)...)
}

func checkShuffle[T Numeric](t *testing.T, rng *rand.Rand) {
	n := MaxLanes[T]()

	want := make([]T, n)
	for i := range want {
		want[i] = 2 + T(i)*3
	}
	if d := diffLanes(want, Arange[T](2, 3)); d != "" {
		t.Errorf("Arange mismatch (-want +got):\n%s", d)
	}

	a := randomLanes[T](rng, n)
	b := randomLanes[T](rng, n)
	lo, hi := Interleave2(Load(a), Load(b))
	zipped := make([]T, 0, 2*n)
	for i := range n {
		zipped = append(zipped, a[i], b[i])
	}
	if d := diffLanes(zipped[:n], lo); d != "" {
		t.Errorf("Interleave2 lo mismatch (-want +got):\n%s", d)
	}
	if d := diffLanes(zipped[n:], hi); d != "" {
		t.Errorf("Interleave2 hi mismatch (-want +got):\n%s", d)
	}

	ga, gb := DeInterleave2(lo, hi)
	if d := diffLanes(a, ga); d != "" {
		t.Errorf("DeInterleave2 a mismatch (-want +got):\n%s", d)
	}
	if d := diffLanes(b, gb); d != "" {
		t.Errorf("DeInterleave2 b mismatch (-want +got):\n%s", d)
	}

	rev := slices.Clone(a)
	slices.Reverse(rev)
	if d := diffLanes(rev, Reverse(Load(a))); d != "" {
		t.Errorf("Reverse mismatch (-want +got):\n%s", d)
	}
	if d := diffLanes(a, Reverse(Reverse(Load(a)))); d != "" {
		t.Errorf("Reverse is not an involution (-want +got):\n%s", d)
	}
}

func TestInterleaveSmall(t *testing.T) {
	lo, hi := Interleave2(Load([]int32{0, 1, 2, 3}), Load([]int32{10, 11, 12, 13}))
	if d := cmp.Diff([]int32{0, 10, 1, 11}, lo.Data()); d != "" {
		t.Errorf("lo mismatch (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]int32{2, 12, 3, 13}, hi.Data()); d != "" {
		t.Errorf("hi mismatch (-want +got):\n%s", d)
	}
}
