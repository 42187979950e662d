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
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ajroetker/hwyqat/internal/envconfig"
)

// testWidths are the vector widths every case runs at, in bytes.
var testWidths = []int{16, 32, 64}

// typeCase is one instantiation of a generic check.
type typeCase struct {
	name string
	fn   func(t *testing.T, rng *rand.Rand)
}

// testSeed returns HWY_TEST_SEED, or a time based seed when it is unset.
func testSeed(t *testing.T) uint64 {
	t.Helper()
	seed := envconfig.TestSeed()
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
		t.Logf("HWY_TEST_SEED=%d", seed)
	}
	return seed
}

// runCases runs every case at every vector width. Width overrides are global,
// so cases must not call t.Parallel.
func runCases(t *testing.T, cases ...typeCase) {
	t.Helper()
	seed := testSeed(t)
	for _, w := range testWidths {
		t.Run(fmt.Sprintf("w%d", w), func(t *testing.T) {
			restore := OverrideWidth(w)
			defer restore()
			for _, c := range cases {
				t.Run(c.name, func(t *testing.T) {
					c.fn(t, rand.New(rand.NewPCG(seed, uint64(w))))
				})
			}
		})
	}
}

// floatCases instantiates check for float32 and float64.
func floatCases(f32, f64 func(*testing.T, *rand.Rand)) []typeCase {
	return []typeCase{{"float32", f32}, {"float64", f64}}
}

// randomLanes returns n random values. Floats are normally distributed with
// a standard deviation of 100; integers cover the whole range of T.
func randomLanes[T Numeric](rng *rand.Rand, n int) []T {
	out := make([]T, n)
	for i := range out {
		if isFloat[T]() {
			out[i] = T(rng.NormFloat64() * 100)
		} else {
			out[i] = T(rng.Uint64())
		}
	}
	return out
}

// specialFloats are the edge values every float check should see.
func specialFloats[T FloatsNative]() []T {
	return []T{
		0, T(math.Copysign(0, -1)), 1, -1, 0.5, -0.5, 1.5, 2.5, -2.5,
		T(math.Inf(1)), T(math.Inf(-1)), T(math.NaN()),
		T(math.SmallestNonzeroFloat32), 1e30, -1e30,
	}
}

// fill returns a full vector of lanes, cycling through vals.
func fill[T Lanes](vals []T) []T {
	out := make([]T, MaxLanes[T]())
	for i := range out {
		out[i] = vals[i%len(vals)]
	}
	return out
}

func diffLanes[T Lanes](want []T, got Vec[T]) string {
	return cmp.Diff(want, got.Data(), cmpopts.EquateNaNs(), cmpopts.EquateEmpty())
}

// lanewise evaluates fn on every lane of a.
func lanewise[T, U Lanes](a []T, fn func(T) U) []U {
	out := make([]U, len(a))
	for i, x := range a {
		out[i] = fn(x)
	}
	return out
}

// lanewise2 evaluates fn on every pair of lanes of a and b.
func lanewise2[T, U Lanes](a, b []T, fn func(x, y T) U) []U {
	out := make([]U, len(a))
	for i := range a {
		out[i] = fn(a[i], b[i])
	}
	return out
}

// mapSlice applies fn over src with Map, so inputs longer than one vector
// work at every width.
func mapSlice[T Lanes](src []T, fn func(Vec[T]) Vec[T]) []T {
	dst := make([]T, len(src))
	Map(src, dst, fn)
	return dst
}
