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

// Functional helpers apply vector kernels over whole slices. Full vectors
// are processed first; the remainder is handled with a partial load so the
// kernel never sees out of range elements.

// Map applies fn to src and writes the result to dst.
// It processes min(len(src), len(dst)) elements.
func Map[T Lanes](src, dst []T, fn func(Vec[T]) Vec[T]) {
	n := min(len(src), len(dst))
	lanes := MaxLanes[T]()
	for i := 0; i < n; i += lanes {
		end := min(i+lanes, n)
		Store(fn(Load(src[i:end])), dst[i:end])
	}
}

// Map2 applies fn lane-wise to a and b and writes the result to dst.
func Map2[T Lanes](a, b, dst []T, fn func(x, y Vec[T]) Vec[T]) {
	n := min(len(a), len(b), len(dst))
	lanes := MaxLanes[T]()
	for i := 0; i < n; i += lanes {
		end := min(i+lanes, n)
		Store(fn(Load(a[i:end]), Load(b[i:end])), dst[i:end])
	}
}

// Map3 applies fn lane-wise to a, b and c and writes the result to dst.
func Map3[T Lanes](a, b, c, dst []T, fn func(x, y, z Vec[T]) Vec[T]) {
	n := min(len(a), len(b), len(c), len(dst))
	lanes := MaxLanes[T]()
	for i := 0; i < n; i += lanes {
		end := min(i+lanes, n)
		Store(fn(Load(a[i:end]), Load(b[i:end]), Load(c[i:end])), dst[i:end])
	}
}

// Reduce folds src with op. Full vectors are combined lane-wise, a partial
// tail only updates its own lanes, and the accumulator lanes are folded from
// lane 0 upward. Reduce of an empty slice returns the zero value.
//
// op must be associative; floating-point sums may differ from a sequential
// loop in the last bits.
func Reduce[T Lanes](src []T, op func(a, b Vec[T]) Vec[T]) T {
	return MapReduce(src, nil, op)
}

// MapReduce maps every vector of src through mapFn and folds the results
// with op. A nil mapFn is the identity.
func MapReduce[T Lanes](src []T, mapFn func(Vec[T]) Vec[T], op func(a, b Vec[T]) Vec[T]) T {
	return reduceLoaded(len(src), func(i, count int) Vec[T] {
		v := LoadN(src[i:], count)
		if mapFn != nil {
			v = mapFn(v)
		}
		return v
	}, op)
}

// Map2Reduce maps pairs of vectors of a and b through mapFn and folds the
// results with op.
func Map2Reduce[T Lanes](a, b []T, mapFn func(x, y Vec[T]) Vec[T], op func(a, b Vec[T]) Vec[T]) T {
	return reduceLoaded(min(len(a), len(b)), func(i, count int) Vec[T] {
		return mapFn(LoadN(a[i:], count), LoadN(b[i:], count))
	}, op)
}

// Reduce2 folds src with op1 and op2 and returns both results.
func Reduce2[T Lanes](src []T, op1, op2 func(a, b Vec[T]) Vec[T]) (T, T) {
	return Reduce(src, op1), Reduce(src, op2)
}

func reduceLoaded[T Lanes](n int, load func(i, count int) Vec[T], op func(a, b Vec[T]) Vec[T]) T {
	var zero T
	if n == 0 {
		return zero
	}
	lanes := MaxLanes[T]()
	if n < lanes {
		return foldLanes(load(0, n), n, op)
	}
	acc := load(0, lanes)
	i := lanes
	for ; i+lanes <= n; i += lanes {
		acc = op(acc, load(i, lanes))
	}
	if rem := n - i; rem > 0 {
		acc = MergeFirstN(acc, op(acc, load(i, rem)), rem)
	}
	return foldLanes(acc, lanes, op)
}

// foldLanes reduces the first n lanes of v with op applied to one-lane vectors.
func foldLanes[T Lanes](v Vec[T], n int, op func(a, b Vec[T]) Vec[T]) T {
	acc := v.data[0]
	for i := 1; i < n; i++ {
		acc = op(Vec[T]{data: []T{acc}}, Vec[T]{data: []T{v.data[i]}}).data[0]
	}
	return acc
}

// MapBF16 applies a float32 kernel to BFloat16 data: every chunk is promoted,
// transformed and demoted back into dst.
func MapBF16(src, dst []BFloat16, fn func(Vec[float32]) Vec[float32]) {
	n := min(len(src), len(dst))
	lanes := MaxLanes[float32]()
	buf := make([]float32, lanes)
	for i := 0; i < n; i += lanes {
		end := min(i+lanes, n)
		m := PromoteBF16ToF32(buf, src[i:end])
		out := fn(Load(buf[:m]))
		Store(out, buf[:m])
		DemoteF32ToBF16(dst[i:end], buf[:m])
	}
}

// ReduceBF16 promotes src to float32 and folds it with op, accumulating in
// float32.
func ReduceBF16(src []BFloat16, op func(a, b Vec[float32]) Vec[float32]) float32 {
	wide := make([]float32, len(src))
	PromoteBF16ToF32(wide, src)
	return Reduce(wide, op)
}
