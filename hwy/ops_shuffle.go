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

// Arange returns [base, base+step, base+2*step, ...].
func Arange[T Numeric](base, step T) Vec[T] {
	data := make([]T, MaxLanes[T]())
	for i := range data {
		data[i] = base + T(i)*step
	}
	return Vec[T]{data: data}
}

// Interleave2 zips a and b lane by lane. With a = {a0 a1 a2 a3} and
// b = {b0 b1 b2 b3} it returns lo = {a0 b0 a1 b1} and hi = {a2 b2 a3 b3}.
func Interleave2[T Lanes](a, b Vec[T]) (lo, hi Vec[T]) {
	n := min(len(a.data), len(b.data))
	out := make([]T, 2*n)
	for i := 0; i < n; i++ {
		out[2*i] = a.data[i]
		out[2*i+1] = b.data[i]
	}
	return Vec[T]{data: out[:n:n]}, Vec[T]{data: out[n:]}
}

// DeInterleave2 is the inverse of Interleave2: given lo = {a0 b0 a1 b1} and
// hi = {a2 b2 a3 b3} it returns a = {a0 a1 a2 a3} and b = {b0 b1 b2 b3}.
func DeInterleave2[T Lanes](lo, hi Vec[T]) (a, b Vec[T]) {
	n := min(len(lo.data), len(hi.data))
	joined := make([]T, 0, 2*n)
	joined = append(joined, lo.data[:n]...)
	joined = append(joined, hi.data[:n]...)
	evens := make([]T, n)
	odds := make([]T, n)
	for i := 0; i < n; i++ {
		evens[i] = joined[2*i]
		odds[i] = joined[2*i+1]
	}
	return Vec[T]{data: evens}, Vec[T]{data: odds}
}

// Reverse returns the lanes of v in reverse order.
func Reverse[T Lanes](v Vec[T]) Vec[T] {
	n := len(v.data)
	result := make([]T, n)
	for i, x := range v.data {
		result[n-1-i] = x
	}
	return Vec[T]{data: result}
}
