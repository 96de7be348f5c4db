// Copyright 2020-2021 Dolthub, Inc.
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

// Package sortmerge implements the sorted-batch primitives the engine's
// operators are built on: gallop search and the project/join/intersect/diff
// merge algorithms. Every function here assumes its slice inputs are already
// sorted and, where the algorithm depends on it, already deduplicated; it is
// the caller's job (codd.Tuples) to uphold that.
package sortmerge

// Ordered is the minimal constraint the merge algorithms need: a total order
// via Less, plus equality via comparable.
type Ordered[T any] interface {
	comparable
	Less(other T) bool
}

// Gallop returns the suffix of slice starting at the first element for which
// cmp is false, assuming cmp holds on a prefix of slice. It doubles its step
// while cmp holds, then halves it back down to find the exact boundary, for
// O(log k) comparisons where k is the length of the skipped prefix.
func Gallop[T any](slice []T, cmp func(T) bool) []T {
	if len(slice) > 0 && cmp(slice[0]) {
		step := 1
		for step < len(slice) && cmp(slice[step]) {
			slice = slice[step:]
			step <<= 1
		}

		step >>= 1
		for step > 0 {
			if step < len(slice) && cmp(slice[step]) {
				slice = slice[step:]
			}
			step >>= 1
		}

		slice = slice[1:]
	}
	return slice
}

// Project applies f to every element of input, in order.
func Project[S, T any](input []S, f func(S) T) []T {
	out := make([]T, len(input))
	for i, s := range input {
		out[i] = f(s)
	}
	return out
}

// Product invokes f on every pair in the cartesian product of left and
// right.
func Product[L, R, T any](left []L, right []R, f func(L, R) T) []T {
	if len(left) == 0 || len(right) == 0 {
		return nil
	}
	out := make([]T, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			out = append(out, f(l, r))
		}
	}
	return out
}

// KV is a key/value pair used to rekey tuples by a join or equi-join key
// before merging.
type KV[K any, V any] struct {
	Key K
	Val V
}

// JoinHelper performs a sort-merge equi-join of left and right, both sorted
// ascending by Key, invoking emit once for every pair in the cartesian
// product of each run of equal keys.
func JoinHelper[K Ordered[K], L any, R any](left []KV[K, L], right []KV[K, R], emit func(K, L, R)) {
	for len(left) > 0 && len(right) > 0 {
		switch {
		case left[0].Key.Less(right[0].Key):
			left = Gallop(left, func(kv KV[K, L]) bool { return kv.Key.Less(right[0].Key) })
		case right[0].Key.Less(left[0].Key):
			right = Gallop(right, func(kv KV[K, R]) bool { return kv.Key.Less(left[0].Key) })
		default:
			key := left[0].Key
			count1 := runLength(left, key)
			count2 := runLength(right, key)

			for i := 0; i < count1; i++ {
				for j := 0; j < count2; j++ {
					emit(key, left[i].Val, right[j].Val)
				}
			}

			left = left[count1:]
			right = right[count2:]
		}
	}
}

func runLength[K Ordered[K], V any](slice []KV[K, V], key K) int {
	n := 0
	for n < len(slice) && slice[n].Key == key {
		n++
	}
	return n
}

// Intersect returns the tuples present in both left and right, in ascending
// order.
func Intersect[T Ordered[T]](left, right []T) []T {
	var result []T
	for len(left) > 0 && len(right) > 0 {
		switch {
		case left[0].Less(right[0]):
			left = Gallop(left, func(t T) bool { return t.Less(right[0]) })
		case right[0].Less(left[0]):
			right = Gallop(right, func(t T) bool { return t.Less(left[0]) })
		default:
			result = append(result, left[0])
			left = left[1:]
			right = right[1:]
		}
	}
	return result
}

// Diff returns the tuples in left that appear in none of the rights slices,
// in ascending order. Each element of rights advances its own cursor
// independently as left is scanned once, left to right.
func Diff[T Ordered[T]](left []T, rights [][]T) []T {
	cursors := make([][]T, len(rights))
	copy(cursors, rights)

	var result []T
left:
	for _, x := range left {
		for i, cursor := range cursors {
			cursor = Gallop(cursor, func(t T) bool { return t.Less(x) })
			cursors[i] = cursor
			if len(cursor) > 0 && cursor[0] == x {
				continue left
			}
		}
		result = append(result, x)
	}
	return result
}
