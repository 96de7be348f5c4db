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

package codd

import (
	"sort"

	"github.com/salmans/codd-sub000/internal/sortmerge"
)

// joinExpr evaluates to the equi-join of left and right on leftKey/rightKey,
// combining each matching pair into a T with f.
//
//	recent = join(R(l), S(r)) ∪ join(S(l), R(r)) ∪ join(R(l), R(r))
//	stable = join(S(l), S(r))   (each side's batches merged first; one batch)
type joinExpr[K sortmerge.Ordered[K], L Tuple[L], R Tuple[R], T Tuple[T]] struct {
	left     Expression[L]
	right    Expression[R]
	leftKey  func(L) K
	rightKey func(R) K
	f        func(K, L, R) T
	deps     Dependencies
	diff     bool
}

// Join returns the expression { f(k, l, r) : l in left, r in right,
// k = leftKey(l) = rightKey(r) }.
func Join[K sortmerge.Ordered[K], L Tuple[L], R Tuple[R], T Tuple[T]](
	left Expression[L], leftKey func(L) K,
	right Expression[R], rightKey func(R) K,
	f func(K, L, R) T,
) Expression[T] {
	return &joinExpr[K, L, R, T]{
		left:     left,
		right:    right,
		leftKey:  leftKey,
		rightKey: rightKey,
		f:        f,
		deps:     left.Dependencies().union(right.Dependencies()),
		diff:     left.hasDifference() || right.hasDifference(),
	}
}

func (j *joinExpr[K, L, R, T]) join(leftItems []L, rightItems []R) []T {
	lkv := rekey(leftItems, j.leftKey)
	rkv := rekey(rightItems, j.rightKey)
	var out []T
	sortmerge.JoinHelper(lkv, rkv, func(k K, l L, r R) {
		out = append(out, j.f(k, l, r))
	})
	return out
}

func (j *joinExpr[K, L, R, T]) Recent(db *Database) (Tuples[T], error) {
	lr, err := j.left.Recent(db)
	if err != nil {
		return Tuples[T]{}, err
	}
	rr, err := j.right.Recent(db)
	if err != nil {
		return Tuples[T]{}, err
	}
	ls, err := j.left.Stable(db)
	if err != nil {
		return Tuples[T]{}, err
	}
	rs, err := j.right.Stable(db)
	if err != nil {
		return Tuples[T]{}, err
	}
	lsFlat := mergeAll(ls)
	rsFlat := mergeAll(rs)

	var out []T
	out = append(out, j.join(lr.items, rsFlat.items)...)
	out = append(out, j.join(lsFlat.items, rr.items)...)
	out = append(out, j.join(lr.items, rr.items)...)
	return NewTuples(out), nil
}

func (j *joinExpr[K, L, R, T]) Stable(db *Database) ([]Tuples[T], error) {
	ls, err := j.left.Stable(db)
	if err != nil {
		return nil, err
	}
	rs, err := j.right.Stable(db)
	if err != nil {
		return nil, err
	}
	lsFlat := mergeAll(ls)
	rsFlat := mergeAll(rs)
	if lsFlat.Empty() || rsFlat.Empty() {
		return nil, nil
	}
	return []Tuples[T]{NewTuples(j.join(lsFlat.items, rsFlat.items))}, nil
}

func (j *joinExpr[K, L, R, T]) Dependencies() Dependencies { return j.deps }
func (j *joinExpr[K, L, R, T]) hasDifference() bool        { return j.diff }

// rekey tags each element of items with its join key and sorts the result
// by that key, as JoinHelper requires. items need not already be sorted by
// key: the tuple order of T (or L, R) need have nothing to do with K.
func rekey[V any, K sortmerge.Ordered[K]](items []V, keyFn func(V) K) []sortmerge.KV[K, V] {
	out := make([]sortmerge.KV[K, V], len(items))
	for i, v := range items {
		out[i] = sortmerge.KV[K, V]{Key: keyFn(v), Val: v}
	}
	sortKV(out)
	return out
}

// sortKV sorts kvs in place by Key.
func sortKV[K sortmerge.Ordered[K], V any](kvs []sortmerge.KV[K, V]) {
	sort.Slice(kvs, func(i, j int) bool { return kvs[i].Key.Less(kvs[j].Key) })
}
