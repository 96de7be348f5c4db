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

import "github.com/salmans/codd-sub000/internal/sortmerge"

// intersectExpr evaluates to the intersection of left and right.
//
// Per the semi-naive recurrence, a tuple t is recent in (left ∩ right) this
// round if it was just derived on one side and already held (or also just
// derived) on the other:
//
//	recent = (R(l) ∩ S(r)) ∪ (S(l) ∩ R(r)) ∪ (R(l) ∩ R(r))
//	stable = S(l) ∩ S(r)   (each side's batches merged first; one batch)
type intersectExpr[T Tuple[T]] struct {
	left, right Expression[T]
	deps        Dependencies
	diff        bool
}

// Intersect returns the expression left ∩ right.
func Intersect[T Tuple[T]](left, right Expression[T]) Expression[T] {
	return &intersectExpr[T]{
		left:  left,
		right: right,
		deps:  left.Dependencies().union(right.Dependencies()),
		diff:  left.hasDifference() || right.hasDifference(),
	}
}

func (x *intersectExpr[T]) Recent(db *Database) (Tuples[T], error) {
	lr, err := x.left.Recent(db)
	if err != nil {
		return Tuples[T]{}, err
	}
	rr, err := x.right.Recent(db)
	if err != nil {
		return Tuples[T]{}, err
	}
	ls, err := x.left.Stable(db)
	if err != nil {
		return Tuples[T]{}, err
	}
	rs, err := x.right.Stable(db)
	if err != nil {
		return Tuples[T]{}, err
	}

	rsFlat := mergeAll(rs)
	lsFlat := mergeAll(ls)

	out := sortmerge.Intersect(lr.items, rsFlat.items)
	out = append(out, sortmerge.Intersect(lsFlat.items, rr.items)...)
	out = append(out, sortmerge.Intersect(lr.items, rr.items)...)
	return NewTuples(out), nil
}

func (x *intersectExpr[T]) Stable(db *Database) ([]Tuples[T], error) {
	ls, err := x.left.Stable(db)
	if err != nil {
		return nil, err
	}
	rs, err := x.right.Stable(db)
	if err != nil {
		return nil, err
	}
	lsFlat := mergeAll(ls)
	rsFlat := mergeAll(rs)
	if lsFlat.Empty() || rsFlat.Empty() {
		return nil, nil
	}
	return []Tuples[T]{fromSorted(sortmerge.Intersect(lsFlat.items, rsFlat.items))}, nil
}

func (x *intersectExpr[T]) Dependencies() Dependencies { return x.deps }
func (x *intersectExpr[T]) hasDifference() bool        { return x.diff }
