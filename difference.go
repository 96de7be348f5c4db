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

// differenceExpr evaluates to left minus right.
//
// Difference is not monotone: once a tuple is excluded because it appeared
// on the right, a naive incremental recurrence could never un-exclude it,
// but this engine never retracts tuples either, so the asymmetry only
// matters for *where* Difference may be used. It is valid when evaluated
// directly at the top level, but StoreView rejects any expression tree
// containing one, since a materialized view built on an unstable
// Difference would need to retract previously-emitted tuples as soon as a
// matching right-hand tuple later arrived.
type differenceExpr[T Tuple[T]] struct {
	left, right Expression[T]
	deps        Dependencies
}

// Difference returns the expression left \ right. The result may only be
// passed to Evaluate, never to StoreView (directly, or nested inside
// another expression) — see differenceExpr's doc comment.
func Difference[T Tuple[T]](left, right Expression[T]) Expression[T] {
	return &differenceExpr[T]{
		left:  left,
		right: right,
		deps:  left.Dependencies().union(right.Dependencies()),
	}
}

func (d *differenceExpr[T]) Recent(db *Database) (Tuples[T], error) {
	ls, err := d.left.Stable(db)
	if err != nil {
		return Tuples[T]{}, err
	}
	lr, err := d.left.Recent(db)
	if err != nil {
		return Tuples[T]{}, err
	}
	rs, err := d.right.Stable(db)
	if err != nil {
		return Tuples[T]{}, err
	}
	rr, err := d.right.Recent(db)
	if err != nil {
		return Tuples[T]{}, err
	}

	allLeft := mergeAll(append(append([]Tuples[T]{}, ls...), lr))
	rights := make([][]T, 0, len(rs)+1)
	for _, b := range rs {
		rights = append(rights, b.items)
	}
	rights = append(rights, rr.items)

	return fromSorted(sortmerge.Diff(allLeft.items, rights)), nil
}

func (d *differenceExpr[T]) Stable(db *Database) ([]Tuples[T], error) {
	return nil, nil
}

func (d *differenceExpr[T]) Dependencies() Dependencies { return d.deps }
func (d *differenceExpr[T]) hasDifference() bool        { return true }
