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

// unionExpr evaluates to the union of left and right.
type unionExpr[T Tuple[T]] struct {
	left, right Expression[T]
	deps        Dependencies
	diff        bool
}

// Union returns the expression left ∪ right.
func Union[T Tuple[T]](left, right Expression[T]) Expression[T] {
	return &unionExpr[T]{
		left:  left,
		right: right,
		deps:  left.Dependencies().union(right.Dependencies()),
		diff:  left.hasDifference() || right.hasDifference(),
	}
}

func (u *unionExpr[T]) Recent(db *Database) (Tuples[T], error) {
	lr, err := u.left.Recent(db)
	if err != nil {
		return Tuples[T]{}, err
	}
	rr, err := u.right.Recent(db)
	if err != nil {
		return Tuples[T]{}, err
	}
	return lr.Merge(rr), nil
}

func (u *unionExpr[T]) Stable(db *Database) ([]Tuples[T], error) {
	ls, err := u.left.Stable(db)
	if err != nil {
		return nil, err
	}
	rs, err := u.right.Stable(db)
	if err != nil {
		return nil, err
	}
	return append(append([]Tuples[T]{}, ls...), rs...), nil
}

func (u *unionExpr[T]) Dependencies() Dependencies { return u.deps }
func (u *unionExpr[T]) hasDifference() bool        { return u.diff }
