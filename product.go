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

// productExpr evaluates to the Cartesian product of left and right, each
// pair combined into a T by f.
//
//	recent = f(R(l), S(r)) ∪ f(S(l), R(r)) ∪ f(R(l), R(r))
//	stable = f(S(l), S(r))   (each side's batches merged first; one batch)
type productExpr[L Tuple[L], R Tuple[R], T Tuple[T]] struct {
	left  Expression[L]
	right Expression[R]
	f     func(L, R) T
	deps  Dependencies
	diff  bool
}

// Product returns the expression { f(l, r) : l in left, r in right }.
func Product[L Tuple[L], R Tuple[R], T Tuple[T]](left Expression[L], right Expression[R], f func(L, R) T) Expression[T] {
	return &productExpr[L, R, T]{
		left:  left,
		right: right,
		f:     f,
		deps:  left.Dependencies().union(right.Dependencies()),
		diff:  left.hasDifference() || right.hasDifference(),
	}
}

func (p *productExpr[L, R, T]) Recent(db *Database) (Tuples[T], error) {
	lr, err := p.left.Recent(db)
	if err != nil {
		return Tuples[T]{}, err
	}
	rr, err := p.right.Recent(db)
	if err != nil {
		return Tuples[T]{}, err
	}
	ls, err := p.left.Stable(db)
	if err != nil {
		return Tuples[T]{}, err
	}
	rs, err := p.right.Stable(db)
	if err != nil {
		return Tuples[T]{}, err
	}
	lsFlat := mergeAll(ls)
	rsFlat := mergeAll(rs)

	var out []T
	out = append(out, sortmerge.Product(lr.items, rsFlat.items, p.f)...)
	out = append(out, sortmerge.Product(lsFlat.items, rr.items, p.f)...)
	out = append(out, sortmerge.Product(lr.items, rr.items, p.f)...)
	return NewTuples(out), nil
}

func (p *productExpr[L, R, T]) Stable(db *Database) ([]Tuples[T], error) {
	ls, err := p.left.Stable(db)
	if err != nil {
		return nil, err
	}
	rs, err := p.right.Stable(db)
	if err != nil {
		return nil, err
	}
	lsFlat := mergeAll(ls)
	rsFlat := mergeAll(rs)
	if lsFlat.Empty() || rsFlat.Empty() {
		return nil, nil
	}
	return []Tuples[T]{NewTuples(sortmerge.Product(lsFlat.items, rsFlat.items, p.f))}, nil
}

func (p *productExpr[L, R, T]) Dependencies() Dependencies { return p.deps }
func (p *productExpr[L, R, T]) hasDifference() bool        { return p.diff }
