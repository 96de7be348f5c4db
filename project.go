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

// projectExpr maps its source through f, a tuple type S to a (possibly
// different) tuple type T.
type projectExpr[S Tuple[S], T Tuple[T]] struct {
	src  Expression[S]
	f    func(S) T
	deps Dependencies
	diff bool
}

// Project returns the expression { f(t) : t in src }, sorted and
// deduplicated. f is invoked exactly once per tuple per collection pass.
func Project[S Tuple[S], T Tuple[T]](src Expression[S], f func(S) T) Expression[T] {
	return &projectExpr[S, T]{
		src:  src,
		f:    f,
		deps: src.Dependencies(),
		diff: src.hasDifference(),
	}
}

func (p *projectExpr[S, T]) Recent(db *Database) (Tuples[T], error) {
	recent, err := p.src.Recent(db)
	if err != nil {
		return Tuples[T]{}, err
	}
	return NewTuples(sortmerge.Project(recent.items, p.f)), nil
}

func (p *projectExpr[S, T]) Stable(db *Database) ([]Tuples[T], error) {
	stable, err := p.src.Stable(db)
	if err != nil {
		return nil, err
	}
	out := make([]Tuples[T], len(stable))
	for i, batch := range stable {
		out[i] = NewTuples(sortmerge.Project(batch.items, p.f))
	}
	return out, nil
}

func (p *projectExpr[S, T]) Dependencies() Dependencies { return p.deps }
func (p *projectExpr[S, T]) hasDifference() bool        { return p.diff }
