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

// selectExpr filters its source through predicate.
type selectExpr[T Tuple[T]] struct {
	src       Expression[T]
	predicate func(T) bool
	deps      Dependencies
	diff      bool
}

// Select returns the expression {t in src : predicate(t)}. predicate is
// invoked exactly once per tuple per collection pass; it may close over
// mutable host state but must not re-enter the database.
func Select[T Tuple[T]](src Expression[T], predicate func(T) bool) Expression[T] {
	return &selectExpr[T]{
		src:       src,
		predicate: predicate,
		deps:      src.Dependencies(),
		diff:      src.hasDifference(),
	}
}

func (s *selectExpr[T]) Recent(db *Database) (Tuples[T], error) {
	recent, err := s.src.Recent(db)
	if err != nil {
		return Tuples[T]{}, err
	}
	return fromSorted(filter(recent.items, s.predicate)), nil
}

func (s *selectExpr[T]) Stable(db *Database) ([]Tuples[T], error) {
	stable, err := s.src.Stable(db)
	if err != nil {
		return nil, err
	}
	out := make([]Tuples[T], len(stable))
	for i, batch := range stable {
		out[i] = fromSorted(filter(batch.items, s.predicate))
	}
	return out, nil
}

func (s *selectExpr[T]) Dependencies() Dependencies { return s.deps }
func (s *selectExpr[T]) hasDifference() bool        { return s.diff }

// filter keeps the elements of sorted for which keep returns true. Filtering
// a sorted, deduplicated slice preserves both properties, so the result can
// be wrapped with fromSorted directly.
func filter[T any](sorted []T, keep func(T) bool) []T {
	var out []T
	for _, t := range sorted {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
