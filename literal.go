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

// emptyExpr is the nullary expression that never holds any tuples.
type emptyExpr[T Tuple[T]] struct{}

// Empty returns an expression that always evaluates to the empty set.
func Empty[T Tuple[T]]() Expression[T] { return emptyExpr[T]{} }

func (emptyExpr[T]) Recent(db *Database) (Tuples[T], error)  { return Tuples[T]{}, nil }
func (emptyExpr[T]) Stable(db *Database) ([]Tuples[T], error) { return nil, nil }
func (emptyExpr[T]) Dependencies() Dependencies               { return Dependencies{} }
func (emptyExpr[T]) hasDifference() bool                      { return false }

// fullExpr is the nullary expression standing for the universe of all
// possible tuples of T. There is no finite representation of "every value
// of T" in general, so the engine treats Full as a host-supplied
// enumerator, evaluated lazily and exposed as a single stable batch; it is
// most useful as an operand of Intersect or Difference, where it can be
// optimised away by the host before ever being enumerated.
type fullExpr[T Tuple[T]] struct {
	universe func() []T
}

// Full returns an expression whose value is given by calling universe. It
// is evaluated once per Stable call; the host should supply an enumerator
// that is cheap or itself memoized if the universe is large.
func Full[T Tuple[T]](universe func() []T) Expression[T] {
	return fullExpr[T]{universe: universe}
}

func (f fullExpr[T]) Recent(db *Database) (Tuples[T], error) { return Tuples[T]{}, nil }

func (f fullExpr[T]) Stable(db *Database) ([]Tuples[T], error) {
	return []Tuples[T]{NewTuples(f.universe())}, nil
}

func (f fullExpr[T]) Dependencies() Dependencies { return Dependencies{} }
func (f fullExpr[T]) hasDifference() bool        { return false }

// singletonExpr is the nullary expression holding exactly one tuple.
type singletonExpr[T Tuple[T]] struct {
	value T
}

// Singleton returns an expression whose value is the single-tuple set {v}.
func Singleton[T Tuple[T]](v T) Expression[T] { return singletonExpr[T]{value: v} }

func (s singletonExpr[T]) Recent(db *Database) (Tuples[T], error) { return Tuples[T]{}, nil }

func (s singletonExpr[T]) Stable(db *Database) ([]Tuples[T], error) {
	return []Tuples[T]{fromSorted([]T{s.value})}, nil
}

func (s singletonExpr[T]) Dependencies() Dependencies { return Dependencies{} }
func (s singletonExpr[T]) hasDifference() bool        { return false }
