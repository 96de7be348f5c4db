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

// RelationRef is both the handle a caller uses to Insert into a base
// relation, and a leaf Expression referencing that relation by name. It
// carries no mutation capability itself: it is just a name plus the tuple
// type witness T.
type RelationRef[T Tuple[T]] struct {
	name string
}

// Name returns the relation's name.
func (r RelationRef[T]) Name() string { return r.name }

// Recent implements Expression.
func (r RelationRef[T]) Recent(db *Database) (Tuples[T], error) {
	inst, err := relationInstance[T](db, r.name)
	if err != nil {
		return Tuples[T]{}, err
	}
	return inst.recent, nil
}

// Stable implements Expression.
func (r RelationRef[T]) Stable(db *Database) ([]Tuples[T], error) {
	inst, err := relationInstance[T](db, r.name)
	if err != nil {
		return nil, err
	}
	return append([]Tuples[T](nil), inst.stable...), nil
}

// Dependencies implements Expression.
func (r RelationRef[T]) Dependencies() Dependencies {
	return Dependencies{Relations: []string{r.name}}
}

func (r RelationRef[T]) hasDifference() bool { return false }
