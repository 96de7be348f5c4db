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

// ViewRef is the opaque handle returned by StoreView. Like RelationRef it is
// also a leaf Expression, so a view can be composed into further views (view
// stacking).
type ViewRef[T Tuple[T]] struct {
	id uint64
}

// ID returns the view's monotonically assigned handle.
func (v ViewRef[T]) ID() uint64 { return v.id }

// Recent implements Expression.
func (v ViewRef[T]) Recent(db *Database) (Tuples[T], error) {
	inst, err := viewInstance[T](db, v)
	if err != nil {
		return Tuples[T]{}, err
	}
	return inst.recent, nil
}

// Stable implements Expression.
func (v ViewRef[T]) Stable(db *Database) ([]Tuples[T], error) {
	inst, err := viewInstance[T](db, v)
	if err != nil {
		return nil, err
	}
	return append([]Tuples[T](nil), inst.stable...), nil
}

// Dependencies implements Expression.
func (v ViewRef[T]) Dependencies() Dependencies {
	return Dependencies{Views: []uint64{v.id}}
}

func (v ViewRef[T]) hasDifference() bool { return false }
