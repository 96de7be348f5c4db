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

// stableTierFactor controls the amortised cost of the stabilise step: a
// newly promoted recent batch absorbs any tail stable batches at most this
// many times its own size, keeping the number of stable batches O(log N).
const stableTierFactor = 2

// Instance is the per-relation, per-view storage cell: stable holds
// already-propagated tuples in geometrically tiered batches, recent holds
// the delta admitted since the last stabilisation, and toAdd queues tuples
// not yet visible to any consumer.
type Instance[T Tuple[T]] struct {
	stable []Tuples[T]
	recent Tuples[T]
	toAdd  []Tuples[T]
}

// Insert queues batch for admission on the next Changed call. Empty batches
// are dropped so that an instance with nothing pending never reports a
// spurious change.
func (ins *Instance[T]) Insert(batch Tuples[T]) {
	if batch.Empty() {
		return
	}
	ins.toAdd = append(ins.toAdd, batch)
}

// Changed performs one round of the stable/recent/to_add state transition
// and reports whether recent is non-empty afterward:
//
//  1. if recent holds tuples from the previous round, it is stabilised:
//     tail stable batches no more than 2x its size are folded into it
//     (geometric tiering), and the result is pushed onto stable.
//  2. if to_add holds queued batches, they are merged into one batch and
//     every tuple already present in a stable batch is discarded (via
//     gallop); the survivors become the new recent.
func (ins *Instance[T]) Changed() bool {
	if !ins.recent.Empty() {
		merged := ins.recent
		for len(ins.stable) > 0 && ins.stable[len(ins.stable)-1].Len() <= stableTierFactor*merged.Len() {
			last := ins.stable[len(ins.stable)-1]
			ins.stable = ins.stable[:len(ins.stable)-1]
			merged = merged.Merge(last)
		}
		ins.stable = append(ins.stable, merged)
		ins.recent = Tuples[T]{}
	}

	if len(ins.toAdd) > 0 {
		batch := ins.toAdd[0]
		for _, more := range ins.toAdd[1:] {
			batch = batch.Merge(more)
		}
		ins.toAdd = nil

		survivors := append(make([]T, 0, len(batch.items)), batch.items...)
		for _, stableBatch := range ins.stable {
			slice := stableBatch.items
			kept := survivors[:0]
			for _, x := range survivors {
				slice = sortmerge.Gallop(slice, func(y T) bool { return y.Less(x) })
				if len(slice) == 0 || slice[0] != x {
					kept = append(kept, x)
				}
			}
			survivors = kept
		}
		ins.recent = fromSorted(survivors)
	}

	return !ins.recent.Empty()
}

// duplicate deep-copies the compartments of the receiver. Batches
// themselves are immutable, so copying the slice headers that hold them is
// sufficient to make the clone independently mutable.
func (ins *Instance[T]) duplicate() *Instance[T] {
	return &Instance[T]{
		stable: append([]Tuples[T](nil), ins.stable...),
		recent: ins.recent,
		toAdd:  append([]Tuples[T](nil), ins.toAdd...),
	}
}

// erasedInstance lets the Database catalog hold instances of many different
// tuple types behind a single map value, without resorting to unchecked
// downcasts: every lookup goes through a type assertion back to *Instance[T]
// that surfaces ErrTypeMismatch on failure.
type erasedInstance interface {
	changed() bool
	duplicateErased() erasedInstance
}

func (ins *Instance[T]) changed() bool                   { return ins.Changed() }
func (ins *Instance[T]) duplicateErased() erasedInstance { return ins.duplicate() }
