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

// Expression is the sealed node type of the expression tree. Every operator
// (Select, Project, Union, ...) as well as the leaves (RelationRef,
// ViewRef, Empty, Full, Singleton) implement it. Host code never implements
// Expression directly; it only composes the constructors in this package
// (or the fluent builder) into a tree and hands the root to Evaluate or
// StoreView.
//
// Recent and Stable are the two collection passes every operator must
// support (the engine's "collectors"): Recent returns the single batch of
// tuples that are new to expr this round, and Stable returns the list of
// batches already reflected in anything that depends on expr. Together
// they denote the expression's full current value; the split exists so
// that joins and the other binary operators can compute only the
// incremental contribution of a round.
type Expression[T Tuple[T]] interface {
	// Recent returns the tuples new to this expression in the current
	// round.
	Recent(db *Database) (Tuples[T], error)

	// Stable returns the batches of this expression's value that are
	// already stabilised.
	Stable(db *Database) ([]Tuples[T], error)

	// Dependencies returns the relation names and view handles this
	// expression (transitively) reads from.
	Dependencies() Dependencies

	// hasDifference reports whether a Difference node appears anywhere in
	// this expression's subtree. Unexported so that Expression can only be
	// implemented from within this package: view registration relies on
	// being able to ask every node this question.
	hasDifference() bool
}

// Dependencies is the set of base relations and views an expression reads
// from, gathered once when the expression is built and cached on every
// node so the engine can cheaply answer "what must be advanced before this
// node is evaluated" and "what views does this view transitively depend
// on".
type Dependencies struct {
	Relations []string
	Views     []uint64
}

// union merges two dependency sets, deduplicating relation names and view
// handles.
func (d Dependencies) union(other Dependencies) Dependencies {
	relSeen := make(map[string]struct{}, len(d.Relations)+len(other.Relations))
	var relations []string
	for _, r := range append(append([]string{}, d.Relations...), other.Relations...) {
		if _, ok := relSeen[r]; !ok {
			relSeen[r] = struct{}{}
			relations = append(relations, r)
		}
	}

	viewSeen := make(map[uint64]struct{}, len(d.Views)+len(other.Views))
	var views []uint64
	for _, v := range append(append([]uint64{}, d.Views...), other.Views...) {
		if _, ok := viewSeen[v]; !ok {
			viewSeen[v] = struct{}{}
			views = append(views, v)
		}
	}

	return Dependencies{Relations: relations, Views: views}
}
