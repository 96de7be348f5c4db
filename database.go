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

// Package codd is an in-memory, incrementally-evaluated relational algebra
// engine. Relations hold base tuples inserted by the host; views are
// expression trees materialized over relations (and other views) using
// semi-naive evaluation, so that RecalculateViews only ever does work
// proportional to what changed since the last call.
package codd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Database is the root handle for a collection of relations and views. The
// zero value is not usable; construct one with NewDatabase. A Database is
// not safe for concurrent use without external synchronization.
type Database struct {
	relations map[string]erasedInstance
	views     map[uint64]erasedView
	nextView  uint64

	log *logrus.Entry
}

// NewDatabase returns an empty Database.
func NewDatabase() *Database {
	return &Database{
		relations: make(map[string]erasedInstance),
		views:     make(map[uint64]erasedView),
		log:       logrus.WithField("component", "codd"),
	}
}

// erasedView lets Database hold materializedView[T] instances of different
// T behind one map, the same way erasedInstance does for Instance[T].
type erasedView interface {
	instance() erasedInstance
	recalculate(db *Database) error
	duplicateErased() erasedView
}

// materializedView pairs a view's storage with the expression that feeds
// it. RecalculateViews pulls expression.Recent on every round and inserts
// whatever comes back into inst's to_add, which Instance.Changed then
// folds into stable/recent on the instance's own schedule.
type materializedView[T Tuple[T]] struct {
	inst       *Instance[T]
	expression Expression[T]
}

func (v *materializedView[T]) instance() erasedInstance { return v.inst }

func (v *materializedView[T]) recalculate(db *Database) error {
	recent, err := v.expression.Recent(db)
	if err != nil {
		return err
	}
	v.inst.Insert(recent)
	return nil
}

func (v *materializedView[T]) duplicateErased() erasedView {
	return &materializedView[T]{
		inst:       v.inst.duplicate(),
		expression: v.expression,
	}
}

// AddRelation registers a new, empty relation named name and returns a
// handle to it. It is a package-level function, not a method, because Go
// does not let a method introduce type parameters beyond its receiver's.
func AddRelation[T Tuple[T]](db *Database, name string) RelationRef[T] {
	db.relations[name] = &Instance[T]{}
	db.log.WithField("relation", name).Debug("relation added")
	return RelationRef[T]{name: name}
}

// Insert adds batch to rel's to_add queue; the tuples become visible to
// readers (via Evaluate or as part of a view) only after the next
// RecalculateViews call promotes them into recent.
func Insert[T Tuple[T]](db *Database, rel RelationRef[T], batch Tuples[T]) error {
	inst, err := relationInstance[T](db, rel.name)
	if err != nil {
		return err
	}
	inst.Insert(batch)
	return nil
}

// StoreView materializes expression as a new view and returns a handle to
// it. expression must not contain a Difference anywhere in its tree; use
// Evaluate for one-off queries that need Difference instead.
func StoreView[T Tuple[T]](db *Database, expression Expression[T]) (ViewRef[T], error) {
	if err := validateViewExpression[T](expression); err != nil {
		return ViewRef[T]{}, err
	}

	id := db.nextView
	db.nextView++

	db.views[id] = &materializedView[T]{
		inst:       &Instance[T]{},
		expression: expression,
	}
	db.log.WithField("view", id).Debug("view stored")
	return ViewRef[T]{id: id}, nil
}

// Evaluate computes expression's full value against the database's current
// state, without registering anything. Unlike StoreView, expression may
// contain Difference: there is no incremental recurrence to break, since
// the result is thrown away after this call.
func Evaluate[T Tuple[T]](db *Database, expression Expression[T]) (Tuples[T], error) {
	stable, err := expression.Stable(db)
	if err != nil {
		return Tuples[T]{}, err
	}
	recent, err := expression.Recent(db)
	if err != nil {
		return Tuples[T]{}, err
	}
	return mergeAll(stable).Merge(recent), nil
}

// RecalculateViews runs the fixpoint driver: every round, it promotes each
// relation's to_add into stable/recent, collects every view's Recent delta
// against the database as it stood at the start of the round, then
// promotes each view's own to_add the same way. It repeats until a full
// round changes nothing.
func (db *Database) RecalculateViews() error {
	for {
		relationsChanged := db.relationsChanged()

		for _, view := range db.views {
			if err := view.recalculate(db); err != nil {
				return errors.Wrap(err, "recalculating view")
			}
		}

		viewsChanged := db.viewsChanged()

		if !relationsChanged && !viewsChanged {
			return nil
		}
	}
}

func (db *Database) relationsChanged() bool {
	changed := false
	for _, rel := range db.relations {
		if rel.changed() {
			changed = true
		}
	}
	return changed
}

func (db *Database) viewsChanged() bool {
	changed := false
	for _, view := range db.views {
		if view.instance().changed() {
			changed = true
		}
	}
	return changed
}

// Duplicate returns a deep copy of db: every relation and view instance is
// copied independently, so mutating the copy (inserting tuples,
// recalculating) never affects the original. Expression trees themselves
// are immutable and shared between the two.
func (db *Database) Duplicate() *Database {
	out := &Database{
		relations: make(map[string]erasedInstance, len(db.relations)),
		views:     make(map[uint64]erasedView, len(db.views)),
		nextView:  db.nextView,
		log:       db.log,
	}
	for name, rel := range db.relations {
		out.relations[name] = rel.duplicateErased()
	}
	for id, view := range db.views {
		out.views[id] = view.duplicateErased()
	}
	return out
}

// relationInstance looks up the backing Instance[T] registered under name,
// asserting that the catalog entry actually holds that type. A mismatch
// (inserting into the same name under two different T) surfaces as
// ErrTypeMismatch rather than a panic.
func relationInstance[T Tuple[T]](db *Database, name string) (*Instance[T], error) {
	erased, ok := db.relations[name]
	if !ok {
		return nil, ErrRelationNotFound.New(name)
	}
	inst, ok := erased.(*Instance[T])
	if !ok {
		return nil, ErrTypeMismatch.New("relation", name, fmt.Sprintf("%T", erased))
	}
	return inst, nil
}

// viewInstance looks up view's backing Instance[T], the same way
// relationInstance does for relations.
func viewInstance[T Tuple[T]](db *Database, view ViewRef[T]) (*Instance[T], error) {
	erased, ok := db.views[view.id]
	if !ok {
		return nil, ErrViewNotFound.New(view.id)
	}
	mv, ok := erased.(*materializedView[T])
	if !ok {
		return nil, ErrTypeMismatch.New("view", view.id, fmt.Sprintf("%T", erased))
	}
	return mv.inst, nil
}
