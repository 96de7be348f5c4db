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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRelation(t *testing.T, db *Database, name string, values ...int) RelationRef[intTuple] {
	t.Helper()
	rel := AddRelation[intTuple](db, name)
	require.NoError(t, Insert(db, rel, NewTuples(ints(values...))))
	return rel
}

func TestSelect(t *testing.T) {
	db := NewDatabase()
	r := setupRelation(t, db, "r", 1, 2, 3, 4)
	require.NoError(t, db.RecalculateViews())

	even := Select(r, func(x intTuple) bool { return x%2 == 0 })
	got, err := Evaluate(db, even)
	require.NoError(t, err)
	assert.Equal(t, ints(2, 4), got.Items())
}

func TestProjectCollapsesAndDedups(t *testing.T) {
	db := NewDatabase()
	r := setupRelation(t, db, "r", 1, 2, 3, 4)
	require.NoError(t, db.RecalculateViews())

	// Project every tuple to 0, collapsing the whole relation to a single
	// value — exercises the dedup half of Project's contract.
	zero := Project[intTuple, intTuple](r, func(intTuple) intTuple { return 0 })
	got, err := Evaluate(db, zero)
	require.NoError(t, err)
	assert.Equal(t, ints(0), got.Items())
}

func TestProjectSelectChain(t *testing.T) {
	// Scenario S2: project(select(r, t%2==0), t -> t+1) on [1,2,3,4] == [3,5]
	db := NewDatabase()
	r := setupRelation(t, db, "r", 1, 2, 3, 4)
	require.NoError(t, db.RecalculateViews())

	expr := Project[intTuple, intTuple](
		Select(r, func(x intTuple) bool { return x%2 == 0 }),
		func(x intTuple) intTuple { return x + 1 },
	)
	got, err := Evaluate(db, expr)
	require.NoError(t, err)
	assert.Equal(t, ints(3, 5), got.Items())
}

func TestUnion(t *testing.T) {
	db := NewDatabase()
	r := setupRelation(t, db, "r", 1, 2, 3)
	s := setupRelation(t, db, "s", 3, 4, 5)
	require.NoError(t, db.RecalculateViews())

	got, err := Evaluate(db, Union[intTuple](r, s))
	require.NoError(t, err)
	assert.Equal(t, ints(1, 2, 3, 4, 5), got.Items())
}

func TestIntersect(t *testing.T) {
	db := NewDatabase()
	r := setupRelation(t, db, "r", 1, 2, 3)
	s := setupRelation(t, db, "s", 2, 3, 4)
	require.NoError(t, db.RecalculateViews())

	got, err := Evaluate(db, Intersect[intTuple](r, s))
	require.NoError(t, err)
	assert.Equal(t, ints(2, 3), got.Items())
}

func TestIntersectIncremental(t *testing.T) {
	db := NewDatabase()
	r := AddRelation[intTuple](db, "r")
	s := AddRelation[intTuple](db, "s")
	require.NoError(t, Insert(db, r, NewTuples(ints(1, 2, 3))))
	require.NoError(t, Insert(db, s, NewTuples(ints(2, 3, 4))))
	require.NoError(t, db.RecalculateViews())

	intersection := Intersect[intTuple](r, s)
	got, err := Evaluate(db, intersection)
	require.NoError(t, err)
	assert.Equal(t, ints(2, 3), got.Items())

	// Inserting 5 into both sides should pick it up next round.
	require.NoError(t, Insert(db, r, NewTuples(ints(5))))
	require.NoError(t, Insert(db, s, NewTuples(ints(5))))
	require.NoError(t, db.RecalculateViews())

	got, err = Evaluate(db, intersection)
	require.NoError(t, err)
	assert.Equal(t, ints(2, 3, 5), got.Items())
}

func TestDifference(t *testing.T) {
	// Scenario S6 (evaluate half): evaluate(difference(r,s)) succeeds.
	db := NewDatabase()
	r := setupRelation(t, db, "r", 1, 2, 3)
	s := setupRelation(t, db, "s", 2, 3)
	require.NoError(t, db.RecalculateViews())

	got, err := Evaluate(db, Difference[intTuple](r, s))
	require.NoError(t, err)
	assert.Equal(t, ints(1), got.Items())
}

func TestDifferenceRejectedAsView(t *testing.T) {
	// Scenario S6 (store_view half).
	db := NewDatabase()
	r := setupRelation(t, db, "r", 1, 2, 3)
	s := setupRelation(t, db, "s", 2, 3)

	_, err := StoreView[intTuple](db, Difference[intTuple](r, s))
	require.Error(t, err)
	assert.True(t, ErrUnsupportedExpression.Is(err))
}

type pair struct{ A, B int }

func (p pair) Less(other pair) bool {
	if p.A != other.A {
		return p.A < other.A
	}
	return p.B < other.B
}

func TestProduct(t *testing.T) {
	db := NewDatabase()
	r := setupRelation(t, db, "r", 1, 2)
	s := setupRelation(t, db, "s", 10, 20)
	require.NoError(t, db.RecalculateViews())

	prod := Product[intTuple, intTuple, pair](r, s, func(l, r intTuple) pair {
		return pair{A: int(l), B: int(r)}
	})
	got, err := Evaluate(db, prod)
	require.NoError(t, err)
	assert.ElementsMatch(t, []pair{{1, 10}, {1, 20}, {2, 10}, {2, 20}}, got.Items())
}

type keyed struct {
	K, V int
}

func (k keyed) Less(other keyed) bool {
	if k.K != other.K {
		return k.K < other.K
	}
	return k.V < other.V
}

func TestJoin(t *testing.T) {
	// Scenario S3 (incremental join).
	db := NewDatabase()
	r := AddRelation[keyed](db, "r")
	s := AddRelation[keyed](db, "s")

	require.NoError(t, Insert(db, r, NewTuples([]keyed{{1, 4}, {2, 2}, {1, 3}})))
	require.NoError(t, Insert(db, s, NewTuples([]keyed{{1, 5}, {3, 2}, {1, 6}})))

	v, err := StoreView[pair](db, Join[intTuple, keyed, keyed, pair](
		r, func(k keyed) intTuple { return intTuple(k.K) },
		s, func(k keyed) intTuple { return intTuple(k.K) },
		func(_ intTuple, l, r keyed) pair { return pair{A: l.V, B: r.V} },
	))
	require.NoError(t, err)
	require.NoError(t, db.RecalculateViews())

	got, err := Evaluate(db, v)
	require.NoError(t, err)
	assert.Equal(t, []pair{{3, 5}, {3, 6}, {4, 5}, {4, 6}}, got.Items())

	require.NoError(t, Insert(db, s, NewTuples([]keyed{{1, 7}})))
	require.NoError(t, db.RecalculateViews())

	got, err = Evaluate(db, v)
	require.NoError(t, err)
	assert.Equal(t, []pair{{3, 5}, {3, 6}, {3, 7}, {4, 5}, {4, 6}, {4, 7}}, got.Items())
}
