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

package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salmans/codd-sub000"
)

type intT int

func (i intT) Less(other intT) bool { return i < other }

func ints(xs ...int) []intT {
	out := make([]intT, len(xs))
	for i, x := range xs {
		out[i] = intT(x)
	}
	return out
}

func TestSelectChain(t *testing.T) {
	db := codd.NewDatabase()
	r := codd.AddRelation[intT](db, "r")
	require.NoError(t, codd.Insert(db, r, codd.NewTuples(ints(1, 2, 3, 4))))
	require.NoError(t, db.RecalculateViews())

	expr := From[intT](r).
		Select(func(x intT) bool { return x%2 == 0 }).
		Build()

	got, err := codd.Evaluate(db, expr)
	require.NoError(t, err)
	assert.Equal(t, ints(2, 4), got.Items())
}

func TestProjectMapsValues(t *testing.T) {
	db := codd.NewDatabase()
	r := codd.AddRelation[intT](db, "r")
	require.NoError(t, codd.Insert(db, r, codd.NewTuples(ints(1, 2, 3))))
	require.NoError(t, db.RecalculateViews())

	expr := Project[intT, intT](From[intT](r), func(x intT) intT { return x * 10 }).Build()

	got, err := codd.Evaluate(db, expr)
	require.NoError(t, err)
	assert.Equal(t, ints(10, 20, 30), got.Items())
}

func TestProductOn(t *testing.T) {
	db := codd.NewDatabase()
	r := codd.AddRelation[intT](db, "r")
	s := codd.AddRelation[intT](db, "s")
	require.NoError(t, codd.Insert(db, r, codd.NewTuples(ints(1, 2))))
	require.NoError(t, codd.Insert(db, s, codd.NewTuples(ints(10))))
	require.NoError(t, db.RecalculateViews())

	expr := ProductOn[intT, intT, intT](
		Product[intT, intT](From[intT](r), From[intT](s)),
		func(l, r intT) intT { return l + r },
	).Build()

	got, err := codd.Evaluate(db, expr)
	require.NoError(t, err)
	assert.Equal(t, ints(11, 12), got.Items())
}

func TestJoinOn(t *testing.T) {
	db := codd.NewDatabase()
	r := codd.AddRelation[intT](db, "r")
	s := codd.AddRelation[intT](db, "s")
	require.NoError(t, codd.Insert(db, r, codd.NewTuples(ints(1, 2, 3))))
	require.NoError(t, codd.Insert(db, s, codd.NewTuples(ints(2, 3, 4))))
	require.NoError(t, db.RecalculateViews())

	expr := On[intT, intT, intT, intT](
		Join(
			WithKey[intT](From[intT](r), func(x intT) intT { return x }),
			WithKey[intT](From[intT](s), func(x intT) intT { return x }),
		),
		func(_, l, r intT) intT { return l },
	).Build()

	got, err := codd.Evaluate(db, expr)
	require.NoError(t, err)
	assert.Equal(t, ints(2, 3), got.Items())
}
