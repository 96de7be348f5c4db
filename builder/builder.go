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

// Package builder provides a fluent wrapper over codd.Expression trees.
//
// Go methods cannot introduce type parameters beyond their receiver's, so
// operators that change tuple type (Project, Product, Join) are free
// functions here rather than chainable methods, just as the host
// package's own constructors are free functions for the same reason. Operators that keep the same T (Select, Union, Intersect,
// Difference) remain fluent methods on Builder[T].
package builder

import "github.com/salmans/codd-sub000"

// Builder wraps an Expression[T] so same-T operators can be chained as
// methods. Zero value is not usable; start a chain with From.
type Builder[T codd.Tuple[T]] struct {
	expr codd.Expression[T]
}

// From starts a builder chain from an existing expression (typically a
// RelationRef or ViewRef).
func From[T codd.Tuple[T]](expr codd.Expression[T]) Builder[T] {
	return Builder[T]{expr: expr}
}

// Build returns the expression accumulated so far.
func (b Builder[T]) Build() codd.Expression[T] { return b.expr }

// Select narrows the builder's expression to the tuples matching predicate.
func (b Builder[T]) Select(predicate func(T) bool) Builder[T] {
	return Builder[T]{expr: codd.Select(b.expr, predicate)}
}

// Union combines the builder's expression with other.
func (b Builder[T]) Union(other codd.Expression[T]) Builder[T] {
	return Builder[T]{expr: codd.Union(b.expr, other)}
}

// Intersect narrows the builder's expression to tuples also present in
// other.
func (b Builder[T]) Intersect(other codd.Expression[T]) Builder[T] {
	return Builder[T]{expr: codd.Intersect(b.expr, other)}
}

// Difference narrows the builder's expression to tuples absent from other.
// The resulting expression may only be built and passed to codd.Evaluate,
// never to codd.StoreView.
func (b Builder[T]) Difference(other codd.Expression[T]) Builder[T] {
	return Builder[T]{expr: codd.Difference(b.expr, other)}
}

// Project maps b's expression through f into a builder over T. A free
// function, not a method, because it introduces a new type parameter.
func Project[S codd.Tuple[S], T codd.Tuple[T]](b Builder[S], f func(S) T) Builder[T] {
	return Builder[T]{expr: codd.Project(b.expr, f)}
}

// ProductBuilder is the intermediate value returned by Product, awaiting
// the combining function that names the result's tuple type.
type ProductBuilder[L codd.Tuple[L], R codd.Tuple[R]] struct {
	left  codd.Expression[L]
	right codd.Expression[R]
}

// Product pairs left and right, ready for ProductOn to supply the combiner.
func Product[L codd.Tuple[L], R codd.Tuple[R]](left Builder[L], right Builder[R]) ProductBuilder[L, R] {
	return ProductBuilder[L, R]{left: left.expr, right: right.expr}
}

// ProductOn combines every pair of p's Cartesian product with f. A free
// function, not a method on ProductBuilder, because it introduces a new
// type parameter T.
func ProductOn[L codd.Tuple[L], R codd.Tuple[R], T codd.Tuple[T]](p ProductBuilder[L, R], f func(L, R) T) Builder[T] {
	return Builder[T]{expr: codd.Product(p.left, p.right, f)}
}

// WithKeyBuilder tags a builder's expression with the key function used to
// equi-join it against another WithKeyBuilder of the same key type K.
type WithKeyBuilder[K codd.Tuple[K], L codd.Tuple[L]] struct {
	expr  codd.Expression[L]
	keyFn func(L) K
}

// WithKey attaches a join key extractor to b, as the first step of a Join.
func WithKey[K codd.Tuple[K], L codd.Tuple[L]](b Builder[L], key func(L) K) WithKeyBuilder[K, L] {
	return WithKeyBuilder[K, L]{expr: b.expr, keyFn: key}
}

// JoinBuilder is the intermediate value produced by pairing two
// WithKeyBuilders of matching key type K, awaiting the combining function
// that names the result's tuple type.
type JoinBuilder[K codd.Tuple[K], L codd.Tuple[L], R codd.Tuple[R]] struct {
	left  WithKeyBuilder[K, L]
	right WithKeyBuilder[K, R]
}

// Join pairs left and right on their shared key type, ready for On to
// supply the combiner.
func Join[K codd.Tuple[K], L codd.Tuple[L], R codd.Tuple[R]](left WithKeyBuilder[K, L], right WithKeyBuilder[K, R]) JoinBuilder[K, L, R] {
	return JoinBuilder[K, L, R]{left: left, right: right}
}

// On combines every matching pair (by key) with f, given the shared key.
func On[K codd.Tuple[K], L codd.Tuple[L], R codd.Tuple[R], T codd.Tuple[T]](j JoinBuilder[K, L, R], f func(K, L, R) T) Builder[T] {
	return Builder[T]{expr: codd.Join(j.left.expr, j.left.keyFn, j.right.expr, j.right.keyFn, f)}
}
