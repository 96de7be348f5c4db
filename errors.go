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

import "gopkg.in/src-d/go-errors.v1"

// Error kinds reported at the boundary of the operation that detected them.
// None of them leave an instance partially updated: the only mutation on the
// error path is queuing a batch into to_add, which is the caller's own
// first step.
var (
	// ErrRelationNotFound is returned when an expression references a
	// relation name absent from the target database.
	ErrRelationNotFound = errors.NewKind("relation not found: %q")

	// ErrViewNotFound is returned when an expression references a view
	// handle absent from the target database.
	ErrViewNotFound = errors.NewKind("view not found: %d")

	// ErrTypeMismatch is returned when a handle is used against an
	// instance whose tuple type does not match the handle's.
	ErrTypeMismatch = errors.NewKind("type mismatch: %s %v holds %s, not the requested type")

	// ErrUnsupportedExpression is returned when StoreView is given an
	// expression that embeds a Difference node anywhere within it.
	ErrUnsupportedExpression = errors.NewKind("unsupported expression %q for operation %q")
)
