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

// validateViewExpression rejects any expression tree containing a
// Difference: a materialized view built on one would need to retract
// tuples it already emitted as soon as a matching right-hand tuple later
// arrived, which this engine's insert-only instances cannot do. Unlike the
// original visitor-based validator, no tree walk is needed here: every
// expression constructor computes and caches hasDifference() from its
// operands at construction time, so the check is O(1).
func validateViewExpression[T Tuple[T]](expression Expression[T]) error {
	if expression.hasDifference() {
		return ErrUnsupportedExpression.New("Difference", "Create View")
	}
	return nil
}
