// Copyright 2025 the original author or authors.
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

// Package block implements the primitive block builder: string interning,
// delta tracking, coordinate/time scaling, and dense-node columnar
// encoding, all scoped to one in-flight block between flushes.
package block

import "golang.org/x/exp/constraints"

// DeltaTracker holds a running "previous" value and emits successive
// differences. Scoped to one block's lifetime for id/lat/lon/timestamp/
// changeset/uid/user-sid columns, or to one way/relation for ref/memid
// columns.
type DeltaTracker[T constraints.Integer] struct {
	previous T
}

// Update returns value - previous and sets previous to value.
func (d *DeltaTracker[T]) Update(value T) T {
	delta := value - d.previous
	d.previous = value

	return delta
}

// Reset restores previous to zero.
func (d *DeltaTracker[T]) Reset() {
	d.previous = 0
}
