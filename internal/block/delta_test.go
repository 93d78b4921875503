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

package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeltaTrackerCumulativeSum(t *testing.T) {
	var tr DeltaTracker[int64]

	raw := []int64{100, 102, 101, 101, 50}

	var cumulative int64

	for _, v := range raw {
		cumulative += tr.Update(v)
		assert.Equal(t, v, cumulative)
	}
}

func TestDeltaTrackerReset(t *testing.T) {
	var tr DeltaTracker[int64]

	tr.Update(10)
	tr.Reset()

	assert.Equal(t, int64(5), tr.Update(5))
}

func TestDeltaTrackerWayRefs(t *testing.T) {
	var tr DeltaTracker[int64]

	refs := []int64{100, 102, 101}

	got := make([]int64, len(refs))
	for i, r := range refs {
		got[i] = tr.Update(r)
	}

	assert.Equal(t, []int64{100, 2, -1}, got)
}
