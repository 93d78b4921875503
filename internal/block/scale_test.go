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

func TestScaleLonLatDefaultGranularity(t *testing.T) {
	assert.Equal(t, int64(0), ScaleLonLat(0, 100))
	assert.Equal(t, int64(1), ScaleLonLat(1e-7, 100))
	assert.Equal(t, int64(2), ScaleLonLat(2e-7, 100))
	assert.Equal(t, int64(-1), ScaleLonLat(-1e-7, 100))
}

func TestScaleLonLatRoundHalfAwayFromZero(t *testing.T) {
	// 0.5/1e9 * 1e9 = 0.5 exactly, must round away from zero.
	assert.Equal(t, int64(1), ScaleLonLat(0.5e-9, 1))
	assert.Equal(t, int64(-1), ScaleLonLat(-0.5e-9, 1))
}

func TestScaleTimeDefaultGranularity(t *testing.T) {
	assert.Equal(t, int64(0), ScaleTime(0, 1000))
	assert.Equal(t, int64(0), ScaleTime(0.001, 1000))
	assert.Equal(t, int64(1), ScaleTime(1, 1000))
}

func TestScaleLonLatIdempotentUnderUnscale(t *testing.T) {
	for _, x := range []float64{0, 1.234567, -90, 180, -0.0000001} {
		scaled := ScaleLonLat(x, 100)
		unscaled := float64(scaled) * 100 / 1e9
		assert.Equal(t, scaled, ScaleLonLat(unscaled, 100))
	}
}
