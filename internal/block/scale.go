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

const (
	// nanodegreeResolution is the fixed resolution location_granularity
	// divides to produce the storage unit.
	nanodegreeResolution = 1e9

	// millisResolution is the fixed resolution date_granularity divides
	// to produce the storage unit.
	millisResolution = 1000

	half = 0.5
)

// ScaleLonLat converts a coordinate in decimal degrees to a scaled integer:
// round(x * 1e9 / granularity), round half away from zero.
func ScaleLonLat(x float64, granularity int32) int64 {
	return roundHalfAway(x * nanodegreeResolution / float64(granularity))
}

// ScaleTime converts an epoch-seconds timestamp to a scaled integer:
// round(t * 1000 / date_granularity), round half away from zero.
func ScaleTime(epochSeconds float64, dateGranularity int32) int64 {
	return roundHalfAway(epochSeconds * millisResolution / float64(dateGranularity))
}

func roundHalfAway(v float64) int64 {
	if v < 0 {
		return int64(v - half)
	}

	return int64(v + half)
}
