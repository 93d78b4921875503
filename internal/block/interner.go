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

import "sort"

// StringInterner is a per-block, two-phase string table builder. During
// recording, record returns interim ids starting at 1 (0 is reserved).
// FinalizeInto computes a frequency-ordered permutation to final ids and
// writes the final string order into the supplied table; Map then
// translates interim ids to final ids for exactly one rewrite pass.
type StringInterner struct {
	interimOf map[string]uint32
	strings   []string // index i holds the string for interim id i+1
	counts    []uint32 // parallel to strings: usage count

	finalOf []uint32 // interim id i -> final id, valid after FinalizeInto
}

// Record returns the interim id for s, assigning a new one if s has not
// been seen yet in this recording phase.
func (si *StringInterner) Record(s string) uint32 {
	if si.interimOf == nil {
		si.interimOf = make(map[string]uint32)
	}

	if id, ok := si.interimOf[s]; ok {
		si.counts[id-1]++
		return id
	}

	si.strings = append(si.strings, s)
	si.counts = append(si.counts, 1)
	id := uint32(len(si.strings))
	si.interimOf[s] = id

	return id
}

// FinalizeInto assigns final ids: slot 0 is always the reserved empty
// string, remaining slots in descending frequency order with ties broken
// lexicographically ascending. It appends the final strings, in final-id
// order, to table. A recorded empty string collapses into the reserved
// slot 0 rather than occupying a slot of its own.
func (si *StringInterner) FinalizeInto(table *[][]byte) {
	si.finalOf = make([]uint32, len(si.strings)+1)

	order := make([]int, 0, len(si.strings))

	for i, s := range si.strings {
		if s == "" {
			si.finalOf[i+1] = 0
			continue
		}

		order = append(order, i)
	}

	sort.Slice(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if si.counts[ia] != si.counts[ib] {
			return si.counts[ia] > si.counts[ib]
		}

		return si.strings[ia] < si.strings[ib]
	})

	*table = append(*table, []byte(""))

	for finalID, interimIdx := range order {
		si.finalOf[interimIdx+1] = uint32(finalID + 1)
		*table = append(*table, []byte(si.strings[interimIdx]))
	}
}

// Map translates an interim id to its final id. Valid only after
// FinalizeInto. Map(0) is always 0.
func (si *StringInterner) Map(interimID uint32) uint32 {
	if interimID == 0 {
		return 0
	}

	return si.finalOf[interimID]
}

// Reset clears all recorded and finalized state.
func (si *StringInterner) Reset() {
	si.interimOf = nil
	si.strings = nil
	si.counts = nil
	si.finalOf = nil
}

// Len reports the number of distinct strings recorded so far.
func (si *StringInterner) Len() int {
	return len(si.strings)
}
