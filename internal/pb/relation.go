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

package pb

import "google.golang.org/protobuf/encoding/protowire"

// MemberType mirrors osmformat.proto's Relation.MemberType enum.
type MemberType int32

const (
	MemberNode MemberType = 0
	MemberWay  MemberType = 1
	MemberRel  MemberType = 2
)

// Relation. Field numbers: id=1, keys=2, vals=3, info=4, roles_sid=8
// (packed int32 string-table indices), memids=9 (packed sint64 delta-coded
// member ids), types=10 (packed enum MemberType).
type Relation struct {
	ID       int64
	Keys     []uint32
	Vals     []uint32
	Info     *Info
	RolesSid []int32
	Memids   []int64
	Types    []MemberType
}

func (r *Relation) Marshal() []byte {
	var b []byte
	b = appendInt64Field(b, 1, r.ID)
	b = appendPackedUint32(b, 2, r.Keys)
	b = appendPackedUint32(b, 3, r.Vals)

	if r.Info != nil {
		b = appendMessageField(b, 4, r.Info.Marshal())
	}

	b = appendPackedInt32(b, 8, r.RolesSid)
	b = appendPackedSInt64(b, 9, r.Memids)

	types := make([]int32, len(r.Types))
	for i, t := range r.Types {
		types[i] = int32(t)
	}

	b = appendPackedInt32(b, 10, types)

	return b
}

func (r *Relation) Unmarshal(data []byte) error {
	return forEachField(data, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}

			r.ID = int64(v)

			return n, nil
		case 2:
			vals, n, err := consumePackedVarint(rest)
			if err != nil {
				return 0, err
			}

			r.Keys = u32s(vals)

			return n, nil
		case 3:
			vals, n, err := consumePackedVarint(rest)
			if err != nil {
				return 0, err
			}

			r.Vals = u32s(vals)

			return n, nil
		case 4:
			v, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			info := &Info{}
			if err := info.Unmarshal(v); err != nil {
				return 0, err
			}

			r.Info = info

			return n, nil
		case 8:
			vals, n, err := consumePackedVarint(rest)
			if err != nil {
				return 0, err
			}

			r.RolesSid = make([]int32, len(vals))
			for i, v := range vals {
				r.RolesSid[i] = int32(v)
			}

			return n, nil
		case 9:
			vals, n, err := consumePackedVarint(rest)
			if err != nil {
				return 0, err
			}

			r.Memids = zigzags(vals)

			return n, nil
		case 10:
			vals, n, err := consumePackedVarint(rest)
			if err != nil {
				return 0, err
			}

			r.Types = make([]MemberType, len(vals))
			for i, v := range vals {
				r.Types[i] = MemberType(v)
			}

			return n, nil
		default:
			return skipField(num, typ, rest)
		}
	})
}
