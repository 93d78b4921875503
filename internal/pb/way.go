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

// Way. Field numbers: id=1, keys=2, vals=3, info=4, refs=8 (delta-coded
// node ids).
type Way struct {
	ID   int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Refs []int64
}

func (w *Way) Marshal() []byte {
	var b []byte
	b = appendInt64Field(b, 1, w.ID)
	b = appendPackedUint32(b, 2, w.Keys)
	b = appendPackedUint32(b, 3, w.Vals)

	if w.Info != nil {
		b = appendMessageField(b, 4, w.Info.Marshal())
	}

	b = appendPackedSInt64(b, 8, w.Refs)

	return b
}

func (w *Way) Unmarshal(data []byte) error {
	return forEachField(data, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}

			w.ID = int64(v)

			return n, nil
		case 2:
			vals, n, err := consumePackedVarint(rest)
			if err != nil {
				return 0, err
			}

			w.Keys = u32s(vals)

			return n, nil
		case 3:
			vals, n, err := consumePackedVarint(rest)
			if err != nil {
				return 0, err
			}

			w.Vals = u32s(vals)

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

			w.Info = info

			return n, nil
		case 8:
			vals, n, err := consumePackedVarint(rest)
			if err != nil {
				return 0, err
			}

			w.Refs = zigzags(vals)

			return n, nil
		default:
			return skipField(num, typ, rest)
		}
	})
}
