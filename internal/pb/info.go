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

// Info is the metadata block attached to a sparse Node, Way, or Relation.
// Field numbers: version=1, timestamp=2, changeset=3, uid=4, user_sid=5,
// visible=6. HasVisible records whether the visible field was set at all,
// since its zero value (false) is otherwise indistinguishable from absent.
type Info struct {
	Version    int32
	Timestamp  int64
	Changeset  int64
	UID        int32
	UserSid    int32
	Visible    bool
	HasVisible bool
}

func (i *Info) Marshal() []byte {
	var b []byte
	b = appendInt32Field(b, 1, i.Version)
	b = appendInt64Field(b, 2, i.Timestamp)
	b = appendInt64Field(b, 3, i.Changeset)
	b = appendInt32Field(b, 4, i.UID)
	b = appendInt32Field(b, 5, i.UserSid)

	if i.HasVisible {
		b = appendBoolField(b, 6, i.Visible)
	}

	return b
}

func (i *Info) Unmarshal(data []byte) error {
	return forEachField(data, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}

			i.Version = int32(v)

			return n, nil
		case 2:
			v, n, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}

			i.Timestamp = int64(v)

			return n, nil
		case 3:
			v, n, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}

			i.Changeset = int64(v)

			return n, nil
		case 4:
			v, n, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}

			i.UID = int32(v)

			return n, nil
		case 5:
			v, n, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}

			i.UserSid = int32(v)

			return n, nil
		case 6:
			v, n, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}

			i.Visible = v != 0
			i.HasVisible = true

			return n, nil
		default:
			return skipField(num, typ, rest)
		}
	})
}

// DenseInfo is the dense-node columnar counterpart of Info. Field numbers:
// version=1, timestamp=2, changeset=3, uid=4, user_sid=5, visible=6.
type DenseInfo struct {
	Version   []int32
	Timestamp []int64
	Changeset []int64
	UID       []int32
	UserSid   []int32
	Visible   []bool
}

func (d *DenseInfo) Marshal() []byte {
	var b []byte
	b = appendPackedInt32(b, 1, d.Version)
	b = appendPackedSInt64(b, 2, d.Timestamp)
	b = appendPackedSInt64(b, 3, d.Changeset)
	b = appendPackedSInt32(b, 4, d.UID)
	b = appendPackedSInt32(b, 5, d.UserSid)
	b = appendPackedBool(b, 6, d.Visible)

	return b
}

func (d *DenseInfo) Unmarshal(data []byte) error {
	return forEachField(data, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			vals, n, err := consumePackedVarint(rest)
			if err != nil {
				return 0, err
			}

			d.Version = make([]int32, len(vals))
			for i, v := range vals {
				d.Version[i] = int32(v)
			}

			return n, nil
		case 2:
			vals, n, err := consumePackedVarint(rest)
			if err != nil {
				return 0, err
			}

			d.Timestamp = make([]int64, len(vals))
			for i, v := range vals {
				d.Timestamp[i] = protowire.DecodeZigZag(v)
			}

			return n, nil
		case 3:
			vals, n, err := consumePackedVarint(rest)
			if err != nil {
				return 0, err
			}

			d.Changeset = make([]int64, len(vals))
			for i, v := range vals {
				d.Changeset[i] = protowire.DecodeZigZag(v)
			}

			return n, nil
		case 4:
			vals, n, err := consumePackedVarint(rest)
			if err != nil {
				return 0, err
			}

			d.UID = make([]int32, len(vals))
			for i, v := range vals {
				d.UID[i] = int32(protowire.DecodeZigZag(v))
			}

			return n, nil
		case 5:
			vals, n, err := consumePackedVarint(rest)
			if err != nil {
				return 0, err
			}

			d.UserSid = make([]int32, len(vals))
			for i, v := range vals {
				d.UserSid[i] = int32(protowire.DecodeZigZag(v))
			}

			return n, nil
		case 6:
			vals, n, err := consumePackedVarint(rest)
			if err != nil {
				return 0, err
			}

			d.Visible = make([]bool, len(vals))
			for i, v := range vals {
				d.Visible[i] = v != 0
			}

			return n, nil
		default:
			return skipField(num, typ, rest)
		}
	})
}
