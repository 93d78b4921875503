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

// Node is the sparse node layout. Field numbers: id=1, keys=2, vals=3,
// info=4, lat=8, lon=9.
type Node struct {
	ID   int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Lat  int64
	Lon  int64
}

func (n *Node) Marshal() []byte {
	var b []byte
	b = appendSInt64Field(b, 1, n.ID)
	b = appendPackedUint32(b, 2, n.Keys)
	b = appendPackedUint32(b, 3, n.Vals)

	if n.Info != nil {
		b = appendMessageField(b, 4, n.Info.Marshal())
	}

	b = appendSInt64Field(b, 8, n.Lat)
	b = appendSInt64Field(b, 9, n.Lon)

	return b
}

func (n *Node) Unmarshal(data []byte) error {
	return forEachField(data, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, sz, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}

			n.ID = protowire.DecodeZigZag(v)

			return sz, nil
		case 2:
			vals, sz, err := consumePackedVarint(rest)
			if err != nil {
				return 0, err
			}

			n.Keys = u32s(vals)

			return sz, nil
		case 3:
			vals, sz, err := consumePackedVarint(rest)
			if err != nil {
				return 0, err
			}

			n.Vals = u32s(vals)

			return sz, nil
		case 4:
			v, sz, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			info := &Info{}
			if err := info.Unmarshal(v); err != nil {
				return 0, err
			}

			n.Info = info

			return sz, nil
		case 8:
			v, sz, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}

			n.Lat = protowire.DecodeZigZag(v)

			return sz, nil
		case 9:
			v, sz, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}

			n.Lon = protowire.DecodeZigZag(v)

			return sz, nil
		default:
			return skipField(num, typ, rest)
		}
	})
}

func u32s(vals []uint64) []uint32 {
	if vals == nil {
		return nil
	}

	out := make([]uint32, len(vals))
	for i, v := range vals {
		out[i] = uint32(v)
	}

	return out
}

// DenseNodes is the columnar node layout. Field numbers: id=1, denseinfo=5,
// lat=8, lon=9, keys_vals=10.
type DenseNodes struct {
	ID        []int64
	DenseInfo *DenseInfo
	Lat       []int64
	Lon       []int64
	KeysVals  []int32
}

func (d *DenseNodes) Marshal() []byte {
	var b []byte
	b = appendPackedSInt64(b, 1, d.ID)

	if d.DenseInfo != nil {
		b = appendMessageField(b, 5, d.DenseInfo.Marshal())
	}

	b = appendPackedSInt64(b, 8, d.Lat)
	b = appendPackedSInt64(b, 9, d.Lon)
	b = appendPackedInt32(b, 10, d.KeysVals)

	return b
}

func (d *DenseNodes) Unmarshal(data []byte) error {
	return forEachField(data, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			vals, sz, err := consumePackedVarint(rest)
			if err != nil {
				return 0, err
			}

			d.ID = zigzags(vals)

			return sz, nil
		case 5:
			v, sz, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			info := &DenseInfo{}
			if err := info.Unmarshal(v); err != nil {
				return 0, err
			}

			d.DenseInfo = info

			return sz, nil
		case 8:
			vals, sz, err := consumePackedVarint(rest)
			if err != nil {
				return 0, err
			}

			d.Lat = zigzags(vals)

			return sz, nil
		case 9:
			vals, sz, err := consumePackedVarint(rest)
			if err != nil {
				return 0, err
			}

			d.Lon = zigzags(vals)

			return sz, nil
		case 10:
			vals, sz, err := consumePackedVarint(rest)
			if err != nil {
				return 0, err
			}

			d.KeysVals = make([]int32, len(vals))
			for i, v := range vals {
				d.KeysVals[i] = int32(v)
			}

			return sz, nil
		default:
			return skipField(num, typ, rest)
		}
	})
}

func zigzags(vals []uint64) []int64 {
	if vals == nil {
		return nil
	}

	out := make([]int64, len(vals))
	for i, v := range vals {
		out[i] = protowire.DecodeZigZag(v)
	}

	return out
}
