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

// StringTable is the shared lookup table for a PrimitiveBlock. Index 0 is
// always the empty string by convention; osmformat.proto field number: s=1
// (repeated bytes).
type StringTable struct {
	S [][]byte
}

func (s *StringTable) Marshal() []byte {
	var b []byte
	for _, v := range s.S {
		b = appendBytesField(b, 1, v)
	}

	return b
}

func (s *StringTable) Unmarshal(data []byte) error {
	return forEachField(data, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			cp := make([]byte, len(v))
			copy(cp, v)
			s.S = append(s.S, cp)

			return n, nil
		default:
			return skipField(num, typ, rest)
		}
	})
}

// PrimitiveGroup holds one homogeneous batch of entities. osmformat.proto
// permits only one of these repeated fields to be populated per group:
// nodes=1, dense=2, ways=3, relations=4.
type PrimitiveGroup struct {
	Nodes     []*Node
	Dense     *DenseNodes
	Ways      []*Way
	Relations []*Relation
}

func (g *PrimitiveGroup) Marshal() []byte {
	var b []byte
	for _, n := range g.Nodes {
		b = appendMessageField(b, 1, n.Marshal())
	}

	if g.Dense != nil {
		b = appendMessageField(b, 2, g.Dense.Marshal())
	}

	for _, w := range g.Ways {
		b = appendMessageField(b, 3, w.Marshal())
	}

	for _, r := range g.Relations {
		b = appendMessageField(b, 4, r.Marshal())
	}

	return b
}

func (g *PrimitiveGroup) Unmarshal(data []byte) error {
	return forEachField(data, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			node := &Node{}
			if err := node.Unmarshal(v); err != nil {
				return 0, err
			}

			g.Nodes = append(g.Nodes, node)

			return n, nil
		case 2:
			v, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			dense := &DenseNodes{}
			if err := dense.Unmarshal(v); err != nil {
				return 0, err
			}

			g.Dense = dense

			return n, nil
		case 3:
			v, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			way := &Way{}
			if err := way.Unmarshal(v); err != nil {
				return 0, err
			}

			g.Ways = append(g.Ways, way)

			return n, nil
		case 4:
			v, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			rel := &Relation{}
			if err := rel.Unmarshal(v); err != nil {
				return 0, err
			}

			g.Relations = append(g.Relations, rel)

			return n, nil
		default:
			return skipField(num, typ, rest)
		}
	})
}

// PrimitiveBlock is the contents of every "OSMData" blob. osmformat.proto
// field numbers: stringtable=1, primitivegroup=2, granularity=17 (default
// 100, nanodegrees per unit), lat_offset=19, lon_offset=20,
// date_granularity=18 (default 1000, milliseconds per unit).
type PrimitiveBlock struct {
	Stringtable     *StringTable
	Primitivegroup  []*PrimitiveGroup
	Granularity     int32
	LatOffset       int64
	LonOffset       int64
	DateGranularity int32
}

func (p *PrimitiveBlock) Marshal() []byte {
	var b []byte
	if p.Stringtable != nil {
		b = appendMessageField(b, 1, p.Stringtable.Marshal())
	}

	for _, g := range p.Primitivegroup {
		b = appendMessageField(b, 2, g.Marshal())
	}

	if p.Granularity != 0 && p.Granularity != 100 {
		b = appendInt32Field(b, 17, p.Granularity)
	}

	if p.LatOffset != 0 {
		b = appendInt64Field(b, 19, p.LatOffset)
	}

	if p.LonOffset != 0 {
		b = appendInt64Field(b, 20, p.LonOffset)
	}

	if p.DateGranularity != 0 && p.DateGranularity != 1000 {
		b = appendInt32Field(b, 18, p.DateGranularity)
	}

	return b
}

func (p *PrimitiveBlock) Unmarshal(data []byte) error {
	p.Granularity = 100
	p.DateGranularity = 1000

	return forEachField(data, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			st := &StringTable{}
			if err := st.Unmarshal(v); err != nil {
				return 0, err
			}

			p.Stringtable = st

			return n, nil
		case 2:
			v, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			g := &PrimitiveGroup{}
			if err := g.Unmarshal(v); err != nil {
				return 0, err
			}

			p.Primitivegroup = append(p.Primitivegroup, g)

			return n, nil
		case 17:
			v, n, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}

			p.Granularity = int32(v)

			return n, nil
		case 18:
			v, n, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}

			p.DateGranularity = int32(v)

			return n, nil
		case 19:
			v, n, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}

			p.LatOffset = int64(v)

			return n, nil
		case 20:
			v, n, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}

			p.LonOffset = int64(v)

			return n, nil
		default:
			return skipField(num, typ, rest)
		}
	})
}
