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

// HeaderBBox is the header block's optional bounding box, stored in
// nanodegrees (osmformat.proto's fixed 1e9 resolution, independent of a
// primitive block's granularity). Field numbers: left=1, right=2, top=3,
// bottom=4.
type HeaderBBox struct {
	Left, Right, Top, Bottom int64
}

func (x *HeaderBBox) Marshal() []byte {
	var b []byte
	b = appendSInt64Field(b, 1, x.Left)
	b = appendSInt64Field(b, 2, x.Right)
	b = appendSInt64Field(b, 3, x.Top)
	b = appendSInt64Field(b, 4, x.Bottom)

	return b
}

func (x *HeaderBBox) Unmarshal(data []byte) error {
	return forEachField(data, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1, 2, 3, 4:
			v, n, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}

			sv := protowire.DecodeZigZag(v)

			switch num {
			case 1:
				x.Left = sv
			case 2:
				x.Right = sv
			case 3:
				x.Top = sv
			case 4:
				x.Bottom = sv
			}

			return n, nil
		default:
			return skipField(num, typ, rest)
		}
	})
}

// HeaderBlock is the contents of the "OSMHeader" blob. Field numbers:
// bbox=1, required_features=4, optional_features=5, writingprogram=16,
// source=17, osmosis_replication_timestamp=32,
// osmosis_replication_sequence_number=33, osmosis_replication_base_url=34.
type HeaderBlock struct {
	Bbox                             *HeaderBBox
	RequiredFeatures                 []string
	OptionalFeatures                 []string
	Writingprogram                   string
	Source                           string
	OsmosisReplicationTimestamp      int64
	OsmosisReplicationSequenceNumber int64
	OsmosisReplicationBaseURL        string
}

func (h *HeaderBlock) Marshal() []byte {
	var b []byte
	if h.Bbox != nil {
		b = appendMessageField(b, 1, h.Bbox.Marshal())
	}

	for _, f := range h.RequiredFeatures {
		b = appendStringField(b, 4, f)
	}

	for _, f := range h.OptionalFeatures {
		b = appendStringField(b, 5, f)
	}

	if h.Writingprogram != "" {
		b = appendStringField(b, 16, h.Writingprogram)
	}

	if h.Source != "" {
		b = appendStringField(b, 17, h.Source)
	}

	if h.OsmosisReplicationTimestamp != 0 {
		b = appendInt64Field(b, 32, h.OsmosisReplicationTimestamp)
	}

	if h.OsmosisReplicationSequenceNumber != 0 {
		b = appendInt64Field(b, 33, h.OsmosisReplicationSequenceNumber)
	}

	if h.OsmosisReplicationBaseURL != "" {
		b = appendStringField(b, 34, h.OsmosisReplicationBaseURL)
	}

	return b
}

func (h *HeaderBlock) Unmarshal(data []byte) error {
	return forEachField(data, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			bbox := &HeaderBBox{}
			if err := bbox.Unmarshal(v); err != nil {
				return 0, err
			}

			h.Bbox = bbox

			return n, nil
		case 4:
			v, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			h.RequiredFeatures = append(h.RequiredFeatures, string(v))

			return n, nil
		case 5:
			v, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			h.OptionalFeatures = append(h.OptionalFeatures, string(v))

			return n, nil
		case 16:
			v, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			h.Writingprogram = string(v)

			return n, nil
		case 17:
			v, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			h.Source = string(v)

			return n, nil
		case 32:
			v, n, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}

			h.OsmosisReplicationTimestamp = int64(v)

			return n, nil
		case 33:
			v, n, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}

			h.OsmosisReplicationSequenceNumber = int64(v)

			return n, nil
		case 34:
			v, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			h.OsmosisReplicationBaseURL = string(v)

			return n, nil
		default:
			return skipField(num, typ, rest)
		}
	})
}
