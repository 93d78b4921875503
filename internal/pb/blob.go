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

// BlobHeader precedes every Blob: a type tag and the byte size of the Blob
// that follows. fileformat.proto field numbers: type=1, indexdata=2 (unused
// here), datasize=3.
type BlobHeader struct {
	Type     string
	Datasize int32
}

func (h *BlobHeader) Marshal() []byte {
	var b []byte
	b = appendStringField(b, 1, h.Type)
	b = appendInt32Field(b, 3, h.Datasize)

	return b
}

func (h *BlobHeader) Unmarshal(data []byte) error {
	return forEachField(data, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			h.Type = string(v)

			return n, nil
		case 3:
			v, n, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}

			h.Datasize = int32(v)

			return n, nil
		default:
			return skipField(num, typ, rest)
		}
	})
}

// Blob is the payload container: either raw or one of the compressed
// variants, plus the uncompressed size. fileformat.proto field numbers:
// raw=1, raw_size=2, zlib_data=3, lzma_data=4, lz4_data=6, zstd_data=7.
type Blob struct {
	Raw      []byte
	RawSize  int32
	ZlibData []byte
	LzmaData []byte
	Lz4Data  []byte
	ZstdData []byte
}

func (b *Blob) Marshal() []byte {
	var out []byte
	if b.Raw != nil {
		out = appendBytesField(out, 1, b.Raw)
	}

	out = appendInt32Field(out, 2, b.RawSize)

	switch {
	case b.ZlibData != nil:
		out = appendBytesField(out, 3, b.ZlibData)
	case b.LzmaData != nil:
		out = appendBytesField(out, 4, b.LzmaData)
	case b.Lz4Data != nil:
		out = appendBytesField(out, 6, b.Lz4Data)
	case b.ZstdData != nil:
		out = appendBytesField(out, 7, b.ZstdData)
	}

	return out
}

func (b *Blob) Unmarshal(data []byte) error {
	return forEachField(data, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			b.Raw = v

			return n, nil
		case 2:
			v, n, err := consumeVarint(rest)
			if err != nil {
				return 0, err
			}

			b.RawSize = int32(v)

			return n, nil
		case 3:
			v, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			b.ZlibData = v

			return n, nil
		case 4:
			v, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			b.LzmaData = v

			return n, nil
		case 6:
			v, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			b.Lz4Data = v

			return n, nil
		case 7:
			v, n, err := consumeBytes(rest)
			if err != nil {
				return 0, err
			}

			b.ZstdData = v

			return n, nil
		default:
			return skipField(num, typ, rest)
		}
	})
}
