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

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendInt32Field(b []byte, num protowire.Number, v int32) []byte {
	return appendVarintField(b, num, uint64(int64(v)))
}

func appendInt64Field(b []byte, num protowire.Number, v int64) []byte {
	return appendVarintField(b, num, uint64(v))
}

func appendSInt64Field(b []byte, num protowire.Number, v int64) []byte {
	return appendVarintField(b, num, protowire.EncodeZigZag(v))
}

func appendBoolField(b []byte, num protowire.Number, v bool) []byte {
	if v {
		return appendVarintField(b, num, 1)
	}

	return appendVarintField(b, num, 0)
}

func appendStringField(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendMessageField(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func appendPackedVarint(b []byte, num protowire.Number, vals []uint64) []byte {
	if len(vals) == 0 {
		return b
	}

	var inner []byte
	for _, v := range vals {
		inner = protowire.AppendVarint(inner, v)
	}

	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendBytes(b, inner)
}

func appendPackedInt64(b []byte, num protowire.Number, vals []int64) []byte {
	u := make([]uint64, len(vals))
	for i, v := range vals {
		u[i] = uint64(v)
	}

	return appendPackedVarint(b, num, u)
}

func appendPackedSInt64(b []byte, num protowire.Number, vals []int64) []byte {
	u := make([]uint64, len(vals))
	for i, v := range vals {
		u[i] = protowire.EncodeZigZag(v)
	}

	return appendPackedVarint(b, num, u)
}

func appendPackedInt32(b []byte, num protowire.Number, vals []int32) []byte {
	u := make([]uint64, len(vals))
	for i, v := range vals {
		u[i] = uint64(int64(v))
	}

	return appendPackedVarint(b, num, u)
}

func appendPackedSInt32(b []byte, num protowire.Number, vals []int32) []byte {
	u := make([]uint64, len(vals))
	for i, v := range vals {
		u[i] = protowire.EncodeZigZag(int64(v))
	}

	return appendPackedVarint(b, num, u)
}

func appendPackedUint32(b []byte, num protowire.Number, vals []uint32) []byte {
	u := make([]uint64, len(vals))
	for i, v := range vals {
		u[i] = uint64(v)
	}

	return appendPackedVarint(b, num, u)
}

func appendPackedBool(b []byte, num protowire.Number, vals []bool) []byte {
	u := make([]uint64, len(vals))
	for i, v := range vals {
		if v {
			u[i] = 1
		}
	}

	return appendPackedVarint(b, num, u)
}

// forEachField walks every top-level field in b, invoking fn with the raw
// remaining buffer positioned just after the tag. fn must return the number
// of bytes its field value occupies.
func forEachField(b []byte, fn func(num protowire.Number, typ protowire.Type, rest []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("pb: malformed tag: %w", protowire.ParseError(n))
		}

		b = b[n:]

		n, err := fn(num, typ, b)
		if err != nil {
			return err
		}

		if n < 0 || n > len(b) {
			return fmt.Errorf("pb: malformed field %d", num)
		}

		b = b[n:]
	}

	return nil
}

func consumeVarint(b []byte) (uint64, int, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, fmt.Errorf("pb: malformed varint: %w", protowire.ParseError(n))
	}

	return v, n, nil
}

func consumeBytes(b []byte) ([]byte, int, error) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, fmt.Errorf("pb: malformed length-delimited field: %w", protowire.ParseError(n))
	}

	return v, n, nil
}

// consumePackedVarint unpacks a length-delimited field of back-to-back
// varints, as used by every `packed = true` repeated field in this schema.
func consumePackedVarint(b []byte) ([]uint64, int, error) {
	raw, n, err := consumeBytes(b)
	if err != nil {
		return nil, 0, err
	}

	var vals []uint64
	for len(raw) > 0 {
		v, vn, verr := consumeVarint(raw)
		if verr != nil {
			return nil, 0, verr
		}

		vals = append(vals, v)
		raw = raw[vn:]
	}

	return vals, n, nil
}

func skipField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, fmt.Errorf("pb: malformed field %d: %w", num, protowire.ParseError(n))
	}

	return n, nil
}
