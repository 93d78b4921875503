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

// Package packers holds one concrete Packer per blob payload codec. Each
// wraps a compressing io.WriteCloser and knows which oneof field of
// pb.Blob its compressed bytes belong in.
package packers

import (
	"bytes"
	"io"
)

// base embeds the compressing writer and its backing buffer, common to
// every packer. A concrete packer constructs a bare base, wraps &base.buf
// in its codec's io.WriteCloser, then assigns that into base.WriteCloser;
// saveTo then routes the accumulated bytes into whichever single pb.Blob
// field that codec owns.
type base struct {
	io.WriteCloser
	buf bytes.Buffer
}

// saveTo assigns the packer's accumulated bytes to dst, the one pb.Blob
// oneof field this codec owns.
func (b *base) saveTo(dst *[]byte) {
	*dst = b.buf.Bytes()
}
