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

package packers

import (
	"github.com/klauspost/compress/zstd"

	"github.com/felsokartan/osmpbf/internal/pb"
)

// ZstdPacker stores the payload compressed with zstd, matching the
// fileformat schema's zstd_data field.
type ZstdPacker struct {
	*base
}

func NewZstdPacker() *ZstdPacker {
	p := &ZstdPacker{base: &base{}}

	w, err := zstd.NewWriter(&p.buf)
	if err != nil {
		panic(err)
	}

	p.WriteCloser = w

	return p
}

func (p *ZstdPacker) SaveTo(blob *pb.Blob) {
	p.saveTo(&blob.ZstdData)
}
