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
	"compress/zlib"

	"github.com/felsokartan/osmpbf/internal/pb"
)

// ZlibPacker is the default codec: deflate at the standard library's
// default compression level, matching the published fileformat schema's
// zlib_data field and the vast majority of .osm.pbf files in the wild.
type ZlibPacker struct {
	*base
}

func NewZlibPacker() *ZlibPacker {
	p := &ZlibPacker{base: &base{}}
	p.WriteCloser = zlib.NewWriter(&p.buf)

	return p
}

func (p *ZlibPacker) SaveTo(blob *pb.Blob) {
	p.saveTo(&blob.ZlibData)
}
