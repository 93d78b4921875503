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
	"github.com/ulikunitz/xz/lzma"

	"github.com/felsokartan/osmpbf/internal/pb"
)

// LzmaPacker stores the payload compressed with LZMA, matching the
// fileformat schema's lzma_data field. Rarely seen in the wild but part
// of the published schema's oneof.
type LzmaPacker struct {
	*base
}

func NewLzmaPacker() *LzmaPacker {
	p := &LzmaPacker{base: &base{}}

	w, err := lzma.NewWriter(&p.buf)
	if err != nil {
		panic(err)
	}

	p.WriteCloser = w

	return p
}

func (p *LzmaPacker) SaveTo(blob *pb.Blob) {
	p.saveTo(&blob.LzmaData)
}
