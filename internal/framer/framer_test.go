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

package framer_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felsokartan/osmpbf/internal/framer"
	"github.com/felsokartan/osmpbf/internal/pb"
)

func TestEmitFramingRaw(t *testing.T) {
	var buf bytes.Buffer

	f := framer.New(&buf, framer.Raw)

	payload := []byte("hello osm")

	_, err := f.Emit("OSMData", payload)
	require.NoError(t, err)

	hdrLen := binary.BigEndian.Uint32(buf.Bytes()[:4])

	hdrBytes := buf.Bytes()[4 : 4+hdrLen]
	hdr := &pb.BlobHeader{}
	require.NoError(t, hdr.Unmarshal(hdrBytes))
	assert.Equal(t, "OSMData", hdr.Type)

	blobBytes := buf.Bytes()[4+hdrLen : 4+hdrLen+uint32(hdr.Datasize)]
	blob := &pb.Blob{}
	require.NoError(t, blob.Unmarshal(blobBytes))
	assert.Equal(t, payload, blob.Raw)
	assert.Equal(t, int32(len(payload)), blob.RawSize)

	assert.Len(t, buf.Bytes(), 4+int(hdrLen)+int(hdr.Datasize))
}

func TestEmitZlibRoundTrips(t *testing.T) {
	var buf bytes.Buffer

	f := framer.New(&buf, framer.Zlib)

	payload := bytes.Repeat([]byte("osm-pbf-data"), 64)

	_, err := f.Emit("OSMData", payload)
	require.NoError(t, err)

	hdrLen := binary.BigEndian.Uint32(buf.Bytes()[:4])
	hdrBytes := buf.Bytes()[4 : 4+hdrLen]

	hdr := &pb.BlobHeader{}
	require.NoError(t, hdr.Unmarshal(hdrBytes))

	blobBytes := buf.Bytes()[4+hdrLen : 4+hdrLen+uint32(hdr.Datasize)]
	blob := &pb.Blob{}
	require.NoError(t, blob.Unmarshal(blobBytes))

	assert.NotEmpty(t, blob.ZlibData)
	assert.Equal(t, int32(len(payload)), blob.RawSize)
}

func TestEmitRejectsOversizedPayload(t *testing.T) {
	var buf bytes.Buffer

	f := framer.New(&buf, framer.Raw).WithMaxRawBytes(4)

	_, err := f.Emit("OSMData", []byte("too big"))
	require.ErrorIs(t, err, framer.ErrBlobTooLarge)
}
