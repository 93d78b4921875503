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

// Package roundtrip is a test-only decoder for the exact message shapes
// this module's encoder emits. It exists solely to let the test suite
// assert byte-for-byte round trips (spec testable property 1); it is
// never reachable from the public API, preserving "no streaming reader"
// as a guarantee about the package's public surface.
package roundtrip

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz/lzma"

	"github.com/felsokartan/osmpbf/internal/pb"
)

// File is the fully decoded contents of a .osm.pbf byte stream: one
// header block followed by zero or more primitive blocks, in blob
// order.
type File struct {
	Header *pb.HeaderBlock
	Blocks []*pb.PrimitiveBlock
}

// Decode reads a complete .osm.pbf stream from r.
func Decode(r io.Reader) (*File, error) {
	blobType, raw, err := readBlob(r)
	if err != nil {
		return nil, fmt.Errorf("roundtrip: reading header blob: %w", err)
	}

	if blobType != "OSMHeader" {
		return nil, fmt.Errorf("roundtrip: expected OSMHeader, got %q", blobType)
	}

	header := &pb.HeaderBlock{}
	if err := header.Unmarshal(raw); err != nil {
		return nil, fmt.Errorf("roundtrip: unmarshaling header block: %w", err)
	}

	f := &File{Header: header}

	for {
		blobType, raw, err := readBlob(r)
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("roundtrip: reading data blob: %w", err)
		}

		if blobType != "OSMData" {
			return nil, fmt.Errorf("roundtrip: expected OSMData, got %q", blobType)
		}

		block := &pb.PrimitiveBlock{}
		if err := block.Unmarshal(raw); err != nil {
			return nil, fmt.Errorf("roundtrip: unmarshaling primitive block: %w", err)
		}

		f.Blocks = append(f.Blocks, block)
	}

	return f, nil
}

// readBlob reads one (length-prefixed BlobHeader, Blob) pair and returns
// the blob's type and decompressed payload.
func readBlob(r io.Reader) (string, []byte, error) {
	var lenBuf [4]byte

	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return "", nil, io.EOF
		}

		return "", nil, err
	}

	hdrLen := binary.BigEndian.Uint32(lenBuf[:])

	hdrBytes := make([]byte, hdrLen)
	if _, err := io.ReadFull(r, hdrBytes); err != nil {
		return "", nil, err
	}

	hdr := &pb.BlobHeader{}
	if err := hdr.Unmarshal(hdrBytes); err != nil {
		return "", nil, err
	}

	blobBytes := make([]byte, hdr.Datasize)
	if _, err := io.ReadFull(r, blobBytes); err != nil {
		return "", nil, err
	}

	blob := &pb.Blob{}
	if err := blob.Unmarshal(blobBytes); err != nil {
		return "", nil, err
	}

	raw, err := decompress(blob)
	if err != nil {
		return "", nil, err
	}

	return hdr.Type, raw, nil
}

func decompress(blob *pb.Blob) ([]byte, error) {
	switch {
	case blob.Raw != nil:
		return blob.Raw, nil
	case blob.ZlibData != nil:
		zr, err := zlib.NewReader(bytes.NewReader(blob.ZlibData))
		if err != nil {
			return nil, err
		}

		defer zr.Close()

		return io.ReadAll(zr)
	case blob.LzmaData != nil:
		lr, err := lzma.NewReader(bytes.NewReader(blob.LzmaData))
		if err != nil {
			return nil, err
		}

		return io.ReadAll(lr)
	case blob.Lz4Data != nil:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(blob.Lz4Data)))
	case blob.ZstdData != nil:
		zr, err := zstd.NewReader(bytes.NewReader(blob.ZstdData))
		if err != nil {
			return nil, err
		}

		defer zr.Close()

		return io.ReadAll(zr)
	default:
		return nil, fmt.Errorf("roundtrip: blob has no payload set")
	}
}
