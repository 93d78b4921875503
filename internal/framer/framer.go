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

// Package framer implements the Blob Framer: it serializes a message,
// optionally compresses the payload, and writes the length-prefixed
// BlobHeader/Blob record pair to the output stream.
package framer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/felsokartan/osmpbf/internal/framer/packers"
	"github.com/felsokartan/osmpbf/internal/pb"
)

// Codec selects which pb.Blob payload variant a Framer writes.
type Codec int

const (
	Raw Codec = iota
	Zlib
	Lzma
	Lz4
	Zstd
)

// ErrWrite wraps any underlying write syscall failure.
var ErrWrite = errors.New("framer: write failed")

// ErrCompress wraps any underlying compression failure.
var ErrCompress = errors.New("framer: compression failed")

// ErrBlobTooLarge is returned when a serialized message's raw size alone
// exceeds the Framer's ceiling (DefaultMaxRawBytes unless changed by
// WithMaxRawBytes).
var ErrBlobTooLarge = errors.New("framer: blob exceeds maximum size")

// DefaultMaxRawBytes is the spec-mandated ceiling on an uncompressed blob
// payload (32 MiB).
const DefaultMaxRawBytes = 32 * 1024 * 1024

// Framer writes framed, optionally compressed blob records to w.
type Framer struct {
	w           io.Writer
	codec       Codec
	maxRawBytes int
}

// New constructs a Framer writing to w using codec, enforcing
// DefaultMaxRawBytes unless overridden by WithMaxRawBytes.
func New(w io.Writer, codec Codec) *Framer {
	return &Framer{w: w, codec: codec, maxRawBytes: DefaultMaxRawBytes}
}

// WithMaxRawBytes overrides the uncompressed payload size ceiling.
func (f *Framer) WithMaxRawBytes(n int) *Framer {
	f.maxRawBytes = n
	return f
}

// Result carries the byte counts of the most recent Emit call, for
// diagnostic logging (spec §7).
type Result struct {
	RawBytes        int
	CompressedBytes int
}

// Emit serializes one blob record of the given type: it packs raw
// (optionally compressing it per the configured codec), frames a
// BlobHeader and Blob, and writes length-prefixed header+payload to the
// output. blobType is "OSMHeader" or "OSMData".
func (f *Framer) Emit(blobType string, raw []byte) (Result, error) {
	if f.maxRawBytes > 0 && len(raw) > f.maxRawBytes {
		return Result{}, fmt.Errorf("%w: %d bytes", ErrBlobTooLarge, len(raw))
	}

	blob, err := f.pack(raw)
	if err != nil {
		return Result{}, err
	}

	blobBytes := blob.Marshal()

	hdr := &pb.BlobHeader{Type: blobType, Datasize: int32(len(blobBytes))}
	hdrBytes := hdr.Marshal()

	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(hdrBytes)))

	if err := f.writeAll(lenBuf[:], hdrBytes, blobBytes); err != nil {
		return Result{}, err
	}

	return Result{RawBytes: len(raw), CompressedBytes: len(blobBytes)}, nil
}

func (f *Framer) writeAll(chunks ...[]byte) error {
	for _, c := range chunks {
		if _, err := f.w.Write(c); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}

	return nil
}

func (f *Framer) pack(raw []byte) (*pb.Blob, error) {
	p := newPacker(f.codec)

	if _, err := p.Write(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompress, err)
	}

	if err := p.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompress, err)
	}

	blob := &pb.Blob{RawSize: int32(len(raw))}
	p.SaveTo(blob)

	return blob, nil
}

// packer is the interface every concrete packer in the packers
// subpackage satisfies.
type packer interface {
	io.WriteCloser
	SaveTo(blob *pb.Blob)
}

func newPacker(c Codec) packer {
	switch c {
	case Raw:
		return packers.NewRawPacker()
	case Zlib:
		return packers.NewZlibPacker()
	case Lzma:
		return packers.NewLzmaPacker()
	case Lz4:
		return packers.NewLz4Packer()
	case Zstd:
		return packers.NewZstdPacker()
	default:
		panic(fmt.Errorf("framer: unknown codec %d", c))
	}
}
