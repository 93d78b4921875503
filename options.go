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

package pbf

import (
	"log/slog"

	"github.com/felsokartan/osmpbf/internal/framer"
)

// DefaultCompressionCodec is ZLIB, matching the vast majority of
// .osm.pbf files in the wild.
const DefaultCompressionCodec = framer.Zlib

const (
	defaultMaxBlockEntities = 8000
	defaultMaxBlobBytes     = framer.DefaultMaxRawBytes * 95 / 100

	defaultLocationGranularity = 100
	defaultDateGranularity     = 1000
)

// encoderOptions provides optional configuration parameters for Encoder
// construction.
type encoderOptions struct {
	denseNodes bool
	metadata   bool
	addVisible *bool // nil means "default to Meta.HasHistory at Init"

	compression         framer.Codec
	locationGranularity int32
	dateGranularity     int32
	writingProgram      string

	maxBlockEntities int
	maxBlobBytes     int

	logger *slog.Logger
}

// EncoderOption configures how we set up the encoder.
type EncoderOption func(*encoderOptions)

// WithDenseNodes toggles the dense column node layout. Default true.
func WithDenseNodes(enabled bool) EncoderOption {
	return func(o *encoderOptions) { o.denseNodes = enabled }
}

// WithMetadata toggles info block emission. Default true.
func WithMetadata(enabled bool) EncoderOption {
	return func(o *encoderOptions) { o.metadata = enabled }
}

// WithVisibleFlag toggles emission of the visible field when metadata is
// on. Default: true iff Meta.HasHistory is true at Init.
func WithVisibleFlag(enabled bool) EncoderOption {
	return func(o *encoderOptions) { o.addVisible = &enabled }
}

// WithCompression toggles blob payload compression: true selects Zlib,
// false stores payloads raw. Default true.
func WithCompression(enabled bool) EncoderOption {
	return func(o *encoderOptions) {
		if enabled {
			o.compression = framer.Zlib
		} else {
			o.compression = framer.Raw
		}
	}
}

// WithCompressionCodec selects the blob payload codec. Default Zlib.
func WithCompressionCodec(codec framer.Codec) EncoderOption {
	return func(o *encoderOptions) { o.compression = codec }
}

// WithLocationGranularity sets nanodegrees per storage unit. Default 100.
func WithLocationGranularity(granularity int32) EncoderOption {
	return func(o *encoderOptions) { o.locationGranularity = granularity }
}

// WithDateGranularity sets milliseconds per storage unit. Default 1000.
func WithDateGranularity(granularity int32) EncoderOption {
	return func(o *encoderOptions) { o.dateGranularity = granularity }
}

// WithWritingProgram sets the writing program string of the PBF header.
func WithWritingProgram(program string) EncoderOption {
	return func(o *encoderOptions) { o.writingProgram = program }
}

// WithMaxBlockEntities overrides the entity-count flush threshold.
// Default 8000.
func WithMaxBlockEntities(n int) EncoderOption {
	return func(o *encoderOptions) { o.maxBlockEntities = n }
}

// WithMaxBlobBytes overrides the byte-size flush threshold. Default 95%
// of the 32 MiB spec maximum.
func WithMaxBlobBytes(n int) EncoderOption {
	return func(o *encoderOptions) { o.maxBlobBytes = n }
}

// WithLogger sets the *slog.Logger diagnostic messages are written to.
// Default slog.Default().
func WithLogger(logger *slog.Logger) EncoderOption {
	return func(o *encoderOptions) { o.logger = logger }
}

// defaultEncoderConfig provides a default configuration for encoders.
var defaultEncoderConfig = encoderOptions{
	denseNodes: true,
	metadata:   true,

	compression:         DefaultCompressionCodec,
	locationGranularity: defaultLocationGranularity,
	dateGranularity:     defaultDateGranularity,

	maxBlockEntities: defaultMaxBlockEntities,
	maxBlobBytes:     defaultMaxBlobBytes,

	logger: slog.Default(),
}
