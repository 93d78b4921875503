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

// Package pbf encodes a stream of OSM entities into the binary .osm.pbf
// container format: a block assembly engine that accumulates entities
// into bounded-size blocks, interns strings per block, delta-encodes
// dense layouts, and emits length-prefixed, optionally compressed blob
// records.
//
// The encoder is a strictly single-threaded sequential state machine; it
// owns its in-flight block exclusively and must not be shared across
// goroutines. See Init, Node, Way, Relation, and Finalize.
package pbf

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/felsokartan/osmpbf/internal/block"
	"github.com/felsokartan/osmpbf/internal/framer"
	"github.com/felsokartan/osmpbf/internal/pb"
	"github.com/felsokartan/osmpbf/model"
)

const nanodegreeResolution = 1e9

// Encoder writes a stream of OSM entities to a PBF output as a sequence
// of framed blob records. It is not safe for concurrent use; every
// operation runs to completion before returning, per the single-threaded
// sequential state machine described in its package documentation.
type Encoder struct {
	cfg    encoderOptions
	framer *framer.Framer
	block  *block.Builder

	initialized bool
	finalized   bool
}

// New constructs an Encoder writing framed blob records to w, configured
// with opts.
func New(w io.Writer, opts ...EncoderOption) *Encoder {
	cfg := defaultEncoderConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Encoder{
		cfg:    cfg,
		framer: framer.New(w, cfg.compression),
	}
}

// Init assembles and emits the header blob. It must be called exactly
// once, before any call to Node, Way, or Relation.
func (e *Encoder) Init(meta model.Meta) error {
	if e.initialized {
		return newEncodeError(SchemaError, ErrDoubleInit)
	}

	e.initialized = true

	e.block = block.NewBuilder(block.Config{
		LocationGranularity: e.cfg.locationGranularity,
		DateGranularity:     e.cfg.dateGranularity,
		MetadataEnabled:     e.cfg.metadata,
		AddVisible:          e.resolveAddVisible(meta),
		MaxBlobBytes:        e.cfg.maxBlobBytes,
	})

	required := []string{"OsmSchema-V0.6"}
	if e.cfg.denseNodes {
		required = append(required, "DenseNodes")
	}

	if meta.HasHistory {
		required = append(required, "HistoricalInformation")
	}

	header := &pb.HeaderBlock{
		RequiredFeatures: required,
		Writingprogram:   e.cfg.writingProgram,
		Source:           meta.Source,
	}

	if meta.BoundingBox != nil {
		bb := meta.BoundingBox
		header.Bbox = &pb.HeaderBBox{
			Left:   int64(float64(bb.Left) * nanodegreeResolution),
			Right:  int64(float64(bb.Right) * nanodegreeResolution),
			Top:    int64(float64(bb.Top) * nanodegreeResolution),
			Bottom: int64(float64(bb.Bottom) * nanodegreeResolution),
		}
	}

	if !meta.OsmosisReplicationTimestamp.IsZero() {
		header.OsmosisReplicationTimestamp = meta.OsmosisReplicationTimestamp.Unix()
	}

	header.OsmosisReplicationSequenceNumber = meta.OsmosisReplicationSequenceNumber
	header.OsmosisReplicationBaseURL = meta.OsmosisReplicationBaseURL

	if _, err := e.framer.Emit("OSMHeader", header.Marshal()); err != nil {
		return e.wrapFramerError(err)
	}

	return nil
}

func (e *Encoder) resolveAddVisible(meta model.Meta) bool {
	if e.cfg.addVisible != nil {
		return *e.cfg.addVisible
	}

	return meta.HasHistory
}

// Node appends n, in dense or sparse layout depending on configuration,
// flushing the in-flight block first if a threshold has been reached.
func (e *Encoder) Node(n model.Node) error {
	if err := e.maybeFlushThenIncrement(); err != nil {
		return err
	}

	var err error
	if e.cfg.denseNodes {
		err = e.block.AppendDenseNode(n)
	} else {
		err = e.block.AppendSparseNode(n)
	}

	return e.wrapBlockError(err)
}

// Way appends w, flushing the in-flight block first if a threshold has
// been reached.
func (e *Encoder) Way(w model.Way) error {
	if err := e.maybeFlushThenIncrement(); err != nil {
		return err
	}

	return e.wrapBlockError(e.block.AppendWay(w))
}

// Relation appends r, flushing the in-flight block first if a threshold
// has been reached.
func (e *Encoder) Relation(r model.Relation) error {
	if err := e.maybeFlushThenIncrement(); err != nil {
		return err
	}

	return e.wrapBlockError(e.block.AppendRelation(r))
}

// maybeFlushThenIncrement is the guard described in spec §4.5: it checks
// the entity-count and byte-size thresholds, flushes if either is met,
// and validates that Init has run.
func (e *Encoder) maybeFlushThenIncrement() error {
	if !e.initialized {
		return newEncodeError(SchemaError, ErrNotInitialized)
	}

	if e.block.ShouldFlush(e.cfg.maxBlockEntities, e.cfg.maxBlobBytes) {
		return e.flush()
	}

	return nil
}

func (e *Encoder) flush() error {
	count := e.block.Count()

	primitive := e.block.Flush()
	if primitive == nil {
		return nil
	}

	result, err := e.framer.Emit("OSMData", primitive.Marshal())
	if err != nil {
		return e.wrapFramerError(err)
	}

	e.logFlush(count, result)

	return nil
}

func (e *Encoder) logFlush(entityCount int, result framer.Result) {
	ratio := 1.0
	if result.RawBytes > 0 {
		ratio = float64(result.CompressedBytes) / float64(result.RawBytes)
	}

	e.cfg.logger.Debug("flushed primitive block",
		"entities", entityCount,
		"raw_bytes", humanize.Bytes(uint64(result.RawBytes)),
		"compressed_bytes", humanize.Bytes(uint64(result.CompressedBytes)),
		"compression_ratio", fmt.Sprintf("%.2f", ratio),
	)
}

// Finalize flushes any non-empty in-flight block. It is idempotent: a
// second call is a no-op.
func (e *Encoder) Finalize() error {
	if e.finalized {
		return nil
	}

	e.finalized = true

	if !e.initialized {
		return newEncodeError(SchemaError, ErrNotInitialized)
	}

	return e.flush()
}

func (e *Encoder) wrapBlockError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, block.ErrUnknownMemberKind):
		return newEncodeError(SchemaError, err)
	case errors.Is(err, block.ErrEntityTooLarge):
		return newEncodeError(LimitError, err)
	default:
		return newEncodeError(SchemaError, err)
	}
}

func (e *Encoder) wrapFramerError(err error) error {
	switch {
	case errors.Is(err, framer.ErrCompress):
		return newEncodeError(CompressionError, err)
	case errors.Is(err, framer.ErrBlobTooLarge):
		return newEncodeError(LimitError, err)
	default:
		return newEncodeError(IoError, err)
	}
}
