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

package block

import (
	"errors"
	"sort"
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/felsokartan/osmpbf/internal/pb"
	"github.com/felsokartan/osmpbf/model"
)

// epochSeconds treats the Go zero time.Time (no timestamp supplied) as
// the Unix epoch rather than year 1, so that an entity with no explicit
// timestamp scales to 0.
func epochSeconds(t time.Time) float64 {
	if t.IsZero() {
		return 0
	}

	return float64(t.Unix())
}

// ErrUnknownMemberKind is returned by AppendRelation when a member's
// EntityType is none of NODE, WAY, or RELATION.
var ErrUnknownMemberKind = errors.New("block: unknown relation member kind")

// ErrEntityTooLarge is returned by an append method when a single
// entity's serialized size alone would exceed maxBlobBytes.
var ErrEntityTooLarge = errors.New("block: entity exceeds maximum blob size")

// Config holds the builder's granularity and metadata settings, set once
// at construction from the encoder's options.
type Config struct {
	LocationGranularity int32
	DateGranularity     int32
	MetadataEnabled     bool
	AddVisible          bool
	MaxBlobBytes        int
}

// Builder is the Primitive Block Builder: it accumulates nodes, ways, and
// relations into one in-flight block, recording strings into its
// interner and tracking block-scoped deltas, until Flush finalizes the
// interner, rewrites interim string ids, and returns the assembled
// protobuf message.
type Builder struct {
	cfg Config

	interner StringInterner

	sparseNodes []*pb.Node
	dense       *denseState
	ways        []*pb.Way
	relations   []*pb.Relation

	count        int
	sizeEstimate int
}

// NewBuilder constructs an empty Builder.
func NewBuilder(cfg Config) *Builder {
	return &Builder{cfg: cfg}
}

// Count reports the number of entities appended since the last flush.
func (b *Builder) Count() int { return b.count }

// SizeEstimate reports the accumulated serialized-byte estimate since the
// last flush.
func (b *Builder) SizeEstimate() int { return b.sizeEstimate }

// ShouldFlush reports whether count or size has reached the configured
// threshold.
func (b *Builder) ShouldFlush(maxEntities, maxBytes int) bool {
	return b.count >= maxEntities || b.sizeEstimate >= maxBytes
}

func (b *Builder) buildInfo(info *model.Info) *pb.Info {
	if !b.cfg.MetadataEnabled || info == nil {
		return nil
	}

	out := &pb.Info{
		Version:   info.Version,
		Timestamp: ScaleTime(epochSeconds(info.Timestamp), b.cfg.DateGranularity),
		Changeset: info.Changeset,
		UID:       int32(info.UID),
		UserSid:   int32(b.interner.Record(info.User)),
	}

	if b.cfg.AddVisible {
		out.Visible = info.Visible
		out.HasVisible = true
	}

	return out
}

// tagIDs records each tag's key and value into the interner and returns
// their interim ids, in ascending key order so that output is
// deterministic regardless of the caller's map iteration order.
func tagIDs(interner *StringInterner, tags map[string]string) ([]uint32, []uint32) {
	if len(tags) == 0 {
		return nil, nil
	}

	sortedKeys := make([]string, 0, len(tags))
	for k := range tags {
		sortedKeys = append(sortedKeys, k)
	}

	sort.Strings(sortedKeys)

	keys := make([]uint32, 0, len(tags))
	vals := make([]uint32, 0, len(tags))

	for _, k := range sortedKeys {
		keys = append(keys, interner.Record(k))
		vals = append(vals, interner.Record(tags[k]))
	}

	return keys, vals
}

// AppendSparseNode appends n in the sparse (per-record) node layout.
func (b *Builder) AppendSparseNode(n model.Node) error {
	keys, vals := tagIDs(&b.interner, n.GetTags())

	node := &pb.Node{
		ID:   int64(n.GetID()),
		Keys: keys,
		Vals: vals,
		Info: b.buildInfo(n.GetInfo()),
		Lat:  ScaleLonLat(float64(n.GetLat()), b.cfg.LocationGranularity),
		Lon:  ScaleLonLat(float64(n.GetLon()), b.cfg.LocationGranularity),
	}

	size := len(node.Marshal())
	if b.cfg.MaxBlobBytes > 0 && size > b.cfg.MaxBlobBytes {
		return ErrEntityTooLarge
	}

	b.sparseNodes = append(b.sparseNodes, node)
	b.sizeEstimate += size
	b.count++

	return nil
}

// AppendDenseNode appends n to the block's dense node columns, creating
// the dense group on first use.
func (b *Builder) AppendDenseNode(n model.Node) error {
	if b.dense == nil {
		b.dense = &denseState{addVisible: b.cfg.MetadataEnabled && b.cfg.AddVisible}
	}

	lat := ScaleLonLat(float64(n.GetLat()), b.cfg.LocationGranularity)
	lon := ScaleLonLat(float64(n.GetLon()), b.cfg.LocationGranularity)

	b.dense.appendCoords(int64(n.GetID()), lat, lon)

	keys, vals := tagIDs(&b.interner, n.GetTags())
	b.dense.appendTags(keys, vals)

	if b.cfg.MetadataEnabled {
		if info := n.GetInfo(); info != nil {
			ts := ScaleTime(epochSeconds(info.Timestamp), b.cfg.DateGranularity)
			userSid := b.interner.Record(info.User)
			b.dense.appendInfo(info.Version, info.Visible, ts, info.Changeset, int64(info.UID), userSid)
		}
	}

	last := len(b.dense.lats) - 1
	b.sizeEstimate += denseSizeHint(b.dense.lats[last], b.dense.lons[last], len(keys))
	b.count++

	return nil
}

// AppendWay appends w with a fresh, way-local delta tracker over its
// node refs.
func (b *Builder) AppendWay(w model.Way) error {
	keys, vals := tagIDs(&b.interner, w.GetTags())

	refIDs := w.GetNodeIDs()

	var refTracker DeltaTracker[int64]

	refs := make([]int64, len(refIDs))
	for i, id := range refIDs {
		refs[i] = refTracker.Update(int64(id))
	}

	way := &pb.Way{
		ID:   int64(w.GetID()),
		Keys: keys,
		Vals: vals,
		Info: b.buildInfo(w.GetInfo()),
		Refs: refs,
	}

	size := len(way.Marshal())
	if b.cfg.MaxBlobBytes > 0 && size > b.cfg.MaxBlobBytes {
		return ErrEntityTooLarge
	}

	b.ways = append(b.ways, way)
	b.sizeEstimate += size
	b.count++

	return nil
}

// AppendRelation appends r with a fresh, relation-local delta tracker
// over its member ids.
func (b *Builder) AppendRelation(r model.Relation) error {
	keys, vals := tagIDs(&b.interner, r.GetTags())

	members := r.GetMembers()

	var memTracker DeltaTracker[int64]

	rolesSid := make([]int32, len(members))
	memids := make([]int64, len(members))
	types := make([]pb.MemberType, len(members))

	for i, m := range members {
		rolesSid[i] = int32(b.interner.Record(m.Role))
		memids[i] = memTracker.Update(int64(m.ID))

		switch m.Type {
		case model.NODE:
			types[i] = pb.MemberNode
		case model.WAY:
			types[i] = pb.MemberWay
		case model.RELATION:
			types[i] = pb.MemberRel
		default:
			return ErrUnknownMemberKind
		}
	}

	rel := &pb.Relation{
		ID:       int64(r.GetID()),
		Keys:     keys,
		Vals:     vals,
		Info:     b.buildInfo(r.GetInfo()),
		RolesSid: rolesSid,
		Memids:   memids,
		Types:    types,
	}

	size := len(rel.Marshal())
	if b.cfg.MaxBlobBytes > 0 && size > b.cfg.MaxBlobBytes {
		return ErrEntityTooLarge
	}

	b.relations = append(b.relations, rel)
	b.sizeEstimate += size
	b.count++

	return nil
}

// Flush finalizes the interner, rewrites every interim string id in the
// block to its final id (§4.4.7), assembles the primitive block, and
// resets the builder's state for the next block. It returns nil if the
// block has no contents.
func (b *Builder) Flush() *pb.PrimitiveBlock {
	if b.count == 0 {
		b.reset()
		return nil
	}

	var table [][]byte

	b.interner.FinalizeInto(&table)

	for _, n := range b.sparseNodes {
		n.Keys = mapAll(&b.interner, n.Keys)
		n.Vals = mapAll(&b.interner, n.Vals)
		rewriteInfoUserSid(&b.interner, n.Info)
	}

	for _, w := range b.ways {
		w.Keys = mapAll(&b.interner, w.Keys)
		w.Vals = mapAll(&b.interner, w.Vals)
		rewriteInfoUserSid(&b.interner, w.Info)
	}

	for _, r := range b.relations {
		r.Keys = mapAll(&b.interner, r.Keys)
		r.Vals = mapAll(&b.interner, r.Vals)
		rewriteInfoUserSid(&b.interner, r.Info)

		for i, sid := range r.RolesSid {
			r.RolesSid[i] = int32(b.interner.Map(uint32(sid)))
		}
	}

	var groups []*pb.PrimitiveGroup

	if len(b.sparseNodes) > 0 {
		groups = append(groups, &pb.PrimitiveGroup{Nodes: b.sparseNodes})
	}

	if b.dense != nil {
		b.dense.rewriteKeysVals(b.interner.Map)
		b.dense.rewriteUserSids(b.interner.Map)
		groups = append(groups, &pb.PrimitiveGroup{Dense: b.dense.toPB()})
	}

	if len(b.ways) > 0 {
		groups = append(groups, &pb.PrimitiveGroup{Ways: b.ways})
	}

	if len(b.relations) > 0 {
		groups = append(groups, &pb.PrimitiveGroup{Relations: b.relations})
	}

	block := &pb.PrimitiveBlock{
		Stringtable:     &pb.StringTable{S: table},
		Primitivegroup:  groups,
		Granularity:     b.cfg.LocationGranularity,
		DateGranularity: b.cfg.DateGranularity,
	}

	b.reset()

	return block
}

func (b *Builder) reset() {
	b.interner.Reset()
	b.sparseNodes = nil
	b.dense = nil
	b.ways = nil
	b.relations = nil
	b.count = 0
	b.sizeEstimate = 0
}

func mapAll(interner *StringInterner, ids []uint32) []uint32 {
	for i, id := range ids {
		ids[i] = interner.Map(id)
	}

	return ids
}

func rewriteInfoUserSid(interner *StringInterner, info *pb.Info) {
	if info == nil {
		return
	}

	info.UserSid = int32(interner.Map(uint32(info.UserSid)))
}

// denseSizeHint estimates the serialized byte contribution of one dense
// node: varint-encoded lat/lon deltas plus two varints per tag.
func denseSizeHint(lat, lon int64, tagCount int) int {
	size := protowire.SizeVarint(protowire.EncodeZigZag(lat)) + protowire.SizeVarint(protowire.EncodeZigZag(lon))
	size += tagCount * 4

	return size
}
