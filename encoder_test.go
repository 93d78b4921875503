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

package pbf_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pbf "github.com/felsokartan/osmpbf"
	"github.com/felsokartan/osmpbf/internal/fixture"
	"github.com/felsokartan/osmpbf/internal/roundtrip"
	"github.com/felsokartan/osmpbf/model"
)

// S1: empty file.
func TestEncoderEmptyFile(t *testing.T) {
	var buf bytes.Buffer

	enc := pbf.New(&buf)
	require.NoError(t, enc.Init(model.Meta{}))
	require.NoError(t, enc.Finalize())

	file, err := roundtrip.Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"OsmSchema-V0.6", "DenseNodes"}, file.Header.RequiredFeatures)
	assert.Empty(t, file.Blocks)
}

// S2: single sparse node.
func TestEncoderSparseNode(t *testing.T) {
	var buf bytes.Buffer

	enc := pbf.New(&buf, pbf.WithDenseNodes(false))
	require.NoError(t, enc.Init(model.Meta{}))

	require.NoError(t, enc.Node(&fixture.NodeEntity{
		ID:   1,
		Lat:  0,
		Lon:  0,
		Tags: map[string]string{"a": "b"},
		Info: &model.Info{Version: 1},
	}))
	require.NoError(t, enc.Finalize())

	file, err := roundtrip.Decode(&buf)
	require.NoError(t, err)

	assert.NotContains(t, file.Header.RequiredFeatures, "DenseNodes")
	require.Len(t, file.Blocks, 1)

	group := file.Blocks[0].Primitivegroup[0]
	require.Len(t, group.Nodes, 1)
	assert.Equal(t, int64(0), group.Nodes[0].Lat)
	assert.Equal(t, int64(0), group.Nodes[0].Lon)

	strs := file.Blocks[0].Stringtable.S
	require.Len(t, strs, 3)
	assert.Equal(t, []byte(""), strs[0])
	assert.Equal(t, []byte("a"), strs[1])
	assert.Equal(t, []byte("b"), strs[2])
}

// S3: three dense nodes sharing one tag.
func TestEncoderDenseNodesSharedTag(t *testing.T) {
	var buf bytes.Buffer

	enc := pbf.New(&buf)
	require.NoError(t, enc.Init(model.Meta{}))

	nodes := []*fixture.NodeEntity{
		{ID: 1, Lat: 0, Lon: 0, Tags: map[string]string{"k": "v"}},
		{ID: 2, Lat: 1e-7, Lon: 1e-7},
		{ID: 3, Lat: 2e-7, Lon: 2e-7, Tags: map[string]string{"k": "v"}},
	}

	for _, n := range nodes {
		require.NoError(t, enc.Node(n))
	}

	require.NoError(t, enc.Finalize())

	file, err := roundtrip.Decode(&buf)
	require.NoError(t, err)

	dense := file.Blocks[0].Primitivegroup[0].Dense
	require.NotNil(t, dense)
	assert.Equal(t, []int64{1, 1, 1}, dense.ID)
	assert.Equal(t, []int64{0, 1, 1}, dense.Lon)
	assert.Equal(t, []int64{0, 1, 1}, dense.Lat)
}

// S4: way with node refs.
func TestEncoderWay(t *testing.T) {
	var buf bytes.Buffer

	enc := pbf.New(&buf)
	require.NoError(t, enc.Init(model.Meta{}))
	require.NoError(t, enc.Way(&fixture.WayEntity{ID: 10, NodeIDs: []model.ID{100, 102, 101}}))
	require.NoError(t, enc.Finalize())

	file, err := roundtrip.Decode(&buf)
	require.NoError(t, err)

	got := file.Blocks[0].Primitivegroup[0].Ways[0]
	assert.Equal(t, []int64{100, 2, -1}, got.Refs)
}

// S5: relation with roles.
func TestEncoderRelation(t *testing.T) {
	var buf bytes.Buffer

	enc := pbf.New(&buf)
	require.NoError(t, enc.Init(model.Meta{}))
	require.NoError(t, enc.Relation(&fixture.RelationEntity{
		ID: 1,
		Members: []model.Member{
			{ID: 5, Type: model.NODE, Role: ""},
			{ID: 7, Type: model.WAY, Role: "inner"},
			{ID: 9, Type: model.RELATION, Role: "inner"},
		},
	}))
	require.NoError(t, enc.Finalize())

	file, err := roundtrip.Decode(&buf)
	require.NoError(t, err)

	got := file.Blocks[0].Primitivegroup[0].Relations[0]
	assert.Equal(t, []int64{5, 2, 2}, got.Memids)
}

// S6: 8,001 nodes trips the flush boundary into two blocks.
func TestEncoderFlushBoundary(t *testing.T) {
	var buf bytes.Buffer

	enc := pbf.New(&buf)
	require.NoError(t, enc.Init(model.Meta{}))

	const total = 8001

	for i := 0; i < total; i++ {
		require.NoError(t, enc.Node(&fixture.NodeEntity{ID: model.ID(i + 1)}))
	}

	require.NoError(t, enc.Finalize())

	file, err := roundtrip.Decode(&buf)
	require.NoError(t, err)
	require.Len(t, file.Blocks, 2)

	assert.Len(t, file.Blocks[0].Primitivegroup[0].Dense.ID, 8000)
	assert.Len(t, file.Blocks[1].Primitivegroup[0].Dense.ID, 1)
}

// Property 1: round-trip, ignoring grouping order and scaling rounding.
func TestRoundTripEquivalence(t *testing.T) {
	var buf bytes.Buffer

	enc := pbf.New(&buf, pbf.WithDenseNodes(false))
	require.NoError(t, enc.Init(model.Meta{HasHistory: true}))

	node := &fixture.NodeEntity{
		ID:   42,
		Lat:  51.5,
		Lon:  -0.12,
		Tags: map[string]string{"amenity": "cafe"},
		Info: &model.Info{Version: 3, UID: 7, Changeset: 99, User: "alice", Visible: true},
	}
	require.NoError(t, enc.Node(node))

	way := &fixture.WayEntity{ID: 1, NodeIDs: []model.ID{10, 20, 30}, Tags: map[string]string{"highway": "residential"}}
	require.NoError(t, enc.Way(way))

	rel := &fixture.RelationEntity{
		ID: 2,
		Members: []model.Member{
			{ID: 1, Type: model.WAY, Role: "outer"},
		},
		Tags: map[string]string{"type": "multipolygon"},
	}
	require.NoError(t, enc.Relation(rel))

	require.NoError(t, enc.Finalize())

	file, err := roundtrip.Decode(&buf)
	require.NoError(t, err)

	var gotNodes []*fixture.NodeEntity

	var gotWays []*fixture.WayEntity

	var gotRelations []*fixture.RelationEntity

	for _, block := range file.Blocks {
		n, w, r := roundtrip.Entities(block)
		gotNodes = append(gotNodes, n...)
		gotWays = append(gotWays, w...)
		gotRelations = append(gotRelations, r...)
	}

	require.Len(t, gotNodes, 1)
	assert.Equal(t, node.ID, gotNodes[0].ID)
	assert.InDelta(t, float64(node.Lat), float64(gotNodes[0].Lat), 1e-7)
	assert.InDelta(t, float64(node.Lon), float64(gotNodes[0].Lon), 1e-7)
	assert.Equal(t, node.Tags, gotNodes[0].Tags)
	assert.Equal(t, node.Info.User, gotNodes[0].Info.User)

	require.Len(t, gotWays, 1)
	assert.Equal(t, way.NodeIDs, gotWays[0].NodeIDs)

	require.Len(t, gotRelations, 1)
	assert.Equal(t, rel.Members[0].ID, gotRelations[0].Members[0].ID)
	assert.Equal(t, rel.Members[0].Role, gotRelations[0].Members[0].Role)
}

// Property 7: determinism across independent runs.
func TestDeterministicOutput(t *testing.T) {
	build := func() []byte {
		var buf bytes.Buffer

		enc := pbf.New(&buf, pbf.WithWritingProgram("felsokartan-osmpbf"))
		require.NoError(t, enc.Init(model.Meta{}))
		require.NoError(t, enc.Node(&fixture.NodeEntity{ID: 1, Tags: map[string]string{"a": "1", "b": "2", "c": "3"}}))
		require.NoError(t, enc.Finalize())

		return buf.Bytes()
	}

	assert.Equal(t, build(), build())
}

func TestDoubleInitFails(t *testing.T) {
	var buf bytes.Buffer

	enc := pbf.New(&buf)
	require.NoError(t, enc.Init(model.Meta{}))
	require.Error(t, enc.Init(model.Meta{}))
}

func TestNodeBeforeInitFails(t *testing.T) {
	var buf bytes.Buffer

	enc := pbf.New(&buf)
	require.Error(t, enc.Node(&fixture.NodeEntity{ID: 1}))
}

func TestFinalizeIdempotent(t *testing.T) {
	var buf bytes.Buffer

	enc := pbf.New(&buf)
	require.NoError(t, enc.Init(model.Meta{}))
	require.NoError(t, enc.Finalize())
	require.NoError(t, enc.Finalize())
}

func TestUnknownMemberKindFails(t *testing.T) {
	var buf bytes.Buffer

	enc := pbf.New(&buf)
	require.NoError(t, enc.Init(model.Meta{}))

	err := enc.Relation(&fixture.RelationEntity{
		ID:      1,
		Members: []model.Member{{ID: 1, Type: model.EntityType(42)}},
	})
	require.Error(t, err)
}
