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

package block_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felsokartan/osmpbf/internal/block"
	"github.com/felsokartan/osmpbf/internal/fixture"
	"github.com/felsokartan/osmpbf/internal/pb"
	"github.com/felsokartan/osmpbf/model"
)

func baseConfig() block.Config {
	return block.Config{
		LocationGranularity: 100,
		DateGranularity:     1000,
		MetadataEnabled:     true,
		AddVisible:          true,
		MaxBlobBytes:        32 * 1024 * 1024,
	}
}

// S2: single sparse node.
func TestBuilderSparseNode(t *testing.T) {
	b := block.NewBuilder(baseConfig())

	n := &fixture.NodeEntity{
		ID:   1,
		Lat:  0,
		Lon:  0,
		Tags: map[string]string{"a": "b"},
		Info: &model.Info{Version: 1},
	}

	require.NoError(t, b.AppendSparseNode(n))

	pblock := b.Flush()
	require.NotNil(t, pblock)
	require.Len(t, pblock.Primitivegroup, 1)

	group := pblock.Primitivegroup[0]
	require.Len(t, group.Nodes, 1)

	got := group.Nodes[0]
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, int64(0), got.Lat)
	assert.Equal(t, int64(0), got.Lon)

	require.Len(t, pblock.Stringtable.S, 3)
	assert.Equal(t, []byte(""), pblock.Stringtable.S[0])
	assert.Equal(t, []byte("a"), pblock.Stringtable.S[1])
	assert.Equal(t, []byte("b"), pblock.Stringtable.S[2])
}

// S3: three dense nodes with a shared tag.
func TestBuilderDenseNodesSharedTag(t *testing.T) {
	b := block.NewBuilder(block.Config{LocationGranularity: 100, DateGranularity: 1000})

	nodes := []*fixture.NodeEntity{
		{ID: 1, Lat: 0, Lon: 0, Tags: map[string]string{"k": "v"}},
		{ID: 2, Lat: 1e-7, Lon: 1e-7},
		{ID: 3, Lat: 2e-7, Lon: 2e-7, Tags: map[string]string{"k": "v"}},
	}

	for _, n := range nodes {
		require.NoError(t, b.AppendDenseNode(n))
	}

	pblock := b.Flush()
	require.NotNil(t, pblock)
	require.Len(t, pblock.Primitivegroup, 1)

	dense := pblock.Primitivegroup[0].Dense
	require.NotNil(t, dense)

	assert.Equal(t, []int64{1, 1, 1}, dense.ID)
	assert.Equal(t, []int64{0, 1, 1}, dense.Lon)
	assert.Equal(t, []int64{0, 1, 1}, dense.Lat)

	// "k" and "v" each appear twice -> tie on frequency, "k" < "v" lexicographically.
	require.Len(t, pblock.Stringtable.S, 3)
	assert.Equal(t, []byte(""), pblock.Stringtable.S[0])
	assert.Equal(t, []byte("k"), pblock.Stringtable.S[1])
	assert.Equal(t, []byte("v"), pblock.Stringtable.S[2])

	assert.Equal(t, []int32{1, 2, 0, 0, 1, 2, 0}, dense.KeysVals)
}

// S3b: dense nodes with metadata whose uid/user_sid deltas go negative.
// Regression test: DenseInfo.UID/UserSid are schema sint32 fields and must
// be zigzag-coded like the other signed dense-info columns, or a negative
// delta round-trips as a huge positive varint.
func TestBuilderDenseNodesMetadataNegativeDeltas(t *testing.T) {
	b := block.NewBuilder(block.Config{
		LocationGranularity: 100,
		DateGranularity:     1000,
		MetadataEnabled:     true,
		AddVisible:          true,
	})

	nodes := []*fixture.NodeEntity{
		{
			ID: 1, Lat: 0, Lon: 0,
			Info: &model.Info{Version: 1, UID: 100, User: "zed", Visible: true},
		},
		{
			ID: 2, Lat: 1e-7, Lon: 1e-7,
			Info: &model.Info{Version: 1, UID: 1, User: "amy", Visible: true},
		},
		{
			ID: 3, Lat: 2e-7, Lon: 2e-7,
			Info: &model.Info{Version: 1, UID: 50, User: "amy", Visible: true},
		},
	}

	for _, n := range nodes {
		require.NoError(t, b.AppendDenseNode(n))
	}

	pblock := b.Flush()
	require.NotNil(t, pblock)
	require.Len(t, pblock.Primitivegroup, 1)

	dense := pblock.Primitivegroup[0].Dense
	require.NotNil(t, dense)
	require.NotNil(t, dense.DenseInfo)

	// uid deltas: 100, 1-100=-99, 50-1=49.
	assert.Equal(t, []int32{100, -99, 49}, dense.DenseInfo.UID)

	// "amy" sorts before "zed" on frequency (2 vs 1) so amy -> id 1, zed -> id 2.
	// user_sid deltas over final ids: zed(2), amy(1)-zed(2)=-1, amy(1)-amy(1)=0.
	assert.Equal(t, []int32{2, -1, 0}, dense.DenseInfo.UserSid)

	require.Len(t, dense.DenseInfo.Visible, 3)
	assert.Equal(t, []bool{true, true, true}, dense.DenseInfo.Visible)
}

// S4: way with node refs.
func TestBuilderWayRefs(t *testing.T) {
	b := block.NewBuilder(baseConfig())

	w := &fixture.WayEntity{ID: 10, NodeIDs: []model.ID{100, 102, 101}}

	require.NoError(t, b.AppendWay(w))

	pblock := b.Flush()
	require.Len(t, pblock.Primitivegroup, 1)
	require.Len(t, pblock.Primitivegroup[0].Ways, 1)

	got := pblock.Primitivegroup[0].Ways[0]
	assert.Equal(t, int64(10), got.ID)
	assert.Equal(t, []int64{100, 2, -1}, got.Refs)
}

// S5: relation with roles.
func TestBuilderRelationRoles(t *testing.T) {
	b := block.NewBuilder(baseConfig())

	r := &fixture.RelationEntity{
		ID: 1,
		Members: []model.Member{
			{ID: 5, Type: model.NODE, Role: ""},
			{ID: 7, Type: model.WAY, Role: "inner"},
			{ID: 9, Type: model.RELATION, Role: "inner"},
		},
	}

	require.NoError(t, b.AppendRelation(r))

	pblock := b.Flush()
	require.Len(t, pblock.Primitivegroup, 1)
	require.Len(t, pblock.Primitivegroup[0].Relations, 1)

	got := pblock.Primitivegroup[0].Relations[0]
	assert.Equal(t, []int64{5, 2, 2}, got.Memids)
	assert.Equal(t, []pb.MemberType{pb.MemberNode, pb.MemberWay, pb.MemberRel}, got.Types)

	require.Len(t, pblock.Stringtable.S, 2)
	assert.Equal(t, []byte(""), pblock.Stringtable.S[0])
	assert.Equal(t, []byte("inner"), pblock.Stringtable.S[1])
	assert.Equal(t, []int32{0, 1, 1}, got.RolesSid)
}

func TestBuilderUnknownMemberKindErrors(t *testing.T) {
	b := block.NewBuilder(baseConfig())

	r := &fixture.RelationEntity{
		ID:      1,
		Members: []model.Member{{ID: 1, Type: model.EntityType(99)}},
	}

	err := b.AppendRelation(r)
	require.ErrorIs(t, err, block.ErrUnknownMemberKind)
}

func TestBuilderShouldFlushOnCount(t *testing.T) {
	b := block.NewBuilder(baseConfig())

	for i := 0; i < 3; i++ {
		require.NoError(t, b.AppendSparseNode(&fixture.NodeEntity{ID: model.ID(i)}))
	}

	assert.False(t, b.ShouldFlush(4, 1<<30))
	assert.True(t, b.ShouldFlush(3, 1<<30))
}

func TestBuilderFlushEmptyReturnsNil(t *testing.T) {
	b := block.NewBuilder(baseConfig())
	assert.Nil(t, b.Flush())
}

func TestBuilderResetsBetweenFlushes(t *testing.T) {
	b := block.NewBuilder(baseConfig())

	require.NoError(t, b.AppendWay(&fixture.WayEntity{ID: 1, NodeIDs: []model.ID{10, 11}}))
	first := b.Flush()
	require.NotNil(t, first)
	assert.Equal(t, []int64{10, 1}, first.Primitivegroup[0].Ways[0].Refs)

	require.NoError(t, b.AppendWay(&fixture.WayEntity{ID: 2, NodeIDs: []model.ID{5}}))
	second := b.Flush()
	require.NotNil(t, second)
	assert.Equal(t, []int64{5}, second.Primitivegroup[0].Ways[0].Refs)
	assert.Equal(t, 0, b.Count())
}
