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

package roundtrip

import (
	"time"

	"github.com/felsokartan/osmpbf/internal/fixture"
	"github.com/felsokartan/osmpbf/internal/pb"
	"github.com/felsokartan/osmpbf/model"
)

// Entities reconstructs every node, way, and relation carried by block,
// undoing delta encoding, column interleaving, string interning, and
// coordinate/time scaling.
func Entities(pblock *pb.PrimitiveBlock) (nodes []*fixture.NodeEntity, ways []*fixture.WayEntity, relations []*fixture.RelationEntity) {
	strings := tableStrings(pblock.Stringtable)
	granularity := pblock.Granularity
	dateGranularity := pblock.DateGranularity

	for _, group := range pblock.Primitivegroup {
		for _, n := range group.Nodes {
			nodes = append(nodes, sparseNode(n, strings, granularity, dateGranularity))
		}

		if group.Dense != nil {
			nodes = append(nodes, denseNodes(group.Dense, strings, granularity, dateGranularity)...)
		}

		for _, w := range group.Ways {
			ways = append(ways, way(w, strings, dateGranularity))
		}

		for _, r := range group.Relations {
			relations = append(relations, relation(r, strings, dateGranularity))
		}
	}

	return nodes, ways, relations
}

func tableStrings(st *pb.StringTable) []string {
	if st == nil {
		return nil
	}

	out := make([]string, len(st.S))
	for i, b := range st.S {
		out[i] = string(b)
	}

	return out
}

func unscale(v int64, granularity int32) float64 {
	return float64(v) * float64(granularity) / 1e9
}

func unscaleTime(v int64, dateGranularity int32) time.Time {
	millis := float64(v) * float64(dateGranularity)
	return time.Unix(0, int64(millis)*int64(time.Millisecond)).UTC()
}

func tagsOf(keys, vals []uint32, strings []string) map[string]string {
	if len(keys) == 0 {
		return nil
	}

	tags := make(map[string]string, len(keys))
	for i := range keys {
		tags[strings[keys[i]]] = strings[vals[i]]
	}

	return tags
}

func infoOf(info *pb.Info, strings []string, dateGranularity int32) *model.Info {
	if info == nil {
		return nil
	}

	return &model.Info{
		Version:   info.Version,
		UID:       model.UID(info.UID),
		Timestamp: unscaleTime(info.Timestamp, dateGranularity),
		Changeset: info.Changeset,
		User:      strings[info.UserSid],
		Visible:   !info.HasVisible || info.Visible,
	}
}

func sparseNode(n *pb.Node, strings []string, granularity, dateGranularity int32) *fixture.NodeEntity {
	return &fixture.NodeEntity{
		ID:   model.ID(n.ID),
		Lat:  model.Degrees(unscale(n.Lat, granularity)),
		Lon:  model.Degrees(unscale(n.Lon, granularity)),
		Tags: tagsOf(n.Keys, n.Vals, strings),
		Info: infoOf(n.Info, strings, dateGranularity),
	}
}

func denseNodes(d *pb.DenseNodes, strings []string, granularity, dateGranularity int32) []*fixture.NodeEntity {
	out := make([]*fixture.NodeEntity, len(d.ID))

	var idSum, latSum, lonSum int64

	kvIdx := 0

	var tsSum, csSum, uidSum, userSidSum int64

	for i := range d.ID {
		idSum += d.ID[i]
		latSum += d.Lat[i]
		lonSum += d.Lon[i]

		tags := make(map[string]string)

		for kvIdx < len(d.KeysVals) && d.KeysVals[kvIdx] != 0 {
			k := d.KeysVals[kvIdx]
			v := d.KeysVals[kvIdx+1]
			tags[strings[k]] = strings[v]
			kvIdx += 2
		}

		kvIdx++ // skip terminator

		if len(tags) == 0 {
			tags = nil
		}

		var info *model.Info

		if d.DenseInfo != nil {
			tsSum += d.DenseInfo.Timestamp[i]
			csSum += d.DenseInfo.Changeset[i]
			uidSum += int64(d.DenseInfo.UID[i])
			userSidSum += int64(d.DenseInfo.UserSid[i])

			visible := true
			if len(d.DenseInfo.Visible) > i {
				visible = d.DenseInfo.Visible[i]
			}

			info = &model.Info{
				Version:   d.DenseInfo.Version[i],
				UID:       model.UID(uidSum),
				Timestamp: unscaleTime(tsSum, dateGranularity),
				Changeset: csSum,
				User:      strings[userSidSum],
				Visible:   visible,
			}
		}

		out[i] = &fixture.NodeEntity{
			ID:   model.ID(idSum),
			Lat:  model.Degrees(unscale(latSum, granularity)),
			Lon:  model.Degrees(unscale(lonSum, granularity)),
			Tags: tags,
			Info: info,
		}
	}

	return out
}

func way(w *pb.Way, strings []string, dateGranularity int32) *fixture.WayEntity {
	refs := make([]model.ID, len(w.Refs))

	var sum int64
	for i, d := range w.Refs {
		sum += d
		refs[i] = model.ID(sum)
	}

	return &fixture.WayEntity{
		ID:      model.ID(w.ID),
		NodeIDs: refs,
		Tags:    tagsOf(w.Keys, w.Vals, strings),
		Info:    infoOf(w.Info, strings, dateGranularity),
	}
}

func relation(r *pb.Relation, strings []string, dateGranularity int32) *fixture.RelationEntity {
	members := make([]model.Member, len(r.Memids))

	var sum int64

	for i, d := range r.Memids {
		sum += d

		var kind model.EntityType

		switch r.Types[i] {
		case pb.MemberNode:
			kind = model.NODE
		case pb.MemberWay:
			kind = model.WAY
		case pb.MemberRel:
			kind = model.RELATION
		}

		members[i] = model.Member{
			ID:   model.ID(sum),
			Type: kind,
			Role: strings[r.RolesSid[i]],
		}
	}

	return &fixture.RelationEntity{
		ID:      model.ID(r.ID),
		Members: members,
		Tags:    tagsOf(r.Keys, r.Vals, strings),
		Info:    infoOf(r.Info, strings, dateGranularity),
	}
}
