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

import "github.com/felsokartan/osmpbf/internal/pb"

// denseState accumulates the column arrays for one block's dense node
// group. A trailing 0 is appended to keysVals after every node, even
// tagless ones, so the rewrite pass stays position-preserving (§4.6).
type denseState struct {
	ids      []int64
	lats     []int64
	lons     []int64
	keysVals []int32

	hasInfo    bool
	versions   []int32
	visibles   []bool
	addVisible bool
	timestamps []int64
	changesets []int64
	uids       []int64
	userSids   []int64 // deltas over interim ids until the rewrite pass

	idTracker      DeltaTracker[int64]
	latTracker     DeltaTracker[int64]
	lonTracker     DeltaTracker[int64]
	tsTracker      DeltaTracker[int64]
	csTracker      DeltaTracker[int64]
	uidTracker     DeltaTracker[int64]
	userSidTracker DeltaTracker[int64]
}

func (d *denseState) appendCoords(id, lat, lon int64) {
	d.ids = append(d.ids, d.idTracker.Update(id))
	d.lats = append(d.lats, d.latTracker.Update(lat))
	d.lons = append(d.lons, d.lonTracker.Update(lon))
}

func (d *denseState) appendTags(keys, vals []uint32) {
	for i := range keys {
		d.keysVals = append(d.keysVals, int32(keys[i]), int32(vals[i]))
	}

	d.keysVals = append(d.keysVals, 0)
}

// appendInfo records one node's metadata columns. userSidInterim is the
// interner's interim id for the node's user string; it is stored as a
// delta over interim ids and rewritten to a delta over final ids during
// the finalize pass (§4.4.7).
func (d *denseState) appendInfo(version int32, visible bool, timestamp, changeset, uid int64, userSidInterim uint32) {
	d.hasInfo = true
	d.versions = append(d.versions, version)

	if d.addVisible {
		d.visibles = append(d.visibles, visible)
	}

	d.timestamps = append(d.timestamps, d.tsTracker.Update(timestamp))
	d.changesets = append(d.changesets, d.csTracker.Update(changeset))
	d.uids = append(d.uids, d.uidTracker.Update(uid))
	d.userSids = append(d.userSids, d.userSidTracker.Update(int64(userSidInterim)))
}

// rewriteUserSids replaces each interim-id delta with a delta of the
// corresponding final id, by maintaining two running sums: one to undo
// the interim deltas, one to rebuild final deltas. See §4.4.7.
func (d *denseState) rewriteUserSids(mapFn func(uint32) uint32) {
	var interimPrev, finalPrev int64

	for i, delta := range d.userSids {
		interimCur := interimPrev + delta
		finalCur := int64(mapFn(uint32(interimCur)))
		d.userSids[i] = finalCur - finalPrev
		interimPrev = interimCur
		finalPrev = finalCur
	}
}

func (d *denseState) rewriteKeysVals(mapFn func(uint32) uint32) {
	for i, v := range d.keysVals {
		if v != 0 {
			d.keysVals[i] = int32(mapFn(uint32(v)))
		}
	}
}

func (d *denseState) toPB() *pb.DenseNodes {
	dn := &pb.DenseNodes{
		ID:       d.ids,
		Lat:      d.lats,
		Lon:      d.lons,
		KeysVals: d.keysVals,
	}

	if d.hasInfo {
		dn.DenseInfo = &pb.DenseInfo{
			Version:   d.versions,
			Timestamp: d.timestamps,
			Changeset: d.changesets,
			UID:       toInt32s(d.uids),
			UserSid:   toInt32s(d.userSids),
			Visible:   d.visibles,
		}
	}

	return dn
}

func toInt32s(vals []int64) []int32 {
	if vals == nil {
		return nil
	}

	out := make([]int32, len(vals))
	for i, v := range vals {
		out[i] = int32(v)
	}

	return out
}
