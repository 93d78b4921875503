// Copyright 2017-25 the original author or authors.
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

package model

import (
	"time"
)

// Meta carries the file-level metadata the header block is built from. It is
// the accessor set described by spec §6: an optional bounding box plus an
// input-file-type classifier indicating whether the stream carries history.
type Meta struct {
	BoundingBox *BoundingBox `json:"bounding_box,omitempty"`
	HasHistory  bool         `json:"has_history,omitempty"`

	// Source and the Osmosis replication fields are optional enrichments of
	// the published header block schema beyond what the encoder requires;
	// the facade writes them through when non-zero.
	Source                           string    `json:"source,omitempty"`
	OsmosisReplicationTimestamp      time.Time `json:"osmosis_replication_timestamp,omitempty"`
	OsmosisReplicationSequenceNumber int64     `json:"osmosis_replication_sequence_number,omitempty"`
	OsmosisReplicationBaseURL        string    `json:"osmosis_replication_base_url,omitempty"`
}
