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

// Package model declares the collaborator interfaces the encoder consumes.
// The in-memory OSM entity graph itself (readers, caches, tag lists,
// bounding boxes) is an external collaborator; this package owns only the
// capability sets those collaborators must expose. See the REDESIGN FLAGS
// note on replacing base-class inheritance with capability sets.
package model

import "time"

// UID is the primary key for a user.
type UID int32

// ID is the primary key of an entity.
type ID int64

// EntityType is an enumeration of PBF entity types.
type EntityType int32

const (
	// NODE denotes that the member is a node.
	NODE EntityType = iota

	// WAY denotes that the member is a way.
	WAY

	// RELATION denotes that the member is a relation.
	RELATION
)

func (t EntityType) String() string {
	switch t {
	case NODE:
		return "node"
	case WAY:
		return "way"
	case RELATION:
		return "relation"
	default:
		return "unknown"
	}
}

// Info is the metadata common to Node, Way, and Relation. A nil *Info means
// no metadata is emitted for that entity, regardless of whether metadata
// emission is configured on.
type Info struct {
	Version   int32
	UID       UID
	Timestamp time.Time
	Changeset int64
	User      string
	Visible   bool
}

// Entity is the accessor set shared by Node, Way, and Relation: an id, a tag
// list, and optional metadata. The encoder takes each kind through its own
// method (Node, Way, Relation) and block builder append routine, so nothing
// dispatches on an Entity value.
type Entity interface {
	GetID() ID
	GetTags() map[string]string
	GetInfo() *Info
}

// Node represents a specific point on the earth's surface defined by its
// latitude and longitude.
type Node interface {
	Entity
	GetLat() Degrees
	GetLon() Degrees
}

// Way is an ordered list of between 2 and 2,000 nodes that define a polyline.
type Way interface {
	Entity
	GetNodeIDs() []ID
}

// Member is one element of a Relation's member list.
type Member struct {
	ID   ID
	Type EntityType
	Role string
}

// Relation documents a relationship between two or more entities (nodes,
// ways, and/or other relations).
type Relation interface {
	Entity
	GetMembers() []Member
}
