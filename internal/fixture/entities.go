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

// Package fixture provides concrete, in-memory implementations of the
// model collaborator interfaces, adapted from the value structs the
// decoder-era of this codebase used to expose directly. They exist only
// to drive tests; production callers supply their own entity graph.
package fixture

import "github.com/felsokartan/osmpbf/model"

// NodeEntity is a concrete model.Node.
type NodeEntity struct {
	ID   model.ID
	Lat  model.Degrees
	Lon  model.Degrees
	Tags map[string]string
	Info *model.Info
}

func (n *NodeEntity) GetID() model.ID           { return n.ID }
func (n *NodeEntity) GetTags() map[string]string { return n.Tags }
func (n *NodeEntity) GetInfo() *model.Info      { return n.Info }
func (n *NodeEntity) GetLat() model.Degrees     { return n.Lat }
func (n *NodeEntity) GetLon() model.Degrees     { return n.Lon }

// WayEntity is a concrete model.Way.
type WayEntity struct {
	ID      model.ID
	NodeIDs []model.ID
	Tags    map[string]string
	Info    *model.Info
}

func (w *WayEntity) GetID() model.ID           { return w.ID }
func (w *WayEntity) GetTags() map[string]string { return w.Tags }
func (w *WayEntity) GetInfo() *model.Info       { return w.Info }
func (w *WayEntity) GetNodeIDs() []model.ID     { return w.NodeIDs }

// RelationEntity is a concrete model.Relation.
type RelationEntity struct {
	ID      model.ID
	Members []model.Member
	Tags    map[string]string
	Info    *model.Info
}

func (r *RelationEntity) GetID() model.ID            { return r.ID }
func (r *RelationEntity) GetTags() map[string]string { return r.Tags }
func (r *RelationEntity) GetInfo() *model.Info       { return r.Info }
func (r *RelationEntity) GetMembers() []model.Member { return r.Members }
