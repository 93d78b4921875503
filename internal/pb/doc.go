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

// Package pb implements the wire messages of the OSM PBF schema
// (fileformat.proto, osmformat.proto) by hand, against
// google.golang.org/protobuf/encoding/protowire, rather than through
// protoc-gen-go codegen. Field numbers and wire types below are taken
// directly from the published .proto files shipped alongside this package
// for reference; regenerating with protoc against those files would
// produce wire-compatible output.
//
// Each message is a plain struct with Marshal/Unmarshal methods instead of
// satisfying the full proto.Message/protoreflect surface — the encoder and
// its round-trip test decoder never need reflection, descriptors, or
// text/JSON forms, only deterministic binary framing.
package pb
