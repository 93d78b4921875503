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

package pbf

import (
	"errors"
	"fmt"
)

// Kind enumerates the error categories an Encoder can fail with.
type Kind int

const (
	// IoError wraps any write syscall failure.
	IoError Kind = iota

	// CompressionError wraps any deflate/lzma/lz4/zstd failure.
	CompressionError

	// SchemaError covers an unknown relation-member kind, emitting before
	// Init, or calling Init twice.
	SchemaError

	// LimitError covers a single entity whose serialized size alone
	// exceeds the configured maximum blob size.
	LimitError
)

func (k Kind) String() string {
	switch k {
	case IoError:
		return "io"
	case CompressionError:
		return "compression"
	case SchemaError:
		return "schema"
	case LimitError:
		return "limit"
	default:
		return "unknown"
	}
}

// EncodeError is the single error type every Encoder operation can
// return. All errors are fatal: the encoder instance must not be reused
// after one is returned.
type EncodeError struct {
	Kind Kind
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("pbf: %s error: %v", e.Kind, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

func newEncodeError(kind Kind, err error) *EncodeError {
	return &EncodeError{Kind: kind, Err: err}
}

// ErrDoubleInit is returned by Init when called more than once.
var ErrDoubleInit = errors.New("pbf: init called more than once")

// ErrNotInitialized is returned by Node, Way, and Relation when called
// before Init.
var ErrNotInitialized = errors.New("pbf: encoder used before init")
