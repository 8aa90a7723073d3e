// Copyright 2026 The Cockroach Authors
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

package ordmap

import "github.com/pkg/errors"

// ErrAllocation is returned when the configured Allocator cannot satisfy an
// allocate, grow, or shrink request. The failing operation leaves the map in
// its prior state and the request is never retried internally.
var ErrAllocation = errors.New("ordmap: allocation failed")

// ErrDuplicateKey is returned by bulk construction (NewFromSlots,
// NewSetFromKeys) when two input entries carry equal keys. No partial
// collection is produced.
var ErrDuplicateKey = errors.New("ordmap: duplicate key")

// ErrKeyNotFound is returned by At for keys not present in the map. Get and
// Contains report absence through their boolean results instead.
var ErrKeyNotFound = errors.New("ordmap: key not found")
