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

import (
	"cmp"
	"unsafe"
)

// RawParts fully describes a Map's storage: a pointer to the slot buffer,
// the number of live slots, the buffer's capacity in slots, and the
// allocator that produced the buffer.
//
// RawParts is the one place where the type system cannot enforce the map's
// invariants; see FromRawParts for the contract.
type RawParts[K cmp.Ordered, V any] struct {
	Ptr       unsafe.Pointer
	Len       int
	Cap       int
	Allocator Allocator[K, V]
}

// IntoRawParts disassembles the map into its constituent parts and
// relinquishes ownership of the buffer to the caller. Afterwards the map is
// empty and detached from its allocator: it must not be used again, except
// that Close remains safe and is a noop.
func (m *Map[K, V]) IntoRawParts() RawParts[K, V] {
	parts := RawParts[K, V]{
		Ptr:       m.buf.slots.ptr,
		Len:       m.used,
		Cap:       int(m.buf.cap),
		Allocator: m.allocator,
	}
	m.buf = buffer[K, V]{}
	m.used = 0
	m.allocator = nil
	return parts
}

// FromRawParts reconstructs a map from previously disassembled parts without
// any validation. The caller MUST guarantee that Ptr refers to a buffer of
// Cap slots obtained from Allocator, and that its first Len slots hold live
// entries in strictly increasing key order with no duplicates; otherwise
// behavior is undefined. A nil Allocator selects the default allocator.
//
// Reassembling the exact parts produced by IntoRawParts always satisfies the
// contract and yields a map observably identical to the original.
func FromRawParts[K cmp.Ordered, V any](parts RawParts[K, V]) *Map[K, V] {
	allocator := parts.Allocator
	if allocator == nil {
		allocator = defaultAllocator[K, V]{}
	}
	m := &Map[K, V]{
		allocator: allocator,
		buf: buffer[K, V]{
			slots: unsafeSlice[Slot[K, V]]{ptr: parts.Ptr},
			cap:   uintptr(parts.Cap),
		},
		used: parts.Len,
	}
	m.checkInvariants()
	return m
}
