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

import "cmp"

// option provide an interface to do work on Map while it is being created.
type option[K cmp.Ordered, V any] interface {
	apply(m *Map[K, V])
}

// Allocator specifies an interface for allocating and releasing the slot
// buffer used by a Map. The default allocator utilizes Go's builtin make()
// and allows the GC to reclaim memory.
//
// An Allocator is stored by reference: the map uses it to obtain and return
// buffers but does not control its lifetime, and several maps may share one.
//
// If the allocator is manually managing memory and requires that slots be
// freed then Map.Close must be called in order to ensure FreeSlots is called
// for the final buffer.
type Allocator[K cmp.Ordered, V any] interface {
	// AllocSlots should return a slice equivalent to make([]Slot[K,V], n).
	// Returning an error aborts the operation that needed the buffer,
	// leaving the map in its prior state; the request is not retried.
	AllocSlots(n int) ([]Slot[K, V], error)

	// FreeSlots can optionally release the memory associated with the
	// supplied slice that is guaranteed to have been allocated by
	// AllocSlots.
	FreeSlots(v []Slot[K, V])
}

type defaultAllocator[K cmp.Ordered, V any] struct{}

func (defaultAllocator[K, V]) AllocSlots(n int) ([]Slot[K, V], error) {
	return make([]Slot[K, V], n), nil
}

func (defaultAllocator[K, V]) FreeSlots(v []Slot[K, V]) {
}

type allocatorOption[K cmp.Ordered, V any] struct {
	allocator Allocator[K, V]
}

func (op allocatorOption[K, V]) apply(m *Map[K, V]) {
	m.allocator = op.allocator
}

// WithAllocator is an option for specify the Allocator to use for a Map[K,V].
func WithAllocator[K cmp.Ordered, V any](allocator Allocator[K, V]) option[K, V] {
	return allocatorOption[K, V]{allocator}
}
