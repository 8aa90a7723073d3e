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
	"fmt"

	"github.com/pkg/errors"
)

// buffer owns a contiguous region sized for cap slots, obtained from the
// owning map's Allocator. A zero buffer owns nothing: cap == 0 implies the
// pointer must not be dereferenced. The buffer tracks capacity only; the
// count of initialized slots belongs to the owning Map and is passed in by
// the operations that move slots.
type buffer[K cmp.Ordered, V any] struct {
	slots unsafeSlice[Slot[K, V]]
	cap   uintptr
}

// alloc obtains a fresh region for n slots, replacing the current (empty)
// buffer. Buffers that already hold a region use grow or shrink instead.
func (b *buffer[K, V]) alloc(allocator Allocator[K, V], n uintptr) error {
	v, err := allocator.AllocSlots(int(n))
	if err != nil {
		return errors.Wrapf(ErrAllocation, "allocating %d slots: %v", n, err)
	}
	b.slots = makeUnsafeSlice(v)
	b.cap = n
	return nil
}

// realloc moves the first used slots into a region of newCap slots and
// returns the old region to the allocator. The slots are transferred with the
// builtin copy, i.e. byte for byte, no per-slot logic runs. On failure the
// buffer is left in its original, still-valid state.
func (b *buffer[K, V]) realloc(allocator Allocator[K, V], newCap, used uintptr) error {
	v, err := allocator.AllocSlots(int(newCap))
	if err != nil {
		return errors.Wrapf(ErrAllocation, "reallocating %d to %d slots: %v", b.cap, newCap, err)
	}
	copy(v, b.slots.Slice(0, used))
	if b.cap > 0 {
		allocator.FreeSlots(b.slots.Slice(0, b.cap))
	}
	b.slots = makeUnsafeSlice(v)
	b.cap = newCap
	return nil
}

// grow reallocates to newCap slots, newCap > cap.
func (b *buffer[K, V]) grow(allocator Allocator[K, V], newCap, used uintptr) error {
	if invariants && newCap <= b.cap {
		panic(fmt.Sprintf("invariant failed: grow %d to %d", b.cap, newCap))
	}
	return b.realloc(allocator, newCap, used)
}

// shrink reallocates to newCap slots, used <= newCap < cap. Shrinking to zero
// slots releases the region instead of allocating an empty one.
func (b *buffer[K, V]) shrink(allocator Allocator[K, V], newCap, used uintptr) error {
	if invariants && (newCap >= b.cap || newCap < used) {
		panic(fmt.Sprintf("invariant failed: shrink %d to %d with %d used", b.cap, newCap, used))
	}
	if newCap == 0 {
		b.release(allocator)
		return nil
	}
	return b.realloc(allocator, newCap, used)
}

// release returns the region to the allocator and resets the buffer to its
// zero state, making release a one-shot operation: a second call is a noop.
func (b *buffer[K, V]) release(allocator Allocator[K, V]) {
	if b.cap > 0 {
		allocator.FreeSlots(b.slots.Slice(0, b.cap))
	}
	*b = buffer[K, V]{}
}

// grownCapacity doubles the current capacity, with a floor of one slot for an
// empty buffer, rounding up to need if doubling is insufficient. Doubling
// amortizes repeated insertion to O(log n) growth events.
func grownCapacity(cur, need uintptr) uintptr {
	newCap := 2 * cur
	if newCap == 0 {
		newCap = 1
	}
	if newCap < need {
		newCap = need
	}
	return newCap
}
