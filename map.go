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

// Package ordmap provides Map and Set, ordered associative containers that
// store their entries in a single contiguous buffer sorted by key, rather
// than in a hash table. Keys are located by binary search over their natural
// order, so there is no hashing and there are no hash collisions, at the
// cost of O(log n) lookup and O(n) shifting on insert and delete.
//
// The backing buffer is obtained from a pluggable Allocator (see
// WithAllocator) and grows geometrically, amortizing repeated insertion to
// O(log n) growth events. Advanced callers can take ownership of the buffer,
// length, capacity, and allocator directly through the raw-parts escape
// hatch (IntoRawParts/FromRawParts), for example to move a map across an
// allocator boundary.
//
// # Layout
//
// A Map's storage is an array of Slot[K,V] of length capacity. The first
// Len() slots are live and hold entries in strictly increasing key order
// with no duplicate keys; the remaining slots hold no live value. Every
// operation either completes with these invariants intact or fails leaving
// the map in its pre-call state.
//
// A Map is NOT goroutine-safe: there is no internal locking. It is safe to
// move across goroutines and to share between goroutines for read-only use,
// provided its Allocator is too.
package ordmap

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

const (
	debug = false

	// invariants gates the self-checks run after every mutation. Enabling
	// it makes operations O(n) and is meant for debugging only.
	invariants = false
)

// Slot holds a key and value.
type Slot[K cmp.Ordered, V any] struct {
	Key   K
	Value V
}

// Map is an ordered map from keys to values with Put, Get, Delete, and All
// operations. Entries are stored by value in a single sorted buffer; borrowed
// views into the buffer (GetPtr results, iteration snapshots) are valid only
// until the next structural mutation.
//
// The zero value for a Map is not usable; construct one with New,
// NewFromSlots, or FromRawParts.
type Map[K cmp.Ordered, V any] struct {
	// The allocator to use for the slot buffer. Set to nil by Close and
	// IntoRawParts, after which the map must not be used.
	allocator Allocator[K, V]
	// buf is the allocator-provided region. The first used slots are live.
	buf  buffer[K, V]
	used int
}

// New constructs a new Map with the specified initial capacity. If
// initialCapacity is 0 the map starts out with zero capacity and grows on
// the first insert. New fails only if the allocator cannot provide the
// initial buffer.
func New[K cmp.Ordered, V any](initialCapacity int, options ...option[K, V]) (*Map[K, V], error) {
	m := &Map[K, V]{
		allocator: defaultAllocator[K, V]{},
	}

	for _, op := range options {
		op.apply(m)
	}

	if initialCapacity > 0 {
		if err := m.buf.alloc(m.allocator, uintptr(initialCapacity)); err != nil {
			return nil, err
		}
	}

	m.checkInvariants()
	return m, nil
}

// Close closes the map, releasing the slot buffer back to its configured
// allocator. It is unnecessary to close a map using the default allocator. It
// is invalid to use a Map after it has been closed, though Close itself is
// idempotent.
func (m *Map[K, V]) Close() {
	if m.allocator == nil {
		return
	}
	m.buf.release(m.allocator)
	m.used = 0
	m.allocator = nil
}

// search binary searches the live slots for key. It returns the index of the
// slot holding key and found=true, or found=false and the index at which a
// slot with key would have to be inserted to keep the buffer sorted. Because
// no two live slots hold equal keys there is never a tie to break.
func (m *Map[K, V]) search(key K) (index uintptr, found bool) {
	lo, hi := uintptr(0), uintptr(m.used)
	for lo < hi {
		mid := lo + (hi-lo)/2
		if m.buf.slots.At(mid).Key < key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < uintptr(m.used) && m.buf.slots.At(lo).Key == key {
		return lo, true
	}
	return lo, false
}

// Put inserts an entry into the map, overwriting the existing value if an
// entry with the same key already exists. It returns the previous value and
// whether one was replaced. An in-place overwrite never moves other entries;
// a fresh insert shifts the entries at larger keys one slot toward the tail.
//
// Put is the only mutation that can reallocate the buffer. It returns an
// error only if the allocator cannot grow the buffer, in which case the map
// is unchanged.
func (m *Map[K, V]) Put(key K, value V) (prev V, replaced bool, _ error) {
	i, found := m.search(key)
	if found {
		s := m.buf.slots.At(i)
		prev, s.Value = s.Value, value
		m.checkInvariants()
		return prev, true, nil
	}

	n := uintptr(m.used)
	if n == m.buf.cap {
		if err := m.buf.grow(m.allocator, grownCapacity(m.buf.cap, n+1), n); err != nil {
			return prev, false, err
		}
	}
	if debug {
		fmt.Printf("put(%v): inserting at %d/%d\n", key, i, m.used)
	}

	copy(m.buf.slots.Slice(i+1, n+1), m.buf.slots.Slice(i, n))
	*m.buf.slots.At(i) = Slot[K, V]{Key: key, Value: value}
	m.used++
	m.checkInvariants()
	return prev, false, nil
}

// Delete removes the entry for the specified key, returning its value and
// whether it was present. It is a noop to delete a non-existent key. The
// capacity is never shrunk by Delete; use ShrinkTo or ShrinkToFit.
func (m *Map[K, V]) Delete(key K) (V, bool) {
	i, found := m.search(key)
	if !found {
		var v V
		return v, false
	}

	v := m.buf.slots.At(i).Value
	n := uintptr(m.used)
	copy(m.buf.slots.Slice(i, n-1), m.buf.slots.Slice(i+1, n))
	// Zero the vacated tail slot so it holds no live value.
	*m.buf.slots.At(n - 1) = Slot[K, V]{}
	m.used--
	m.checkInvariants()
	return v, true
}

// Get retrieves the value from the map for the specified key, returning
// ok=false if the key is not present.
func (m *Map[K, V]) Get(key K) (value V, ok bool) {
	i, found := m.search(key)
	if !found {
		return value, false
	}
	return m.buf.slots.At(i).Value, true
}

// GetPtr returns a pointer to the value stored for key, or nil if the key is
// not present. The pointer is valid only until the next structural mutation
// of the map.
func (m *Map[K, V]) GetPtr(key K) *V {
	i, found := m.search(key)
	if !found {
		return nil
	}
	return &m.buf.slots.At(i).Value
}

// Contains reports whether the map holds key.
func (m *Map[K, V]) Contains(key K) bool {
	_, found := m.search(key)
	return found
}

// At is the indexing form of Get: it returns ErrKeyNotFound for an absent
// key instead of a boolean.
func (m *Map[K, V]) At(key K) (V, error) {
	v, ok := m.Get(key)
	if !ok {
		return v, errors.Wrapf(ErrKeyNotFound, "key %v", key)
	}
	return v, nil
}

// First returns the entry with the smallest key.
func (m *Map[K, V]) First() (key K, value V, ok bool) {
	if m.used == 0 {
		return key, value, false
	}
	s := m.buf.slots.At(0)
	return s.Key, s.Value, true
}

// Last returns the entry with the largest key.
func (m *Map[K, V]) Last() (key K, value V, ok bool) {
	if m.used == 0 {
		return key, value, false
	}
	s := m.buf.slots.At(uintptr(m.used) - 1)
	return s.Key, s.Value, true
}

// PopFirst removes and returns the entry with the smallest key.
func (m *Map[K, V]) PopFirst() (key K, value V, ok bool) {
	if m.used == 0 {
		return key, value, false
	}
	s := *m.buf.slots.At(0)
	n := uintptr(m.used)
	copy(m.buf.slots.Slice(0, n-1), m.buf.slots.Slice(1, n))
	*m.buf.slots.At(n - 1) = Slot[K, V]{}
	m.used--
	m.checkInvariants()
	return s.Key, s.Value, true
}

// PopLast removes and returns the entry with the largest key.
func (m *Map[K, V]) PopLast() (key K, value V, ok bool) {
	if m.used == 0 {
		return key, value, false
	}
	n := uintptr(m.used)
	s := *m.buf.slots.At(n - 1)
	*m.buf.slots.At(n - 1) = Slot[K, V]{}
	m.used--
	m.checkInvariants()
	return s.Key, s.Value, true
}

// Clear removes all entries from the map. The capacity and buffer are
// untouched.
func (m *Map[K, V]) Clear() {
	clear(m.buf.slots.Slice(0, uintptr(m.used)))
	m.used = 0
}

// Reserve ensures there is capacity for n additional entries beyond the
// current length, growing the buffer if necessary. Reserve panics if n is
// negative.
func (m *Map[K, V]) Reserve(n int) error {
	if n < 0 {
		panic(fmt.Sprintf("ordmap: Reserve count %d is negative", n))
	}
	need := uintptr(m.used + n)
	if need <= m.buf.cap {
		return nil
	}
	return m.buf.grow(m.allocator, grownCapacity(m.buf.cap, need), uintptr(m.used))
}

// ShrinkTo reduces the capacity to max(Len(), minCapacity). It is a noop if
// the capacity is already no larger than that. If the allocator fails the
// map remains valid at its prior capacity.
func (m *Map[K, V]) ShrinkTo(minCapacity int) error {
	newCap := uintptr(minCapacity)
	if n := uintptr(m.used); newCap < n {
		newCap = n
	}
	if newCap >= m.buf.cap {
		return nil
	}
	return m.buf.shrink(m.allocator, newCap, uintptr(m.used))
}

// ShrinkToFit reduces the capacity to exactly the current length.
func (m *Map[K, V]) ShrinkToFit() error {
	return m.ShrinkTo(0)
}

// Retain keeps only the entries for which pred returns true, preserving
// their order. pred sees the entries in ascending key order.
func (m *Map[K, V]) Retain(pred func(key K, value V) bool) {
	n := uintptr(m.used)
	var w uintptr
	for i := uintptr(0); i < n; i++ {
		s := m.buf.slots.At(i)
		if pred(s.Key, s.Value) {
			if w != i {
				*m.buf.slots.At(w) = *s
			}
			w++
		}
	}
	clear(m.buf.slots.Slice(w, n))
	m.used = int(w)
	m.checkInvariants()
}

// Append moves every entry of other into m. For keys present in both maps
// the appended entry wins, matching repeated Put. other is left empty with
// its capacity intact. Appending a map to itself is a noop.
func (m *Map[K, V]) Append(other *Map[K, V]) error {
	if other == m {
		return nil
	}
	if err := m.Reserve(other.used); err != nil {
		return err
	}
	for i := uintptr(0); i < uintptr(other.used); i++ {
		s := other.buf.slots.At(i)
		if _, _, err := m.Put(s.Key, s.Value); err != nil {
			return err
		}
	}
	other.Clear()
	return nil
}

// All calls yield for each entry in ascending key order. If yield returns
// false, iteration stops. The pointer and length are snapshotted when All is
// called, so iteration remains valid if the map is grown (reallocated)
// during it; any other concurrent structural mutation invalidates the walk.
func (m *Map[K, V]) All(yield func(key K, value V) bool) {
	slots := m.buf.slots
	n := uintptr(m.used)
	for i := uintptr(0); i < n; i++ {
		s := slots.At(i)
		if !yield(s.Key, s.Value) {
			return
		}
	}
}

// Backward is All in descending key order.
func (m *Map[K, V]) Backward(yield func(key K, value V) bool) {
	slots := m.buf.slots
	for i := uintptr(m.used); i > 0; i-- {
		s := slots.At(i - 1)
		if !yield(s.Key, s.Value) {
			return
		}
	}
}

// Keys calls yield for each key in ascending order.
func (m *Map[K, V]) Keys(yield func(key K) bool) {
	m.All(func(k K, _ V) bool {
		return yield(k)
	})
}

// Values calls yield for each value, ordered by key.
func (m *Map[K, V]) Values(yield func(value V) bool) {
	m.All(func(_ K, v V) bool {
		return yield(v)
	})
}

// Drain calls yield for each entry in ascending key order and leaves the map
// empty afterwards, even if yield stops the walk early. The capacity is
// retained.
func (m *Map[K, V]) Drain(yield func(key K, value V) bool) {
	n := uintptr(m.used)
	for i := uintptr(0); i < n; i++ {
		s := m.buf.slots.At(i)
		if !yield(s.Key, s.Value) {
			break
		}
	}
	m.Clear()
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int {
	return m.used
}

// Cap returns the number of entries the buffer can hold before the next
// insert has to grow it.
func (m *Map[K, V]) Cap() int {
	return int(m.buf.cap)
}

func (m *Map[K, V]) checkInvariants() {
	if invariants {
		if uintptr(m.used) > m.buf.cap {
			panic(fmt.Sprintf("invariant failed: used=%d exceeds capacity=%d", m.used, m.buf.cap))
		}
		for i := uintptr(1); i < uintptr(m.used); i++ {
			if m.buf.slots.At(i-1).Key >= m.buf.slots.At(i).Key {
				panic(fmt.Sprintf("invariant failed: slots %d and %d out of order\n%s",
					i-1, i, m.debugString()))
			}
		}
	}
}

func (m *Map[K, V]) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "capacity=%d  used=%d\n", m.buf.cap, m.used)
	for i := uintptr(0); i < uintptr(m.used); i++ {
		s := m.buf.slots.At(i)
		fmt.Fprintf(&buf, "  %4d: %v=%v\n", i, s.Key, s.Value)
	}
	return buf.String()
}
