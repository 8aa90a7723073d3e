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
	"strings"
)

// Set is an ordered set of keys, implemented as a Map whose values are the
// empty struct. It shares the map's buffer layout, ordering guarantees, and
// allocator plumbing, and like Map it is not goroutine-safe.
//
// The zero value for a Set is not usable; construct one with NewSet or
// NewSetFromKeys.
type Set[T cmp.Ordered] struct {
	m Map[T, struct{}]
}

// NewSet constructs a new Set with the specified initial capacity.
func NewSet[T cmp.Ordered](initialCapacity int, options ...option[T, struct{}]) (*Set[T], error) {
	m, err := New[T, struct{}](initialCapacity, options...)
	if err != nil {
		return nil, err
	}
	return &Set[T]{m: *m}, nil
}

// NewSetFromKeys constructs a set holding exactly the given keys, which need
// not be sorted. Duplicate keys are rejected with ErrDuplicateKey and no set
// is produced, matching NewFromSlots.
func NewSetFromKeys[T cmp.Ordered](keys []T, options ...option[T, struct{}]) (*Set[T], error) {
	slots := make([]Slot[T, struct{}], len(keys))
	for i, k := range keys {
		slots[i].Key = k
	}
	m, err := NewFromSlots(slots, options...)
	if err != nil {
		return nil, err
	}
	return &Set[T]{m: *m}, nil
}

// Insert adds key to the set, reporting whether it was newly added. Insert
// returns an error only if the allocator cannot grow the buffer.
func (s *Set[T]) Insert(key T) (added bool, _ error) {
	_, replaced, err := s.m.Put(key, struct{}{})
	if err != nil {
		return false, err
	}
	return !replaced, nil
}

// Remove removes key from the set, reporting whether it was present.
func (s *Set[T]) Remove(key T) bool {
	_, ok := s.m.Delete(key)
	return ok
}

// Contains reports whether the set holds key.
func (s *Set[T]) Contains(key T) bool {
	return s.m.Contains(key)
}

// Len returns the number of keys in the set.
func (s *Set[T]) Len() int {
	return s.m.Len()
}

// Cap returns the number of keys the buffer can hold before growing.
func (s *Set[T]) Cap() int {
	return s.m.Cap()
}

// Clear removes all keys. The capacity and buffer are untouched.
func (s *Set[T]) Clear() {
	s.m.Clear()
}

// Reserve ensures there is capacity for n additional keys.
func (s *Set[T]) Reserve(n int) error {
	return s.m.Reserve(n)
}

// ShrinkToFit reduces the capacity to exactly the current length.
func (s *Set[T]) ShrinkToFit() error {
	return s.m.ShrinkToFit()
}

// Close releases the buffer back to the set's allocator; see Map.Close.
func (s *Set[T]) Close() {
	s.m.Close()
}

// All calls yield for each key in ascending order until yield returns false.
func (s *Set[T]) All(yield func(key T) bool) {
	s.m.Keys(yield)
}

// Backward is All in descending order.
func (s *Set[T]) Backward(yield func(key T) bool) {
	s.m.Backward(func(k T, _ struct{}) bool {
		return yield(k)
	})
}

// Union returns an iterator over the keys present in either set, in
// ascending order. A key present in both is yielded once.
//
// The set algebra iterators walk the two sorted buffers in a single merge
// pass; no intermediate set is built. They snapshot nothing, so neither set
// may be mutated until the iterator is done.
func (s *Set[T]) Union(other *Set[T]) func(yield func(key T) bool) {
	return func(yield func(key T) bool) {
		i, j := uintptr(0), uintptr(0)
		ni, nj := uintptr(s.m.used), uintptr(other.m.used)
		for i < ni && j < nj {
			var k T
			switch a, b := s.m.buf.slots.At(i).Key, other.m.buf.slots.At(j).Key; {
			case a < b:
				k = a
				i++
			case b < a:
				k = b
				j++
			default:
				k = a
				i++
				j++
			}
			if !yield(k) {
				return
			}
		}
		for ; i < ni; i++ {
			if !yield(s.m.buf.slots.At(i).Key) {
				return
			}
		}
		for ; j < nj; j++ {
			if !yield(other.m.buf.slots.At(j).Key) {
				return
			}
		}
	}
}

// Intersection returns an iterator over the keys present in both sets, in
// ascending order.
func (s *Set[T]) Intersection(other *Set[T]) func(yield func(key T) bool) {
	return func(yield func(key T) bool) {
		i, j := uintptr(0), uintptr(0)
		ni, nj := uintptr(s.m.used), uintptr(other.m.used)
		for i < ni && j < nj {
			switch a, b := s.m.buf.slots.At(i).Key, other.m.buf.slots.At(j).Key; {
			case a < b:
				i++
			case b < a:
				j++
			default:
				if !yield(a) {
					return
				}
				i++
				j++
			}
		}
	}
}

// Difference returns an iterator over the keys present in s but not in
// other, in ascending order.
func (s *Set[T]) Difference(other *Set[T]) func(yield func(key T) bool) {
	return func(yield func(key T) bool) {
		i, j := uintptr(0), uintptr(0)
		ni, nj := uintptr(s.m.used), uintptr(other.m.used)
		for i < ni && j < nj {
			switch a, b := s.m.buf.slots.At(i).Key, other.m.buf.slots.At(j).Key; {
			case a < b:
				if !yield(a) {
					return
				}
				i++
			case b < a:
				j++
			default:
				i++
				j++
			}
		}
		for ; i < ni; i++ {
			if !yield(s.m.buf.slots.At(i).Key) {
				return
			}
		}
	}
}

// SymmetricDifference returns an iterator over the keys present in exactly
// one of the two sets, in ascending order.
func (s *Set[T]) SymmetricDifference(other *Set[T]) func(yield func(key T) bool) {
	return func(yield func(key T) bool) {
		i, j := uintptr(0), uintptr(0)
		ni, nj := uintptr(s.m.used), uintptr(other.m.used)
		for i < ni && j < nj {
			switch a, b := s.m.buf.slots.At(i).Key, other.m.buf.slots.At(j).Key; {
			case a < b:
				if !yield(a) {
					return
				}
				i++
			case b < a:
				if !yield(b) {
					return
				}
				j++
			default:
				i++
				j++
			}
		}
		for ; i < ni; i++ {
			if !yield(s.m.buf.slots.At(i).Key) {
				return
			}
		}
		for ; j < nj; j++ {
			if !yield(other.m.buf.slots.At(j).Key) {
				return
			}
		}
	}
}

// EqualSets reports whether two sets hold equal live contents, ignoring
// capacity and allocator differences.
func EqualSets[T cmp.Ordered](a, b *Set[T]) bool {
	return EqualFunc(&a.m, &b.m, func(struct{}, struct{}) bool { return true })
}

// String formats the set's keys in ascending order.
func (s *Set[T]) String() string {
	var sb strings.Builder
	sb.WriteString("ordset[")
	s.All(func(k T) bool {
		if sb.Len() > len("ordset[") {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%v", k)
		return true
	})
	sb.WriteByte(']')
	return sb.String()
}
