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
	"slices"

	"github.com/pkg/errors"
)

// NewFromSlots constructs a map holding exactly the given slots, which are
// typically written as a literal and need not be sorted. Unlike repeated
// Put, where a later entry for a key overwrites an earlier one, a one-shot
// batch with duplicate keys is rejected with ErrDuplicateKey and no map is
// produced. The input slice is not modified.
func NewFromSlots[K cmp.Ordered, V any](slots []Slot[K, V], options ...option[K, V]) (*Map[K, V], error) {
	m, err := New[K, V](len(slots), options...)
	if err != nil {
		return nil, err
	}

	n := uintptr(len(slots))
	dst := m.buf.slots.Slice(0, n)
	copy(dst, slots)
	slices.SortFunc(dst, func(a, b Slot[K, V]) int {
		return cmp.Compare(a.Key, b.Key)
	})

	for i := 1; i < len(dst); i++ {
		if dst[i-1].Key == dst[i].Key {
			key := dst[i].Key
			m.Close()
			return nil, errors.Wrapf(ErrDuplicateKey, "key %v", key)
		}
	}

	m.used = len(slots)
	m.checkInvariants()
	return m, nil
}
