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

	"github.com/cespare/xxhash/v2"
)

// Equal reports whether two maps hold equal live contents. Only the ordered
// sequence of entries is compared: two maps with equal entries but different
// capacities or allocators are equal.
func Equal[K cmp.Ordered, V comparable](a, b *Map[K, V]) bool {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}

// EqualFunc is Equal with a caller-supplied value comparison, for value
// types that are not comparable or that need semantic equality.
func EqualFunc[K cmp.Ordered, V1, V2 any](a *Map[K, V1], b *Map[K, V2], eq func(V1, V2) bool) bool {
	if a.used != b.used {
		return false
	}
	for i := uintptr(0); i < uintptr(a.used); i++ {
		sa, sb := a.buf.slots.At(i), b.buf.slots.At(i)
		if sa.Key != sb.Key || !eq(sa.Value, sb.Value) {
			return false
		}
	}
	return true
}

// Hash digests the map's live contents in ascending key order. sum is called
// once per entry to feed it into the digest, since an arbitrary value type
// has no canonical byte encoding. Spare capacity and the allocator never
// contribute, so maps that are Equal hash equal regardless of their buffers.
func Hash[K cmp.Ordered, V any](m *Map[K, V], sum func(d *xxhash.Digest, key K, value V)) uint64 {
	d := xxhash.New()
	m.All(func(k K, v V) bool {
		sum(d, k, v)
		return true
	})
	return d.Sum64()
}

// String formats the map's entries in key order, in the style of the builtin
// map.
func (m *Map[K, V]) String() string {
	var sb strings.Builder
	sb.WriteString("ordmap[")
	m.All(func(k K, v V) bool {
		if sb.Len() > len("ordmap[") {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%v:%v", k, v)
		return true
	})
	sb.WriteByte(']')
	return sb.String()
}
