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
	"encoding/json"
)

// jsonSlot is the wire form of a slot. A JSON object cannot represent the
// map directly since object keys must be strings, so maps encode as an
// ordered array of these.
type jsonSlot[K cmp.Ordered, V any] struct {
	Key   K `json:"k"`
	Value V `json:"v"`
}

// MarshalJSON encodes the map as an array of {"k": key, "v": value} objects
// in ascending key order.
func (m *Map[K, V]) MarshalJSON() ([]byte, error) {
	out := make([]jsonSlot[K, V], 0, m.used)
	m.All(func(k K, v V) bool {
		out = append(out, jsonSlot[K, V]{Key: k, Value: v})
		return true
	})
	return json.Marshal(out)
}

// UnmarshalJSON replaces the map's contents with the entries of an array in
// the MarshalJSON form. The array need not be sorted; entries are applied as
// repeated Put calls, so a later duplicate key overwrites an earlier one.
// The map must have been constructed with New before unmarshaling into it.
func (m *Map[K, V]) UnmarshalJSON(data []byte) error {
	var in []jsonSlot[K, V]
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	m.Clear()
	if err := m.Reserve(len(in)); err != nil {
		return err
	}
	for _, s := range in {
		if _, _, err := m.Put(s.Key, s.Value); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON encodes the set as an array of keys in ascending order.
func (s *Set[T]) MarshalJSON() ([]byte, error) {
	out := make([]T, 0, s.m.used)
	s.All(func(k T) bool {
		out = append(out, k)
		return true
	})
	return json.Marshal(out)
}

// UnmarshalJSON replaces the set's contents with the keys of an array.
// Duplicate keys collapse to one, matching repeated Insert. The set must
// have been constructed with NewSet before unmarshaling into it.
func (s *Set[T]) UnmarshalJSON(data []byte) error {
	var in []T
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s.m.Clear()
	if err := s.m.Reserve(len(in)); err != nil {
		return err
	}
	for _, k := range in {
		if _, err := s.Insert(k); err != nil {
			return err
		}
	}
	return nil
}
