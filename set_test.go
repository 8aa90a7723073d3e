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
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func (s *Set[T]) toSlice() []T {
	var r []T
	s.All(func(k T) bool {
		r = append(r, k)
		return true
	})
	return r
}

func mustNewSet[T cmp.Ordered](t *testing.T, keys ...T) *Set[T] {
	t.Helper()
	s, err := NewSetFromKeys(keys)
	require.NoError(t, err)
	return s
}

func TestSetBasic(t *testing.T) {
	s, err := NewSet[int](0)
	require.NoError(t, err)
	require.EqualValues(t, 0, s.Len())

	added, err := s.Insert(2)
	require.NoError(t, err)
	require.True(t, added)
	added, err = s.Insert(1)
	require.NoError(t, err)
	require.True(t, added)
	added, err = s.Insert(2)
	require.NoError(t, err)
	require.False(t, added)

	require.Equal(t, 2, s.Len())
	require.True(t, s.Contains(1))
	require.True(t, s.Contains(2))
	require.False(t, s.Contains(3))
	require.Equal(t, []int{1, 2}, s.toSlice())

	require.True(t, s.Remove(1))
	require.False(t, s.Remove(1))
	require.Equal(t, []int{2}, s.toSlice())

	s.Clear()
	require.EqualValues(t, 0, s.Len())
	s.Close()
}

func TestSetFromKeys(t *testing.T) {
	s := mustNewSet(t, 3, 1, 2)
	require.Equal(t, []int{1, 2, 3}, s.toSlice())

	_, err := NewSetFromKeys([]int{1, 2, 1})
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestSetBackward(t *testing.T) {
	s := mustNewSet(t, 1, 2, 3)
	var r []int
	s.Backward(func(k int) bool {
		r = append(r, k)
		return true
	})
	require.Equal(t, []int{3, 2, 1}, r)
}

func TestSetAlgebra(t *testing.T) {
	a := mustNewSet(t, 1, 2, 3, 4)
	b := mustNewSet(t, 3, 4, 5, 6)

	collect := func(iter func(yield func(int) bool)) []int {
		var r []int
		iter(func(k int) bool {
			r = append(r, k)
			return true
		})
		return r
	}

	require.Equal(t, []int{1, 2, 3, 4, 5, 6}, collect(a.Union(b)))
	require.Equal(t, []int{3, 4}, collect(a.Intersection(b)))
	require.Equal(t, []int{1, 2}, collect(a.Difference(b)))
	require.Equal(t, []int{5, 6}, collect(b.Difference(a)))
	require.Equal(t, []int{1, 2, 5, 6}, collect(a.SymmetricDifference(b)))
	require.Equal(t, []int{1, 2, 5, 6}, collect(b.SymmetricDifference(a)))

	empty := mustNewSet[int](t)
	require.Equal(t, []int{1, 2, 3, 4}, collect(a.Union(empty)))
	require.Nil(t, collect(a.Intersection(empty)))
	require.Equal(t, []int{1, 2, 3, 4}, collect(a.Difference(empty)))
	require.Equal(t, []int{1, 2, 3, 4}, collect(a.SymmetricDifference(empty)))

	// Early stop.
	var partial []int
	a.Union(b)(func(k int) bool {
		partial = append(partial, k)
		return len(partial) < 2
	})
	require.Equal(t, []int{1, 2}, partial)
}

func TestSetAlgebraRandom(t *testing.T) {
	for iter := 0; iter < 100; iter++ {
		ea, eb := make(map[int]struct{}), make(map[int]struct{})
		a, err := NewSet[int](0)
		require.NoError(t, err)
		b, err := NewSet[int](0)
		require.NoError(t, err)
		for i := 0; i < 50; i++ {
			k := rand.Intn(40)
			a.Insert(k)
			ea[k] = struct{}{}
			k = rand.Intn(40)
			b.Insert(k)
			eb[k] = struct{}{}
		}

		sorted := func(m map[int]struct{}) []int {
			var r []int
			for k := range m {
				r = append(r, k)
			}
			sort.Ints(r)
			return r
		}
		collect := func(iter func(yield func(int) bool)) []int {
			var r []int
			iter(func(k int) bool {
				r = append(r, k)
				return true
			})
			return r
		}

		union := make(map[int]struct{})
		inter := make(map[int]struct{})
		diff := make(map[int]struct{})
		sym := make(map[int]struct{})
		for k := range ea {
			union[k] = struct{}{}
			if _, ok := eb[k]; ok {
				inter[k] = struct{}{}
			} else {
				diff[k] = struct{}{}
				sym[k] = struct{}{}
			}
		}
		for k := range eb {
			union[k] = struct{}{}
			if _, ok := ea[k]; !ok {
				sym[k] = struct{}{}
			}
		}

		require.Equal(t, sorted(union), collect(a.Union(b)))
		require.Equal(t, sorted(inter), collect(a.Intersection(b)))
		require.Equal(t, sorted(diff), collect(a.Difference(b)))
		require.Equal(t, sorted(sym), collect(a.SymmetricDifference(b)))
	}
}

func TestEqualSets(t *testing.T) {
	a := mustNewSet(t, 1, 2, 3)
	b := mustNewSet(t, 3, 2, 1)
	require.True(t, EqualSets(a, b))

	b.Insert(4)
	require.False(t, EqualSets(a, b))
	b.Remove(4)
	b.Remove(3)
	require.False(t, EqualSets(a, b))
}

func TestSetString(t *testing.T) {
	s := mustNewSet(t, 2, 1, 3)
	require.Equal(t, "ordset[1 2 3]", s.String())
	require.Equal(t, "ordset[]", mustNewSet[int](t).String())
}

func TestSetJSON(t *testing.T) {
	s := mustNewSet(t, 2, 1, 3)
	data, err := s.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t, `[1,2,3]`, string(data))

	s2, err := NewSet[int](0)
	require.NoError(t, err)
	require.NoError(t, s2.UnmarshalJSON(data))
	require.True(t, EqualSets(s, s2))

	// Duplicates in the input collapse.
	require.NoError(t, s2.UnmarshalJSON([]byte(`[5,5,5]`)))
	require.Equal(t, []int{5}, s2.toSlice())
}
