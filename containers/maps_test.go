package containers

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashMap(t *testing.T) {
	m := NewHashMap[string, int](0)
	_, replaced := m.Put("a", 1)
	assert.False(t, replaced)
	prev, replaced := m.Put("a", 2)
	assert.True(t, replaced)
	assert.Equal(t, 1, prev)
	m.Put("b", 3)

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.True(t, m.Has("b"))
	assert.Equal(t, map[string]int{"a": 2, "b": 3}, maps.Collect(m.All()))

	v, ok = m.Delete("b")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	_, ok = m.Delete("b")
	assert.False(t, ok)

	m.Clear()
	assert.Zero(t, m.Len())
	assert.False(t, m.Has("a"))
}

type point struct{ x, y int }

func TestIdentityMapUsesPointerIdentity(t *testing.T) {
	m := NewIdentityMap[point, string](0)
	p1 := &point{1, 1}
	p2 := &point{1, 1}

	m.Put(p1, "first")
	m.Put(p2, "second")
	assert.Equal(t, 2, m.Len())

	v, ok := m.Get(p1)
	require.True(t, ok)
	assert.Equal(t, "first", v)
	assert.False(t, m.Has(&point{1, 1}))

	prev, replaced := m.Put(p1, "again")
	assert.True(t, replaced)
	assert.Equal(t, "first", prev)

	_, ok = m.Delete(p2)
	assert.True(t, ok)
	assert.Len(t, maps.Collect(m.All()), 1)

	m.Clear()
	assert.Zero(t, m.Len())
}

func TestSet(t *testing.T) {
	s := NewSet[int](0)
	assert.True(t, s.Add(1))
	assert.False(t, s.Add(1))
	assert.True(t, s.Add(2))
	assert.True(t, s.Contains(2))

	got := slices.Sorted(s.All())
	assert.Equal(t, []int{1, 2}, got)

	assert.True(t, s.Remove(1))
	assert.False(t, s.Remove(1))
	assert.Equal(t, 1, s.Len())

	s.Clear()
	assert.Zero(t, s.Len())
}
