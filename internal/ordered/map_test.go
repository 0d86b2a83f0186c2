package ordered

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_PreservesInsertionOrder(t *testing.T) {
	var m Map[string, int]
	for i, k := range []string{"zeta", "alpha", "mu"} {
		require.True(t, m.Put(k, i))
	}

	assert.Equal(t, []string{"zeta", "alpha", "mu"}, m.Keys())
	assert.Equal(t, []int{0, 1, 2}, m.Values())
	assert.Equal(t, 3, m.Len())
}

func TestMap_RejectsDuplicate(t *testing.T) {
	var m Map[string, string]
	require.True(t, m.Put("a", "first"))
	assert.False(t, m.Put("a", "second"))

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, "first", v, "a rejected Put must not overwrite")
	assert.Equal(t, 1, m.Len())
}

func TestMap_ZeroValue(t *testing.T) {
	var m Map[int, bool]
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Keys())
	assert.False(t, m.Has(1))
	_, ok := m.Get(1)
	assert.False(t, ok)
}

func TestMap_CopiesAreIndependent(t *testing.T) {
	var m Map[string, int]
	m.Put("a", 1)
	keys := m.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"a"}, m.Keys())
}
