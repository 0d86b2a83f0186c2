// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package ordered provides an insertion-ordered association that refuses
// duplicate keys. It backs every "unique name, declared order" structure in
// the compiler: queue and module declarations, and the targets of a phase.
package ordered

// Map is an insertion-ordered map that rejects duplicate keys.
// The zero value is ready to use. A Map is not safe for concurrent writes.
type Map[K comparable, V any] struct {
	index map[K]int
	keys  []K
	vals  []V
}

// Put appends the pair (k, v). It returns false and leaves the map untouched
// if k is already present.
func (m *Map[K, V]) Put(k K, v V) bool {
	if m.index == nil {
		m.index = make(map[K]int)
	}
	if _, exists := m.index[k]; exists {
		return false
	}
	m.index[k] = len(m.keys)
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, v)
	return true
}

// Get returns the value stored for k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	i, ok := m.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	return m.vals[i], true
}

// Has reports whether k is present.
func (m *Map[K, V]) Has(k K) bool {
	_, ok := m.index[k]
	return ok
}

// Len returns the number of pairs.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns a copy of the values in insertion order.
func (m *Map[K, V]) Values() []V {
	out := make([]V, len(m.vals))
	copy(out, m.vals)
	return out
}
