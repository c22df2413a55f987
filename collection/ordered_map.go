package collection

// OrderedMap is a dense key-value table with swap-delete removal.
//
// Keys and values live in parallel slices; a Go map resolves a key to its
// dense index. The zero value is not usable, create one with NewOrderedMap.
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values []V
	index  map[K]int
}

// NewOrderedMap creates an empty map with room for capacity entries.
func NewOrderedMap[K comparable, V any](capacity int) *OrderedMap[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	return &OrderedMap[K, V]{
		keys:   make([]K, 0, capacity),
		values: make([]V, 0, capacity),
		index:  make(map[K]int, capacity),
	}
}

// Add inserts key with value if key is absent.
// Returns false, leaving the stored value untouched, if key is present.
func (m *OrderedMap[K, V]) Add(key K, value V) bool {
	if _, ok := m.index[key]; ok {
		return false
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
	return true
}

// Set inserts key or replaces the value stored for it.
func (m *OrderedMap[K, V]) Set(key K, value V) {
	if i, ok := m.index[key]; ok {
		m.values[i] = value
		return
	}
	m.Add(key, value)
}

// Has reports whether key is present.
func (m *OrderedMap[K, V]) Has(key K) bool {
	_, ok := m.index[key]
	return ok
}

// Get returns the value stored for key.
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	i, ok := m.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return m.values[i], true
}

// IndexOf returns the dense index of key, or -1 if key is absent.
func (m *OrderedMap[K, V]) IndexOf(key K) int {
	if i, ok := m.index[key]; ok {
		return i
	}
	return absent
}

// At returns the value at dense index i. Negative i counts from the end.
func (m *OrderedMap[K, V]) At(i int) (V, bool) {
	i, ok := resolve(i, len(m.values))
	if !ok {
		var zero V
		return zero, false
	}
	return m.values[i], true
}

// KeyAt returns the key at dense index i. Negative i counts from the end.
func (m *OrderedMap[K, V]) KeyAt(i int) (K, bool) {
	i, ok := resolve(i, len(m.keys))
	if !ok {
		var zero K
		return zero, false
	}
	return m.keys[i], true
}

// Delete removes key by moving the last entry into its slot.
// Returns true if key was present.
func (m *OrderedMap[K, V]) Delete(key K) bool {
	i, ok := m.index[key]
	if !ok {
		return false
	}
	last := len(m.keys) - 1
	if i != last {
		m.keys[i] = m.keys[last]
		m.values[i] = m.values[last]
		m.index[m.keys[i]] = i
	}

	var (
		zeroK K
		zeroV V
	)
	m.keys[last] = zeroK
	m.values[last] = zeroV
	m.keys = m.keys[:last]
	m.values = m.values[:last]
	delete(m.index, key)
	return true
}

// Len returns the number of entries.
func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

// Keys returns the dense key slice. The caller must not modify it.
func (m *OrderedMap[K, V]) Keys() []K {
	return m.keys
}

// Values returns the dense value slice. The caller must not modify it.
func (m *OrderedMap[K, V]) Values() []V {
	return m.values
}

// Clear removes all entries, keeping allocated capacity.
func (m *OrderedMap[K, V]) Clear() {
	clear(m.keys)
	clear(m.values)
	m.keys = m.keys[:0]
	m.values = m.values[:0]
	clear(m.index)
}
