package collection

// Set is a dense hash-indexed set with swap-delete removal.
// The zero value is not usable, create one with NewSet.
type Set[K comparable] struct {
	items []K
	index map[K]int
}

// NewSet creates an empty set with room for capacity items.
func NewSet[K comparable](capacity int) *Set[K] {
	if capacity < 0 {
		capacity = 0
	}
	return &Set[K]{
		items: make([]K, 0, capacity),
		index: make(map[K]int, capacity),
	}
}

// Add inserts key if absent. Returns false if key was already present.
func (s *Set[K]) Add(key K) bool {
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = len(s.items)
	s.items = append(s.items, key)
	return true
}

// Has reports whether key is in the set.
func (s *Set[K]) Has(key K) bool {
	_, ok := s.index[key]
	return ok
}

// IndexOf returns the dense index of key, or -1 if key is absent.
func (s *Set[K]) IndexOf(key K) int {
	if i, ok := s.index[key]; ok {
		return i
	}
	return absent
}

// At returns the item at dense index i. Negative i counts from the end.
func (s *Set[K]) At(i int) (K, bool) {
	i, ok := resolve(i, len(s.items))
	if !ok {
		var zero K
		return zero, false
	}
	return s.items[i], true
}

// Delete removes key by moving the last item into its slot.
// Returns true if key was present.
func (s *Set[K]) Delete(key K) bool {
	i, ok := s.index[key]
	if !ok {
		return false
	}
	last := len(s.items) - 1
	if i != last {
		s.items[i] = s.items[last]
		s.index[s.items[i]] = i
	}
	var zero K
	s.items[last] = zero
	s.items = s.items[:last]
	delete(s.index, key)
	return true
}

// Len returns the number of items.
func (s *Set[K]) Len() int {
	return len(s.items)
}

// Items returns the dense item slice. The caller must not modify it.
func (s *Set[K]) Items() []K {
	return s.items
}

// Clear removes all items, keeping allocated capacity.
func (s *Set[K]) Clear() {
	clear(s.items)
	s.items = s.items[:0]
	clear(s.index)
}
