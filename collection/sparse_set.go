package collection

import "fmt"

// CodeFunc returns the small non-negative integer code identifying key.
// Distinct live keys must have distinct codes.
type CodeFunc[K any] func(K) int

// SparseSet is a dense set indexed by integer code.
//
// The sparse slice maps a code to a dense index and grows to the largest
// code ever added, filling new slots with an absent marker. Lookups never
// hash, at the cost of memory proportional to the largest code.
type SparseSet[K any] struct {
	dense  []K
	sparse []int
	code   CodeFunc[K]
}

// NewSparseSet creates an empty sparse set using code to index keys.
func NewSparseSet[K any](code CodeFunc[K]) *SparseSet[K] {
	return &SparseSet[K]{code: code}
}

// slot returns the dense index for code c, or absent.
func (s *SparseSet[K]) slot(c int) int {
	if c < 0 || c >= len(s.sparse) {
		return absent
	}
	return s.sparse[c]
}

// grow extends the sparse index so that code c is addressable.
// Grows by doubling or to c+1, whichever is larger.
func (s *SparseSet[K]) grow(c int) {
	oldLen := len(s.sparse)
	newLen := max(oldLen*2, c+1)

	sparse := make([]int, newLen)
	copy(sparse, s.sparse)
	for i := oldLen; i < newLen; i++ {
		sparse[i] = absent
	}
	s.sparse = sparse
}

// Add inserts key if absent. Returns false if key was already present.
// Panics if the key's code is negative.
func (s *SparseSet[K]) Add(key K) bool {
	c := s.code(key)
	if c < 0 {
		panic(fmt.Sprintf("collection: negative sparse code %d", c))
	}
	if s.slot(c) != absent {
		return false
	}
	if c >= len(s.sparse) {
		s.grow(c)
	}
	s.sparse[c] = len(s.dense)
	s.dense = append(s.dense, key)
	return true
}

// Has reports whether key is in the set.
func (s *SparseSet[K]) Has(key K) bool {
	return s.slot(s.code(key)) != absent
}

// IndexOf returns the dense index of key, or -1 if key is absent.
func (s *SparseSet[K]) IndexOf(key K) int {
	return s.slot(s.code(key))
}

// At returns the key at dense index i. Negative i counts from the end.
func (s *SparseSet[K]) At(i int) (K, bool) {
	i, ok := resolve(i, len(s.dense))
	if !ok {
		var zero K
		return zero, false
	}
	return s.dense[i], true
}

// Delete removes key by moving the last key into its slot.
// Returns true if key was present.
func (s *SparseSet[K]) Delete(key K) bool {
	c := s.code(key)
	i := s.slot(c)
	if i == absent {
		return false
	}
	last := len(s.dense) - 1
	if i != last {
		moved := s.dense[last]
		s.dense[i] = moved
		s.sparse[s.code(moved)] = i
	}
	var zero K
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.sparse[c] = absent
	return true
}

// Len returns the number of keys.
func (s *SparseSet[K]) Len() int {
	return len(s.dense)
}

// Items returns the dense key slice. The caller must not modify it.
func (s *SparseSet[K]) Items() []K {
	return s.dense
}

// Clear removes all keys. The sparse index keeps its size.
func (s *SparseSet[K]) Clear() {
	for _, k := range s.dense {
		s.sparse[s.code(k)] = absent
	}
	clear(s.dense)
	s.dense = s.dense[:0]
}
