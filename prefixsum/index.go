// Package prefixsum provides a growable Fenwick tree (binary indexed tree)
// answering prefix sums over per-slot integer weights.
//
// Point updates and prefix queries are O(log n). The domain is 0-based from
// the caller's point of view; the tree itself is stored 1-based.
package prefixsum

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrOutOfRange is returned when a query addresses a slot outside the
// populated domain.
var ErrOutOfRange = errors.New("prefixsum: index out of range")

// minCapacity is the smallest capacity allocated on growth.
const minCapacity = 8

// Index maintains cumulative sums over a sequence of weights.
//
// The logical size is one past the highest slot ever written. Queries at or
// beyond the logical size fail with ErrOutOfRange. Clear zeroes the weights
// but keeps the logical size, so previously written slots keep answering 0.
//
// The zero value is an empty Index ready for use.
type Index struct {
	// tree is the 1-based Fenwick array; tree[0] is unused.
	tree []int
	size int
}

// New creates an empty Index with room for capacity slots.
func New(capacity int) *Index {
	if capacity < 0 {
		capacity = 0
	}
	return &Index{tree: make([]int, capacity+1)}
}

// Cap returns the number of slots the tree can hold without growing.
func (x *Index) Cap() int {
	if len(x.tree) == 0 {
		return 0
	}
	return len(x.tree) - 1
}

// Len returns the logical size: one past the highest slot ever written.
func (x *Index) Len() int {
	return x.size
}

// Add adds delta to slot i, growing the tree if needed.
// Panics if i is negative.
func (x *Index) Add(i, delta int) {
	if i < 0 {
		panic(fmt.Sprintf("prefixsum: negative index %d", i))
	}
	if i >= x.Cap() {
		x.grow(i + 1)
	}
	if i >= x.size {
		x.size = i + 1
	}
	for k := i + 1; k < len(x.tree); k += k & -k {
		x.tree[k] += delta
	}
}

// Set assigns value to slot i. Slots past the logical size count as 0.
func (x *Index) Set(i, value int) {
	if i < 0 {
		panic(fmt.Sprintf("prefixsum: negative index %d", i))
	}
	if d := value - x.at(i); d != 0 || i >= x.size {
		x.Add(i, d)
	}
}

// At returns the weight stored at slot i.
func (x *Index) At(i int) (int, error) {
	if i < 0 || i >= x.size {
		return 0, fmt.Errorf("%w: %d (len %d)", ErrOutOfRange, i, x.size)
	}
	return x.at(i), nil
}

// SumToIncluding returns the sum of slots 0 through i.
// i == -1 yields 0; i < -1 or i >= Len() fails with ErrOutOfRange.
func (x *Index) SumToIncluding(i int) (int, error) {
	if i < -1 || i >= x.size {
		return 0, fmt.Errorf("%w: %d (len %d)", ErrOutOfRange, i, x.size)
	}
	return x.prefix(i + 1), nil
}

// Total returns the sum of all slots.
func (x *Index) Total() int {
	return x.prefix(x.size)
}

// Clear zeroes every weight. The logical size is kept.
func (x *Index) Clear() {
	clear(x.tree)
}

// Reset zeroes every weight and resets the logical size to 0.
func (x *Index) Reset() {
	clear(x.tree)
	x.size = 0
}

// prefix returns the sum of the first n slots (1-based n).
func (x *Index) prefix(n int) int {
	if n >= len(x.tree) {
		n = len(x.tree) - 1
	}
	sum := 0
	for k := n; k > 0; k -= k & -k {
		sum += x.tree[k]
	}
	return sum
}

// at returns the weight of slot i without range checks.
func (x *Index) at(i int) int {
	if i >= x.Cap() {
		return 0
	}
	// Walk down from slot i+1 until the paths of i and i+1 meet.
	k := i + 1
	v := x.tree[k]
	stop := k - (k & -k)
	for j := k - 1; j > stop; j -= j & -j {
		v -= x.tree[j]
	}
	return v
}

// grow rebuilds the tree with capacity for at least n slots.
//
// Fenwick nodes cover position-dependent ranges, so the old array cannot
// simply be copied: the per-slot weights are recovered and the tree is
// rebuilt in O(n).
func (x *Index) grow(n int) {
	oldCap := x.Cap()
	newCap := max(oldCap*2, n, minCapacity)
	// Round up to a power of two to keep future growth steps regular.
	if newCap&(newCap-1) != 0 {
		newCap = 1 << bits.Len(uint(newCap))
	}

	tree := make([]int, newCap+1)
	for i := 0; i < oldCap; i++ {
		tree[i+1] = x.at(i)
	}
	for k := 1; k <= newCap; k++ {
		if parent := k + (k & -k); parent <= newCap {
			tree[parent] += tree[k]
		}
	}
	x.tree = tree
}
