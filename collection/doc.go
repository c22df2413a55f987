// Package collection provides dense, swap-delete collections with O(1)
// membership, insertion, index lookup and removal.
//
// All collections keep their elements in a contiguous slice. Removing an
// element moves the last live element into the vacated slot and truncates
// the slice by one, so only a weak ordering guarantee holds: after
// Delete, the indices of every element other than the removed one and the
// former last one are unchanged.
//
// Three variants are provided:
//   - [OrderedMap] maps keys to values through a Go map index.
//   - [Set] stores keys only, indexed through a Go map.
//   - [SparseSet] stores keys indexed by a small non-negative integer code
//     directly into a growable slice. Memory grows with the largest code
//     ever seen, so codes must stay small relative to the number of
//     elements (for example recycled IDs).
//
// Negative indices passed to At and KeyAt count from the end, so At(-1)
// returns the last element.
//
// None of the collections are safe for concurrent use.
package collection

// absent marks an unused slot in a sparse index.
const absent = -1

// resolve converts a possibly negative index into a dense index.
// Returns false if the index is out of range for length n.
func resolve(i, n int) (int, bool) {
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}
