package storage

import "fmt"

// Elements is a change-tracked storage addressed in fixed-size elements.
//
// Capacity is maxElements × elementLength bytes. SetChanged, MarkChanged,
// Update and CopyWithin take element offsets; Changed reports bytes.
type Elements[T any] struct {
	bytes       *Bytes[T]
	elementLen  int
	maxElements int
}

var _ Storage[any] = (*Elements[any])(nil)

// NewElements creates a zeroed storage for maxElements elements of
// elementLength bytes each. encode receives the byte slice starting at the
// element offset and returns the number of bytes written.
// Panics if elementLength is not positive.
func NewElements[T any](maxElements, elementLength int, encode Encoder[T]) *Elements[T] {
	if elementLength <= 0 {
		panic(fmt.Sprintf("storage: element length must be positive, got %d", elementLength))
	}
	if maxElements < 0 {
		maxElements = 0
	}
	return &Elements[T]{
		bytes:       NewBytes(maxElements*elementLength, encode),
		elementLen:  elementLength,
		maxElements: maxElements,
	}
}

// ElementLength returns the size of one element in bytes.
func (s *Elements[T]) ElementLength() int { return s.elementLen }

// MaxElements returns the element capacity.
func (s *Elements[T]) MaxElements() int { return s.maxElements }

// Bytes returns the backing bytes.
func (s *Elements[T]) Bytes() []byte { return s.bytes.Bytes() }

// TotalLength returns the capacity in bytes.
func (s *Elements[T]) TotalLength() int { return s.bytes.TotalLength() }

// Changed returns the dirty range in bytes.
func (s *Elements[T]) Changed() Range { return s.bytes.Changed() }

// ChangedElements returns the dirty range in elements, rounded outward to
// whole elements.
func (s *Elements[T]) ChangedElements() Range {
	r := s.bytes.Changed()
	if r.Empty() {
		return Range{}
	}
	from := r.From / s.elementLen
	end := (r.End() + s.elementLen - 1) / s.elementLen
	return Range{From: from, Length: end - from}
}

// ClearChange resets the dirty range to empty.
func (s *Elements[T]) ClearChange() { s.bytes.ClearChange() }

// SetChanged replaces the dirty range with elements [from, from+length).
func (s *Elements[T]) SetChanged(from, length int) {
	s.bytes.SetChanged(from*s.elementLen, length*s.elementLen)
}

// MarkChanged merges elements [from, from+length) into the dirty range.
func (s *Elements[T]) MarkChanged(from, length int) {
	s.bytes.MarkChanged(from*s.elementLen, length*s.elementLen)
}

// Update encodes obj starting at element offset.
func (s *Elements[T]) Update(obj T, offset int) {
	s.bytes.Update(obj, offset*s.elementLen)
}

// CopyWithin moves elements [start, end) to target.
func (s *Elements[T]) CopyWithin(target, start, end int) {
	s.bytes.CopyWithin(target*s.elementLen, start*s.elementLen, end*s.elementLen)
}
