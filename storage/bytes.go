package storage

import "fmt"

// Bytes is a fixed-capacity byte region with a merged dirty range.
// All offsets are in bytes.
type Bytes[T any] struct {
	data    []byte
	changed Range
	encode  Encoder[T]
}

var _ Storage[any] = (*Bytes[any])(nil)

// NewBytes creates a zeroed storage of capacity bytes.
// encode is used by Update; it may be nil if Update is never called.
func NewBytes[T any](capacity int, encode Encoder[T]) *Bytes[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Bytes[T]{
		data:   make([]byte, capacity),
		encode: encode,
	}
}

// Bytes returns the backing bytes. Writes through the slice are not tracked;
// follow them with MarkChanged.
func (s *Bytes[T]) Bytes() []byte {
	return s.data
}

// TotalLength returns the capacity in bytes.
func (s *Bytes[T]) TotalLength() int {
	return len(s.data)
}

// Changed returns the dirty byte range.
func (s *Bytes[T]) Changed() Range {
	return s.changed
}

// ClearChange resets the dirty range to empty.
func (s *Bytes[T]) ClearChange() {
	s.changed = Range{}
}

// SetChanged replaces the dirty range with [from, from+length), clamped to
// the storage bounds.
func (s *Bytes[T]) SetChanged(from, length int) {
	s.changed = Range{From: from, Length: length}.Clamp(len(s.data))
}

// MarkChanged merges [from, from+length), clamped to the storage bounds,
// into the dirty range. Empty spans are ignored.
func (s *Bytes[T]) MarkChanged(from, length int) {
	s.changed = s.changed.Union(Range{From: from, Length: length}.Clamp(len(s.data)))
}

// Update encodes obj at byte offset and marks the bytes written.
// Panics if offset is outside the storage or no encoder was configured.
func (s *Bytes[T]) Update(obj T, offset int) {
	if offset < 0 || offset > len(s.data) {
		panic(fmt.Sprintf("storage: update offset %d outside capacity %d", offset, len(s.data)))
	}
	if s.encode == nil {
		panic("storage: update without encoder")
	}
	n := s.encode(s.data[offset:], obj)
	s.MarkChanged(offset, n)
}

// CopyWithin moves bytes [start, end) to target, handling overlap, and marks
// the source and destination spans changed. Arguments are clamped to the
// storage bounds and the copy is truncated at the end of the storage.
func (s *Bytes[T]) CopyWithin(target, start, end int) {
	limit := len(s.data)
	target = min(max(target, 0), limit)
	start = min(max(start, 0), limit)
	end = min(max(end, start), limit)

	n := copy(s.data[target:], s.data[start:end])
	if n == 0 {
		return
	}
	src := Range{From: start, Length: n}
	dst := Range{From: target, Length: n}
	s.changed = s.changed.Union(src.Union(dst))
}
