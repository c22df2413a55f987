// Package storage provides fixed-capacity byte regions that track which
// bytes changed since the last synchronization.
//
// A storage exposes its backing bytes as a writable view and keeps a single
// dirty [Range] covering every byte touched since the last ClearChange.
// Marks merge into the smallest covering range: precision is traded for
// O(1) merges, so two far apart writes produce one range spanning both.
//
// Two variants are provided:
//   - [Bytes] works in byte units.
//   - [Elements] works in units of fixed-size elements (for example
//     vertices) and converts element ranges to byte ranges internally.
//
// The dirty range reported by Changed is always in bytes, ready to be handed
// to a partial buffer upload:
//
//	r := s.Changed()
//	if !r.Empty() {
//	    queue.WriteBuffer(buf, uint64(r.From), s.Bytes()[r.From:r.End()])
//	    s.ClearChange()
//	}
package storage

// Encoder writes the encoding of obj at the start of dst and returns the
// number of bytes written. It must not write past len(dst).
type Encoder[T any] func(dst []byte, obj T) int

// View is the read side of a change-tracked storage, as seen by an uploader.
type View interface {
	// Changed returns the dirty byte range.
	Changed() Range

	// ClearChange resets the dirty range to empty.
	ClearChange()

	// Bytes returns the backing bytes. The slice aliases the storage.
	Bytes() []byte

	// TotalLength returns the capacity in bytes.
	TotalLength() int
}

// ChangeTracked is a View whose dirty range can be driven directly.
//
// Offsets and lengths are in the storage's own unit: bytes for [Bytes] and
// elements for [Elements].
type ChangeTracked interface {
	View

	// SetChanged overwrites the dirty range.
	SetChanged(from, length int)

	// MarkChanged merges [from, from+length) into the dirty range.
	MarkChanged(from, length int)
}

// Storage is the contract a batcher needs from the storage owned by a batch.
type Storage[T any] interface {
	ChangeTracked

	// Update encodes obj at offset and marks the written span changed.
	Update(obj T, offset int)

	// CopyWithin moves the span [start, end) to target within the storage
	// and marks both the source and the destination spans changed.
	CopyWithin(target, start, end int)
}
