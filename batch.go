package batcher

import (
	"fmt"

	"github.com/gogpu/batcher/collection"
	"github.com/gogpu/batcher/prefixsum"
	"github.com/gogpu/batcher/storage"
)

// entry is the batcher's record for one client object.
type entry[T comparable] struct {
	obj    T
	weight int
	batch  *Batch[T]

	// pos is the entry's index within batch.entries.
	pos int

	// written is the offset the entry's data occupies in the batch storage
	// as of the last Finalize, or -1 if it was never written.
	written int
}

// Batch is an ordered, capacity-bounded group of entries backed by one
// storage instance.
//
// Entries are kept in insertion order. A Batch is owned by its batcher;
// callers read it between Finalize and the next mutation and must not keep
// offsets across mutation cycles, since compaction moves data.
type Batch[T comparable] struct {
	id      int
	entries []*entry[T]
	weights *prefixsum.Index
	weight  int
	storage storage.Storage[T]

	// changed holds entries flagged by Change since the last Finalize.
	changed *collection.Set[*entry[T]]

	// dirtyFrom is the first position whose offset or data must be
	// reconciled on Finalize, or -1 if none.
	dirtyFrom int
}

func newBatch[T comparable](id int, s storage.Storage[T]) *Batch[T] {
	return &Batch[T]{
		id:        id,
		weights:   prefixsum.New(0),
		storage:   s,
		changed:   collection.NewSet[*entry[T]](0),
		dirtyFrom: -1,
	}
}

// ID returns the batch identifier. IDs are small integers that are reused
// after a batch is released.
func (b *Batch[T]) ID() int { return b.id }

// Weight returns the aggregate weight of the batch's entries.
func (b *Batch[T]) Weight() int { return b.weight }

// Len returns the number of entries.
func (b *Batch[T]) Len() int { return len(b.entries) }

// Storage returns the storage owned by the batch.
func (b *Batch[T]) Storage() storage.Storage[T] { return b.storage }

// At returns the object at position i.
// Panics if i is out of range.
func (b *Batch[T]) At(i int) T {
	return b.entries[i].obj
}

// Objects returns the batch's objects in order.
func (b *Batch[T]) Objects() []T {
	objs := make([]T, len(b.entries))
	for i, e := range b.entries {
		objs[i] = e.obj
	}
	return objs
}

// Each calls fn for every object in order until fn returns false.
func (b *Batch[T]) Each(fn func(i int, obj T) bool) {
	for i, e := range b.entries {
		if !fn(i, e.obj) {
			return
		}
	}
}

// Offset returns the storage offset, in weight units, at which the entry at
// position i starts. The lookup is O(log n).
// Fails with prefixsum.ErrOutOfRange if i is not a valid position.
func (b *Batch[T]) Offset(i int) (int, error) {
	if i < 0 || i >= len(b.entries) {
		return 0, fmt.Errorf("%w: position %d (len %d)", prefixsum.ErrOutOfRange, i, len(b.entries))
	}
	return b.weights.SumToIncluding(i - 1)
}

// markFrom records that positions from p onward need reconciliation.
func (b *Batch[T]) markFrom(p int) {
	if b.dirtyFrom < 0 || p < b.dirtyFrom {
		b.dirtyFrom = p
	}
}

// pending reports whether the batch has work for Finalize.
func (b *Batch[T]) pending() bool {
	return b.dirtyFrom >= 0 || b.changed.Len() > 0
}

// append places e at the end of the batch.
func (b *Batch[T]) append(e *entry[T]) {
	e.batch = b
	e.pos = len(b.entries)
	e.written = -1
	b.entries = append(b.entries, e)
	b.weights.Set(e.pos, e.weight)
	b.weight += e.weight
	b.markFrom(e.pos)
}

// remove deletes e by shifting all later entries down one position,
// preserving their relative order.
func (b *Batch[T]) remove(e *entry[T]) {
	p := e.pos
	n := len(b.entries)

	copy(b.entries[p:], b.entries[p+1:])
	b.entries[n-1] = nil
	b.entries = b.entries[:n-1]

	for i := p; i < n-1; i++ {
		moved := b.entries[i]
		moved.pos = i
		b.weights.Set(i, moved.weight)
	}
	b.weights.Set(n-1, 0)

	b.weight -= e.weight
	b.changed.Delete(e)
	b.markFrom(p)
	e.batch = nil
}

// copyRun is a contiguous span of entries that moved by the same amount
// and can be shifted with one CopyWithin call.
type copyRun struct {
	target int
	start  int
	end    int
	active bool
}

// reconcile brings the batch storage in line with the entry list.
// Returns the number of entries rewritten and the number of weight units
// shifted by compaction.
func (b *Batch[T]) reconcile() (rewritten, shifted int) {
	var run copyRun
	flush := func() {
		if run.active {
			b.storage.CopyWithin(run.target, run.start, run.end)
			shifted += run.end - run.start
			run = copyRun{}
		}
	}

	if from := b.dirtyFrom; from >= 0 && from < len(b.entries) {
		// from-1 is at least -1 and below the logical size, so the query
		// cannot fail.
		offset, _ := b.weights.SumToIncluding(from - 1)

		for _, e := range b.entries[from:] {
			switch {
			case e.written < 0 || b.changed.Has(e):
				flush()
				b.storage.Update(e.obj, offset)
				rewritten++
			case e.written != offset:
				// Surviving entries only ever move toward lower offsets, so
				// copying in order never overwrites unread source data.
				if run.active && run.end == e.written && run.start-run.target == e.written-offset {
					run.end += e.weight
				} else {
					flush()
					run = copyRun{target: offset, start: e.written, end: e.written + e.weight, active: true}
				}
			default:
				flush()
			}
			e.written = offset
			offset += e.weight
		}
		flush()
	}

	// Flagged entries ahead of the reconciled region keep their offsets and
	// only need their data rewritten.
	for _, e := range b.changed.Items() {
		if b.dirtyFrom >= 0 && e.pos >= b.dirtyFrom {
			continue
		}
		offset, _ := b.weights.SumToIncluding(e.pos - 1)
		b.storage.Update(e.obj, offset)
		e.written = offset
		rewritten++
	}

	b.changed.Clear()
	b.dirtyFrom = -1
	return rewritten, shifted
}
