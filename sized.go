package batcher

import (
	"fmt"

	"github.com/eapache/queue"

	"github.com/gogpu/batcher/collection"
	"github.com/gogpu/batcher/storage"
)

// StorageFactory creates the storage for a new batch. It is called once per
// batch. The storage must hold at least maxSize weight units, and its unit
// (bytes for storage.Bytes, elements for storage.Elements) must match the
// unit of the weights passed to Add.
type StorageFactory[T comparable] func() storage.Storage[T]

// Weighted is implemented by objects that know their own weight.
type Weighted interface {
	Weight() int
}

// Sized groups weighted entries into capacity-bounded batches.
//
// New entries go into the last batch if it has room and open a new batch
// otherwise (last-fit placement). Deleting an entry shifts the entries after
// it down by one, keeping their order. Storage writes are deferred: Add,
// Delete and Change only record what must happen, and Finalize applies it to
// each batch's storage.
//
// Typical frame loop:
//
//	for _, s := range spawned {
//	    _ = b.Add(s, s.VertexCount())
//	}
//	for _, s := range killed {
//	    b.Delete(s)
//	}
//	if flag.Changed() {
//	    for _, bt := range b.Finalize() {
//	        upload(bt.Storage())
//	    }
//	    flag.Clear()
//	}
//
// Sized is not safe for concurrent use.
type Sized[T comparable] struct {
	maxSize int
	factory StorageFactory[T]
	flag    *ChangeFlag

	batches []*Batch[T]
	lookup  *collection.OrderedMap[T, *entry[T]]
	weight  int

	// pending is a FIFO of batches with work for Finalize; queued dedupes it.
	pending *queue.Queue
	queued  *collection.SparseSet[*Batch[T]]

	freeIDs []int
	nextID  int

	keepEmpty bool
	onRelease func(*Batch[T])

	// snapshot is the batch list returned by the last Finalize.
	snapshot  []*Batch[T]
	finalized bool
}

// New creates a batcher whose batches hold at most maxSize weight units.
func New[T comparable](maxSize int, factory StorageFactory[T], opts ...Option) (*Sized[T], error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxSize, maxSize)
	}
	if factory == nil {
		return nil, ErrNilFactory
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.flag == nil {
		o.flag = NewChangeFlag()
	}

	return &Sized[T]{
		maxSize:   maxSize,
		factory:   factory,
		flag:      o.flag,
		lookup:    collection.NewOrderedMap[T, *entry[T]](o.capacity),
		pending:   queue.New(),
		queued:    collection.NewSparseSet(func(b *Batch[T]) int { return b.id }),
		keepEmpty: o.keepEmpty,
	}, nil
}

// MaxSize returns the batch capacity in weight units.
func (s *Sized[T]) MaxSize() int { return s.maxSize }

// ChangeFlag returns the flag raised by mutations.
func (s *Sized[T]) ChangeFlag() *ChangeFlag { return s.flag }

// OnRelease registers fn to be called with every batch removed from the
// batch list, so the caller can free resources tied to its storage.
func (s *Sized[T]) OnRelease(fn func(*Batch[T])) { s.onRelease = fn }

// Has reports whether obj has been added and not deleted.
func (s *Sized[T]) Has(obj T) bool {
	return s.lookup.Has(obj)
}

// Len returns the number of entries.
func (s *Sized[T]) Len() int {
	return s.lookup.Len()
}

// AggregateSize returns the total weight of all entries.
func (s *Sized[T]) AggregateSize() int {
	return s.weight
}

// Batches returns the current batch list, including batches emptied since
// the last Finalize. The slice is a copy; the batches are not.
func (s *Sized[T]) Batches() []*Batch[T] {
	return append([]*Batch[T](nil), s.batches...)
}

// BatchOf returns the batch holding obj.
func (s *Sized[T]) BatchOf(obj T) (*Batch[T], bool) {
	e, ok := s.lookup.Get(obj)
	if !ok {
		return nil, false
	}
	return e.batch, true
}

// Add inserts obj with the given weight. Adding an object that is already
// present does nothing, even if weight differs.
//
// Fails with ErrInvalidWeight for a negative weight and with
// ErrEntryTooLarge if weight exceeds MaxSize.
func (s *Sized[T]) Add(obj T, weight int) error {
	if s.lookup.Has(obj) {
		return nil
	}
	if weight < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWeight, weight)
	}
	if weight > s.maxSize {
		Logger().Warn("batcher: entry rejected", "weight", weight, "maxSize", s.maxSize)
		return fmt.Errorf("%w: %d > %d", ErrEntryTooLarge, weight, s.maxSize)
	}

	var b *Batch[T]
	if n := len(s.batches); n > 0 && s.batches[n-1].weight+weight <= s.maxSize {
		b = s.batches[n-1]
	} else {
		b = s.openBatch()
	}

	e := &entry[T]{obj: obj, weight: weight}
	b.append(e)
	s.lookup.Add(obj, e)
	s.weight += weight
	s.enqueue(b)
	s.flag.Set()
	return nil
}

// AddWeighted adds obj using its own weight.
func AddWeighted[T interface {
	comparable
	Weighted
}](s *Sized[T], obj T) error {
	return s.Add(obj, obj.Weight())
}

// Delete removes obj. Returns false if obj is not present.
func (s *Sized[T]) Delete(obj T) bool {
	e, ok := s.lookup.Get(obj)
	if !ok {
		return false
	}
	s.lookup.Delete(obj)

	b := e.batch
	b.remove(e)
	s.weight -= e.weight
	s.enqueue(b)
	s.flag.Set()
	return true
}

// Change marks obj's data for rewrite on the next Finalize without altering
// membership or weight. Returns false if obj is not present.
func (s *Sized[T]) Change(obj T) bool {
	e, ok := s.lookup.Get(obj)
	if !ok {
		return false
	}
	e.batch.changed.Add(e)
	s.enqueue(e.batch)
	s.flag.Set()
	return true
}

// Clear removes every entry and releases every batch.
func (s *Sized[T]) Clear() {
	for _, b := range s.batches {
		s.release(b)
	}
	for s.pending.Length() > 0 {
		s.pending.Remove()
	}
	s.queued.Clear()
	s.batches = s.batches[:0]
	s.lookup.Clear()
	s.weight = 0
	s.snapshot = nil
	s.flag.Set()
}

// Finalize applies all pending changes to the batch storages and returns the
// ordered batch list.
//
// For every touched batch, newly placed and changed entries are encoded at
// their current offsets and entries moved by deletes are shifted in place
// with CopyWithin; both extend the storage's dirty range. Empty batches are
// then removed unless WithKeepEmpty was set.
//
// Finalize does not clear the change flag. The returned slice and the
// offsets within it are valid until the next mutation.
func (s *Sized[T]) Finalize() []*Batch[T] {
	touched, rewritten, shifted := 0, 0, 0
	for s.pending.Length() > 0 {
		b := s.pending.Remove().(*Batch[T])
		s.queued.Delete(b)
		if !b.pending() {
			continue
		}
		r, sh := b.reconcile()
		touched++
		rewritten += r
		shifted += sh
	}

	removed := 0
	if !s.keepEmpty {
		kept := s.batches[:0]
		for _, b := range s.batches {
			if b.Len() == 0 {
				s.release(b)
				removed++
				continue
			}
			kept = append(kept, b)
		}
		clear(s.batches[len(kept):])
		s.batches = kept
	}

	s.snapshot = append(s.snapshot[:0], s.batches...)
	s.finalized = true

	Logger().Debug("batcher: finalize",
		"batches", len(s.batches),
		"touched", touched,
		"rewritten", rewritten,
		"shifted", shifted,
		"removed", removed)
	return s.snapshot
}

// Range calls fn for each batch of the last Finalize, in order, until fn
// returns false. Fails with ErrNotFinalized if Finalize was never called.
func (s *Sized[T]) Range(fn func(*Batch[T]) bool) error {
	if !s.finalized {
		return ErrNotFinalized
	}
	for _, b := range s.snapshot {
		if !fn(b) {
			break
		}
	}
	return nil
}

// openBatch appends a new batch with a fresh storage.
func (s *Sized[T]) openBatch() *Batch[T] {
	var id int
	if n := len(s.freeIDs); n > 0 {
		id = s.freeIDs[n-1]
		s.freeIDs = s.freeIDs[:n-1]
	} else {
		id = s.nextID
		s.nextID++
	}
	b := newBatch(id, s.factory())
	s.batches = append(s.batches, b)
	return b
}

// enqueue schedules b for reconciliation on the next Finalize.
func (s *Sized[T]) enqueue(b *Batch[T]) {
	if s.queued.Add(b) {
		s.pending.Add(b)
	}
}

// release hands b to the release callback and recycles its ID.
func (s *Sized[T]) release(b *Batch[T]) {
	if s.onRelease != nil {
		s.onRelease(b)
	}
	s.freeIDs = append(s.freeIDs, b.id)
}
