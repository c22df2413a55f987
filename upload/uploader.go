// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package upload

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/batcher"
	"github.com/gogpu/batcher/gpucore"
	"github.com/gogpu/batcher/storage"
)

var (
	// ErrNilAdapter is returned by New when no adapter is given.
	ErrNilAdapter = errors.New("upload: adapter is nil")

	// ErrBufferTooLarge is returned when a storage does not fit in one
	// buffer of the adapter.
	ErrBufferTooLarge = errors.New("upload: storage exceeds max buffer size")
)

// Option configures an Uploader.
type Option func(*options)

type options struct {
	usage gputypes.BufferUsage
	label string
}

func defaultOptions() options {
	return options{
		usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		label: "batch",
	}
}

// WithUsage sets the usage flags of created buffers. CopyDst is always
// added. Default: Vertex | CopyDst.
func WithUsage(usage gputypes.BufferUsage) Option {
	return func(o *options) {
		o.usage = usage | gputypes.BufferUsageCopyDst
	}
}

// WithLabel sets the label prefix of created buffers. Default: "batch".
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// Stats counts upload work since the Uploader was created.
type Stats struct {
	// Syncs is the number of Sync calls.
	Syncs int
	// Writes is the number of buffer writes issued.
	Writes int
	// Bytes is the number of bytes written, alignment padding included.
	Bytes uint64
	// Clean is the number of Sync calls that found nothing to upload.
	Clean int
	// Buffers is the number of live buffers.
	Buffers int
}

// loggerSetter is implemented by adapters that log through their own
// package logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// Uploader mirrors storages into GPU buffers through a BufferAdapter.
//
// Uploader is not safe for concurrent use.
type Uploader struct {
	adapter gpucore.BufferAdapter
	usage   gputypes.BufferUsage
	label   string

	// logs is the adapter's logger hook, nil if it has none. logger is the
	// logger last handed to it.
	logs   loggerSetter
	logger *slog.Logger

	buffers map[storage.View]gpucore.BufferID
	created int
	scratch []byte
	stats   Stats
}

// New creates an Uploader writing through adapter.
func New(adapter gpucore.BufferAdapter, opts ...Option) (*Uploader, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	u := &Uploader{
		adapter: adapter,
		usage:   o.usage,
		label:   o.label,
		buffers: make(map[storage.View]gpucore.BufferID),
	}
	u.logs, _ = adapter.(loggerSetter)
	u.syncLogger()
	return u, nil
}

// syncLogger hands batcher.Logger() to the adapter whenever it changed
// since the last call.
func (u *Uploader) syncLogger() {
	if u.logs == nil {
		return
	}
	if l := batcher.Logger(); l != u.logger {
		u.logs.SetLogger(l)
		u.logger = l
	}
}

// Sync uploads the dirty range of v and clears it. The first Sync of a
// storage creates its buffer and uploads the whole storage. Returns the
// number of bytes written.
//
// Adapters with a SetLogger method receive the current batcher.Logger()
// on every Sync, so a later batcher.SetLogger reaches them too.
func (u *Uploader) Sync(v storage.View) (int, error) {
	u.syncLogger()
	u.stats.Syncs++
	total := v.TotalLength()

	r := v.Changed().Clamp(total)
	id, ok := u.buffers[v]
	if !ok {
		var err error
		if id, err = u.create(total); err != nil {
			return 0, err
		}
		u.buffers[v] = id
		r = storage.Range{From: 0, Length: total}
	}

	if r.Empty() {
		u.stats.Clean++
		v.ClearChange()
		return 0, nil
	}

	from := gpucore.AlignDown(uint64(r.From))
	end := gpucore.AlignUp(uint64(r.End()))
	data := v.Bytes()
	if end > uint64(total) {
		// Pad the tail past the storage end with zeros.
		u.scratch = append(u.scratch[:0], data[from:total]...)
		for uint64(len(u.scratch)) < end-from {
			u.scratch = append(u.scratch, 0)
		}
		u.adapter.WriteBuffer(id, from, u.scratch)
	} else {
		u.adapter.WriteBuffer(id, from, data[from:end])
	}
	v.ClearChange()

	n := int(end - from)
	u.stats.Writes++
	u.stats.Bytes += uint64(n)
	return n, nil
}

func (u *Uploader) create(total int) (gpucore.BufferID, error) {
	size := gpucore.AlignUp(uint64(max(total, 1)))
	if size > u.adapter.MaxBufferSize() {
		return gpucore.InvalidID, fmt.Errorf("%w: %d > %d", ErrBufferTooLarge, size, u.adapter.MaxBufferSize())
	}
	label := fmt.Sprintf("%s-%d", u.label, u.created)
	id, err := u.adapter.CreateBuffer(label, size, u.usage)
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("upload: create buffer: %w", err)
	}
	u.created++
	u.stats.Buffers++
	batcher.Logger().Debug("upload: buffer created", "label", label, "size", size)
	return id, nil
}

// Buffer returns the buffer mirroring v.
func (u *Uploader) Buffer(v storage.View) (gpucore.BufferID, bool) {
	id, ok := u.buffers[v]
	return id, ok
}

// Release destroys the buffer mirroring v. Releasing an unknown storage
// does nothing.
func (u *Uploader) Release(v storage.View) {
	id, ok := u.buffers[v]
	if !ok {
		return
	}
	delete(u.buffers, v)
	u.adapter.DestroyBuffer(id)
	u.stats.Buffers--
	batcher.Logger().Debug("upload: buffer released", "id", id)
}

// Close destroys every buffer.
func (u *Uploader) Close() {
	for v := range u.buffers {
		u.Release(v)
	}
}

// Stats returns the upload counters.
func (u *Uploader) Stats() Stats { return u.stats }

// SyncBatches syncs the storage of every batch and returns the total number
// of bytes written. It stops at the first error.
func SyncBatches[T comparable](u *Uploader, batches []*batcher.Batch[T]) (int, error) {
	total := 0
	for _, b := range batches {
		n, err := u.Sync(b.Storage())
		total += n
		if err != nil {
			return total, fmt.Errorf("upload: batch %d: %w", b.ID(), err)
		}
	}
	return total, nil
}

// Track releases the buffer of every batch s removes. It replaces any
// release callback already registered on s.
func Track[T comparable](u *Uploader, s *batcher.Sized[T]) {
	s.OnRelease(func(b *batcher.Batch[T]) {
		u.Release(b.Storage())
	})
}
