//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package native uploads batch storages into GPU buffers through
// gogpu/wgpu/hal directly.
package native

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/batcher/gpucore"
)

// HALAdapter implements gpucore.BufferAdapter on a hal.Device and hal.Queue.
//
// Thread Safety: HALAdapter is safe for concurrent use from multiple goroutines.
// Buffer tracking is protected by a mutex.
type HALAdapter struct {
	mu     sync.RWMutex
	device hal.Device
	queue  hal.Queue

	maxBufferSz uint64

	// ID generation
	nextID atomic.Uint64

	buffers map[gpucore.BufferID]hal.Buffer
	sizes   map[gpucore.BufferID]uint64

	// external is set when the device comes from a gpucontext provider.
	external bool
}

// NewHALAdapter creates a new HALAdapter wrapping the given device and queue.
// If limits is nil, default limits are used.
func NewHALAdapter(device hal.Device, queue hal.Queue, limits *gputypes.Limits) *HALAdapter {
	var lim gputypes.Limits
	if limits != nil {
		lim = *limits
	} else {
		lim = gputypes.DefaultLimits()
	}

	a := &HALAdapter{
		device:      device,
		queue:       queue,
		maxBufferSz: lim.MaxBufferSize,
		buffers:     make(map[gpucore.BufferID]hal.Buffer),
		sizes:       make(map[gpucore.BufferID]uint64),
	}

	// Start ID generation at 1 (0 is invalid)
	a.nextID.Store(1)
	return a
}

func (a *HALAdapter) newID() gpucore.BufferID {
	return gpucore.BufferID(a.nextID.Add(1) - 1)
}

// MaxBufferSize returns the maximum buffer size in bytes.
func (a *HALAdapter) MaxBufferSize() uint64 {
	return a.maxBufferSz
}

// CreateBuffer creates a GPU buffer of size bytes.
func (a *HALAdapter) CreateBuffer(label string, size uint64, usage gputypes.BufferUsage) (gpucore.BufferID, error) {
	if size == 0 {
		return gpucore.InvalidID, fmt.Errorf("%w: zero size", ErrInvalidBuffer)
	}
	if size > a.maxBufferSz {
		return gpucore.InvalidID, fmt.Errorf("%w: %d > %d", ErrBufferTooLarge, size, a.maxBufferSz)
	}

	buffer, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create buffer %q: %w", label, err)
	}

	id := a.newID()
	a.mu.Lock()
	a.buffers[id] = buffer
	a.sizes[id] = size
	a.mu.Unlock()

	slogger().Debug("native: buffer created", "id", id, "label", label, "size", size)
	return id, nil
}

// DestroyBuffer releases a buffer. Unknown IDs are ignored.
func (a *HALAdapter) DestroyBuffer(id gpucore.BufferID) {
	a.mu.Lock()
	buffer, ok := a.buffers[id]
	if ok {
		delete(a.buffers, id)
		delete(a.sizes, id)
	}
	a.mu.Unlock()

	if ok {
		a.device.DestroyBuffer(buffer)
	}
}

// WriteBuffer queues data to be written at offset. Writes to unknown
// buffers and writes that would overflow are dropped with a warning.
func (a *HALAdapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) {
	if len(data) == 0 {
		return
	}

	a.mu.RLock()
	buffer, ok := a.buffers[id]
	size := a.sizes[id]
	a.mu.RUnlock()

	if !ok {
		slogger().Warn("native: write to unknown buffer", "id", id)
		return
	}
	if offset+uint64(len(data)) > size {
		slogger().Warn("native: write out of bounds",
			"id", id, "offset", offset, "len", len(data), "size", size)
		return
	}
	a.queue.WriteBuffer(buffer, offset, data)
}

// BufferCount returns the number of live buffers.
func (a *HALAdapter) BufferCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.buffers)
}

// Close destroys every buffer still tracked by the adapter.
func (a *HALAdapter) Close() {
	a.mu.Lock()
	buffers := a.buffers
	a.buffers = make(map[gpucore.BufferID]hal.Buffer)
	a.sizes = make(map[gpucore.BufferID]uint64)
	a.mu.Unlock()

	for _, b := range buffers {
		a.device.DestroyBuffer(b)
	}
}

// SetLogger sets the logger for the native backend.
func (a *HALAdapter) SetLogger(l *slog.Logger) {
	setLogger(l)
}

// Ensure HALAdapter implements gpucore.BufferAdapter.
var _ gpucore.BufferAdapter = (*HALAdapter)(nil)
