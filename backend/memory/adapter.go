// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package memory implements gpucore.BufferAdapter on in-process byte slices.
//
// It stands in for a GPU in tests, benchmarks and headless runs, and records
// every write so callers can check exactly what would have been uploaded.
package memory

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/batcher/gpucore"
)

// DefaultMaxBufferSize matches the WebGPU default limit of 256 MiB.
const DefaultMaxBufferSize = 256 << 20

// Write records one WriteBuffer call.
type Write struct {
	ID     gpucore.BufferID
	Offset uint64
	Len    int
}

type buffer struct {
	label string
	usage gputypes.BufferUsage
	data  []byte
}

// Adapter is an in-memory buffer adapter. It is safe for concurrent use.
//
// Misaligned or out-of-bounds writes panic, as they would fail validation on
// a real device.
type Adapter struct {
	mu      sync.Mutex
	max     uint64
	nextID  gpucore.BufferID
	buffers map[gpucore.BufferID]*buffer
	writes  []Write
	written uint64
}

// NewAdapter creates an adapter whose buffers may be at most maxBufferSize
// bytes. Zero selects DefaultMaxBufferSize.
func NewAdapter(maxBufferSize uint64) *Adapter {
	if maxBufferSize == 0 {
		maxBufferSize = DefaultMaxBufferSize
	}
	return &Adapter{
		max:     maxBufferSize,
		nextID:  1,
		buffers: make(map[gpucore.BufferID]*buffer),
	}
}

// MaxBufferSize returns the maximum buffer size in bytes.
func (a *Adapter) MaxBufferSize() uint64 { return a.max }

// CreateBuffer allocates a zeroed buffer.
func (a *Adapter) CreateBuffer(label string, size uint64, usage gputypes.BufferUsage) (gpucore.BufferID, error) {
	if size == 0 || size%gpucore.CopyBufferAlignment != 0 {
		return gpucore.InvalidID, fmt.Errorf("memory: buffer %q size %d not a positive multiple of %d",
			label, size, gpucore.CopyBufferAlignment)
	}
	if size > a.max {
		return gpucore.InvalidID, fmt.Errorf("memory: buffer %q size %d exceeds %d", label, size, a.max)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.nextID
	a.nextID++
	a.buffers[id] = &buffer{label: label, usage: usage, data: make([]byte, size)}
	return id, nil
}

// DestroyBuffer frees a buffer. Unknown IDs are ignored.
func (a *Adapter) DestroyBuffer(id gpucore.BufferID) {
	a.mu.Lock()
	delete(a.buffers, id)
	a.mu.Unlock()
}

// WriteBuffer copies data into the buffer at offset.
func (a *Adapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	b, ok := a.buffers[id]
	if !ok {
		panic(fmt.Sprintf("memory: write to unknown buffer %d", id))
	}
	n := uint64(len(data))
	if offset%gpucore.CopyBufferAlignment != 0 || n%gpucore.CopyBufferAlignment != 0 {
		panic(fmt.Sprintf("memory: misaligned write offset %d len %d", offset, n))
	}
	if offset+n > uint64(len(b.data)) {
		panic(fmt.Sprintf("memory: write [%d,%d) past buffer %d of size %d", offset, offset+n, id, len(b.data)))
	}
	copy(b.data[offset:], data)
	a.writes = append(a.writes, Write{ID: id, Offset: offset, Len: len(data)})
	a.written += n
}

// Contents returns a copy of the buffer's bytes.
func (a *Adapter) Contents(id gpucore.BufferID) ([]byte, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	b, ok := a.buffers[id]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b.data...), true
}

// Usage returns the usage flags a buffer was created with.
func (a *Adapter) Usage(id gpucore.BufferID) (gputypes.BufferUsage, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	b, ok := a.buffers[id]
	if !ok {
		return 0, false
	}
	return b.usage, true
}

// Label returns the debug label of a buffer.
func (a *Adapter) Label(id gpucore.BufferID) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	b, ok := a.buffers[id]
	if !ok {
		return "", false
	}
	return b.label, true
}

// BufferCount returns the number of live buffers.
func (a *Adapter) BufferCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.buffers)
}

// Writes returns the writes recorded since the last ResetWrites.
func (a *Adapter) Writes() []Write {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Write(nil), a.writes...)
}

// BytesWritten returns the number of bytes written since the last ResetWrites.
func (a *Adapter) BytesWritten() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.written
}

// ResetWrites forgets recorded writes. Buffer contents are kept.
func (a *Adapter) ResetWrites() {
	a.mu.Lock()
	a.writes = a.writes[:0]
	a.written = 0
	a.mu.Unlock()
}

var _ gpucore.BufferAdapter = (*Adapter)(nil)
