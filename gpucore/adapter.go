// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucore

import "github.com/gogpu/gputypes"

// BufferAdapter abstracts the buffer operations of a GPU backend.
//
// Resource lifecycle:
//   - Buffers are created via CreateBuffer
//   - Buffers must be explicitly destroyed via DestroyBuffer
//   - Destroying a buffer while in use is undefined behavior
type BufferAdapter interface {
	// MaxBufferSize returns the maximum buffer size in bytes.
	MaxBufferSize() uint64

	// CreateBuffer creates a zero-initialized GPU buffer.
	//
	// Parameters:
	//   - label: optional debug label
	//   - size: buffer size in bytes, a multiple of CopyBufferAlignment
	//   - usage: buffer usage flags
	//
	// Returns the buffer ID or an error if allocation fails.
	CreateBuffer(label string, size uint64, usage gputypes.BufferUsage) (BufferID, error)

	// DestroyBuffer releases a GPU buffer.
	DestroyBuffer(id BufferID)

	// WriteBuffer writes data to a buffer.
	// The data is copied to the GPU immediately or staged for later upload.
	//
	// Parameters:
	//   - id: target buffer
	//   - offset: byte offset into the buffer, a multiple of CopyBufferAlignment
	//   - data: data to write, a multiple of CopyBufferAlignment in length
	WriteBuffer(id BufferID, offset uint64, data []byte)
}
