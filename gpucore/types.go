// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucore

// BufferID is an opaque handle to a GPU buffer.
// IDs are uint64 to accommodate various backend handle sizes.
type BufferID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID BufferID = 0

// CopyBufferAlignment is the alignment, in bytes, required for the offset
// and size of a buffer write (WebGPU COPY_BUFFER_ALIGNMENT).
const CopyBufferAlignment = 4

// AlignDown rounds n down to a multiple of CopyBufferAlignment.
func AlignDown(n uint64) uint64 {
	return n &^ (CopyBufferAlignment - 1)
}

// AlignUp rounds n up to a multiple of CopyBufferAlignment.
func AlignUp(n uint64) uint64 {
	return (n + CopyBufferAlignment - 1) &^ (CopyBufferAlignment - 1)
}
