//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import "errors"

var (
	// ErrInvalidBuffer is returned for a buffer request the device cannot satisfy.
	ErrInvalidBuffer = errors.New("native: invalid buffer")

	// ErrBufferTooLarge is returned when a buffer exceeds the device limit.
	ErrBufferTooLarge = errors.New("native: buffer exceeds max buffer size")

	// ErrNoHALProvider is returned when a device provider does not expose
	// HAL types.
	ErrNoHALProvider = errors.New("native: provider does not expose HAL types")
)
