//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// NewHALAdapterFromProvider creates a HALAdapter sharing the device of an
// external provider (e.g., gogpu). The provider must implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
//
// Close on the returned adapter destroys its buffers but never the shared
// device.
func NewHALAdapterFromProvider(provider gpucontext.DeviceProvider) (*HALAdapter, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALProvider)
	}

	a := NewHALAdapter(device, queue, nil)
	a.external = true
	slogger().Info("native: using shared device from provider", "maxBufferSize", a.maxBufferSz)
	return a, nil
}

// External reports whether the adapter runs on a provider's device.
func (a *HALAdapter) External() bool { return a.external }
