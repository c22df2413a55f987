//go:build !nogpu

package native

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/batcher/gpucore"
)

// createNoopDevice opens a device on the noop HAL backend.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// =============================================================================
// Buffer lifecycle
// =============================================================================

func TestHALAdapterLimits(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	a := NewHALAdapter(device, queue, nil)
	if got, want := a.MaxBufferSize(), gputypes.DefaultLimits().MaxBufferSize; got != want {
		t.Errorf("MaxBufferSize() = %d, want %d", got, want)
	}

	lim := gputypes.DefaultLimits()
	lim.MaxBufferSize = 64
	a = NewHALAdapter(device, queue, &lim)
	if got := a.MaxBufferSize(); got != 64 {
		t.Errorf("MaxBufferSize() = %d, want 64", got)
	}
}

func TestHALAdapterCreateDestroy(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	a := NewHALAdapter(device, queue, nil)
	id1, err := a.CreateBuffer("batch-0", 256, gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		t.Fatalf("CreateBuffer failed: %v", err)
	}
	id2, err := a.CreateBuffer("batch-1", 256, gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		t.Fatalf("CreateBuffer failed: %v", err)
	}
	if id1 == gpucore.InvalidID || id2 == gpucore.InvalidID {
		t.Fatalf("CreateBuffer returned InvalidID: %d, %d", id1, id2)
	}
	if id1 == id2 {
		t.Errorf("CreateBuffer returned duplicate ID %d", id1)
	}
	if got := a.BufferCount(); got != 2 {
		t.Errorf("BufferCount() = %d, want 2", got)
	}

	a.DestroyBuffer(id1)
	a.DestroyBuffer(id1) // unknown IDs are ignored
	if got := a.BufferCount(); got != 1 {
		t.Errorf("BufferCount() after destroy = %d, want 1", got)
	}

	a.Close()
	if got := a.BufferCount(); got != 0 {
		t.Errorf("BufferCount() after Close = %d, want 0", got)
	}
}

func TestHALAdapterCreateErrors(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	lim := gputypes.DefaultLimits()
	lim.MaxBufferSize = 1024
	a := NewHALAdapter(device, queue, &lim)

	tests := []struct {
		name string
		size uint64
		want error
	}{
		{"zero size", 0, ErrInvalidBuffer},
		{"over limit", 1028, ErrBufferTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := a.CreateBuffer("x", tt.size, gputypes.BufferUsageVertex)
			if !errors.Is(err, tt.want) {
				t.Errorf("CreateBuffer(%d) error = %v, want %v", tt.size, err, tt.want)
			}
			if id != gpucore.InvalidID {
				t.Errorf("CreateBuffer(%d) id = %d, want InvalidID", tt.size, id)
			}
		})
	}
	if got := a.BufferCount(); got != 0 {
		t.Errorf("BufferCount() = %d, want 0", got)
	}
}

func TestHALAdapterWriteBuffer(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	a := NewHALAdapter(device, queue, nil)
	defer a.Close()

	id, err := a.CreateBuffer("batch", 16, gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		t.Fatalf("CreateBuffer failed: %v", err)
	}

	// None of these may panic: in-bounds, empty, out-of-bounds, unknown.
	a.WriteBuffer(id, 0, make([]byte, 16))
	a.WriteBuffer(id, 8, nil)
	a.WriteBuffer(id, 12, make([]byte, 8))
	a.WriteBuffer(gpucore.BufferID(9999), 0, make([]byte, 4))
}

// =============================================================================
// Provider bridge
// =============================================================================

type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

type mockQueue struct{}

type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider without HAL access.
type mockProvider struct{}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

var (
	_ gpucontext.DeviceProvider = (*mockProvider)(nil)
	_ gpucontext.DeviceProvider = (*halMockProvider)(nil)
)

// halMockProvider additionally exposes HAL device and queue.
type halMockProvider struct {
	mockProvider
	device any
	queue  any
}

func (m *halMockProvider) HalDevice() any { return m.device }
func (m *halMockProvider) HalQueue() any  { return m.queue }

func TestNewHALAdapterFromProvider(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	a, err := NewHALAdapterFromProvider(&halMockProvider{device: device, queue: queue})
	if err != nil {
		t.Fatalf("NewHALAdapterFromProvider failed: %v", err)
	}
	defer a.Close()

	if !a.External() {
		t.Error("External() = false, want true")
	}
	if _, err := a.CreateBuffer("shared", 64, gputypes.BufferUsageVertex); err != nil {
		t.Errorf("CreateBuffer on shared device failed: %v", err)
	}
}

func TestNewHALAdapterFromProviderErrors(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
	}{
		{"no HAL methods", &mockProvider{}},
		{"wrong device type", &halMockProvider{device: "device", queue: nil}},
		{"nil queue", &halMockProvider{device: device, queue: nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewHALAdapterFromProvider(tt.provider)
			if !errors.Is(err, ErrNoHALProvider) {
				t.Errorf("error = %v, want ErrNoHALProvider", err)
			}
			if a != nil {
				t.Error("expected nil adapter on error")
			}
		})
	}
}

func TestHALAdapterSetLogger(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	a := NewHALAdapter(device, queue, nil)
	a.SetLogger(nil)
	if slogger() == nil {
		t.Error("slogger() returned nil after SetLogger(nil)")
	}
}
