package memory

import (
	"bytes"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/batcher/gpucore"
)

func TestCreateBuffer(t *testing.T) {
	a := NewAdapter(64)
	if got := a.MaxBufferSize(); got != 64 {
		t.Errorf("MaxBufferSize() = %d, want 64", got)
	}

	tests := []struct {
		name    string
		size    uint64
		wantErr bool
	}{
		{"aligned", 16, false},
		{"max", 64, false},
		{"zero", 0, true},
		{"misaligned", 6, true},
		{"too large", 68, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := a.CreateBuffer(tt.name, tt.size, gputypes.BufferUsageVertex)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateBuffer(%d) error = %v, wantErr %v", tt.size, err, tt.wantErr)
			}
			if tt.wantErr {
				if id != gpucore.InvalidID {
					t.Errorf("CreateBuffer(%d) id = %d, want InvalidID", tt.size, id)
				}
				return
			}
			data, ok := a.Contents(id)
			if !ok || uint64(len(data)) != tt.size {
				t.Errorf("Contents(%d) = %d bytes, ok=%v, want %d", id, len(data), ok, tt.size)
			}
			if label, _ := a.Label(id); label != tt.name {
				t.Errorf("Label(%d) = %q, want %q", id, label, tt.name)
			}
		})
	}
	if got := a.BufferCount(); got != 2 {
		t.Errorf("BufferCount() = %d, want 2", got)
	}
}

func TestDefaultMaxBufferSize(t *testing.T) {
	if got := NewAdapter(0).MaxBufferSize(); got != DefaultMaxBufferSize {
		t.Errorf("MaxBufferSize() = %d, want %d", got, DefaultMaxBufferSize)
	}
}

func TestWriteBuffer(t *testing.T) {
	a := NewAdapter(0)
	id, err := a.CreateBuffer("b", 12, gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		t.Fatal(err)
	}
	if usage, _ := a.Usage(id); usage != gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst {
		t.Errorf("Usage() = %v", usage)
	}

	a.WriteBuffer(id, 4, []byte{1, 2, 3, 4})
	a.WriteBuffer(id, 8, []byte{5, 6, 7, 8})

	got, _ := a.Contents(id)
	want := []byte{0, 0, 0, 0, 1, 2, 3, 4, 5, 6, 7, 8}
	if !bytes.Equal(got, want) {
		t.Errorf("Contents() = %v, want %v", got, want)
	}
	if n := a.BytesWritten(); n != 8 {
		t.Errorf("BytesWritten() = %d, want 8", n)
	}
	writes := a.Writes()
	if len(writes) != 2 || writes[0] != (Write{ID: id, Offset: 4, Len: 4}) {
		t.Errorf("Writes() = %+v", writes)
	}

	a.ResetWrites()
	if len(a.Writes()) != 0 || a.BytesWritten() != 0 {
		t.Error("ResetWrites() did not clear the write log")
	}
	if got, _ := a.Contents(id); !bytes.Equal(got, want) {
		t.Error("ResetWrites() changed buffer contents")
	}
}

func TestWriteBufferPanics(t *testing.T) {
	a := NewAdapter(0)
	id, err := a.CreateBuffer("b", 8, gputypes.BufferUsageVertex)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		id     gpucore.BufferID
		offset uint64
		data   []byte
	}{
		{"unknown buffer", id + 100, 0, make([]byte, 4)},
		{"misaligned offset", id, 2, make([]byte, 4)},
		{"misaligned length", id, 0, make([]byte, 3)},
		{"past end", id, 4, make([]byte, 8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("WriteBuffer did not panic")
				}
			}()
			a.WriteBuffer(tt.id, tt.offset, tt.data)
		})
	}
}

func TestDestroyBuffer(t *testing.T) {
	a := NewAdapter(0)
	id, _ := a.CreateBuffer("b", 4, gputypes.BufferUsageVertex)
	a.DestroyBuffer(id)
	a.DestroyBuffer(id)
	if _, ok := a.Contents(id); ok {
		t.Error("Contents() found a destroyed buffer")
	}
	next, _ := a.CreateBuffer("c", 4, gputypes.BufferUsageVertex)
	if next == id {
		t.Errorf("CreateBuffer reused destroyed ID %d", id)
	}
}
