package batcher

import (
	"bytes"
	"testing"

	"github.com/gogpu/batcher/storage"
)

// sprite is a test object encoded as size copies of value.
type sprite struct {
	value byte
	size  int
}

func (s *sprite) Weight() int { return s.size }

func encodeSprite(dst []byte, s *sprite) int {
	n := min(s.size, len(dst))
	for i := range n {
		dst[i] = s.value
	}
	return n
}

// newSpriteBatcher creates a batcher over byte storages of maxSize bytes
// and records every storage it creates.
func newSpriteBatcher(t *testing.T, maxSize int, opts ...Option) (*Sized[*sprite], *[]*storage.Bytes[*sprite]) {
	t.Helper()
	var created []*storage.Bytes[*sprite]
	b, err := New(maxSize, func() storage.Storage[*sprite] {
		s := storage.NewBytes(maxSize, encodeSprite)
		created = append(created, s)
		return s
	}, opts...)
	if err != nil {
		t.Fatalf("New(%d) failed: %v", maxSize, err)
	}
	return b, &created
}

// addAll adds sprites using their own size as weight.
func addAll(t *testing.T, b *Sized[*sprite], sprites ...*sprite) {
	t.Helper()
	for _, s := range sprites {
		if err := AddWeighted(b, s); err != nil {
			t.Fatalf("Add(%v) failed: %v", s, err)
		}
	}
}

// expectedBytes returns the packed encoding of a batch's objects.
func expectedBytes(objs []*sprite) []byte {
	var buf bytes.Buffer
	for _, s := range objs {
		buf.Write(bytes.Repeat([]byte{s.value}, s.size))
	}
	return buf.Bytes()
}

// checkPacked verifies that each batch storage holds its objects densely
// packed in order.
func checkPacked(t *testing.T, batches []*Batch[*sprite]) {
	t.Helper()
	for i, bt := range batches {
		want := expectedBytes(bt.Objects())
		got := bt.Storage().Bytes()[:bt.Weight()]
		if !bytes.Equal(got, want) {
			t.Errorf("batch %d storage = %v, want %v", i, got, want)
		}
	}
}
