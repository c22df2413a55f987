package batcher_test

import (
	"fmt"

	"github.com/gogpu/batcher"
	"github.com/gogpu/batcher/storage"
)

type quad struct {
	id byte
}

// Each quad occupies 4 bytes.
func encodeQuad(dst []byte, q *quad) int {
	for i := range 4 {
		dst[i] = q.id
	}
	return 4
}

// ExampleNew shows a frame loop: mutate, finalize, upload dirty ranges,
// clear the flag.
func ExampleNew() {
	flag := batcher.NewChangeFlag()
	b, err := batcher.New(8, func() storage.Storage[*quad] {
		return storage.NewBytes(8, encodeQuad)
	}, batcher.WithChangeFlag(flag))
	if err != nil {
		fmt.Println("create batcher:", err)
		return
	}

	a, c, d := &quad{id: 'a'}, &quad{id: 'c'}, &quad{id: 'd'}
	for _, q := range []*quad{a, c, d} {
		_ = b.Add(q, 4)
	}

	if flag.Changed() {
		for i, bt := range b.Finalize() {
			s := bt.Storage()
			r := s.Changed()
			fmt.Printf("batch %d: weight %d upload %v %q\n", i, bt.Weight(), r, s.Bytes()[r.From:r.End()])
			s.ClearChange()
		}
		flag.Clear()
	}

	b.Delete(a)
	if flag.Changed() {
		for i, bt := range b.Finalize() {
			s := bt.Storage()
			fmt.Printf("batch %d: weight %d upload %v\n", i, bt.Weight(), s.Changed())
			s.ClearChange()
		}
		flag.Clear()
	}

	// Output:
	// batch 0: weight 8 upload [0,8) "aaaacccc"
	// batch 1: weight 4 upload [0,4) "dddd"
	// batch 0: weight 4 upload [0,8)
	// batch 1: weight 4 upload [)
}
