// Command batchdemo simulates sprite churn over a number of frames and
// reports how many bytes each frame uploads compared to a full re-upload.
package main

import (
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/batcher"
	"github.com/gogpu/batcher/backend/memory"
	"github.com/gogpu/batcher/backend/native"
	"github.com/gogpu/batcher/gpucore"
	"github.com/gogpu/batcher/storage"
	"github.com/gogpu/batcher/upload"
)

// vertexSize is the size of one x, y, u, v float32 vertex.
const vertexSize = 16

type sprite struct {
	x, y     float32
	vertices int
}

func (s *sprite) Weight() int { return s.vertices }

func encodeSprite(dst []byte, s *sprite) int {
	for i := range s.vertices {
		v := dst[i*vertexSize:]
		binary.LittleEndian.PutUint32(v[0:], math.Float32bits(s.x))
		binary.LittleEndian.PutUint32(v[4:], math.Float32bits(s.y))
		binary.LittleEndian.PutUint32(v[8:], math.Float32bits(float32(i&1)))
		binary.LittleEndian.PutUint32(v[12:], math.Float32bits(float32(i>>1&1)))
	}
	return s.vertices * vertexSize
}

func main() {
	var (
		frames  = flag.Int("frames", 10, "number of frames to simulate")
		sprites = flag.Int("sprites", 1000, "initial sprite count")
		maxVert = flag.Int("max", 4096, "batch capacity in vertices")
		churn   = flag.Float64("churn", 0.02, "fraction of sprites spawned, killed and moved per frame")
		seed    = flag.Uint64("seed", 1, "random seed")
		backend = flag.String("backend", "memory", "buffer backend: memory or noop (HAL noop device)")
		verbose = flag.Bool("v", false, "log batcher diagnostics")
	)
	flag.Parse()

	if *verbose {
		batcher.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	changed := batcher.NewChangeFlag()
	b, err := batcher.New(*maxVert, func() storage.Storage[*sprite] {
		return storage.NewElements(*maxVert, vertexSize, encodeSprite)
	}, batcher.WithChangeFlag(changed), batcher.WithCapacity(*sprites))
	if err != nil {
		log.Fatalf("Failed to create batcher: %v", err)
	}

	adapter, cleanup, err := openAdapter(*backend)
	if err != nil {
		log.Fatalf("Failed to open %s backend: %v", *backend, err)
	}
	defer cleanup()

	u, err := upload.New(adapter, upload.WithLabel("sprites"))
	if err != nil {
		log.Fatalf("Failed to create uploader: %v", err)
	}
	defer u.Close()
	upload.Track(u, b)

	rng := rand.New(rand.NewPCG(*seed, *seed))
	var live []*sprite
	spawn := func() {
		s := &sprite{x: rng.Float32() * 1000, y: rng.Float32() * 1000, vertices: 3 * (1 + rng.IntN(4))}
		if err := batcher.AddWeighted(b, s); err != nil {
			log.Fatalf("Failed to add sprite: %v", err)
		}
		live = append(live, s)
	}
	for range *sprites {
		spawn()
	}

	for frame := range *frames {
		if frame > 0 {
			n := max(1, int(float64(len(live)) * *churn))
			for range n {
				if len(live) == 0 {
					break
				}
				i := rng.IntN(len(live))
				b.Delete(live[i])
				live[i] = live[len(live)-1]
				live = live[:len(live)-1]
			}
			for range n {
				spawn()
			}
			for range n {
				s := live[rng.IntN(len(live))]
				s.x += rng.Float32()*2 - 1
				b.Change(s)
			}
		}

		if !changed.Changed() {
			continue
		}
		batches := b.Finalize()
		sent, err := upload.SyncBatches(u, batches)
		if err != nil {
			log.Fatalf("Frame %d: upload failed: %v", frame, err)
		}
		changed.Clear()

		full := b.AggregateSize() * vertexSize
		log.Printf("frame %3d: %5d sprites in %2d batches, uploaded %8d of %8d bytes (%5.1f%%)",
			frame, b.Len(), len(batches), sent, full, percent(sent, full))
	}

	st := u.Stats()
	log.Printf("total: %d writes, %d bytes, %d buffers live", st.Writes, st.Bytes, st.Buffers)
}

// openAdapter returns the buffer adapter for the named backend and a
// function releasing it.
func openAdapter(name string) (gpucore.BufferAdapter, func(), error) {
	switch name {
	case "memory":
		return memory.NewAdapter(0), func() {}, nil
	case "noop":
		api := noop.API{}
		instance, err := api.CreateInstance(nil)
		if err != nil {
			return nil, nil, fmt.Errorf("create instance: %w", err)
		}
		adapters := instance.EnumerateAdapters(nil)
		if len(adapters) == 0 {
			instance.Destroy()
			return nil, nil, errors.New("no adapters")
		}
		openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
		if err != nil {
			instance.Destroy()
			return nil, nil, fmt.Errorf("open device: %w", err)
		}
		lim := gputypes.DefaultLimits()
		a := native.NewHALAdapter(openDev.Device, openDev.Queue, &lim)
		return a, func() {
			a.Close()
			openDev.Device.Destroy()
			instance.Destroy()
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", name)
	}
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}
