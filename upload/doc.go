// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package upload copies the dirty ranges of batch storages into GPU buffers.
//
// An [Uploader] keeps one buffer per storage, created on first use with the
// storage's full capacity. Each Sync writes only the storage's changed byte
// range, widened to the 4-byte copy alignment WebGPU requires, and then
// clears it:
//
//	u, _ := upload.New(adapter)
//	upload.Track(u, b)
//	for frame := range frames {
//	    mutate(b)
//	    if flag.Changed() {
//	        if _, err := upload.SyncBatches(u, b.Finalize()); err != nil {
//	            return err
//	        }
//	        flag.Clear()
//	    }
//	}
//
// Track hooks the batcher's release callback so buffers of removed batches
// are destroyed.
package upload
