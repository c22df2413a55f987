// Package batcher packs a changing set of variably sized records into
// fixed-capacity storage blocks and tracks which bytes of each block changed,
// so a GPU upload only has to send the minimum.
//
// # Overview
//
// A [Sized] batcher holds weighted entries (for example sprites weighted by
// vertex count) in an ordered list of [Batch] values. Each batch owns one
// change-tracked storage built by a caller-supplied factory
// (see package storage). Entries are packed densely in insertion order, and
// the offset of an entry is the sum of the weights before it, answered in
// O(log n) by a prefix-sum index (see package prefixsum).
//
// # Quick Start
//
//	b, _ := batcher.New(4096, func() storage.Storage[*Sprite] {
//	    return storage.NewElements(4096, vertexSize, encodeSprite)
//	})
//	_ = batcher.AddWeighted(b, sprite)
//	for _, bt := range b.Finalize() {
//	    r := bt.Storage().Changed()
//	    // upload bt.Storage().Bytes()[r.From:r.End()]
//	    bt.Storage().ClearChange()
//	}
//
// Package upload does the last step for gpucore.BufferAdapter backends.
//
// # Mutation and Finalize
//
// Add, Delete and Change update membership immediately and raise the
// [ChangeFlag]. Storage writes are deferred to Finalize, which encodes new
// and changed entries and compacts batches after deletes by shifting the
// surviving entries down in place.
//
// # Logging
//
// The package is silent by default. Install a logger with [SetLogger] to get
// Debug records for every Finalize and Warn records for rejected entries.
package batcher

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
