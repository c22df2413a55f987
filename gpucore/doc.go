// Package gpucore defines the GPU boundary shared by the upload path and
// the backends.
//
// The [BufferAdapter] interface abstracts over GPU backend implementations so
// that the same upload code works with:
//   - gogpu/wgpu HAL devices (backend/native)
//   - in-process byte buffers (backend/memory), for tests and headless runs
//
//	               +-----------------+
//	               |     upload      |
//	               |   (Uploader)    |
//	               +--------+--------+
//	                        |
//	                 BufferAdapter
//	                        |
//	         +--------------+--------------+
//	         |                             |
//	+--------v--------+          +--------v--------+
//	| backend/native  |          | backend/memory  |
//	|  (hal.Device)   |          |    ([]byte)     |
//	+-----------------+          +-----------------+
//
// # Resource Management
//
// GPU buffers are addressed via opaque [BufferID] handles. Adapters are
// responsible for tracking the mapping between IDs and actual resources.
// IDs become invalid after DestroyBuffer and are never reused.
package gpucore
