package wasmcore

// Allocator provides backing storage for WebAssembly linear memories.
//
// All sizes are in 64 KiB wasm pages. Implementations report failure by
// returning nil; they must not panic on unsatisfiable requests. The
// returned buffer must be exactly pages*65536 bytes long and zeroed.
type Allocator interface {
	// Allocate returns a zeroed buffer of the given page count,
	// or nil if the request cannot be satisfied.
	Allocate(pages uint64) []byte

	// Resize grows or shrinks a buffer previously returned by Allocate
	// or Resize. Existing contents up to min(oldPages, newPages) are
	// preserved and any added space is zeroed. Returns nil on failure,
	// in which case buf remains valid and untouched.
	Resize(buf []byte, oldPages, newPages uint64) []byte

	// Release returns a buffer to the allocator. After Release the
	// buffer must not be used.
	Release(buf []byte, pages uint64)
}

// HeapAllocator is the default Allocator backed by the Go heap.
type HeapAllocator struct{}

const pageSize = 65536

// maxPages is the most pages a Go slice can address on this platform.
const maxPages = uint64(1<<63-1) / pageSize

// Allocate returns a zeroed Go slice of the given page count.
func (HeapAllocator) Allocate(pages uint64) []byte {
	if pages > maxPages {
		return nil
	}
	return make([]byte, pages*pageSize)
}

// Resize reallocates the buffer, copying the preserved prefix.
func (HeapAllocator) Resize(buf []byte, oldPages, newPages uint64) []byte {
	if newPages > maxPages {
		return nil
	}
	next := make([]byte, newPages*pageSize)
	copy(next, buf)
	return next
}

// Release is a no-op; the Go garbage collector reclaims the buffer.
func (HeapAllocator) Release(buf []byte, pages uint64) {}
