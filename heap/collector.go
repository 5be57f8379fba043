package heap

import "github.com/wippyai/wasm-core/values"

// Collector is the extension point a garbage collector plugs into. The
// heap today only accumulates: instances stay live until the heap itself
// is dropped, and RefCount is advisory. An implementation would trace
// from the roots the embedder knows about and release unreferenced slots.
//
// Nothing in this module implements Collector yet.
type Collector interface {
	// Mark records that root and everything reachable from it is live.
	Mark(root values.Ref)
	// Sweep releases every unmarked instance and reports how many.
	Sweep() int
}
