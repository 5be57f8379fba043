// Package memory implements wasm linear memory: a page-granular byte
// buffer with bounds-checked access, growth against declared and embedder
// limits, and typed little-endian loads and stores with the wasm
// sign-extension and wrapping rules.
//
// Every access checks bounds first and reports an out-of-bounds error
// without touching the buffer. Zero-length accesses succeed anywhere the
// offset itself is in range, including at the very end of memory.
//
// Bytes and StringView return views that alias the buffer. A successful
// GrowPage swaps the buffer out, so treat any held view as stale after
// growth. Instances are not synchronized; see the package doc of runtime
// for the sharing rules.
package memory
