// Package heap manages allocated GC objects: the arrays and structs that
// reference values point at.
//
// A Heap is a pair of append-only arenas. Allocating hands back the
// instance and mints a Handle recording its slot; resolving a Handle is an
// index lookup. Slots are never reused, so a handle stays valid for the
// heap's whole lifetime. There is no collection; the Collector interface
// marks where one would attach.
//
// Allocation goes through a mutex and is safe to call from any goroutine.
// The data inside an instance is shared mutable state with no locking of
// its own.
package heap
