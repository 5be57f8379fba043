package heap

import (
	"sync"

	"github.com/wippyai/wasm-core/types"
	"github.com/wippyai/wasm-core/values"
)

// Heap owns every array and struct instance allocated through it. Storage
// is a pair of append-only arenas; instances keep their slot for the
// heap's lifetime, so handles and instance pointers never dangle while the
// heap is alive. Nothing is reclaimed; RefCount is bookkeeping for a
// collector that is not wired in yet.
//
// Allocation is safe for concurrent use. Reading or mutating instance
// data is not synchronized; callers that share instances across
// goroutines coordinate themselves.
type Heap struct {
	mu      sync.Mutex
	arrays  []*Array
	structs []*Struct
}

// New creates an empty heap. Each heap is independent; handles from one
// heap mean nothing to another.
func New() *Heap {
	return &Heap{}
}

// NewArray allocates an array of length n with zero-valued elements:
// numeric slots are zero, reference slots are typed nulls of the element
// type. typeIdx must name an array type in table.
func (h *Heap) NewArray(table *types.Table, typeIdx uint32, n uint32) *Array {
	comp := table.Get(typeIdx).CompType()
	data := make([]values.Val, n)
	elem := comp.Fields()[0].Storage
	if elem.IsRefType() {
		null := values.NewRef(values.NullRef(elem))
		for i := range data {
			data[i] = null
		}
	}
	return h.insertArray(newArray(comp, typeIdx, data))
}

// NewArrayFill allocates an array of length n with every element set to
// init. The value must already be packed to the element storage type.
func (h *Heap) NewArrayFill(table *types.Table, typeIdx uint32, n uint32, init values.Val) *Array {
	comp := table.Get(typeIdx).CompType()
	data := make([]values.Val, n)
	for i := range data {
		data[i] = init
	}
	return h.insertArray(newArray(comp, typeIdx, data))
}

// NewArrayFrom allocates an array holding vals. The heap takes ownership
// of the slice; the caller must not reuse it.
func (h *Heap) NewArrayFrom(table *types.Table, typeIdx uint32, vals []values.Val) *Array {
	comp := table.Get(typeIdx).CompType()
	return h.insertArray(newArray(comp, typeIdx, vals))
}

// NewStruct allocates a struct with zero-valued fields: numeric slots are
// zero, reference slots are typed nulls of the field type. typeIdx must
// name a struct type in table.
func (h *Heap) NewStruct(table *types.Table, typeIdx uint32) *Struct {
	comp := table.Get(typeIdx).CompType()
	fields := comp.Fields()
	data := make([]values.Val, len(fields))
	for i, f := range fields {
		if f.Storage.IsRefType() {
			data[i] = values.NewRef(values.NullRef(f.Storage))
		}
	}
	return h.insertStruct(newStruct(comp, typeIdx, data))
}

// NewStructFrom allocates a struct holding vals as its field values. The
// heap takes ownership of the slice; values must already be packed.
func (h *Heap) NewStructFrom(table *types.Table, typeIdx uint32, vals []values.Val) *Struct {
	comp := table.Get(typeIdx).CompType()
	return h.insertStruct(newStruct(comp, typeIdx, vals))
}

// Array resolves an array handle. Returns nil for the null handle, a
// handle of another kind, or a foreign heap's handle that is out of range
// here.
func (h *Heap) Array(handle values.Handle) *Array {
	if handle.Kind != values.KindArray {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if uint64(handle.Index) >= uint64(len(h.arrays)) {
		return nil
	}
	return h.arrays[handle.Index]
}

// Struct resolves a struct handle. Returns nil for the null handle, a
// handle of another kind, or an out-of-range index.
func (h *Heap) Struct(handle values.Handle) *Struct {
	if handle.Kind != values.KindStruct {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if uint64(handle.Index) >= uint64(len(h.structs)) {
		return nil
	}
	return h.structs[handle.Index]
}

// Stats reports allocation counters.
type Stats struct {
	Arrays  int
	Structs int
}

// Stats returns the current allocation counters.
func (h *Heap) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{Arrays: len(h.arrays), Structs: len(h.structs)}
}

// Instance construction happens outside the lock; only the slot insert and
// handle mint are serialized.

func (h *Heap) insertArray(a *Array) *Array {
	h.mu.Lock()
	a.handle = values.Handle{Kind: values.KindArray, Index: uint32(len(h.arrays))}
	h.arrays = append(h.arrays, a)
	h.mu.Unlock()
	debugf("array %d: type %s, %d elements", a.handle.Index, a.vt, len(a.data))
	return a
}

func (h *Heap) insertStruct(s *Struct) *Struct {
	h.mu.Lock()
	s.handle = values.Handle{Kind: values.KindStruct, Index: uint32(len(h.structs))}
	h.structs = append(h.structs, s)
	h.mu.Unlock()
	debugf("struct %d: type %s, %d fields", s.handle.Index, s.vt, len(s.data))
	return s
}
