package heap

import (
	"github.com/wippyai/wasm-core/types"
	"github.com/wippyai/wasm-core/values"
)

// Array is one allocated array instance. The composite pointer is borrowed
// from the defining type table, which must outlive the heap.
type Array struct {
	comp     *types.CompositeType
	data     []values.Val
	vt       types.ValType
	handle   values.Handle
	refCount uint32
}

func newArray(comp *types.CompositeType, typeIdx uint32, data []values.Val) *Array {
	return &Array{
		comp:     comp,
		data:     data,
		vt:       types.NewIndexRefType(typeIdx, false),
		refCount: 1,
	}
}

// Handle returns the instance's handle within its heap.
func (a *Array) Handle() values.Handle {
	return a.handle
}

// Ref returns a non-null reference to the instance, typed at its defined
// array type.
func (a *Array) Ref() values.Ref {
	return values.Ref{Type: a.vt, Handle: a.handle}
}

// Len returns the element count.
func (a *Array) Len() uint32 {
	return uint32(len(a.data))
}

// Get returns element i. The index must be in range; instructions bounds
// check before indexing.
func (a *Array) Get(i uint32) values.Val {
	return a.data[i]
}

// Set stores element i. The value must already be packed to the element
// storage type.
func (a *Array) Set(i uint32, v values.Val) {
	a.data[i] = v
}

// Data returns the backing element slice. Mutations are visible to every
// holder of the instance and are not synchronized.
func (a *Array) Data() []values.Val {
	return a.data
}

// DataType returns the element storage type.
func (a *Array) DataType() types.ValType {
	return a.comp.Fields()[0].Storage
}

// Composite returns the defining composite type.
func (a *Array) Composite() *types.CompositeType {
	return a.comp
}

// RefCount returns the advisory reference count. It starts at 1 and is
// never decremented; a wired-in Collector would own it.
func (a *Array) RefCount() uint32 {
	return a.refCount
}
