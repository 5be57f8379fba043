package heap

import (
	"github.com/wippyai/wasm-core/types"
	"github.com/wippyai/wasm-core/values"
)

// Struct is one allocated struct instance. The composite pointer is
// borrowed from the defining type table, which must outlive the heap.
type Struct struct {
	comp     *types.CompositeType
	data     []values.Val
	vt       types.ValType
	handle   values.Handle
	refCount uint32
}

func newStruct(comp *types.CompositeType, typeIdx uint32, data []values.Val) *Struct {
	return &Struct{
		comp:     comp,
		data:     data,
		vt:       types.NewIndexRefType(typeIdx, false),
		refCount: 1,
	}
}

// Handle returns the instance's handle within its heap.
func (s *Struct) Handle() values.Handle {
	return s.handle
}

// Ref returns a non-null reference to the instance, typed at its defined
// struct type.
func (s *Struct) Ref() values.Ref {
	return values.Ref{Type: s.vt, Handle: s.handle}
}

// FieldCount returns the number of fields.
func (s *Struct) FieldCount() uint32 {
	return uint32(len(s.data))
}

// Get returns field i. The index must be in range; field indices come
// from validated instruction immediates.
func (s *Struct) Get(i uint32) values.Val {
	return s.data[i]
}

// Set stores field i. The value must already be packed to the field
// storage type.
func (s *Struct) Set(i uint32, v values.Val) {
	s.data[i] = v
}

// Data returns the backing field slice. Mutations are visible to every
// holder of the instance and are not synchronized.
func (s *Struct) Data() []values.Val {
	return s.data
}

// DataType returns field i's storage type.
func (s *Struct) DataType(i uint32) types.ValType {
	return s.comp.Fields()[i].Storage
}

// Composite returns the defining composite type.
func (s *Struct) Composite() *types.CompositeType {
	return s.comp
}

// RefCount returns the advisory reference count. It starts at 1 and is
// never decremented; a wired-in Collector would own it.
func (s *Struct) RefCount() uint32 {
	return s.refCount
}
