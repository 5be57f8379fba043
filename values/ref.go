package values

import (
	"fmt"

	"github.com/wippyai/wasm-core/types"
)

// HandleKind says which store an object handle points into.
type HandleKind uint8

const (
	// KindNone marks the null handle.
	KindNone HandleKind = iota
	// KindFunc handles are minted by the embedding engine's function table.
	KindFunc
	// KindExtern handles are minted by the embedder for host objects.
	KindExtern
	// KindArray handles point into a heap's array store.
	KindArray
	// KindStruct handles point into a heap's struct store.
	KindStruct
	// KindI31 carries its 31-bit payload directly in Handle.Index.
	KindI31
)

// String returns the heap-type name of the kind.
func (k HandleKind) String() string {
	switch k {
	case KindFunc:
		return "func"
	case KindExtern:
		return "extern"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	case KindI31:
		return "i31"
	}
	return "none"
}

// Handle identifies one allocated object within its owning store. The zero
// Handle is the null handle. Handles are minted by whoever owns the store:
// the heap for arrays and structs, the executor for i31, the embedder for
// funcs and externs.
type Handle struct {
	Index uint32
	Kind  HandleKind
}

// IsNull reports whether the handle is the null handle.
func (h Handle) IsNull() bool {
	return h.Kind == KindNone
}

// Ref is a reference value: the type it was produced at plus the handle of
// the object it points to. A Ref with the null handle is a null reference;
// its type records which bottom it belongs to.
type Ref struct {
	Type   types.ValType
	Handle Handle
}

// NullRef builds a null reference of the given type.
func NullRef(vt types.ValType) Ref {
	return Ref{Type: vt}
}

// IsNull reports whether the reference is null.
func (r Ref) IsNull() bool {
	return r.Handle.IsNull()
}

// WithType returns the same reference retyped. Used when a checked cast or
// a typed instruction narrows what is statically known about the referent.
func (r Ref) WithType(vt types.ValType) Ref {
	r.Type = vt
	return r
}

// String renders the reference for logs.
func (r Ref) String() string {
	if r.IsNull() {
		return fmt.Sprintf("null:%s", r.Type)
	}
	return fmt.Sprintf("%s:%d", r.Handle.Kind, r.Handle.Index)
}
