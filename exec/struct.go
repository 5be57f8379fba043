package exec

import (
	"github.com/wippyai/wasm-core/errors"
	"github.com/wippyai/wasm-core/heap"
	"github.com/wippyai/wasm-core/types"
	"github.com/wippyai/wasm-core/values"
)

// RunStructNew allocates a struct of the type at typeIdx on h and pushes
// its reference. With isDefault set nothing is popped and every field
// starts at its zero value; otherwise one operand per field is popped
// (bottom first), each packed to its field's storage type.
func RunStructNew(h *heap.Heap, st *Stack, table *types.Table, typeIdx uint32, isDefault bool) {
	if isDefault {
		st.Push(values.NewRef(h.NewStruct(table, typeIdx).Ref()))
		return
	}
	fields := table.Get(typeIdx).CompType().Fields()
	vals := st.PopN(len(fields))
	for i := range vals {
		vals[i] = packVal(fields[i].Storage, vals[i])
	}
	st.Push(values.NewRef(h.NewStructFrom(table, typeIdx, vals).Ref()))
}

// RunStructGet replaces the struct reference on top with the value of
// field fieldIdx, unpacked per the field's storage type. Traps on null.
func RunStructGet(h *heap.Heap, st *Stack, fieldIdx uint32, signed bool) error {
	inst := h.Struct(st.Top().Ref().Handle)
	if inst == nil {
		return errors.NullAccess("struct.get")
	}
	st.SetTop(unpackVal(inst.DataType(fieldIdx), inst.Get(fieldIdx), signed))
	return nil
}

// RunStructSet pops a value and a struct reference and stores the value,
// packed, into field fieldIdx. Traps on null.
func RunStructSet(h *heap.Heap, st *Stack, fieldIdx uint32) error {
	v := st.Pop()
	inst := h.Struct(st.Pop().Ref().Handle)
	if inst == nil {
		return errors.NullAccess("struct.set")
	}
	inst.Set(fieldIdx, packVal(inst.DataType(fieldIdx), v))
	return nil
}
