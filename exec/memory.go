package exec

import (
	"github.com/wippyai/wasm-core/errors"
	"github.com/wippyai/wasm-core/memory"
	"github.com/wippyai/wasm-core/values"
)

// Reg covers the four register shapes a load can land in. The type
// parameter picks the extension rule for partial-width loads, the same
// way memory.Load does.
type Reg interface {
	int32 | uint32 | int64 | uint64
}

// RunMemorySize pushes the current page count, as i64 for 64-bit
// memories and i32 otherwise.
func RunMemorySize(st *Stack, m *memory.Instance) {
	pushIndex(st, m, m.Pages())
}

// RunMemoryGrow replaces the page delta on top with the previous page
// count, or with -1 when the grow is refused. The result lane follows
// the memory's index type.
func RunMemoryGrow(st *Stack, m *memory.Instance) {
	if m.Type().Limits.Memory64 {
		n := st.Top().U64()
		old := m.Pages()
		if m.GrowPage(n) {
			st.SetTop(values.NewU64(old))
		} else {
			st.SetTop(values.NewI64(-1))
		}
		return
	}
	n := uint64(st.Top().U32())
	old := uint32(m.Pages())
	if m.GrowPage(n) {
		st.SetTop(values.NewU32(old))
	} else {
		st.SetTop(values.NewI32(-1))
	}
}

// RunMemoryInit pops a length, a segment offset, and a memory offset, and
// copies that window of seg into memory. Both the segment window and the
// destination are bounds-checked.
func RunMemoryInit(st *Stack, m *memory.Instance, seg DataSegment) error {
	length := popIndex(st, m)
	src := popIndex(st, m)
	dst := popIndex(st, m)
	return m.SetBytes(seg.Bytes(), dst, src, length)
}

// RunDataDrop drops the data segment's contents.
func RunDataDrop(seg DataSegment) {
	seg.Clear()
}

// RunElemDrop drops the element segment's contents.
func RunElemDrop(seg ElemSegment) {
	seg.Clear()
}

// RunMemoryCopy pops a length, a source offset, and a destination offset,
// and copies between the two memories. src and dst may be the same
// instance; overlapping ranges behave like memmove.
func RunMemoryCopy(st *Stack, dst, src *memory.Instance) error {
	length := popIndex(st, src)
	srcOff := popIndex(st, src)
	dstOff := popIndex(st, dst)
	b, err := src.Bytes(srcOff, length)
	if err != nil {
		return err
	}
	return dst.SetBytes(b, dstOff, 0, length)
}

// RunMemoryFill pops a length, a byte value, and an offset, and fills the
// range with the value's low byte.
func RunMemoryFill(st *Stack, m *memory.Instance) error {
	length := popIndex(st, m)
	val := byte(st.Pop().U32())
	off := popIndex(st, m)
	return m.FillBytes(val, off, length)
}

// RunLoad pops the base address, adds the static offset, and pushes the
// loaded value extended to T. length narrows the read for the partial
// loads (1, 2, or 4 bytes); extension into T follows memory.Load.
func RunLoad[T Reg](st *Stack, m *memory.Instance, offset uint64, length uint32) error {
	addr, err := effectiveAddr(st, m, offset, uint64(length))
	if err != nil {
		return err
	}
	v, err := memory.Load[T](m, addr, length)
	if err != nil {
		return err
	}
	st.Push(regVal(v))
	return nil
}

// RunStore pops a value and a base address and writes the value's low
// length bytes at base plus the static offset. Stores truncate, so one
// entry serves every register shape.
func RunStore(st *Stack, m *memory.Instance, offset uint64, length uint32) error {
	v := st.Pop()
	addr, err := effectiveAddr(st, m, offset, uint64(length))
	if err != nil {
		return err
	}
	return memory.Store(m, v.U64(), addr, length)
}

// RunLoadF32 pops the base address and pushes the f32 at base plus
// offset.
func RunLoadF32(st *Stack, m *memory.Instance, offset uint64) error {
	addr, err := effectiveAddr(st, m, offset, 4)
	if err != nil {
		return err
	}
	f, err := memory.LoadFloat32(m, addr)
	if err != nil {
		return err
	}
	st.Push(values.NewF32(f))
	return nil
}

// RunLoadF64 pops the base address and pushes the f64 at base plus
// offset.
func RunLoadF64(st *Stack, m *memory.Instance, offset uint64) error {
	addr, err := effectiveAddr(st, m, offset, 8)
	if err != nil {
		return err
	}
	f, err := memory.LoadFloat64(m, addr)
	if err != nil {
		return err
	}
	st.Push(values.NewF64(f))
	return nil
}

// RunStoreF32 pops an f32 and a base address and stores the bit pattern.
func RunStoreF32(st *Stack, m *memory.Instance, offset uint64) error {
	v := st.Pop().F32()
	addr, err := effectiveAddr(st, m, offset, 4)
	if err != nil {
		return err
	}
	return memory.StoreFloat32(m, v, addr)
}

// RunStoreF64 pops an f64 and a base address and stores the bit pattern.
func RunStoreF64(st *Stack, m *memory.Instance, offset uint64) error {
	v := st.Pop().F64()
	addr, err := effectiveAddr(st, m, offset, 8)
	if err != nil {
		return err
	}
	return memory.StoreFloat64(m, v, addr)
}

// RunLoadV128 pops the base address and pushes the 16 bytes at base plus
// offset as a v128.
func RunLoadV128(st *Stack, m *memory.Instance, offset uint64) error {
	addr, err := effectiveAddr(st, m, offset, 16)
	if err != nil {
		return err
	}
	lo, hi, err := memory.LoadV128(m, addr)
	if err != nil {
		return err
	}
	st.Push(values.NewV128(lo, hi))
	return nil
}

// RunStoreV128 pops a v128 and a base address and stores the 16 bytes.
func RunStoreV128(st *Stack, m *memory.Instance, offset uint64) error {
	lo, hi := st.Pop().V128()
	addr, err := effectiveAddr(st, m, offset, 16)
	if err != nil {
		return err
	}
	return memory.StoreV128(m, lo, hi, addr)
}

// popIndex pops an address operand at the memory's index width.
func popIndex(st *Stack, m *memory.Instance) uint64 {
	if m.Type().Limits.Memory64 {
		return st.Pop().U64()
	}
	return uint64(st.Pop().U32())
}

func pushIndex(st *Stack, m *memory.Instance, v uint64) {
	if m.Type().Limits.Memory64 {
		st.Push(values.NewU64(v))
	} else {
		st.Push(values.NewU32(uint32(v)))
	}
}

// effectiveAddr pops the base address and adds the instruction's static
// offset, trapping when the 64-bit sum would wrap.
func effectiveAddr(st *Stack, m *memory.Instance, offset, length uint64) (uint64, error) {
	base := popIndex(st, m)
	if ^uint64(0)-base < offset {
		return 0, errors.MemoryOutOfBounds(base, length, m.BoundIdx())
	}
	return base + offset, nil
}

func regVal[T Reg](v T) values.Val {
	switch x := any(v).(type) {
	case int32:
		return values.NewI32(x)
	case uint32:
		return values.NewU32(x)
	case int64:
		return values.NewI64(x)
	case uint64:
		return values.NewU64(x)
	}
	return values.Val{}
}
