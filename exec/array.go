package exec

import (
	"go.uber.org/zap"

	"github.com/wippyai/wasm-core/errors"
	"github.com/wippyai/wasm-core/heap"
	"github.com/wippyai/wasm-core/types"
	"github.com/wippyai/wasm-core/values"
)

// RunArrayNew allocates an array of the type at typeIdx on h. The three
// constructor forms share one entry the way a dispatch table invokes
// them: initCnt 0 pushes a default-valued array of valCnt elements,
// initCnt 1 replaces the init operand on top with a filled array, and
// initCnt == valCnt pops that many operands (bottom first) as the fixed
// element list. The length operand, for the forms that have one, is
// popped by the caller and passed as valCnt.
func RunArrayNew(h *heap.Heap, st *Stack, table *types.Table, typeIdx uint32, initCnt, valCnt uint32) {
	elem := table.Get(typeIdx).CompType().Fields()[0].Storage
	switch initCnt {
	case 0:
		st.Push(values.NewRef(h.NewArray(table, typeIdx, valCnt).Ref()))
	case 1:
		init := packVal(elem, st.Top())
		st.SetTop(values.NewRef(h.NewArrayFill(table, typeIdx, valCnt, init).Ref()))
	default:
		vals := packVals(elem, st.PopN(int(valCnt)))
		st.Push(values.NewRef(h.NewArrayFrom(table, typeIdx, vals).Ref()))
	}
}

// RunArrayNewData pops the element count, then replaces the segment
// offset on top with a new array loaded from seg. Elements are read
// little-endian at the packed storage width.
func RunArrayNewData(h *heap.Heap, st *Stack, table *types.Table, typeIdx uint32, seg DataSegment) error {
	n := st.Pop().U32()
	s := st.Top().U32()
	elem := table.Get(typeIdx).CompType().Fields()[0].Storage
	bsize := uint64(elem.BitWidth() / 8)
	size := uint64(len(seg.Bytes()))
	// The source window must end strictly inside the segment.
	// TODO: allow a window ending exactly at the segment end; the GC spec
	// permits s + n*bsize == size.
	if uint64(s)+uint64(n)*bsize >= size {
		Logger().Debug("array.new_data window out of bounds",
			zap.Uint32("start", s),
			zap.Uint32("count", n),
			zap.Uint64("segment_size", size))
		return errors.LengthOutOfBounds(uint64(s), uint64(n)*bsize, size)
	}
	inst := h.NewArray(table, typeIdx, n)
	for i := uint32(0); i < n; i++ {
		inst.Set(i, seg.LoadPacked(uint64(s)+uint64(i)*bsize, uint32(bsize)))
	}
	st.SetTop(values.NewRef(inst.Ref()))
	return nil
}

// RunArrayNewElem pops the element count, then replaces the segment
// offset on top with a new array holding seg's references from that
// offset.
func RunArrayNewElem(h *heap.Heap, st *Stack, table *types.Table, typeIdx uint32, seg ElemSegment) error {
	n := st.Pop().U32()
	s := st.Top().U32()
	refs := seg.Refs()
	// Same window rule as array.new_data.
	if uint64(s)+uint64(n) >= uint64(len(refs)) {
		Logger().Debug("array.new_elem window out of bounds",
			zap.Uint32("start", s),
			zap.Uint32("count", n),
			zap.Int("segment_size", len(refs)))
		return errors.LengthOutOfBounds(uint64(s), uint64(n), uint64(len(refs)))
	}
	vals := make([]values.Val, n)
	for i := range vals {
		vals[i] = values.NewRef(refs[uint64(s)+uint64(i)])
	}
	st.SetTop(values.NewRef(h.NewArrayFrom(table, typeIdx, vals).Ref()))
	return nil
}

// RunArrayGet replaces the array reference and index on top with the
// element value, unpacked per the element storage type. Traps on null and
// on an index at or past the length.
func RunArrayGet(h *heap.Heap, st *Stack, signed bool) error {
	i := st.Pop().U32()
	inst := h.Array(st.Top().Ref().Handle)
	if inst == nil {
		return errors.NullAccess("array.get")
	}
	if i >= inst.Len() {
		return errors.ArrayOutOfBounds(uint64(i), uint64(inst.Len()))
	}
	st.SetTop(unpackVal(inst.DataType(), inst.Get(i), signed))
	return nil
}

// RunArraySet pops a value, an index, and an array reference, and stores
// the value, packed, at the index. Traps on null and out-of-range index.
func RunArraySet(h *heap.Heap, st *Stack) error {
	v := st.Pop()
	i := st.Pop().U32()
	inst := h.Array(st.Pop().Ref().Handle)
	if inst == nil {
		return errors.NullAccess("array.set")
	}
	if i >= inst.Len() {
		return errors.ArrayOutOfBounds(uint64(i), uint64(inst.Len()))
	}
	inst.Set(i, packVal(inst.DataType(), v))
	return nil
}

// RunArrayLen replaces the array reference on top with its length. Traps
// on null.
func RunArrayLen(h *heap.Heap, st *Stack) error {
	inst := h.Array(st.Top().Ref().Handle)
	if inst == nil {
		return errors.NullAccess("array.len")
	}
	st.SetTop(values.NewU32(inst.Len()))
	return nil
}

// RunArrayFill pops a count, a value, an offset, and an array reference,
// and sets every element in [offset, offset+count) to the packed value.
func RunArrayFill(h *heap.Heap, st *Stack) error {
	cnt := st.Pop().U32()
	v := st.Pop()
	off := st.Pop().U32()
	inst := h.Array(st.Pop().Ref().Handle)
	if inst == nil {
		return errors.NullAccess("array.fill")
	}
	if err := arrayRange(inst, off, cnt); err != nil {
		return err
	}
	v = packVal(inst.DataType(), v)
	window := inst.Data()[off : off+cnt]
	for i := range window {
		window[i] = v
	}
	return nil
}

// RunArrayCopy pops a count, a source offset and reference, and a
// destination offset and reference, and copies count elements. Both
// ranges are bounds-checked; overlapping copies within one array behave
// like memmove.
func RunArrayCopy(h *heap.Heap, st *Stack) error {
	cnt := st.Pop().U32()
	srcOff := st.Pop().U32()
	src := h.Array(st.Pop().Ref().Handle)
	dstOff := st.Pop().U32()
	dst := h.Array(st.Pop().Ref().Handle)
	if dst == nil || src == nil {
		return errors.NullAccess("array.copy")
	}
	if err := arrayRange(src, srcOff, cnt); err != nil {
		return err
	}
	if err := arrayRange(dst, dstOff, cnt); err != nil {
		return err
	}
	copy(dst.Data()[dstOff:dstOff+cnt], src.Data()[srcOff:srcOff+cnt])
	return nil
}

// RunArrayInitData pops a count, a segment offset, an array offset, and
// an array reference, and loads count elements from seg into the array.
func RunArrayInitData(h *heap.Heap, st *Stack, seg DataSegment) error {
	cnt := st.Pop().U32()
	srcOff := st.Pop().U32()
	dstOff := st.Pop().U32()
	inst := h.Array(st.Pop().Ref().Handle)
	if inst == nil {
		return errors.NullAccess("array.init_data")
	}
	if err := arrayRange(inst, dstOff, cnt); err != nil {
		return err
	}
	bsize := uint64(inst.DataType().BitWidth() / 8)
	size := uint64(len(seg.Bytes()))
	if uint64(srcOff)+uint64(cnt)*bsize > size {
		return errors.LengthOutOfBounds(uint64(srcOff), uint64(cnt)*bsize, size)
	}
	for i := uint32(0); i < cnt; i++ {
		inst.Set(dstOff+i, seg.LoadPacked(uint64(srcOff)+uint64(i)*bsize, uint32(bsize)))
	}
	return nil
}

// RunArrayInitElem pops a count, a segment offset, an array offset, and
// an array reference, and copies count references from seg into the
// array.
func RunArrayInitElem(h *heap.Heap, st *Stack, seg ElemSegment) error {
	cnt := st.Pop().U32()
	srcOff := st.Pop().U32()
	dstOff := st.Pop().U32()
	inst := h.Array(st.Pop().Ref().Handle)
	if inst == nil {
		return errors.NullAccess("array.init_elem")
	}
	if err := arrayRange(inst, dstOff, cnt); err != nil {
		return err
	}
	refs := seg.Refs()
	if uint64(srcOff)+uint64(cnt) > uint64(len(refs)) {
		return errors.LengthOutOfBounds(uint64(srcOff), uint64(cnt), uint64(len(refs)))
	}
	for i := uint32(0); i < cnt; i++ {
		inst.Set(dstOff+i, values.NewRef(refs[srcOff+i]))
	}
	return nil
}

func arrayRange(inst *heap.Array, off, cnt uint32) error {
	if uint64(off)+uint64(cnt) > uint64(inst.Len()) {
		return errors.ArrayOutOfBounds(uint64(off)+uint64(cnt), uint64(inst.Len()))
	}
	return nil
}
