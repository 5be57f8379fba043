package runtime

import (
	"encoding/binary"

	"github.com/wippyai/wasm-core/values"
)

// DataInstance is one passive data segment: the bytes memory.init,
// array.new_data, and array.init_data read from. data.drop empties it.
type DataInstance struct {
	data []byte
}

// NewDataInstance wraps segment bytes. The segment aliases b; callers
// that reuse the buffer should pass a copy.
func NewDataInstance(b []byte) *DataInstance {
	return &DataInstance{data: b}
}

// Bytes returns the segment contents. A dropped segment is empty.
func (d *DataInstance) Bytes() []byte {
	return d.data
}

// Size returns the segment length in bytes.
func (d *DataInstance) Size() uint64 {
	return uint64(len(d.data))
}

// LoadPacked reads the little-endian value of the given byte width at
// offset. Width is 1, 2, 4, 8, or 16; keeping the window inside the
// segment is the caller's precondition, checked by the instruction
// before it reads.
func (d *DataInstance) LoadPacked(offset uint64, width uint32) values.Val {
	if width == 16 {
		return values.NewV128(
			binary.LittleEndian.Uint64(d.data[offset:]),
			binary.LittleEndian.Uint64(d.data[offset+8:]))
	}
	var raw uint64
	for i := uint64(0); i < uint64(width); i++ {
		raw |= uint64(d.data[offset+i]) << (i * 8)
	}
	return values.NewU64(raw)
}

// Clear drops the contents. data.drop lands here.
func (d *DataInstance) Clear() {
	d.data = nil
}

// ElementInstance is one passive element segment: the references
// array.new_elem and array.init_elem copy from. elem.drop empties it.
type ElementInstance struct {
	refs []values.Ref
}

// NewElementInstance wraps segment references.
func NewElementInstance(refs []values.Ref) *ElementInstance {
	return &ElementInstance{refs: refs}
}

// Refs returns the segment's references. A dropped segment is empty.
func (e *ElementInstance) Refs() []values.Ref {
	return e.refs
}

// Clear drops the contents. elem.drop lands here.
func (e *ElementInstance) Clear() {
	e.refs = nil
}
