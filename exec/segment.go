package exec

import "github.com/wippyai/wasm-core/values"

// DataSegment is the window onto a data segment that the instruction set
// needs. The runtime package's DataInstance satisfies it.
type DataSegment interface {
	// Bytes returns the segment contents. A dropped segment is empty.
	Bytes() []byte

	// LoadPacked reads width bytes little-endian at offset, zero
	// extended. width is a packed storage width in bytes (1 to 16) and
	// the window must be in bounds.
	LoadPacked(offset uint64, width uint32) values.Val

	// Clear drops the segment contents.
	Clear()
}

// ElemSegment is the window onto an element segment that the instruction
// set needs. The runtime package's ElementInstance satisfies it.
type ElemSegment interface {
	// Refs returns the segment's references. A dropped segment is empty.
	Refs() []values.Ref

	// Clear drops the segment contents.
	Clear()
}
