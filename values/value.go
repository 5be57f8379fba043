package values

import "math"

// Val is one value cell: a 128-bit scalar or a reference. Scalars are
// untyped bits, as on the operand stack; the instruction or field type
// that produced a cell decides how to read it. Integers narrower than 64
// bits live zero-extended in the low word.
//
// Val is comparable, so scalar cells work directly in tests and maps.
type Val struct {
	lo, hi uint64
	ref    Ref
	isRef  bool
}

// NewI32 builds an i32 cell. The value is stored zero-extended.
func NewI32(v int32) Val {
	return Val{lo: uint64(uint32(v))}
}

// NewU32 builds an i32 cell from unsigned bits.
func NewU32(v uint32) Val {
	return Val{lo: uint64(v)}
}

// NewI64 builds an i64 cell.
func NewI64(v int64) Val {
	return Val{lo: uint64(v)}
}

// NewU64 builds an i64 cell from unsigned bits.
func NewU64(v uint64) Val {
	return Val{lo: v}
}

// NewF32 builds an f32 cell, preserving the exact bit pattern.
func NewF32(v float32) Val {
	return Val{lo: uint64(math.Float32bits(v))}
}

// NewF64 builds an f64 cell, preserving the exact bit pattern.
func NewF64(v float64) Val {
	return Val{lo: math.Float64bits(v)}
}

// NewV128 builds a v128 cell from its low and high words.
func NewV128(lo, hi uint64) Val {
	return Val{lo: lo, hi: hi}
}

// NewRef builds a reference cell.
func NewRef(r Ref) Val {
	return Val{ref: r, isRef: true}
}

// I32 reads the cell as a signed 32-bit integer.
func (v Val) I32() int32 {
	return int32(uint32(v.lo))
}

// U32 reads the cell as an unsigned 32-bit integer.
func (v Val) U32() uint32 {
	return uint32(v.lo)
}

// I64 reads the cell as a signed 64-bit integer.
func (v Val) I64() int64 {
	return int64(v.lo)
}

// U64 reads the cell as an unsigned 64-bit integer.
func (v Val) U64() uint64 {
	return v.lo
}

// F32 reads the cell as a 32-bit float.
func (v Val) F32() float32 {
	return math.Float32frombits(uint32(v.lo))
}

// F64 reads the cell as a 64-bit float.
func (v Val) F64() float64 {
	return math.Float64frombits(v.lo)
}

// V128 reads the cell as two 64-bit words.
func (v Val) V128() (lo, hi uint64) {
	return v.lo, v.hi
}

// Ref reads the cell as a reference. Valid only when IsRef reports true.
func (v Val) Ref() Ref {
	return v.ref
}

// IsRef reports whether the cell holds a reference.
func (v Val) IsRef() bool {
	return v.isRef
}
