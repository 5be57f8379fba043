package exec

import (
	"github.com/wippyai/wasm-core/types"
	"github.com/wippyai/wasm-core/values"
)

// packVal masks v down to the packed storage width on write. Non-packed
// storage passes through untouched.
func packVal(t types.ValType, v values.Val) values.Val {
	if t.IsPackType() {
		switch t.Code() {
		case types.I8:
			return values.NewU32(v.U32() & 0xFF)
		case types.I16:
			return values.NewU32(v.U32() & 0xFFFF)
		}
	}
	return v
}

// packVals masks every value in place and returns the slice.
func packVals(t types.ValType, vals []values.Val) []values.Val {
	if t.IsPackType() {
		for i := range vals {
			vals[i] = packVal(t, vals[i])
		}
	}
	return vals
}

// unpackVal widens a packed storage value back to i32 on read: sign
// extension for the _s accessors, zero extension otherwise. Stored packed
// values are already masked, so the unsigned path is a re-tag.
func unpackVal(t types.ValType, v values.Val, signed bool) values.Val {
	if !t.IsPackType() {
		return v
	}
	raw := v.U32()
	if signed {
		switch t.Code() {
		case types.I8:
			return values.NewI32(int32(int8(raw)))
		case types.I16:
			return values.NewI32(int32(int16(raw)))
		}
	}
	return values.NewU32(raw)
}
