package types

import "fmt"

// ValType is a value type: a number type, a packed storage type, or a
// reference type. Reference types carry either an abstract heap type code
// or a concrete index into a type Table, plus nullability.
//
// The zero ValType is not a valid type; construct values through
// NewValType, NewRefType, or NewIndexRefType.
type ValType struct {
	code  Code   // I32..V128, I8, I16, Ref, or RefNull
	heap  Code   // abstract heap type for references, 0 when concrete
	index uint32 // type table index, valid when heap == 0
}

// NewValType builds a value type from a single code. Number and packed
// codes are taken as-is. An abstract heap type code is normalized to its
// nullable shorthand, so NewValType(FuncRef) is (ref null func).
func NewValType(c Code) ValType {
	if IsAbsHeapCode(c) {
		return ValType{code: RefNull, heap: c}
	}
	return ValType{code: c}
}

// NewRefType builds a reference to an abstract heap type.
func NewRefType(heap Code, nullable bool) ValType {
	code := Ref
	if nullable {
		code = RefNull
	}
	return ValType{code: code, heap: heap}
}

// NewIndexRefType builds a reference to a concrete defined type.
func NewIndexRefType(index uint32, nullable bool) ValType {
	code := Ref
	if nullable {
		code = RefNull
	}
	return ValType{code: code, index: index}
}

// Code returns the top-level type code.
func (v ValType) Code() Code {
	return v.code
}

// IsNumType reports whether the type is a plain number type.
func (v ValType) IsNumType() bool {
	return IsNumCode(v.code)
}

// IsPackType reports whether the type is a packed storage type.
func (v ValType) IsPackType() bool {
	return IsPackCode(v.code)
}

// IsRefType reports whether the type is a reference type.
func (v ValType) IsRefType() bool {
	return v.code == Ref || v.code == RefNull
}

// IsNullableRef reports whether the type is a nullable reference.
func (v ValType) IsNullableRef() bool {
	return v.code == RefNull
}

// IsAbsHeapType reports whether the reference targets an abstract heap
// type rather than a concrete type index.
func (v ValType) IsAbsHeapType() bool {
	return v.heap != 0
}

// HeapCode returns the abstract heap type code. Valid only when
// IsAbsHeapType reports true.
func (v ValType) HeapCode() Code {
	return v.heap
}

// Index returns the concrete type table index. Valid only for reference
// types where IsAbsHeapType reports false.
func (v ValType) Index() uint32 {
	return v.index
}

// ToNonNullable returns the same reference type with nullability removed.
// Non-reference types are returned unchanged.
func (v ValType) ToNonNullable() ValType {
	if v.code == RefNull {
		v.code = Ref
	}
	return v
}

// BitWidth returns the storage width of the type in bits. References
// report the width of a handle slot.
func (v ValType) BitWidth() uint32 {
	switch v.code {
	case I8:
		return 8
	case I16:
		return 16
	case I32, F32:
		return 32
	case V128:
		return 128
	default:
		return 64
	}
}

// String renders the type in text format, e.g. "i32", "(ref null 3)",
// or "(ref eq)".
func (v ValType) String() string {
	if !v.IsRefType() {
		return v.code.String()
	}
	null := ""
	if v.code == RefNull {
		null = "null "
	}
	if v.IsAbsHeapType() {
		return fmt.Sprintf("(ref %s%s)", null, v.heap)
	}
	return fmt.Sprintf("(ref %s%d)", null, v.index)
}
