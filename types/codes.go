package types

// Code is a one-byte WASM type code. The same code space covers number
// types, packed storage types, reference type constructors, abstract heap
// types, and composite forms, exactly as the binary format defines them.
type Code byte

// Number types
const (
	I32  Code = 0x7F
	I64  Code = 0x7E
	F32  Code = 0x7D
	F64  Code = 0x7C
	V128 Code = 0x7B
)

// Packed storage types, valid only inside array and struct fields
const (
	I8  Code = 0x78
	I16 Code = 0x77
)

// Reference type constructors
const (
	Ref     Code = 0x64 // (ref ht), non-nullable
	RefNull Code = 0x63 // (ref null ht)
)

// Abstract heap types
const (
	NullFuncRef   Code = 0x73 // nofunc, bottom of the func hierarchy
	NullExternRef Code = 0x72 // noextern, bottom of the extern hierarchy
	NullRef       Code = 0x71 // none, bottom of the any hierarchy
	FuncRef       Code = 0x70
	ExternRef     Code = 0x6F
	AnyRef        Code = 0x6E
	EqRef         Code = 0x6D
	I31Ref        Code = 0x6C
	StructRef     Code = 0x6B
	ArrayRef      Code = 0x6A
)

// Composite type forms
const (
	Func   Code = 0x60
	Struct Code = 0x5F
	Array  Code = 0x5E
)

// Defined type forms
const (
	Sub      Code = 0x50 // sub, with supertype indices
	SubFinal Code = 0x4F // sub final
	Rec      Code = 0x4E // recursion group
)

// Mutability of a field
type Mutability byte

const (
	Const Mutability = 0x00
	Var   Mutability = 0x01
)

// IsNumCode reports whether c is a plain number type code.
func IsNumCode(c Code) bool {
	switch c {
	case I32, I64, F32, F64, V128:
		return true
	}
	return false
}

// IsPackCode reports whether c is a packed storage type code.
func IsPackCode(c Code) bool {
	return c == I8 || c == I16
}

// IsAbsHeapCode reports whether c names an abstract heap type.
func IsAbsHeapCode(c Code) bool {
	switch c {
	case NullFuncRef, NullExternRef, NullRef, FuncRef, ExternRef,
		AnyRef, EqRef, I31Ref, StructRef, ArrayRef:
		return true
	}
	return false
}

// String returns the text-format name of the code.
func (c Code) String() string {
	switch c {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case V128:
		return "v128"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case Ref:
		return "ref"
	case RefNull:
		return "ref null"
	case NullFuncRef:
		return "nofunc"
	case NullExternRef:
		return "noextern"
	case NullRef:
		return "none"
	case FuncRef:
		return "func"
	case ExternRef:
		return "extern"
	case AnyRef:
		return "any"
	case EqRef:
		return "eq"
	case I31Ref:
		return "i31"
	case StructRef:
		return "struct"
	case ArrayRef:
		return "array"
	case Func:
		return "func"
	case Struct:
		return "struct"
	case Array:
		return "array"
	case Sub:
		return "sub"
	case SubFinal:
		return "sub final"
	case Rec:
		return "rec"
	}
	return "unknown"
}
