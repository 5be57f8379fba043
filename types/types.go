package types

import (
	"fmt"
	"strings"
)

// FieldType describes one storage slot of an array or struct: the storage
// type plus its mutability.
type FieldType struct {
	Storage ValType
	Mut     Mutability
}

// NewFieldType builds a field type.
func NewFieldType(storage ValType, mut Mutability) FieldType {
	return FieldType{Storage: storage, Mut: mut}
}

// String renders the field in text format.
func (f FieldType) String() string {
	if f.Mut == Var {
		return fmt.Sprintf("(mut %s)", f.Storage)
	}
	return f.Storage.String()
}

// FuncType describes the signature of a function type.
type FuncType struct {
	Params  []ValType
	Results []ValType
}

// String renders the signature in text format.
func (ft FuncType) String() string {
	var b strings.Builder
	b.WriteString("(func")
	for _, p := range ft.Params {
		fmt.Fprintf(&b, " (param %s)", p)
	}
	for _, r := range ft.Results {
		fmt.Fprintf(&b, " (result %s)", r)
	}
	b.WriteByte(')')
	return b.String()
}

// CompositeType is the structural payload of a defined type: a function
// signature, a struct field list, or an array element type.
//
// Array composites always hold exactly one field entry, the element type;
// the constructors enforce this so instance code can index field 0
// unconditionally.
type CompositeType struct {
	fn     FuncType
	fields []FieldType
	kind   Code
}

// NewFuncComposite builds a function composite type.
func NewFuncComposite(ft FuncType) CompositeType {
	return CompositeType{kind: Func, fn: ft}
}

// NewStructComposite builds a struct composite type from its field list.
func NewStructComposite(fields ...FieldType) CompositeType {
	return CompositeType{kind: Struct, fields: fields}
}

// NewArrayComposite builds an array composite type from its element type.
func NewArrayComposite(elem FieldType) CompositeType {
	return CompositeType{kind: Array, fields: []FieldType{elem}}
}

// Kind returns Func, Struct, or Array.
func (c *CompositeType) Kind() Code {
	return c.kind
}

// FuncType returns the signature of a Func composite.
func (c *CompositeType) FuncType() FuncType {
	return c.fn
}

// Fields returns the field list: all fields of a struct, or the single
// element entry of an array. Empty for Func composites.
func (c *CompositeType) Fields() []FieldType {
	return c.fields
}

// Expand returns the abstract heap type a concrete reference to this
// composite belongs to: func, struct, or array.
func (c *CompositeType) Expand() Code {
	switch c.kind {
	case Struct:
		return StructRef
	case Array:
		return ArrayRef
	default:
		return FuncRef
	}
}

// String renders the composite in text format.
func (c *CompositeType) String() string {
	switch c.kind {
	case Func:
		return c.fn.String()
	case Array:
		return fmt.Sprintf("(array %s)", c.fields[0])
	default:
		var b strings.Builder
		b.WriteString("(struct")
		for _, f := range c.fields {
			fmt.Fprintf(&b, " (field %s)", f)
		}
		b.WriteByte(')')
		return b.String()
	}
}

// SubType is one defined type of a module: a composite type plus its
// declared supertype indices and finality. Entries are immutable once
// appended to a Table.
type SubType struct {
	comp    CompositeType
	parents []uint32
	final   bool
}

// NewSubType builds a defined type. parents are indices of declared
// supertypes within the same table.
func NewSubType(final bool, parents []uint32, comp CompositeType) SubType {
	return SubType{final: final, parents: parents, comp: comp}
}

// Final reports whether the type forbids further subtyping.
func (s *SubType) Final() bool {
	return s.final
}

// Parents returns the declared supertype indices.
func (s *SubType) Parents() []uint32 {
	return s.parents
}

// CompType returns the composite payload. The pointer stays valid and
// stable for the lifetime of the owning Table.
func (s *SubType) CompType() *CompositeType {
	return &s.comp
}

// String renders the defined type in text format.
func (s *SubType) String() string {
	if len(s.parents) == 0 && s.final {
		return s.comp.String()
	}
	var b strings.Builder
	b.WriteString("(sub")
	if s.final {
		b.WriteString(" final")
	}
	for _, p := range s.parents {
		fmt.Fprintf(&b, " %d", p)
	}
	fmt.Fprintf(&b, " %s)", s.comp.String())
	return b.String()
}

// MemoryType describes a linear memory.
type MemoryType struct {
	Limits Limits
}

// PageLimit returns the page cap implied by the index type: 2^16 pages
// (4 GiB) for 32-bit memories and 2^48 pages for 64-bit ones.
func (mt MemoryType) PageLimit() uint64 {
	if mt.Limits.Memory64 {
		return 1 << 48
	}
	return 1 << 16
}

// Limits describes size constraints for memories, in 64 KiB pages.
type Limits struct {
	Max      *uint64
	Min      uint64
	Shared   bool
	Memory64 bool
}

// NewLimits builds limits with only a minimum.
func NewLimits(min uint64) Limits {
	return Limits{Min: min}
}

// NewLimitsWithMax builds limits with a minimum and maximum.
func NewLimitsWithMax(min, max uint64) Limits {
	return Limits{Min: min, Max: &max}
}
