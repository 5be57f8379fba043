package types

import (
	"fmt"

	"github.com/wippyai/wasm-core/errors"
	"github.com/wippyai/wasm-core/types/internal/binary"
)

// Binary format framing constants.
const (
	Magic   uint32 = 0x6D736100 // "\0asm"
	Version uint32 = 0x00000001

	sectionCustom byte = 0
	sectionType   byte = 1
	sectionMemory byte = 5

	limitsHasMax   byte = 0x01
	limitsShared   byte = 0x02
	limitsMemory64 byte = 0x04
)

// DecodeModuleTypes decodes the sections of a binary module this core
// executes against: the type section into a Table and the memory section
// into memory types. All other sections are skipped, not validated; this
// is a loader for the run-time type and memory state, not a full module
// validator.
func DecodeModuleTypes(data []byte) (*Table, []MemoryType, error) {
	r := binary.NewReader(data)

	magic, err := r.ReadU32LE()
	if err != nil {
		return nil, nil, errors.Load("module header", r.WrapError("header", err))
	}
	if magic != Magic {
		return nil, nil, errors.InvalidData(errors.PhaseLoad, nil, "invalid wasm magic number")
	}
	version, err := r.ReadU32LE()
	if err != nil {
		return nil, nil, errors.Load("module header", r.WrapError("header", err))
	}
	if version != Version {
		return nil, nil, errors.InvalidData(errors.PhaseLoad, nil, fmt.Sprintf("unsupported wasm version %d", version))
	}

	table := NewTable()
	var mems []MemoryType

	for r.Remaining() > 0 {
		sectionID, err := r.ReadByte()
		if err != nil {
			return nil, nil, errors.Load("section header", r.WrapError("section header", err))
		}
		sectionSize, err := r.ReadU32()
		if err != nil {
			return nil, nil, errors.Load("section size", r.WrapError("section size", err))
		}
		sectionData, err := r.ReadBytes(sectionSize)
		if err != nil {
			return nil, nil, errors.Load("section data", r.WrapError("section data", err))
		}

		switch sectionID {
		case sectionType:
			sr := binary.NewReader(sectionData)
			if err := decodeTypeSection(sr, table); err != nil {
				return nil, nil, errors.Load("type section", sr.WrapError("type section", err))
			}
		case sectionMemory:
			sr := binary.NewReader(sectionData)
			mems, err = decodeMemorySection(sr)
			if err != nil {
				return nil, nil, errors.Load("memory section", sr.WrapError("memory section", err))
			}
		default:
			// Code, data, and the remaining sections are the embedding
			// engine's concern.
		}
	}

	return table, mems, nil
}

// DecodeTypeSection decodes a type section payload (the bytes after the
// section ID and size) into a fresh Table. Recursion groups are flattened
// into consecutive entries, so indices inside the table line up with the
// module's type index space.
func DecodeTypeSection(payload []byte) (*Table, error) {
	r := binary.NewReader(payload)
	table := NewTable()
	if err := decodeTypeSection(r, table); err != nil {
		return nil, errors.Load("type section", r.WrapError("type section", err))
	}
	return table, nil
}

func decodeTypeSection(r *binary.Reader, table *Table) error {
	count, err := r.ReadU32()
	if err != nil {
		return err
	}
	// Every definition takes at least one byte; reject counts the payload
	// cannot possibly hold before allocating anything.
	if uint64(count) > uint64(r.Remaining()) {
		return fmt.Errorf("type count %d exceeds section size", count)
	}

	for i := uint32(0); i < count; i++ {
		form, err := r.ReadByte()
		if err != nil {
			return fmt.Errorf("read type form at index %d: %w", i, err)
		}

		if form == byte(Rec) {
			recCount, err := r.ReadU32()
			if err != nil {
				return err
			}
			if uint64(recCount) > uint64(r.Remaining()) {
				return fmt.Errorf("rec group count %d exceeds section size", recCount)
			}
			for j := uint32(0); j < recCount; j++ {
				sub, err := readSubType(r, table.Len())
				if err != nil {
					return err
				}
				table.Append(sub)
			}
			continue
		}

		sub, err := readSubTypeWithPrefix(r, form, table.Len())
		if err != nil {
			return err
		}
		table.Append(sub)
	}
	return nil
}

func readSubType(r *binary.Reader, defIdx int) (SubType, error) {
	form, err := r.ReadByte()
	if err != nil {
		return SubType{}, err
	}
	return readSubTypeWithPrefix(r, form, defIdx)
}

func readSubTypeWithPrefix(r *binary.Reader, form byte, defIdx int) (SubType, error) {
	switch form {
	case byte(Sub), byte(SubFinal):
		parentCount, err := r.ReadU32()
		if err != nil {
			return SubType{}, err
		}
		if uint64(parentCount) > uint64(r.Remaining()) {
			return SubType{}, fmt.Errorf("supertype count %d exceeds section size", parentCount)
		}
		parents := make([]uint32, parentCount)
		for i := range parents {
			parents[i], err = r.ReadU32()
			if err != nil {
				return SubType{}, err
			}
			// Supertypes must be declared earlier; this keeps every
			// table acyclic by construction.
			if uint64(parents[i]) >= uint64(defIdx) {
				return SubType{}, fmt.Errorf("supertype index %d not declared before type %d", parents[i], defIdx)
			}
		}
		comp, err := readCompType(r)
		if err != nil {
			return SubType{}, err
		}
		return NewSubType(form == byte(SubFinal), parents, comp), nil

	case byte(Func), byte(Struct), byte(Array):
		// Shorthand form: final, no supertypes.
		comp, err := readCompTypeWithKind(r, Code(form))
		if err != nil {
			return SubType{}, err
		}
		return NewSubType(true, nil, comp), nil

	default:
		return SubType{}, fmt.Errorf("unsupported type form 0x%02x", form)
	}
}

func readCompType(r *binary.Reader) (CompositeType, error) {
	kind, err := r.ReadByte()
	if err != nil {
		return CompositeType{}, err
	}
	return readCompTypeWithKind(r, Code(kind))
}

func readCompTypeWithKind(r *binary.Reader, kind Code) (CompositeType, error) {
	switch kind {
	case Func:
		params, err := readValTypes(r)
		if err != nil {
			return CompositeType{}, err
		}
		results, err := readValTypes(r)
		if err != nil {
			return CompositeType{}, err
		}
		return NewFuncComposite(FuncType{Params: params, Results: results}), nil

	case Struct:
		fieldCount, err := r.ReadU32()
		if err != nil {
			return CompositeType{}, err
		}
		if uint64(fieldCount) > uint64(r.Remaining()) {
			return CompositeType{}, fmt.Errorf("field count %d exceeds section size", fieldCount)
		}
		fields := make([]FieldType, fieldCount)
		for i := range fields {
			fields[i], err = readFieldType(r)
			if err != nil {
				return CompositeType{}, err
			}
		}
		return NewStructComposite(fields...), nil

	case Array:
		elem, err := readFieldType(r)
		if err != nil {
			return CompositeType{}, err
		}
		return NewArrayComposite(elem), nil

	default:
		return CompositeType{}, fmt.Errorf("invalid composite type 0x%02x", byte(kind))
	}
}

func readValTypes(r *binary.Reader) ([]ValType, error) {
	count, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if uint64(count) > uint64(r.Remaining()) {
		return nil, fmt.Errorf("value type count %d exceeds section size", count)
	}
	vts := make([]ValType, count)
	for i := range vts {
		vts[i], err = readStorageType(r, false)
		if err != nil {
			return nil, err
		}
	}
	return vts, nil
}

func readFieldType(r *binary.Reader) (FieldType, error) {
	st, err := readStorageType(r, true)
	if err != nil {
		return FieldType{}, err
	}
	mutByte, err := r.ReadByte()
	if err != nil {
		return FieldType{}, err
	}
	if mutByte > byte(Var) {
		return FieldType{}, fmt.Errorf("invalid mutability 0x%02x", mutByte)
	}
	return FieldType{Storage: st, Mut: Mutability(mutByte)}, nil
}

// readStorageType reads a value type, optionally admitting the packed
// storage codes that are only legal inside fields.
func readStorageType(r *binary.Reader, packed bool) (ValType, error) {
	b, err := r.ReadByte()
	if err != nil {
		return ValType{}, err
	}
	c := Code(b)

	switch {
	case IsNumCode(c):
		return NewValType(c), nil
	case IsPackCode(c):
		if !packed {
			return ValType{}, fmt.Errorf("packed type %s outside field position", c)
		}
		return NewValType(c), nil
	case IsAbsHeapCode(c):
		// Shorthand: e.g. 0x70 alone means (ref null func).
		return NewValType(c), nil
	case c == Ref || c == RefNull:
		return readHeapType(r, c == RefNull)
	default:
		return ValType{}, fmt.Errorf("invalid value type 0x%02x", b)
	}
}

func readHeapType(r *binary.Reader, nullable bool) (ValType, error) {
	ht, err := r.ReadS33()
	if err != nil {
		return ValType{}, err
	}
	if ht < 0 {
		// Negative values are abstract heap types; the low seven bits
		// are the type code byte.
		c := Code(ht & 0x7F)
		if !IsAbsHeapCode(c) {
			return ValType{}, fmt.Errorf("invalid heap type %d", ht)
		}
		return NewRefType(c, nullable), nil
	}
	if ht > 0xFFFFFFFF {
		return ValType{}, fmt.Errorf("type index %d out of range", ht)
	}
	return NewIndexRefType(uint32(ht), nullable), nil
}

func decodeMemorySection(r *binary.Reader) ([]MemoryType, error) {
	count, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if uint64(count) > uint64(r.Remaining()) {
		return nil, fmt.Errorf("memory count %d exceeds section size", count)
	}
	mems := make([]MemoryType, count)
	for i := range mems {
		mems[i].Limits, err = readLimits(r)
		if err != nil {
			return nil, err
		}
	}
	return mems, nil
}

func readLimits(r *binary.Reader) (Limits, error) {
	flags, err := r.ReadByte()
	if err != nil {
		return Limits{}, err
	}
	if flags&^(limitsHasMax|limitsShared|limitsMemory64) != 0 {
		return Limits{}, fmt.Errorf("invalid limits flags 0x%02x", flags)
	}

	memory64 := flags&limitsMemory64 != 0
	l := Limits{
		Shared:   flags&limitsShared != 0,
		Memory64: memory64,
	}

	if memory64 {
		l.Min, err = r.ReadU64()
		if err != nil {
			return Limits{}, err
		}
		if flags&limitsHasMax != 0 {
			maxVal, err := r.ReadU64()
			if err != nil {
				return Limits{}, err
			}
			l.Max = &maxVal
		}
	} else {
		minVal, err := r.ReadU32()
		if err != nil {
			return Limits{}, err
		}
		l.Min = uint64(minVal)
		if flags&limitsHasMax != 0 {
			maxVal, err := r.ReadU32()
			if err != nil {
				return Limits{}, err
			}
			max64 := uint64(maxVal)
			l.Max = &max64
		}
	}

	if l.Shared && l.Max == nil {
		return Limits{}, fmt.Errorf("shared memory requires a max")
	}
	if l.Max != nil && l.Min > *l.Max {
		return Limits{}, fmt.Errorf("limits min %d exceeds max %d", l.Min, *l.Max)
	}
	return l, nil
}
