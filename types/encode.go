package types

import (
	"github.com/wippyai/wasm-core/types/internal/binary"
)

// EncodeModule encodes a minimal binary module holding the given type
// table and memory types. Every entry is written in its canonical form
// (sub / sub final), so decoding the result reproduces the table
// entry-for-entry. The inverse of DecodeModuleTypes for the sections this
// core owns; handy for building fixtures and probe modules.
func EncodeModule(table *Table, mems []MemoryType) []byte {
	w := binary.NewWriter()

	w.WriteU32LE(Magic)
	w.WriteU32LE(Version)

	if table != nil && table.Len() > 0 {
		writeSection(w, sectionType, EncodeTypeSection(table))
	}

	if len(mems) > 0 {
		sec := binary.NewWriter()
		sec.WriteU32(uint32(len(mems)))
		for _, mt := range mems {
			writeLimits(sec, mt.Limits)
		}
		writeSection(w, sectionMemory, sec.Bytes())
	}

	return w.Bytes()
}

// EncodeTypeSection encodes the table as a type section payload.
func EncodeTypeSection(table *Table) []byte {
	sec := binary.NewWriter()
	sec.WriteU32(uint32(table.Len()))
	for i := uint32(0); i < uint32(table.Len()); i++ {
		writeSubType(sec, table.Get(i))
	}
	return sec.Bytes()
}

func writeSection(w *binary.Writer, id byte, payload []byte) {
	w.Byte(id)
	w.WriteU32(uint32(len(payload)))
	w.WriteBytes(payload)
}

func writeSubType(w *binary.Writer, st *SubType) {
	if st.Final() {
		w.Byte(byte(SubFinal))
	} else {
		w.Byte(byte(Sub))
	}
	parents := st.Parents()
	w.WriteU32(uint32(len(parents)))
	for _, p := range parents {
		w.WriteU32(p)
	}
	writeCompType(w, st.CompType())
}

func writeCompType(w *binary.Writer, c *CompositeType) {
	w.Byte(byte(c.Kind()))
	switch c.Kind() {
	case Func:
		ft := c.FuncType()
		writeValTypes(w, ft.Params)
		writeValTypes(w, ft.Results)
	case Struct:
		fields := c.Fields()
		w.WriteU32(uint32(len(fields)))
		for _, f := range fields {
			writeFieldType(w, f)
		}
	case Array:
		writeFieldType(w, c.Fields()[0])
	}
}

func writeValTypes(w *binary.Writer, vts []ValType) {
	w.WriteU32(uint32(len(vts)))
	for _, vt := range vts {
		writeValType(w, vt)
	}
}

func writeFieldType(w *binary.Writer, f FieldType) {
	writeValType(w, f.Storage)
	w.Byte(byte(f.Mut))
}

func writeValType(w *binary.Writer, vt ValType) {
	if !vt.IsRefType() {
		w.Byte(byte(vt.Code()))
		return
	}
	w.Byte(byte(vt.Code()))
	if vt.IsAbsHeapType() {
		// Abstract heap types encode as negative s33 values whose low
		// seven bits are the code byte.
		w.WriteS33(int64(vt.HeapCode()) - 0x80)
	} else {
		w.WriteS33(int64(vt.Index()))
	}
}

func writeLimits(w *binary.Writer, l Limits) {
	var flags byte
	if l.Max != nil {
		flags |= limitsHasMax
	}
	if l.Shared {
		flags |= limitsShared
	}
	if l.Memory64 {
		flags |= limitsMemory64
	}
	w.Byte(flags)
	if l.Memory64 {
		w.WriteU64(l.Min)
		if l.Max != nil {
			w.WriteU64(*l.Max)
		}
	} else {
		w.WriteU32(uint32(l.Min))
		if l.Max != nil {
			w.WriteU32(uint32(*l.Max))
		}
	}
}
