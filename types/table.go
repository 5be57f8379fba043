package types

// Table is the defined-type table of a module: an append-only arena of
// SubType entries. Entries are never removed or reordered, so indices and
// pointers obtained from Get stay valid for the table's lifetime.
//
// A Table is immutable once fully built and is then safe for concurrent
// readers. Appending is not synchronized; build the table on one
// goroutine before sharing it.
type Table struct {
	defs []*SubType
}

// NewTable creates a table holding the given defined types in order.
func NewTable(defs ...SubType) *Table {
	t := &Table{defs: make([]*SubType, 0, len(defs))}
	for _, d := range defs {
		t.Append(d)
	}
	return t
}

// Append adds a defined type and returns its index.
func (t *Table) Append(st SubType) uint32 {
	idx := uint32(len(t.defs))
	t.defs = append(t.defs, &st)
	return idx
}

// Get returns the defined type at index i. The returned pointer is stable;
// entries are allocated individually and survive later appends.
//
// The index must be in range; table indices reaching this layer have been
// validated at load time.
func (t *Table) Get(i uint32) *SubType {
	return t.defs[i]
}

// Len returns the number of defined types.
func (t *Table) Len() int {
	return len(t.defs)
}
