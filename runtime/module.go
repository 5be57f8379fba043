package runtime

import (
	"go.uber.org/zap"

	"github.com/wippyai/wasm-core/errors"
	"github.com/wippyai/wasm-core/memory"
	"github.com/wippyai/wasm-core/types"
	"github.com/wippyai/wasm-core/values"
)

// ModuleInstance holds the runtime state of one instantiated module: its
// type table, linear memories, and passive data and element segments.
// The table outlives every reference minted against it.
type ModuleInstance struct {
	name     string
	types    *types.Table
	memories []*memory.Instance
	datas    []*DataInstance
	elems    []*ElementInstance
}

// Name returns the instance name given at creation.
func (m *ModuleInstance) Name() string {
	return m.name
}

// TypeTable returns the instance's defined-type table.
func (m *ModuleInstance) TypeTable() *types.Table {
	return m.types
}

// Memory returns the linear memory at the index, or nil if none exists.
func (m *ModuleInstance) Memory(i int) *memory.Instance {
	if i < 0 || i >= len(m.memories) {
		return nil
	}
	return m.memories[i]
}

// Data returns the data segment at the index, or nil if none exists.
func (m *ModuleInstance) Data(i int) *DataInstance {
	if i < 0 || i >= len(m.datas) {
		return nil
	}
	return m.datas[i]
}

// Elem returns the element segment at the index, or nil if none exists.
func (m *ModuleInstance) Elem(i int) *ElementInstance {
	if i < 0 || i >= len(m.elems) {
		return nil
	}
	return m.elems[i]
}

// AddMemory creates a linear memory for the type, capped at pageLimit
// pages (0 means the index type's natural limit), and registers it. A
// memory that cannot be created is not registered.
func (m *ModuleInstance) AddMemory(mt types.MemoryType, pageLimit uint64) error {
	inst := memory.NewInstance(mt, memory.Options{PageLimit: pageLimit})
	if !inst.Valid() {
		Logger().Error("add memory failed",
			zap.String("module", m.name),
			zap.Uint64("min_pages", mt.Limits.Min),
			zap.Uint64("page_limit", pageLimit))
		return errors.AllocationFailed(mt.Limits.Min)
	}
	m.memories = append(m.memories, inst)
	return nil
}

// AddData registers a passive data segment and returns it.
func (m *ModuleInstance) AddData(b []byte) *DataInstance {
	d := NewDataInstance(b)
	m.datas = append(m.datas, d)
	return d
}

// AddElement registers a passive element segment and returns it.
func (m *ModuleInstance) AddElement(refs []values.Ref) *ElementInstance {
	e := NewElementInstance(refs)
	m.elems = append(m.elems, e)
	return e
}

// Close releases the instance's memory buffers. Heap objects are not
// touched; they belong to the runtime's heap.
func (m *ModuleInstance) Close() {
	for _, inst := range m.memories {
		inst.Close()
	}
}
