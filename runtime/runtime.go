package runtime

import (
	"go.uber.org/zap"

	"github.com/wippyai/wasm-core/heap"
	"github.com/wippyai/wasm-core/types"
	"github.com/wippyai/wasm-core/values"
)

// Config holds configuration for runtime creation
type Config struct {
	// HardPageLimit caps every linear memory built through the runtime,
	// in pages (64KB each), regardless of the module's declared limits.
	// 0 means the index type's natural limit (65536 pages = 4GB for
	// 32-bit memories).
	// 256 = 16MB, 1024 = 64MB, 4096 = 256MB
	HardPageLimit uint64
}

// Runtime owns one GC heap and the configuration applied to every module
// instance built through it. Separate Runtimes have separate heaps and
// never share objects.
type Runtime struct {
	cfg  Config
	heap *heap.Heap
}

// New creates a runtime with an empty heap.
func New(cfg Config) *Runtime {
	return &Runtime{cfg: cfg, heap: heap.New()}
}

// Heap returns the runtime's heap. Every struct and array allocated on
// behalf of this runtime's instances lives there.
func (r *Runtime) Heap() *heap.Heap {
	return r.heap
}

// NewModuleInstance assembles an instance from decoded module pieces:
// the type table, the memory types, and the passive segment payloads.
// Memories apply the runtime's hard page limit; if any memory cannot be
// created the whole instance fails.
func (r *Runtime) NewModuleInstance(name string, table *types.Table, memTypes []types.MemoryType, datas [][]byte, elems [][]values.Ref) (*ModuleInstance, error) {
	mod := &ModuleInstance{name: name, types: table}
	for _, mt := range memTypes {
		if err := mod.AddMemory(mt, r.cfg.HardPageLimit); err != nil {
			mod.Close()
			return nil, err
		}
	}
	for _, b := range datas {
		mod.AddData(b)
	}
	for _, refs := range elems {
		mod.AddElement(refs)
	}
	Logger().Debug("module instance created",
		zap.String("name", name),
		zap.Int("memories", len(memTypes)),
		zap.Int("data_segments", len(datas)),
		zap.Int("element_segments", len(elems)))
	return mod, nil
}
