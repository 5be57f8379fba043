// Package runtime is the embedding surface of the core. A Runtime owns
// one GC heap and builds module instances; a ModuleInstance owns the type
// table, linear memories, and passive segments the executor's operations
// work on.
//
// # Quick Start
//
//	rt := runtime.New(runtime.Config{HardPageLimit: 256})
//
//	table, memTypes, err := types.DecodeModuleTypes(wasmBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	mod, err := rt.NewModuleInstance("main", table, memTypes, datas, elems)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer mod.Close()
//
//	// Hand the pieces to the exec operations:
//	st := exec.NewStack()
//	exec.RunMemorySize(st, mod.Memory(0))
//
// # Thread Safety
//
// Runtime is safe for concurrent use: its heap serializes allocation
// internally, and handing out heap objects takes no further coordination.
//
// ModuleInstance is NOT thread-safe. Each instance is confined to one
// executor goroutine; memories and segments are not internally
// synchronized.
//
// # Memory
//
// Linear memory only grows, never shrinks. HardPageLimit caps growth for
// every memory built through the runtime, regardless of what the module
// declares; size the cap to what the embedding can afford.
//
// # Ownership
//
// A ModuleInstance keeps its type table alive for as long as any heap
// object allocated against it exists: references carry type-table
// indices, and resolving them after the table is gone is undefined.
// Close instances when done; closing releases memory buffers but never
// touches the heap.
package runtime
