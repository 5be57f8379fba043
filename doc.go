// Package wasmcore provides the execution core of a WebAssembly runtime
// with support for the garbage collection (GC) proposal.
//
// The library covers the three run-time concerns every engine needs
// below its dispatch loop: the recursive type system and its subtype
// matcher, a managed heap for struct and array instances, and the
// linear memory model with bounds-checked typed access.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	wasmcore/        Root package with the linear memory Allocator interface
//	├── runtime/     Execution context: module instances, data and element segments
//	├── exec/        Instruction semantics for the GC and memory instruction families
//	├── heap/        Managed heap of struct and array instances
//	├── memory/      Linear memory instances with bounds-checked typed access
//	├── types/       Value, composite and defined types, the subtype matcher, decoding
//	├── values/      Runtime value and reference representation
//	├── errors/      Structured error types for traps and load failures
//	└── cmd/inspect/ CLI for inspecting type tables and probing subtype relations
//
// # Quick Start
//
// Build a type table, spin up a runtime, and allocate GC objects:
//
//	table := types.NewTable()
//	idx := table.Append(types.NewSubType(true, nil,
//	    types.NewArrayComposite(types.NewFieldType(types.NewValType(types.I8), types.Var))))
//
//	rt := runtime.New(runtime.Config{})
//	arr := rt.Heap().NewArrayFill(table, idx, 16, values.NewI32(0x7F))
//
// Instruction-level behavior lives in exec and operates on an operand
// stack, mirroring how an interpreter loop would drive it:
//
//	st := exec.NewStack()
//	st.Push(values.NewRef(arr.Ref()))
//	if err := exec.RunArrayLen(rt.Heap(), st); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(st.Pop().U32()) // 16
//
// # Thread Safety
//
// Heap allocation is safe for concurrent use. Type tables are immutable
// after construction and safe to share. Memory instances, module
// instances, and operand stacks are NOT thread-safe; each execution
// thread owns its own, or access must be synchronized by the caller.
//
// # Memory Model
//
// WASM linear memory can only grow, never shrink. Views handed out by
// memory.Instance alias the backing buffer directly and are invalidated
// by growth; see the memory package documentation before holding one
// across calls.
package wasmcore
