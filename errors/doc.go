// Package errors provides structured error types for the wasm-core library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Kind set mirrors the WebAssembly trap taxonomy for the
// instruction families this core implements, plus the load-time failures of
// the binary decoder. The Error type includes rich context: field path, the
// WASM type involved, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRuntime, errors.KindOutOfBoundsMemory).
//		Value(offset).
//		Detail("access of %d bytes at offset %d exceeds bound %d", length, offset, bound).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MemoryOutOfBounds(offset, length, bound)
//	err := errors.NullAccess("array.len")
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when their Phase and Kind agree,
// so traps can be classified without inspecting detail strings.
package errors
