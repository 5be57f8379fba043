// Package exec implements the instruction-level operations of the GC and
// memory instruction families: reference tests and casts, struct and
// array allocation and access, i31 packing, and the bounds-checked
// load/store matrix over linear memory.
//
// Operations work a caller-owned operand Stack the way a dispatch loop
// would: operands pop in reverse push order and results land where the
// instruction leaves them, replacing the top in place where the
// instruction rewrites its operand. Traps surface as *errors.Error
// values; a trapping program never panics.
//
// Nothing validation already proved is re-checked here. Arities,
// immediate indices, and operand types are the verifier's business.
// Bounds that depend on runtime values (array indices, segment windows,
// memory addresses) are checked on every operation and trap.
package exec
