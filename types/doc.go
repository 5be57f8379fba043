// Package types implements the run-time type system of the WebAssembly
// GC proposal: value types, composite types, defined-type tables, and
// the subtype matcher that ref.test, ref.cast, and link-time checks are
// built on.
//
// # Type Model
//
// A module's defined types live in a Table, an append-only arena indexed
// the way the binary format indexes its type section. Each entry is a
// SubType: a composite payload (function signature, struct field list, or
// array element) plus declared supertype indices and finality. Recursion
// groups flatten into consecutive entries, so recursive types simply
// reference each other by table index.
//
//	table := types.NewTable()
//	point := table.Append(types.NewSubType(false, nil,
//	    types.NewStructComposite(
//	        types.NewFieldType(types.NewValType(types.I32), types.Const),
//	        types.NewFieldType(types.NewValType(types.I32), types.Const),
//	    )))
//	point3D := table.Append(types.NewSubType(true, []uint32{point},
//	    types.NewStructComposite(
//	        types.NewFieldType(types.NewValType(types.I32), types.Const),
//	        types.NewFieldType(types.NewValType(types.I32), types.Const),
//	        types.NewFieldType(types.NewValType(types.I32), types.Const),
//	    )))
//
// # Subtyping
//
// Match answers "can a value of the got type stand where the expected
// type is required":
//
//	types.Match(table, point, table, point3D) // true: declared subtype
//	types.Match(table, point3D, table, point) // false
//
// The rules follow the GC proposal: declared supertype chains are checked
// first, then structure. Structs use width and depth subtyping (a subtype
// may append fields; shared fields must match). Array elements and struct
// fields are covariant when immutable and invariant when mutable.
// Nullability is covariant: (ref T) matches where (ref null T) is
// expected, never the reverse. Abstract heap types form three disjoint
// hierarchies rooted at any, func, and extern, with none, nofunc, and
// noextern as their bottoms; MatchVal and MatchCode resolve membership,
// expanding concrete types to their family when mixed with abstract ones.
//
// # Decoding and Encoding
//
// DecodeTypeSection and DecodeModuleTypes build tables straight from
// binary modules; EncodeModule and EncodeTypeSection write them back in
// canonical form. Decoding validates structure (supertype indices must
// precede their subtypes, counts must fit the payload) but leaves full
// module validation to the embedding engine.
package types
