// Package hwtype defines the hardware value types the codec generator
// operates on.
//
// The type system is deliberately small: fixed-width integers, fixed-length
// arrays, one level of structs, and named aliases. Type is a closed sum;
// every consumer dispatches exhaustively over the four kinds.
//
// Types are compared structurally through their canonical text:
//
//	hwtype.Int{Width: 4}                       // "ui4"
//	hwtype.Array{Elem: elem, Size: 3}          // "array<3xui4>"
//	hwtype.Struct{Fields: ...}                 // "struct<a: ui4, ...>"
//
// Canonical resolves aliases; Width, IsGround, and Fields answer the layout
// queries the schema deriver needs.
package hwtype
