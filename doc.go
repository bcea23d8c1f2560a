// Package circt provides a type-directed Cap'n Proto codec generator for
// hardware values.
//
// Given a description of a structured hardware value (fixed-width integers,
// fixed-length arrays, one level of structs), the library derives a canonical
// Cap'n-Proto-compatible wire schema, computes the exact bit-level layout of
// encoded messages, and builds encode/decode units that convert between the
// structured value and a flat on-wire bit vector.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	circt/               Root package with the hardware port-contract types
//	├── hwtype/          Canonical hardware value types (the type descriptors)
//	├── esi/schema/      Schema derivation, type IDs, sizing, ID registry
//	├── esi/capidl/      Cap'n Proto schema text parser and field layout
//	├── esi/codec/       Message encoding/decoding and the session cache
//	├── bitvec/          Bit-addressed vectors and slices
//	└── errors/          Structured error types
//
// # Quick Start
//
// Build a codec for a struct type and round-trip a value:
//
//	ty := hwtype.Struct{Fields: []hwtype.Field{
//	    {Name: "a", Type: hwtype.Int{Width: 4}},
//	    {Name: "b", Type: hwtype.Array{Elem: hwtype.Int{Width: 4}, Size: 3}},
//	}}
//
//	sess := codec.NewWithDefaults()
//	enc, err := sess.Encoder(ty)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	msg, err := enc.Encode(codec.Struct{
//	    codec.Int{Bits: 5},
//	    codec.Array{codec.Int{Bits: 1}, codec.Int{Bits: 2}, codec.Int{Bits: 3}},
//	})
//
//	dec, _ := sess.Decoder(ty)
//	out, _ := dec.Decode(msg)
//	if !out.Valid() {
//	    // malformed message: inspect out.Faults
//	}
//
// Messages are single-segment, canonically encoded Cap'n Proto structs: a
// root pointer word followed by the struct's data and pointer sections and
// any list payloads, zero-padded to the computed message size. The encoding
// spec is at https://capnproto.org/encoding.html.
//
// # Validity Model
//
// Schema derivation rejects unsupported types with a recoverable error.
// Internal layout inconsistencies surface as consistency errors and indicate
// a generator bug. Malformed wire messages never error: decoding always
// produces a value plus a fault list, mirroring the continuously-monitored
// validity signal a hardware decoder would drive.
package circt
