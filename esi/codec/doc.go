// Package codec builds encoders and decoders that carry hardware values
// in the wire format described by their derived schema.
//
// Encoding assembles a message in a bit-addressed segment: the root
// pointer word, the struct's data and pointer sections, then list
// payloads in field order. Placements never overlap and the compiled
// message is exactly the schema's computed size. Decoding is the
// mirror image, with one crucial asymmetry: section addressing comes
// from the static schema, while the message's own declared counts and
// lengths are merely validated against it. Malformations surface as
// Fault values on the decode result, re-evaluated on every call, so a
// consumer can continuously observe message validity without ever
// crashing on hostile input.
//
// A Session caches one encoder and decoder per structural type and
// registers every schema ID, turning an ID collision between distinct
// types into a hard error.
package codec
