// Package schema derives wire schemas from hardware type descriptors.
//
// Every message root is a struct on the wire, so non-struct roots are
// wrapped: an integer becomes a single field "i", an array a single
// field "l". The schema ID is a deterministic hash of the type's
// textual form, seeded with the schema version, so independently built
// producers and consumers of the same type always agree on it. The
// emitted schema text round-trips through the capidl parser, which is
// also how Size recovers slot offsets and section counts.
package schema
