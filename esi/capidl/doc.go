// Package capidl parses the schema text emitted for hardware types and
// computes the wire layout of every declared struct.
//
// The grammar is the subset of Cap'n Proto IDL that the schema emitter
// produces: an optional file ID, struct declarations with ordinal-tagged
// fields, primitive and List field types, and '#' line comments. Field
// slots are assigned by the standard hole-filling allocator, so sub-word
// values pack into the gaps left by earlier fields and the resulting
// data and pointer section sizes carry no avoidable slack.
package capidl
