// Package bitvec provides fixed-width bit vectors with arbitrary bit-offset
// reads and writes.
//
// Encoded messages are bit vectors whose width is a multiple of 64; fields
// within them live at arbitrary bit offsets and widths. Vector stores bits
// LSB-first over 64-bit words, matching Cap'n Proto's little-endian wire
// order, so Bytes() of an encoded message is the message's exact wire form.
//
// Slice is a flat (vector, offset, width) view used by the decoder to walk
// a message; sub-slicing composes offsets eagerly, so the offset from the
// message root is a plain field read rather than a parent-chain traversal.
package bitvec
