package schema

import (
	"encoding/binary"
	"math/bits"
)

// schemaVersion seeds the type ID hash. Bumping it changes every ID, so
// stale schemas on either side of a connection can never match.
const schemaVersion = 1

const (
	hashK0 = 0xc3a5c85c97cb3127
	hashK2 = 0x9ae16a3b2f90404f
)

// typeID hashes the textual form of a type into a 64-bit schema ID.
// The text is right-padded with spaces to a multiple of 64 bytes and
// the blocks are folded in order, so the result depends only on the
// text and the schema version, never on the process or machine. Wire
// IDs require a set high bit.
func typeID(text string) uint64 {
	padded := []byte(text)
	if over := len(padded) % 64; over != 0 {
		pad := make([]byte, 64-over)
		for i := range pad {
			pad[i] = ' '
		}
		padded = append(padded, pad...)
	}

	hash := uint64(schemaVersion)
	for i := 0; i < len(padded); i += 64 {
		hash = hashBlock(padded[i:i+64], hash)
	}
	return hash | 0x8000000000000000
}

// hashBlock folds one 64-byte block into the running hash.
func hashBlock(s []byte, seed uint64) uint64 {
	fetch := func(off int) uint64 {
		return binary.LittleEndian.Uint64(s[off : off+8 : off+8])
	}
	const n = uint64(64)

	z := fetch(24)
	a := fetch(0) + (n+fetch(64-16))*hashK0
	b := rotr(a+z, 52)
	c := rotr(a, 37)
	a += fetch(8)
	c += rotr(a, 7)
	a += fetch(16)
	vf := a + z
	vs := b + rotr(a, 31) + c

	a = fetch(16) + fetch(64-32)
	z = fetch(64 - 8)
	b = rotr(a+z, 52)
	c = rotr(a, 37)
	a += fetch(24)
	c += rotr(a, 7)
	a += fetch(32)
	wf := a + z
	ws := b + rotr(a, 31) + c

	r := shiftMix((vf+ws)*hashK2 + (wf+vs)*hashK0)
	return shiftMix((seed^(r*hashK0))+vs) * hashK2
}

func rotr(v uint64, n uint) uint64 {
	return bits.RotateLeft64(v, -int(n))
}

func shiftMix(v uint64) uint64 {
	return v ^ (v >> 47)
}
