package bitvec

// Vector is a fixed-width, bit-addressed vector. Bit i lives at
// words[i/64] >> (i%64); byte serialization is little-endian, so a Vector
// holding an encoded message produces exactly the message's wire bytes.
type Vector struct {
	words []uint64
	width uint
}

// New returns a zeroed Vector of the given bit width.
func New(width uint) *Vector {
	return &Vector{
		words: make([]uint64, (width+63)/64),
		width: width,
	}
}

// FromBytes builds a Vector from little-endian bytes. The width is
// 8*len(data).
func FromBytes(data []byte) *Vector {
	v := New(uint(len(data)) * 8)
	for i, b := range data {
		v.words[i/8] |= uint64(b) << (uint(i%8) * 8)
	}
	return v
}

// Width returns the vector's bit width.
func (v *Vector) Width() uint {
	return v.width
}

// ReadBits returns the width bits starting at off, LSB first. Bits beyond
// the vector's extent read as zero. width must be at most 64.
func (v *Vector) ReadBits(off, width uint) uint64 {
	if width == 0 {
		return 0
	}
	word := off / 64
	shift := off % 64
	var lo uint64
	if int(word) < len(v.words) {
		lo = v.words[word] >> shift
	}
	if shift+width > 64 && int(word)+1 < len(v.words) {
		lo |= v.words[word+1] << (64 - shift)
	}
	return lo & mask(width)
}

// WriteBits stores the low width bits of val at off. Bits beyond the
// vector's extent are dropped. width must be at most 64.
func (v *Vector) WriteBits(off, width uint, val uint64) {
	if width == 0 {
		return
	}
	val &= mask(width)
	word := off / 64
	shift := off % 64
	if int(word) < len(v.words) {
		v.words[word] &^= mask(width) << shift
		v.words[word] |= val << shift
	}
	if shift+width > 64 && int(word)+1 < len(v.words) {
		rem := shift + width - 64
		v.words[word+1] &^= mask(rem)
		v.words[word+1] |= val >> (64 - shift)
	}
}

// Bytes returns the vector as little-endian bytes, ceil(width/8) long.
func (v *Vector) Bytes() []byte {
	n := (v.width + 7) / 8
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(v.words[i/8] >> (uint(i%8) * 8))
	}
	return out
}

// Root returns a Slice covering the whole vector.
func (v *Vector) Root() Slice {
	return Slice{vec: v, width: v.width}
}

func mask(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}
