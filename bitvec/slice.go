package bitvec

// Slice is a contiguous bit-range view of a Vector. A Slice carries its
// absolute offset rather than a link to the slice it was derived from, so
// the offset from the message root is always available directly.
type Slice struct {
	vec   *Vector
	off   uint
	width uint
}

// Slice derives a sub-view covering width bits starting lsb bits into s.
func (s Slice) Slice(lsb, width uint) Slice {
	return Slice{vec: s.vec, off: s.off + lsb, width: width}
}

// FromRoot returns the slice's absolute bit offset in the underlying vector.
func (s Slice) FromRoot() uint {
	return s.off
}

// Width returns the slice's bit width.
func (s Slice) Width() uint {
	return s.width
}

// Uint reinterprets the slice contents as an unsigned integer. The slice
// must be at most 64 bits wide.
func (s Slice) Uint() uint64 {
	return s.vec.ReadBits(s.off, s.width)
}

// Int reinterprets the slice contents as a signed integer: the top bit of
// the slice is the sign, the rest the magnitude bits, recombined by sign
// extension.
func (s Slice) Int() int64 {
	raw := s.Uint()
	if s.width == 0 || s.width >= 64 {
		return int64(raw)
	}
	if raw&(uint64(1)<<(s.width-1)) != 0 {
		raw |= ^mask(s.width)
	}
	return int64(raw)
}
