package capidl

// holeSet tracks unused gaps left in the data section after allocating
// values narrower than a word. holes[lg] is the offset, in units of
// 2^lg bits, of a free slot of that size. Zero means no hole of that
// size is available; offset zero itself can never be a hole because
// the first allocation always claims it.
type holeSet struct {
	holes [6]uint32
}

// tryAllocate claims a hole of size 2^lg bits, splitting a larger hole
// in half if no exact fit exists.
func (h *holeSet) tryAllocate(lg uint) (uint32, bool) {
	if lg >= 6 {
		return 0, false
	}
	if off := h.holes[lg]; off != 0 {
		h.holes[lg] = 0
		return off, true
	}
	upper, ok := h.tryAllocate(lg + 1)
	if !ok {
		return 0, false
	}
	off := upper * 2
	h.holes[lg] = off + 1
	return off, true
}

// addHolesAtEnd records the trailing gap left after placing a value of
// size 2^lg bits at offset-1 within a fresh word. One hole of each size
// from lg up to half a word covers the remainder of the word.
func (h *holeSet) addHolesAtEnd(lg uint, offset uint32) {
	for ; lg < 6; lg++ {
		h.holes[lg] = offset
		offset = (offset + 1) / 2
	}
}

// structLayout assigns slot offsets to fields in ordinal order, packing
// sub-word values into holes so no word carries avoidable slack.
type structLayout struct {
	dataWords uint16
	ptrs      uint16
	holes     holeSet
}

// addData returns the offset, in units of 2^lg bits, for the next data
// value of that size.
func (l *structLayout) addData(lg uint) uint32 {
	if lg >= 6 {
		off := uint32(l.dataWords)
		l.dataWords++
		return off
	}
	if off, ok := l.holes.tryAllocate(lg); ok {
		return off
	}
	off := uint32(l.dataWords) << (6 - lg)
	l.dataWords++
	l.holes.addHolesAtEnd(lg, off+1)
	return off
}

// addPointer returns the index of the next pointer-section slot.
func (l *structLayout) addPointer() uint32 {
	off := uint32(l.ptrs)
	l.ptrs++
	return off
}

// place assigns a slot offset for a field of the given wire type.
func (l *structLayout) place(t WireType) uint32 {
	if t.IsPointer() {
		return l.addPointer()
	}
	lg, ok := t.lgBits()
	if !ok {
		// Void occupies no storage.
		return 0
	}
	return l.addData(lg)
}
