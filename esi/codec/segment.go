package codec

import (
	"sort"
	"strings"

	"github.com/teqdruid/circt/bitvec"
	"github.com/teqdruid/circt/errors"
	"github.com/teqdruid/circt/esi/capidl"
)

// placement is one value placed in the message at a fixed bit range.
// No placement is ever wider than a word.
type placement struct {
	off   uint
	width uint
	bits  uint64
}

// builder assembles one encoded message: a bump allocator over a
// bit-addressed segment plus an ordered list of non-overlapping
// placements. Overlap or exceeding the declared message size is an
// internal consistency failure, never a silent overwrite.
type builder struct {
	limit      uint
	high       uint
	placements []placement
}

func newBuilder(limitBits uint) *builder {
	return &builder{limit: limitBits}
}

// alloc reserves bits at the high-water mark and returns its old value.
func (b *builder) alloc(bits uint) uint {
	off := b.high
	b.high += bits
	return off
}

// insert places width bits of value at off. Zero-width placements are
// legal and occupy nothing.
func (b *builder) insert(off, width uint, bits uint64) error {
	if width == 0 {
		return nil
	}
	if off+width > b.limit {
		return errors.Consistency(errors.PhaseLayout,
			"placement [%d, %d) exceeds message size %d", off, off+width, b.limit)
	}

	i := sort.Search(len(b.placements), func(i int) bool {
		return b.placements[i].off >= off
	})
	if i < len(b.placements) && off+width > b.placements[i].off {
		return errors.Consistency(errors.PhaseLayout,
			"placement [%d, %d) overlaps [%d, %d)",
			off, off+width, b.placements[i].off, b.placements[i].off+b.placements[i].width)
	}
	if i > 0 {
		prev := b.placements[i-1]
		if prev.off+prev.width > off {
			return errors.Consistency(errors.PhaseLayout,
				"placement [%d, %d) overlaps [%d, %d)",
				off, off+width, prev.off, prev.off+prev.width)
		}
	}

	b.placements = append(b.placements, placement{})
	copy(b.placements[i+1:], b.placements[i:])
	b.placements[i] = placement{off: off, width: width, bits: bits}
	return nil
}

// encodeFieldAt places one field value. Scalars insert directly at off
// with their natural width; lists allocate their payload past the
// high-water mark, place element 0 at the lowest address, and then
// insert the pointer word at off.
func (b *builder) encodeFieldAt(off uint, v Value, wire capidl.WireType, natWidth uint, path []string) error {
	if wire.IsPointer() {
		arr, ok := v.(Array)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, valueKind(v), wire.String())
		}
		return b.encodeListAt(off, arr, wire, natWidth, path)
	}

	iv, ok := v.(Int)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, path, valueKind(v), wire.String())
	}
	if natWidth < 64 && iv.Bits>>natWidth != 0 {
		return errors.InvalidInput(errors.PhaseEncode,
			"value %#x at %s does not fit in %d bits", iv.Bits, strings.Join(path, "."), natWidth)
	}
	return b.insert(off, natWidth, iv.Bits)
}

func (b *builder) encodeListAt(off uint, arr Array, wire capidl.WireType, elemWidth uint, path []string) error {
	elemBits := wire.Elem.Bits()
	count := uint(len(arr))

	// Payloads occupy whole words.
	payloadBits := (count*elemBits + 63) / 64 * 64
	payload := b.alloc(payloadBits)

	for i, ev := range arr {
		iv, ok := ev.(Int)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode,
				append(path, "[]"), valueKind(ev), wire.Elem.String())
		}
		if elemWidth < 64 && iv.Bits>>elemWidth != 0 {
			return errors.InvalidInput(errors.PhaseEncode,
				"element %d of %s does not fit in %d bits", i, strings.Join(path, "."), elemWidth)
		}
		if err := b.insert(payload+uint(i)*elemBits, elemWidth, iv.Bits); err != nil {
			return err
		}
	}

	// Relative offset is measured from the word after the pointer.
	relWords := uint64(payload/64 - (off/64 + 1))
	word := uint64(1) |
		relWords<<2 |
		uint64(wire.Elem.SizeCode())<<32 |
		uint64(count)<<35
	return b.insert(off, 64, word)
}

// compile renders the placements into a flat vector, zero-filling every
// gap and the tail. The allocator must have consumed the declared size
// exactly.
func (b *builder) compile() (*bitvec.Vector, error) {
	if b.high != b.limit {
		return nil, errors.Consistency(errors.PhaseLayout,
			"allocated %d bits, declared size is %d", b.high, b.limit)
	}
	vec := bitvec.New(b.limit)
	for _, p := range b.placements {
		vec.WriteBits(p.off, p.width, p.bits)
	}
	return vec, nil
}

func valueKind(v Value) string {
	switch v.(type) {
	case Int:
		return "int"
	case Array:
		return "array"
	case Struct:
		return "struct"
	}
	return "nil"
}
