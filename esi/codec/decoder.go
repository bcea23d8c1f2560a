package codec

import (
	"github.com/teqdruid/circt"
	"github.com/teqdruid/circt/bitvec"
	"github.com/teqdruid/circt/errors"
	"github.com/teqdruid/circt/esi/capidl"
	"github.com/teqdruid/circt/esi/schema"
	"github.com/teqdruid/circt/hwtype"
)

var _ circt.Unit = (*Decoder)(nil)

// Decoder turns wire messages of one hardware type back into values.
// Malformed messages are reported as faults on the result, never as
// errors: the only error Decode returns is a vector of the wrong
// physical width, which is caller misuse rather than wire corruption.
type Decoder struct {
	ts       *schema.TypeSchema
	node     *capidl.Struct
	fields   []hwtype.Field
	sizeBits uint
}

// Decoded is the outcome of one decode: the extracted value together
// with every malformation observed while extracting it.
type Decoded struct {
	Value  Value
	Faults []Fault
}

// Valid reports whether the message passed every validity check.
func (d *Decoded) Valid() bool {
	return len(d.Faults) == 0
}

// NewDecoder derives the wire layout for t.
func NewDecoder(t hwtype.Type) (*Decoder, error) {
	ts := schema.New(t)
	if err := ts.Supported(); err != nil {
		return nil, err
	}
	node, err := ts.WireStruct()
	if err != nil {
		return nil, err
	}
	size, err := ts.Size()
	if err != nil {
		return nil, err
	}
	for _, f := range node.Fields {
		if f.Slot.Type.Kind == capidl.KindList && f.Slot.Type.Elem.IsPointer() {
			return nil, errors.Unsupported([]string{f.Name}, f.Slot.Type.String(),
				"nested lists cannot be decoded")
		}
	}
	return &Decoder{ts: ts, node: node, fields: ts.Fields(), sizeBits: size}, nil
}

// Schema returns the type schema the decoder was built from.
func (d *Decoder) Schema() *schema.TypeSchema {
	return d.ts
}

// Decode extracts the value carried by vec. Section offsets come from
// the static schema; the message's own declared counts and lengths are
// validated against it, never trusted for addressing.
func (d *Decoder) Decode(vec *bitvec.Vector) (*Decoded, error) {
	if vec.Width() != d.sizeBits {
		return nil, errors.InvalidInput(errors.PhaseDecode,
			"message is %d bits, type %s occupies %d", vec.Width(), d.ts.Type(), d.sizeBits)
	}

	var c checker
	root := vec.Root()

	// Root pointer: tag and offset must be the canonical zero encoding.
	rootWord := root.Slice(0, 64)
	if typeAndOffset := rootWord.Slice(0, 32).Uint(); typeAndOffset != 0 {
		c.failf(FaultRootOffset, "", "root pointer type/offset word is %#x, want 0", typeAndOffset)
	}
	c.expectEq(FaultDataWords, "", rootWord.Slice(32, 16).Uint(), uint64(d.node.DataWordCount))
	c.expectEq(FaultPointerWords, "", rootWord.Slice(48, 16).Uint(), uint64(d.node.PointerCount))

	dataOff := uint(64)
	ptrOff := dataOff + uint(d.node.DataWordCount)*64

	values := make([]Value, len(d.fields))
	for _, f := range d.node.Fields {
		hwField := d.fields[f.CodeOrder]
		if f.Slot.Type.IsPointer() {
			values[f.CodeOrder] = d.decodeList(root, &c, f, hwField,
				ptrOff+uint(f.Slot.Offset)*64)
		} else {
			off := dataOff + uint(f.Slot.Offset)*f.Slot.Type.Bits()
			values[f.CodeOrder] = Int{Bits: root.Slice(off, hwtype.Width(hwField.Type)).Uint()}
		}
	}

	return &Decoded{Value: d.assemble(values), Faults: c.faults}, nil
}

// decodeList validates one list pointer and reads the full fixed
// capacity of elements. Out-of-range reads yield zeros, so a faulted
// message still produces a value.
func (d *Decoder) decodeList(root bitvec.Slice, c *checker, f capidl.Field, hwField hwtype.Field, ptrWordOff uint) Value {
	arrType, _ := hwtype.Canonical(hwField.Type).(hwtype.Array)
	elemBits := f.Slot.Type.Elem.Bits()
	elemWidth := hwtype.Width(arrType.Elem)

	word := root.Slice(ptrWordOff, 64)
	if tag := word.Slice(0, 2).Uint(); tag != 1 {
		c.failf(FaultPointerTag, hwField.Name, "pointer tag is %d, want 1 (list)", tag)
	}
	c.expectEq(FaultElemSize, hwField.Name,
		word.Slice(32, 3).Uint(), uint64(f.Slot.Type.Elem.SizeCode()))
	if length := word.Slice(35, 29).Uint(); length > uint64(arrType.Size) {
		c.failf(FaultListLength, hwField.Name,
			"declared length %d exceeds capacity %d", length, arrType.Size)
	}

	relWords := uint(word.Slice(2, 30).Uint())
	payload := ptrWordOff + 64 + relWords*64
	if payload+uint(arrType.Size)*elemBits > d.sizeBits {
		c.failf(FaultListBounds, hwField.Name,
			"payload at bit %d runs past message end %d", payload, d.sizeBits)
	}

	elems := make(Array, arrType.Size)
	for i := uint(0); i < arrType.Size; i++ {
		elems[i] = Int{Bits: root.Slice(payload+i*elemBits, elemWidth).Uint()}
	}
	return elems
}

// assemble rebuilds the outer value: wrapped roots unwrap their single
// field, struct roots collect fields in declared order.
func (d *Decoder) assemble(values []Value) Value {
	switch hwtype.Canonical(d.ts.Type()).(type) {
	case hwtype.Struct:
		return Struct(values)
	default:
		return values[0]
	}
}

// Name implements circt.Unit.
func (d *Decoder) Name() string {
	return "decode" + d.ts.Name()
}

// Ports implements circt.Unit: the wire message arrives on data, the
// inner value leaves on result.
func (d *Decoder) Ports() []circt.Port {
	return []circt.Port{
		{Name: "clk", Dir: circt.Input, Width: 1},
		{Name: "valid", Dir: circt.Input, Width: 1},
		{Name: "data", Dir: circt.Input, Width: d.sizeBits},
		{Name: "result", Dir: circt.Output, Width: hwtype.Width(d.ts.Type())},
	}
}
