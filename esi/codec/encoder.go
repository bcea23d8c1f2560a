package codec

import (
	"github.com/teqdruid/circt"
	"github.com/teqdruid/circt/bitvec"
	"github.com/teqdruid/circt/errors"
	"github.com/teqdruid/circt/esi/capidl"
	"github.com/teqdruid/circt/esi/schema"
	"github.com/teqdruid/circt/hwtype"
)

var _ circt.Unit = (*Encoder)(nil)

// Encoder turns values of one hardware type into their wire form. Build
// one per type, through a Session; Encode itself allocates a fresh
// segment per message and is safe for concurrent use.
type Encoder struct {
	ts       *schema.TypeSchema
	node     *capidl.Struct
	fields   []hwtype.Field
	sizeBits uint
}

// NewEncoder derives the wire layout for t and validates that every
// field is encodable.
func NewEncoder(t hwtype.Type) (*Encoder, error) {
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
				"nested lists cannot be encoded")
		}
	}
	return &Encoder{ts: ts, node: node, fields: ts.Fields(), sizeBits: size}, nil
}

// Schema returns the type schema the encoder was built from.
func (e *Encoder) Schema() *schema.TypeSchema {
	return e.ts
}

// Encode produces the wire form of v. The result is always exactly
// Size bits. A value whose shape does not match the type is a
// recoverable error.
func (e *Encoder) Encode(v Value) (*bitvec.Vector, error) {
	values, err := e.wrap(v)
	if err != nil {
		return nil, err
	}

	b := newBuilder(e.sizeBits)

	// Root pointer word, then both struct sections, contiguously.
	rootOff := b.alloc(64)
	if rootOff != 0 {
		return nil, errors.Consistency(errors.PhaseEncode, "root pointer not at offset 0")
	}
	dataOff := b.alloc(uint(e.node.DataWordCount) * 64)
	ptrOff := b.alloc(uint(e.node.PointerCount) * 64)

	root := uint64(e.node.DataWordCount)<<32 | uint64(e.node.PointerCount)<<48
	if err := b.insert(rootOff, 64, root); err != nil {
		return nil, err
	}

	for _, f := range e.node.Fields {
		hwField := e.fields[f.CodeOrder]
		val := values[f.CodeOrder]
		path := []string{hwField.Name}

		var off uint
		if f.Slot.Type.IsPointer() {
			off = ptrOff + uint(f.Slot.Offset)*64
			if err := e.checkArity(val, hwField.Type, path); err != nil {
				return nil, err
			}
		} else {
			off = dataOff + uint(f.Slot.Offset)*f.Slot.Type.Bits()
		}
		if err := b.encodeFieldAt(off, val, f.Slot.Type, natWidth(hwField.Type, f.Slot.Type), path); err != nil {
			return nil, err
		}
	}

	return b.compile()
}

// wrap decomposes v into one sub-value per wrapper field.
func (e *Encoder) wrap(v Value) ([]Value, error) {
	switch hwtype.Canonical(e.ts.Type()).(type) {
	case hwtype.Struct:
		sv, ok := v.(Struct)
		if !ok {
			return nil, errors.TypeMismatch(errors.PhaseEncode, nil, valueKind(v), "struct")
		}
		if len(sv) != len(e.fields) {
			return nil, errors.InvalidInput(errors.PhaseEncode,
				"struct value has %d fields, type has %d", len(sv), len(e.fields))
		}
		return sv, nil
	default:
		return []Value{v}, nil
	}
}

func (e *Encoder) checkArity(v Value, t hwtype.Type, path []string) error {
	arr, ok := v.(Array)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, path, valueKind(v), t.String())
	}
	at, ok := hwtype.Canonical(t).(hwtype.Array)
	if !ok {
		return errors.Consistency(errors.PhaseEncode, "list field %s is not an array type", path[0])
	}
	if uint(len(arr)) != at.Size {
		return errors.InvalidInput(errors.PhaseEncode,
			"array value has %d elements, type %s holds %d", len(arr), t, at.Size)
	}
	return nil
}

// natWidth is the number of significant bits a value contributes: the
// hardware width of the field, or of the element for list fields. The
// remaining wire bits stay zero.
func natWidth(t hwtype.Type, wire capidl.WireType) uint {
	if wire.IsPointer() {
		if at, ok := hwtype.Canonical(t).(hwtype.Array); ok {
			return hwtype.Width(at.Elem)
		}
		return 0
	}
	return hwtype.Width(t)
}

// Name implements circt.Unit.
func (e *Encoder) Name() string {
	return "encode" + e.ts.Name()
}

// Ports implements circt.Unit: the inner value arrives on data, the
// wire message leaves on result.
func (e *Encoder) Ports() []circt.Port {
	return []circt.Port{
		{Name: "clk", Dir: circt.Input, Width: 1},
		{Name: "valid", Dir: circt.Input, Width: 1},
		{Name: "data", Dir: circt.Input, Width: hwtype.Width(e.ts.Type())},
		{Name: "result", Dir: circt.Output, Width: e.sizeBits},
	}
}
