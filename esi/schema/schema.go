package schema

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/teqdruid/circt/errors"
	"github.com/teqdruid/circt/esi/capidl"
	"github.com/teqdruid/circt/hwtype"
)

// TypeSchema derives the wire schema for one hardware type: its 64-bit
// ID, its wrapper struct declaration, and its exact encoded size. All
// derived values are memoized; a TypeSchema is not safe for concurrent
// use without external locking.
type TypeSchema struct {
	typ       hwtype.Type
	canonical hwtype.Type
	fields    []hwtype.Field

	id   uint64
	name string
	wire *capidl.Struct
}

// New builds the schema deriver for t. The message root is always a
// struct on the wire, so non-struct types get a synthetic wrapper: an
// integer root becomes field "i", an array root becomes field "l", and
// a struct root supplies its own fields.
func New(t hwtype.Type) *TypeSchema {
	s := &TypeSchema{typ: t, canonical: hwtype.Canonical(t)}
	switch ct := s.canonical.(type) {
	case hwtype.Int:
		s.fields = []hwtype.Field{{Name: "i", Type: ct}}
	case hwtype.Array:
		s.fields = []hwtype.Field{{Name: "l", Type: ct}}
	case hwtype.Struct:
		s.fields = ct.Fields
	}
	return s
}

// Type returns the descriptor the schema was built from.
func (s *TypeSchema) Type() hwtype.Type {
	return s.typ
}

// Fields returns the wrapper struct's fields in code order.
func (s *TypeSchema) Fields() []hwtype.Field {
	return s.fields
}

// Equal reports whether two schemas describe the same type.
func (s *TypeSchema) Equal(other *TypeSchema) bool {
	return other != nil && s.typ.String() == other.typ.String()
}

// Supported reports whether the type can be carried on the wire. It
// fails with an unsupported-type error when an integer is wider than 64
// bits, an array element is unsupported, or a struct appears anywhere
// other than the message root.
func (s *TypeSchema) Supported() error {
	return supported(s.typ, nil, true)
}

func supported(t hwtype.Type, path []string, outer bool) error {
	switch ct := hwtype.Canonical(t).(type) {
	case hwtype.Int:
		if ct.Width > 64 {
			return errors.Unsupported(path, t.String(), "integer wider than 64 bits")
		}
		return nil
	case hwtype.Array:
		return supported(ct.Elem, append(path, "[]"), false)
	case hwtype.Struct:
		if !outer {
			return errors.Unsupported(path, t.String(), "structs may only appear at the message root")
		}
		for _, f := range ct.Fields {
			if err := supported(f.Type, append(path, f.Name), false); err != nil {
				return err
			}
		}
		return nil
	}
	return errors.Unsupported(path, t.String(), "unknown type kind")
}

// TypeID returns the deterministic 64-bit schema ID: the hash of the
// type's textual form, not of its canonical resolution, so two aliases
// of the same type carry distinct IDs.
func (s *TypeSchema) TypeID() uint64 {
	if s.id == 0 {
		s.id = typeID(s.typ.String())
	}
	return s.id
}

// Name returns the schema struct name for the type. Names must start
// with an uppercase letter on the wire.
func (s *TypeSchema) Name() string {
	if s.name == "" {
		s.name = emitName(s.typ, s.TypeID())
	}
	return s.name
}

func emitName(t hwtype.Type, id uint64) string {
	switch ty := t.(type) {
	case hwtype.Int:
		text := []rune(ty.String())
		text[0] = unicode.ToUpper(text[0])
		return string(text)
	case hwtype.Array:
		return "ArrayOf" + strconv.FormatUint(uint64(ty.Size), 10) + "x" + emitName(ty.Elem, 0)
	case hwtype.Struct:
		return "Struct" + strconv.FormatUint(id, 10)
	case hwtype.Alias:
		return ty.Name
	}
	return ""
}

// wireTypeText prints the schema type for one field. Aliases are
// resolved first; nested structs never reach here because Supported
// rejects them.
func wireTypeText(t hwtype.Type) (string, error) {
	switch ct := hwtype.Canonical(t).(type) {
	case hwtype.Int:
		w := ct.Width
		switch {
		case w == 0:
			return "Void", nil
		case w == 1:
			return "Bool", nil
		case w > 64:
			return "", errors.Consistency(errors.PhaseSchema, "integer %s too wide for a wire type", t)
		}
		prefix := "UInt"
		if ct.Signed {
			prefix = "Int"
		}
		switch {
		case w <= 8:
			return prefix + "8", nil
		case w <= 16:
			return prefix + "16", nil
		case w <= 32:
			return prefix + "32", nil
		default:
			return prefix + "64", nil
		}
	case hwtype.Array:
		elem, err := wireTypeText(ct.Elem)
		if err != nil {
			return "", err
		}
		return "List(" + elem + ")", nil
	case hwtype.Struct:
		return "", errors.Consistency(errors.PhaseSchema, "nested struct %s has no wire type", t)
	}
	return "", errors.Consistency(errors.PhaseSchema, "no wire type for %s", t)
}

// Write emits the wrapper struct's schema declaration. Field names are
// padded so the ordinals line up; the trailing comment records the true
// hardware type and is documentation only.
func (s *TypeSchema) Write(w io.Writer) error {
	text, err := s.schemaText()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

// WriteMetadata emits the schema name and ID on one line.
func (s *TypeSchema) WriteMetadata(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s @0x%016x", s.Name(), s.TypeID())
	return err
}

func (s *TypeSchema) schemaText() (string, error) {
	var b strings.Builder
	b.WriteString("struct ")
	fmt.Fprintf(&b, "%s @0x%016x", s.Name(), s.TypeID())
	b.WriteString(" {\n")

	maxName := 0
	for _, f := range s.fields {
		if len(f.Name) > maxName {
			maxName = len(f.Name)
		}
	}
	for i, f := range s.fields {
		wire, err := wireTypeText(f.Type)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "  %s%s @%d :%s;  # Actual type is %s.\n",
			f.Name, strings.Repeat(" ", maxName-len(f.Name)), i, wire, f.Type)
	}
	b.WriteString("}\n\n")
	return b.String(), nil
}

// WireStruct parses the emitted schema and returns the struct node with
// computed slot offsets and section sizes.
func (s *TypeSchema) WireStruct() (*capidl.Struct, error) {
	if s.wire != nil {
		return s.wire, nil
	}
	if err := s.Supported(); err != nil {
		return nil, err
	}
	text, err := s.schemaText()
	if err != nil {
		return nil, err
	}
	// The parser wants a file ID before any declarations.
	file, err := capidl.Parse("@0xffffffffffffffff;\n" + text)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSchema, errors.KindConsistency, err,
			"emitted schema failed to parse")
	}
	node, ok := file.Struct(s.TypeID())
	if !ok {
		return nil, errors.Consistency(errors.PhaseSchema,
			"no struct node with ID %#016x in emitted schema", s.TypeID())
	}
	s.wire = node
	return node, nil
}

// Size returns the exact bit width of the encoded form: the root
// pointer word, both struct sections, and every list payload, all in
// whole 64-bit words.
func (s *TypeSchema) Size() (uint, error) {
	node, err := s.WireStruct()
	if err != nil {
		return 0, err
	}

	words := uint(1) + uint(node.DataWordCount) + uint(node.PointerCount)
	for _, f := range node.Fields {
		if f.Slot.Type.Kind != capidl.KindList {
			continue
		}
		if int(f.CodeOrder) >= len(s.fields) {
			return 0, errors.Consistency(errors.PhaseSchema,
				"field %s code order %d out of range", f.Name, f.CodeOrder)
		}
		arr, ok := hwtype.Canonical(s.fields[f.CodeOrder].Type).(hwtype.Array)
		if !ok {
			return 0, errors.Consistency(errors.PhaseSchema,
				"list field %s does not correspond to an array", f.Name)
		}
		listBits := uint64(arr.Size) * uint64(f.Slot.Type.Elem.Bits())
		words += uint((listBits + 63) / 64)
	}
	return words * 64, nil
}
