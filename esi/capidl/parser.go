package capidl

import (
	"sort"
	"strconv"

	"github.com/teqdruid/circt/errors"
)

// File is a parsed schema: an optional file ID followed by struct
// declarations, with every field assigned its wire slot.
type File struct {
	ID      uint64
	Structs []*Struct
}

// Struct returns the declaration with the given 64-bit ID.
func (f *File) Struct(id uint64) (*Struct, bool) {
	for _, s := range f.Structs {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// StructByName returns the declaration with the given name.
func (f *File) StructByName(name string) (*Struct, bool) {
	for _, s := range f.Structs {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Struct is one struct declaration with its computed section sizes.
type Struct struct {
	Name          string
	ID            uint64
	DataWordCount uint16
	PointerCount  uint16
	Fields        []Field
}

// Field is one struct member with its assigned slot.
type Field struct {
	Name      string
	CodeOrder uint16
	IsGroup   bool
	Slot      Slot
}

// Slot locates a field value. For data fields Offset is in units of the
// field's own width; for pointer fields it is a pointer-section index.
type Slot struct {
	Offset uint32
	Type   WireType
}

type parser struct {
	tokens []token
	pos    int
}

// Parse reads a schema from source text and lays out every struct's
// fields in ordinal order.
func Parse(input string) (*File, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	file := &File{}

	// Optional file ID: @0xHEX;
	if p.peekType(tokAt) && p.pos+1 < len(p.tokens) && p.tokens[p.pos+1].typ == tokNumber {
		p.pos++
		id, err := p.parseID()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokSemi); err != nil {
			return nil, err
		}
		file.ID = id
	}

	for p.pos < len(p.tokens) {
		s, err := p.parseStruct()
		if err != nil {
			return nil, err
		}
		if _, dup := file.Struct(s.ID); dup {
			return nil, errors.ParseError(p.line(), "duplicate struct ID %#016x", s.ID)
		}
		file.Structs = append(file.Structs, s)
	}

	return file, nil
}

func (p *parser) parseStruct() (*Struct, error) {
	kw, err := p.next(tokIdent)
	if err != nil {
		return nil, err
	}
	if kw.value != "struct" {
		return nil, errors.ParseError(kw.line, "expected 'struct', got %q", kw.value)
	}

	name, err := p.next(tokIdent)
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokAt); err != nil {
		return nil, err
	}
	id, err := p.parseID()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokLBrace); err != nil {
		return nil, err
	}

	s := &Struct{Name: name.value, ID: id}
	for !p.peekType(tokRBrace) {
		f, err := p.parseField()
		if err != nil {
			return nil, err
		}
		s.Fields = append(s.Fields, f)
	}
	if err := p.expect(tokRBrace); err != nil {
		return nil, err
	}

	// Slots are assigned in ordinal order, which may differ from the
	// order fields were written.
	sort.SliceStable(s.Fields, func(i, j int) bool {
		return s.Fields[i].CodeOrder < s.Fields[j].CodeOrder
	})
	for i, f := range s.Fields {
		if uint16(i) != f.CodeOrder {
			return nil, errors.ParseError(p.line(), "struct %s: field ordinals not dense at @%d", s.Name, f.CodeOrder)
		}
	}

	var layout structLayout
	for i := range s.Fields {
		s.Fields[i].Slot.Offset = layout.place(s.Fields[i].Slot.Type)
	}
	s.DataWordCount = layout.dataWords
	s.PointerCount = layout.ptrs

	return s, nil
}

func (p *parser) parseField() (Field, error) {
	name, err := p.next(tokIdent)
	if err != nil {
		return Field{}, err
	}
	if err := p.expect(tokAt); err != nil {
		return Field{}, err
	}
	ordTok, err := p.next(tokNumber)
	if err != nil {
		return Field{}, err
	}
	ord, perr := strconv.ParseUint(ordTok.value, 10, 16)
	if perr != nil {
		return Field{}, errors.ParseError(ordTok.line, "invalid field ordinal %q", ordTok.value)
	}
	if err := p.expect(tokColon); err != nil {
		return Field{}, err
	}
	typ, err := p.parseType()
	if err != nil {
		return Field{}, err
	}
	if err := p.expect(tokSemi); err != nil {
		return Field{}, err
	}

	return Field{
		Name:      name.value,
		CodeOrder: uint16(ord),
		Slot:      Slot{Type: typ},
	}, nil
}

func (p *parser) parseType() (WireType, error) {
	name, err := p.next(tokIdent)
	if err != nil {
		return WireType{}, err
	}
	if name.value == "List" {
		if err := p.expect(tokLParen); err != nil {
			return WireType{}, err
		}
		elem, err := p.parseType()
		if err != nil {
			return WireType{}, err
		}
		if err := p.expect(tokRParen); err != nil {
			return WireType{}, err
		}
		return WireType{Kind: KindList, Elem: &elem}, nil
	}
	kind, ok := primitiveKinds[name.value]
	if !ok {
		return WireType{}, errors.ParseError(name.line, "unknown type %q", name.value)
	}
	return WireType{Kind: kind}, nil
}

func (p *parser) parseID() (uint64, error) {
	tok, err := p.next(tokNumber)
	if err != nil {
		return 0, err
	}
	id, perr := strconv.ParseUint(tok.value, 0, 64)
	if perr != nil {
		return 0, errors.ParseError(tok.line, "invalid ID %q", tok.value)
	}
	return id, nil
}

func (p *parser) next(typ tokenType) (token, error) {
	if p.pos >= len(p.tokens) {
		return token{}, errors.ParseError(p.line(), "unexpected end of input, expected %s", typ)
	}
	tok := p.tokens[p.pos]
	if tok.typ != typ {
		return token{}, errors.ParseError(tok.line, "expected %s, got %q", typ, tok.value)
	}
	p.pos++
	return tok, nil
}

func (p *parser) expect(typ tokenType) error {
	_, err := p.next(typ)
	return err
}

func (p *parser) peekType(typ tokenType) bool {
	return p.pos < len(p.tokens) && p.tokens[p.pos].typ == typ
}

func (p *parser) line() int {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos].line
	}
	if len(p.tokens) > 0 {
		return p.tokens[len(p.tokens)-1].line
	}
	return 1
}
