package hwtype

import (
	"strconv"
	"strings"
)

// Type is a hardware value type. The set of implementations is closed:
// Int, Array, Struct, and Alias. Every Type is immutable once constructed.
type Type interface {
	// String returns the type's deterministic textual form. Identical
	// descriptors always print identically; the text is the input to
	// schema ID hashing.
	String() string

	sealed()
}

// Int is a fixed-width integer. Width 0 is legal and carries no data.
type Int struct {
	Width  uint
	Signed bool
}

// Array is a fixed-length array of a single element type.
type Array struct {
	Elem Type
	Size uint
}

// Field is one named member of a Struct. Order within the Struct is
// significant: it defines wire code order.
type Field struct {
	Name string
	Type Type
}

// Struct is an ordered collection of named fields.
type Struct struct {
	Fields []Field
}

// Alias is a named reference to another type. Aliases print as their
// declared name, so two aliases with different names hash to different
// schema IDs even when structurally identical.
type Alias struct {
	Name string
	To   Type
}

func (Int) sealed()    {}
func (Array) sealed()  {}
func (Struct) sealed() {}
func (Alias) sealed()  {}

func (t Int) String() string {
	if t.Signed {
		return "si" + strconv.FormatUint(uint64(t.Width), 10)
	}
	return "ui" + strconv.FormatUint(uint64(t.Width), 10)
}

func (t Array) String() string {
	return "array<" + strconv.FormatUint(uint64(t.Size), 10) + "x" + t.Elem.String() + ">"
}

func (t Struct) String() string {
	var b strings.Builder
	b.WriteString("struct<")
	for i, f := range t.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(f.Type.String())
	}
	b.WriteString(">")
	return b.String()
}

func (t Alias) String() string {
	return t.Name
}
