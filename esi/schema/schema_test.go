package schema

import (
	"fmt"
	"strings"
	"testing"

	"github.com/teqdruid/circt/errors"
	"github.com/teqdruid/circt/hwtype"
)

func TestTypeIDDeterministic(t *testing.T) {
	a := New(hwtype.Int{Width: 4})
	b := New(hwtype.Int{Width: 4})
	if a.TypeID() != b.TypeID() {
		t.Errorf("same type produced different IDs: %#x vs %#x", a.TypeID(), b.TypeID())
	}
	if a.TypeID()&0x8000000000000000 == 0 {
		t.Errorf("ID %#x missing high bit", a.TypeID())
	}
}

func TestTypeIDSensitivity(t *testing.T) {
	base := New(hwtype.Int{Width: 4}).TypeID()
	variants := []hwtype.Type{
		hwtype.Int{Width: 5},
		hwtype.Int{Width: 4, Signed: true},
		hwtype.Array{Elem: hwtype.Int{Width: 4}, Size: 1},
		hwtype.Alias{Name: "nibble", To: hwtype.Int{Width: 4}},
	}
	for _, v := range variants {
		if id := New(v).TypeID(); id == base {
			t.Errorf("%s shares ID %#x with ui4", v, id)
		}
	}
}

func TestTypeIDLongText(t *testing.T) {
	// More than one 64-byte block; block order must matter.
	var fa, fb []hwtype.Field
	for i := 0; i < 16; i++ {
		fa = append(fa, hwtype.Field{Name: fmt.Sprintf("field%02d", i), Type: hwtype.Int{Width: 32}})
		fb = append(fb, hwtype.Field{Name: fmt.Sprintf("field%02d", 15-i), Type: hwtype.Int{Width: 32}})
	}
	a := New(hwtype.Struct{Fields: fa})
	b := New(hwtype.Struct{Fields: fb})
	if a.TypeID() == b.TypeID() {
		t.Error("field order did not affect the ID")
	}
	if a.TypeID() != New(hwtype.Struct{Fields: fa}).TypeID() {
		t.Error("long text ID not deterministic")
	}
}

func TestName(t *testing.T) {
	inner := hwtype.Int{Width: 4}
	st := hwtype.Struct{Fields: []hwtype.Field{{Name: "a", Type: inner}}}
	tests := []struct {
		typ  hwtype.Type
		want string
	}{
		{hwtype.Int{Width: 4}, "Ui4"},
		{hwtype.Int{Width: 9, Signed: true}, "Si9"},
		{hwtype.Array{Elem: inner, Size: 3}, "ArrayOf3xUi4"},
		{hwtype.Array{Elem: hwtype.Array{Elem: inner, Size: 2}, Size: 3}, "ArrayOf3xArrayOf2xUi4"},
		{hwtype.Alias{Name: "sample", To: inner}, "sample"},
	}
	for _, tt := range tests {
		if got := New(tt.typ).Name(); got != tt.want {
			t.Errorf("Name(%s) = %q, want %q", tt.typ, got, tt.want)
		}
	}
	sn := New(st)
	want := fmt.Sprintf("Struct%d", sn.TypeID())
	if got := sn.Name(); got != want {
		t.Errorf("struct name = %q, want %q", got, want)
	}
}

func TestSupported(t *testing.T) {
	ok := []hwtype.Type{
		hwtype.Int{Width: 0},
		hwtype.Int{Width: 64},
		hwtype.Array{Elem: hwtype.Int{Width: 8}, Size: 10},
		hwtype.Struct{Fields: []hwtype.Field{
			{Name: "a", Type: hwtype.Int{Width: 4}},
			{Name: "b", Type: hwtype.Array{Elem: hwtype.Int{Width: 4}, Size: 3}},
		}},
		hwtype.Alias{Name: "word", To: hwtype.Int{Width: 32}},
	}
	for _, typ := range ok {
		if err := New(typ).Supported(); err != nil {
			t.Errorf("Supported(%s) = %v, want nil", typ, err)
		}
	}

	nested := hwtype.Struct{Fields: []hwtype.Field{{Name: "a", Type: hwtype.Int{Width: 1}}}}
	bad := []hwtype.Type{
		hwtype.Int{Width: 65},
		hwtype.Array{Elem: hwtype.Int{Width: 80}, Size: 2},
		hwtype.Struct{Fields: []hwtype.Field{{Name: "inner", Type: nested}}},
		hwtype.Array{Elem: nested, Size: 2},
	}
	for _, typ := range bad {
		err := New(typ).Supported()
		if err == nil {
			t.Errorf("Supported(%s) = nil, want error", typ)
			continue
		}
		var e *errors.Error
		if !errors.AsError(err, &e) || e.Kind != errors.KindUnsupported {
			t.Errorf("Supported(%s) kind = %v, want unsupported", typ, err)
		}
	}
}

func TestWriteGolden(t *testing.T) {
	s := New(hwtype.Int{Width: 4})
	var b strings.Builder
	if err := s.Write(&b); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := fmt.Sprintf("struct Ui4 @0x%016x {\n  i @0 :UInt8;  # Actual type is ui4.\n}\n\n", s.TypeID())
	if b.String() != want {
		t.Errorf("schema text:\n%q\nwant:\n%q", b.String(), want)
	}
}

func TestWriteFieldAlignment(t *testing.T) {
	s := New(hwtype.Struct{Fields: []hwtype.Field{
		{Name: "a", Type: hwtype.Int{Width: 4}},
		{Name: "longer", Type: hwtype.Int{Width: 1}},
	}})
	var b strings.Builder
	if err := s.Write(&b); err != nil {
		t.Fatalf("Write: %v", err)
	}
	text := b.String()
	if !strings.Contains(text, "  a      @0 :UInt8;  # Actual type is ui4.\n") {
		t.Errorf("short name not padded:\n%s", text)
	}
	if !strings.Contains(text, "  longer @1 :Bool;  # Actual type is ui1.\n") {
		t.Errorf("long name wrong:\n%s", text)
	}
}

func TestWriteMetadata(t *testing.T) {
	s := New(hwtype.Int{Width: 4})
	var b strings.Builder
	if err := s.WriteMetadata(&b); err != nil {
		t.Fatalf("WriteMetadata: %v", err)
	}
	want := fmt.Sprintf("Ui4 @0x%016x", s.TypeID())
	if b.String() != want {
		t.Errorf("metadata = %q, want %q", b.String(), want)
	}
}

func TestWireTypeMapping(t *testing.T) {
	tests := []struct {
		typ  hwtype.Type
		want string
	}{
		{hwtype.Int{Width: 0}, "Void"},
		{hwtype.Int{Width: 1}, "Bool"},
		{hwtype.Int{Width: 1, Signed: true}, "Bool"},
		{hwtype.Int{Width: 8}, "UInt8"},
		{hwtype.Int{Width: 9, Signed: true}, "Int16"},
		{hwtype.Int{Width: 33}, "UInt64"},
		{hwtype.Int{Width: 64, Signed: true}, "Int64"},
		{hwtype.Array{Elem: hwtype.Int{Width: 12}, Size: 4}, "List(UInt16)"},
		{hwtype.Alias{Name: "w", To: hwtype.Int{Width: 20}}, "UInt32"},
	}
	for _, tt := range tests {
		got, err := wireTypeText(tt.typ)
		if err != nil {
			t.Errorf("wireTypeText(%s): %v", tt.typ, err)
			continue
		}
		if got != tt.want {
			t.Errorf("wireTypeText(%s) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestSize(t *testing.T) {
	tests := []struct {
		name string
		typ  hwtype.Type
		bits uint
	}{
		// Root pointer word plus one data word.
		{"void", hwtype.Int{Width: 0}, 64},
		{"bool", hwtype.Int{Width: 1}, 128},
		{"ui64", hwtype.Int{Width: 64}, 128},
		// Root pointer, one pointer word, one payload word.
		{"array3xui4", hwtype.Array{Elem: hwtype.Int{Width: 4}, Size: 3}, 192},
		// 9 x 16-bit elements need 3 payload words.
		{"array9xui16", hwtype.Array{Elem: hwtype.Int{Width: 12}, Size: 9}, 320},
		{
			"mixed struct",
			hwtype.Struct{Fields: []hwtype.Field{
				{Name: "a", Type: hwtype.Int{Width: 4}},
				{Name: "b", Type: hwtype.Array{Elem: hwtype.Int{Width: 4}, Size: 3}},
			}},
			256,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.typ).Size()
			if err != nil {
				t.Fatalf("Size: %v", err)
			}
			if got != tt.bits {
				t.Errorf("Size = %d bits, want %d", got, tt.bits)
			}
			if got%64 != 0 {
				t.Errorf("Size = %d, not a multiple of 64", got)
			}
		})
	}
}

func TestSizeNoSlack(t *testing.T) {
	// Eight bytes pack into exactly one data word.
	var fields []hwtype.Field
	for i := 0; i < 8; i++ {
		fields = append(fields, hwtype.Field{Name: fmt.Sprintf("b%d", i), Type: hwtype.Int{Width: 8}})
	}
	s := New(hwtype.Struct{Fields: fields})
	node, err := s.WireStruct()
	if err != nil {
		t.Fatalf("WireStruct: %v", err)
	}
	if node.DataWordCount != 1 {
		t.Errorf("data words = %d, want 1", node.DataWordCount)
	}
}

func TestWireStructSlots(t *testing.T) {
	s := New(hwtype.Struct{Fields: []hwtype.Field{
		{Name: "a", Type: hwtype.Int{Width: 4}},
		{Name: "b", Type: hwtype.Array{Elem: hwtype.Int{Width: 4}, Size: 3}},
	}})
	node, err := s.WireStruct()
	if err != nil {
		t.Fatalf("WireStruct: %v", err)
	}
	if node.DataWordCount != 1 || node.PointerCount != 1 {
		t.Errorf("sections = %d, %d, want 1, 1", node.DataWordCount, node.PointerCount)
	}
	if node.Fields[0].Slot.Offset != 0 {
		t.Errorf("field a offset = %d", node.Fields[0].Slot.Offset)
	}
	if node.Fields[1].Slot.Offset != 0 {
		t.Errorf("field b pointer index = %d", node.Fields[1].Slot.Offset)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	s := New(hwtype.Int{Width: 4})
	if err := r.Register(s); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(New(hwtype.Int{Width: 4})); err != nil {
		t.Fatalf("re-Register same type: %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
	if text, ok := r.Lookup(s.TypeID()); !ok || text != "ui4" {
		t.Errorf("Lookup = %q, %v", text, ok)
	}
	if _, ok := r.Lookup(0x8000000000000042); ok {
		t.Error("Lookup of unregistered ID succeeded")
	}
}

func TestRegistryCollision(t *testing.T) {
	r := NewRegistry()
	s := New(hwtype.Int{Width: 4})
	// Plant a different type text under the ID the schema will claim.
	r.entries[s.TypeID()] = "si77"
	err := r.Register(s)
	if err == nil {
		t.Fatal("expected collision error")
	}
	var e *errors.Error
	if !errors.AsError(err, &e) || e.Kind != errors.KindCollision {
		t.Errorf("error = %v, want name collision", err)
	}
}
