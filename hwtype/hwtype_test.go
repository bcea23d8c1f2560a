package hwtype

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{Int{Width: 4}, "ui4"},
		{Int{Width: 32, Signed: true}, "si32"},
		{Int{Width: 0}, "ui0"},
		{Array{Elem: Int{Width: 4}, Size: 3}, "array<3xui4>"},
		{Array{Elem: Array{Elem: Int{Width: 1}, Size: 2}, Size: 5}, "array<5xarray<2xui1>>"},
		{Struct{Fields: []Field{
			{Name: "a", Type: Int{Width: 4}},
			{Name: "b", Type: Array{Elem: Int{Width: 4}, Size: 3}},
		}}, "struct<a: ui4, b: array<3xui4>>"},
		{Alias{Name: "word", To: Int{Width: 64}}, "word"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCanonical(t *testing.T) {
	inner := Alias{Name: "nibble", To: Int{Width: 4}}
	outer := Alias{Name: "trio", To: Array{Elem: inner, Size: 3}}

	got := Canonical(outer)
	want := Array{Elem: Int{Width: 4}, Size: 3}
	if got.String() != want.String() {
		t.Errorf("Canonical = %q, want %q", got, want)
	}

	st := Struct{Fields: []Field{{Name: "x", Type: inner}}}
	cst, ok := Canonical(st).(Struct)
	if !ok {
		t.Fatalf("Canonical(struct) is %T", Canonical(st))
	}
	if _, ok := cst.Fields[0].Type.(Int); !ok {
		t.Errorf("alias in field not resolved: %T", cst.Fields[0].Type)
	}
}

func TestWidth(t *testing.T) {
	tests := []struct {
		typ  Type
		want uint
	}{
		{Int{Width: 0}, 0},
		{Int{Width: 41, Signed: true}, 41},
		{Array{Elem: Int{Width: 4}, Size: 3}, 12},
		{Struct{Fields: []Field{
			{Name: "a", Type: Int{Width: 4}},
			{Name: "b", Type: Array{Elem: Int{Width: 4}, Size: 3}},
		}}, 16},
		{Alias{Name: "word", To: Int{Width: 64}}, 64},
	}

	for _, tt := range tests {
		if got := Width(tt.typ); got != tt.want {
			t.Errorf("Width(%s) = %d, want %d", tt.typ, got, tt.want)
		}
	}
}

func TestIsGround(t *testing.T) {
	if !IsGround(Int{Width: 8}) {
		t.Error("Int should be ground")
	}
	if !IsGround(Alias{Name: "w", To: Int{Width: 8}}) {
		t.Error("alias of Int should be ground")
	}
	if IsGround(Array{Elem: Int{Width: 8}, Size: 2}) {
		t.Error("Array should not be ground")
	}
	if IsGround(Struct{}) {
		t.Error("Struct should not be ground")
	}
}

func TestFields(t *testing.T) {
	st := Struct{Fields: []Field{
		{Name: "a", Type: Int{Width: 1}},
		{Name: "b", Type: Int{Width: 2}},
	}}
	fs := Fields(Alias{Name: "s", To: st})
	if len(fs) != 2 || fs[0].Name != "a" || fs[1].Name != "b" {
		t.Errorf("Fields = %v", fs)
	}
	if Fields(Int{Width: 3}) != nil {
		t.Error("Fields(Int) should be nil")
	}
}
