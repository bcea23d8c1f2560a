package hwtype

// Canonical resolves all aliases in t, at every nesting level, and returns
// the underlying type. The result contains no Alias nodes.
func Canonical(t Type) Type {
	switch ty := t.(type) {
	case Int:
		return ty
	case Array:
		return Array{Elem: Canonical(ty.Elem), Size: ty.Size}
	case Struct:
		fields := make([]Field, len(ty.Fields))
		for i, f := range ty.Fields {
			fields[i] = Field{Name: f.Name, Type: Canonical(f.Type)}
		}
		return Struct{Fields: fields}
	case Alias:
		return Canonical(ty.To)
	}
	return t
}

// Width returns the packed bit width of t: the number of bits a value of
// this type occupies before any wire encoding.
func Width(t Type) uint {
	switch ty := Canonical(t).(type) {
	case Int:
		return ty.Width
	case Array:
		return ty.Size * Width(ty.Elem)
	case Struct:
		var total uint
		for _, f := range ty.Fields {
			total += Width(f.Type)
		}
		return total
	}
	return 0
}

// IsGround reports whether t is a non-aggregate type.
func IsGround(t Type) bool {
	_, ok := Canonical(t).(Int)
	return ok
}

// Fields returns the ordered sub-fields of t: a Struct's own fields, or nil
// for ground and array types.
func Fields(t Type) []Field {
	if st, ok := Canonical(t).(Struct); ok {
		return st.Fields
	}
	return nil
}
