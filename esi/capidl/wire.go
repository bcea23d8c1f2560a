package capidl

// WireKind identifies a field type as it appears on the wire.
type WireKind uint8

const (
	KindVoid WireKind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindList
)

// WireType is the resolved type of a struct field slot. List types carry
// their element type in Elem; all other kinds leave it nil.
type WireType struct {
	Kind WireKind
	Elem *WireType
}

// Bits reports the storage width of one value of this type in the data
// section, or of one element in a list payload. Pointers occupy a full word.
func (w WireType) Bits() uint {
	switch w.Kind {
	case KindVoid:
		return 0
	case KindBool:
		return 1
	case KindInt8, KindUInt8:
		return 8
	case KindInt16, KindUInt16:
		return 16
	case KindInt32, KindUInt32:
		return 32
	case KindInt64, KindUInt64:
		return 64
	case KindList:
		return 64
	}
	return 0
}

// IsPointer reports whether the field lives in the pointer section.
func (w WireType) IsPointer() bool {
	return w.Kind == KindList
}

// SizeCode returns the 3-bit element-size code used in list pointers.
func (w WireType) SizeCode() uint8 {
	switch w.Kind {
	case KindVoid:
		return 0
	case KindBool:
		return 1
	case KindInt8, KindUInt8:
		return 2
	case KindInt16, KindUInt16:
		return 3
	case KindInt32, KindUInt32:
		return 4
	case KindList:
		return 6
	}
	return 5
}

// lgBits returns log2 of the data-section allocation size for non-pointer
// types. Void allocates nothing and reports ok=false.
func (w WireType) lgBits() (uint, bool) {
	switch w.Kind {
	case KindBool:
		return 0, true
	case KindInt8, KindUInt8:
		return 3, true
	case KindInt16, KindUInt16:
		return 4, true
	case KindInt32, KindUInt32:
		return 5, true
	case KindInt64, KindUInt64:
		return 6, true
	}
	return 0, false
}

func (w WireType) String() string {
	switch w.Kind {
	case KindVoid:
		return "Void"
	case KindBool:
		return "Bool"
	case KindInt8:
		return "Int8"
	case KindInt16:
		return "Int16"
	case KindInt32:
		return "Int32"
	case KindInt64:
		return "Int64"
	case KindUInt8:
		return "UInt8"
	case KindUInt16:
		return "UInt16"
	case KindUInt32:
		return "UInt32"
	case KindUInt64:
		return "UInt64"
	case KindList:
		if w.Elem != nil {
			return "List(" + w.Elem.String() + ")"
		}
		return "List"
	}
	return "unknown"
}

var primitiveKinds = map[string]WireKind{
	"Void":   KindVoid,
	"Bool":   KindBool,
	"Int8":   KindInt8,
	"Int16":  KindInt16,
	"Int32":  KindInt32,
	"Int64":  KindInt64,
	"UInt8":  KindUInt8,
	"UInt16": KindUInt16,
	"UInt32": KindUInt32,
	"UInt64": KindUInt64,
}
