package codec

// Value is a concrete hardware value to be encoded or the result of a
// decode. The set of implementations is closed: Int, Array, and Struct.
type Value interface {
	sealedValue()
}

// Int holds an integer value. Only the low Width bits of the carrying
// type are significant; higher bits must be zero.
type Int struct {
	Bits uint64
}

// Array is a fixed-length sequence of element values.
type Array []Value

// Struct holds one value per field, in declared field order.
type Struct []Value

func (Int) sealedValue()    {}
func (Array) sealedValue()  {}
func (Struct) sealedValue() {}

// Equal reports deep equality of two values.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Int:
		bv, ok := b.(Int)
		return ok && av.Bits == bv.Bits
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Struct:
		bv, ok := b.(Struct)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	}
	return false
}
