package codec

import "fmt"

// FaultCode identifies one class of message malformation.
type FaultCode string

const (
	FaultRootOffset   FaultCode = "root_offset"   // root pointer not at the canonical zero offset
	FaultDataWords    FaultCode = "data_words"    // declared data section size disagrees with the schema
	FaultPointerWords FaultCode = "pointer_words" // declared pointer section size disagrees with the schema
	FaultPointerTag   FaultCode = "pointer_tag"   // pointer word does not carry a list tag
	FaultElemSize     FaultCode = "elem_size"     // element-size code disagrees with the schema
	FaultListLength   FaultCode = "list_length"   // declared length exceeds the fixed capacity
	FaultListBounds   FaultCode = "list_bounds"   // payload extends past the end of the message
)

// Fault is one observed malformation. Faults are validity signals, not
// errors: a decode with faults still yields a value, and every check
// runs on every call.
type Fault struct {
	Code   FaultCode
	Field  string
	Detail string
}

func (f Fault) String() string {
	if f.Field == "" {
		return string(f.Code) + ": " + f.Detail
	}
	return string(f.Code) + " at " + f.Field + ": " + f.Detail
}

// checker accumulates faults during one decode.
type checker struct {
	faults []Fault
}

func (c *checker) failf(code FaultCode, field, format string, args ...any) {
	c.faults = append(c.faults, Fault{
		Code:   code,
		Field:  field,
		Detail: fmt.Sprintf(format, args...),
	})
}

// expectEq records a fault when got differs from want.
func (c *checker) expectEq(code FaultCode, field string, got, want uint64) bool {
	if got == want {
		return true
	}
	c.failf(code, field, "got %d, want %d", got, want)
	return false
}
