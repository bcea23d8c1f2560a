package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseSchema  Phase = "schema"  // schema derivation
	PhaseLayout  Phase = "layout"  // message layout / segment building
	PhaseEncode  Phase = "encode"  // value to wire
	PhaseDecode  Phase = "decode"  // wire to value
	PhaseParse   Phase = "parse"   // schema text parsing
	PhaseSession Phase = "session" // codec session / cache
)

// Kind categorizes the error
type Kind string

const (
	KindUnsupported  Kind = "unsupported_type"
	KindConsistency  Kind = "schema_consistency"
	KindCollision    Kind = "name_collision"
	KindTypeMismatch Kind = "type_mismatch"
	KindInvalidInput Kind = "invalid_input"
	KindParse        Kind = "parse"
	KindNotFound     Kind = "not_found"
)

// Error is the structured error type used throughout the codec generator.
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Type   string // hardware type text, when relevant
	Wire   string // wire (capnp) type text, when relevant
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Type != "" || e.Wire != "" {
		b.WriteString(": ")
		if e.Type != "" && e.Wire != "" {
			b.WriteString("type ")
			b.WriteString(e.Type)
			b.WriteString(", wire type ")
			b.WriteString(e.Wire)
		} else if e.Type != "" {
			b.WriteString("type ")
			b.WriteString(e.Type)
		} else {
			b.WriteString("wire type ")
			b.WriteString(e.Wire)
		}
	}

	if e.Detail != "" {
		if e.Type != "" || e.Wire != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// AsError unwraps err into target if any error in its chain is an *Error.
func AsError(err error, target **Error) bool {
	return stderrors.As(err, target)
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Type sets the hardware type text
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Wire sets the wire type text
func (b *Builder) Wire(t string) *Builder {
	b.err.Wire = t
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Unsupported reports a type the schema deriver cannot express on the wire.
// It names the offending sub-type so the caller can choose not to use the
// feature for that type.
func Unsupported(path []string, typeText, reason string) *Error {
	return &Error{
		Phase:  PhaseSchema,
		Kind:   KindUnsupported,
		Path:   path,
		Type:   typeText,
		Detail: reason,
	}
}

// Consistency reports an internal invariant violation during layout or
// segment building. It always indicates a generator bug; callers must
// propagate it rather than emit a corrupt message.
func Consistency(phase Phase, detail string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindConsistency,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// Collision reports two structurally different types hashing to the same
// schema ID.
func Collision(id uint64, existing, incoming string) *Error {
	return &Error{
		Phase:  PhaseSession,
		Kind:   KindCollision,
		Detail: fmt.Sprintf("schema ID %#016x already registered for %q, refusing %q", id, existing, incoming),
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, typeText, wireText string) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindTypeMismatch,
		Path:  path,
		Type:  typeText,
		Wire:  wireText,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// ParseError creates a schema text parse error with a line number.
func ParseError(line int, detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindParse,
		Detail: fmt.Sprintf("line %d: %s", line, fmt.Sprintf(detail, args...)),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
