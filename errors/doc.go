// Package errors provides structured error types for the codec generator.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: field path, hardware/wire
// type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Path("b").
//		Type("array<3xui4>").
//		Wire("List(UInt8)").
//		Detail("expected array value").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Unsupported(path, "ui128", "integer wider than 64 bits")
//	err := errors.Consistency(errors.PhaseLayout, "placement overlap at bit %d", off)
//
// The error taxonomy maps onto the codec's failure model: KindUnsupported is
// a recoverable schema-derivation error, KindConsistency marks internal
// invariant violations (generator bugs), and KindCollision guards the schema
// ID registry. Malformed wire messages are deliberately NOT errors; they are
// reported as decode faults by the codec package.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
