package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseEncode,
				Kind:   KindTypeMismatch,
				Path:   []string{"b"},
				Type:   "array<3xui4>",
				Wire:   "List(UInt8)",
				Detail: "expected array value",
			},
			contains: []string{"[encode]", "type_mismatch", "at b", "array<3xui4>", "List(UInt8)", "expected array value"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindInvalidInput,
			},
			contains: []string{"[decode]", "invalid_input"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseSchema,
				Kind:   KindParse,
				Detail: "bad schema",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[schema]", "parse", "bad schema", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	err := Unsupported([]string{"x"}, "ui128", "integer wider than 64 bits")
	if !errors.Is(err, &Error{Phase: PhaseSchema, Kind: KindUnsupported}) {
		t.Error("expected Is to match phase+kind")
	}
	if errors.Is(err, &Error{Phase: PhaseDecode, Kind: KindUnsupported}) {
		t.Error("expected Is to reject different phase")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(PhaseParse, KindParse, cause, "parse schema")
	if !errors.Is(err, cause) {
		t.Error("expected Unwrap chain to reach cause")
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseLayout, KindConsistency).
		Path("b", "[2]").
		Detail("overlap at bit %d", 192).
		Build()

	if err.Phase != PhaseLayout || err.Kind != KindConsistency {
		t.Errorf("wrong phase/kind: %v/%v", err.Phase, err.Kind)
	}
	if !strings.Contains(err.Error(), "overlap at bit 192") {
		t.Errorf("detail not formatted: %s", err.Error())
	}
	if !strings.Contains(err.Error(), "b.[2]") {
		t.Errorf("path not joined: %s", err.Error())
	}
}

func TestCollision(t *testing.T) {
	err := Collision(0x8000000000000001, "ui4", "si4")
	msg := err.Error()
	for _, s := range []string{"name_collision", "0x8000000000000001", `"ui4"`, `"si4"`} {
		if !strings.Contains(msg, s) {
			t.Errorf("collision message %q missing %q", msg, s)
		}
	}
}
