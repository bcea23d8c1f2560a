package codec

import (
	"bytes"
	"testing"

	"github.com/teqdruid/circt/errors"
)

func TestBuilderAlloc(t *testing.T) {
	b := newBuilder(256)
	if off := b.alloc(64); off != 0 {
		t.Errorf("first alloc = %d, want 0", off)
	}
	if off := b.alloc(128); off != 64 {
		t.Errorf("second alloc = %d, want 64", off)
	}
	if off := b.alloc(0); off != 192 {
		t.Errorf("empty alloc = %d, want 192", off)
	}
}

func TestBuilderOverlapRejected(t *testing.T) {
	tests := []struct {
		name          string
		first, second [2]uint // off, width
	}{
		{"identical", [2]uint{0, 64}, [2]uint{0, 64}},
		{"tail collision", [2]uint{0, 64}, [2]uint{32, 64}},
		{"head collision", [2]uint{32, 64}, [2]uint{0, 64}},
		{"contained", [2]uint{0, 64}, [2]uint{8, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBuilder(256)
			if err := b.insert(tt.first[0], tt.first[1], 1); err != nil {
				t.Fatalf("first insert: %v", err)
			}
			err := b.insert(tt.second[0], tt.second[1], 2)
			if err == nil {
				t.Fatal("overlapping insert succeeded")
			}
			var e *errors.Error
			if !errors.AsError(err, &e) || e.Kind != errors.KindConsistency {
				t.Errorf("error = %v, want consistency", err)
			}
		})
	}
}

func TestBuilderAdjacentPlacements(t *testing.T) {
	b := newBuilder(64)
	b.high = 64
	if err := b.insert(0, 32, 0xAAAAAAAA); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := b.insert(32, 32, 0xBBBBBBBB); err != nil {
		t.Errorf("adjacent insert rejected: %v", err)
	}
}

func TestBuilderLimitEnforced(t *testing.T) {
	b := newBuilder(64)
	if err := b.insert(32, 64, 0); err == nil {
		t.Error("placement past the message end succeeded")
	}
}

func TestBuilderCompilePadsGaps(t *testing.T) {
	b := newBuilder(128)
	b.alloc(128)
	if err := b.insert(0, 8, 0xFF); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := b.insert(112, 16, 0xABCD); err != nil {
		t.Fatalf("insert: %v", err)
	}
	vec, err := b.compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	want := []byte{0xFF, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xCD, 0xAB}
	if !bytes.Equal(vec.Bytes(), want) {
		t.Errorf("compiled bytes = % x, want % x", vec.Bytes(), want)
	}
}

func TestBuilderCompileSizeMismatch(t *testing.T) {
	b := newBuilder(128)
	b.alloc(64)
	if _, err := b.compile(); err == nil {
		t.Error("compile with unconsumed space succeeded")
	}
	b2 := newBuilder(64)
	b2.alloc(128)
	if _, err := b2.compile(); err == nil {
		t.Error("compile past the declared size succeeded")
	}
}

func TestBuilderZeroWidthInsert(t *testing.T) {
	b := newBuilder(64)
	b.high = 64
	if err := b.insert(0, 0, 42); err != nil {
		t.Fatalf("zero-width insert: %v", err)
	}
	if err := b.insert(0, 64, 7); err != nil {
		t.Errorf("zero-width placement blocked a real one: %v", err)
	}
}
