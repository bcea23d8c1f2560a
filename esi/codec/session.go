package codec

import (
	"sync"

	"go.uber.org/zap"

	"github.com/teqdruid/circt/esi/schema"
	"github.com/teqdruid/circt/hwtype"
)

// Options configures session behavior.
type Options struct {
	// Registry guards against schema ID collisions across the session.
	// Sessions may share one; nil gets a fresh registry.
	Registry *schema.Registry
}

// DefaultOptions returns default session configuration.
func DefaultOptions() Options {
	return Options{}
}

// Session owns the per-type encoder and decoder caches and the ID
// registry. Descriptors are immutable and structurally equal types are
// interchangeable, so cache entries are write-once: the first caller
// builds, concurrent callers observe the result. Thread-safe.
type Session struct {
	registry *schema.Registry
	mu       sync.Mutex
	encoders map[string]*Encoder
	decoders map[string]*Decoder
}

// New creates a session with the given options.
func New(opts Options) *Session {
	reg := opts.Registry
	if reg == nil {
		reg = schema.NewRegistry()
	}
	return &Session{
		registry: reg,
		encoders: make(map[string]*Encoder),
		decoders: make(map[string]*Decoder),
	}
}

// NewWithDefaults creates a session with default options.
func NewWithDefaults() *Session {
	return New(DefaultOptions())
}

// Registry returns the session's schema ID registry.
func (s *Session) Registry() *schema.Registry {
	return s.registry
}

// Encoder returns the cached encoder for t, building and installing it
// on first use.
func (s *Session) Encoder(t hwtype.Type) (*Encoder, error) {
	key := hwtype.Canonical(t).String()

	s.mu.Lock()
	defer s.mu.Unlock()

	if enc, ok := s.encoders[key]; ok {
		return enc, nil
	}
	enc, err := NewEncoder(t)
	if err != nil {
		return nil, err
	}
	if err := s.registry.Register(enc.Schema()); err != nil {
		return nil, err
	}
	s.encoders[key] = enc
	Logger().Debug("built encoder",
		zap.String("type", t.String()),
		zap.Uint64("id", enc.Schema().TypeID()))
	return enc, nil
}

// Decoder returns the cached decoder for t, building and installing it
// on first use.
func (s *Session) Decoder(t hwtype.Type) (*Decoder, error) {
	key := hwtype.Canonical(t).String()

	s.mu.Lock()
	defer s.mu.Unlock()

	if dec, ok := s.decoders[key]; ok {
		return dec, nil
	}
	dec, err := NewDecoder(t)
	if err != nil {
		return nil, err
	}
	if err := s.registry.Register(dec.Schema()); err != nil {
		return nil, err
	}
	s.decoders[key] = dec
	Logger().Debug("built decoder",
		zap.String("type", t.String()),
		zap.Uint64("id", dec.Schema().TypeID()))
	return dec, nil
}
