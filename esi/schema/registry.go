package schema

import (
	"sync"

	"github.com/teqdruid/circt/errors"
)

// Registry maps schema IDs to the canonical text of the type that
// produced them. Registering a structurally different type under an
// already claimed ID is a hard error, never a silent overwrite: a
// 64-bit hash leaves a nonzero collision chance and a collision would
// otherwise corrupt every message exchanged under that ID.
type Registry struct {
	mu      sync.RWMutex
	entries map[uint64]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[uint64]string)}
}

// Register claims s's ID for its canonical type text. Re-registering
// the same type is a no-op.
func (r *Registry) Register(s *TypeSchema) error {
	id := s.TypeID()
	text := s.typ.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[id]; ok {
		if existing != text {
			return errors.Collision(id, existing, text)
		}
		return nil
	}
	r.entries[id] = text
	return nil
}

// Lookup returns the type text registered under id.
func (r *Registry) Lookup(id uint64) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	text, ok := r.entries[id]
	return text, ok
}

// Len returns the number of registered IDs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
