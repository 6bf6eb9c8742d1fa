package accesscontrol

import "context"

// Source provides policy data to NewFromSource. Implementations load the
// store from wherever policy lives: memory, a database, an object store.
type Source interface {
	// Load returns the policy store. The caller treats it as read-only.
	Load(ctx context.Context) (Store, error)
}

// staticSource serves a fixed store from memory. It deep-copies its input so
// later mutations by the caller cannot leak into evaluation.
type staticSource struct {
	store Store
}

// NewStaticSource returns a Source serving a deep copy of the given store.
func NewStaticSource(store Store) Source {
	return &staticSource{store: store.Clone()}
}

// Load returns the copied store.
// The returned store is safe to read but must not be modified.
func (s *staticSource) Load(ctx context.Context) (Store, error) {
	return s.store, nil
}
