package trace

import "sync/atomic"

// Store publishes the current index to concurrent readers. Rebuilds
// construct a new Index and swap it in atomically; in-flight readers keep
// the snapshot they already hold and never observe a partially built one.
type Store struct {
	current atomic.Pointer[Index]
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Swap publishes idx as the current index.
func (s *Store) Swap(idx *Index) {
	s.current.Store(idx)
}

// Current returns the published index, or nil when none has been built or
// loaded yet.
func (s *Store) Current() *Index {
	return s.current.Load()
}
