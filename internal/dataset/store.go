// Package dataset holds the kernel's in-memory table of named frames.
package dataset

import (
	"sort"
	"sync"

	"github.com/halfmoss/quern/internal/tabular"
)

// Store maps dataset names to frames. Loading under an existing name
// replaces the frame outright; there is no merge and no delete, so a
// dataset lives until it is replaced or the store is released.
//
// The kernel drives a store from a single goroutine, but the store locks
// anyway so embedders and tests can share one safely.
type Store struct {
	mu     sync.RWMutex
	frames map[string]*tabular.Frame
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{frames: make(map[string]*tabular.Frame)}
}

// Put registers a frame under name, taking over the caller's reference.
// It reports whether an existing frame was replaced; the replaced frame is
// released.
func (s *Store) Put(name string, f *tabular.Frame) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, existed := s.frames[name]
	s.frames[name] = f
	if existed {
		old.Release()
	}
	return existed
}

// Get returns the frame registered under name.
func (s *Store) Get(name string) (*tabular.Frame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.frames[name]
	return f, ok
}

// Names returns the registered dataset names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.frames))
	for name := range s.frames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered datasets.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.frames)
}

// Snapshot returns a copy of the name table. The frames are shared, the
// map is not: rebinding a name in the snapshot never touches the store.
func (s *Store) Snapshot() map[string]*tabular.Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*tabular.Frame, len(s.frames))
	for name, f := range s.frames {
		out[name] = f
	}
	return out
}

// Release drops every dataset and releases its frame. The store stays
// usable afterwards.
func (s *Store) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, f := range s.frames {
		f.Release()
		delete(s.frames, name)
	}
}
