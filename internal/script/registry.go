package script

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrEngineExists is returned when registering a duplicate engine name.
var ErrEngineExists = errors.New("engine already registered")

// ErrUnknownEngine is returned when a command names an engine the registry
// does not hold.
var ErrUnknownEngine = errors.New("unknown script engine")

// Registry manages the available script engines.
type Registry struct {
	mu      sync.RWMutex
	engines map[string]Engine
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{engines: make(map[string]Engine)}
}

// DefaultRegistry returns a registry holding the stock engines.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	// Stock engines have distinct names, so registration cannot fail.
	_ = r.Register(NewStarlarkEngine())
	_ = r.Register(NewCELEngine())
	return r
}

// Register adds an engine to the registry.
func (r *Registry) Register(e Engine) error {
	if e == nil {
		return fmt.Errorf("engine is nil")
	}
	name := e.Name()
	if name == "" {
		return fmt.Errorf("engine name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.engines[name]; exists {
		return fmt.Errorf("%w: %s", ErrEngineExists, name)
	}
	r.engines[name] = e
	return nil
}

// Get returns the engine registered under name.
func (r *Registry) Get(name string) (Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
	return e, nil
}

// Names returns the registered engine names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
