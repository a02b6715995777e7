package module

import (
	"fmt"
	"sync"
)

// Registry holds mounted modules by name so later modules can look up ports
type Registry struct {
	mu   sync.RWMutex
	mods map[string]Module
	seq  []string
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry { return &Registry{mods: map[string]Module{}} }

// Add registers m under its name; duplicate names are a wiring bug
func (r *Registry) Add(m Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := m.Name()
	if _, dup := r.mods[name]; dup {
		return fmt.Errorf("module: %q registered twice", name)
	}
	r.mods[name] = m
	r.seq = append(r.seq, name)
	return nil
}

// Get returns the module registered under name
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.mods[name]
	return m, ok
}

// All returns modules in registration order
func (r *Registry) All() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Module, 0, len(r.seq))
	for _, n := range r.seq {
		out = append(out, r.mods[n])
	}
	return out
}

// PortsAs looks up name and extracts T from its ports bundle
func PortsAs[T any](r *Registry, name string) (T, bool) {
	m, ok := r.Get(name)
	if !ok {
		var zero T
		return zero, false
	}
	return PortsOf[T](m)
}
