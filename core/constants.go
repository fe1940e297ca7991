package core

import (
	"sort"
	"sync"
)

// Constant represents a firmware constant exposed to the host
type Constant struct {
	Name  string
	Value interface{} // Can be string, int, etc.
}

// ConstantRegistry holds the constants published by core and the target
type ConstantRegistry struct {
	mu        sync.RWMutex
	constants map[string]*Constant
}

var globalConstants = NewConstantRegistry()

// NewConstantRegistry creates an empty registry
func NewConstantRegistry() *ConstantRegistry {
	return &ConstantRegistry{
		constants: make(map[string]*Constant),
	}
}

// RegisterConstant registers a constant in the global registry
// This is similar to DECL_CONSTANT in C Klipper
func RegisterConstant(name string, value interface{}) {
	globalConstants.Add(name, value)
}

// LookupConstant returns a constant from the global registry
func LookupConstant(name string) (interface{}, bool) {
	return globalConstants.Lookup(name)
}

// Constants returns all globally registered constants sorted by name
func Constants() []Constant {
	return globalConstants.List()
}

// Add adds or replaces a constant
func (r *ConstantRegistry) Add(name string, value interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constants[name] = &Constant{
		Name:  name,
		Value: value,
	}
}

// Lookup returns the value registered under name
func (r *ConstantRegistry) Lookup(name string) (interface{}, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.constants[name]
	if !ok {
		return nil, false
	}
	return c.Value, true
}

// List returns a copy of the registered constants sorted by name
func (r *ConstantRegistry) List() []Constant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Constant, 0, len(r.constants))
	for _, c := range r.constants {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
