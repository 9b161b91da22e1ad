package ioc

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spidergraph/spider/pkg/errors"
)

// Constructor builds an integration from nothing. Integration packages
// register one per type identifier from an init function.
type Constructor func() (interface{}, error)

// TypeRegistry maps type identifiers to constructors.
type TypeRegistry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

var globalTypes = NewTypeRegistry()

// NewTypeRegistry creates an empty type registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{ctors: make(map[string]Constructor)}
}

// Register adds a constructor under id.
func (r *TypeRegistry) Register(id string, ctor Constructor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ctors[id]; exists {
		return errors.New(errors.ErrorTypeConfig, fmt.Sprintf("integration type %s already registered", id))
	}
	r.ctors[id] = ctor
	return nil
}

// Lookup returns the constructor registered under id.
func (r *TypeRegistry) Lookup(id string) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.ctors[id]
	return ctor, ok
}

// List returns the registered identifiers, sorted.
func (r *TypeRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.ctors))
	for id := range r.ctors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RegisterType registers a constructor in the global type registry.
func RegisterType(id string, ctor Constructor) error {
	return globalTypes.Register(id, ctor)
}

// Types lists the global type registry.
func Types() []string {
	return globalTypes.List()
}

// GetTypeRegistry returns the global type registry.
func GetTypeRegistry() *TypeRegistry {
	return globalTypes
}
