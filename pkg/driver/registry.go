// Package driver defines the boundary between Spider's connection registry
// and the backend wire drivers. Drivers register a Factory under an
// identifier from an init function; a connection definition names that
// identifier in its `driver` key.
package driver

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/spidergraph/spider/pkg/errors"
	"github.com/spidergraph/spider/pkg/logger"
)

// ErrUnknownDriver is wrapped by Create when no factory is registered under
// the requested identifier.
var ErrUnknownDriver = stderrors.New("unknown driver")

// Driver is a constructed backend driver. Construction performs no network
// I/O; drivers that talk to a server connect lazily.
type Driver interface {
	// Name returns the identifier the driver was registered under.
	Name() string
	// Close releases any resources held by the driver.
	Close(ctx context.Context) error
}

// Factory creates a driver from a connection definition. The definition is
// a copy and may be retained.
type Factory func(definition map[string]interface{}) (Driver, error)

// Registry manages driver registration and instantiation
type Registry struct {
	factories map[string]Factory
	aliases   map[string]string
	catalog   map[string]*Info
	mu        sync.RWMutex
	logger    *zap.Logger
}

// Info describes a registered driver.
type Info struct {
	Name         string                 `json:"name"`
	Backend      string                 `json:"backend"`
	Description  string                 `json:"description"`
	Aliases      []string               `json:"aliases"`
	ConfigSchema map[string]interface{} `json:"config_schema"`
}

// Global registry instance
var globalRegistry = NewRegistry()

// NewRegistry creates a new driver registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		aliases:   make(map[string]string),
		catalog:   make(map[string]*Info),
		logger:    logger.Get().With(zap.String("component", "driver_registry")),
	}
}

// Register registers a driver factory
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return errors.New(errors.ErrorTypeConfig, fmt.Sprintf("driver %s already registered", name))
	}
	if _, exists := r.aliases[name]; exists {
		return errors.New(errors.ErrorTypeConfig, fmt.Sprintf("driver %s already registered as an alias", name))
	}

	r.factories[name] = factory
	r.logger.Debug("driver registered", zap.String("name", name))
	return nil
}

// RegisterAlias makes alias resolve to the driver registered as name.
func (r *Registry) RegisterAlias(alias, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[alias]; exists {
		return errors.New(errors.ErrorTypeConfig, fmt.Sprintf("driver alias %s shadows a registered driver", alias))
	}
	if existing, exists := r.aliases[alias]; exists && existing != name {
		return errors.New(errors.ErrorTypeConfig, fmt.Sprintf("driver alias %s already points at %s", alias, existing))
	}

	r.aliases[alias] = name
	return nil
}

// Resolve maps an identifier or alias onto a registered driver name.
func (r *Registry) Resolve(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolveLocked(name)
}

func (r *Registry) resolveLocked(name string) (string, bool) {
	if _, ok := r.factories[name]; ok {
		return name, true
	}
	if target, ok := r.aliases[name]; ok {
		if _, ok := r.factories[target]; ok {
			return target, true
		}
	}
	return "", false
}

// Create creates a driver instance. Factory errors are returned unmodified.
func (r *Registry) Create(name string, definition map[string]interface{}) (Driver, error) {
	r.mu.RLock()
	resolved, ok := r.resolveLocked(name)
	factory := r.factories[resolved]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, name)
	}

	return factory(definition)
}

// List returns the registered driver names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has checks if a driver or alias is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.Resolve(name)
	return ok
}

// RegisterInfo adds a driver description to the catalog
func (r *Registry) RegisterInfo(info *Info) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.catalog[info.Name]; exists {
		return errors.New(errors.ErrorTypeConfig, fmt.Sprintf("driver %s already in catalog", info.Name))
	}

	r.catalog[info.Name] = info
	return nil
}

// Info retrieves driver information
func (r *Registry) Info(name string) (*Info, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resolved, ok := r.resolveLocked(name)
	if !ok {
		resolved = name
	}
	info, exists := r.catalog[resolved]
	if !exists {
		return nil, errors.New(errors.ErrorTypeConfig, fmt.Sprintf("driver %s not found in catalog", name))
	}

	return info, nil
}

// ListInfo returns the catalog sorted by driver name
func (r *Registry) ListInfo() []*Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]*Info, 0, len(r.catalog))
	for _, info := range r.catalog {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Clear removes all registered drivers (mainly for testing)
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories = make(map[string]Factory)
	r.aliases = make(map[string]string)
	r.catalog = make(map[string]*Info)
}

// Global registry functions

// Register registers a driver in the global registry
func Register(name string, factory Factory) error {
	return globalRegistry.Register(name, factory)
}

// RegisterAlias registers a driver alias in the global registry
func RegisterAlias(alias, name string) error {
	return globalRegistry.RegisterAlias(alias, name)
}

// RegisterInfo registers driver information in the global catalog
func RegisterInfo(info *Info) error {
	return globalRegistry.RegisterInfo(info)
}

// Create creates a driver from the global registry
func Create(name string, definition map[string]interface{}) (Driver, error) {
	return globalRegistry.Create(name, definition)
}

// List returns registered drivers from the global registry
func List() []string {
	return globalRegistry.List()
}

// Has checks if a driver is registered in the global registry
func Has(name string) bool {
	return globalRegistry.Has(name)
}

// ListInfo lists the global catalog
func ListInfo() []*Info {
	return globalRegistry.ListInfo()
}

// GetRegistry returns the global registry instance.
func GetRegistry() *Registry {
	return globalRegistry
}
