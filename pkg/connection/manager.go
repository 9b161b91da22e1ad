// Package connection holds the connection manifest of a Spider instance and
// turns aliases into connection definitions and live connections.
//
// A manifest maps aliases to definitions. The reserved key `default` holds
// the alias used when no alias is requested:
//
//	connections:
//	  default: orient
//	  orient: {driver: orientdb, hostname: localhost}
//	  neo:    {driver: neo4j, uri: "bolt://localhost:7687"}
package connection

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/spidergraph/spider/pkg/config"
	"github.com/spidergraph/spider/pkg/driver"
	"github.com/spidergraph/spider/pkg/errors"
	"github.com/spidergraph/spider/pkg/logger"
)

// DefaultKey is the reserved manifest key naming the default alias.
const DefaultKey = "default"

// Definition is the driver identifier plus backend-specific credentials
// stored under one alias.
type Definition map[string]interface{}

// Driver returns the driver identifier, empty when missing.
func (d Definition) Driver() string {
	name, _ := d["driver"].(string)
	return name
}

// Manager stores one connection manifest. It is owned by a single Spider
// instance and is not safe for concurrent mutation.
type Manager struct {
	manifest map[string]interface{}
	drivers  *driver.Registry
	logger   *zap.Logger
}

// NewManager creates an empty manager that builds drivers from drivers, or
// from the global driver registry when drivers is nil.
func NewManager(drivers *driver.Registry) *Manager {
	if drivers == nil {
		drivers = driver.GetRegistry()
	}
	return &Manager{
		manifest: make(map[string]interface{}),
		drivers:  drivers,
		logger:   logger.Get().With(zap.String("component", "connection_manager")),
	}
}

// Reset replaces the whole manifest with a copy of manifest.
func (m *Manager) Reset(manifest map[string]interface{}) {
	m.manifest = config.Tree(manifest).Clone()
	if m.manifest == nil {
		m.manifest = make(map[string]interface{})
	}
}

// Add inserts or overwrites the definition stored under alias.
func (m *Manager) Add(alias string, definition map[string]interface{}) {
	m.manifest[alias] = map[string]interface{}(config.Tree(definition).Clone())
}

// SetDefault points the reserved default entry at alias.
func (m *Manager) SetDefault(alias string) {
	m.manifest[DefaultKey] = alias
}

// Resolve returns the alias a request resolves to. An empty alias selects
// the manifest's default entry.
func (m *Manager) Resolve(alias string) (string, error) {
	if alias != "" {
		return alias, nil
	}

	raw, ok := m.manifest[DefaultKey]
	if !ok {
		return "", errors.New(errors.ErrorTypeConnectionNotFound,
			"no connection alias requested and the manifest has no default")
	}
	name, ok := raw.(string)
	if !ok || name == "" || name == DefaultKey {
		return "", errors.New(errors.ErrorTypeConnectionNotFound,
			fmt.Sprintf("default connection alias %v is not a valid alias", raw)).
			WithDetail("default", raw)
	}
	return name, nil
}

// Fetch returns a copy of the definition stored under alias, or under the
// default alias when alias is empty.
func (m *Manager) Fetch(alias string) (Definition, error) {
	name, err := m.Resolve(alias)
	if err != nil {
		return nil, err
	}
	return m.lookup(name)
}

func (m *Manager) lookup(name string) (Definition, error) {
	if name == DefaultKey {
		return nil, errors.New(errors.ErrorTypeConnectionNotFound,
			"the default entry is not a connection definition")
	}

	raw, ok := m.manifest[name]
	if !ok {
		return nil, errors.New(errors.ErrorTypeConnectionNotFound,
			fmt.Sprintf("connection %s not found", name)).
			WithDetail("alias", name)
	}

	def, ok := config.AsMap(raw)
	if !ok {
		return nil, errors.New(errors.ErrorTypeConnectionNotFound,
			fmt.Sprintf("connection %s is not a definition", name)).
			WithDetail("alias", name)
	}

	return Definition(config.Tree(def).Clone()), nil
}

// Make resolves alias like Fetch and builds a connection from the result.
func (m *Manager) Make(alias string) (*Connection, error) {
	name, err := m.Resolve(alias)
	if err != nil {
		return nil, err
	}
	def, err := m.lookup(name)
	if err != nil {
		return nil, err
	}

	conn, err := Open(name, def, m.drivers)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("connection built",
		zap.String("alias", name),
		zap.String("driver", conn.DriverName()),
		zap.String("connection_id", conn.ID()))
	return conn, nil
}

// All returns a copy of the manifest, default entry included.
func (m *Manager) All() map[string]interface{} {
	return config.Tree(m.manifest).Clone()
}

// Aliases returns the defined aliases in sorted order, without the
// default entry.
func (m *Manager) Aliases() []string {
	aliases := make([]string, 0, len(m.manifest))
	for alias := range m.manifest {
		if alias == DefaultKey {
			continue
		}
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// Drivers returns the registry used to build drivers.
func (m *Manager) Drivers() *driver.Registry {
	return m.drivers
}
