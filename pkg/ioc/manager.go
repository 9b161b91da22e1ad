package ioc

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/spidergraph/spider/pkg/errors"
	"github.com/spidergraph/spider/pkg/logger"
	"github.com/spidergraph/spider/pkg/metrics"
)

// Container resolves integrations by name. Manager is the built-in
// implementation; Spider accepts any other in its place.
type Container interface {
	// Init registers descriptors without resolving them. Values are
	// tagged with Tag.
	Init(descriptors map[string]interface{})
	// Fetch returns the integration registered under name.
	Fetch(name string) (interface{}, error)
	// Manifest returns the descriptors as registered.
	Manifest() map[string]interface{}
}

// Manager is the built-in Container. It is owned by one Spider instance
// and is not safe for concurrent use.
type Manager struct {
	raw         map[string]interface{}
	descriptors map[string]Descriptor
	resolved    map[string]interface{}
	delegate    Container
	types       *TypeRegistry
	logger      *zap.Logger
}

var _ Container = (*Manager)(nil)

// NewManager creates a manager holding descriptors, which may be nil.
func NewManager(descriptors map[string]interface{}) *Manager {
	m := &Manager{
		types:  globalTypes,
		logger: logger.Get().With(zap.String("component", "ioc_manager")),
	}
	m.Reset()
	m.Init(descriptors)
	return m
}

// SetTypes replaces the type registry used for KindType descriptors.
func (m *Manager) SetTypes(types *TypeRegistry) {
	m.types = types
}

// Reset drops every descriptor, memoized instance and adopted container.
func (m *Manager) Reset() {
	m.raw = make(map[string]interface{})
	m.descriptors = make(map[string]Descriptor)
	m.resolved = make(map[string]interface{})
	m.delegate = nil
}

// Init registers descriptors. Names already present are replaced along
// with their memoized instance; other names are left alone.
func (m *Manager) Init(descriptors map[string]interface{}) {
	for name, v := range descriptors {
		m.Add(name, v)
	}
}

// Add registers a single descriptor, replacing any previous one and its
// memoized instance.
func (m *Manager) Add(name string, v interface{}) {
	m.raw[name] = v
	m.descriptors[name] = Tag(v)
	delete(m.resolved, name)
}

// Has reports whether name is registered.
func (m *Manager) Has(name string) bool {
	_, ok := m.descriptors[name]
	return ok
}

// Names returns the registered names, sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.descriptors))
	for name := range m.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Delegated returns the adopted container, nil until a KindContainer
// descriptor has been fetched.
func (m *Manager) Delegated() Container {
	return m.delegate
}

// Fetch resolves name. Resolution happens once; later calls return the
// same value. Factory errors are returned and nothing is memoized. Once a
// container descriptor has been fetched, that container answers every
// lookup, including names this manager never registered.
func (m *Manager) Fetch(name string) (interface{}, error) {
	if m.delegate != nil {
		return m.delegate.Fetch(name)
	}

	if v, ok := m.resolved[name]; ok {
		return v, nil
	}

	d, ok := m.descriptors[name]
	if !ok {
		return nil, errors.New(errors.ErrorTypeServiceNotFound,
			fmt.Sprintf("integration %s not found", name)).
			WithDetail("name", name)
	}

	var (
		v   interface{}
		err error
	)
	switch d.kind {
	case KindType:
		v, err = m.construct(name, d.typeName)
	case KindFactory:
		if d.factory == nil {
			return nil, errors.New(errors.ErrorTypeInvalidArgument,
				fmt.Sprintf("integration %s has a nil factory", name))
		}
		v, err = d.factory()
	case KindInstance:
		v = d.instance
	case KindContainer:
		return m.adopt(name, d.container)
	default:
		return nil, errors.New(errors.ErrorTypeInvalidArgument,
			fmt.Sprintf("integration %s has an untagged descriptor", name))
	}
	if err != nil {
		return nil, err
	}

	m.resolved[name] = v
	metrics.IntegrationsResolved.WithLabelValues(d.kind.String()).Inc()
	m.logger.Debug("integration resolved",
		zap.String("name", name),
		zap.Stringer("kind", d.kind))
	return v, nil
}

func (m *Manager) construct(name, typeName string) (interface{}, error) {
	ctor, ok := m.types.Lookup(typeName)
	if !ok {
		return nil, errors.New(errors.ErrorTypeServiceNotFound,
			fmt.Sprintf("integration %s names unknown type %s", name, typeName)).
			WithDetail("name", name).
			WithDetail("type", typeName)
	}
	return ctor()
}

func (m *Manager) adopt(name string, c Container) (interface{}, error) {
	if c == nil || c == Container(m) {
		return nil, errors.New(errors.ErrorTypeInvalidArgument,
			fmt.Sprintf("integration %s delegates to an invalid container", name))
	}

	m.delegate = c
	metrics.IntegrationsResolved.WithLabelValues(KindContainer.String()).Inc()
	m.logger.Debug("container adopted", zap.String("name", name))
	return c.Fetch(name)
}

// Manifest returns a copy of the descriptors as they were registered.
func (m *Manager) Manifest() map[string]interface{} {
	out := make(map[string]interface{}, len(m.raw))
	for name, v := range m.raw {
		out[name] = v
	}
	return out
}
