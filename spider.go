package spider

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spidergraph/spider/pkg/config"
	"github.com/spidergraph/spider/pkg/connection"
	"github.com/spidergraph/spider/pkg/driver"
	"github.com/spidergraph/spider/pkg/errors"
	"github.com/spidergraph/spider/pkg/ioc"
	"github.com/spidergraph/spider/pkg/logger"
	"github.com/spidergraph/spider/pkg/metrics"
	"github.com/spidergraph/spider/pkg/query"
)

// Well-known integration names.
const (
	EventsIntegration = "events"
	LoggerIntegration = "logger"
	CacheIntegration  = "cache"
)

// Spider holds a connection manifest, an integration container and the
// general options of one configuration, together with the query builder
// bound to the active connection.
//
// A Spider is unconfigured until Configure succeeds. It is not safe for
// concurrent configuration.
type Spider struct {
	opts        options
	connections *connection.Manager
	container   ioc.Container
	general     config.Tree
	policy      errors.Policy
	builder     *query.Builder
	// integrationsKey is the key integrations were supplied under, empty
	// when the effective configuration had none.
	integrationsKey string
	logger          *zap.Logger
}

// New creates a Spider and, when cfg is not empty, configures it with the
// connection named by alias (the manifest default when alias is empty).
func New(cfg config.Tree, alias string, opts ...Option) (*Spider, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Spider{
		opts:        o,
		connections: connection.NewManager(o.drivers),
		container:   o.container,
		general:     config.Tree{},
		policy:      errors.DefaultPolicy(),
	}
	if s.container == nil {
		s.container = ioc.NewManager(nil)
	}
	s.logger = s.baseLogger()

	if len(cfg) == 0 {
		return s, nil
	}
	if err := s.Configure(cfg, alias); err != nil {
		return nil, err
	}
	return s, nil
}

// Configure merges cfg over the defaults template and binds the instance
// to the connection named by alias. On failure the instance keeps its
// previous state.
func (s *Spider) Configure(cfg config.Tree, alias string) (err error) {
	timer := metrics.NewTimer("configure")
	defer func() {
		d := timer.ObserveConfigure(err)
		if err != nil {
			s.logger.Debug("configuration failed", zap.Duration("duration", d), zap.Error(err))
		}
	}()

	supplied, key := canonicalIntegrations(cfg)
	effective := config.Merge(supplied, s.opts.template.Tree())

	manifest, ok := config.AsMap(effective[config.KeyConnections])
	if !ok {
		return errors.New(errors.ErrorTypeConnectionNotFound,
			"configuration has no connections manifest")
	}

	connections := connection.NewManager(s.connections.Drivers())
	connections.Reset(manifest)

	name, err := connections.Resolve(alias)
	if err != nil {
		return err
	}
	def, err := connections.Fetch(name)
	if err != nil {
		return err
	}
	conn, err := connection.Open(name, def, connections.Drivers())
	if err != nil {
		return err
	}
	delete(effective, config.KeyConnections)

	general := effective
	policy := config.ParsePolicy(general)
	s.applyLogging(general)

	// Reconfiguring replaces the integrations of the previous configuration.
	if r, ok := s.container.(resetter); ok && s.builder != nil {
		r.Reset()
	}
	if raw, present := general[config.KeyIntegrations]; present {
		if descriptors, ok := config.AsMap(raw); ok {
			s.container.Init(descriptors)
		} else {
			s.logger.Warn("ignoring integrations that are not a mapping",
				zap.String("key", key),
				zap.String("type", fmt.Sprintf("%T", raw)))
			key = ""
		}
		delete(general, config.KeyIntegrations)
	} else {
		key = ""
	}

	if s.builder != nil {
		if cerr := s.builder.Close(context.Background()); cerr != nil {
			s.logger.Warn("failed to close previous connection", zap.Error(cerr))
		}
	}

	s.connections = connections
	s.general = general
	s.policy = policy
	s.integrationsKey = key
	s.builder = query.NewBuilder(conn, policy)

	s.logger.Info("configured",
		zap.String("alias", name),
		zap.String("driver", conn.DriverName()),
		zap.String("connection_id", conn.ID()))
	return nil
}

// canonicalIntegrations returns cfg with integrations supplied under
// `components` moved to `integrations`, and the key the caller used.
// Entries under `integrations` win when both keys are present.
func canonicalIntegrations(cfg config.Tree) (config.Tree, string) {
	components, ok := cfg[config.KeyComponents]
	if !ok {
		return cfg, config.KeyIntegrations
	}

	out := cfg.Clone()
	delete(out, config.KeyComponents)

	existing, hasIntegrations := out[config.KeyIntegrations]
	if !hasIntegrations || existing == nil {
		out[config.KeyIntegrations] = components
		return out, config.KeyComponents
	}

	merged, ok := config.AsMap(existing)
	extra, extraOK := config.AsMap(components)
	if ok && extraOK {
		for name, v := range extra {
			if _, exists := merged[name]; !exists {
				merged[name] = v
			}
		}
	}
	return out, config.KeyIntegrations
}

// resetter is implemented by containers that can drop every descriptor,
// such as *ioc.Manager.
type resetter interface {
	Reset()
}

func (s *Spider) baseLogger() *zap.Logger {
	l := s.opts.logger
	if l == nil {
		l = logger.Get()
	}
	return l.With(zap.String("component", "spider"))
}

// applyLogging rebuilds the instance logger from the `logging` section.
// A section that is absent restores the base logger.
func (s *Spider) applyLogging(general config.Tree) {
	s.logger = s.baseLogger()
	if s.opts.logger != nil {
		return
	}

	switch v := general[config.KeyLogging].(type) {
	case bool:
		if !v {
			s.logger = zap.NewNop()
		}
	default:
		section, ok := config.AsMap(v)
		if !ok {
			return
		}
		l, err := logger.New(logger.FromOptions(section))
		if err != nil {
			s.logger.Warn("ignoring invalid logging section", zap.Error(err))
			return
		}
		s.logger = l.With(zap.String("component", "spider"))
	}
}

// AddConnection inserts or overwrites the definition stored under name. The
// active connection is not affected.
func (s *Spider) AddConnection(name string, definition map[string]interface{}) *Spider {
	s.connections.Add(name, definition)
	return s
}

// Connection builds a new connection from the definition stored under
// alias, or under the manifest default when alias is empty.
func (s *Spider) Connection(alias string) (*connection.Connection, error) {
	return s.connections.Make(alias)
}

// QueryBuilder builds a new query builder over a new connection to alias.
func (s *Spider) QueryBuilder(alias string) (*query.Builder, error) {
	conn, err := s.connections.Make(alias)
	if err != nil {
		return nil, err
	}
	return query.NewBuilder(conn, s.policy), nil
}

// Query returns the query builder bound to the active connection, nil
// while unconfigured.
func (s *Spider) Query() *query.Builder {
	return s.builder
}

// ActiveConnection returns the connection chosen at configuration time,
// nil while unconfigured.
func (s *Spider) ActiveConnection() *connection.Connection {
	if s.builder == nil {
		return nil
	}
	return s.builder.Connection()
}

// Driver returns the driver of the active connection, nil while
// unconfigured.
func (s *Spider) Driver() driver.Driver {
	if s.builder == nil {
		return nil
	}
	return s.builder.Driver()
}

// IsConfigured reports whether Configure has succeeded.
func (s *Spider) IsConfigured() bool {
	return s.builder != nil
}

// Config returns the configuration the instance runs with: the general
// options, the integrations manifest under the key it was supplied with,
// and the connections manifest without hidden aliases.
func (s *Spider) Config() config.Tree {
	out := s.general.Clone()
	if out == nil {
		out = config.Tree{}
	}

	if s.integrationsKey != "" {
		out[s.integrationsKey] = s.container.Manifest()
	}

	manifest := s.connections.All()
	for _, alias := range s.opts.hidden {
		delete(manifest, alias)
	}
	out[config.KeyConnections] = manifest

	return out
}

// Options returns the general options: everything except connections and
// integrations.
func (s *Spider) Options() config.Tree {
	return s.general.Clone()
}

// ErrorPolicy returns the policy read from the `errors` section.
func (s *Spider) ErrorPolicy() errors.Policy {
	return s.policy
}

// Container returns the integration container.
func (s *Spider) Container() ioc.Container {
	return s.container
}

// EventDispatcher returns the integration registered as "events".
func (s *Spider) EventDispatcher() (interface{}, error) {
	return s.container.Fetch(EventsIntegration)
}

// Logger returns the integration registered as "logger".
func (s *Spider) Logger() (interface{}, error) {
	return s.container.Fetch(LoggerIntegration)
}

// Cache returns the integration registered as "cache".
func (s *Spider) Cache() (interface{}, error) {
	return s.container.Fetch(CacheIntegration)
}

// Defaults returns the defaults template the instance merges over.
func (s *Spider) Defaults() config.Tree {
	return s.opts.template.Tree()
}

// Close closes the active connection.
func (s *Spider) Close(ctx context.Context) error {
	if s.builder == nil {
		return nil
	}
	return s.builder.Close(ctx)
}
