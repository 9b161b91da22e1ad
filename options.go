package spider

import (
	"go.uber.org/zap"

	"github.com/spidergraph/spider/pkg/config"
	"github.com/spidergraph/spider/pkg/driver"
	"github.com/spidergraph/spider/pkg/ioc"
)

// DefaultHiddenAliases are the connection aliases left out of Config.
var DefaultHiddenAliases = []string{"cache"}

type options struct {
	container ioc.Container
	template  config.Template
	drivers   *driver.Registry
	logger    *zap.Logger
	hidden    []string
}

func defaultOptions() options {
	return options{
		template: config.DefaultTemplate,
		hidden:   DefaultHiddenAliases,
	}
}

// Option configures a Spider instance.
type Option func(*options)

// WithContainer resolves integrations through c instead of a fresh
// ioc.Manager.
func WithContainer(c ioc.Container) Option {
	return func(o *options) {
		o.container = c
	}
}

// WithTemplate merges configurations over t instead of
// config.DefaultTemplate.
func WithTemplate(t config.Template) Option {
	return func(o *options) {
		o.template = t
	}
}

// WithDrivers builds connections from r instead of the global driver
// registry.
func WithDrivers(r *driver.Registry) Option {
	return func(o *options) {
		o.drivers = r
	}
}

// WithLogger sets the instance's own logger. It takes precedence over the
// `logging` configuration section.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithHiddenAliases replaces the connection aliases Config leaves out.
// Passing none hides nothing.
func WithHiddenAliases(aliases ...string) Option {
	return func(o *options) {
		o.hidden = append([]string(nil), aliases...)
	}
}
