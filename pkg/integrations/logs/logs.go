// Package logs provides the logger integration, registered under the type
// identifier "logs.zap".
package logs

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spidergraph/spider/pkg/config"
	"github.com/spidergraph/spider/pkg/ioc"
	"github.com/spidergraph/spider/pkg/logger"
)

// TypeName is the identifier the logger registers under.
const TypeName = config.LoggerType

// Logger is the logger handed to integration consumers. It carries both
// the structured and the sugared zap API.
type Logger struct {
	*zap.SugaredLogger
	base *zap.Logger
}

func init() {
	if err := ioc.RegisterType(TypeName, func() (interface{}, error) {
		return Wrap(logger.Get()), nil
	}); err != nil {
		panic(err)
	}
}

// Wrap builds a Logger named "spider" on top of l.
func Wrap(l *zap.Logger) *Logger {
	if l == nil {
		l = zap.NewNop()
	}
	named := l.Named("spider")
	return &Logger{SugaredLogger: named.Sugar(), base: named}
}

// New builds a Logger from cfg.
func New(cfg logger.Config) (*Logger, error) {
	l, err := logger.New(cfg)
	if err != nil {
		return nil, err
	}
	return Wrap(l), nil
}

// FromOptions builds a Logger from the `logging` section of a configuration
// tree.
func FromOptions(opts map[string]interface{}) (*Logger, error) {
	return New(logger.FromOptions(opts))
}

// Zap returns the structured logger.
func (l *Logger) Zap() *zap.Logger {
	return l.base
}

// Enabled reports whether lvl would be written.
func (l *Logger) Enabled(lvl zapcore.Level) bool {
	return l.base.Core().Enabled(lvl)
}
