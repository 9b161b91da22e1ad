package spider

import (
	"fmt"
	"sync"

	"github.com/spidergraph/spider/pkg/config"
	"github.com/spidergraph/spider/pkg/errors"
)

var (
	setupMu   sync.RWMutex
	setupCfg  config.Tree
	setupOpts []Option
)

// Setup stores cfg and opts as the process-wide configuration used by Make.
// It replaces any previous setup. cfg is copied.
func Setup(cfg config.Tree, opts ...Option) {
	setupMu.Lock()
	defer setupMu.Unlock()

	setupCfg = cfg.Clone()
	setupOpts = append([]Option(nil), opts...)
}

// GetSetup returns a copy of the configuration stored by Setup.
func GetSetup() config.Tree {
	setupMu.RLock()
	defer setupMu.RUnlock()

	if setupCfg == nil {
		return config.Tree{}
	}
	return setupCfg.Clone()
}

// ResetSetup clears the process-wide configuration.
func ResetSetup() {
	setupMu.Lock()
	defer setupMu.Unlock()

	setupCfg = nil
	setupOpts = nil
}

// Make builds a Spider from the process-wide configuration, bound to the
// connection named by alias or to the manifest default when alias is
// empty. Without a prior Setup it fails like configuring an empty
// configuration.
func Make(alias string) (*Spider, error) {
	setupMu.RLock()
	cfg := setupCfg.Clone()
	opts := append([]Option(nil), setupOpts...)
	setupMu.RUnlock()

	s, err := New(nil, "", opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Configure(cfg, alias); err != nil {
		return nil, err
	}
	return s, nil
}

// MakeFromValue is Make for untyped aliases, as read from a decoded
// document. alias must be nil or a string; anything else fails with an
// ErrorTypeInvalidArgument error before any configuration is read.
func MakeFromValue(alias interface{}) (*Spider, error) {
	switch v := alias.(type) {
	case nil:
		return Make("")
	case string:
		return Make(v)
	default:
		return nil, errors.New(errors.ErrorTypeInvalidArgument,
			fmt.Sprintf("make only accepts a connection alias, got %T", alias))
	}
}

// Defaults returns the default template every configuration is merged
// over unless WithTemplate says otherwise.
func Defaults() config.Tree {
	return config.DefaultTemplate.Tree()
}
