package errors

import (
	"strings"

	"go.uber.org/zap"
)

// Level decides what happens when a driver hits a feature it cannot serve.
type Level string

const (
	// LevelFatal returns a not-supported error to the caller.
	LevelFatal Level = "fatal"
	// LevelQuiet logs a warning and carries on.
	LevelQuiet Level = "quiet"
	// LevelSilent ignores the condition.
	LevelSilent Level = "silent"
)

// ParseLevel maps a configuration value onto a Level. ok is false for
// anything outside fatal, quiet and silent.
func ParseLevel(v interface{}) (Level, bool) {
	s, isString := v.(string)
	if !isString {
		return "", false
	}
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case LevelFatal, LevelQuiet, LevelSilent:
		return l, true
	default:
		return "", false
	}
}

// Policy is the opaque error policy read from the `errors` configuration
// section. Spider never applies it to its own errors; it is handed to the
// query layer, which consults it when a backend lacks a feature.
type Policy struct {
	// NotSupported governs unsupported-feature conditions.
	NotSupported Level
	// All is the fallback for every category without its own level.
	All Level
}

// DefaultPolicy is silent for everything.
func DefaultPolicy() Policy {
	return Policy{NotSupported: LevelSilent, All: LevelSilent}
}

// LevelFor returns the effective level for not-supported conditions.
func (p Policy) LevelFor() Level {
	if p.NotSupported != "" {
		return p.NotSupported
	}
	if p.All != "" {
		return p.All
	}
	return LevelSilent
}

// NotSupportedf applies the policy to an unsupported-feature condition.
// A fatal policy returns an ErrorTypeNotSupported error, quiet logs a
// warning to log and returns nil, silent returns nil.
func (p Policy) NotSupportedf(log *zap.Logger, format string, args ...interface{}) error {
	switch p.LevelFor() {
	case LevelFatal:
		return Newf(ErrorTypeNotSupported, format, args...)
	case LevelQuiet:
		if log != nil {
			log.Sugar().Warnf("not supported: "+format, args...)
		}
		return nil
	default:
		return nil
	}
}
