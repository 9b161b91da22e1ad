package config

import (
	spidererrors "github.com/spidergraph/spider/pkg/errors"
)

// ParsePolicy reads the `errors` section. It accepts a mapping with
// `not_supported` and `all` keys, or a single level string applied to all
// categories. Unrecognised levels are ignored.
func ParsePolicy(tree Tree) spidererrors.Policy {
	var p spidererrors.Policy

	raw, ok := tree[KeyErrors]
	if !ok {
		return spidererrors.DefaultPolicy()
	}

	if level, ok := spidererrors.ParseLevel(raw); ok {
		p.All = level
		return p
	}

	section, ok := AsMap(raw)
	if !ok {
		return spidererrors.DefaultPolicy()
	}
	if level, ok := spidererrors.ParseLevel(section["not_supported"]); ok {
		p.NotSupported = level
	}
	if level, ok := spidererrors.ParseLevel(section["all"]); ok {
		p.All = level
	}
	return p
}
