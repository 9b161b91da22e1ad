// Package config provides the configuration tree used by Spider and the
// rules that turn a caller's tree into the effective configuration of one
// Spider instance.
//
// # Configuration tree
//
// A Tree is a plain nested mapping. The keys Spider understands are:
//
//	connections:            # required to configure an instance
//	  default: orient       # alias used when none is requested
//	  orient:
//	    driver: orientdb
//	    hostname: localhost
//	    port: 2424
//	  neo:
//	    driver: neo4j
//	    uri: bolt://localhost:7687
//	integrations:           # or "components"
//	  events: events.emitter
//	  logger: logs.zap
//	errors:
//	  not_supported: silent # fatal | quiet | silent
//	logging: false          # or a mapping handed to the logger
//
// Any other key is carried through untouched as general configuration.
//
// # Defaults and merging
//
// Defaults come from a versioned Template whose shape is selected by
// capability flags. Merge lays a supplied tree over the template's tree
// one level deep: missing top-level keys are copied in, and for mapping
// defaults the missing sub-keys are copied in. Values supplied by the
// caller always win, at every depth.
//
// # Loading
//
// Load reads YAML, JSON or TOML, keeping keys exactly as written,
// substitutes ${VAR} references in string values, and returns a Tree. Save writes a Tree back
// out as YAML.
package config
