package config

import (
	"sort"
)

// Reserved top-level keys.
const (
	KeyConnections  = "connections"
	KeyIntegrations = "integrations"
	KeyComponents   = "components"
	KeyErrors       = "errors"
	KeyLogging      = "logging"
)

// Tree is a nested configuration mapping.
type Tree map[string]interface{}

// AsMap returns v as a plain mapping when it is one. Both Tree and
// map[string]interface{} qualify; nothing else does.
func AsMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case Tree:
		return map[string]interface{}(m), true
	case map[string]interface{}:
		return m, true
	default:
		return nil, false
	}
}

// Clone returns a deep copy of t. Nested mappings and slices are copied;
// leaf values (including functions and service instances) are shared.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	return Tree(cloneMap(t))
}

// Has reports whether key is present with a non-nil value.
func (t Tree) Has(key string) bool {
	v, ok := t[key]
	return ok && v != nil
}

// Sub returns the mapping stored under key.
func (t Tree) Sub(key string) (Tree, bool) {
	m, ok := AsMap(t[key])
	if !ok {
		return nil, false
	}
	return Tree(m), true
}

// Keys returns the top-level keys in sorted order.
func (t Tree) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case Tree:
		return Tree(cloneMap(val))
	case map[string]interface{}:
		return cloneMap(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
