package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads a configuration file. The format follows the file extension
// (yaml, yml, json, toml). Keys are kept exactly as written, so aliases
// may use any case and contain dots. ${VAR} references in string values
// are replaced with environment variables.
func Load(filePath string) (Tree, error) {
	data, err := os.ReadFile(filePath) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	format := strings.TrimPrefix(filepath.Ext(filePath), ".")
	if format == "" {
		format = "yaml"
	}
	return Parse(data, format)
}

// Parse reads configuration from data in the given format.
func Parse(data []byte, format string) (Tree, error) {
	raw := make(map[string]interface{})

	var err error
	switch strings.ToLower(format) {
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &raw)
	case "json":
		err = gojson.Unmarshal(data, &raw)
	case "toml":
		err = toml.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s config: %w", format, err)
	}

	return Normalize(raw), nil
}

// Save writes a configuration to a YAML file. The tree must only hold
// plain values; service instances and factories cannot be serialised.
func Save(filePath string, tree Tree) error {
	data, err := tree.YAML()
	if err != nil {
		return err
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// YAML renders the tree as YAML.
func (t Tree) YAML() ([]byte, error) {
	data, err := yaml.Marshal(map[string]interface{}(t))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return data, nil
}

// JSON renders the tree as indented JSON.
func (t Tree) JSON() ([]byte, error) {
	return gojson.MarshalIndent(map[string]interface{}(t), "", "  ")
}

// Normalize converts decoder output into a Tree: nested maps become
// map[string]interface{} and ${VAR} references in strings are expanded.
func Normalize(m map[string]interface{}) Tree {
	out := make(Tree, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return map[string]interface{}(Normalize(val))
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, item := range val {
			m[fmt.Sprint(k)] = normalizeValue(item)
		}
		return m
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	case string:
		return substituteEnvVars(val)
	default:
		return v
	}
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
func substituteEnvVars(content string) string {
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := content[start+2 : end]
		envValue := os.Getenv(varName)
		content = content[:start] + envValue + content[end+1:]
	}
	return content
}
