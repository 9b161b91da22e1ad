package config

// Capability selects optional sections of the defaults template.
type Capability uint8

const (
	// CapIntegrations adds default integrations for events and logging.
	CapIntegrations Capability = 1 << iota
	// CapLogging adds a `logging: false` default.
	CapLogging

	// CapAll enables every optional section.
	CapAll = CapIntegrations | CapLogging
)

// TemplateVersion is the current defaults template version.
const TemplateVersion = 2

// Default integration type identifiers. The integration packages register
// constructors under these names.
const (
	EventsType = "events.emitter"
	LoggerType = "logs.zap"
)

// Template describes the defaults every configuration is merged over.
type Template struct {
	Version      int
	Capabilities Capability
}

// DefaultTemplate is the template used by Spider unless another is given.
var DefaultTemplate = Template{Version: TemplateVersion, Capabilities: CapAll}

// MinimalTemplate only carries the error policy.
var MinimalTemplate = Template{Version: TemplateVersion}

// Has reports whether c is enabled on the template.
func (t Template) Has(c Capability) bool {
	return t.Capabilities&c == c
}

// Tree builds a fresh copy of the defaults. Callers may modify the result.
func (t Template) Tree() Tree {
	tree := Tree{
		KeyErrors: map[string]interface{}{
			"not_supported": "silent",
		},
	}

	if t.Has(CapIntegrations) {
		tree[KeyIntegrations] = map[string]interface{}{
			"events": EventsType,
			"logger": LoggerType,
		}
	}

	if t.Has(CapLogging) {
		tree[KeyLogging] = false
	}

	return tree
}
