// Package ioc resolves named integrations (event dispatchers, loggers,
// caches) from descriptors.
//
// A descriptor is stored as registered and materialised on the first Fetch
// of its name; the result is memoized for the life of the Manager. There
// are four kinds of descriptor, and each must be tagged when it is
// registered:
//
//	ioc.Type("events.emitter")      // constructor from the type registry
//	ioc.Func(func() (any, error))   // factory called with no arguments
//	ioc.Instance(v)                 // returned as is
//	ioc.Delegate(container)         // container adopted for every lookup
//
// Configuration trees usually carry plain values. Tag maps a string to a
// Type descriptor and any other untagged value to an Instance; functions
// and containers must be wrapped explicitly.
package ioc

// Kind tags a descriptor.
type Kind int

const (
	// KindType names a constructor in the type registry.
	KindType Kind = iota + 1
	// KindFactory is a function called with no arguments.
	KindFactory
	// KindInstance is a ready value.
	KindInstance
	// KindContainer is an alternate container taking over resolution.
	KindContainer
)

// String returns the kind's label, as used in metrics.
func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindFactory:
		return "factory"
	case KindInstance:
		return "instance"
	case KindContainer:
		return "container"
	default:
		return "unknown"
	}
}

// FactoryFunc produces an integration instance.
type FactoryFunc func() (interface{}, error)

// Descriptor is the stored, unresolved form of an integration.
type Descriptor struct {
	kind      Kind
	typeName  string
	factory   FactoryFunc
	instance  interface{}
	container Container
}

// Type describes an integration built by the constructor registered under
// id.
func Type(id string) Descriptor {
	return Descriptor{kind: KindType, typeName: id}
}

// Func describes an integration produced by calling fn.
func Func(fn FactoryFunc) Descriptor {
	return Descriptor{kind: KindFactory, factory: fn}
}

// Instance describes a ready integration value.
func Instance(v interface{}) Descriptor {
	return Descriptor{kind: KindInstance, instance: v}
}

// Delegate describes a container that replaces the owning manager's own
// resolution once the descriptor is first fetched.
func Delegate(c Container) Descriptor {
	return Descriptor{kind: KindContainer, container: c}
}

// Tag turns a configuration value into a descriptor. Descriptors pass
// through, strings become Type descriptors and everything else becomes an
// Instance.
func Tag(v interface{}) Descriptor {
	switch val := v.(type) {
	case Descriptor:
		return val
	case *Descriptor:
		if val != nil {
			return *val
		}
		return Instance(nil)
	case string:
		return Type(val)
	default:
		return Instance(v)
	}
}

// Kind returns the descriptor's tag.
func (d Descriptor) Kind() Kind { return d.kind }

// TypeName returns the type identifier of a KindType descriptor.
func (d Descriptor) TypeName() string { return d.typeName }
