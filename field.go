package kumi

// SelfKey is the sentinel source that maps a field to the whole payload
// instead of a single attribute. Resolving it returns the data unchanged;
// marshaling a field whose Source is SelfKey shallow-merges the field's value
// (which must be a map) into the top level of the output.
const SelfKey = "__self__"

// Field is the capability set the mapping core consumes. Concrete field
// implementations live outside the core (see the fields package for the
// built-in ones); any type satisfying this interface may be mapped.
//
// Validation failures must be signaled by returning a *ValidationError
// (directly or wrapped); any other error is treated as a fault in the field
// implementation and aborts the pass.
type Field interface {
	// Name is the internal-facing key: marshal reads it, serialize writes it.
	Name() string
	// Source is the external-facing key or dotted path: marshal writes it,
	// serialize reads it. Implementations default Source to Name.
	Source() string
	// Default is substituted when the resolved value is empty. nil means no
	// default.
	Default() any
	// Required reports whether an absent value is a validation failure. When
	// false, an absent value skips validation and coercion entirely.
	Required() bool

	ValidateForMarshal(v any) error
	ValidateForSerialize(v any) error

	// MarshalValue coerces an external value into its internal representation.
	MarshalValue(v any) (any, error)
	// SerializeValue coerces an internal value into its external representation.
	SerializeValue(v any) (any, error)
}
