package kumi

import "context"

// Marshal converts external, name-keyed data into its internal shape: each
// field's value is read by Name, validated and coerced for the marshal
// direction, and written under Source (dotted sources expand into nested
// maps). All field failures from one pass are aggregated into a single
// *MappingError keyed by Source.
func Marshal(ctx context.Context, m *Mapping, data any) (map[string]any, error) {
	return runPass(ctx, m, data, marshalDir{}, false)
}

// Serialize converts internal, attribute-style data into its external shape:
// each field's value is read by Source, validated and coerced for the
// serialize direction, and written flat under Name. Failures aggregate into a
// *MappingError keyed by Name.
func Serialize(ctx context.Context, m *Mapping, data any) (map[string]any, error) {
	return runPass(ctx, m, data, serializeDir{}, false)
}

// Validate runs the marshal-direction checks of every field without building
// any output. It returns nil, a *MappingError, or a *MappingFault.
func Validate(ctx context.Context, m *Mapping, data any) error {
	_, err := runPass(ctx, m, data, marshalDir{}, true)
	return err
}

// ValidateSerialize runs the serialize-direction checks without building
// output.
func ValidateSerialize(ctx context.Context, m *Mapping, data any) error {
	_, err := runPass(ctx, m, data, serializeDir{}, true)
	return err
}

// MarshalMany marshals each element of data through a fully independent pass.
// Processing never stops at a failing instance: the returned slice keeps
// input order with nil at failed slots, and the error, when non-nil, is one
// *BatchError carrying a per-instance *MappingError (nil for successes).
func MarshalMany(ctx context.Context, m *Mapping, data []any, opts ...ManyOpt) ([]map[string]any, error) {
	return runMany(ctx, m, data, marshalDir{}, false, opts...)
}

// SerializeMany is the serialize-direction counterpart of MarshalMany.
func SerializeMany(ctx context.Context, m *Mapping, data []any, opts ...ManyOpt) ([]map[string]any, error) {
	return runMany(ctx, m, data, serializeDir{}, false, opts...)
}

// ValidateMany runs the marshal-direction checks of each element of data
// independently, reporting failures through one *BatchError.
func ValidateMany(ctx context.Context, m *Mapping, data []any, opts ...ManyOpt) error {
	_, err := runMany(ctx, m, data, marshalDir{}, true, opts...)
	return err
}

// ValidateSerializeMany is the serialize-direction counterpart of
// ValidateMany.
func ValidateSerializeMany(ctx context.Context, m *Mapping, data []any, opts ...ManyOpt) error {
	_, err := runMany(ctx, m, data, serializeDir{}, true, opts...)
	return err
}
