// Package fields provides the built-in Field implementations consumed by the
// kumi mapping core: a Field couples a name, a wire/domain Type, and the
// source/default/required knobs the core reads during a pass.
package fields

import (
	kumi "github.com/hferry/kumi"
	"github.com/hferry/kumi/i18n"
)

// Type is one value type: validation plus two-directional coercion. Validate
// signals failure with *kumi.ValidationError; any other error is treated by
// the core as a defect in the type.
type Type interface {
	Validate(v any) error
	MarshalValue(v any) (any, error)
	SerializeValue(v any) (any, error)
}

// Field is the built-in kumi.Field implementation.
type Field struct {
	name     string
	source   string
	def      any
	required bool
	typ      Type
}

var _ kumi.Field = (*Field)(nil)

// Option configures a Field at construction time.
type Option func(*Field)

// Source sets the external-facing key or dotted path. It defaults to the
// field name.
func Source(s string) Option { return func(f *Field) { f.source = s } }

// Default sets the value substituted when the resolved value is empty.
func Default(v any) Option { return func(f *Field) { f.def = v } }

// Optional marks the field as not required: an absent value skips its
// validation and coercion entirely.
func Optional() Option { return func(f *Field) { f.required = false } }

// New builds a required Field named name backed by t.
func New(name string, t Type, opts ...Option) *Field {
	f := &Field{name: name, source: name, required: true, typ: t}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Field) Name() string   { return f.name }
func (f *Field) Source() string { return f.source }
func (f *Field) Default() any   { return f.def }
func (f *Field) Required() bool { return f.required }

func (f *Field) ValidateForMarshal(v any) error   { return f.validate(v) }
func (f *Field) ValidateForSerialize(v any) error { return f.validate(v) }

func (f *Field) validate(v any) error {
	if v == nil {
		if f.required {
			return kumi.Invalid(kumi.CodeRequired, i18n.T(kumi.CodeRequired, nil))
		}
		return nil
	}
	return f.typ.Validate(v)
}

func (f *Field) MarshalValue(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return f.typ.MarshalValue(v)
}

func (f *Field) SerializeValue(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return f.typ.SerializeValue(v)
}
