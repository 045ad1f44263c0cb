package kumi

import "context"

// Validator is an optional post-process hook run with the fully-built output
// after every field succeeded. Returning a *MappingError makes it the pass
// result; any other error propagates unwrapped.
type Validator func(ctx context.Context, output map[string]any) error

// Collection stores the fields of a Mapping. The default is insertion-ordered;
// callers may substitute a set-like implementation when order is irrelevant.
type Collection interface {
	Add(f Field)
	// All returns the fields in iteration order. Callers must not mutate the
	// returned slice.
	All() []Field
	Len() int
}

// OrderedFields is the default Collection: a slice preserving insertion order.
type OrderedFields struct {
	fields []Field
}

func (c *OrderedFields) Add(f Field)  { c.fields = append(c.fields, f) }
func (c *OrderedFields) All() []Field { return c.fields }
func (c *OrderedFields) Len() int     { return len(c.fields) }

// FieldSet is a set-like Collection deduplicating by field name. Adding a
// field whose name is already present replaces the earlier one.
type FieldSet struct {
	byName map[string]int
	fields []Field
}

func (c *FieldSet) Add(f Field) {
	if c.byName == nil {
		c.byName = map[string]int{}
	}
	if i, ok := c.byName[f.Name()]; ok {
		c.fields[i] = f
		return
	}
	c.byName[f.Name()] = len(c.fields)
	c.fields = append(c.fields, f)
}

func (c *FieldSet) All() []Field { return c.fields }
func (c *FieldSet) Len() int     { return len(c.fields) }

// Mapping is an immutable-after-build schema: a Collection of Fields plus an
// optional post-process Validator. Build it once, then run any number of
// concurrent passes over it; AddField must not race with a running pass.
type Mapping struct {
	fields    Collection
	validator Validator
}

// Option configures a Mapping at construction time.
type Option func(*Mapping)

// WithCollection substitutes the container backing the mapping's fields.
// Fields passed to New are added to it in argument order.
func WithCollection(c Collection) Option {
	return func(m *Mapping) { m.fields = c }
}

// WithValidator installs a post-process validator.
func WithValidator(v Validator) Option {
	return func(m *Mapping) { m.validator = v }
}

// New builds a Mapping from fields. nil fields are silently dropped, so
// optional schema parts can be expressed as nil-able construction helpers.
func New(fields []Field, opts ...Option) *Mapping {
	m := &Mapping{fields: &OrderedFields{}}
	for _, opt := range opts {
		opt(m)
	}
	for _, f := range fields {
		if f == nil {
			continue
		}
		m.fields.Add(f)
	}
	return m
}

// NewMapping builds a Mapping from a variadic field list. It is the common
// entry point; New exists for callers that already hold a slice.
func NewMapping(fields ...Field) *Mapping { return New(fields) }

// AddField appends a field to the mapping's collection. nil is ignored.
func (m *Mapping) AddField(f Field) {
	if f == nil {
		return
	}
	m.fields.Add(f)
}

// Fields returns the mapping's fields in collection order.
func (m *Mapping) Fields() []Field { return m.fields.All() }

// Len returns the number of fields.
func (m *Mapping) Len() int { return m.fields.Len() }
