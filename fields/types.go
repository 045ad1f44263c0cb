package fields

import (
	"encoding/json"
	"math"

	kumi "github.com/hferry/kumi"
	"github.com/hferry/kumi/i18n"
)

func invalidType() error {
	return kumi.Invalid(kumi.CodeInvalidType, i18n.T(kumi.CodeInvalidType, nil))
}

// String accepts string values and passes them through unchanged.
type String struct{}

func (String) Validate(v any) error {
	if _, ok := v.(string); !ok {
		return invalidType()
	}
	return nil
}

func (String) MarshalValue(v any) (any, error)   { return v, nil }
func (String) SerializeValue(v any) (any, error) { return v, nil }

// Integer accepts integral values (Go integers, integral floats, and
// json.Number) and normalizes them to int64 in both directions.
type Integer struct{}

func (Integer) Validate(v any) error {
	if _, ok := asInt64(v); !ok {
		return invalidType()
	}
	return nil
}

func (Integer) MarshalValue(v any) (any, error)   { return coerceInt64(v) }
func (Integer) SerializeValue(v any) (any, error) { return coerceInt64(v) }

func coerceInt64(v any) (any, error) {
	n, ok := asInt64(v)
	if !ok {
		return nil, invalidType()
	}
	return n, nil
}

func asInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		if t > math.MaxInt64 {
			return 0, false
		}
		return int64(t), true
	case float32:
		return floatToInt64(float64(t))
	case float64:
		return floatToInt64(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		return 0, false
	}
	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return int64(f), true
}

// Float accepts numeric values and normalizes them to float64.
type Float struct{}

func (Float) Validate(v any) error {
	if _, ok := asFloat64(v); !ok {
		return invalidType()
	}
	return nil
}

func (Float) MarshalValue(v any) (any, error)   { return coerceFloat64(v) }
func (Float) SerializeValue(v any) (any, error) { return coerceFloat64(v) }

func coerceFloat64(v any) (any, error) {
	f, ok := asFloat64(v)
	if !ok {
		return nil, invalidType()
	}
	return f, nil
}

func asFloat64(v any) (float64, bool) {
	switch t := v.(type) {
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f, true
		}
		return 0, false
	}
	if n, ok := asInt64(v); ok {
		return float64(n), true
	}
	return 0, false
}

// Bool accepts bool values.
type Bool struct{}

func (Bool) Validate(v any) error {
	if _, ok := v.(bool); !ok {
		return invalidType()
	}
	return nil
}

func (Bool) MarshalValue(v any) (any, error)   { return v, nil }
func (Bool) SerializeValue(v any) (any, error) { return v, nil }

// Raw passes any value through untouched. Useful with Source(kumi.SelfKey)
// to splice a sub-document into the output.
type Raw struct{}

func (Raw) Validate(v any) error              { return nil }
func (Raw) MarshalValue(v any) (any, error)   { return v, nil }
func (Raw) SerializeValue(v any) (any, error) { return v, nil }
