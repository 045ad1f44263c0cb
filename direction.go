package kumi

import (
	"fmt"
	"strings"
)

// direction is the policy object that fixes, for one mapping direction, which
// side of a field is read, which is written, which key tags its errors, and
// which validate/coerce operations run. The iterator itself is direction-free.
type direction interface {
	inputKey(f Field) string
	errorKey(f Field) string
	validate(f Field, v any) error
	coerce(f Field, v any) (any, error)
	write(out map[string]any, f Field, v any) error
}

// marshalDir converts external (name-keyed) input into internal
// (source-keyed) output, expanding dotted sources into nested maps.
type marshalDir struct{}

func (marshalDir) inputKey(f Field) string { return f.Name() }
func (marshalDir) errorKey(f Field) string { return f.Source() }

func (marshalDir) validate(f Field, v any) error { return f.ValidateForMarshal(v) }

func (marshalDir) coerce(f Field, v any) (any, error) { return f.MarshalValue(v) }

func (marshalDir) write(out map[string]any, f Field, v any) error {
	src := f.Source()
	if src == SelfKey {
		m, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("field %q maps the whole payload but produced %T, want map[string]any", f.Name(), v)
		}
		for k, mv := range m {
			out[k] = mv
		}
		return nil
	}
	if !strings.Contains(src, ".") {
		out[src] = v
		return nil
	}
	segs := strings.Split(src, ".")
	cur := out
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			// Merge non-destructively across fields sharing a prefix; a
			// scalar already present at an intermediate segment loses.
			next = map[string]any{}
			cur[seg] = next
		}
		cur = next
	}
	cur[segs[len(segs)-1]] = v
	return nil
}

// serializeDir converts internal (source-keyed, attribute-style) data into
// external (name-keyed) output. Dotted sources are treated as literal keys on
// input; only marshal expands paths, and only on output.
type serializeDir struct{}

func (serializeDir) inputKey(f Field) string { return f.Source() }
func (serializeDir) errorKey(f Field) string { return f.Name() }

func (serializeDir) validate(f Field, v any) error { return f.ValidateForSerialize(v) }

func (serializeDir) coerce(f Field, v any) (any, error) { return f.SerializeValue(v) }

func (serializeDir) write(out map[string]any, f Field, v any) error {
	out[f.Name()] = v
	return nil
}
