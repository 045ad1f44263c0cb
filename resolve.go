package kumi

import (
	"reflect"
	"strings"
)

// Getter lets a data object take over attribute resolution. When implemented,
// it is consulted before any reflective lookup.
type Getter interface {
	Get(key string) (any, bool)
}

// resolveAttr fetches the value for key from data, treating dict-like and
// attribute-like data uniformly. Absence is reported as nil, never as an
// error; required/default handling happens later in the pass.
func resolveAttr(data any, key string) any {
	if key == SelfKey {
		return data
	}
	if g, ok := data.(Getter); ok {
		v, _ := g.Get(key)
		return v
	}
	switch m := data.(type) {
	case map[string]any:
		return m[key]
	case map[string]string:
		if v, ok := m[key]; ok {
			return v
		}
		return nil
	}
	return reflectAttr(data, key)
}

// reflectAttr resolves key against an arbitrary map or struct value.
func reflectAttr(data any, key string) any {
	rv := reflect.ValueOf(data)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		mv := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil
		}
		return mv.Interface()
	case reflect.Struct:
		return structAttr(rv, key)
	}
	return nil
}

func structAttr(rv reflect.Value, key string) any {
	rt := rv.Type()
	fold := -1
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := resolveStructKey(sf)
		if name == "-" {
			continue
		}
		if name == key {
			return rv.Field(i).Interface()
		}
		if fold < 0 && strings.EqualFold(name, key) {
			fold = i
		}
	}
	if fold >= 0 {
		return rv.Field(fold).Interface()
	}
	return nil
}

// resolveStructKey resolves a struct field's external key.
// Priority: kumi:"..." > json tag name > field name; "-" disables the field.
func resolveStructKey(sf reflect.StructField) string {
	if kt := sf.Tag.Get("kumi"); kt != "" {
		if i := strings.IndexByte(kt, ','); i >= 0 {
			return kt[:i]
		}
		return kt
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}
