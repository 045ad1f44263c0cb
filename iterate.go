package kumi

import (
	"context"
	"reflect"
	"sync"
)

// runPass executes one traversal of m's fields over a single data instance.
// Field failures are collected, never raised mid-pass: every field is
// attempted even when earlier ones failed. discard runs validate-only.
func runPass(ctx context.Context, m *Mapping, data any, dir direction, discard bool) (map[string]any, error) {
	out := map[string]any{}
	me := &MappingError{}
	for _, f := range m.Fields() {
		key := dir.errorKey(f)
		raw := resolveAttr(data, dir.inputKey(f))
		if raw == nil && !f.Required() {
			// Absent optional value: the field's validate/coerce hooks must
			// not run. The default, if any, passes through uncoerced.
			if discard {
				continue
			}
			d := f.Default()
			if d == nil && f.Source() == SelfKey {
				continue
			}
			if err := dir.write(out, f, d); err != nil {
				return nil, &MappingFault{Key: key, Err: err}
			}
			continue
		}
		if err := dir.validate(f, raw); err != nil {
			ve, ok := AsValidationError(err)
			if !ok {
				return nil, &MappingFault{Key: key, Err: err}
			}
			me.add(key, ve.Message)
			continue
		}
		if isEmpty(raw) {
			raw = f.Default()
		}
		v, err := dir.coerce(f, raw)
		if err != nil {
			ve, ok := AsValidationError(err)
			if !ok {
				return nil, &MappingFault{Key: key, Err: err}
			}
			me.add(key, ve.Message)
			continue
		}
		if discard {
			continue
		}
		if err := dir.write(out, f, v); err != nil {
			return nil, &MappingFault{Key: key, Err: err}
		}
	}
	if len(me.Errors) > 0 {
		return nil, me
	}
	if m.validator != nil && !discard {
		// Runs only on a clean, output-building pass: validate-only never
		// materializes the output the validator would inspect. A
		// *MappingError it returns becomes the pass result; anything else
		// propagates unwrapped.
		if err := m.validator(ctx, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// isEmpty reports whether a resolved value should trigger default
// substitution. Numeric zero is deliberately not empty.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		return rv.Len() == 0
	}
	return false
}

// ManyOpt configures a many-mode run.
type ManyOpt func(*manyOptions)

type manyOptions struct {
	parallelism int
}

// WithParallelism lets a many-mode run process up to n instances
// concurrently. Instances are fully independent, so this is safe; result
// order always matches input order. n < 2 keeps the run sequential.
func WithParallelism(n int) ManyOpt {
	return func(o *manyOptions) { o.parallelism = n }
}

// runMany fans out to one independent pass per instance. It never
// short-circuits: every instance is processed, and failures are reported
// per instance through a single *BatchError. A MappingFault aborts the whole
// batch since it signals a defect in the mapping, not in the data.
func runMany(ctx context.Context, m *Mapping, data []any, dir direction, discard bool, opts ...ManyOpt) ([]map[string]any, error) {
	var o manyOptions
	for _, opt := range opts {
		opt(&o)
	}

	outs := make([]map[string]any, len(data))
	errs := make([]error, len(data))
	if o.parallelism > 1 && len(data) > 1 {
		sem := make(chan struct{}, o.parallelism)
		var wg sync.WaitGroup
		for i := range data {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer wg.Done()
				defer func() { <-sem }()
				outs[i], errs[i] = runPass(ctx, m, data[i], dir, discard)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range data {
			outs[i], errs[i] = runPass(ctx, m, data[i], dir, discard)
		}
	}

	be := &BatchError{Instances: make([]*MappingError, len(data))}
	failed := false
	for i, err := range errs {
		if err == nil {
			continue
		}
		me, ok := AsMappingError(err)
		if !ok {
			return nil, err
		}
		be.Instances[i] = me
		outs[i] = nil
		failed = true
	}
	if failed {
		return outs, be
	}
	return outs, nil
}
