// Package middleware provides transport-agnostic helpers for wiring kumi
// passes into HTTP (or similar) boundaries: a stable error payload shape and
// typed context plumbing for the marshaled output.
package middleware

import (
	"context"

	kumi "github.com/hferry/kumi"
)

// ctxKeyOutput is a typed context key for storing a pass result.
type ctxKeyOutput struct{}

// ContextWithOutput attaches a marshaled output to the context.
func ContextWithOutput(ctx context.Context, out map[string]any) context.Context {
	return context.WithValue(ctx, ctxKeyOutput{}, out)
}

// OutputFromContext retrieves a marshaled output from context.
func OutputFromContext(ctx context.Context) (map[string]any, bool) {
	v, ok := ctx.Value(ctxKeyOutput{}).(map[string]any)
	return v, ok
}

// ErrorPayload shapes a MappingError for JSON responses.
func ErrorPayload(err *kumi.MappingError) map[string]any {
	if err == nil {
		return map[string]any{"errors": map[string][]string{}}
	}
	return map[string]any{"errors": err.Errors}
}

// BatchErrorPayload shapes a BatchError for JSON responses: one entry per
// instance, empty maps for successes (mirroring per-instance independence).
func BatchErrorPayload(err *kumi.BatchError) []map[string]any {
	if err == nil {
		return nil
	}
	out := make([]map[string]any, len(err.Instances))
	for i, me := range err.Instances {
		out[i] = ErrorPayload(me)
	}
	return out
}
