package kumi

import (
	"bytes"
	"context"
	"io"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Source abstracts over document inputs. Decode produces the dict-like value
// a pass consumes: map[string]any for single instances, []any for batches.
type Source interface {
	Decode() (any, error)
}

// JSONBytes wraps a JSON document. Numbers decode as json.Number so integer
// fields survive without float round-trips.
func JSONBytes(b []byte) Source { return jsonSource{r: bytes.NewReader(b)} }

// JSONReader wraps a JSON document read from r.
func JSONReader(r io.Reader) Source { return jsonSource{r: r} }

type jsonSource struct {
	r io.Reader
}

func (s jsonSource) Decode() (any, error) {
	dec := j.NewDecoder(s.r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// YAMLBytes wraps a YAML document.
func YAMLBytes(b []byte) Source { return yamlSource{r: bytes.NewReader(b)} }

// YAMLReader wraps a YAML document read from r.
func YAMLReader(r io.Reader) Source { return yamlSource{r: r} }

type yamlSource struct {
	r io.Reader
}

func (s yamlSource) Decode() (any, error) {
	var v any
	if err := yaml.NewDecoder(s.r).Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// sourceError reports a document-level decode failure as invalid input
// rather than a fault: the mapping is fine, the payload is not.
func sourceError(err error) *MappingError {
	return &MappingError{Errors: map[string][]string{
		SourceErrorKey: {err.Error()},
	}}
}

// MarshalFrom decodes one document from src and marshals it. Decode failures
// surface as a *MappingError under SourceErrorKey.
func MarshalFrom(ctx context.Context, m *Mapping, src Source) (map[string]any, error) {
	v, err := src.Decode()
	if err != nil {
		return nil, sourceError(err)
	}
	return Marshal(ctx, m, v)
}

// SerializeFrom decodes one document from src and serializes it.
func SerializeFrom(ctx context.Context, m *Mapping, src Source) (map[string]any, error) {
	v, err := src.Decode()
	if err != nil {
		return nil, sourceError(err)
	}
	return Serialize(ctx, m, v)
}

// MarshalManyFrom decodes a document that must be a sequence and marshals
// each element through an independent pass.
func MarshalManyFrom(ctx context.Context, m *Mapping, src Source, opts ...ManyOpt) ([]map[string]any, error) {
	v, err := src.Decode()
	if err != nil {
		return nil, sourceError(err)
	}
	seq, ok := v.([]any)
	if !ok {
		return nil, &MappingError{Errors: map[string][]string{
			SourceErrorKey: {"document is not a sequence"},
		}}
	}
	return MarshalMany(ctx, m, seq, opts...)
}

// SerializeManyFrom decodes a document that must be a sequence and
// serializes each element through an independent pass.
func SerializeManyFrom(ctx context.Context, m *Mapping, src Source, opts ...ManyOpt) ([]map[string]any, error) {
	v, err := src.Decode()
	if err != nil {
		return nil, sourceError(err)
	}
	seq, ok := v.([]any)
	if !ok {
		return nil, &MappingError{Errors: map[string][]string{
			SourceErrorKey: {"document is not a sequence"},
		}}
	}
	return SerializeMany(ctx, m, seq, opts...)
}

// MarshalJSON shapes the aggregate as {"errors": {...}} for transport.
func (e *MappingError) MarshalJSON() ([]byte, error) {
	return j.Marshal(map[string]any{"errors": e.Errors})
}
