package kumi

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType = "invalid_type"
	CodeRequired    = "required"
	CodeParseError  = "parse_error"
)

// SourceErrorKey is the key under which document-level decode failures are
// reported in a MappingError (there is no field to attribute them to).
const SourceErrorKey = "__source__"

// ValidationError is the one error kind a Field may return to signal that a
// value failed validation or coercion. Anything else a Field returns is
// treated as an unexpected fault and surfaced as a MappingFault.
type ValidationError struct {
	Code    string // One of the codes listed above, or a field-defined code.
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalid builds a ValidationError with the given code and message.
func Invalid(code, msg string) *ValidationError {
	return &ValidationError{Code: code, Message: msg}
}

// Invalidf builds a ValidationError with a formatted message.
func Invalidf(code, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsValidationError extracts a ValidationError using errors.As internally.
func AsValidationError(err error) (*ValidationError, bool) {
	if err == nil {
		return nil, false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// MappingError aggregates every field failure from one pass. Keys are field
// sources when marshaling and field names when serializing; a key accumulates
// one message per failure, in field order.
type MappingError struct {
	Errors map[string][]string
}

// Error summarizes the first few failing keys.
func (e *MappingError) Error() string {
	if e == nil || len(e.Errors) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	const maxShown = 3
	b := &strings.Builder{}
	lim := len(keys)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		k := keys[i]
		fmt.Fprintf(b, "%s: %s", k, e.Errors[k][0])
	}
	if n := len(keys); n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// add appends a message under key, initializing the map when needed.
func (e *MappingError) add(key, msg string) {
	if e.Errors == nil {
		e.Errors = map[string][]string{}
	}
	e.Errors[key] = append(e.Errors[key], msg)
}

// AsMappingError extracts a MappingError using errors.As internally. It
// returns false for faults and batch errors, so callers can distinguish
// "your data was invalid" from everything else.
func AsMappingError(err error) (*MappingError, bool) {
	if err == nil {
		return nil, false
	}
	var me *MappingError
	if errors.As(err, &me) {
		return me, true
	}
	return nil, false
}

// BatchError reports the outcome of a many-mode run. Instances has one slot
// per input element, in input order; successful instances hold nil.
type BatchError struct {
	Instances []*MappingError
}

func (e *BatchError) Error() string {
	n := 0
	first := -1
	for i, me := range e.Instances {
		if me != nil {
			n++
			if first < 0 {
				first = i
			}
		}
	}
	return fmt.Sprintf("%d of %d instances failed (first at index %d)", n, len(e.Instances), first)
}

// AsBatchError extracts a BatchError using errors.As internally.
func AsBatchError(err error) (*BatchError, bool) {
	if err == nil {
		return nil, false
	}
	var be *BatchError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// MappingFault wraps an unexpected error raised by field logic (a defect in a
// custom type, not invalid input). It is never produced for ValidationError.
type MappingFault struct {
	Key string // Error key of the field being processed when the fault occurred.
	Err error
}

func (e *MappingFault) Error() string {
	return fmt.Sprintf("kumi: fault while processing %q: %v", e.Key, e.Err)
}

func (e *MappingFault) Unwrap() error { return e.Err }
