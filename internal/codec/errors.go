package codec

import (
	"errors"
	"fmt"
)

// DecodeErrorKind says why stored text could not be turned into records.
type DecodeErrorKind int

const (
	// MalformedSyntax: the text is not well-formed JSON.
	MalformedSyntax DecodeErrorKind = iota + 1
	// MissingField: a record lacks "name" or "age" (or "name" is empty).
	MissingField
	// TypeMismatch: a value has the wrong type, e.g. a non-integer or
	// negative age, or the top-level value is not an array of objects.
	TypeMismatch
)

func (k DecodeErrorKind) String() string {
	switch k {
	case MalformedSyntax:
		return "malformed syntax"
	case MissingField:
		return "missing field"
	case TypeMismatch:
		return "type mismatch"
	}
	return fmt.Sprintf("DecodeErrorKind(%d)", int(k))
}

// Sentinels for errors.Is. Matching is by Kind only, so
//
//	errors.Is(err, codec.ErrMissingField)
//
// is true for any *DecodeError with Kind == MissingField, wrapped or not.
var (
	ErrMalformedSyntax = &DecodeError{Kind: MalformedSyntax, Index: -1}
	ErrMissingField    = &DecodeError{Kind: MissingField, Index: -1}
	ErrTypeMismatch    = &DecodeError{Kind: TypeMismatch, Index: -1}
)

// DecodeError is returned by Decode. Index is the position of the
// offending record, or -1 when the failure is not tied to one record.
type DecodeError struct {
	Kind  DecodeErrorKind
	Index int
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	msg := "decode: " + e.Kind.String()
	if e.Index >= 0 {
		msg += fmt.Sprintf(": record %d", e.Index)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(": field %q", e.Field)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *DecodeError of the same Kind.
func (e *DecodeError) Is(target error) bool {
	var t *DecodeError
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// ValidationError is returned by Validate and Encode when a record
// breaks one of the rules declared on types.Record.
type ValidationError struct {
	Index int    // position of the record in the input slice
	Field string // json name of the field, e.g. "age"
	Tag   string // the validator tag that failed, e.g. "min"
	Value any
}

func (e *ValidationError) Error() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("record %d: field %s is required", e.Index, e.Field)
	case "min":
		return fmt.Sprintf("record %d: field %s must not be negative, got %v", e.Index, e.Field, e.Value)
	}
	return fmt.Sprintf("record %d: field %s is invalid", e.Index, e.Field)
}
