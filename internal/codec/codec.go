// Package codec converts between an ordered list of records and the
// pretty-printed JSON text stored on disk.
//
// The codec never touches the filesystem. Storage backends hand it
// bytes and get records back (or the other way around).
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/pretty"

	"github.com/aanand-mishra/record-store/internal/types"
)

var (
	validate = newValidator()

	prettyOptions = &pretty.Options{
		Width:    80,
		Prefix:   "",
		Indent:   "  ",
		SortKeys: false, // keep the declared field order: name, then age
	}

	nullLiteral = []byte("null")
)

func newValidator() *validator.Validate {
	v := validator.New()
	// report json names ("age") rather than Go field names ("Age")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every record against the rules on types.Record and
// returns a *ValidationError for the first one that fails.
func Validate(records []types.Record) error {
	for i, rec := range records {
		if err := ValidateRecord(rec); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				verr.Index = i
			}
			return err
		}
	}
	return nil
}

// ValidateRecord checks a single record. Index in the returned
// *ValidationError is always 0.
func ValidateRecord(rec types.Record) error {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("codec.ValidateRecord: %w", err)
	}
	fe := fieldErrs[0]
	return &ValidationError{
		Field: fe.Field(),
		Tag:   fe.ActualTag(),
		Value: fe.Value(),
	}
}

// Encode renders records as an indented JSON array. Output is
// deterministic and ends with a newline. A nil or empty slice encodes
// as "[]".
//
// Records that Decode would reject are refused with a *ValidationError
// so a save can never produce a file that fails to load.
func Encode(records []types.Record) ([]byte, error) {
	if err := Validate(records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []types.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("codec.Encode: marshal: %w", err)
	}
	return pretty.PrettyOptions(buf.Bytes(), prettyOptions), nil
}

// Decode parses text produced by Encode (or written by hand) back into
// records. It is all-or-nothing: on any error the returned slice is nil.
//
// Keys are matched exactly ("name", "age"); unknown keys are ignored.
// A key whose value is null counts as missing.
func Decode(data []byte) ([]types.Record, error) {
	if bytes.Equal(bytes.TrimSpace(data), nullLiteral) {
		return nil, &DecodeError{
			Kind:  TypeMismatch,
			Index: -1,
			Err:   errors.New("top-level value is null, want an array"),
		}
	}

	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, classify(err)
	}

	records := make([]types.Record, 0, len(raw))
	for i, fields := range raw {
		rec, err := decodeRecord(i, fields)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// DecodeOne parses a single JSON object into a record, with the same
// rules Decode applies to each array element. Errors carry Index 0.
func DecodeOne(data []byte) (types.Record, error) {
	if bytes.Equal(bytes.TrimSpace(data), nullLiteral) {
		return types.Record{}, &DecodeError{Kind: MissingField, Index: 0, Field: "name"}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return types.Record{}, classify(err)
	}
	return decodeRecord(0, fields)
}

func decodeRecord(i int, fields map[string]json.RawMessage) (types.Record, error) {
	var rec types.Record

	nameRaw, ok := lookup(fields, "name")
	if !ok {
		return types.Record{}, &DecodeError{Kind: MissingField, Index: i, Field: "name"}
	}
	if err := json.Unmarshal(nameRaw, &rec.Name); err != nil {
		return types.Record{}, &DecodeError{Kind: TypeMismatch, Index: i, Field: "name", Err: err}
	}

	ageRaw, ok := lookup(fields, "age")
	if !ok {
		return types.Record{}, &DecodeError{Kind: MissingField, Index: i, Field: "age"}
	}
	// unmarshalling into an int rejects strings, fractions and overflow
	if err := json.Unmarshal(ageRaw, &rec.Age); err != nil {
		return types.Record{}, &DecodeError{Kind: TypeMismatch, Index: i, Field: "age", Err: err}
	}

	if err := CheckRecord(i, rec); err != nil {
		return types.Record{}, err
	}
	return rec, nil
}

// CheckRecord validates a record read back from storage and reports a
// violation as a *DecodeError for position i: an empty name is
// MissingField, a negative age TypeMismatch.
func CheckRecord(i int, rec types.Record) error {
	if err := ValidateRecord(rec); err != nil {
		return fromValidation(i, err)
	}
	return nil
}

func lookup(fields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), nullLiteral) {
		return nil, false
	}
	return raw, true
}

// classify maps an encoding/json error for the whole document.
func classify(err error) *DecodeError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &DecodeError{Kind: TypeMismatch, Index: -1, Err: err}
	}
	return &DecodeError{Kind: MalformedSyntax, Index: -1, Err: err}
}

func fromValidation(i int, err error) *DecodeError {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return &DecodeError{Kind: TypeMismatch, Index: i, Err: err}
	}
	verr.Index = i
	kind := TypeMismatch
	if verr.Tag == "required" {
		kind = MissingField
	}
	return &DecodeError{Kind: kind, Index: i, Field: verr.Field, Err: verr}
}
