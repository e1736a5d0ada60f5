// Package types holds the shared data structures used across the
// application. Keeping them in one place prevents import cycles: the
// codec, storage backends, and HTTP handlers all import types without
// depending on each other.
package types

import "fmt"

// Record is a single person entry persisted by the record store.
//
// Treat it as a value: it is created by the caller before a save and
// rebuilt fresh on every load. Two records are equal when both fields
// match, so == works directly.
//
// Struct tags serve two purposes:
//
//  1. json:"..."     controls the key names in the persisted file.
//     Field order here is the field order on disk.
//
//  2. validate:"..." rules checked by go-playground/validator.
//     "required" rejects an empty name; "min=0" rejects negative ages.
//     Age deliberately has no "required" tag because 0 is a valid age.
type Record struct {
	Name string `json:"name" validate:"required"`
	Age  int    `json:"age"  validate:"min=0"`
}

// String renders the record for people, e.g. "Alice (age 30)".
func (r Record) String() string {
	return fmt.Sprintf("%s (age %d)", r.Name, r.Age)
}
