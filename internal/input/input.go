// Package input parses user-supplied text into values, reporting bad
// input with sentinel errors the caller can match and re-prompt on.
package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the accepted date format, YYYY-MM-DD.
const DateLayout = "2006-01-02"

var (
	ErrNotANumber   = errors.New("not a valid number")
	ErrNotPositive  = errors.New("number must be greater than zero")
	ErrInvalidDate  = errors.New("date must be in YYYY-MM-DD format")
	ErrDivideByZero = errors.New("divisor must not be zero")
)

// ParsePositive parses s as a base-10 integer greater than zero.
// Surrounding whitespace is ignored.
func ParsePositive(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrNotANumber)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%d: %w", n, ErrNotPositive)
	}
	return n, nil
}

// NextBirthday parses a birth date and returns the same date one year
// later. A 29 February birth date rolls over to 1 March.
func NextBirthday(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", s, ErrInvalidDate)
	}
	return d.AddDate(1, 0, 0), nil
}

// Divide returns a / b truncated toward zero.
func Divide(a, b int) (int, error) {
	if b == 0 {
		return 0, fmt.Errorf("%d / %d: %w", a, b, ErrDivideByZero)
	}
	return a / b, nil
}
