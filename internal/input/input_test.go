package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePositive(t *testing.T) {
	tests := []struct {
		in   string
		want int
		err  error
	}{
		{"12", 12, nil},
		{" 7\n", 7, nil},
		{"12A", 0, ErrNotANumber},
		{"", 0, ErrNotANumber},
		{"1.5", 0, ErrNotANumber},
		{"0", 0, ErrNotPositive},
		{"-3", 0, ErrNotPositive},
	}
	for _, tc := range tests {
		got, err := ParsePositive(tc.in)
		if tc.err != nil {
			assert.ErrorIs(t, err, tc.err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestNextBirthday(t *testing.T) {
	got, err := NextBirthday("1990-05-17")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1991, time.May, 17, 0, 0, 0, 0, time.UTC), got)

	got, err = NextBirthday("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", got.Format(DateLayout))

	for _, bad := range []string{"17/05/1990", "1990-13-01", "1990-02-30", "yesterday"} {
		_, err := NextBirthday(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestDivide(t *testing.T) {
	got, err := Divide(7, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	got, err = Divide(-7, 2)
	require.NoError(t, err)
	assert.Equal(t, -3, got)

	_, err = Divide(1, 0)
	assert.ErrorIs(t, err, ErrDivideByZero)
}
