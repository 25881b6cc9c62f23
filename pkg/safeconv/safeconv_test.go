package safeconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMustUintToInt(t *testing.T) {
	t.Parallel()

	t.Run("normal_value", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 42, MustUintToInt(42))
	})

	t.Run("max_int", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, MaxInt, MustUintToInt(uint(MaxInt)))
	})

	t.Run("overflow_panics", func(t *testing.T) {
		t.Parallel()

		assert.PanicsWithValue(t, "safeconv: uint to int overflow", func() {
			MustUintToInt(uint(MaxInt) + 1)
		})
	})
}

func TestToInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    any
		expected int
		ok       bool
	}{
		{name: "int", input: int(42), expected: 42, ok: true},
		{name: "int32", input: int32(100), expected: 100, ok: true},
		{name: "int64", input: int64(999), expected: 999, ok: true},
		{name: "float64", input: float64(3.14), expected: 3, ok: true},
		{name: "string_unsupported", input: "42", expected: 0, ok: false},
		{name: "nil_unsupported", input: nil, expected: 0, ok: false},
		{name: "bool_unsupported", input: true, expected: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ToInt(tt.input)
			assert.Equal(t, tt.ok, ok, "ok mismatch")
			assert.Equal(t, tt.expected, got, "value mismatch")
		})
	}
}
