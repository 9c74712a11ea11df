package readout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idursun/layerview/internal/segments"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "null", value: nil, expected: "null"},
		{name: "float32 exact", value: 0.5, expected: "0.5"},
		{name: "float32 rounded", value: float64(float32(0.1)), expected: "0.1"},
		{name: "float64 only", value: 0.1, expected: "0.1"},
		{name: "float64 long", value: 1.0 / 3.0, expected: "0.3333333333333333"},
		{name: "float32 of third", value: float64(float32(1.0 / 3.0)), expected: "0.33333334"},
		{name: "integer", value: 42, expected: "42"},
		{name: "large float", value: 1e30, expected: "1e+30"},
		{name: "tiny float", value: 1.5e-7, expected: "1.5e-7"},
		{name: "string", value: "abc", expected: "abc"},
		{name: "segment id", value: segments.FromUint64(1 << 33), expected: "8589934592"},
		{name: "array", value: []any{1.5, nil, "x"}, expected: "1.5, null, x"},
		{name: "float slice", value: []float64{0.25, 2}, expected: "0.25, 2"},
		{name: "nan", value: math.NaN(), expected: "NaN"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatValue(tc.value))
		})
	}
}
