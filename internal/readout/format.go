package readout

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// FormatValue renders a sampled value. Scalars become a single entry, slices
// and arrays are flattened one level and joined with ", ".
func FormatValue(value any) string {
	if value == nil {
		return "null"
	}
	rv := reflect.ValueOf(value)
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = formatScalar(rv.Index(i).Interface())
		}
		return strings.Join(parts, ", ")
	}
	return formatScalar(value)
}

func formatScalar(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case float64:
		if float64(float32(v)) == v {
			return Float32ToString(float32(v))
		}
		return formatNumber(v, 64)
	case float32:
		return Float32ToString(v)
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}

// Float32ToString prints the shortest decimal that reads back as the same
// float32.
func Float32ToString(v float32) string {
	return formatNumber(float64(v), 32)
}

func formatNumber(v float64, bitSize int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	abs := math.Abs(v)
	if v == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(v, 'f', -1, bitSize)
	}
	s := strconv.FormatFloat(v, 'e', -1, bitSize)
	mantissa, exponent, _ := strings.Cut(s, "e")
	sign := exponent[:1]
	digits := strings.TrimLeft(exponent[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}
