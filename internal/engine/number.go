package engine

import (
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// isNumber reports whether v is one of the dynamic number representations.
func isNumber(v any) bool {
	switch v.(type) {
	case json.Number, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

// toFloat converts a dynamic number to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// formatNumber renders a dynamic number as JSON number text.
func formatNumber(v any) (string, error) {
	switch n := v.(type) {
	case json.Number:
		return string(n), nil
	case int, int8, int16, int32, int64:
		return fmt.Sprint(n), nil
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(n), nil
	}
	f, _ := toFloat(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("unsupported number %v", f)
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}

// NumbersEqual compares two dynamic numbers by value.
func NumbersEqual(a, b any) bool {
	if x, ok := a.(json.Number); ok {
		if y, ok := b.(json.Number); ok && x == y {
			return true
		}
	}
	fa, ok1 := toFloat(a)
	fb, ok2 := toFloat(b)
	return ok1 && ok2 && fa == fb
}
