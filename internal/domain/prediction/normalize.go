package prediction

import (
	"fmt"
	"math"
)

// InvalidFeatureError reports a declared feature whose payload value is not numeric.
type InvalidFeatureError struct {
	Field string
	Value any
}

func (e *InvalidFeatureError) Error() string {
	return fmt.Sprintf("feature %q must be a finite number, got %T", e.Field, e.Value)
}

// Normalize lays input out in schema order. A declared field missing from
// input becomes 0; keys that are not in the schema are dropped. The result
// always has len(schema) entries, so absent and explicit zero look the same.
func Normalize(schema Schema, input map[string]float64) []float64 {
	vec := make([]float64, len(schema))
	for i, name := range schema {
		if v, ok := input[name]; ok {
			vec[i] = v
		}
	}
	return vec
}

// FeaturesFromPayload extracts the schema's fields from a decoded JSON object.
// Numbers are taken as is and booleans map to 1/0 so one-hot flags may be sent
// either way. Undeclared keys are ignored whatever their type; a declared key
// holding anything else yields an *InvalidFeatureError. A JSON null counts as absent.
func FeaturesFromPayload(schema Schema, payload map[string]any) (map[string]float64, error) {
	out := make(map[string]float64, len(schema))
	for _, name := range schema {
		raw, ok := payload[name]
		if !ok || raw == nil {
			continue
		}
		v, ok := toFloat(raw)
		if !ok {
			return nil, &InvalidFeatureError{Field: name, Value: raw}
		}
		out[name] = v
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case bool:
		if x {
			f = 1
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
