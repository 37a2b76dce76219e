package mapsafe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Get retrieves a typed value from a map[string]any.
// If the key is missing or the type cannot be converted, it returns the default value.
func Get[T any](m map[string]any, key string, defaultValue T) T {
	if val, ok := m[key]; ok {
		switch any(defaultValue).(type) {
		case int:
			switch x := val.(type) {
			case int:
				return any(x).(T)
			case float64:
				return any(int(x)).(T)
			}
		case float64:
			switch x := val.(type) {
			case float64:
				return any(x).(T)
			case int:
				return any(float64(x)).(T)
			}
		case string:
			switch x := val.(type) {
			case string:
				return any(x).(T)
			case nil:
			default:
				// Scalars of another YAML type are kept as their text form.
				return any(fmt.Sprint(x)).(T)
			}
		case bool:
			if b, ok := val.(bool); ok {
				return any(b).(T)
			}
		default:
			// fallback: if type matches exactly
			if v2, ok := val.(T); ok {
				return v2
			}
		}
	}
	return defaultValue
}

// Map returns the nested mapping found by following keys from m.
// It returns false when any step is missing or is not a mapping.
func Map(m map[string]any, keys ...string) (map[string]any, bool) {
	current := m
	for _, key := range keys {
		next, ok := AsMap(current[key])
		if !ok {
			return nil, false
		}
		current = next
	}

	return current, current != nil
}

// AsMap converts a decoded YAML mapping into a map[string]any.
// Non-string keys are formatted with fmt.Sprint.
func AsMap(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case map[string]any:
		return x, true
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// Normalize walks a decoded YAML value and rewrites every mapping into a
// map[string]any so the result is safe to encode as JSON.
func Normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = Normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[fmt.Sprint(k)] = Normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = Normalize(val)
		}
		return out
	default:
		return v
	}
}

// JSONValue converts a normalised YAML document into the value types a JSON
// schema validator understands. Numbers become json.Number. NaN and
// infinities, which JSON cannot carry, become the strings "NaN", "+Inf"
// and "-Inf".
func JSONValue(doc any) (any, error) {
	data, err := json.Marshal(finite(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	return v, nil
}

// finite returns a copy of v with non-finite floats replaced by their text form.
func finite(v any) any {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return strconv.FormatFloat(x, 'g', -1, 64)
		}
		return x
	case float32:
		return finite(float64(x))
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = finite(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = finite(val)
		}
		return out
	default:
		return v
	}
}
