package driver

import (
	"strconv"
)

// String returns definition[key] as a string, or fallback when it is
// missing or not a string.
func String(definition map[string]interface{}, key, fallback string) string {
	if v, ok := definition[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// Int returns definition[key] as an int. Decoders hand numbers over as
// int, int64 or float64, and environment substitution leaves strings.
func Int(definition map[string]interface{}, key string, fallback int) int {
	switch v := definition[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
