package data

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Lookup walks a dotted key path through nested mappings. Array elements are addressed
// by decimal index ("list.0.name"). found is false when any segment is missing or a
// non-container value is reached before the path ends; a value that exists but is falsy
// is still found.
func (t *Table) Lookup(key string) (value any, found bool) {
	var current any = t.values
	for _, segment := range strings.Split(key, ".") {
		switch c := current.(type) {
		case map[string]any:
			current, found = c[segment]
		case []any:
			idx, err := strconv.Atoi(segment)
			found = err == nil && idx >= 0 && idx < len(c)
			if found {
				current = c[idx]
			}
		default:
			found = false
		}
		if !found {
			return nil, false
		}
	}
	return current, true
}

// Truthy reports whether v counts as a usable replacement value. nil, false, zero numbers,
// NaN and the empty string are falsy. Empty objects and arrays are truthy.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return val.String() != ""
		}
		return f != 0 && !math.IsNaN(f)
	case float64:
		return val != 0 && !math.IsNaN(val)
	case float32:
		return val != 0 && !math.IsNaN(float64(val))
	case int:
		return val != 0
	case int64:
		return val != 0
	case int32:
		return val != 0
	case uint64:
		return val != 0
	case uint32:
		return val != 0
	case uint:
		return val != 0
	}
	return true
}
