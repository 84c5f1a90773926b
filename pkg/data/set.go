package data

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/theory/jsonpath"
	"github.com/theory/jsonpath/spec"
)

// ParseSetArgs turns "path=value" strings into a standalone mapping. Paths are singular
// JSONPath queries; a leading '.' is shorthand for "$.", and a bare key is taken as a
// top-level name. Values are decoded as JSON when possible, otherwise kept as strings.
func ParseSetArgs(setArgs []string, logger *zerolog.Logger) (map[string]any, error) {
	if len(setArgs) == 0 {
		return nil, nil
	}
	var root any = make(map[string]any)
	if err := applySetArgs(&root, setArgs, logger); err != nil {
		return nil, err
	}
	return root.(map[string]any), nil
}

// applySetArgs writes every "path=value" into root in order. Containers already present
// under a path are kept; only the addressed value is replaced.
func applySetArgs(root *any, setArgs []string, logger *zerolog.Logger) error {
	for _, s := range setArgs {
		pathExpr, value, err := SplitSetString(s)
		if err != nil {
			return err
		}
		parsed, err := jsonpath.Parse(pathExpr)
		if err != nil {
			return fmt.Errorf("invalid --set path in '%s': %w", s, err)
		}
		if parsed.Query().Singular() == nil {
			return fmt.Errorf("invalid --set path in '%s': path must select exactly one node", s)
		}
		if err = setValue(root, parsed.Query().Segments(), value, s); err != nil {
			return err
		}
		logger.Debug().Msgf("set %s to %v", parsed, value)
	}
	return nil
}

// cloneValue deep-copies objects and arrays.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = cloneValue(item)
		}
		return m
	case []any:
		arr := make([]any, len(val))
		for i, item := range val {
			arr[i] = cloneValue(item)
		}
		return arr
	}
	return v
}

// SplitSetString splits "path=value" at the first '='. Everything after it is the value.
func SplitSetString(s string) (path string, value any, err error) {
	pathPart, raw, ok := strings.Cut(s, "=")
	if !ok {
		return "", nil, fmt.Errorf("no '=' found in set string: %s", s)
	}
	path = normalizeSetPath(pathPart)
	if path == "" || path == "$" {
		return "", nil, fmt.Errorf("empty path in set string: %s", s)
	}
	if err = json.Unmarshal([]byte(raw), &value); err != nil {
		value = raw
	}
	return path, value, nil
}

func normalizeSetPath(p string) string {
	p = strings.TrimSpace(p)
	switch {
	case p == "":
		return ""
	case p[0] == '$':
		return p
	case p[0] == '.' || p[0] == '[':
		return "$" + p
	default:
		return "$." + p
	}
}

// setValue writes value at the location named by segments, creating maps and arrays on the
// way. Arrays can only grow by appending at index len.
func setValue(root *any, segments []*spec.Segment, value any, setString string) error {
	current := *root
	writeBack := func(v any) { *root = v }
	for i, segment := range segments {
		selector := segment.Selectors()[0]
		isLast := i == len(segments)-1

		switch sel := selector.(type) {
		case spec.Name:
			key := string(sel)
			m, ok := current.(map[string]any)
			if !ok {
				return fmt.Errorf("cannot apply '%s': expected an object at %v, found %T", setString, selector, current)
			}
			if isLast {
				m[key] = value
				return nil
			}
			next, exists := m[key]
			if !exists || next == nil {
				next = newContainer(segments[i+1].Selectors()[0])
				m[key] = next
			}
			current = next
			writeBack = func(v any) { m[key] = v }

		case spec.Index:
			idx := int(sel)
			arr, ok := current.([]any)
			if !ok {
				return fmt.Errorf("cannot apply '%s': expected an array at %v, found %T", setString, selector, current)
			}
			if idx < 0 || idx > len(arr) {
				return fmt.Errorf("cannot apply '%s': array index %d out of bounds", setString, idx)
			}
			if idx == len(arr) {
				arr = append(arr, nil)
				writeBack(arr)
			}
			if isLast {
				arr[idx] = value
				return nil
			}
			next := arr[idx]
			if next == nil {
				next = newContainer(segments[i+1].Selectors()[0])
				arr[idx] = next
			}
			current = next
			writeBack = func(v any) { arr[idx] = v }

		default:
			return fmt.Errorf("cannot apply '%s': unsupported path segment %T", setString, sel)
		}
	}
	return nil
}

func newContainer(selector spec.Selector) any {
	if _, isIndex := selector.(spec.Index); isIndex {
		return make([]any, 0)
	}
	return make(map[string]any)
}
