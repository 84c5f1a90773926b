// Package transform replaces %dotted.key% tokens in text content with values from a data table.
package transform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/adam-huganir/varsub/pkg/data"
	"github.com/adam-huganir/varsub/pkg/files"
)

// DefaultPattern matches a percent-delimited key made of word characters, dots,
// underscores and hyphens.
const DefaultPattern = `%([\w._-]+)%`

// Stats counts what happened to the tokens of one file.
type Stats struct {
	Resolved   int
	Unresolved int
}

// Result is the outcome of transforming one file.
type Result struct {
	Output   []byte
	IsBinary bool
	Stats    Stats
}

// Transformer substitutes tokens matched by a compiled pattern. The key is the pattern's
// first capture group.
type Transformer struct {
	pattern *regexp.Regexp
}

// New compiles pattern, or DefaultPattern when it is empty. The pattern needs at least one
// capture group to name the key.
func New(pattern string) (*Transformer, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid variable pattern %q: %w", pattern, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("variable pattern %q has no capture group for the key", pattern)
	}
	return &Transformer{pattern: re}, nil
}

// Pattern returns the source text of the compiled pattern.
func (tr *Transformer) Pattern() string {
	return tr.pattern.String()
}

// Transform classifies raw and either passes it through (binary) or substitutes tokens (text).
func (tr *Transformer) Transform(raw []byte, table *data.Table) Result {
	if files.IsBinary(raw) {
		return Result{Output: raw, IsBinary: true}
	}
	out, stats := tr.Replace(raw, table)
	return Result{Output: out, Stats: stats}
}

// Replace scans content once, left to right, replacing every non-overlapping match. A key
// that is missing or resolves to a falsy value leaves the match as it was.
func (tr *Transformer) Replace(content []byte, table *data.Table) ([]byte, Stats) {
	var stats Stats
	matches := tr.pattern.FindAllSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, stats
	}

	var buf bytes.Buffer
	buf.Grow(len(content))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		buf.Write(content[last:start])
		last = end

		var key string
		if m[2] >= 0 {
			key = string(content[m[2]:m[3]])
		}
		value, found := table.Lookup(key)
		if !found || !data.Truthy(value) {
			stats.Unresolved++
			buf.Write(content[start:end])
			continue
		}
		stats.Resolved++
		buf.WriteString(Stringify(value))
	}
	buf.Write(content[last:])
	return buf.Bytes(), stats
}

// Stringify renders a data value as replacement text. Objects and arrays are rendered as
// compact JSON.
func Stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return "null"
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
	return fmt.Sprint(v)
}
