// Package data builds the merged lookup table that token substitution reads from.
package data

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"path"
	"slices"
	"strings"

	"github.com/adam-huganir/varsub/pkg/files"
	"github.com/adam-huganir/varsub/pkg/types"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// Table is the merged key/value data set. Top-level keys remember the order in which they
// were first inserted. A Table is not modified after Load returns it.
type Table struct {
	keys   []string
	values map[string]any
}

// NewTable creates a table from a map. Keys are taken in sorted order since maps carry none.
func NewTable(m map[string]any) *Table {
	t := &Table{values: make(map[string]any, len(m))}
	t.mergeMap(m)
	return t
}

func (t *Table) set(key string, value any) {
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

func (t *Table) mergeMap(m map[string]any) {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		t.set(k, m[k])
	}
}

func (t *Table) mergeDocument(doc *document) {
	for _, k := range doc.keys {
		t.set(k, doc.values[k])
	}
}

// Keys returns the top-level keys in insertion order.
func (t *Table) Keys() []string {
	return slices.Clone(t.keys)
}

// Len is the number of top-level keys.
func (t *Table) Len() int {
	return len(t.keys)
}

// Get returns a top-level value.
func (t *Table) Get(key string) (any, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Map returns a shallow copy of the top-level mapping.
func (t *Table) Map() map[string]any {
	return maps.Clone(t.values)
}

// Load reads each data source in order and shallow merges it into one table, then merges
// inline on top. Later sources win on top-level keys; nested objects are replaced, not merged.
// Finally each "path=value" in set is written into the merged data at its path, keeping
// sibling keys. Without data sources the filesystem is never touched.
func Load(sources []string, inline map[string]any, set []string, logger *zerolog.Logger) (*Table, error) {
	table := &Table{values: make(map[string]any)}
	for _, source := range sources {
		logger.Debug().Msgf("Loading data from %s ...", source)
		doc, err := loadDocument(source)
		if err != nil {
			return nil, &types.DataLoadError{Source: source, Err: err}
		}
		table.mergeDocument(doc)
	}
	if inline != nil {
		if len(sources) > 0 {
			logger.Debug().Msg("Merging inline data ...")
		}
		table.mergeMap(inline)
	}
	if len(set) > 0 {
		root := cloneValue(table.values)
		if err := applySetArgs(&root, set, logger); err != nil {
			return nil, &types.DataLoadError{Source: "--set", Err: err}
		}
		table.mergeMap(root.(map[string]any))
	}
	logger.Trace().Strs("keys", table.keys).Msg("data loaded")
	return table, nil
}

// document is a parsed data source: an object plus the order its keys appeared in.
type document struct {
	keys   []string
	values map[string]any
}

func loadDocument(source string) (*document, error) {
	content, err := files.ReadFile(source)
	if err != nil {
		return nil, err
	}
	return parseDocument(source, content)
}

func parseDocument(name string, content []byte) (*document, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return parseYAML(content)
	case ".toml":
		return parseTOML(content)
	default:
		return parseJSON(content)
	}
}

var errNotObject = errors.New("document root is not an object")

func parseJSON(content []byte) (*document, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errNotObject
	}

	doc := &document{values: make(map[string]any)}
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("invalid JSON: unexpected token %v", tok)
		}
		var value any
		if err = dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		doc.add(key, value)
	}
	if _, err = dec.Token(); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err = dec.Token(); err != io.EOF {
		return nil, errors.New("invalid JSON: unexpected data after top-level object")
	}
	return doc, nil
}

func parseYAML(content []byte) (*document, error) {
	var ms yaml.MapSlice
	if err := yaml.Unmarshal(content, &ms); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	doc := &document{values: make(map[string]any, len(ms))}
	for _, item := range ms {
		doc.add(fmt.Sprint(item.Key), item.Value)
	}
	return doc, nil
}

func parseTOML(content []byte) (*document, error) {
	m := make(map[string]any)
	if err := toml.Unmarshal(content, &m); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	doc := &document{values: m}
	doc.keys = slices.Sorted(maps.Keys(m))
	return doc, nil
}

func (d *document) add(key string, value any) {
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}
