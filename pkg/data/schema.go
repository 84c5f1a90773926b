package data

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/adam-huganir/varsub/pkg/types"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/rs/zerolog"
)

// LoadSchema parses a JSON schema document.
func LoadSchema(schema []byte) (*jsonschema.Schema, error) {
	if len(schema) == 0 {
		return nil, errors.New("schema is empty")
	}
	s := jsonschema.Schema{}
	if err := s.UnmarshalJSON(schema); err != nil {
		return nil, fmt.Errorf("unmarshal schema error: %w", err)
	}
	return &s, nil
}

// ValidateSchema checks the table against the schema stored at schemaPath. The schema file
// may be JSON, YAML or TOML. Defaults declared by the schema are not applied.
func ValidateSchema(table *Table, schemaPath string, logger *zerolog.Logger) error {
	logger.Debug().Msgf("Validating data against schema %s ...", schemaPath)
	fail := func(err error) error {
		return &types.DataLoadError{Source: schemaPath, Err: err}
	}

	doc, err := loadDocument(schemaPath)
	if err != nil {
		return fail(err)
	}
	schemaBytes, err := json.Marshal(doc.values)
	if err != nil {
		return fail(fmt.Errorf("unable to marshal schema: %w", err))
	}
	s, err := LoadSchema(schemaBytes)
	if err != nil {
		return fail(err)
	}
	resolved, err := s.Resolve(&jsonschema.ResolveOptions{ValidateDefaults: false})
	if err != nil {
		return fail(fmt.Errorf("unable to resolve schema: %w", err))
	}

	instance, err := plainJSON(table.values)
	if err != nil {
		return fail(err)
	}
	if err = resolved.Validate(instance); err != nil {
		return fail(fmt.Errorf("data does not match schema: %w", err))
	}
	return nil
}

// plainJSON round-trips v through encoding/json so numbers become float64 and every map is
// map[string]any, which is what the validator expects.
func plainJSON(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("unable to encode data for validation: %w", err)
	}
	var out any
	if err = json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("unable to decode data for validation: %w", err)
	}
	return out, nil
}
