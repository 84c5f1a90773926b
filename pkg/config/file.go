package config

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"dario.cat/mergo"
	"github.com/adam-huganir/varsub/pkg/files"
	"github.com/adam-huganir/varsub/pkg/types"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// list-valued keys that also accept a single string
var listKeys = []string{"source", "data-source", "set"}

// LoadArgumentsFile reads an options file. ".toml" files are TOML; anything else is read as
// YAML, which covers JSON too. Keys match the json tags of types.Arguments.
func LoadArgumentsFile(p string) (*types.Arguments, error) {
	content, err := files.ReadFile(p)
	if err != nil {
		return nil, &types.FileAccessError{Op: "read", Path: p, Err: err}
	}

	raw := make(map[string]any)
	switch strings.ToLower(path.Ext(p)) {
	case ".toml":
		err = toml.Unmarshal(content, &raw)
	default:
		err = yaml.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, &types.ConfigurationError{Problems: []string{fmt.Sprintf("invalid options file %s: %v", p, err)}}
	}

	for _, key := range listKeys {
		if s, ok := raw[key].(string); ok {
			raw[key] = []string{s}
		}
	}
	// inline data in a file is taken as-is under "inline-data"
	var inline map[string]any
	if value, ok := raw["inline-data"]; ok && value != nil {
		if inline, ok = value.(map[string]any); !ok {
			return nil, &types.ConfigurationError{Problems: []string{
				fmt.Sprintf("invalid options file %s: inline-data must be an object, got %T", p, value),
			}}
		}
	}
	delete(raw, "inline-data")

	b, err := json.Marshal(raw)
	if err != nil {
		return nil, &types.ConfigurationError{Problems: []string{fmt.Sprintf("invalid options file %s: %v", p, err)}}
	}
	args := types.NewCLISettings()
	if err = json.Unmarshal(b, args); err != nil {
		return nil, &types.ConfigurationError{Problems: []string{fmt.Sprintf("invalid options file %s: %v", p, err)}}
	}
	args.InlineData = inline
	return args, nil
}

// MergeArguments fills every unset field of args from fileArgs. Values already present in
// args (typically given as flags) are kept.
func MergeArguments(args, fileArgs *types.Arguments) error {
	if fileArgs == nil {
		return nil
	}
	return mergo.Merge(args, fileArgs)
}
