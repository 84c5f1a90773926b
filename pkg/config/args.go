// Package config validates varsub options and turns them into an immutable Config.
package config

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/adam-huganir/varsub/pkg/data"
	"github.com/adam-huganir/varsub/pkg/logging"
	"github.com/adam-huganir/varsub/pkg/transform"
	"github.com/adam-huganir/varsub/pkg/types"
	"github.com/rs/zerolog"
)

// Options is the raw input for a run. Source and Dest are required, and at least one of
// DataSource, InlineData or Set must be set. Set holds "path=value" strings written into the
// merged data after InlineData.
type Options struct {
	Source          []string
	Dest            string
	DataSource      []string
	InlineData      map[string]any
	Set             []string
	VariablePattern string
	LogLevel        string
	Schema          string
}

func defaultOptions() Options {
	return Options{
		VariablePattern: transform.DefaultPattern,
		LogLevel:        "info",
	}
}

// Config is a validated set of options. It is never modified after New returns it.
type Config struct {
	sources     []string
	dest        string
	dataSources []string
	inlineData  map[string]any
	set         []string
	logLevel    zerolog.Level
	schema      string
	transformer *transform.Transformer
}

// New validates opts, fills defaults and returns the resulting Config. Every problem found is
// reported in a single *types.ConfigurationError; no filesystem access happens here.
func New(opts Options) (*Config, error) {
	// Config must not alias the caller's slices or maps
	opts.Source = slices.Clone(opts.Source)
	opts.DataSource = slices.Clone(opts.DataSource)
	opts.InlineData = maps.Clone(opts.InlineData)
	opts.Set = slices.Clone(opts.Set)
	if err := mergo.Merge(&opts, defaultOptions()); err != nil {
		return nil, &types.ConfigurationError{Problems: []string{err.Error()}}
	}

	var problems []string
	if len(opts.Source) == 0 {
		problems = append(problems, "source is required")
	}
	for i, s := range opts.Source {
		if strings.TrimSpace(s) == "" {
			problems = append(problems, "source pattern "+strconv.Itoa(i)+" is empty")
		}
	}
	if strings.TrimSpace(opts.Dest) == "" {
		problems = append(problems, "dest is required")
	}
	if len(opts.DataSource) == 0 && opts.InlineData == nil && len(opts.Set) == 0 {
		problems = append(problems, "one of dataSource or inlineData is required")
	}
	for i, s := range opts.DataSource {
		if strings.TrimSpace(s) == "" {
			problems = append(problems, "data source "+strconv.Itoa(i)+" is empty")
		}
	}
	nop := zerolog.Nop()
	if _, err := data.ParseSetArgs(opts.Set, &nop); err != nil {
		problems = append(problems, err.Error())
	}
	level, ok := logging.ParseLevel(opts.LogLevel)
	if !ok {
		problems = append(problems, "log level must be one of none|error|warn|info|debug, got "+opts.LogLevel)
	}
	tr, err := transform.New(opts.VariablePattern)
	if err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return nil, &types.ConfigurationError{Problems: problems}
	}

	return &Config{
		sources:     opts.Source,
		dest:        opts.Dest,
		dataSources: opts.DataSource,
		inlineData:  opts.InlineData,
		set:         opts.Set,
		logLevel:    level,
		schema:      opts.Schema,
		transformer: tr,
	}, nil
}

// Sources are the source patterns in the order they are processed.
func (c *Config) Sources() []string { return slices.Clone(c.sources) }

// Dest is the configured destination path.
func (c *Config) Dest() string { return c.dest }

// DataSources are the data files in merge order.
func (c *Config) DataSources() []string { return slices.Clone(c.dataSources) }

// InlineData is merged after every data source. nil when not configured.
func (c *Config) InlineData() map[string]any { return maps.Clone(c.inlineData) }

// Set is the list of "path=value" overrides in the order they are applied.
func (c *Config) Set() []string { return slices.Clone(c.set) }

// LogLevel is the parsed verbosity.
func (c *Config) LogLevel() zerolog.Level { return c.logLevel }

// Schema is the optional schema file the merged data is validated against.
func (c *Config) Schema() string { return c.schema }

// Transformer is the compiled token matcher.
func (c *Config) Transformer() *transform.Transformer { return c.transformer }

// FromArguments converts CLI arguments into Options. --set values are carried as given and
// applied on top of the merged data by data.Load.
func FromArguments(args *types.Arguments) Options {
	return Options{
		Source:          args.Sources,
		Dest:            args.Dest,
		DataSource:      args.DataFiles,
		InlineData:      args.InlineData,
		Set:             args.SetData,
		VariablePattern: args.Pattern,
		LogLevel:        args.LogLevel,
		Schema:          args.SchemaFile,
	}
}
