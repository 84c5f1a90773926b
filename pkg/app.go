// Package varsub provides the core application logic: load data, expand source patterns,
// substitute tokens and write the results.
package varsub

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/adam-huganir/varsub/pkg/config"
	"github.com/adam-huganir/varsub/pkg/data"
	"github.com/adam-huganir/varsub/pkg/destination"
	"github.com/adam-huganir/varsub/pkg/files"
	"github.com/adam-huganir/varsub/pkg/transform"
	"github.com/adam-huganir/varsub/pkg/types"
	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
)

// State is the stage a run is in.
type State string

const (
	StateIdle             State = "idle"
	StateLoadingData      State = "loading-data"
	StateExpandingPattern State = "expanding-pattern"
	StateProcessingFile   State = "processing-file"
	StateDone             State = "done"
	StateFailed           State = "failed"
)

// FileResult records what happened to one matched file.
type FileResult struct {
	Source      string
	Pattern     string
	Destination string
	IsBinary    bool
	Stats       transform.Stats
}

// RunData holds what a run produced: the merged data and the per-file results in the order
// the files were written.
type RunData struct {
	Data    *data.Table
	Results []FileResult
}

// App holds the configuration and dependencies for one run.
type App struct {
	Config  *config.Config
	Logger  *zerolog.Logger
	RunData *RunData
	State   State
}

// NewApp creates an App for a validated configuration.
func NewApp(cfg *config.Config, logger *zerolog.Logger) *App {
	return &App{
		Config:  cfg,
		Logger:  logger,
		RunData: &RunData{},
		State:   StateIdle,
	}
}

// Run executes the whole pipeline. Patterns and files are handled one at a time in order and
// the first error ends the run. Files written before the error stay on disk.
func (app *App) Run(ctx context.Context) (err error) {
	defer func() {
		if err != nil {
			app.State = StateFailed
			return
		}
		app.State = StateDone
	}()

	app.State = StateLoadingData
	table, err := data.Load(app.Config.DataSources(), app.Config.InlineData(), app.Config.Set(), app.Logger)
	if err != nil {
		return err
	}
	if schema := app.Config.Schema(); schema != "" {
		if err = data.ValidateSchema(table, schema, app.Logger); err != nil {
			return err
		}
	}
	app.RunData.Data = table

	sources := app.Config.Sources()
	resolver := destination.New(app.Config.Dest(), len(sources))
	for _, source := range sources {
		if err = app.processPattern(ctx, source, resolver); err != nil {
			return err
		}
	}
	return nil
}

func (app *App) processPattern(ctx context.Context, source string, resolver *destination.Resolver) error {
	app.State = StateExpandingPattern
	app.Logger.Debug().Msgf("Resolving files %s ...", source)
	matches, err := files.Expand(source, app.Logger)
	if err != nil {
		return &types.ConfigurationError{Problems: []string{err.Error()}}
	}
	if len(matches) == 0 {
		return &types.NoMatchError{Pattern: source}
	}
	app.Logger.Debug().Msgf("Found %d files matching %s", len(matches), source)

	app.State = StateProcessingFile
	for _, match := range matches {
		if err = ctx.Err(); err != nil {
			return err
		}
		if err = app.processFile(match, resolver); err != nil {
			return err
		}
	}
	return nil
}

func (app *App) processFile(match files.Match, resolver *destination.Resolver) error {
	file := match.Path
	app.Logger.Debug().Msgf("  Processing input file %s ...", file)

	info, err := files.Fs.Stat(file)
	if err != nil {
		return &types.FileAccessError{Op: "stat", Path: file, Err: err}
	}
	if !info.Mode().IsRegular() {
		app.Logger.Debug().Msgf("    %s is not a regular file, skipping", file)
		return nil
	}

	raw, err := files.ReadFile(file)
	if err != nil {
		return &types.FileAccessError{Op: "read", Path: file, Err: err}
	}

	result := app.Config.Transformer().Transform(raw, app.RunData.Data)
	if result.IsBinary {
		app.Logger.Info().Msgf("%s detected as binary, will be copied without processing", file)
	} else {
		app.Logger.Info().
			Str("file", file).
			Int("replaced", result.Stats.Resolved).
			Int("not_found", result.Stats.Unresolved).
			Msgf("%s processed - %d variables replaced - %d values not found", file, result.Stats.Resolved, result.Stats.Unresolved)
	}

	dest, err := resolver.Resolve(match.Pattern, file)
	if err != nil {
		return err
	}
	app.Logger.Debug().Msgf("    Writing %s to %s", file, dest)
	if err = destination.EnsureParent(dest); err != nil {
		return err
	}
	if err = files.WriteFile(dest, result.Output); err != nil {
		return &types.FileAccessError{Op: "write", Path: dest, Err: err}
	}

	app.RunData.Results = append(app.RunData.Results, FileResult{
		Source:      file,
		Pattern:     match.Pattern,
		Destination: dest,
		IsBinary:    result.IsBinary,
		Stats:       result.Stats,
	})
	return nil
}

// LogSettings logs the configuration as YAML at TRACE level.
func (app *App) LogSettings() {
	settings := map[string]any{
		"source":           app.Config.Sources(),
		"dest":             app.Config.Dest(),
		"data-source":      app.Config.DataSources(),
		"inline-data":      app.Config.InlineData(),
		"set":              app.Config.Set(),
		"variable-pattern": app.Config.Transformer().Pattern(),
		"log-level":        app.Config.LogLevel().String(),
		"schema":           app.Config.Schema(),
	}
	app.Logger.Trace().Msg("Settings:")
	yamlSettings, err := yaml.Marshal(settings)
	if err != nil {
		app.Logger.Warn().Err(err).Msg("unable to render settings")
		return
	}
	for _, line := range bytes.Split(bytes.TrimSpace(yamlSettings), []byte("\n")) {
		app.Logger.Trace().Msg("  " + string(line))
	}
}

// Run validates opts and runs the pipeline. When done is non-nil it receives the result;
// otherwise a failure panics.
func Run(ctx context.Context, opts config.Options, logger *zerolog.Logger, done func(error)) {
	err := run(ctx, opts, logger)
	if done != nil {
		done(err)
		return
	}
	if err != nil {
		panic(fmt.Errorf("varsub: %w", err))
	}
}

func run(ctx context.Context, opts config.Options, logger *zerolog.Logger) error {
	cfg, err := config.New(opts)
	if err != nil {
		return err
	}
	if logger == nil {
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		logger = &l
	}
	leveled := logger.Level(cfg.LogLevel())
	app := NewApp(cfg, &leveled)
	if leveled.GetLevel() <= zerolog.TraceLevel {
		app.LogSettings()
	}
	return app.Run(ctx)
}
