package main

import (
	"context"
	"fmt"
	"os"

	varsub "github.com/adam-huganir/varsub/pkg"
	"github.com/adam-huganir/varsub/pkg/config"
	"github.com/adam-huganir/varsub/pkg/logging"
	"github.com/adam-huganir/varsub/pkg/transform"
	"github.com/adam-huganir/varsub/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRootCommand(settings *types.Arguments, logger *zerolog.Logger) *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "varsub [flags] <source patterns...>",
		Short: "Replace %variables% in files with values from data files",
		Long: `varsub expands source patterns, replaces %dotted.key% tokens in every text file with
values from the merged data sources and writes the results to the destination.
Binary files are copied unchanged.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd.Context(), settings, logger, cmd, args)
		},
	}
	return rootCommand
}

func initRoot(rootCommand *cobra.Command, settings *types.Arguments) {
	rootCommand.Flags().SortFlags = false
	rootCommand.Flags().StringVarP(
		&settings.Dest,
		"dest",
		"o",
		"",
		"Output file or directory. A directory keeps the structure below the literal part of each pattern.",
	)
	rootCommand.Flags().StringArrayVarP(
		&settings.DataFiles,
		"data",
		"d",
		nil,
		"Data file (json, yaml or toml) to merge. "+
			"Can be specified multiple times and later files override earlier ones.",
	)
	rootCommand.Flags().StringArrayVar(
		&settings.SetData,
		"set",
		nil,
		"Set a data value with a path, e.g. --set '$.key.nested=value'. Applied after all data files, sibling keys are kept.",
	)
	rootCommand.Flags().StringVarP(
		&settings.Pattern,
		"pattern",
		"p",
		"",
		"Regular expression matching a variable token, the first capture group is the key (default "+
			transform.DefaultPattern+")",
	)
	rootCommand.Flags().StringVar(&settings.SchemaFile, "schema", "", "JSON schema the merged data must satisfy")
	rootCommand.Flags().StringVarP(
		&settings.LogLevel,
		"log-level",
		"l",
		"",
		"One of none|error|warn|info|debug, defaults to $"+logging.EnvLogLevel+" or info",
	)
	rootCommand.Flags().StringVarP(
		&settings.ConfigFile,
		"config",
		"c",
		"",
		"Options file (yaml, json or toml). Flags given on the command line take precedence.",
	)
	rootCommand.Flags().BoolVar(&settings.Version, "version", false, "Print the version and exit")
}

func runRoot(ctx context.Context, settings *types.Arguments, logger *zerolog.Logger, cmd *cobra.Command, args []string) error {
	if settings.Version {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), varsub.GetVersion())
		return err
	}
	settings.Sources = append(settings.Sources, args...)

	if settings.ConfigFile != "" {
		logger.Debug().Msgf("Loading options from %s", settings.ConfigFile)
		fileArgs, err := config.LoadArgumentsFile(settings.ConfigFile)
		if err != nil {
			return &types.ExitError{Code: 1, Err: err}
		}
		if err = config.MergeArguments(settings, fileArgs); err != nil {
			return &types.ExitError{Code: 1, Err: err}
		}
	}
	if settings.LogLevel == "" {
		settings.LogLevel = os.Getenv(logging.EnvLogLevel)
	}

	cfg, err := config.New(config.FromArguments(settings))
	if err != nil {
		return &types.ExitError{Code: 1, Err: err}
	}

	leveled := logger.Level(cfg.LogLevel())
	app := varsub.NewApp(cfg, &leveled)
	if leveled.GetLevel() <= zerolog.TraceLevel {
		app.LogSettings()
	}
	if err = app.Run(ctx); err != nil {
		return &types.ExitError{Code: 1, Err: err}
	}
	return nil
}
