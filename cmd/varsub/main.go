package main

import (
	"errors"
	"os"

	"github.com/adam-huganir/varsub/pkg/logging"
	"github.com/adam-huganir/varsub/pkg/types"
)

func main() {
	logger := logging.InitLogger("")
	logger.Trace().Msg("varsub.main() called, executing rootCommand")

	settings := types.NewCLISettings()
	rootCommand := newRootCommand(settings, &logger)
	initRoot(rootCommand, settings)

	err := rootCommand.Execute()
	if err != nil {
		logger.Error().Msg(err.Error())
		var exitErr *types.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
	os.Exit(0)
}
