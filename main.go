package main

import (
	"context"
	"errors"
	"os"

	"github.com/kanweiwei/cai/internal/cli"
	"github.com/kanweiwei/cai/internal/tui"
	"github.com/kanweiwei/cai/internal/utils"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if utils.IsDebug() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := cli.Execute(context.Background()); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			log.Info().Msg("Commit aborted.")
		} else {
			log.Error().Err(err).Msg("cai failed")
		}
		os.Exit(cli.ExitCode(err))
	}
}
