package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/dorinm/sunetbot/internal/config"
	"github.com/dorinm/sunetbot/internal/discord"
	"github.com/dorinm/sunetbot/internal/logging"
	v "github.com/dorinm/sunetbot/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFile)

	log.Info().Str("module", "main").
		Str("version", v.AppVersion).
		Msgf("starting %s", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- discord.StartBot(ctx, cfg)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Str("module", "main").Str("signal", s.String()).Msg("shutting down")
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			log.Error().Str("module", "main").Err(err).Msg("bot exited with error")
			cancel()
			os.Exit(1)
		}
	}

	log.Info().Str("module", "main").Msg("bot exited cleanly")
}
