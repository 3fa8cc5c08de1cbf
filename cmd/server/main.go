package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/mfgworks/dynaform/internal/config"
	"github.com/mfgworks/dynaform/internal/server"
	"github.com/mfgworks/dynaform/internal/store"
)

func main() {
	configPath := flag.String("config", "dynaform.toml", "path to config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("loading config")
	}

	level, _ := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	db, err := store.OpenSQLite(cfg.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("opening database")
	}
	defer db.Close()

	// Install the built-in master schemas on first boot.
	catalog := store.NewCatalog(db)
	created, err := catalog.EnsurePredefinedMasters(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("initializing predefined masters")
	}
	if created > 0 {
		log.Info().Int("created", created).Msg("installed predefined masters")
	}

	err = server.Run(ctx, server.Config{
		Addr:        cfg.Addr,
		Store:       db,
		UploadDir:   cfg.UploadDir,
		CorsOrigins: cfg.CorsOrigins,
		Log:         log,
	})
	if err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}
}
