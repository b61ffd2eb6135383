// Command manualfetch runs one snapshot refresh and exits. Useful for
// seeding a fresh data directory or repairing a failed nightly run.
package main

import (
	"context"
	"flag"
	"strconv"
	"time"

	"nbakit/backend/internal/client"
	"nbakit/backend/internal/config"
	"nbakit/backend/internal/provider"
	"nbakit/backend/internal/repository"
	"nbakit/backend/internal/scheduler"

	"github.com/rs/zerolog/log"
)

func main() {
	timeout := flag.Duration("timeout", 15*time.Minute, "overall refresh deadline")
	flag.Parse()

	cfg := config.MustLoad()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	nbaClient := client.NewClient(cfg.NBAStatsBaseURL, cfg.NBAStatsTimeout)

	store, err := provider.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open snapshot store")
	}

	var db *repository.Database
	if cfg.DatabaseEnabled {
		db, err = repository.NewDatabase(ctx, repository.Config{
			Host:     cfg.DatabaseHost,
			Port:     strconv.Itoa(cfg.DatabasePort),
			User:     cfg.DatabaseUser,
			Password: cfg.DatabasePassword,
			Database: cfg.DatabaseName,
			SSLMode:  cfg.DatabaseSSLMode,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		if err := db.Health(ctx); err != nil {
			log.Fatal().Err(err).Msg("Database health check failed")
		}
	}

	sched := scheduler.NewScheduler(cfg, nbaClient, store, db)

	log.Info().
		Str("season", cfg.CurrentSeason()).
		Str("data_dir", store.Dir()).
		Msg("Running manual snapshot refresh")

	if err := sched.RefreshAll(ctx); err != nil {
		log.Fatal().Err(err).Msg("Manual refresh failed")
	}

	log.Info().Msg("Manual refresh complete")
}
