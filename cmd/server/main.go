package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"nbakit/backend/internal/api"
	"nbakit/backend/internal/cache"
	"nbakit/backend/internal/config"
	"nbakit/backend/internal/leaders"
	"nbakit/backend/internal/provider"
	"nbakit/backend/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	setupLogger()

	log.Info().Msg("Starting NBA stats API server")

	cfg := config.MustLoad()
	log.Info().
		Str("env", cfg.AppEnv).
		Str("season", cfg.CurrentSeason()).
		Str("data_dir", cfg.DataDir).
		Int("port", cfg.ServerPort).
		Msg("Configuration loaded")

	store, err := provider.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open snapshot store")
	}

	// The snapshot files are the default table source. With a database
	// configured, the mirrored rows serve instead.
	var source leaders.TableSource = store
	if cfg.DatabaseEnabled {
		db, err := repository.NewDatabase(context.Background(), repository.Config{
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
		source = repository.NewSeasonSource(db, config.SeasonStartYear(cfg.CurrentSeason()))
		log.Info().Msg("Serving season table from database")
	}

	engine, err := leaders.NewEngine(source)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build leaders engine")
	}

	var payloadCache api.PayloadCache
	redisCache, err := cache.NewRedisCache(cache.Config{
		Host:     cfg.RedisHost,
		Port:     strconv.Itoa(cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
	} else {
		defer redisCache.Close()
		payloadCache = redisCache
		log.Info().Msg("Redis cache connected")
	}

	handler := api.NewHandler(cfg, engine, store, payloadCache)
	server := api.NewServer(cfg, handler)
	server.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("Received shutdown signal, gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}

	log.Info().Msg("Server shutdown complete")
}

// setupLogger configures the zerolog logger
func setupLogger() {
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	level := zerolog.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		parsedLevel, err := zerolog.ParseLevel(lvl)
		if err == nil {
			level = parsedLevel
		}
	}
	zerolog.SetGlobalLevel(level)
}
