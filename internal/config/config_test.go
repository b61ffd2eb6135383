package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://stats.nba.com/stats", cfg.NBAStatsBaseURL)
	assert.Equal(t, "data/processed", cfg.DataDir)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "0 6 * * *", cfg.NightlyRefreshCron)
	assert.False(t, cfg.DatabaseEnabled)
}

func TestValidate_DatabasePassword(t *testing.T) {
	cfg := &Config{DataDir: "data", DatabaseEnabled: true}
	assert.Error(t, cfg.Validate())

	cfg.DatabasePassword = "secret"
	assert.NoError(t, cfg.Validate())
}

func TestSeasonForDate(t *testing.T) {
	// Season rolls over in October
	assert.Equal(t, "2025-26", SeasonForDate(time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-26", SeasonForDate(time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-25", SeasonForDate(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-26", SeasonForDate(time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCurrentSeason_Override(t *testing.T) {
	cfg := &Config{Season: "2023-24"}
	assert.Equal(t, "2023-24", cfg.CurrentSeason())
}

func TestSeasonStartYear(t *testing.T) {
	assert.Equal(t, 2025, SeasonStartYear("2025-26"))
}

func TestRedisAddr(t *testing.T) {
	cfg := &Config{RedisHost: "localhost", RedisPort: 6379}
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
}
