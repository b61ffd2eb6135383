//go:build integration

package repository

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nbakit/backend/internal/models"
)

func TestPlayerRepository_Upsert(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	ps := &models.PlayerSeason{
		PlayerID: 201939,
		TeamID:   1610612744,
		Season:   2025,
		Name:     "Stephen Curry",
		TeamAbbr: "GSW",

		GamesPlayed: sql.NullFloat64{Float64: 60, Valid: true},
		Points:      sql.NullFloat64{Float64: 26.8, Valid: true},
	}

	// Insert
	err := db.Players.Upsert(ctx, ps)
	require.NoError(t, err, "Should insert player season")

	// Retrieve and verify
	players, err := db.Players.GetBySeason(ctx, 2025)
	require.NoError(t, err)
	require.NotEmpty(t, players)

	var found *models.PlayerSeason
	for _, p := range players {
		if p.PlayerID == 201939 {
			found = p
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "Stephen Curry", found.Name)
	assert.Equal(t, 26.8, found.Points.Float64)
	assert.False(t, found.Assists.Valid, "Unset stats stay null")

	// Update on conflict
	ps.Points = sql.NullFloat64{Float64: 27.1, Valid: true}
	err = db.Players.Upsert(ctx, ps)
	require.NoError(t, err, "Should update player season")

	players, err = db.Players.GetBySeason(ctx, 2025)
	require.NoError(t, err)
	for _, p := range players {
		if p.PlayerID == 201939 {
			assert.Equal(t, 27.1, p.Points.Float64)
		}
	}
}

func TestStandingRepository_Upsert(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	s := &models.TeamStanding{
		TeamID:           1610612738,
		Season:           2025,
		TeamName:         "Celtics",
		Conference:       "East",
		ConferenceRecord: "30-10",
		Division:         "Atlantic",
		DivisionRecord:   "10-2",
		Wins:             45,
		Losses:           15,
		WinPct:           sql.NullFloat64{Float64: 0.75, Valid: true},
	}

	require.NoError(t, db.Standings.Upsert(ctx, s))

	standings, err := db.Standings.GetBySeason(ctx, 2025)
	require.NoError(t, err)
	require.NotEmpty(t, standings)
	assert.Equal(t, "Celtics", standings[0].TeamName)
}
