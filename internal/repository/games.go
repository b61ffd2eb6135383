package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"nbakit/backend/internal/models"
)

// GameRepository handles game database operations
type GameRepository struct {
	db *Database
}

// Upsert inserts or updates a game
func (r *GameRepository) Upsert(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (
			game_id, season, game_date, game_time,
			home_team, away_team, matchup,
			home_score, away_score, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (game_id) DO UPDATE SET
			season = EXCLUDED.season,
			game_date = EXCLUDED.game_date,
			game_time = EXCLUDED.game_time,
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			matchup = EXCLUDED.matchup,
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		game.GameID, game.Season, game.GameDate, game.GameTime,
		game.HomeTeam, game.AwayTeam, game.Matchup,
		game.HomeScore, game.AwayScore, game.Status,
	).Scan(&game.ID, &game.CreatedAt, &game.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	return nil
}

// UpsertBatch upserts a full schedule
func (r *GameRepository) UpsertBatch(ctx context.Context, games []*models.Game) error {
	for _, game := range games {
		if err := r.Upsert(ctx, game); err != nil {
			return fmt.Errorf("failed to upsert game %s: %w", game.GameID, err)
		}
	}

	log.Info().Int("count", len(games)).Msg("Upserted games")
	return nil
}

// GetByGameID retrieves a game by its upstream game ID
func (r *GameRepository) GetByGameID(ctx context.Context, gameID string) (*models.Game, error) {
	query := `
		SELECT id, game_id, season, game_date, game_time,
		       home_team, away_team, matchup,
		       home_score, away_score, status,
		       created_at, updated_at
		FROM games
		WHERE game_id = $1
	`

	var game models.Game
	err := r.db.Pool.QueryRow(ctx, query, gameID).Scan(
		&game.ID, &game.GameID, &game.Season, &game.GameDate, &game.GameTime,
		&game.HomeTeam, &game.AwayTeam, &game.Matchup,
		&game.HomeScore, &game.AwayScore, &game.Status,
		&game.CreatedAt, &game.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get game %s: %w", gameID, err)
	}

	return &game, nil
}

// GetByDate retrieves all games on a calendar day
func (r *GameRepository) GetByDate(ctx context.Context, day time.Time) ([]*models.Game, error) {
	query := `
		SELECT id, game_id, season, game_date, game_time,
		       home_team, away_team, matchup,
		       home_score, away_score, status,
		       created_at, updated_at
		FROM games
		WHERE game_date::date = $1::date
		ORDER BY game_date, game_id
	`

	rows, err := r.db.Pool.Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query games by date: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		var game models.Game
		err := rows.Scan(
			&game.ID, &game.GameID, &game.Season, &game.GameDate, &game.GameTime,
			&game.HomeTeam, &game.AwayTeam, &game.Matchup,
			&game.HomeScore, &game.AwayScore, &game.Status,
			&game.CreatedAt, &game.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, &game)
	}

	return games, rows.Err()
}
