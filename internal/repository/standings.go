package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"nbakit/backend/internal/models"
)

// StandingRepository handles standings database operations
type StandingRepository struct {
	db *Database
}

// Upsert inserts or updates one team's standing
func (r *StandingRepository) Upsert(ctx context.Context, s *models.TeamStanding) error {
	query := `
		INSERT INTO standings (
			team_id, season, team_name,
			conference, conference_record, division, division_record,
			wins, losses, win_pct
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (team_id, season) DO UPDATE SET
			team_name = EXCLUDED.team_name,
			conference = EXCLUDED.conference,
			conference_record = EXCLUDED.conference_record,
			division = EXCLUDED.division,
			division_record = EXCLUDED.division_record,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			win_pct = EXCLUDED.win_pct,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		s.TeamID, s.Season, s.TeamName,
		s.Conference, s.ConferenceRecord, s.Division, s.DivisionRecord,
		s.Wins, s.Losses, s.WinPct,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert standing: %w", err)
	}

	return nil
}

// UpsertBatch upserts the full league's standings
func (r *StandingRepository) UpsertBatch(ctx context.Context, standings []*models.TeamStanding) error {
	for _, s := range standings {
		if err := r.Upsert(ctx, s); err != nil {
			return fmt.Errorf("failed to upsert standing for team %d: %w", s.TeamID, err)
		}
	}

	log.Info().Int("count", len(standings)).Msg("Upserted standings")
	return nil
}

// GetBySeason retrieves standings for a season ordered by win percentage
func (r *StandingRepository) GetBySeason(ctx context.Context, season int) ([]*models.TeamStanding, error) {
	query := `
		SELECT id, team_id, season, team_name,
		       conference, conference_record, division, division_record,
		       wins, losses, win_pct,
		       created_at, updated_at
		FROM standings
		WHERE season = $1
		ORDER BY win_pct DESC NULLS LAST, team_name
	`

	rows, err := r.db.Pool.Query(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings: %w", err)
	}
	defer rows.Close()

	var standings []*models.TeamStanding
	for rows.Next() {
		var s models.TeamStanding
		err := rows.Scan(
			&s.ID, &s.TeamID, &s.Season, &s.TeamName,
			&s.Conference, &s.ConferenceRecord, &s.Division, &s.DivisionRecord,
			&s.Wins, &s.Losses, &s.WinPct,
			&s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan standing: %w", err)
		}
		standings = append(standings, &s)
	}

	return standings, rows.Err()
}
