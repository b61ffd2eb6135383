package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"nbakit/backend/internal/leaders"
	"nbakit/backend/internal/models"
	"nbakit/backend/internal/table"
)

// PlayerRepository handles player season database operations
type PlayerRepository struct {
	db *Database
}

// Upsert inserts or updates one player's season row
func (r *PlayerRepository) Upsert(ctx context.Context, ps *models.PlayerSeason) error {
	query := `
		INSERT INTO player_seasons (
			player_id, team_id, season, player_name, team_abbreviation,
			games_played, minutes, points, rebounds, off_rebounds, def_rebounds,
			assists, steals, blocks, turnovers,
			field_goals_made, field_goals_attempted,
			threes_made, threes_attempted,
			free_throws_made, free_throws_attempted
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		ON CONFLICT (player_id, season) DO UPDATE SET
			team_id = EXCLUDED.team_id,
			player_name = EXCLUDED.player_name,
			team_abbreviation = EXCLUDED.team_abbreviation,
			games_played = EXCLUDED.games_played,
			minutes = EXCLUDED.minutes,
			points = EXCLUDED.points,
			rebounds = EXCLUDED.rebounds,
			off_rebounds = EXCLUDED.off_rebounds,
			def_rebounds = EXCLUDED.def_rebounds,
			assists = EXCLUDED.assists,
			steals = EXCLUDED.steals,
			blocks = EXCLUDED.blocks,
			turnovers = EXCLUDED.turnovers,
			field_goals_made = EXCLUDED.field_goals_made,
			field_goals_attempted = EXCLUDED.field_goals_attempted,
			threes_made = EXCLUDED.threes_made,
			threes_attempted = EXCLUDED.threes_attempted,
			free_throws_made = EXCLUDED.free_throws_made,
			free_throws_attempted = EXCLUDED.free_throws_attempted,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		ps.PlayerID, ps.TeamID, ps.Season, ps.Name, ps.TeamAbbr,
		ps.GamesPlayed, ps.Minutes, ps.Points, ps.Rebounds, ps.OffRebounds, ps.DefRebounds,
		ps.Assists, ps.Steals, ps.Blocks, ps.Turnovers,
		ps.FieldGoalsMade, ps.FieldGoalsAttempted,
		ps.ThreesMade, ps.ThreesAttempted,
		ps.FreeThrowsMade, ps.FreeThrowsAttempted,
	).Scan(&ps.ID, &ps.CreatedAt, &ps.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert player season: %w", err)
	}

	return nil
}

// UpsertBatch upserts a full season's worth of players
func (r *PlayerRepository) UpsertBatch(ctx context.Context, players []*models.PlayerSeason) error {
	for _, ps := range players {
		if err := r.Upsert(ctx, ps); err != nil {
			return fmt.Errorf("failed to upsert player %d: %w", ps.PlayerID, err)
		}
	}

	log.Info().Int("count", len(players)).Msg("Upserted player seasons")
	return nil
}

// GetBySeason retrieves all player rows for a season
func (r *PlayerRepository) GetBySeason(ctx context.Context, season int) ([]*models.PlayerSeason, error) {
	query := `
		SELECT id, player_id, team_id, season, player_name, team_abbreviation,
		       games_played, minutes, points, rebounds, off_rebounds, def_rebounds,
		       assists, steals, blocks, turnovers,
		       field_goals_made, field_goals_attempted,
		       threes_made, threes_attempted,
		       free_throws_made, free_throws_attempted,
		       created_at, updated_at
		FROM player_seasons
		WHERE season = $1
		ORDER BY player_id
	`

	rows, err := r.db.Pool.Query(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query player seasons: %w", err)
	}
	defer rows.Close()

	var players []*models.PlayerSeason
	for rows.Next() {
		var ps models.PlayerSeason
		err := rows.Scan(
			&ps.ID, &ps.PlayerID, &ps.TeamID, &ps.Season, &ps.Name, &ps.TeamAbbr,
			&ps.GamesPlayed, &ps.Minutes, &ps.Points, &ps.Rebounds, &ps.OffRebounds, &ps.DefRebounds,
			&ps.Assists, &ps.Steals, &ps.Blocks, &ps.Turnovers,
			&ps.FieldGoalsMade, &ps.FieldGoalsAttempted,
			&ps.ThreesMade, &ps.ThreesAttempted,
			&ps.FreeThrowsMade, &ps.FreeThrowsAttempted,
			&ps.CreatedAt, &ps.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player season: %w", err)
		}
		players = append(players, &ps)
	}

	return players, rows.Err()
}

// SeasonTable builds the season stats table for a list of players.
// Null database values become invalid cells.
func SeasonTable(players []*models.PlayerSeason) *table.Table {
	n := len(players)
	t := table.New(n)

	names := make([]string, n)
	abbrs := make([]string, n)
	cols := map[string][]table.Cell{
		leaders.ColPlayerID:            make([]table.Cell, n),
		leaders.ColTeamID:              make([]table.Cell, n),
		leaders.ColGamesPlayed:         make([]table.Cell, n),
		leaders.ColMinutes:             make([]table.Cell, n),
		leaders.ColPoints:              make([]table.Cell, n),
		leaders.ColRebounds:            make([]table.Cell, n),
		leaders.ColOffRebounds:         make([]table.Cell, n),
		leaders.ColDefRebounds:         make([]table.Cell, n),
		leaders.ColAssists:             make([]table.Cell, n),
		leaders.ColSteals:              make([]table.Cell, n),
		leaders.ColBlocks:              make([]table.Cell, n),
		leaders.ColTurnovers:           make([]table.Cell, n),
		leaders.ColFieldGoalsMade:      make([]table.Cell, n),
		leaders.ColFieldGoalsAttempted: make([]table.Cell, n),
		leaders.ColThreesMade:          make([]table.Cell, n),
		leaders.ColThreesAttempted:     make([]table.Cell, n),
		leaders.ColFreeThrowsMade:      make([]table.Cell, n),
		leaders.ColFreeThrowsAttempted: make([]table.Cell, n),
	}

	for i, ps := range players {
		names[i] = ps.Name
		abbrs[i] = ps.TeamAbbr
		cols[leaders.ColPlayerID][i] = table.Num(float64(ps.PlayerID))
		cols[leaders.ColTeamID][i] = table.Num(float64(ps.TeamID))

		setNullable(cols[leaders.ColGamesPlayed], i, ps.GamesPlayed)
		setNullable(cols[leaders.ColMinutes], i, ps.Minutes)
		setNullable(cols[leaders.ColPoints], i, ps.Points)
		setNullable(cols[leaders.ColRebounds], i, ps.Rebounds)
		setNullable(cols[leaders.ColOffRebounds], i, ps.OffRebounds)
		setNullable(cols[leaders.ColDefRebounds], i, ps.DefRebounds)
		setNullable(cols[leaders.ColAssists], i, ps.Assists)
		setNullable(cols[leaders.ColSteals], i, ps.Steals)
		setNullable(cols[leaders.ColBlocks], i, ps.Blocks)
		setNullable(cols[leaders.ColTurnovers], i, ps.Turnovers)
		setNullable(cols[leaders.ColFieldGoalsMade], i, ps.FieldGoalsMade)
		setNullable(cols[leaders.ColFieldGoalsAttempted], i, ps.FieldGoalsAttempted)
		setNullable(cols[leaders.ColThreesMade], i, ps.ThreesMade)
		setNullable(cols[leaders.ColThreesAttempted], i, ps.ThreesAttempted)
		setNullable(cols[leaders.ColFreeThrowsMade], i, ps.FreeThrowsMade)
		setNullable(cols[leaders.ColFreeThrowsAttempted], i, ps.FreeThrowsAttempted)
	}

	t.SetText(leaders.ColPlayerName, names)
	t.SetText(leaders.ColTeamAbbreviation, abbrs)
	for _, name := range leaders.RosterColumnOrder {
		if cells, ok := cols[name]; ok {
			t.SetNumeric(name, cells)
		}
	}

	return t
}

func setNullable(cells []table.Cell, i int, v sql.NullFloat64) {
	if v.Valid {
		cells[i] = table.Num(v.Float64)
	}
}

// SeasonSource serves the season stats table from the database mirror
// instead of the snapshot files.
type SeasonSource struct {
	db     *Database
	season int
}

// NewSeasonSource creates a table source over the mirrored player rows.
func NewSeasonSource(db *Database, season int) *SeasonSource {
	return &SeasonSource{db: db, season: season}
}

// SeasonTable loads the season's player rows and renders them as a table.
func (s *SeasonSource) SeasonTable(ctx context.Context) (*table.Table, error) {
	players, err := s.db.Players.GetBySeason(ctx, s.season)
	if err != nil {
		return nil, err
	}
	return SeasonTable(players), nil
}
