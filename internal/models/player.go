package models

import (
	"database/sql"
	"time"
)

// PlayerSeason represents one player's per-game averages for a season
type PlayerSeason struct {
	ID       int    `db:"id"`
	PlayerID int64  `db:"player_id"`
	TeamID   int64  `db:"team_id"`
	Season   int    `db:"season"`
	Name     string `db:"player_name"`
	TeamAbbr string `db:"team_abbreviation"`

	// Per-game averages as reported upstream. Any of these can be absent
	// for a given player/season, so they are nullable end to end.
	GamesPlayed sql.NullFloat64 `db:"games_played"`
	Minutes     sql.NullFloat64 `db:"minutes"`
	Points      sql.NullFloat64 `db:"points"`
	Rebounds    sql.NullFloat64 `db:"rebounds"`
	OffRebounds sql.NullFloat64 `db:"off_rebounds"`
	DefRebounds sql.NullFloat64 `db:"def_rebounds"`
	Assists     sql.NullFloat64 `db:"assists"`
	Steals      sql.NullFloat64 `db:"steals"`
	Blocks      sql.NullFloat64 `db:"blocks"`
	Turnovers   sql.NullFloat64 `db:"turnovers"`

	// Shooting volume, per game
	FieldGoalsMade      sql.NullFloat64 `db:"field_goals_made"`
	FieldGoalsAttempted sql.NullFloat64 `db:"field_goals_attempted"`
	ThreesMade          sql.NullFloat64 `db:"threes_made"`
	ThreesAttempted     sql.NullFloat64 `db:"threes_attempted"`
	FreeThrowsMade      sql.NullFloat64 `db:"free_throws_made"`
	FreeThrowsAttempted sql.NullFloat64 `db:"free_throws_attempted"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// PlayerSeasonInput is used for creating/updating player seasons from the API
type PlayerSeasonInput struct {
	PlayerID int64  `json:"PLAYER_ID"`
	TeamID   int64  `json:"TEAM_ID"`
	Name     string `json:"PLAYER_NAME"`
	TeamAbbr string `json:"TEAM_ABBREVIATION"`

	GamesPlayed *float64 `json:"GP,omitempty"`
	Minutes     *float64 `json:"MIN,omitempty"`
	Points      *float64 `json:"PTS,omitempty"`
	Rebounds    *float64 `json:"REB,omitempty"`
	OffRebounds *float64 `json:"OREB,omitempty"`
	DefRebounds *float64 `json:"DREB,omitempty"`
	Assists     *float64 `json:"AST,omitempty"`
	Steals      *float64 `json:"STL,omitempty"`
	Blocks      *float64 `json:"BLK,omitempty"`
	Turnovers   *float64 `json:"TOV,omitempty"`

	FieldGoalsMade      *float64 `json:"FGM,omitempty"`
	FieldGoalsAttempted *float64 `json:"FGA,omitempty"`
	ThreesMade          *float64 `json:"FG3M,omitempty"`
	ThreesAttempted     *float64 `json:"FG3A,omitempty"`
	FreeThrowsMade      *float64 `json:"FTM,omitempty"`
	FreeThrowsAttempted *float64 `json:"FTA,omitempty"`
}

// ToPlayerSeason converts PlayerSeasonInput (from API) to PlayerSeason model
func (pi *PlayerSeasonInput) ToPlayerSeason(season int) *PlayerSeason {
	ps := &PlayerSeason{
		PlayerID: pi.PlayerID,
		TeamID:   pi.TeamID,
		Season:   season,
		Name:     pi.Name,
		TeamAbbr: pi.TeamAbbr,
	}

	ps.GamesPlayed = nullFloat(pi.GamesPlayed)
	ps.Minutes = nullFloat(pi.Minutes)
	ps.Points = nullFloat(pi.Points)
	ps.Rebounds = nullFloat(pi.Rebounds)
	ps.OffRebounds = nullFloat(pi.OffRebounds)
	ps.DefRebounds = nullFloat(pi.DefRebounds)
	ps.Assists = nullFloat(pi.Assists)
	ps.Steals = nullFloat(pi.Steals)
	ps.Blocks = nullFloat(pi.Blocks)
	ps.Turnovers = nullFloat(pi.Turnovers)

	ps.FieldGoalsMade = nullFloat(pi.FieldGoalsMade)
	ps.FieldGoalsAttempted = nullFloat(pi.FieldGoalsAttempted)
	ps.ThreesMade = nullFloat(pi.ThreesMade)
	ps.ThreesAttempted = nullFloat(pi.ThreesAttempted)
	ps.FreeThrowsMade = nullFloat(pi.FreeThrowsMade)
	ps.FreeThrowsAttempted = nullFloat(pi.FreeThrowsAttempted)

	return ps
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
