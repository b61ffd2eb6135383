package models

import (
	"database/sql"
	"strings"
	"time"
)

// Normalized game statuses. Upstream status text is free-form ("Final",
// "Final/OT", "7:30 pm ET", "PPD"); everything collapses into these three.
const (
	StatusFinal     = "FINAL"
	StatusUpcoming  = "UPCOMING"
	StatusPostponed = "POSTPONED"
)

// Game represents one scheduled or completed NBA game
type Game struct {
	ID       int       `db:"id"`
	GameID   string    `db:"game_id"`
	Season   int       `db:"season"`
	GameDate time.Time `db:"game_date"`
	GameTime string    `db:"game_time"`

	HomeTeam string `db:"home_team"`
	AwayTeam string `db:"away_team"`
	Matchup  string `db:"matchup"`

	HomeScore sql.NullInt32 `db:"home_score"`
	AwayScore sql.NullInt32 `db:"away_score"`
	Status    string        `db:"status"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// GameInput is used for creating/updating games from the API
type GameInput struct {
	GameID     string `json:"gameId"`
	DateTime   string `json:"gameDateTimeEst"`
	HomeTeam   string `json:"homeTeamName"`
	AwayTeam   string `json:"awayTeamName"`
	HomeScore  *int   `json:"homeTeamScore,omitempty"`
	AwayScore  *int   `json:"awayTeamScore,omitempty"`
	StatusText string `json:"gameStatusText"`
}

// ToGame converts GameInput (from API) to Game model
func (gi *GameInput) ToGame(season int) *Game {
	game := &Game{
		GameID:   gi.GameID,
		Season:   season,
		HomeTeam: gi.HomeTeam,
		AwayTeam: gi.AwayTeam,
		Matchup:  gi.AwayTeam + " @ " + gi.HomeTeam,
		Status:   NormalizeStatus(gi.StatusText),
	}

	if t, err := time.Parse("2006-01-02T15:04:05", gi.DateTime); err == nil {
		game.GameDate = t
		game.GameTime = formatGameTime(t)
	}

	if gi.HomeScore != nil {
		game.HomeScore = sql.NullInt32{Int32: int32(*gi.HomeScore), Valid: true}
	}
	if gi.AwayScore != nil {
		game.AwayScore = sql.NullInt32{Int32: int32(*gi.AwayScore), Valid: true}
	}

	return game
}

// NormalizeStatus maps upstream status text to one of the three
// normalized statuses. Anything unrecognized counts as upcoming.
func NormalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "final") {
		return StatusFinal
	}
	if strings.Contains(s, "postponed") || s == "ppd" {
		return StatusPostponed
	}
	return StatusUpcoming
}

// formatGameTime renders a tip-off time like "7:30 PM"
func formatGameTime(t time.Time) string {
	return t.Format("3:04 PM")
}
