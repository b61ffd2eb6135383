package leaders

import (
	"math"

	"nbakit/backend/internal/table"
)

// Qualification constants. The attempts floors follow standard qualification
// thresholds for rate-stat leaderboards; the participation fraction is the
// "played in 70% of team games" eligibility rule.
const (
	DefaultMinGamesPlayed = 10
	MaxGamesPlayed        = 82

	DefaultLimit = 5
	MaxLimit     = 25

	qualifyFraction = 0.70

	minAttemptsFieldGoalPct = 200
	minAttemptsTrueShooting = 200
	minAttemptsFreeThrowPct = 50
	minAttemptsThreePct     = 75
)

// ClampMinGamesPlayed clamps the games-played floor to [0, MaxGamesPlayed].
// Out-of-range input is silently clamped, never rejected.
func ClampMinGamesPlayed(minGP int) int {
	if minGP < 0 {
		return 0
	}
	if minGP > MaxGamesPlayed {
		return MaxGamesPlayed
	}
	return minGP
}

// ClampLimit clamps a leaderboard size to [1, MaxLimit].
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// applyGamesPlayedFloor drops rows with GP below the floor. Rows with no GP
// value count as zero games played.
func applyGamesPlayedFloor(t *table.Table, minGP int) *table.Table {
	if !t.HasNumeric(ColGamesPlayed) {
		if minGP <= 0 {
			return t
		}
		return t.Filter(make([]bool, t.Len()))
	}

	gp := t.Numeric(ColGamesPlayed)
	keep := make([]bool, t.Len())
	for i, c := range gp {
		played := 0.0
		if c.Valid {
			played = c.Float64
		}
		keep[i] = played >= float64(minGP)
	}
	return t.Filter(keep)
}

// applyTeamParticipation keeps players who have appeared in at least
// qualifyFraction of their team's games to date.
//
// Team games to date is approximated as the maximum GP among that team's own
// players; the snapshot has no authoritative team-schedule count.
func applyTeamParticipation(t *table.Table, fraction float64) *table.Table {
	if !t.HasNumeric(ColTeamID) || !t.HasNumeric(ColGamesPlayed) {
		return t
	}

	teamID := t.Numeric(ColTeamID)
	gp := t.Numeric(ColGamesPlayed)

	teamGames := make(map[float64]float64)
	for i, id := range teamID {
		if !id.Valid || !gp[i].Valid {
			continue
		}
		if gp[i].Float64 > teamGames[id.Float64] {
			teamGames[id.Float64] = gp[i].Float64
		}
	}

	keep := make([]bool, t.Len())
	for i, id := range teamID {
		required := 0.0
		if id.Valid {
			required = math.Ceil(teamGames[id.Float64] * fraction)
		}
		played := 0.0
		if gp[i].Valid {
			played = gp[i].Float64
		}
		keep[i] = played >= required
	}
	return t.Filter(keep)
}
