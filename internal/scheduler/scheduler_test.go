package scheduler

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nbakit/backend/internal/leaders"
	"nbakit/backend/internal/models"
)

func fp(v float64) *float64 { return &v }

func TestComputeTopPlayers(t *testing.T) {
	players := []models.PlayerSeasonInput{
		{PlayerID: 1, TeamAbbr: "BOS", Name: "Alice", Points: fp(27.35), Assists: fp(5.1), Rebounds: fp(8.2)},
		{PlayerID: 2, TeamAbbr: "BOS", Name: "Bob", Points: fp(18.0), Assists: fp(9.4), Rebounds: fp(4.0)},
		{PlayerID: 3, TeamAbbr: "LAL", Name: "Cara", Points: fp(30.0), Assists: fp(7.0)},
	}

	top := computeTopPlayers(players, "2025-26")

	// BOS gets three leaders, LAL only two since no one has rebounds
	require.Len(t, top, 5)

	byKey := map[string]models.TopPlayer{}
	for _, p := range top {
		byKey[p.TeamAbbr+"/"+p.Stat] = p
	}

	assert.Equal(t, "Alice", byKey["BOS/PTS"].PlayerName)
	assert.Equal(t, 27.4, byKey["BOS/PTS"].Value)
	assert.Equal(t, "Bob", byKey["BOS/AST"].PlayerName)
	assert.Equal(t, "Alice", byKey["BOS/REB"].PlayerName)
	assert.Equal(t, "Cara", byKey["LAL/PTS"].PlayerName)

	_, hasLALReb := byKey["LAL/REB"]
	assert.False(t, hasLALReb)

	assert.Equal(t, "2025-26", byKey["BOS/PTS"].Season)
	assert.Contains(t, byKey["BOS/PTS"].ImageURL, "1040x760/1.png")
}

func TestComputeTopPlayers_SkipsBlankTeam(t *testing.T) {
	players := []models.PlayerSeasonInput{
		{PlayerID: 1, TeamAbbr: "", Name: "Waived", Points: fp(40.0)},
	}
	assert.Empty(t, computeTopPlayers(players, "2025-26"))
}

func TestPlayersTable(t *testing.T) {
	players := []models.PlayerSeasonInput{
		{PlayerID: 1, TeamID: 10, Name: "Alice", TeamAbbr: "BOS", GamesPlayed: fp(50), Points: fp(25.5)},
		{PlayerID: 2, TeamID: 11, Name: "Bob", TeamAbbr: "LAL", GamesPlayed: fp(40)},
	}

	tbl := playersTable(players)
	require.Equal(t, 2, tbl.Len())

	names := tbl.Text(leaders.ColPlayerName)
	require.NotNil(t, names)
	assert.Equal(t, []string{"Alice", "Bob"}, names)

	pts := tbl.NumericOrMissing(leaders.ColPoints)
	assert.True(t, pts[0].Valid)
	assert.Equal(t, 25.5, pts[0].Float64)

	// Bob has no points reported; the cell stays invalid, not zero
	assert.False(t, pts[1].Valid)
}

func TestGamesTable(t *testing.T) {
	games := []*models.Game{
		{
			GameID:    "0022500001",
			GameDate:  time.Date(2025, 10, 21, 19, 30, 0, 0, time.UTC),
			GameTime:  "7:30 PM",
			HomeTeam:  "BOS",
			AwayTeam:  "NYK",
			Matchup:   "NYK @ BOS",
			HomeScore: sql.NullInt32{Int32: 110, Valid: true},
			AwayScore: sql.NullInt32{Int32: 105, Valid: true},
			Status:    models.StatusFinal,
		},
		{
			GameID:   "0022500002",
			GameDate: time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC),
			HomeTeam: "LAL",
			AwayTeam: "DEN",
			Matchup:  "DEN @ LAL",
			Status:   models.StatusUpcoming,
		},
	}

	tbl := gamesTable(games)
	require.Equal(t, 2, tbl.Len())

	assert.Equal(t, []string{"2025-10-21", "2025-10-22"}, tbl.Text("GAME_DATE_EST"))
	assert.Equal(t, []string{"F", ""}, tbl.Text("WL"))

	home := tbl.NumericOrMissing("HOME_PTS")
	assert.Equal(t, 110.0, home[0].Float64)
	assert.False(t, home[1].Valid)
}

func TestTeamsTable(t *testing.T) {
	standings := []models.TeamStandingInput{
		{TeamID: 1610612738, TeamName: "Boston Celtics", Wins: 40, Losses: 10},
	}

	tbl := teamsTable(standings)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, []string{"Boston Celtics"}, tbl.Text("TEAM_NAME"))

	ids := tbl.NumericOrMissing("TEAM_ID")
	assert.Equal(t, 1610612738.0, ids[0].Float64)
}

func TestRoundOneDecimal(t *testing.T) {
	assert.Equal(t, 27.4, roundOneDecimal(27.35))
	assert.Equal(t, 27.3, roundOneDecimal(27.34))
	assert.Equal(t, 30.0, roundOneDecimal(30.0))
}
