package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPlayerSeasonStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leaguedashplayerstats", r.URL.Path)
		assert.Equal(t, "2025-26", r.URL.Query().Get("Season"))
		assert.Equal(t, "PerGame", r.URL.Query().Get("PerMode"))
		assert.NotEmpty(t, r.Header.Get("Referer"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"resultSets": [{
				"name": "LeagueDashPlayerStats",
				"headers": ["PLAYER_ID", "PLAYER_NAME", "TEAM_ID", "TEAM_ABBREVIATION", "GP", "PTS", "FGA"],
				"rowSet": [
					[201939, "Stephen Curry", 1610612744, "GSW", 60, 26.8, 19.5],
					[1629029, "Luka Doncic", 1610612747, "LAL", 55, 31.2, null]
				]
			}]
		}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second)
	players, err := c.FetchPlayerSeasonStats(context.Background(), "2025-26")
	require.NoError(t, err)
	require.Len(t, players, 2)

	assert.Equal(t, int64(201939), players[0].PlayerID)
	assert.Equal(t, "Stephen Curry", players[0].Name)
	assert.Equal(t, "GSW", players[0].TeamAbbr)
	require.NotNil(t, players[0].Points)
	assert.Equal(t, 26.8, *players[0].Points)

	// Null cells and absent headers decode as nil, not zero
	assert.Nil(t, players[1].FieldGoalsAttempted)
	assert.Nil(t, players[1].Assists)
}

func TestFetchStandings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leaguestandings", r.URL.Path)
		w.Write([]byte(`{
			"resultSets": [{
				"headers": ["TeamID", "TeamName", "Conference", "ConferenceRecord", "Division", "DivisionRecord", "WINS", "LOSSES", "WinPCT"],
				"rowSet": [
					[1610612738, "Celtics", "East", "30-10", "Atlantic", "10-2", 45, 15, 0.75]
				]
			}]
		}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second)
	standings, err := c.FetchStandings(context.Background(), "2025-26")
	require.NoError(t, err)
	require.Len(t, standings, 1)

	assert.Equal(t, int64(1610612738), standings[0].TeamID)
	assert.Equal(t, "Celtics", standings[0].TeamName)
	assert.Equal(t, 45, standings[0].Wins)
	require.NotNil(t, standings[0].WinPct)
	assert.Equal(t, 0.75, *standings[0].WinPct)
}

func TestFetchSchedule(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/scheduleleaguev2", r.URL.Path)
		w.Write([]byte(`{
			"leagueSchedule": {
				"gameDates": [{
					"games": [{
						"gameId": "0022500001",
						"gameDateTimeEst": "2025-10-21T19:30:00",
						"gameStatusText": "Final",
						"homeTeam": {"teamName": "Celtics", "score": 120},
						"awayTeam": {"teamName": "Knicks", "score": 112}
					}]
				}]
			}
		}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second)
	games, err := c.FetchSchedule(context.Background(), "2025-26")
	require.NoError(t, err)
	require.Len(t, games, 1)

	assert.Equal(t, "0022500001", games[0].GameID)
	assert.Equal(t, "Celtics", games[0].HomeTeam)
	require.NotNil(t, games[0].HomeScore)
	assert.Equal(t, 120, *games[0].HomeScore)
	assert.Equal(t, "Final", games[0].StatusText)
}

func TestFetchTeamRoster(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/commonteamroster", r.URL.Path)
		assert.Equal(t, "1610612738", r.URL.Query().Get("TeamID"))
		w.Write([]byte(`{
			"resultSets": [{
				"headers": ["TeamID", "SEASON", "PLAYER", "NUM", "POSITION", "HEIGHT", "WEIGHT", "AGE", "EXP", "SCHOOL", "PLAYER_ID", "HOW_ACQUIRED"],
				"rowSet": [
					[1610612738, "2025", "Jayson Tatum", "0", "F", "6-8", "210", 27, "8", "Duke", 1628369, "Draft"],
					[1610612738, "2025", "New Guy", "", "", "", "", 0, "", "", 99, ""]
				]
			}]
		}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second)
	roster, err := c.FetchTeamRoster(context.Background(), 1610612738, "2025-26")
	require.NoError(t, err)
	require.Len(t, roster, 2)

	assert.Equal(t, "Jayson Tatum", roster[0].PlayerName)
	assert.Equal(t, int64(1628369), roster[0].PlayerID)
	assert.Equal(t, int64(1610612738), roster[0].TeamID)

	// Blank upstream fields are normalized to placeholders
	assert.Equal(t, "--", roster[1].JerseyNumber)
	assert.Equal(t, "Unknown", roster[1].Position)
	assert.Equal(t, "No Info", roster[1].HowAcquired)
}

func TestGet_RetriesOnThrottle(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"resultSets": [{"headers": [], "rowSet": []}]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second)
	c.retryDelay = 10 * time.Millisecond

	_, err := c.FetchStandings(context.Background(), "2025-26")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGet_FailsOnClientError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second)
	_, err := c.FetchStandings(context.Background(), "2025-26")
	require.Error(t, err)
	assert.Equal(t, 1, calls, "client errors are not retried")
}

func TestImageURLs(t *testing.T) {
	assert.Equal(t,
		"https://cdn.nba.com/headshots/nba/latest/1040x760/201939.png",
		PlayerImageURL(201939))
	assert.Equal(t,
		"https://cdn.nba.com/logos/nba/1610612738/global/L/logo.svg",
		TeamLogoURL(1610612738))
}
