// Package client talks to the stats.nba.com API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"nbakit/backend/internal/metrics"
	"nbakit/backend/internal/models"
)

const (
	// The stats API rejects requests without browser-like headers.
	refererHeader   = "https://www.nba.com/"
	userAgentHeader = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client is the stats.nba.com API client
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter chan struct{} // Rate limiting semaphore
	maxRetries  int
	retryDelay  time.Duration
}

// NewClient creates a new stats.nba.com client. The concurrency cap is kept
// low because the stats API throttles aggressively.
func NewClient(baseURL string, timeout time.Duration) *Client {
	rateLimiter := make(chan struct{}, 4)
	for i := 0; i < 4; i++ {
		rateLimiter <- struct{}{}
	}

	return &Client{
		baseURL:     baseURL,
		rateLimiter: rateLimiter,
		maxRetries:  3,
		retryDelay:  1 * time.Second,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// get performs a GET request with retry logic and rate limiting
func (c *Client) get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, path)
	start := time.Now()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s
			backoff := c.retryDelay * time.Duration(1<<uint(attempt-1))
			log.Info().
				Str("url", url).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("Retrying API request after backoff")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		// Rate limiting: acquire semaphore
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.rateLimiter:
			defer func() { c.rateLimiter <- struct{}{} }()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Accept", "application/json")
		req.Header.Set("Referer", refererHeader)
		req.Header.Set("User-Agent", userAgentHeader)

		if len(params) > 0 {
			q := req.URL.Query()
			for key, value := range params {
				q.Add(key, value)
			}
			req.URL.RawQuery = q.Encode()
		}

		log.Debug().
			Str("url", url).
			Int("attempt", attempt+1).
			Msg("Making API request")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("API request failed: %w", err)
			if attempt < c.maxRetries {
				continue
			}
			return nil, lastErr
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)
			if attempt < c.maxRetries {
				continue
			}
			return nil, lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK:
			log.Debug().
				Str("url", url).
				Int("status", resp.StatusCode).
				Int("size", len(body)).
				Msg("API request successful")
			metrics.RecordAPICall(path, "success", time.Since(start).Seconds())
			return body, nil

		case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			lastErr = fmt.Errorf("API returned retryable status %d", resp.StatusCode)
			if attempt < c.maxRetries {
				log.Warn().
					Str("url", url).
					Int("status", resp.StatusCode).
					Int("attempt", attempt+1).
					Msg("Received retryable error, will retry")
				continue
			}
			metrics.RecordAPICall(path, "error", time.Since(start).Seconds())
			return nil, lastErr

		default:
			metrics.RecordAPICall(path, "error", time.Since(start).Seconds())
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
	}

	metrics.RecordAPICall(path, "error", time.Since(start).Seconds())
	return nil, lastErr
}

// resultSet is the tabular payload shape most stats endpoints return.
type resultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

type statsResponse struct {
	ResultSets []resultSet `json:"resultSets"`
}

// firstResultSet decodes a stats response and returns its first result set.
func firstResultSet(body []byte) (*resultSet, error) {
	var resp statsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats response: %w", err)
	}
	if len(resp.ResultSets) == 0 {
		return nil, fmt.Errorf("stats response has no result sets")
	}
	return &resp.ResultSets[0], nil
}

// column returns the index of a header, or -1 when absent.
func (rs *resultSet) column(name string) int {
	for i, h := range rs.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

func rowFloat(row []any, idx int) *float64 {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	if v, ok := row[idx].(float64); ok {
		return &v
	}
	return nil
}

func rowString(row []any, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	if v, ok := row[idx].(string); ok {
		return v
	}
	return ""
}

func rowInt64(row []any, idx int) int64 {
	if v := rowFloat(row, idx); v != nil {
		return int64(*v)
	}
	return 0
}

// FetchPlayerSeasonStats fetches league-wide per-game averages for a season
// string like "2025-26".
func (c *Client) FetchPlayerSeasonStats(ctx context.Context, season string) ([]models.PlayerSeasonInput, error) {
	body, err := c.get(ctx, "leaguedashplayerstats", map[string]string{
		"Season":         season,
		"SeasonType":     "Regular Season",
		"PerMode":        "PerGame",
		"MeasureType":    "Base",
		"LeagueID":       "00",
		"PlusMinus":      "N",
		"PaceAdjust":     "N",
		"Rank":           "N",
		"LastNGames":     "0",
		"Month":          "0",
		"OpponentTeamID": "0",
		"Period":         "0",
		"TeamID":         "0",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch player season stats: %w", err)
	}

	rs, err := firstResultSet(body)
	if err != nil {
		return nil, fmt.Errorf("player season stats: %w", err)
	}

	cols := map[string]int{}
	for _, name := range []string{
		"PLAYER_ID", "PLAYER_NAME", "TEAM_ID", "TEAM_ABBREVIATION",
		"GP", "MIN", "PTS", "REB", "OREB", "DREB", "AST", "STL", "BLK", "TOV",
		"FGM", "FGA", "FG3M", "FG3A", "FTM", "FTA",
	} {
		cols[name] = rs.column(name)
	}

	players := make([]models.PlayerSeasonInput, 0, len(rs.RowSet))
	for _, row := range rs.RowSet {
		players = append(players, models.PlayerSeasonInput{
			PlayerID: rowInt64(row, cols["PLAYER_ID"]),
			TeamID:   rowInt64(row, cols["TEAM_ID"]),
			Name:     rowString(row, cols["PLAYER_NAME"]),
			TeamAbbr: rowString(row, cols["TEAM_ABBREVIATION"]),

			GamesPlayed: rowFloat(row, cols["GP"]),
			Minutes:     rowFloat(row, cols["MIN"]),
			Points:      rowFloat(row, cols["PTS"]),
			Rebounds:    rowFloat(row, cols["REB"]),
			OffRebounds: rowFloat(row, cols["OREB"]),
			DefRebounds: rowFloat(row, cols["DREB"]),
			Assists:     rowFloat(row, cols["AST"]),
			Steals:      rowFloat(row, cols["STL"]),
			Blocks:      rowFloat(row, cols["BLK"]),
			Turnovers:   rowFloat(row, cols["TOV"]),

			FieldGoalsMade:      rowFloat(row, cols["FGM"]),
			FieldGoalsAttempted: rowFloat(row, cols["FGA"]),
			ThreesMade:          rowFloat(row, cols["FG3M"]),
			ThreesAttempted:     rowFloat(row, cols["FG3A"]),
			FreeThrowsMade:      rowFloat(row, cols["FTM"]),
			FreeThrowsAttempted: rowFloat(row, cols["FTA"]),
		})
	}

	return players, nil
}

// FetchStandings fetches current league standings for a season.
func (c *Client) FetchStandings(ctx context.Context, season string) ([]models.TeamStandingInput, error) {
	body, err := c.get(ctx, "leaguestandings", map[string]string{
		"Season":     season,
		"SeasonType": "Regular Season",
		"LeagueID":   "00",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch standings: %w", err)
	}

	rs, err := firstResultSet(body)
	if err != nil {
		return nil, fmt.Errorf("standings: %w", err)
	}

	teamID := rs.column("TeamID")
	teamName := rs.column("TeamName")
	conference := rs.column("Conference")
	confRecord := rs.column("ConferenceRecord")
	division := rs.column("Division")
	divRecord := rs.column("DivisionRecord")
	wins := rs.column("WINS")
	losses := rs.column("LOSSES")
	winPct := rs.column("WinPCT")

	standings := make([]models.TeamStandingInput, 0, len(rs.RowSet))
	for _, row := range rs.RowSet {
		standings = append(standings, models.TeamStandingInput{
			TeamID:           rowInt64(row, teamID),
			TeamName:         rowString(row, teamName),
			Conference:       rowString(row, conference),
			ConferenceRecord: rowString(row, confRecord),
			Division:         rowString(row, division),
			DivisionRecord:   rowString(row, divRecord),
			Wins:             int(rowInt64(row, wins)),
			Losses:           int(rowInt64(row, losses)),
			WinPct:           rowFloat(row, winPct),
		})
	}

	return standings, nil
}

// scheduleResponse is the nested shape of the scheduleleaguev2 endpoint,
// which does not use the resultSets envelope.
type scheduleResponse struct {
	LeagueSchedule struct {
		GameDates []struct {
			Games []scheduleGame `json:"games"`
		} `json:"gameDates"`
	} `json:"leagueSchedule"`
}

type scheduleGame struct {
	GameID          string `json:"gameId"`
	GameDateTimeEst string `json:"gameDateTimeEst"`
	GameStatusText  string `json:"gameStatusText"`
	HomeTeam        struct {
		TeamName string `json:"teamName"`
		Score    *int   `json:"score"`
	} `json:"homeTeam"`
	AwayTeam struct {
		TeamName string `json:"teamName"`
		Score    *int   `json:"score"`
	} `json:"awayTeam"`
}

// FetchSchedule fetches the full season schedule, finished and future games.
func (c *Client) FetchSchedule(ctx context.Context, season string) ([]models.GameInput, error) {
	body, err := c.get(ctx, "scheduleleaguev2", map[string]string{
		"Season":   season,
		"LeagueID": "00",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	var resp scheduleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schedule: %w", err)
	}

	var games []models.GameInput
	for _, date := range resp.LeagueSchedule.GameDates {
		for _, g := range date.Games {
			games = append(games, models.GameInput{
				GameID:     g.GameID,
				DateTime:   g.GameDateTimeEst,
				HomeTeam:   g.HomeTeam.TeamName,
				AwayTeam:   g.AwayTeam.TeamName,
				HomeScore:  g.HomeTeam.Score,
				AwayScore:  g.AwayTeam.Score,
				StatusText: g.GameStatusText,
			})
		}
	}

	return games, nil
}

// FetchTeamRoster fetches the current roster for one team.
func (c *Client) FetchTeamRoster(ctx context.Context, teamID int64, season string) ([]models.RosterEntry, error) {
	body, err := c.get(ctx, "commonteamroster", map[string]string{
		"TeamID":   fmt.Sprintf("%d", teamID),
		"Season":   season,
		"LeagueID": "00",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster for team %d: %w", teamID, err)
	}

	rs, err := firstResultSet(body)
	if err != nil {
		return nil, fmt.Errorf("roster for team %d: %w", teamID, err)
	}

	player := rs.column("PLAYER")
	playerID := rs.column("PLAYER_ID")
	num := rs.column("NUM")
	position := rs.column("POSITION")
	height := rs.column("HEIGHT")
	weight := rs.column("WEIGHT")
	age := rs.column("AGE")
	exp := rs.column("EXP")
	school := rs.column("SCHOOL")
	acquired := rs.column("HOW_ACQUIRED")

	roster := make([]models.RosterEntry, 0, len(rs.RowSet))
	for _, row := range rs.RowSet {
		entry := models.RosterEntry{
			TeamID:       teamID,
			PlayerID:     rowInt64(row, playerID),
			PlayerName:   rowString(row, player),
			JerseyNumber: rowString(row, num),
			Position:     rowString(row, position),
			Height:       rowString(row, height),
			Weight:       rowString(row, weight),
			Age:          int(rowInt64(row, age)),
			Experience:   rowString(row, exp),
			School:       rowString(row, school),
			HowAcquired:  rowString(row, acquired),
		}
		entry.Normalize()
		roster = append(roster, entry)
	}

	return roster, nil
}

// PlayerImageURL returns the CDN headshot URL for a player.
func PlayerImageURL(playerID int64) string {
	return fmt.Sprintf("https://cdn.nba.com/headshots/nba/latest/1040x760/%d.png", playerID)
}

// TeamLogoURL returns the CDN logo URL for a team.
func TeamLogoURL(teamID int64) string {
	return fmt.Sprintf("https://cdn.nba.com/logos/nba/%d/global/L/logo.svg", teamID)
}
