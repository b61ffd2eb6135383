// Package scheduler runs the snapshot refresh pipeline on a nightly cron.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"nbakit/backend/internal/client"
	"nbakit/backend/internal/config"
	"nbakit/backend/internal/leaders"
	"nbakit/backend/internal/metrics"
	"nbakit/backend/internal/models"
	"nbakit/backend/internal/provider"
	"nbakit/backend/internal/repository"
	"nbakit/backend/internal/table"
)

// Scheduler manages the background refresh of snapshots and, when a
// database is configured, the mirrored season tables.
type Scheduler struct {
	cfg    *config.Config
	client *client.Client
	store  *provider.Store
	db     *repository.Database // nil when the database is disabled

	cron     *cron.Cron
	stopChan chan struct{}
}

// NewScheduler creates a new scheduler instance. db may be nil.
func NewScheduler(cfg *config.Config, client *client.Client, store *provider.Store, db *repository.Database) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		client:   client,
		store:    store,
		db:       db,
		cron:     cron.New(),
		stopChan: make(chan struct{}),
	}
}

// Start schedules the nightly refresh
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	if _, err := s.cron.AddFunc(s.cfg.NightlyRefreshCron, func() {
		log.Info().Msg("Running nightly refresh...")
		if err := s.RefreshAll(ctx); err != nil {
			log.Error().Err(err).Msg("Nightly refresh failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule nightly refresh: %w", err)
	}

	s.cron.Start()
	log.Info().
		Str("schedule", s.cfg.NightlyRefreshCron).
		Msg("Nightly refresh scheduled")

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")

	if s.cron != nil {
		s.cron.Stop()
	}

	close(s.stopChan)
	log.Info().Msg("Scheduler stopped")
}

// RefreshAll refreshes every snapshot. Individual dataset failures do not
// stop the others; all errors are reported together.
func (s *Scheduler) RefreshAll(ctx context.Context) error {
	season := s.cfg.CurrentSeason()
	start := time.Now()
	log.Info().Str("season", season).Msg("Refreshing all snapshots")

	var errs []error

	standings, err := s.refreshStandings(ctx, season)
	if err != nil {
		errs = append(errs, fmt.Errorf("standings: %w", err))
	}

	if err := s.refreshPlayers(ctx, season); err != nil {
		errs = append(errs, fmt.Errorf("players: %w", err))
	}

	if err := s.refreshSchedule(ctx, season); err != nil {
		errs = append(errs, fmt.Errorf("schedule: %w", err))
	}

	if len(standings) > 0 {
		if err := s.refreshRosters(ctx, season, standings); err != nil {
			errs = append(errs, fmt.Errorf("rosters: %w", err))
		}
	}

	log.Info().
		Dur("duration", time.Since(start)).
		Int("failures", len(errs)).
		Msg("Snapshot refresh complete")

	return errors.Join(errs...)
}

// refreshPlayers fetches league-wide per-game averages and writes the
// roster master and top players snapshots.
func (s *Scheduler) refreshPlayers(ctx context.Context, season string) error {
	start := time.Now()

	players, err := s.client.FetchPlayerSeasonStats(ctx, season)
	if err != nil {
		metrics.RecordRefresh("players", "error", time.Since(start).Seconds())
		return err
	}
	log.Info().Int("count", len(players)).Msg("Player season stats fetched")

	if err := s.store.Save(provider.FileRosterMaster, playersTable(players)); err != nil {
		metrics.RecordRefresh("players", "error", time.Since(start).Seconds())
		return err
	}

	top := computeTopPlayers(players, season)
	if err := s.store.Save(provider.FileTopPlayers, topPlayersTable(top)); err != nil {
		metrics.RecordRefresh("players", "error", time.Since(start).Seconds())
		return err
	}

	if s.db != nil {
		seasonYear := config.SeasonStartYear(season)
		rows := make([]*models.PlayerSeason, 0, len(players))
		for i := range players {
			rows = append(rows, players[i].ToPlayerSeason(seasonYear))
		}
		if err := s.db.Players.UpsertBatch(ctx, rows); err != nil {
			log.Error().Err(err).Msg("Failed to mirror players to database")
		}
	}

	metrics.RecordRefresh("players", "success", time.Since(start).Seconds())
	metrics.PlayersIngested.Set(float64(len(players)))
	return nil
}

// refreshSchedule fetches the full season schedule and writes the games
// snapshot.
func (s *Scheduler) refreshSchedule(ctx context.Context, season string) error {
	start := time.Now()

	inputs, err := s.client.FetchSchedule(ctx, season)
	if err != nil {
		metrics.RecordRefresh("schedule", "error", time.Since(start).Seconds())
		return err
	}
	log.Info().Int("count", len(inputs)).Msg("Schedule fetched")

	seasonYear := config.SeasonStartYear(season)
	games := make([]*models.Game, 0, len(inputs))
	for i := range inputs {
		games = append(games, inputs[i].ToGame(seasonYear))
	}

	if err := s.store.Save(provider.FileGames, gamesTable(games)); err != nil {
		metrics.RecordRefresh("schedule", "error", time.Since(start).Seconds())
		return err
	}

	if s.db != nil {
		if err := s.db.Games.UpsertBatch(ctx, games); err != nil {
			log.Error().Err(err).Msg("Failed to mirror games to database")
		}
	}

	metrics.RecordRefresh("schedule", "success", time.Since(start).Seconds())
	metrics.GamesIngested.Set(float64(len(games)))
	return nil
}

// refreshStandings fetches standings and writes the standings and teams
// snapshots. Returns the standings so the roster refresh can reuse the
// team list.
func (s *Scheduler) refreshStandings(ctx context.Context, season string) ([]models.TeamStandingInput, error) {
	start := time.Now()

	standings, err := s.client.FetchStandings(ctx, season)
	if err != nil {
		metrics.RecordRefresh("standings", "error", time.Since(start).Seconds())
		return nil, err
	}
	log.Info().Int("count", len(standings)).Msg("Standings fetched")

	if err := s.store.Save(provider.FileStandings, standingsTable(standings)); err != nil {
		metrics.RecordRefresh("standings", "error", time.Since(start).Seconds())
		return nil, err
	}

	if err := s.store.Save(provider.FileTeams, teamsTable(standings)); err != nil {
		metrics.RecordRefresh("standings", "error", time.Since(start).Seconds())
		return nil, err
	}

	if s.db != nil {
		seasonYear := config.SeasonStartYear(season)
		rows := make([]*models.TeamStanding, 0, len(standings))
		for i := range standings {
			rows = append(rows, standings[i].ToTeamStanding(seasonYear))
		}
		if err := s.db.Standings.UpsertBatch(ctx, rows); err != nil {
			log.Error().Err(err).Msg("Failed to mirror standings to database")
		}
	}

	metrics.RecordRefresh("standings", "success", time.Since(start).Seconds())
	return standings, nil
}

// refreshRosters fetches each team's roster sequentially. The per-team
// endpoint throttles hard, so a failed team is skipped rather than failing
// the whole snapshot.
func (s *Scheduler) refreshRosters(ctx context.Context, season string, standings []models.TeamStandingInput) error {
	start := time.Now()

	var all []models.RosterEntry
	for _, team := range standings {
		roster, err := s.client.FetchTeamRoster(ctx, team.TeamID, season)
		if err != nil {
			log.Error().Err(err).Int64("team_id", team.TeamID).Msg("Failed to fetch roster")
			metrics.RecordError("scheduler", "roster_fetch")
			continue
		}
		for i := range roster {
			roster[i].TeamName = team.TeamName
			roster[i].Season = config.SeasonStartYear(season)
		}
		all = append(all, roster...)
	}

	if len(all) == 0 {
		metrics.RecordRefresh("rosters", "error", time.Since(start).Seconds())
		return fmt.Errorf("no rosters fetched")
	}

	sort.SliceStable(all, func(a, b int) bool {
		if all[a].TeamName != all[b].TeamName {
			return all[a].TeamName < all[b].TeamName
		}
		return all[a].PlayerName < all[b].PlayerName
	})

	if err := s.store.Save(provider.FileRosters, rostersTable(all)); err != nil {
		metrics.RecordRefresh("rosters", "error", time.Since(start).Seconds())
		return err
	}

	metrics.RecordRefresh("rosters", "success", time.Since(start).Seconds())
	return nil
}

// computeTopPlayers returns each team's leader in points, assists and
// rebounds by per-game average. Ties keep input order.
func computeTopPlayers(players []models.PlayerSeasonInput, season string) []models.TopPlayer {
	type statPick struct {
		name  string
		value func(p *models.PlayerSeasonInput) *float64
	}
	stats := []statPick{
		{"PTS", func(p *models.PlayerSeasonInput) *float64 { return p.Points }},
		{"AST", func(p *models.PlayerSeasonInput) *float64 { return p.Assists }},
		{"REB", func(p *models.PlayerSeasonInput) *float64 { return p.Rebounds }},
	}

	byTeam := make(map[string][]*models.PlayerSeasonInput)
	var teams []string
	for i := range players {
		abbr := players[i].TeamAbbr
		if abbr == "" {
			continue
		}
		if _, ok := byTeam[abbr]; !ok {
			teams = append(teams, abbr)
		}
		byTeam[abbr] = append(byTeam[abbr], &players[i])
	}
	sort.Strings(teams)

	var top []models.TopPlayer
	for _, abbr := range teams {
		for _, stat := range stats {
			var best *models.PlayerSeasonInput
			var bestValue float64
			for _, p := range byTeam[abbr] {
				v := stat.value(p)
				if v == nil {
					continue
				}
				if best == nil || *v > bestValue {
					best = p
					bestValue = *v
				}
			}
			if best == nil {
				continue
			}
			top = append(top, models.TopPlayer{
				TeamAbbr:   abbr,
				PlayerID:   best.PlayerID,
				PlayerName: best.Name,
				Stat:       stat.name,
				Value:      roundOneDecimal(bestValue),
				Season:     season,
				ImageURL:   client.PlayerImageURL(best.PlayerID),
			})
		}
	}

	return top
}

func roundOneDecimal(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

// Snapshot table builders. Each writes the column set the API serves.

func playersTable(players []models.PlayerSeasonInput) *table.Table {
	n := len(players)
	t := table.New(n)

	names := make([]string, n)
	abbrs := make([]string, n)
	ids := make([]table.Cell, n)
	teamIDs := make([]table.Cell, n)

	numeric := map[string][]table.Cell{}
	for _, col := range []string{
		leaders.ColGamesPlayed, leaders.ColMinutes, leaders.ColPoints,
		leaders.ColRebounds, leaders.ColOffRebounds, leaders.ColDefRebounds,
		leaders.ColAssists, leaders.ColSteals, leaders.ColBlocks, leaders.ColTurnovers,
		leaders.ColFieldGoalsMade, leaders.ColFieldGoalsAttempted,
		leaders.ColThreesMade, leaders.ColThreesAttempted,
		leaders.ColFreeThrowsMade, leaders.ColFreeThrowsAttempted,
	} {
		numeric[col] = make([]table.Cell, n)
	}

	for i := range players {
		p := &players[i]
		names[i] = p.Name
		abbrs[i] = p.TeamAbbr
		ids[i] = table.Num(float64(p.PlayerID))
		teamIDs[i] = table.Num(float64(p.TeamID))

		setPtr(numeric[leaders.ColGamesPlayed], i, p.GamesPlayed)
		setPtr(numeric[leaders.ColMinutes], i, p.Minutes)
		setPtr(numeric[leaders.ColPoints], i, p.Points)
		setPtr(numeric[leaders.ColRebounds], i, p.Rebounds)
		setPtr(numeric[leaders.ColOffRebounds], i, p.OffRebounds)
		setPtr(numeric[leaders.ColDefRebounds], i, p.DefRebounds)
		setPtr(numeric[leaders.ColAssists], i, p.Assists)
		setPtr(numeric[leaders.ColSteals], i, p.Steals)
		setPtr(numeric[leaders.ColBlocks], i, p.Blocks)
		setPtr(numeric[leaders.ColTurnovers], i, p.Turnovers)
		setPtr(numeric[leaders.ColFieldGoalsMade], i, p.FieldGoalsMade)
		setPtr(numeric[leaders.ColFieldGoalsAttempted], i, p.FieldGoalsAttempted)
		setPtr(numeric[leaders.ColThreesMade], i, p.ThreesMade)
		setPtr(numeric[leaders.ColThreesAttempted], i, p.ThreesAttempted)
		setPtr(numeric[leaders.ColFreeThrowsMade], i, p.FreeThrowsMade)
		setPtr(numeric[leaders.ColFreeThrowsAttempted], i, p.FreeThrowsAttempted)
	}

	t.SetNumeric(leaders.ColPlayerID, ids)
	t.SetText(leaders.ColPlayerName, names)
	t.SetNumeric(leaders.ColTeamID, teamIDs)
	t.SetText(leaders.ColTeamAbbreviation, abbrs)
	for _, name := range leaders.RosterColumnOrder {
		if cells, ok := numeric[name]; ok {
			t.SetNumeric(name, cells)
		}
	}

	return t
}

func setPtr(cells []table.Cell, i int, v *float64) {
	if v != nil {
		cells[i] = table.Num(*v)
	}
}

func gamesTable(games []*models.Game) *table.Table {
	n := len(games)
	t := table.New(n)

	dates := make([]string, n)
	times := make([]string, n)
	ids := make([]string, n)
	matchups := make([]string, n)
	home := make([]string, n)
	away := make([]string, n)
	homePts := make([]table.Cell, n)
	awayPts := make([]table.Cell, n)
	status := make([]string, n)
	wl := make([]string, n)

	for i, g := range games {
		if !g.GameDate.IsZero() {
			dates[i] = g.GameDate.Format("2006-01-02")
		}
		times[i] = g.GameTime
		ids[i] = g.GameID
		matchups[i] = g.Matchup
		home[i] = g.HomeTeam
		away[i] = g.AwayTeam
		if g.HomeScore.Valid {
			homePts[i] = table.Num(float64(g.HomeScore.Int32))
		}
		if g.AwayScore.Valid {
			awayPts[i] = table.Num(float64(g.AwayScore.Int32))
		}
		status[i] = g.Status
		if g.Status == models.StatusFinal {
			wl[i] = "F"
		}
	}

	t.SetText("GAME_DATE_EST", dates)
	t.SetText("GAME_TIME_EST", times)
	t.SetText("GAME_ID", ids)
	t.SetText("MATCHUP", matchups)
	t.SetText("HOME_TEAM", home)
	t.SetText("AWAY_TEAM", away)
	t.SetNumeric("HOME_PTS", homePts)
	t.SetNumeric("AWAY_PTS", awayPts)
	t.SetText("STATUS", status)
	t.SetText("WL", wl)

	return t
}

func standingsTable(standings []models.TeamStandingInput) *table.Table {
	n := len(standings)
	t := table.New(n)

	teamIDs := make([]table.Cell, n)
	names := make([]string, n)
	conference := make([]string, n)
	confRecord := make([]string, n)
	division := make([]string, n)
	divRecord := make([]string, n)
	wins := make([]table.Cell, n)
	losses := make([]table.Cell, n)
	winPct := make([]table.Cell, n)

	for i, s := range standings {
		teamIDs[i] = table.Num(float64(s.TeamID))
		names[i] = s.TeamName
		conference[i] = s.Conference
		confRecord[i] = s.ConferenceRecord
		division[i] = s.Division
		divRecord[i] = s.DivisionRecord
		wins[i] = table.Num(float64(s.Wins))
		losses[i] = table.Num(float64(s.Losses))
		setPtr(winPct, i, s.WinPct)
	}

	t.SetNumeric("TeamID", teamIDs)
	t.SetText("TeamName", names)
	t.SetText("Conference", conference)
	t.SetText("ConferenceRecord", confRecord)
	t.SetText("Division", division)
	t.SetText("DivisionRecord", divRecord)
	t.SetNumeric("WINS", wins)
	t.SetNumeric("LOSSES", losses)
	t.SetNumeric("WinPCT", winPct)

	return t
}

func teamsTable(standings []models.TeamStandingInput) *table.Table {
	n := len(standings)
	t := table.New(n)

	ids := make([]table.Cell, n)
	names := make([]string, n)
	for i, s := range standings {
		ids[i] = table.Num(float64(s.TeamID))
		names[i] = s.TeamName
	}

	t.SetNumeric("TEAM_ID", ids)
	t.SetText("TEAM_NAME", names)
	return t
}

func rostersTable(roster []models.RosterEntry) *table.Table {
	n := len(roster)
	t := table.New(n)

	teamIDs := make([]table.Cell, n)
	teamNames := make([]string, n)
	seasons := make([]table.Cell, n)
	playerIDs := make([]table.Cell, n)
	players := make([]string, n)
	nums := make([]string, n)
	positions := make([]string, n)
	heights := make([]string, n)
	weights := make([]string, n)
	ages := make([]table.Cell, n)
	exps := make([]string, n)
	schools := make([]string, n)
	acquired := make([]string, n)

	for i, r := range roster {
		teamIDs[i] = table.Num(float64(r.TeamID))
		teamNames[i] = r.TeamName
		seasons[i] = table.Num(float64(r.Season))
		playerIDs[i] = table.Num(float64(r.PlayerID))
		players[i] = r.PlayerName
		nums[i] = r.JerseyNumber
		positions[i] = r.Position
		heights[i] = r.Height
		weights[i] = r.Weight
		ages[i] = table.Num(float64(r.Age))
		exps[i] = r.Experience
		schools[i] = r.School
		acquired[i] = r.HowAcquired
	}

	t.SetNumeric("TEAM_ID", teamIDs)
	t.SetText("TEAM_NAME", teamNames)
	t.SetNumeric("SEASON", seasons)
	t.SetNumeric("PLAYER_ID", playerIDs)
	t.SetText("PLAYER_NAME", players)
	t.SetText("JERSEY_NUMBER", nums)
	t.SetText("POSITION", positions)
	t.SetText("HEIGHT", heights)
	t.SetText("WEIGHT", weights)
	t.SetNumeric("AGE", ages)
	t.SetText("EXP", exps)
	t.SetText("SCHOOL", schools)
	t.SetText("HOW_ACQUIRED", acquired)

	return t
}

func topPlayersTable(top []models.TopPlayer) *table.Table {
	n := len(top)
	t := table.New(n)

	abbrs := make([]string, n)
	ids := make([]table.Cell, n)
	names := make([]string, n)
	stats := make([]string, n)
	values := make([]table.Cell, n)
	seasons := make([]string, n)
	images := make([]string, n)

	for i, p := range top {
		abbrs[i] = p.TeamAbbr
		ids[i] = table.Num(float64(p.PlayerID))
		names[i] = p.PlayerName
		stats[i] = p.Stat
		values[i] = table.Num(p.Value)
		seasons[i] = p.Season
		images[i] = p.ImageURL
	}

	t.SetText("TEAM_ABBREVIATION", abbrs)
	t.SetNumeric("PLAYER_ID", ids)
	t.SetText("PLAYER_NAME", names)
	t.SetText("STAT", stats)
	t.SetNumeric("VALUE", values)
	t.SetText("SEASON", seasons)
	t.SetText("PLAYER_IMAGE_URL", images)

	return t
}
