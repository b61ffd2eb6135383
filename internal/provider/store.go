// Package provider manages the on-disk snapshot store. Snapshots are CSV
// files written by the refresh pipeline and read by the API; readers cache
// each parsed snapshot and reload only when the file's mtime changes.
package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"nbakit/backend/internal/leaders"
	"nbakit/backend/internal/table"
)

// Snapshot file names under the data directory.
const (
	FileRosterMaster = "nba_roster_master.csv"
	FileGames        = "nba_games.csv"
	FileStandings    = "nba_standings.csv"
	FileTeams        = "nba_teams.csv"
	FileRosters      = "nba_rosters.csv"
	FileTopPlayers   = "nba_top_player_stats.csv"
)

// SnapshotFiles lists every snapshot the store manages, for health reporting.
var SnapshotFiles = []string{
	FileRosterMaster,
	FileGames,
	FileStandings,
	FileTeams,
	FileRosters,
	FileTopPlayers,
}

// Text columns per snapshot. Everything else parses as numeric.
var textColumns = map[string][]string{
	FileRosterMaster: leaders.RosterTextColumns,
	FileGames: {
		"GAME_DATE_EST", "GAME_TIME_EST", "GAME_ID", "MATCHUP",
		"HOME_TEAM", "AWAY_TEAM", "STATUS", "WL",
	},
	FileStandings: {
		"TeamName", "Conference", "ConferenceRecord",
		"Division", "DivisionRecord",
	},
	FileTeams: {"TEAM_NAME"},
	FileRosters: {
		"PLAYER_NAME", "JERSEY_NUMBER", "POSITION", "HEIGHT", "WEIGHT",
		"EXP", "SCHOOL", "HOW_ACQUIRED", "TEAM_NAME",
	},
	FileTopPlayers: {
		"TEAM_ABBREVIATION", "PLAYER_NAME", "STAT", "SEASON",
		"PLAYER_IMAGE_URL",
	},
}

type cached struct {
	mtime time.Time
	size  int64
	tbl   *table.Table
}

// Store reads and writes CSV snapshots under a single data directory.
// Safe for concurrent use.
type Store struct {
	dir string

	mu    sync.Mutex
	cache map[string]*cached
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &Store{dir: dir, cache: make(map[string]*cached)}, nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Exists reports whether a snapshot file is present on disk.
func (s *Store) Exists(name string) bool {
	info, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil && !info.IsDir()
}

// SeasonTable loads the roster master snapshot. Implements the table source
// for the leaders engine.
func (s *Store) SeasonTable(ctx context.Context) (*table.Table, error) {
	return s.Table(ctx, FileRosterMaster)
}

// Table loads a snapshot by name, reusing the cached parse when the file on
// disk has not changed since the previous load.
func (s *Store) Table(ctx context.Context, name string) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.cache[name]; ok && c.mtime.Equal(info.ModTime()) && c.size == info.Size() {
		return c.tbl, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", name, err)
	}
	defer f.Close()

	tbl, err := table.ReadCSV(f, textColumns[name])
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", name, err)
	}

	s.cache[name] = &cached{mtime: info.ModTime(), size: info.Size(), tbl: tbl}
	log.Debug().Str("snapshot", name).Int("rows", tbl.Len()).Msg("Loaded snapshot")
	return tbl, nil
}

// Save writes a snapshot atomically: a temp file in the same directory is
// renamed over the target so readers never see a partial file.
func (s *Store) Save(name string, tbl *table.Table) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot for %s: %w", name, err)
	}

	if err := tbl.WriteCSV(tmp, tbl.Columns()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close snapshot %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace snapshot %s: %w", name, err)
	}

	log.Info().Str("snapshot", name).Int("rows", tbl.Len()).Msg("Saved snapshot")
	return nil
}
