package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nbakit/backend/internal/table"
)

func writeSnapshot(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

func TestStore_SeasonTable(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	writeSnapshot(t, dir, FileRosterMaster,
		"PLAYER_NAME,TEAM_ABBREVIATION,GP,PTS\nAlice,BOS,10,25.5\n")

	tbl, err := store.SeasonTable(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, []string{"Alice"}, tbl.Text("PLAYER_NAME"))
	assert.Equal(t, table.Num(25.5), tbl.Numeric("PTS")[0])
}

func TestStore_SeasonTableMissing(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.SeasonTable(context.Background())
	assert.Error(t, err)
}

func TestStore_TableCaching(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, FileRosterMaster)
	writeSnapshot(t, dir, FileRosterMaster, "PLAYER_NAME,GP\nAlice,10\n")

	first, err := store.Table(context.Background(), FileRosterMaster)
	require.NoError(t, err)

	// Unchanged file returns the same parse
	again, err := store.Table(context.Background(), FileRosterMaster)
	require.NoError(t, err)
	assert.Same(t, first, again)

	// A rewrite with a newer mtime is picked up
	writeSnapshot(t, dir, FileRosterMaster, "PLAYER_NAME,GP\nAlice,10\nBob,8\n")
	newTime := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, newTime, newTime))

	reloaded, err := store.Table(context.Background(), FileRosterMaster)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Len())
}

func TestStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	tbl := table.New(2)
	require.NoError(t, tbl.SetText("TEAM_NAME", []string{"Celtics", "Lakers"}))
	require.NoError(t, tbl.SetNumeric("TEAM_ID", []table.Cell{table.Num(1), table.Num(2)}))

	require.NoError(t, store.Save(FileTeams, tbl))
	assert.True(t, store.Exists(FileTeams))

	back, err := store.Table(context.Background(), FileTeams)
	require.NoError(t, err)
	assert.Equal(t, []string{"Celtics", "Lakers"}, back.Text("TEAM_NAME"))

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRecords(t *testing.T) {
	tbl := table.New(2)
	require.NoError(t, tbl.SetText("PLAYER_NAME", []string{"Alice", "Bob"}))
	require.NoError(t, tbl.SetNumeric("PTS", []table.Cell{table.Num(25.5), table.Invalid()}))

	recs := Records(tbl)
	require.Len(t, recs, 2)
	assert.Equal(t, map[string]any{"PLAYER_NAME": "Alice", "PTS": 25.5}, recs[0])
	assert.Equal(t, map[string]any{"PLAYER_NAME": "Bob", "PTS": nil}, recs[1])
}

func TestWhereNumeric(t *testing.T) {
	tbl := table.New(3)
	require.NoError(t, tbl.SetNumeric("TEAM_ID", []table.Cell{
		table.Num(1), table.Num(2), table.Num(1),
	}))
	require.NoError(t, tbl.SetText("PLAYER_NAME", []string{"a", "b", "c"}))

	out := WhereNumeric(tbl, "TEAM_ID", 1)
	assert.Equal(t, []string{"a", "c"}, out.Text("PLAYER_NAME"))

	assert.Equal(t, 0, WhereNumeric(tbl, "MISSING", 1).Len())
}

func TestWhereText(t *testing.T) {
	tbl := table.New(2)
	require.NoError(t, tbl.SetText("GAME_DATE_EST", []string{"2026-01-01", "2026-01-02"}))
	require.NoError(t, tbl.SetText("GAME_ID", []string{"001", "002"}))

	out := WhereText(tbl, "GAME_DATE_EST", "2026-01-02")
	assert.Equal(t, []string{"002"}, out.Text("GAME_ID"))
}
