package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	data := "PLAYER_NAME,GP,PTS\nAlice,10,25.5\nBob,,18.2\nCara,12,abc\n"

	tbl, err := ReadCSV(strings.NewReader(data), []string{"PLAYER_NAME"})
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Len())

	assert.Equal(t, []string{"Alice", "Bob", "Cara"}, tbl.Text("PLAYER_NAME"))

	gp := tbl.Numeric("GP")
	require.Len(t, gp, 3)
	assert.Equal(t, Num(10), gp[0])
	assert.False(t, gp[1].Valid, "blank value reads as invalid")

	pts := tbl.Numeric("PTS")
	assert.Equal(t, Num(18.2), pts[1])
	assert.False(t, pts[2].Valid, "non-numeric value reads as invalid")
}

func TestReadCSV_ShortRows(t *testing.T) {
	// Rows missing trailing fields still parse; the absent cells are invalid
	data := "PLAYER_NAME,GP,PTS\nAlice,10\nBob,8,12.5\n"

	tbl, err := ReadCSV(strings.NewReader(data), []string{"PLAYER_NAME"})
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())

	pts := tbl.Numeric("PTS")
	assert.False(t, pts[0].Valid)
	assert.Equal(t, Num(12.5), pts[1])
}

func TestReadCSV_NoHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), nil)
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	tbl := New(2)
	require.NoError(t, tbl.SetText("PLAYER_NAME", []string{"Alice", "Bob"}))
	require.NoError(t, tbl.SetNumeric("GP", []Cell{Num(10), Invalid()}))
	require.NoError(t, tbl.SetNumeric("PTS", []Cell{Num(25.5), Num(18)}))

	var buf strings.Builder
	err := tbl.WriteCSV(&buf, []string{"PLAYER_NAME", "GP", "PTS", "AST"})
	require.NoError(t, err)

	// AST is absent and skipped, the invalid GP cell writes as empty
	assert.Equal(t, "PLAYER_NAME,GP,PTS\nAlice,10,25.5\nBob,,18\n", buf.String())
}

func TestCSVRoundTrip(t *testing.T) {
	tbl := New(2)
	require.NoError(t, tbl.SetText("PLAYER_NAME", []string{"Alice", "Bob"}))
	require.NoError(t, tbl.SetNumeric("PTS", []Cell{Num(25.5), Invalid()}))

	var buf strings.Builder
	require.NoError(t, tbl.WriteCSV(&buf, []string{"PLAYER_NAME", "PTS"}))

	back, err := ReadCSV(strings.NewReader(buf.String()), []string{"PLAYER_NAME"})
	require.NoError(t, err)
	assert.Equal(t, tbl.Text("PLAYER_NAME"), back.Text("PLAYER_NAME"))
	assert.Equal(t, tbl.Numeric("PTS"), back.Numeric("PTS"))
}
