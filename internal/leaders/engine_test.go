package leaders

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nbakit/backend/internal/table"
)

type stubSource struct {
	tbl *table.Table
	err error
}

func (s stubSource) SeasonTable(_ context.Context) (*table.Table, error) {
	return s.tbl, s.err
}

// seasonFixture is a two-team, three-player season where only Alice and Bob
// clear the default qualifiers.
func seasonFixture(t *testing.T) *table.Table {
	t.Helper()

	tbl := table.New(3)
	require.NoError(t, tbl.SetText(ColPlayerName, []string{"Alice", "Bob", "Cara"}))
	require.NoError(t, tbl.SetText(ColTeamAbbreviation, []string{"BOS", "LAL", "LAL"}))
	require.NoError(t, tbl.SetNumeric(ColPlayerID, []table.Cell{
		table.Num(1), table.Num(2), table.Num(3),
	}))
	require.NoError(t, tbl.SetNumeric(ColTeamID, []table.Cell{
		table.Num(10), table.Num(11), table.Num(11),
	}))
	require.NoError(t, tbl.SetNumeric(ColGamesPlayed, []table.Cell{
		table.Num(40), table.Num(40), table.Num(5),
	}))
	require.NoError(t, tbl.SetNumeric(ColPoints, []table.Cell{
		table.Num(25.0), table.Num(30.0), table.Num(40.0),
	}))
	require.NoError(t, tbl.SetNumeric(ColAssists, []table.Cell{
		table.Num(8.0), table.Num(4.0), table.Num(1.0),
	}))
	return tbl
}

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine(stubSource{tbl: table.New(0)})
	require.NoError(t, err)
	require.NotNil(t, engine)
	assert.Len(t, engine.cards, 9)
}

func TestEngine_LeadersPayload(t *testing.T) {
	engine, err := NewEngine(stubSource{tbl: seasonFixture(t)})
	require.NoError(t, err)

	payload, err := engine.LeadersPayload(context.Background(), DefaultMinGamesPlayed, DefaultLimit)
	require.NoError(t, err)

	assert.Equal(t, DefaultMinGamesPlayed, payload.MinGP)
	assert.Equal(t, DefaultLimit, payload.Limit)
	require.Len(t, payload.Cards, 9)

	var points *CardResult
	for i := range payload.Cards {
		if payload.Cards[i].CardKey == "points" {
			points = &payload.Cards[i]
		}
	}
	require.NotNil(t, points)
	assert.Equal(t, "ppg", points.DefaultOptionKey)

	board, ok := points.LeadersByOption["ppg"]
	require.True(t, ok)

	// Cara scores the most but misses the GP floor; Bob leads
	require.Len(t, board.Top, 2)
	assert.Equal(t, "Bob", board.Top[0].Name)
	assert.Equal(t, "Alice", board.Top[1].Name)

	assists := payload.Cards[1]
	assert.Equal(t, "assists", assists.CardKey)
	assert.Equal(t, "Alice", assists.LeadersByOption["apg"].Top[0].Name)
}

func TestEngine_LeadersPayloadClamping(t *testing.T) {
	engine, err := NewEngine(stubSource{tbl: seasonFixture(t)})
	require.NoError(t, err)

	payload, err := engine.LeadersPayload(context.Background(), 999, 0)
	require.NoError(t, err)
	assert.Equal(t, MaxGamesPlayed, payload.MinGP)
	assert.Equal(t, 1, payload.Limit)
	for _, card := range payload.Cards {
		for _, board := range card.LeadersByOption {
			assert.LessOrEqual(t, len(board.Top), 1)
		}
	}
}

func TestEngine_LeadersPayloadEmptyTable(t *testing.T) {
	engine, err := NewEngine(stubSource{tbl: table.New(0)})
	require.NoError(t, err)

	payload, err := engine.LeadersPayload(context.Background(), DefaultMinGamesPlayed, DefaultLimit)
	require.NoError(t, err)

	// Every card is still present with empty boards
	require.Len(t, payload.Cards, 9)
	for _, card := range payload.Cards {
		assert.Len(t, card.LeadersByOption, len(card.Options))
		for _, board := range card.LeadersByOption {
			assert.Nil(t, board.Leader)
			assert.Empty(t, board.Top)
		}
	}
}

func TestEngine_LeadersPayloadSourceError(t *testing.T) {
	engine, err := NewEngine(stubSource{err: errors.New("snapshot not found")})
	require.NoError(t, err)

	_, err = engine.LeadersPayload(context.Background(), DefaultMinGamesPlayed, DefaultLimit)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTableUnavailable)
}

func TestEngine_LeadersPayloadDeterministic(t *testing.T) {
	engine, err := NewEngine(stubSource{tbl: seasonFixture(t)})
	require.NoError(t, err)

	first, err := engine.LeadersPayload(context.Background(), DefaultMinGamesPlayed, DefaultLimit)
	require.NoError(t, err)
	second, err := engine.LeadersPayload(context.Background(), DefaultMinGamesPlayed, DefaultLimit)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestEmptyPayload(t *testing.T) {
	payload := EmptyPayload(-1, 200)
	assert.Equal(t, 0, payload.MinGP)
	assert.Equal(t, MaxLimit, payload.Limit)
	assert.NotNil(t, payload.Cards)
	assert.Empty(t, payload.Cards)
}
