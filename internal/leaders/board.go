package leaders

import (
	"math"
	"sort"

	"nbakit/backend/internal/table"
)

// Display formats for leaderboard values.
const (
	FormatOneDecimal = "1dp"
	FormatInteger    = "0dp"
	FormatPercent    = "pct"
)

// Option is one selectable view of a card: a metric expression, its display
// format, and an optional attempts floor for rate stats.
type Option struct {
	Key    string
	Label  string
	Expr   Expr
	Format string

	// AttemptsExpr, when set, excludes rows whose attempts are invalid or
	// do not exceed MinAttempts. Keeps small-sample shooters off
	// percentage leaderboards.
	AttemptsExpr *Expr
	MinAttempts  float64
}

// Entry is one ranked leaderboard row. Identity fields are optional because
// the snapshot does not guarantee them.
type Entry struct {
	Rank     int      `json:"rank"`
	PlayerID *int64   `json:"playerId"`
	Name     string   `json:"name"`
	TeamID   *int64   `json:"teamId"`
	TeamAbbr string   `json:"teamAbbr"`
	Value    *float64 `json:"value"`
	GP       *float64 `json:"gp"`
}

// Leaderboard is one option's ranked result. An empty qualifying set is a
// valid result, not an error.
type Leaderboard struct {
	Leader *Entry  `json:"leader"`
	Top    []Entry `json:"top"`
}

// buildLeaderboard evaluates the option over an already qualifier-filtered
// table, applies the option's attempts floor, and returns up to limit entries
// ranked by descending value. Ties keep table row order (stable sort, no
// secondary key).
func buildLeaderboard(t *table.Table, opt Option, limit int) (Leaderboard, error) {
	values, err := opt.Expr.Eval(t)
	if err != nil {
		return Leaderboard{}, err
	}

	var attempts []table.Cell
	if opt.AttemptsExpr != nil {
		attempts, err = opt.AttemptsExpr.Eval(t)
		if err != nil {
			return Leaderboard{}, err
		}
	}

	rows := make([]int, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		if !values[i].Valid {
			continue
		}
		if attempts != nil && (!attempts[i].Valid || attempts[i].Float64 <= opt.MinAttempts) {
			continue
		}
		rows = append(rows, i)
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return values[rows[a]].Float64 > values[rows[b]].Float64
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}

	playerID := t.NumericOrMissing(ColPlayerID)
	teamID := t.NumericOrMissing(ColTeamID)
	gp := t.NumericOrMissing(ColGamesPlayed)
	names := t.Text(ColPlayerName)
	abbrs := t.Text(ColTeamAbbreviation)

	top := make([]Entry, 0, len(rows))
	for rank, i := range rows {
		top = append(top, Entry{
			Rank:     rank + 1,
			PlayerID: cellInt(playerID[i]),
			Name:     names[i],
			TeamID:   cellInt(teamID[i]),
			TeamAbbr: abbrs[i],
			Value:    formatValue(values[i], opt.Format),
			GP:       cellFloat(gp[i]),
		})
	}

	board := Leaderboard{Top: top}
	if len(top) > 0 {
		leader := top[0]
		board.Leader = &leader
	}
	return board, nil
}

// formatValue renders a raw value for display. Invalid or non-finite input
// resolves to nil.
func formatValue(c table.Cell, format string) *float64 {
	if !c.Valid {
		return nil
	}
	x := c.Float64
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}

	var v float64
	switch format {
	case FormatPercent:
		// Ratios are stored as 0.451 and displayed as 45.1.
		v = math.Round(x*1000) / 10
	case FormatInteger:
		v = math.Round(x)
	default:
		v = math.Round(x*10) / 10
	}
	return &v
}

func cellInt(c table.Cell) *int64 {
	if !c.Valid {
		return nil
	}
	v := int64(c.Float64)
	return &v
}

func cellFloat(c table.Cell) *float64 {
	if !c.Valid {
		return nil
	}
	v := c.Float64
	return &v
}
