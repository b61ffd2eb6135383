package leaders

import (
	"fmt"

	"nbakit/backend/internal/table"
)

// exprKind enumerates the closed set of metric formulas. The card table is
// fixed configuration, so an out-of-range kind is a programming error and is
// rejected when the engine is constructed, not at evaluation time.
type exprKind int

const (
	exprPerGame exprKind = iota
	exprTotal
	exprFieldGoalPctTotal
	exprThreePctTotal
	exprFreeThrowPctTotal
	exprTrueShootingAttempts
	exprTrueShootingPct
)

// Expr is one metric formula over the season table.
type Expr struct {
	kind exprKind
	col  string
}

// PerGame reads a per-game column as-is.
func PerGame(col string) Expr {
	return Expr{kind: exprPerGame, col: col}
}

// Total derives a season total as perGame * GP. Totals are always derived,
// never read from the snapshot, so rounding is not double-counted.
func Total(col string) Expr {
	return Expr{kind: exprTotal, col: col}
}

// Composite ratios computed from derived totals rather than averaged
// percentages, so small samples do not bias the ratio.
var (
	FieldGoalPctFromTotals = Expr{kind: exprFieldGoalPctTotal}
	ThreePctFromTotals     = Expr{kind: exprThreePctTotal}
	FreeThrowPctFromTotals = Expr{kind: exprFreeThrowPctTotal}

	// TrueShootingAttempts is FGA_total + 0.44 * FTA_total.
	TrueShootingAttempts = Expr{kind: exprTrueShootingAttempts}
	// TrueShootingPct is PTS_total / (2 * TrueShootingAttempts).
	TrueShootingPct = Expr{kind: exprTrueShootingPct}
)

// validate rejects malformed expressions in the static card table.
func (e Expr) validate() error {
	switch e.kind {
	case exprPerGame, exprTotal:
		if e.col == "" {
			return fmt.Errorf("expression kind %d requires a column name", e.kind)
		}
		return nil
	case exprFieldGoalPctTotal, exprThreePctTotal, exprFreeThrowPctTotal,
		exprTrueShootingAttempts, exprTrueShootingPct:
		return nil
	default:
		return fmt.Errorf("unknown expression kind %d", e.kind)
	}
}

// Eval computes one value per row, in table row order. Missing columns,
// non-numeric values and zero denominators all yield invalid cells.
func (e Expr) Eval(t *table.Table) ([]table.Cell, error) {
	switch e.kind {
	case exprPerGame:
		return t.NumericOrMissing(e.col), nil

	case exprTotal:
		return totals(t, e.col), nil

	case exprFieldGoalPctTotal:
		return ratio(totals(t, ColFieldGoalsMade), totals(t, ColFieldGoalsAttempted)), nil

	case exprThreePctTotal:
		return ratio(totals(t, ColThreesMade), totals(t, ColThreesAttempted)), nil

	case exprFreeThrowPctTotal:
		return ratio(totals(t, ColFreeThrowsMade), totals(t, ColFreeThrowsAttempted)), nil

	case exprTrueShootingAttempts:
		return trueShootingAttempts(t), nil

	case exprTrueShootingPct:
		pts := totals(t, ColPoints)
		tsa := trueShootingAttempts(t)
		doubled := make([]table.Cell, len(tsa))
		for i, c := range tsa {
			if c.Valid {
				doubled[i] = table.Num(2 * c.Float64)
			}
		}
		return ratio(pts, doubled), nil

	default:
		return nil, fmt.Errorf("unknown expression kind %d", e.kind)
	}
}

// totals is perGame * GP, invalid when either operand is invalid.
func totals(t *table.Table, col string) []table.Cell {
	per := t.NumericOrMissing(col)
	gp := t.NumericOrMissing(ColGamesPlayed)

	out := make([]table.Cell, len(per))
	for i := range per {
		if per[i].Valid && gp[i].Valid {
			out[i] = table.Num(per[i].Float64 * gp[i].Float64)
		}
	}
	return out
}

// ratio divides elementwise. A zero or invalid denominator yields an invalid
// cell, never a division error or a fabricated zero.
func ratio(num, den []table.Cell) []table.Cell {
	out := make([]table.Cell, len(num))
	for i := range num {
		if num[i].Valid && den[i].Valid && den[i].Float64 != 0 {
			out[i] = table.Num(num[i].Float64 / den[i].Float64)
		}
	}
	return out
}

func trueShootingAttempts(t *table.Table) []table.Cell {
	fga := totals(t, ColFieldGoalsAttempted)
	fta := totals(t, ColFreeThrowsAttempted)

	out := make([]table.Cell, len(fga))
	for i := range fga {
		if fga[i].Valid && fta[i].Valid {
			out[i] = table.Num(fga[i].Float64 + 0.44*fta[i].Float64)
		}
	}
	return out
}
