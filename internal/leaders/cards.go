package leaders

import (
	"fmt"

	"nbakit/backend/internal/table"
)

// OptionMeta is the client-facing description of one card option.
type OptionMeta struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Format string `json:"format"`
}

// CardResult is one stat category with a ranked leaderboard per option.
type CardResult struct {
	CardKey          string                 `json:"cardKey"`
	Title            string                 `json:"title"`
	Options          []OptionMeta           `json:"options"`
	DefaultOptionKey string                 `json:"defaultOptionKey"`
	LeadersByOption  map[string]Leaderboard `json:"leadersByOption"`
}

// Payload is the root leaders response.
type Payload struct {
	MinGP int          `json:"minGp"`
	Limit int          `json:"limit"`
	Cards []CardResult `json:"cards"`
}

type cardDef struct {
	key        string
	title      string
	defaultKey string
	options    []Option
}

func attempts(e Expr) *Expr { return &e }

// cardTable is the fixed card configuration. It is built once at engine
// construction, validated there, and never mutated.
func cardTable() []cardDef {
	return []cardDef{
		{
			key: "points", title: "Points", defaultKey: "ppg",
			options: []Option{
				{Key: "ppg", Label: "PPG", Expr: PerGame(ColPoints), Format: FormatOneDecimal},
				{Key: "total", Label: "Total", Expr: Total(ColPoints), Format: FormatInteger},
			},
		},
		{
			key: "assists", title: "Assists", defaultKey: "apg",
			options: []Option{
				{Key: "apg", Label: "APG", Expr: PerGame(ColAssists), Format: FormatOneDecimal},
				{Key: "total", Label: "Total", Expr: Total(ColAssists), Format: FormatInteger},
			},
		},
		{
			key: "rebounds", title: "Rebounds", defaultKey: "trb_pg",
			options: []Option{
				{Key: "trb_pg", Label: "TRB/G", Expr: PerGame(ColRebounds), Format: FormatOneDecimal},
				{Key: "trb_total", Label: "TRB", Expr: Total(ColRebounds), Format: FormatInteger},
				{Key: "oreb_pg", Label: "OREB/G", Expr: PerGame(ColOffRebounds), Format: FormatOneDecimal},
				{Key: "oreb_total", Label: "OREB", Expr: Total(ColOffRebounds), Format: FormatInteger},
				{Key: "dreb_pg", Label: "DREB/G", Expr: PerGame(ColDefRebounds), Format: FormatOneDecimal},
				{Key: "dreb_total", Label: "DREB", Expr: Total(ColDefRebounds), Format: FormatInteger},
			},
		},
		{
			key: "shooting", title: "Shooting", defaultKey: "fgm_pg",
			options: []Option{
				{
					Key: "fg_pct", Label: "FG%", Expr: FieldGoalPctFromTotals, Format: FormatPercent,
					AttemptsExpr: attempts(Total(ColFieldGoalsAttempted)), MinAttempts: minAttemptsFieldGoalPct,
				},
				{Key: "fgm_total", Label: "FGM", Expr: Total(ColFieldGoalsMade), Format: FormatInteger},
				{Key: "fgm_pg", Label: "FGM/G", Expr: PerGame(ColFieldGoalsMade), Format: FormatOneDecimal},
				{
					Key: "ts_pct", Label: "TS%", Expr: TrueShootingPct, Format: FormatPercent,
					AttemptsExpr: attempts(TrueShootingAttempts), MinAttempts: minAttemptsTrueShooting,
				},
				{
					Key: "ft_pct", Label: "FT%", Expr: FreeThrowPctFromTotals, Format: FormatPercent,
					AttemptsExpr: attempts(Total(ColFreeThrowsAttempted)), MinAttempts: minAttemptsFreeThrowPct,
				},
				{Key: "ftm_pg", Label: "FTM/G", Expr: PerGame(ColFreeThrowsMade), Format: FormatOneDecimal},
				{Key: "ftm_total", Label: "FTM", Expr: Total(ColFreeThrowsMade), Format: FormatInteger},
			},
		},
		{
			key: "threept", title: "3PT", defaultKey: "made_pg",
			options: []Option{
				{Key: "made_pg", Label: "3PM/G", Expr: PerGame(ColThreesMade), Format: FormatOneDecimal},
				{Key: "made_total", Label: "3PM", Expr: Total(ColThreesMade), Format: FormatInteger},
				{
					Key: "pct", Label: "3P%", Expr: ThreePctFromTotals, Format: FormatPercent,
					AttemptsExpr: attempts(Total(ColThreesAttempted)), MinAttempts: minAttemptsThreePct,
				},
			},
		},
		{
			key: "minutes", title: "Minutes", defaultKey: "mpg",
			options: []Option{
				{Key: "mpg", Label: "MPG", Expr: PerGame(ColMinutes), Format: FormatOneDecimal},
				{Key: "total", Label: "Total", Expr: Total(ColMinutes), Format: FormatInteger},
			},
		},
		{
			key: "steals", title: "Steals", defaultKey: "spg",
			options: []Option{
				{Key: "spg", Label: "SPG", Expr: PerGame(ColSteals), Format: FormatOneDecimal},
				{Key: "total", Label: "Total", Expr: Total(ColSteals), Format: FormatInteger},
			},
		},
		{
			key: "blocks", title: "Blocks", defaultKey: "bpg",
			options: []Option{
				{Key: "bpg", Label: "BPG", Expr: PerGame(ColBlocks), Format: FormatOneDecimal},
				{Key: "total", Label: "Total", Expr: Total(ColBlocks), Format: FormatInteger},
			},
		},
		{
			key: "turnovers", title: "Turnovers", defaultKey: "tpg",
			options: []Option{
				{Key: "tpg", Label: "TOV/G", Expr: PerGame(ColTurnovers), Format: FormatOneDecimal},
				{Key: "total", Label: "Total", Expr: Total(ColTurnovers), Format: FormatInteger},
			},
		},
	}
}

// buildCard builds one card's leaderboards over a table that already had the
// request-wide qualifiers applied. The attempts floor is per-option and is
// applied inside the leaderboard builder.
func buildCard(t *table.Table, def cardDef, limit int) (CardResult, error) {
	metas := make([]OptionMeta, 0, len(def.options))
	boards := make(map[string]Leaderboard, len(def.options))

	for _, opt := range def.options {
		board, err := buildLeaderboard(t, opt, limit)
		if err != nil {
			return CardResult{}, fmt.Errorf("card %s option %s: %w", def.key, opt.Key, err)
		}
		boards[opt.Key] = board
		metas = append(metas, OptionMeta{Key: opt.Key, Label: opt.Label, Format: opt.Format})
	}

	return CardResult{
		CardKey:          def.key,
		Title:            def.title,
		Options:          metas,
		DefaultOptionKey: def.defaultKey,
		LeadersByOption:  boards,
	}, nil
}
