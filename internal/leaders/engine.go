// Package leaders computes ranked, qualifier-filtered leaderboard cards from
// the current player-season table.
package leaders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"nbakit/backend/internal/metrics"
	"nbakit/backend/internal/table"
)

// ErrTableUnavailable wraps any failure to load the season table. The engine
// surfaces it instead of fabricating an empty payload; degrading is the
// transport layer's call.
var ErrTableUnavailable = errors.New("season table unavailable")

// TableSource supplies the current player-season table.
type TableSource interface {
	SeasonTable(ctx context.Context) (*table.Table, error)
}

// Engine assembles the full leaders payload. It holds no per-request state;
// every call re-reads the source and computes independently.
type Engine struct {
	source TableSource
	cards  []cardDef
}

// NewEngine validates the fixed card table and returns an engine over the
// given source. A malformed card table is a programming error and fails here,
// at process start, rather than per request.
func NewEngine(source TableSource) (*Engine, error) {
	cards := cardTable()
	for _, def := range cards {
		if len(def.options) == 0 {
			return nil, fmt.Errorf("card %s has no options", def.key)
		}
		hasDefault := false
		for _, opt := range def.options {
			if err := opt.Expr.validate(); err != nil {
				return nil, fmt.Errorf("card %s option %s: %w", def.key, opt.Key, err)
			}
			if opt.AttemptsExpr != nil {
				if err := opt.AttemptsExpr.validate(); err != nil {
					return nil, fmt.Errorf("card %s option %s attempts: %w", def.key, opt.Key, err)
				}
			}
			if opt.Key == def.defaultKey {
				hasDefault = true
			}
		}
		if !hasDefault {
			return nil, fmt.Errorf("card %s default option %s not declared", def.key, def.defaultKey)
		}
	}

	return &Engine{source: source, cards: cards}, nil
}

// LeadersPayload builds every card over the current season table.
// Out-of-range minGP and limit are clamped, never rejected.
func (e *Engine) LeadersPayload(ctx context.Context, minGP, limit int) (*Payload, error) {
	minGP = ClampMinGamesPlayed(minGP)
	limit = ClampLimit(limit)
	start := time.Now()

	t, err := e.source.SeasonTable(ctx)
	if err != nil {
		metrics.RecordLeadersBuild("error", time.Since(start).Seconds(), 0)
		return nil, fmt.Errorf("%w: %w", ErrTableUnavailable, err)
	}

	rows := t.Len()
	t = applyTeamParticipation(t, qualifyFraction)
	t = applyGamesPlayedFloor(t, minGP)

	log.Debug().
		Int("rows", rows).
		Int("qualified", t.Len()).
		Int("min_gp", minGP).
		Int("limit", limit).
		Msg("Building leaders payload")

	cards := make([]CardResult, 0, len(e.cards))
	for _, def := range e.cards {
		card, err := buildCard(t, def, limit)
		if err != nil {
			metrics.RecordLeadersBuild("error", time.Since(start).Seconds(), t.Len())
			return nil, err
		}
		cards = append(cards, card)
	}

	metrics.RecordLeadersBuild("success", time.Since(start).Seconds(), t.Len())
	return &Payload{MinGP: minGP, Limit: limit, Cards: cards}, nil
}

// EmptyPayload is the degraded response shape used by the transport layer
// when the engine fails: clamped parameters, no cards.
func EmptyPayload(minGP, limit int) *Payload {
	return &Payload{
		MinGP: ClampMinGamesPlayed(minGP),
		Limit: ClampLimit(limit),
		Cards: []CardResult{},
	}
}
