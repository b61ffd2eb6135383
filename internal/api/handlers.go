package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"nbakit/backend/internal/client"
	"nbakit/backend/internal/config"
	"nbakit/backend/internal/leaders"
	"nbakit/backend/internal/metrics"
	"nbakit/backend/internal/provider"
	"nbakit/backend/internal/table"
)

// LeadersService computes the leaders payload. Satisfied by *leaders.Engine.
type LeadersService interface {
	LeadersPayload(ctx context.Context, minGP, limit int) (*leaders.Payload, error)
}

// SnapshotStore serves parsed snapshot tables. Satisfied by *provider.Store.
type SnapshotStore interface {
	Table(ctx context.Context, name string) (*table.Table, error)
	Exists(name string) bool
}

// PayloadCache caches rendered payloads. Satisfied by *cache.RedisCache.
type PayloadCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Handler implements the API endpoints. cache may be nil, in which case
// every request recomputes.
type Handler struct {
	cfg     *config.Config
	leaders LeadersService
	store   SnapshotStore
	cache   PayloadCache
}

// NewHandler creates a Handler. cache may be nil.
func NewHandler(cfg *config.Config, svc LeadersService, store SnapshotStore, cache PayloadCache) *Handler {
	return &Handler{cfg: cfg, leaders: svc, store: store, cache: cache}
}

// Health reports service status and which snapshots are present.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	snapshots := make(map[string]bool, len(provider.SnapshotFiles))
	for _, name := range provider.SnapshotFiles {
		snapshots[name] = h.store.Exists(name)
	}

	status := "ok"
	if !snapshots[provider.FileRosterMaster] {
		status = "degraded"
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"service":   "nbakit-api",
		"snapshots": snapshots,
	})
}

// Leaders serves the league leaders payload. A missing or unreadable season
// table degrades to an empty payload rather than an error status.
func (h *Handler) Leaders(w http.ResponseWriter, r *http.Request) {
	minGP := leaders.ClampMinGamesPlayed(queryInt(r, "minGp", leaders.DefaultMinGamesPlayed))
	limit := leaders.ClampLimit(queryInt(r, "limit", leaders.DefaultLimit))

	cacheKey := fmt.Sprintf("leaders:v1:%d:%d", minGP, limit)
	if h.cache != nil {
		var cached leaders.Payload
		hit, err := h.cache.GetJSON(r.Context(), cacheKey, &cached)
		if err != nil {
			log.Warn().Err(err).Msg("Leaders cache read failed")
		}
		if hit {
			metrics.RecordCacheHit()
			respondJSON(w, http.StatusOK, &cached)
			return
		}
		metrics.RecordCacheMiss()
	}

	payload, err := h.leaders.LeadersPayload(r.Context(), minGP, limit)
	if err != nil {
		if errors.Is(err, leaders.ErrTableUnavailable) {
			log.Warn().Err(err).Msg("Season table unavailable, serving empty leaders payload")
			metrics.RecordError("api", "table_unavailable")
			respondJSON(w, http.StatusOK, leaders.EmptyPayload(minGP, limit))
			return
		}
		log.Error().Err(err).Msg("Leaders computation failed")
		respondError(w, http.StatusInternalServerError, "failed to compute leaders")
		return
	}

	if h.cache != nil {
		ttl := time.Duration(h.cfg.CacheTTLLeaders) * time.Second
		if err := h.cache.SetJSON(r.Context(), cacheKey, payload, ttl); err != nil {
			log.Warn().Err(err).Msg("Leaders cache write failed")
		}
	}

	respondJSON(w, http.StatusOK, payload)
}

// DailySchedule serves the games for one date, defaulting to today.
func (h *Handler) DailySchedule(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	tbl, err := h.store.Table(r.Context(), provider.FileGames)
	if err != nil {
		log.Warn().Err(err).Msg("Games snapshot unavailable")
		respondJSON(w, http.StatusOK, []map[string]any{})
		return
	}

	day := provider.WhereText(tbl, "GAME_DATE_EST", date)
	respondJSON(w, http.StatusOK, provider.Records(day))
}

// Standings serves the current standings snapshot.
func (h *Handler) Standings(w http.ResponseWriter, r *http.Request) {
	h.serveSnapshot(w, r, provider.FileStandings)
}

// Teams serves the team list with CDN logo URLs attached.
func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	tbl, err := h.store.Table(r.Context(), provider.FileTeams)
	if err != nil {
		log.Warn().Err(err).Str("snapshot", provider.FileTeams).Msg("Snapshot unavailable")
		respondJSON(w, http.StatusOK, []map[string]any{})
		return
	}

	records := provider.Records(tbl)
	for _, rec := range records {
		if id, ok := rec["TEAM_ID"].(float64); ok {
			rec["TEAM_LOGO_URL"] = client.TeamLogoURL(int64(id))
		}
	}
	respondJSON(w, http.StatusOK, records)
}

// TeamRoster serves one team's roster. An unknown team is a 404.
func (h *Handler) TeamRoster(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.ParseInt(chi.URLParam(r, "teamID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "teamID must be an integer")
		return
	}

	tbl, err := h.store.Table(r.Context(), provider.FileRosters)
	if err != nil {
		log.Warn().Err(err).Msg("Rosters snapshot unavailable")
		respondError(w, http.StatusNotFound, "no roster data available")
		return
	}

	team := provider.WhereNumeric(tbl, "TEAM_ID", float64(teamID))
	if team.Len() == 0 {
		respondError(w, http.StatusNotFound, fmt.Sprintf("no roster for team %d", teamID))
		return
	}
	respondJSON(w, http.StatusOK, provider.Records(team))
}

// TopPlayers serves the per-team leaders snapshot.
func (h *Handler) TopPlayers(w http.ResponseWriter, r *http.Request) {
	h.serveSnapshot(w, r, provider.FileTopPlayers)
}

// serveSnapshot renders a whole snapshot as records. A missing snapshot is
// an empty list, not an error.
func (h *Handler) serveSnapshot(w http.ResponseWriter, r *http.Request, name string) {
	tbl, err := h.store.Table(r.Context(), name)
	if err != nil {
		log.Warn().Err(err).Str("snapshot", name).Msg("Snapshot unavailable")
		respondJSON(w, http.StatusOK, []map[string]any{})
		return
	}
	respondJSON(w, http.StatusOK, provider.Records(tbl))
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or not an integer.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
