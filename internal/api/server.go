// Package api exposes the read-side HTTP surface over snapshots and the
// leaders engine.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"nbakit/backend/internal/config"
	"nbakit/backend/internal/metrics"
)

// Server is the REST API server.
type Server struct {
	cfg        *config.Config
	router     *chi.Mux
	httpServer *http.Server
	handler    *Handler
}

// NewServer creates the API server and wires its routes.
func NewServer(cfg *config.Config, handler *Handler) *Server {
	s := &Server{
		cfg:     cfg,
		router:  chi.NewRouter(),
		handler: handler,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: strings.Split(s.cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	s.router.Use(requestMetrics)
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handler.Health)
		r.Get("/nba/leaders", s.handler.Leaders)
		r.Get("/schedule/daily", s.handler.DailySchedule)
		r.Get("/standings", s.handler.Standings)
		r.Get("/teams", s.handler.Teams)
		r.Get("/teams/{teamID}/roster", s.handler.TeamRoster)
		r.Get("/top-players", s.handler.TopPlayers)
	})
}

// Router returns the configured mux, for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.ServerPort),
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Int("port", s.cfg.ServerPort).Msg("API server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("API server error")
		}
	}()
}

// Shutdown gracefully stops the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	log.Info().Msg("Shutting down API server...")
	return s.httpServer.Shutdown(ctx)
}

// requestMetrics records one observation per request, labeled by the chi
// route pattern rather than the raw path.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		metrics.RecordHTTPRequest(route, fmt.Sprintf("%d", ww.Status()), time.Since(start).Seconds())
	})
}
