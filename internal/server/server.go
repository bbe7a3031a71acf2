// Package server exposes the pipeline over a read-only HTTP API. Aggregates
// are recomputed from stored sessions on every request; nothing computed is
// cached or persisted.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/prospector-cli/internal/aggregate"
	"github.com/sells-group/prospector-cli/internal/config"
	"github.com/sells-group/prospector-cli/internal/dedupe"
	"github.com/sells-group/prospector-cli/internal/geo"
	"github.com/sells-group/prospector-cli/internal/scorer"
	"github.com/sells-group/prospector-cli/internal/store"
)

// Server serves lead-intelligence views over stored sessions.
type Server struct {
	store     store.Store
	hierarchy []geo.RegionDefinition
	limiter   *rate.Limiter
}

// New creates a Server over a session store and a fixed region hierarchy.
func New(st store.Store, hierarchy []geo.RegionDefinition, cfg config.ServerConfig) *Server {
	rps := cfg.RateLimit
	if rps <= 0 {
		rps = 20
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 40
	}
	return &Server{
		store:     st,
		hierarchy: hierarchy,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(s.rateLimit)
	r.Use(requestLogger)

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/cities", s.handleCities)
		r.Get("/cities/{city}/types", s.handleTypes)
		r.Get("/regions", s.handleRegions)
		r.Get("/scored", s.handleScored)
	})

	return r
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Info("server: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.ListSessions(r.Context(), store.SessionFilter{
		City: r.URL.Query().Get("city"),
	})
	if err != nil {
		serverError(w, "list sessions", err)
		return
	}
	writeJSON(w, http.StatusOK, aggregate.ByCity(sessions))
}

func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")

	sessions, err := s.store.ListSessions(r.Context(), store.SessionFilter{City: city})
	if err != nil {
		serverError(w, "list sessions", err)
		return
	}
	writeJSON(w, http.StatusOK, aggregate.ByType(sessions, city))
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.ListSessions(r.Context(), store.SessionFilter{})
	if err != nil {
		serverError(w, "list sessions", err)
		return
	}
	cities := aggregate.ByCity(sessions)
	writeJSON(w, http.StatusOK, aggregate.ByRegion(cities, s.hierarchy))
}

func (s *Server) handleScored(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.ListSessions(r.Context(), store.SessionFilter{
		City:     r.URL.Query().Get("city"),
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		serverError(w, "list sessions", err)
		return
	}
	writeJSON(w, http.StatusOK, scorer.ScoreAll(dedupe.Deduplicate(sessions)))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func serverError(w http.ResponseWriter, action string, err error) {
	zap.L().Error("server: "+action, zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
