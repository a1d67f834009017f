// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/stiyes/fpvforge/internal/app"
	"github.com/stiyes/fpvforge/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ComponentDependencies
	BuildDependencies
	RecommendationDependencies
	PresetDependencies
	AdminDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	componentsHandler      *ComponentsHandler
	buildsHandler          *BuildsHandler
	recommendationsHandler *RecommendationsHandler
	presetsHandler         *PresetsHandler
	adminHandler           *AdminHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:          NewHealthHandler(),
		statsHandler:           NewStatsHandler(deps),
		componentsHandler:      NewComponentsHandler(deps),
		buildsHandler:          NewBuildsHandler(deps),
		recommendationsHandler: NewRecommendationsHandler(deps),
		presetsHandler:         NewPresetsHandler(deps),
		adminHandler:           NewAdminHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /components", MetricsMiddleware(s.componentsHandler.HandleList, "components"))
	mux.HandleFunc("GET /components/{id}", MetricsMiddleware(s.componentsHandler.HandleGet, "component"))
	mux.HandleFunc("GET /facets", MetricsMiddleware(s.componentsHandler.HandleFacets, "facets"))

	mux.HandleFunc("POST /builds/evaluate", MetricsMiddleware(s.buildsHandler.HandleEvaluate, "builds_evaluate"))
	mux.HandleFunc("POST /builds", MetricsMiddleware(s.buildsHandler.HandleCreate, "builds_create"))
	mux.HandleFunc("GET /builds", MetricsMiddleware(s.buildsHandler.HandleList, "builds_list"))
	mux.HandleFunc("GET /builds/{id}", MetricsMiddleware(s.buildsHandler.HandleGet, "build"))

	mux.HandleFunc("GET /recommendations", MetricsMiddleware(s.recommendationsHandler.HandleList, "recommendations"))

	mux.HandleFunc("GET /presets", MetricsMiddleware(s.presetsHandler.HandleList, "presets"))
	mux.HandleFunc("GET /presets/{name}/catalog", MetricsMiddleware(s.presetsHandler.HandleCatalog, "preset_catalog"))

	mux.HandleFunc("POST /admin/cache/invalidate", MetricsMiddleware(s.adminHandler.HandleInvalidateCache, "admin_cache_invalidate"))
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service error kinds to HTTP statuses.
func writeServiceError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidSelection):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrUnknownPreset):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", Wrap(op, err))
	default:
		logger.Get().Error(ctx, "request failed", logger.String("op", op), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", NewKind(op, ErrInternal))
	}
}

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// decodeJSON reads a single JSON object, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
