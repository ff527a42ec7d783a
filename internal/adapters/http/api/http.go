// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	service "github.com/okian/pitchside/internal/app"
	"github.com/okian/pitchside/internal/domain/roster"
	"github.com/okian/pitchside/pkg/logger"
)

// Filter query parameters. Each may repeat or hold a comma separated list.
// An omitted parameter selects every value; a present but empty one
// selects none.
const (
	paramStatus      = "status"
	paramPosition    = "position"
	paramNationality = "nationality"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	RosterDependencies
	PlayerDependencies
	ExportDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	rosterHandler    *RosterHandler
	playerHandler    *PlayerHandler
	exportHandler    *ExportHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		rosterHandler:    NewRosterHandler(deps),
		playerHandler:    NewPlayerHandler(deps),
		exportHandler:    NewExportHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(ctx context.Context, r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	r.Get("/dashboard", s.dashboardHandler.HandleDashboard)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/filters", MetricsMiddleware(s.rosterHandler.HandleFilters, "filters"))
		r.Get("/dashboard", MetricsMiddleware(s.rosterHandler.HandleDashboard, "dashboard"))
		r.Get("/roster", MetricsMiddleware(s.rosterHandler.HandleRoster, "roster"))
		r.Get("/pitch", MetricsMiddleware(s.rosterHandler.HandlePitch, "pitch"))
		r.Get("/players/{id}", MetricsMiddleware(s.playerHandler.HandleCard, "players"))
		r.Get("/compare", MetricsMiddleware(s.playerHandler.HandleCompare, "compare"))
		r.Get("/export.xlsx", MetricsMiddleware(s.exportHandler.HandleExport, "export"))
	})

	logger.Get().Info(ctx, "api routes registered")
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, r, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps a pipeline or request error to its HTTP status.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrBadRequest):
		writeError(w, r, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrPlayerNotFound):
		writeError(w, r, http.StatusNotFound, "not_found", err)
	case errors.Is(err, roster.ErrMissingSource):
		writeError(w, r, http.StatusServiceUnavailable, "source_unavailable", err)
	case errors.Is(err, roster.ErrMalformedSource):
		writeError(w, r, http.StatusInternalServerError, "source_malformed", err)
	default:
		logger.Get().Error(r.Context(), "request failed", logger.String("path", r.URL.Path), logger.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal_error", err)
	}
}

// parseQuery reads the filter selection from the URL.
func parseQuery(r *http.Request) service.Query {
	v := r.URL.Query()
	return service.Query{
		Statuses:      listParam(v, paramStatus),
		Positions:     listParam(v, paramPosition),
		Nationalities: listParam(v, paramNationality),
	}
}

func listParam(v url.Values, key string) []string {
	raw, ok := v[key]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// parseID reads a positive player id.
func parseID(op, raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id < 1 {
		return 0, WrapKind(op, ErrBadRequest, errors.New("player id must be a positive integer"))
	}
	return id, nil
}
