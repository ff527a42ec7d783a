package api

import (
	"context"
	"net/http"

	service "github.com/okian/pitchside/internal/app"
	"github.com/okian/pitchside/internal/domain/filter"
	"github.com/okian/pitchside/internal/domain/model"
)

// RosterDependencies defines the pipeline views served by RosterHandler.
type RosterDependencies interface {
	Options(ctx context.Context) (filter.Selection, error)
	Dashboard(ctx context.Context, q service.Query) (service.Dashboard, error)
	Roster(ctx context.Context, q service.Query) (service.RosterView, error)
	Pitch(ctx context.Context, q service.Query) ([]model.Placement, error)
}

// RosterHandler handles the filtered roster views.
type RosterHandler struct {
	deps RosterDependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps RosterDependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// HandleFilters handles GET /api/v1/filters.
func (h *RosterHandler) HandleFilters(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_filters"
	sel, err := h.deps.Options(r.Context())
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, r, http.StatusOK, sel)
}

// HandleDashboard handles GET /api/v1/dashboard.
func (h *RosterHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_dashboard"
	d, err := h.deps.Dashboard(r.Context(), parseQuery(r))
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, r, http.StatusOK, d)
}

// HandleRoster handles GET /api/v1/roster.
func (h *RosterHandler) HandleRoster(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_roster"
	view, err := h.deps.Roster(r.Context(), parseQuery(r))
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

// HandlePitch handles GET /api/v1/pitch.
func (h *RosterHandler) HandlePitch(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_pitch"
	placements, err := h.deps.Pitch(r.Context(), parseQuery(r))
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, r, http.StatusOK, placements)
}
