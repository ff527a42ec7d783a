package api

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	service "github.com/okian/pitchside/internal/app"
)

// PlayerDependencies defines the single player views.
type PlayerDependencies interface {
	PlayerCard(ctx context.Context, q service.Query, id int) (service.Card, error)
	Compare(ctx context.Context, q service.Query, a, b int) (service.Comparison, error)
}

// compareRequest mirrors the query of GET /api/v1/compare.
type compareRequest struct {
	A int `json:"a" validate:"required,gt=0"`
	B int `json:"b" validate:"required,gt=0"`
}

// PlayerHandler handles player card and comparison requests.
type PlayerHandler struct {
	deps     PlayerDependencies
	validate *validator.Validate
}

// NewPlayerHandler creates a new player handler.
func NewPlayerHandler(deps PlayerDependencies) *PlayerHandler {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &PlayerHandler{deps: deps, validate: v}
}

// HandleCard handles GET /api/v1/players/{id}.
func (h *PlayerHandler) HandleCard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_player"
	id, err := parseID(op, chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	card, err := h.deps.PlayerCard(r.Context(), parseQuery(r), id)
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

// HandleCompare handles GET /api/v1/compare?a=ID&b=ID.
func (h *PlayerHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "api.compare_players"
	q := r.URL.Query()
	var req compareRequest
	for _, f := range []struct {
		key string
		dst *int
	}{{"a", &req.A}, {"b", &req.B}} {
		if raw := q.Get(f.key); raw != "" {
			id, err := parseID(op, raw)
			if err != nil {
				writeFailure(w, r, err)
				return
			}
			*f.dst = id
		}
	}
	if err := h.validate.Struct(req); err != nil {
		writeFailure(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}
	c, err := h.deps.Compare(r.Context(), parseQuery(r), req.A, req.B)
	if err != nil {
		writeFailure(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, r, http.StatusOK, c)
}
