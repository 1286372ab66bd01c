// Package webapi exposes the viewer over HTTP: HTML pages for browsers and a
// small JSON API.
package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/spboyer/cotboard/internal/cot"
	"github.com/spboyer/cotboard/internal/doc"
	"github.com/spboyer/cotboard/internal/models"
	"github.com/spboyer/cotboard/internal/render"
	"github.com/spboyer/cotboard/internal/reports"
	"github.com/spboyer/cotboard/internal/route"
	"github.com/spboyer/cotboard/internal/source"
)

// Version is set at build time or defaults to dev.
var Version = "0.1.0-dev"

// Viewer builds pages for routes. *cot.Viewer satisfies it.
type Viewer interface {
	Build(ctx context.Context, r route.Route) (*doc.Page, error)
	Models(ctx context.Context) ([]models.Model, error)
}

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	viewer Viewer
	html   *render.HTML
}

// NewHandlers creates a new Handlers reading through viewer.
func NewHandlers(viewer Viewer) *Handlers {
	return &Handlers{viewer: viewer, html: render.NewHTML()}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleModels returns the published model list.
func (h *Handlers) HandleModels(w http.ResponseWriter, r *http.Request) {
	list, err := h.viewer.Models(r.Context())
	if err != nil {
		writeError(w, StatusFor(err), err.Error())
		return
	}
	if list == nil {
		list = []models.Model{}
	}
	writeJSON(w, http.StatusOK, ModelsResponse{Models: list})
}

// HandleView returns the render tree for the view selected by the query.
func (h *Handlers) HandleView(w http.ResponseWriter, r *http.Request) {
	rt, err := route.Parse(r.URL.Query())
	if err != nil {
		writeError(w, StatusFor(err), err.Error())
		return
	}
	page, err := h.viewer.Build(r.Context(), rt)
	if err != nil {
		writeError(w, StatusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// RegisterRoutes registers all web API and page routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, viewer Viewer) {
	h := NewHandlers(viewer)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/models", h.HandleModels)
	mux.HandleFunc("GET /api/view", h.HandleView)
	mux.HandleFunc("GET /{$}", h.HandlePage)
}

// StatusFor maps a viewer error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, route.ErrUnknownBenchmark), errors.Is(err, route.ErrInvalidRoute),
		errors.Is(err, reports.ErrMissingModel):
		return http.StatusBadRequest
	case errors.Is(err, source.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrUnknownModel), errors.Is(err, cot.ErrInconsistentTasks):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
