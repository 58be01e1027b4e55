package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/resume-url/pkg/resumeurl"
)

// HealthHandler serves liveness and readiness probes.
// Readiness checks the résumé object exists when the backend can stat objects.
type HealthHandler struct {
	stater    resumeurl.ObjectStater
	objectKey string
	logger    *slog.Logger
}

// NewHealthHandler creates health handlers. stater may be nil, in which case
// readiness is equivalent to liveness.
func NewHealthHandler(stater resumeurl.ObjectStater, objectKey string, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		stater:    stater,
		objectKey: objectKey,
		logger:    logger,
	}
}

// Routes returns the router for health endpoints
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Live)
	r.Get("/ready", h.Ready)
	return r
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, "OK")
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.stater == nil {
		render.PlainText(w, r, "OK")
		return
	}

	if _, err := h.stater.Stat(r.Context(), h.objectKey); err != nil {
		h.logger.Warn("Readiness check failed", "object_key", h.objectKey, "err", err)
		writeError(w, r, http.StatusServiceUnavailable, CodeObjectUnavailable, "résumé object is not available")
		return
	}

	render.PlainText(w, r, "OK")
}
