package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tendant/resume-url/pkg/resumeurl"
)

// ExpiresInParam is the query parameter carrying the requested lifetime in minutes
const ExpiresInParam = "expires_in"

var (
	signedURLsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_signed_urls_total",
			Help: "Signed résumé URLs requested, by outcome",
		},
		[]string{"result"},
	)

	signedURLLifetime = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resume_signed_url_lifetime_seconds",
			Help:    "Effective lifetime of issued résumé URLs",
			Buckets: []float64{60, 300, 900, 3600, 4 * 3600, 12 * 3600, 24 * 3600},
		},
	)
)

// ResumeHandler issues signed URLs for the résumé object
type ResumeHandler struct {
	service resumeurl.Service
	logger  *slog.Logger
}

// NewResumeHandler creates a handler backed by service
func NewResumeHandler(service resumeurl.Service, logger *slog.Logger) *ResumeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResumeHandler{
		service: service,
		logger:  logger,
	}
}

// Routes returns the router for résumé endpoints
func (h *ResumeHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/resume", h.GetResumeURL)
	return r
}

// ResumeURLResponse is the success body of GET /resume
type ResumeURLResponse struct {
	SignedURL string    `json:"signedUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// GetResumeURL handles GET /resume?expires_in=<minutes>
func (h *ResumeHandler) GetResumeURL(w http.ResponseWriter, r *http.Request) {
	minutes, err := parseExpiresIn(r)
	if err != nil {
		signedURLsTotal.WithLabelValues("invalid_request").Inc()
		writeError(w, r, http.StatusBadRequest, CodeInvalidExpiresIn, err.Error())
		return
	}

	signed, err := h.service.IssueURL(r.Context(), resumeurl.IssueURLRequest{ExpiresInMinutes: minutes})
	if err != nil {
		signedURLsTotal.WithLabelValues("error").Inc()
		h.logger.Error("Failed to sign résumé URL",
			"object_key", h.service.ObjectKey(),
			"request_id", RequestIDFromContext(r.Context()),
			"err", err)
		if errors.Is(err, resumeurl.ErrSigningFailed) {
			writeError(w, r, http.StatusInternalServerError, CodeSigningFailed, "could not generate a signed URL")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	signedURLsTotal.WithLabelValues("ok").Inc()
	signedURLLifetime.Observe(signed.ExpiresIn.Seconds())
	h.logger.Debug("Issued résumé URL",
		"object_key", h.service.ObjectKey(),
		"expires_in", signed.ExpiresIn,
		"expires_at", signed.ExpiresAt)

	w.Header().Set("Cache-Control", "no-store")
	render.JSON(w, r, ResumeURLResponse{
		SignedURL: signed.URL,
		ExpiresAt: signed.ExpiresAt,
	})
}

// parseExpiresIn returns nil when the parameter is absent or empty.
func parseExpiresIn(r *http.Request) (*int64, error) {
	v := r.URL.Query().Get(ExpiresInParam)
	if v == "" {
		return nil, nil
	}
	minutes, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer number of minutes, got %q",
			resumeurl.ErrInvalidExpiration, ExpiresInParam, v)
	}
	return &minutes, nil
}
