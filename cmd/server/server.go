package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendant/resume-url/pkg/resumeurl"
	"github.com/tendant/resume-url/pkg/resumeurl/api"
	"github.com/tendant/resume-url/pkg/resumeurl/config"
	"github.com/tendant/resume-url/pkg/resumeurl/presigned"
	fsstorage "github.com/tendant/resume-url/pkg/resumeurl/storage/fs"
)

type HTTPServer struct {
	config  *config.Config
	service resumeurl.Service
	storage config.Storage
	logger  *slog.Logger
}

func NewHTTPServer(cfg *config.Config, service resumeurl.Service, storage config.Storage, logger *slog.Logger) *HTTPServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPServer{
		config:  cfg,
		service: service,
		storage: storage,
		logger:  logger,
	}
}

func (s *HTTPServer) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(api.RequestIDMiddleware)
	r.Use(api.RequestLogger(s.logger))
	r.Use(api.MetricsMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.config.RequestTimeout))

	r.Mount("/healthz", api.NewHealthHandler(s.storage, s.config.ObjectKey, s.logger).Routes())
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/api/v1", api.NewResumeHandler(s.service, s.logger).Routes())

	// Only the fs backend issues URLs that point back at this process.
	if fsBackend, ok := s.storage.(*fsstorage.Backend); ok {
		presigned.NewHandlers(fsBackend.Signer(), fsBackend, s.logger).Mount(r)
	}

	return r
}
