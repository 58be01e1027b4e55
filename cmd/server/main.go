package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/tendant/resume-url/internal/logging"
	"github.com/tendant/resume-url/pkg/resumeurl"
	"github.com/tendant/resume-url/pkg/resumeurl/config"
)

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err == nil {
		err = cfg.ValidateServing()
	}
	if err != nil {
		slog.Error("Failed to load configuration", "err", err)
		os.Exit(1)
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.Setup(os.Stdout, cfg.Environment, level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, err := cfg.BuildStorage(ctx)
	if err != nil {
		logger.Error("Failed to initialize storage backend", "backend", cfg.StorageBackend, "err", err)
		os.Exit(1)
	}

	service, err := resumeurl.New(append(cfg.ServiceOptions(), resumeurl.WithSigner(storage))...)
	if err != nil {
		logger.Error("Failed to create service", "err", err)
		os.Exit(1)
	}

	server := NewHTTPServer(cfg, service, storage, logger)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Resume URL server starting",
			"port", cfg.Port,
			"env", cfg.Environment,
			"backend", cfg.StorageBackend,
			"object_key", cfg.ObjectKey,
			"default_expiration", cfg.DefaultExpiration,
			"max_expiration", cfg.MaxExpiration)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server error", "err", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "err", err)
		os.Exit(1)
	}

	logger.Info("Server exiting")
}
