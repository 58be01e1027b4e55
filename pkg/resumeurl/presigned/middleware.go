package presigned

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type contextKey string

// objectKeyContextKey holds the object key whose signature was validated
const objectKeyContextKey contextKey = "presigned:object_key"

// ValidateMiddleware rejects requests to the download route whose signature or
// expiry does not check out for the object key in the wildcard path segment.
// Accepted requests carry the validated key, see ObjectKeyFromContext.
//
// A Signer without a secret key cannot validate anything, so every request is
// refused with 503 rather than served unsigned.
func ValidateMiddleware(signer *Signer, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !signer.IsEnabled() {
				logger.Error("Presigned download refused: no secret key configured")
				writeError(w, r, http.StatusServiceUnavailable, "downloads_disabled", "signed downloads are not configured")
				return
			}

			objectKey := chi.URLParam(r, "*")
			if objectKey == "" {
				writeError(w, r, http.StatusBadRequest, "missing_object_key", "object key is required in URL path")
				return
			}

			if err := signer.ValidateRequest(r, objectKey); err != nil {
				status, code := validationStatus(err)
				logger.Warn("Presigned download rejected", "object_key", objectKey, "err", err)
				writeError(w, r, status, code, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), objectKeyContextKey, objectKey)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ObjectKeyFromContext returns the key validated by ValidateMiddleware, or ""
func ObjectKeyFromContext(ctx context.Context) string {
	key, _ := ctx.Value(objectKeyContextKey).(string)
	return key
}

func validationStatus(err error) (int, string) {
	if !IsAuthError(err) {
		return http.StatusInternalServerError, "validation_failed"
	}
	switch {
	case errors.Is(err, ErrMissingSignature):
		return http.StatusUnauthorized, "missing_signature"
	case errors.Is(err, ErrMissingExpiration):
		return http.StatusUnauthorized, "missing_expires"
	case errors.Is(err, ErrInvalidExpiration):
		return http.StatusBadRequest, "invalid_expires"
	case errors.Is(err, ErrExpired):
		return http.StatusForbidden, "expired"
	default:
		return http.StatusForbidden, "invalid_signature"
	}
}
