package presigned

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMiddleware(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	signer := New(WithSecretKey(testSecret), WithClock(fixedClock(now)))

	var seenKey string
	r := chi.NewRouter()
	r.With(ValidateMiddleware(signer, nil)).Get("/download/*", func(w http.ResponseWriter, r *http.Request) {
		seenKey = ObjectKeyFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("valid request carries the key", func(t *testing.T) {
		q, err := signer.SignQuery(http.MethodGet, "resume/Resume.pdf", time.Minute)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/download/resume/Resume.pdf?"+q.Encode(), nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "resume/Resume.pdf", seenKey)
	})

	t.Run("zero duration is rejected immediately", func(t *testing.T) {
		seenKey = ""
		q, err := signer.SignQuery(http.MethodGet, "resume/Resume.pdf", 0)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/download/resume/Resume.pdf?"+q.Encode(), nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, seenKey)
	})
}

func TestValidateMiddleware_NoSecretKey(t *testing.T) {
	called := false
	r := chi.NewRouter()
	r.With(ValidateMiddleware(New(), nil)).Get("/download/*", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/download/resume/Resume.pdf", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, called)

	var resp errorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "downloads_disabled", resp.Error.Code)
}

func TestHandleDownload_RequiresValidatedKey(t *testing.T) {
	h := NewHandlers(New(WithSecretKey(testSecret)), stubStore{"resume/Resume.pdf": []byte("%PDF")}, nil)

	r := chi.NewRouter()
	r.Get("/download/*", h.HandleDownload)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/download/resume/Resume.pdf", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "%PDF")
}

func TestValidationStatus(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{ErrMissingSignature, http.StatusUnauthorized, "missing_signature"},
		{ErrMissingExpiration, http.StatusUnauthorized, "missing_expires"},
		{fmt.Errorf("%w: bad", ErrInvalidExpiration), http.StatusBadRequest, "invalid_expires"},
		{ErrExpired, http.StatusForbidden, "expired"},
		{ErrInvalidSignature, http.StatusForbidden, "invalid_signature"},
		{ErrNoSecretKey, http.StatusInternalServerError, "validation_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			status, code := validationStatus(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStatus != http.StatusInternalServerError, IsAuthError(tt.err))
		})
	}
}
