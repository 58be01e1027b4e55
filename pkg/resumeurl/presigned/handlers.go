package presigned

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/resume-url/pkg/resumeurl"
)

// DownloadPrefix is the route prefix presigned download URLs point at
const DownloadPrefix = "/download/"

// ObjectOpener is implemented by storage backends whose objects can be served
// directly by this process
type ObjectOpener interface {
	Open(ctx context.Context, objectKey string) (io.ReadSeekCloser, *resumeurl.ObjectMeta, error)
}

// Handlers serves objects behind presigned download URLs.
// URL format: GET /download/{objectKey...}?signature={hmac}&expires={timestamp}
type Handlers struct {
	signer *Signer
	store  ObjectOpener
	logger *slog.Logger
}

// NewHandlers creates presigned download handlers backed by store
func NewHandlers(signer *Signer, store ObjectOpener, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		signer: signer,
		store:  store,
		logger: logger,
	}
}

// Mount mounts the download route, behind ValidateMiddleware, on a chi router
func (h *Handlers) Mount(r chi.Router) {
	r.With(ValidateMiddleware(h.signer, h.logger)).Get(DownloadPrefix+"*", h.HandleDownload)
}

// HandleDownload streams the object validated by ValidateMiddleware.
// Requests that did not pass the middleware are refused.
func (h *Handlers) HandleDownload(w http.ResponseWriter, r *http.Request) {
	objectKey := ObjectKeyFromContext(r.Context())
	if objectKey == "" {
		writeError(w, r, http.StatusUnauthorized, "missing_signature", "download URL has not been validated")
		return
	}

	rc, meta, err := h.store.Open(r.Context(), objectKey)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeError(w, r, http.StatusNotFound, "object_not_found", "object not found")
			return
		}
		h.logger.Error("Presigned download failed", "object_key", objectKey, "err", err)
		writeError(w, r, http.StatusInternalServerError, "download_failed", "failed to open object")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", meta.ContentType)
	w.Header().Set("Cache-Control", "private, no-store")
	http.ServeContent(w, r, path.Base(objectKey), meta.LastModified, rc)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: errorBody{Code: code, Message: message}})
}
