package api

import (
	"net/http"

	"github.com/go-chi/render"
)

// Error codes returned in JSON error bodies
const (
	CodeInvalidExpiresIn  = "invalid_expires_in"
	CodeSigningFailed     = "signing_failed"
	CodeObjectUnavailable = "object_unavailable"
)

// ErrorBody describes a failed request
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON envelope for every error this package writes
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}
