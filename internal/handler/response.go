package handler

// RESPONSE HELPERS:
// These functions standardise how we read JSON requests and send JSON
// responses and errors, so every handler stays a few lines long:
//
//	if !decodeJSON(w, r, h.logger, &req) { return }
//	writeJSON(w, h.logger, http.StatusOK, data)
//	writeError(w, h.logger, err)
//
// Each handler passes its own logger, so failures are logged with whatever
// attributes the server attached to it.
//
// CONSISTENT ERROR FORMAT:
// Every error response from the API has the same shape:
//
//	{"error": "validation_error", "message": "validation failed",
//	 "details": ["title is required", "status is required"]}
//
// "details" is omitted when there is only a single message to report.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/task-manager/internal/apperror"
)

// maxBodyBytes caps request bodies. The largest valid body is a task with a
// 100-rune title and a 500-rune description, far below this.
const maxBodyBytes = 1 << 20

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string   `json:"error"`             // Machine-readable error type (e.g., "not_found")
	Message string   `json:"message"`           // Human-readable description
	Details []string `json:"details,omitempty"` // One entry per violated rule
}

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status must be set BEFORE the body. Once Encode writes,
// header changes are silently ignored.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			logger.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// decodeJSON reads the request body into dst. On malformed JSON it writes
// a 400 and returns false; the handler must return immediately.
func decodeJSON(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Debug("rejected request body",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeJSON(w, logger, http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid JSON body",
		})
		return false
	}
	return true
}

// writeError maps a domain error to the appropriate HTTP status code and sends it.
//
// ERROR MAPPING:
// The service layer returns apperror sentinels and never knows about HTTP.
// This function is the single place where they become status codes:
//
//	ErrValidation   → 400
//	ErrUnauthorized → 401
//	ErrNotFound     → 404
//	ErrConflict     → 409
//	anything else   → 500
//
// Internal errors never expose their cause. The service has already logged
// it; unexpected non-AppError values are logged here.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || errors.Is(err, apperror.ErrInternal) {
		if appErr == nil {
			logger.Error("unhandled error", slog.String("error", err.Error()))
		}
		writeJSON(w, logger, http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "an internal error occurred",
		})
		return
	}

	status := http.StatusInternalServerError
	errorType := "internal_error"

	switch {
	case errors.Is(err, apperror.ErrValidation):
		status = http.StatusBadRequest
		errorType = "validation_error"
	case errors.Is(err, apperror.ErrUnauthorized):
		status = http.StatusUnauthorized
		errorType = "unauthorized"
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
		errorType = "not_found"
	case errors.Is(err, apperror.ErrConflict):
		status = http.StatusConflict
		errorType = "conflict"
	}

	resp := ErrorResponse{Error: errorType, Message: appErr.Message}
	if len(appErr.Details) > 1 || (len(appErr.Details) == 1 && appErr.Details[0] != appErr.Message) {
		resp.Details = appErr.Details
	}
	writeJSON(w, logger, status, resp)
}
