package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"librarian/internal/apperr"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "ALREADY_EXISTS"
	CodeUnavailable  = "UNAVAILABLE"
	CodeInternal     = "INTERNAL_ERROR"
	CodeRateLimited  = "RATE_LIMIT_EXCEEDED"
	CodeTooLarge     = "REQUEST_TOO_LARGE"
)

// StatusFor maps an application error onto an HTTP status and error code.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, CodeForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, apperr.ErrUnavailable):
		return http.StatusBadRequest, CodeUnavailable
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// Fail writes err as an error envelope. Internal errors are logged and their
// message is replaced with a generic one.
func Fail(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, code := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.ErrorContext(r.Context(), "request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", RequestIDFrom(r),
				"error", err,
			)
		}
		msg = "An internal error occurred"
	}
	JSONError(w, r, status, code, msg, nil)
}
