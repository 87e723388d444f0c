package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"userfiles/internal/domain"
	"userfiles/internal/httputil"
)

// handleError maps domain errors to HTTP responses. Duplicate-resource
// conflicts report 400, matching the historical API, and the size-limit
// error carries the limit and offending size alongside the message.
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var sizeErr *domain.SizeLimitError
	if errors.As(err, &sizeErr) {
		httputil.RespondErrorWithExtras(w, http.StatusBadRequest, sizeErr.Error(), map[string]interface{}{
			"maxSize":      sizeErr.Limit,
			"uploadedSize": sizeErr.Actual,
		})
		return
	}

	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		httputil.RespondError(w, http.StatusBadRequest, conflictErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrLinkExpired):
		httputil.RespondError(w, http.StatusForbidden, "share link has expired")
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, "forbidden")
	default:
		logger.Error("unhandled error",
			"error", err,
			"path", r.URL.Path,
			"request_id", httputil.GetRequestID(r),
		)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
