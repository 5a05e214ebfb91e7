package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"branchwrite/internal/domain"
	"branchwrite/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var notFound *domain.NotFoundError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFound):
		httputil.RespondErrorWithExtras(w, http.StatusNotFound, err.Error(), map[string]interface{}{
			"resource_type": notFound.ResourceType,
			"resource_id":   notFound.ResourceID,
		})
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrParse):
		logger.Warn("stored data could not be parsed", "error", err)
		httputil.RespondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrIO):
		logger.Error("storage failure", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, err.Error())
	default:
		logger.Error("unexpected error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseBody decodes a JSON request body, writing a 400 on failure
func parseBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := httputil.ParseJSON(w, r, dest); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
