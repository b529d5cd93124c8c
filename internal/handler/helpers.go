package handler

import (
	"errors"
	"net/http"
	"sort"

	"portfolio/internal/domain"
	"portfolio/internal/httputil"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// handleError translates domain errors into response envelopes at the
// boundary. Nothing propagates as an unhandled server error: unknown errors
// become a generic 500.
func handleError(w http.ResponseWriter, err error) {
	var verrs validation.Errors

	switch {
	case errors.As(err, &verrs):
		httputil.RespondValidationErrors(w, "Validation failed", fieldErrors(verrs))
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrInvalidCredentials):
		httputil.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrUploadRejected):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrStoreWriteDenied):
		// Actionable hint without the raw error: the operator needs to know
		// this is a permissions problem, not a transient failure.
		httputil.RespondError(w, http.StatusInternalServerError,
			"Could not save data: the server has no write access to its data file. Configure a writable path or switch to the blob store backend.")
	case errors.Is(err, domain.ErrStoreUnavailable), errors.Is(err, domain.ErrStoreWriteFailed):
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to access portfolio data")
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// fieldErrors flattens ozzo's error map into the envelope's error list,
// sorted by field for deterministic responses.
func fieldErrors(verrs validation.Errors) []httputil.FieldError {
	fields := make([]string, 0, len(verrs))
	for field := range verrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make([]httputil.FieldError, 0, len(fields))
	for _, field := range fields {
		out = append(out, httputil.FieldError{Field: field, Message: verrs[field].Error()})
	}
	return out
}
