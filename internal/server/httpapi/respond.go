package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/upcheck/internal/server/services"
)

type errorBody struct {
	Error string `json:"Error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrAlreadyExists),
		errors.Is(err, services.ErrQuotaExceeded),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrTokenExpired):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError flattens a services error into a status and an
// {"Error": msg} body. Cascade and consistency failures keep their message;
// any other internal failure is reported generically and logged.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		if !errors.Is(err, services.ErrPartialCascade) &&
			!errors.Is(err, services.ErrOwnerUpdateFailed) &&
			!errors.Is(err, services.ErrInconsistentState) {
			msg = "internal server error"
		}
	}
	writeError(w, status, msg)
}

// decodeJSON parses the request body into out. A malformed body is a
// validation failure, not an internal one.
func decodeJSON(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return services.ErrValidation
	}
	return nil
}
