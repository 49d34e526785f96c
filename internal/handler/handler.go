package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing left to do for the client.
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// respondError maps a service error onto the wire. Validation failures
// become a 400 whose body is the field-to-message map itself; not-found
// domain errors become a 404; everything else is a 500 with a generic
// message.
func respondError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var validationErr model.ValidationError
	if errors.As(err, &validationErr) {
		logger.Debug().Err(err).Msg("request validation failed")
		writeJSON(w, http.StatusBadRequest, validationErr)
		return
	}

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case model.ErrCodeProductNotFound, model.ErrCodeCartNotFound, model.ErrCodeCartItemNotFound:
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: domainErr.Message})
			return
		case model.ErrCodeInvalidJSON:
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: domainErr.Message})
			return
		}
	}

	writeError(w, http.StatusInternalServerError, "internal server error", logger)
}

// decodeJSON decodes a request body, surfacing malformed JSON as a
// validation-shaped 400.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "invalid JSON body")
	}
	return nil
}
