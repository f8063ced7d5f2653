// Package rest carries the HTTP plumbing shared by the feature handlers:
// JSON rendering, the error-to-status mapping, and pagination parameters.
package rest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/criteria"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/domain"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Message     string       `json:"message"`
	FieldErrors []FieldError `json:"fieldErrors,omitempty"`
}

// FieldError carries the per-field detail of a validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// WriteJSON renders payload with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[HTTP] failed to encode response: %v", err)
	}
}

// LogError records a failure on a response whose headers are already
// written, where no error body can follow.
func LogError(r *http.Request, err error) {
	log.Printf("[HTTP] %s %s failed mid-response: %v", r.Method, r.URL.Path, err)
}

// WriteError maps a domain error onto its HTTP status and renders it.
// Validation and unknown-filter-field problems are client errors; absent
// entities become 404 only here, at the boundary.
func WriteError(w http.ResponseWriter, err error) {
	var (
		validationErrs domain.ValidationErrors
		validationErr  domain.ValidationError
		unknownField   *criteria.UnknownFieldError
		unknownOp      *criteria.UnknownOperatorError
	)
	switch {
	case errors.As(err, &validationErrs):
		fields := make([]FieldError, len(validationErrs))
		for i, v := range validationErrs {
			fields[i] = FieldError{Field: v.Field, Message: v.Message}
		}
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: "validation failed", FieldErrors: fields})
	case errors.As(err, &validationErr):
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Message:     "validation failed",
			FieldErrors: []FieldError{{Field: validationErr.Field, Message: validationErr.Message}},
		})
	case errors.As(err, &unknownField), errors.As(err, &unknownOp):
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		WriteJSON(w, http.StatusNotFound, ErrorResponse{Message: "not found"})
	case errors.Is(err, domain.ErrConflict):
		WriteJSON(w, http.StatusConflict, ErrorResponse{Message: err.Error()})
	default:
		log.Printf("[HTTP] internal error: %v", err)
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
	}
}
