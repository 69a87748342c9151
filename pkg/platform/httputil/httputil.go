// Package httputil translates domain errors and response payloads to HTTP.
// Handlers delegate here so status mapping lives in one place.
package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "payscope/pkg/domain-errors"
)

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Validatable is implemented by request payloads that check and normalize
// themselves after decoding.
type Validatable interface {
	Validate() error
}

// DecodeAndPrepare decodes the JSON request body into T and runs its
// validation. On failure the mapped error response has already been written
// and the second return is false.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	var payload T
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "request body must be valid JSON"))
		return nil, false
	}
	if v, ok := any(&payload).(Validatable); ok {
		if err := v.Validate(); err != nil {
			if logger != nil {
				logger.DebugContext(r.Context(), "request validation failed", "error", err)
			}
			WriteError(w, err)
			return nil, false
		}
	}
	return &payload, true
}

type errorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteError maps a domain error to its HTTP representation. Internal errors
// omit the description so infrastructure details never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.GetCode(err)
	status := statusFor(code)

	body := errorBody{Error: wireCode(code)}
	if code != dErrors.CodeInternal {
		var de *dErrors.Error
		if errors.As(err, &de) {
			body.Description = de.Message
		}
	}
	WriteJSON(w, status, body)
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeValidation, dErrors.CodeInvalidInput, dErrors.CodeBadRequest, dErrors.CodeInvalidQuery:
		return http.StatusBadRequest
	case dErrors.CodeNotFound, dErrors.CodeNoData:
		return http.StatusNotFound
	case dErrors.CodeReferential, dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeEmptyPopulation:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}

// wireCode keeps the on-wire error identifiers stable even if internal code
// strings change.
func wireCode(code dErrors.Code) string {
	switch code {
	case dErrors.CodeValidation:
		return "validation_error"
	case dErrors.CodeInvalidInput:
		return "invalid_input"
	case dErrors.CodeBadRequest:
		return "bad_request"
	case dErrors.CodeInvalidQuery:
		return "invalid_query"
	case dErrors.CodeNotFound:
		return "not_found"
	case dErrors.CodeReferential:
		return "referential_error"
	case dErrors.CodeConflict:
		return "duplicate_entity"
	case dErrors.CodeEmptyPopulation:
		return "empty_population"
	case dErrors.CodeNoData:
		return "no_data_available"
	default:
		return "internal_error"
	}
}
