package helpers

import (
	"encoding/json"
	"errors"
	"net/http"

	"travelagency/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeNotFound      = "not_found"
	ErrCodeConflict      = "conflict"
	ErrCodeInternalError = "internal_error"
)

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: data, Error: nil})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Data:  nil,
		Error: &APIError{Code: code, Message: message},
	})
}

// internalErrorMessage replaces the error text of 500 responses when redaction is on.
const internalErrorMessage = "internal server error"

// statusFor lists the specific errors before their categories so the response
// carries the most precise message.
var statusFor = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrClientNotFound, http.StatusNotFound, ErrCodeNotFound},
	{domain.ErrTripNotFound, http.StatusNotFound, ErrCodeNotFound},
	{domain.ErrRegistrationNotFound, http.StatusNotFound, ErrCodeNotFound},
	{domain.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
	{domain.ErrPeselTaken, http.StatusConflict, ErrCodeConflict},
	{domain.ErrDuplicateRegistration, http.StatusConflict, ErrCodeConflict},
	{domain.ErrCapacityExceeded, http.StatusConflict, ErrCodeConflict},
	{domain.ErrConflict, http.StatusConflict, ErrCodeConflict},
}

// WriteDomainError maps err to a status code and writes the JSON error envelope.
// Unrecognized errors become 500; their text is hidden when redactInternal is set.
// It returns the status code written.
func WriteDomainError(w http.ResponseWriter, err error, redactInternal bool) int {
	if msg, ok := domain.ValidationMessage(err); ok {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, msg)
		return http.StatusBadRequest
	}
	if errors.Is(err, domain.ErrValidation) {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, domain.ErrValidation.Error())
		return http.StatusBadRequest
	}
	for _, m := range statusFor {
		if errors.Is(err, m.target) {
			WriteJSONError(w, m.status, m.code, m.target.Error())
			return m.status
		}
	}
	msg := err.Error()
	if redactInternal {
		msg = internalErrorMessage
	}
	WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, msg)
	return http.StatusInternalServerError
}
