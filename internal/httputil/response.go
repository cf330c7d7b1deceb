package httputil

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/tutorhub/tutor-server-go/internal/errors"
)

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError writes an AppError as an HTTP response with appropriate status code
func WriteError(w http.ResponseWriter, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Internal("An unexpected error occurred")
	}

	WriteJSON(w, StatusFromCode(appErr.Code), ErrorResponse{Error: appErr.Message})
}

// StatusFromCode maps ErrorCode to HTTP status code. The boundary contract
// uses 400 for malformed input, 403 for a registration conflict, and 404 for
// everything that fails a lookup, token check or credential check.
func StatusFromCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeMissingField,
		apperrors.ErrCodeInvalidInput:
		return http.StatusBadRequest

	case apperrors.ErrCodeAlreadyExists:
		return http.StatusForbidden

	case apperrors.ErrCodeNotFound,
		apperrors.ErrCodeInvalidCredentials,
		apperrors.ErrCodeInvalidToken:
		return http.StatusNotFound

	case apperrors.ErrCodeTokenCollision:
		return http.StatusConflict

	case apperrors.ErrCodeDatabase,
		apperrors.ErrCodeInternal:
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}
