package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zapponejosh/panchanga-api/internal/astro"
	"github.com/zapponejosh/panchanga-api/internal/calendar"
	"github.com/zapponejosh/panchanga-api/internal/database"
	"github.com/zapponejosh/panchanga-api/internal/logger"
)

// Response represents a standard API response.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details.
type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// WriteCreated writes a 201 response.
func WriteCreated(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, status int, message string, code ...string) error {
	errInfo := ErrorInfo{
		Message: message,
	}
	if len(code) > 0 {
		errInfo.Code = code[0]
	}

	return WriteJSON(w, status, Response{
		Success: false,
		Error:   &errInfo,
	})
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusNotFound, message, "NOT_FOUND")
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusBadRequest, message, "BAD_REQUEST")
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusInternalServerError, message, "INTERNAL_ERROR")
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusUnauthorized, message, "UNAUTHORIZED")
}

// WriteDomainError maps errors from the engine and the store onto
// status codes. Anything unrecognised is logged and reported as a 500
// without leaking its text.
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case astro.IsInvalidInput(err), errors.Is(err, calendar.ErrBadFormat):
		WriteBadRequest(w, err.Error())
	case errors.Is(err, calendar.ErrSunUnavailable):
		WriteError(w, http.StatusUnprocessableEntity, err.Error(), "SUN_UNAVAILABLE")
	case errors.Is(err, astro.ErrTransitionNotFound):
		WriteError(w, http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, astro.ErrNoBracket):
		WriteError(w, http.StatusUnprocessableEntity, err.Error(), "NO_BRACKET")
	case database.IsNotFound(err):
		WriteNotFound(w, err.Error())
	case errors.Is(err, database.ErrDuplicate):
		WriteError(w, http.StatusConflict, err.Error(), "CONFLICT")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		WriteError(w, http.StatusServiceUnavailable, "request canceled", "CANCELED")
	default:
		logger.Error(r.Context(), "request failed", err, "path", r.URL.Path)
		WriteInternalError(w, "internal error")
	}
}
