// Package response writes enveloped JSON responses for routes served
// directly on the router, keeping their wire shape aligned with the rest
// of the API.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/recipebox/recipebox-server/internal/errors"
)

// Envelope is the wire format shared by all JSON responses.
type Envelope struct {
	Version string `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Version is the API envelope version stamp.
const Version = "1"

// JSON writes an enveloped payload with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, Envelope{
		Version: Version,
		Success: status < 400,
		Data:    data,
	})
}

// Success writes a 200 response.
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes a 201 response.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// Error writes an enveloped error with the given status code.
func Error(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, Envelope{
		Version: Version,
		Success: false,
		Error:   message,
	})
}

// BadRequest writes a 400 response.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 response.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// NotFound writes a 404 response.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// InternalError writes a 500 response.
func InternalError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}

// HandleError maps a domain error to the right status code and writes it.
func HandleError(w http.ResponseWriter, err error) {
	var domainErr *errors.Error
	if errors.As(err, &domainErr) {
		Error(w, domainErr.HTTPStatus(), domainErr.Message)
		return
	}
	InternalError(w, "internal error")
}

func writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("write response", "error", err)
	}
}
