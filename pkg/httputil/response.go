// Package httputil provides HTTP handler utilities for consistent error
// handling, JSON encoding/decoding, and request parsing. The error-kind to
// HTTP-status mapping lives here and nowhere else.
package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/taskvault/taskvault/pkg/errkind"
)

// Envelope is the standard response body: a status code echo, a
// human-readable message, and the payload.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Error      string      `json:"error,omitempty"`
	Body       interface{} `json:"body,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a 200 envelope with a message and payload.
func WriteSuccess(w http.ResponseWriter, message string, body interface{}) error {
	return WriteJSON(w, http.StatusOK, Envelope{
		StatusCode: http.StatusOK,
		Message:    message,
		Body:       body,
	})
}

// WriteErrorMessage writes an error envelope with the given status.
func WriteErrorMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{
		StatusCode: status,
		Message:    message,
		Error:      http.StatusText(status),
	})
}

// WriteUnauthorized writes a 401 error envelope.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteErrorMessage(w, http.StatusUnauthorized, message)
}

// WriteForbidden writes a 403 error envelope. The message is fixed so a
// denial never reveals whether the resource exists.
func WriteForbidden(w http.ResponseWriter) {
	WriteErrorMessage(w, http.StatusForbidden, "Forbidden resource")
}

// WriteBadRequest writes a 400 error envelope.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteErrorMessage(w, http.StatusBadRequest, message)
}

// WriteInternalError writes an opaque 500 envelope. Detail stays server-side.
func WriteInternalError(w http.ResponseWriter) {
	WriteErrorMessage(w, http.StatusInternalServerError, "Something went wrong")
}

// statusFor maps an error kind to its HTTP status.
func statusFor(kind errkind.Kind) int {
	switch kind {
	case errkind.Validation:
		return http.StatusBadRequest
	case errkind.Conflict:
		return http.StatusConflict
	case errkind.NotFound:
		return http.StatusNotFound
	case errkind.Unauthorized, errkind.InvalidToken:
		return http.StatusUnauthorized
	case errkind.Forbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// WriteAppError maps a kind-tagged error to its HTTP response. Client
// errors carry the error's message; internal failures are logged with the
// originating operation name and surfaced opaquely.
func WriteAppError(w http.ResponseWriter, log *logrus.Logger, operation string, err error) {
	status := statusFor(errkind.KindOf(err))
	if status == http.StatusInternalServerError {
		if log != nil {
			log.WithError(err).WithField("operation", operation).Error("request failed")
		}
		WriteInternalError(w)
		return
	}
	if status == http.StatusForbidden {
		WriteForbidden(w)
		return
	}
	WriteErrorMessage(w, status, err.Error())
}
