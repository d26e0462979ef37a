package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/taskvault/pkg/errkind"
)

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, WriteSuccess(w, "Successfully retrieved task", map[string]int{"id": 3}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	env := decodeEnvelope(t, w)
	assert.Equal(t, http.StatusOK, env.StatusCode)
	assert.Equal(t, "Successfully retrieved task", env.Message)
}

func TestWriteAppError_KindMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", errkind.New(errkind.Validation, "bad date"), http.StatusBadRequest, "bad date"},
		{"conflict", errkind.New(errkind.Conflict, "Email already registered"), http.StatusConflict, "Email already registered"},
		{"not found", errkind.New(errkind.NotFound, "Task not found"), http.StatusNotFound, "Task not found"},
		{"unauthorized", errkind.New(errkind.Unauthorized, "Invalid credentials"), http.StatusUnauthorized, "Invalid credentials"},
		{"invalid token", errkind.New(errkind.InvalidToken, "invalid or expired token"), http.StatusUnauthorized, "invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteAppError(w, nil, "test.op", tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			env := decodeEnvelope(t, w)
			assert.Equal(t, tt.wantMsg, env.Message)
		})
	}
}

func TestWriteAppError_ForbiddenIsOpaque(t *testing.T) {
	w := httptest.NewRecorder()
	WriteAppError(w, nil, "guard", errkind.New(errkind.Forbidden, "task 3 belongs to user 9"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	env := decodeEnvelope(t, w)
	// The denial reveals nothing about the resource.
	assert.Equal(t, "Forbidden resource", env.Message)
	assert.NotContains(t, w.Body.String(), "belongs")
}

func TestWriteAppError_InternalIsOpaque(t *testing.T) {
	w := httptest.NewRecorder()
	WriteAppError(w, nil, "task.list", errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "Something went wrong", env.Message)
	assert.NotContains(t, w.Body.String(), "pq:")
}
