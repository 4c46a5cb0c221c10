package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLogger(t *testing.T) {
	logBuffer := new(bytes.Buffer)
	testLogger := slog.New(slog.NewJSONHandler(logBuffer, nil))

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1}`))
	})

	req := httptest.NewRequest(http.MethodPost, "/customers", nil)
	req.RemoteAddr = "192.0.2.1:12345"
	req.Header.Set("User-Agent", "TestAgent/1.0")

	testReqID := "test-request-id-123"
	req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, testReqID))

	rr := httptest.NewRecorder()
	StructuredLogger(testLogger)(nextHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(logBuffer.Bytes(), &logEntry))

	assert.Equal(t, "INFO", logEntry["level"])
	assert.Equal(t, "Served request", logEntry["msg"])
	assert.Equal(t, req.Method, logEntry["method"])
	assert.Equal(t, req.URL.Path, logEntry["path"])
	assert.Equal(t, req.RemoteAddr, logEntry["remote_addr"])
	assert.Equal(t, req.UserAgent(), logEntry["user_agent"])
	assert.Equal(t, float64(http.StatusCreated), logEntry["status"])
	assert.Equal(t, float64(len(`{"id":1}`)), logEntry["bytes_written"])
	assert.Equal(t, testReqID, logEntry["request_id"])
}

func TestStructuredLoggerNoRequestID(t *testing.T) {
	logBuffer := new(bytes.Buffer)
	testLogger := slog.New(slog.NewJSONHandler(logBuffer, nil))

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	rr := httptest.NewRecorder()
	StructuredLogger(testLogger)(nextHandler).ServeHTTP(rr, req)

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(logBuffer.Bytes(), &logEntry))

	assert.Equal(t, "", logEntry["request_id"])
	assert.Equal(t, float64(http.StatusOK), logEntry["status"])
}
