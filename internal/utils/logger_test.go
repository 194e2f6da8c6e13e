package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(NewLogger(&buf, slog.LevelInfo, true))

	logger.LogError(errors.New("boom"), "Failed to save", "key", "essay")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Failed to save", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "essay", entry["key"])
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(NewLogger(&buf, slog.LevelWarn, false))

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogRequest_LevelByStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(NewLogger(&buf, slog.LevelDebug, true))

	logger.LogRequest("GET", "/health", 503, "1ms")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, float64(503), entry["status_code"])
}

func TestContextLogger_StoresRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fallback := NewDiscardLogger()

	var got Logger
	router := gin.New()
	router.Use(ContextLogger(fallback))
	router.GET("/ping", func(c *gin.Context) {
		got = GetLoggerFromContext(c, nil)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotNil(t, got)
	assert.NotSame(t, fallback, got)
}
