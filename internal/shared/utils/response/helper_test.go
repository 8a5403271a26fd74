package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"busgo/pkg/logger"

	"github.com/gin-gonic/gin"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logger.GetDefault()
	logger.SetDefault(&logger.Logger{Logger: slog.New(slog.NewJSONHandler(&buf, nil))})
	t.Cleanup(func() { logger.SetDefault(prev) })
	return &buf
}

func TestRespondServerErrorLogs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logs := captureLogs(t)

	r := gin.New()
	r.GET("/trips", func(c *gin.Context) {
		RespondServerError(c, "Failed to load trips", errors.New("redis: connection refused"), nil)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/trips", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body StandardApiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "error" || body.StatusCode != 500 || body.Message != "Failed to load trips" || body.Errors != nil {
		t.Fatalf("unexpected body %+v", body)
	}

	out := logs.String()
	for _, want := range []string{`"msg":"HTTP Error"`, `"path":"/trips"`, `"status":500`, "redis: connection refused"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log line missing %s: %s", want, out)
		}
	}
}

func TestRespondJSONDoesNotLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logs := captureLogs(t)

	r := gin.New()
	r.GET("/cities", func(c *gin.Context) {
		RespondJSON(c, "error", http.StatusNotFound, "Search not found", nil, nil)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cities", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if logs.Len() != 0 {
		t.Fatalf("expected no log output, got %s", logs.String())
	}
}
