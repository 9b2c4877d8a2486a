package inspect

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	original := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(original) })

	return &buf
}

func TestRecovery_PanicReturns500(t *testing.T) { //nolint:paralleltest // modifies global slog default
	buf := captureLogs(t)

	handler := recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("test panic value")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "test panic value")
	assert.Contains(t, buf.String(), "/panic")
}

func TestRecovery_PanicAfterWrite(t *testing.T) { //nolint:paralleltest // modifies global slog default
	buf := captureLogs(t)

	handler := recovery(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		panic("late")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/late", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, buf.String(), "after response was already written")
}

func TestRequestLogging_LevelByStatus(t *testing.T) { //nolint:paralleltest // modifies global slog default
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "ok", status: http.StatusOK, wantLevel: `"level":"INFO"`},
		{name: "not found", status: http.StatusNotFound, wantLevel: `"level":"WARN"`},
		{name: "server error", status: http.StatusInternalServerError, wantLevel: `"level":"ERROR"`},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			buf := captureLogs(t)

			handler := requestLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(testInfo.status)
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/values/a", nil))

			assert.Contains(t, buf.String(), testInfo.wantLevel)
			assert.Contains(t, buf.String(), `"path":"/values/a"`)
		})
	}
}

func TestRequestID_LoggedWithRequest(t *testing.T) { //nolint:paralleltest // modifies global slog default
	buf := captureLogs(t)

	var seen string

	handler := requestID(requestLogging(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	})))

	req := httptest.NewRequest(http.MethodGet, "/entries", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLength+1))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"request_id":"`+seen+`"`)
}
