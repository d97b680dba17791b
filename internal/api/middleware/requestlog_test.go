package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matiasleandrokruk/agentrelay/internal/infra/logging"
)

func TestRequestLog_TagsByRoute(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf)
	logger.SetShowTime(false)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := RequestLog(logger)(next)

	for _, path := range []string{"/ping", "/invocations"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "[HEALTH] GET /ping -> 418") {
		t.Errorf("ping line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "[INFO] GET /invocations -> 418") {
		t.Errorf("invocations line = %q", lines[1])
	}
}

func TestRequestLog_DefaultsTo200WhenHandlerNeverWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf)
	logger.SetShowTime(false)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	RequestLog(logger)(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	if !strings.Contains(buf.String(), "-> 200") {
		t.Errorf("log line = %q, want implicit 200", buf.String())
	}
}
