package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/neutral-yo/ytvideofind/internal/shared"
)

func TestRequestLogger(t *testing.T) {
	t.Run("logs method, path and status", func(t *testing.T) {
		var buf bytes.Buffer
		logger := shared.NewLogger(&buf)

		handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/videos", nil))

		out := buf.String()
		for _, want := range []string{"GET", "/api/videos", "418"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected log to contain %q, got %q", want, out)
			}
		}
	})

	t.Run("defaults status to 200", func(t *testing.T) {
		var buf bytes.Buffer
		logger := shared.NewLogger(&buf)

		handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		if !strings.Contains(buf.String(), "200") {
			t.Errorf("expected implicit 200 in log, got %q", buf.String())
		}
	})
}
