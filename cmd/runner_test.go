package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/neutral-yo/ytvideofind/internal/services"
	"github.com/neutral-yo/ytvideofind/internal/shared"
	mocks "github.com/neutral-yo/ytvideofind/internal/testing"
	"github.com/urfave/cli/v3"
)

func quietRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(&bytes.Buffer{})
	}
	if opts.Output == nil {
		opts.Output = &bytes.Buffer{}
	}
	return NewRunner(opts)
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner applies defaults", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})

		if runner.config == nil {
			t.Error("expected default config")
		}
		if runner.logger == nil {
			t.Error("expected default logger")
		}
		if runner.output == nil {
			t.Error("expected default output writer")
		}
	})

	t.Run("register exposes serve and setup", func(t *testing.T) {
		runner := quietRunner(RunnerOpts{})
		commands := runner.register()

		names := map[string]bool{}
		for _, command := range commands {
			names[command.Name] = true
		}
		if !names["serve"] || !names["setup"] {
			t.Errorf("expected serve and setup commands, got %v", names)
		}
	})

	t.Run("writePlain writes formatted text", func(t *testing.T) {
		var buf bytes.Buffer
		runner := quietRunner(RunnerOpts{Output: &buf})

		if err := runner.writePlain("port %d\n", 3000); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if buf.String() != "port 3000\n" {
			t.Errorf("unexpected output %q", buf.String())
		}
	})

	t.Run("writePlain surfaces writer failure", func(t *testing.T) {
		runner := quietRunner(RunnerOpts{Output: &mocks.FWriter{}})
		if err := runner.writePlain("x"); err == nil {
			t.Error("expected error from failing writer")
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		var buf bytes.Buffer
		runner := quietRunner(RunnerOpts{Output: &buf})

		if err := runner.writeJSON(map[string]string{"id": "PL1"}, false); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.TrimSpace(buf.String()) != `{"id":"PL1"}` {
			t.Errorf("unexpected output %q", buf.String())
		}
	})

	t.Run("Setup creates a config file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		runner := quietRunner(RunnerOpts{})

		newApp := func() *cli.Command {
			return &cli.Command{Name: "ytvideofind", Commands: runner.register()}
		}

		if err := newApp().Run(context.Background(), []string{"ytvideofind", "setup", "-c", configPath}); err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		mocks.AssertFileExists(t, configPath)

		if err := newApp().Run(context.Background(), []string{"ytvideofind", "setup", "-c", configPath}); err == nil {
			t.Error("expected second setup to fail on existing file")
		}
	})
}

func TestBuildRouter(t *testing.T) {
	mock := &mocks.MockCatalog{
		SearchFunc: func(ctx context.Context, query string) ([]services.Video, error) {
			return []services.Video{{ID: "v1", Title: "Hit", Thumbnail: "http://img/1.jpg"}}, nil
		},
	}
	runner := quietRunner(RunnerOpts{YouTube: mock})
	router := runner.buildRouter()

	t.Run("serves the front end at /", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "YouTube Video Finder") {
			t.Error("expected home page markup")
		}
	})

	t.Run("redirects /auth/youtube to the consent URL", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/youtube", nil))

		if rec.Code != http.StatusFound {
			t.Fatalf("expected 302, got %d", rec.Code)
		}
		if !strings.Contains(rec.Header().Get("Location"), "state=") {
			t.Errorf("expected state in consent URL, got %s", rec.Header().Get("Location"))
		}
	})

	t.Run("routes catalog queries", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/videos?query=hit", nil)
		req.Header.Set("Authorization", "Bearer token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"id":"v1"`) {
			t.Errorf("expected search hit in body, got %s", rec.Body.String())
		}
	})

	t.Run("rejects non-GET on API routes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/playlists", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})
}
