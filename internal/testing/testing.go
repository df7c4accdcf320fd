// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/neutral-yo/ytvideofind/internal/services"
	"golang.org/x/oauth2"
)

// MockCatalog is a configurable test double for [services.CatalogService] and the
// server package's credential-binding and authorization seams.
type MockCatalog struct {
	Token *oauth2.Token // last token bound via WithCredentials

	AuthURLFunc   func(state string) string
	ExchangeFunc  func(ctx context.Context, code string) (*oauth2.Token, error)
	PlaylistsFunc func(ctx context.Context) ([]services.Playlist, error)
	ItemsFunc     func(ctx context.Context, playlistID string) ([]services.PlaylistItem, error)
	VideoFunc     func(ctx context.Context, videoID string) (*services.Video, error)
	ResolveFunc   func(ctx context.Context, playlistID string) ([]services.Video, error)
	SearchFunc    func(ctx context.Context, query string) ([]services.Video, error)
}

func (m *MockCatalog) Name() string { return "mock" }

func (m *MockCatalog) AuthURL(state string) string {
	if m.AuthURLFunc != nil {
		return m.AuthURLFunc(state)
	}
	return "https://example.com/consent?state=" + state
}

func (m *MockCatalog) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}
	return nil, errors.New("exchange not configured")
}

func (m *MockCatalog) WithCredentials(token *oauth2.Token) services.CatalogService {
	m.Token = token
	return m
}

func (m *MockCatalog) Playlists(ctx context.Context) ([]services.Playlist, error) {
	if m.PlaylistsFunc != nil {
		return m.PlaylistsFunc(ctx)
	}
	return []services.Playlist{}, nil
}

func (m *MockCatalog) PlaylistItems(ctx context.Context, playlistID string) ([]services.PlaylistItem, error) {
	if m.ItemsFunc != nil {
		return m.ItemsFunc(ctx, playlistID)
	}
	return []services.PlaylistItem{}, nil
}

func (m *MockCatalog) Video(ctx context.Context, videoID string) (*services.Video, error) {
	if m.VideoFunc != nil {
		return m.VideoFunc(ctx, videoID)
	}
	return nil, nil
}

func (m *MockCatalog) ResolvePlaylist(ctx context.Context, playlistID string) ([]services.Video, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, playlistID)
	}
	return []services.Video{}, nil
}

func (m *MockCatalog) Search(ctx context.Context, query string) ([]services.Video, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return []services.Video{}, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
