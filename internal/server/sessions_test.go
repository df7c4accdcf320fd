package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/oauth2"
)

func TestSessionStore(t *testing.T) {
	t.Run("Put and Get round-trip", func(t *testing.T) {
		store := NewSessionStore()
		token := &oauth2.Token{AccessToken: "at", RefreshToken: "rt"}

		id := store.Put(token)
		if id == "" {
			t.Fatal("expected non-empty session id")
		}
		if got := store.Get(id); got != token {
			t.Errorf("expected stored token back, got %+v", got)
		}
	})

	t.Run("Get unknown id returns nil", func(t *testing.T) {
		store := NewSessionStore()
		if got := store.Get("nope"); got != nil {
			t.Errorf("expected nil for unknown session, got %+v", got)
		}
	})

	t.Run("Delete removes the session", func(t *testing.T) {
		store := NewSessionStore()
		id := store.Put(&oauth2.Token{AccessToken: "at"})
		store.Delete(id)
		if got := store.Get(id); got != nil {
			t.Errorf("expected session to be gone, got %+v", got)
		}
	})

	t.Run("FromRequest", func(t *testing.T) {
		t.Run("prefers the bearer header", func(t *testing.T) {
			store := NewSessionStore()
			id := store.Put(&oauth2.Token{AccessToken: "cookie_token"})

			req := httptest.NewRequest(http.MethodGet, "/api/playlists", nil)
			req.Header.Set("Authorization", "Bearer header_token")
			req.AddCookie(&http.Cookie{Name: SessionCookie, Value: id})

			token := store.FromRequest(req)
			if token == nil || token.AccessToken != "header_token" {
				t.Errorf("expected header token to win, got %+v", token)
			}
		})

		t.Run("uses the session cookie", func(t *testing.T) {
			store := NewSessionStore()
			id := store.Put(&oauth2.Token{AccessToken: "cookie_token"})

			req := httptest.NewRequest(http.MethodGet, "/api/playlists", nil)
			req.AddCookie(&http.Cookie{Name: SessionCookie, Value: id})

			token := store.FromRequest(req)
			if token == nil || token.AccessToken != "cookie_token" {
				t.Errorf("expected cookie token, got %+v", token)
			}
		})

		t.Run("returns nil without credentials", func(t *testing.T) {
			store := NewSessionStore()
			req := httptest.NewRequest(http.MethodGet, "/api/playlists", nil)
			if token := store.FromRequest(req); token != nil {
				t.Errorf("expected nil, got %+v", token)
			}
		})

		t.Run("ignores malformed authorization header", func(t *testing.T) {
			store := NewSessionStore()
			req := httptest.NewRequest(http.MethodGet, "/api/playlists", nil)
			req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
			if token := store.FromRequest(req); token != nil {
				t.Errorf("expected nil for non-bearer header, got %+v", token)
			}
		})
	})
}
