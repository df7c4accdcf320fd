package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/neutral-yo/ytvideofind/internal/shared"
	"golang.org/x/oauth2"
)

// Authorizer is the slice of the catalog service the OAuth handler needs.
type Authorizer interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
}

// OAuthHandler implements the OAuth2 authorization code flow for the web app.
// Implements the Handler interface for registration with a Router.
//
// Begin redirects to the provider's consent URL with a generated state value;
// the callback validates state, exchanges the code, stores the token pair in the
// session store, and redirects back to the front end. Authorization failures are
// always reported via redirect with an error flag, never as an HTTP error status.
type OAuthHandler struct {
	svc      Authorizer
	sessions *SessionStore
	logger   *log.Logger
}

// NewOAuthHandler creates a new OAuth handler backed by the given service and session store.
func NewOAuthHandler(svc Authorizer, sessions *SessionStore, logger *log.Logger) *OAuthHandler {
	return &OAuthHandler{
		svc:      svc,
		sessions: sessions,
		logger:   logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *OAuthHandler) Routes() []string {
	return []string{"GET /auth/youtube", "GET /auth/callback"}
}

// ServeHTTP dispatches to the begin or callback leg of the flow.
func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/auth/youtube":
		h.begin(w, r)
	case "/auth/callback":
		h.callback(w, r)
	default:
		http.NotFound(w, r)
	}
}

// begin constructs the consent URL and redirects the browser to it.
//
// The state token rides in a short-lived cookie for CSRF validation on the callback.
func (h *OAuthHandler) begin(w http.ResponseWriter, r *http.Request) {
	state := shared.GenerateID()

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.svc.AuthURL(state), http.StatusFound)
}

// callback exchanges the authorization code for a token pair.
//
// On success the token is stored under a fresh session id, the session cookie is set,
// and the browser is redirected home with the serialized token pair in the query string
// for the front end to pick up. Every failure collapses to /?error=auth_failed.
func (h *OAuthHandler) callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != query.Get("state") {
		h.logger.Error("oauth callback rejected", "error", shared.ErrInvalidState)
		h.redirectFailed(w, r)
		return
	}

	code := query.Get("code")
	if code == "" {
		h.logger.Error("oauth callback missing code",
			"error", query.Get("error"),
			"description", query.Get("error_description"),
		)
		h.redirectFailed(w, r)
		return
	}

	token, err := h.svc.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("failed to exchange authorization code", "error", err)
		h.redirectFailed(w, r)
		return
	}

	sessionID := h.sessions.Put(token)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	// Clear the consumed state cookie.
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Path: "/auth", MaxAge: -1})

	payload, err := json.Marshal(token)
	if err != nil {
		h.logger.Error("failed to serialize token pair", "error", err)
		h.redirectFailed(w, r)
		return
	}

	http.Redirect(w, r, "/?tokens="+url.QueryEscape(string(payload)), http.StatusFound)
}

func (h *OAuthHandler) redirectFailed(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/?error=auth_failed", http.StatusFound)
}
