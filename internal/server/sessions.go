package server

import (
	"net/http"
	"sync"

	"github.com/neutral-yo/ytvideofind/internal/shared"
	"golang.org/x/oauth2"
)

// SessionCookie is the cookie carrying the opaque session id set on a successful callback.
const SessionCookie = "ytvf_session"

// stateCookie carries the OAuth state value between the consent redirect and the callback.
const stateCookie = "ytvf_state"

// SessionStore holds token pairs keyed by opaque session ids.
//
// Credentials live in process memory only and are bound to the caller's cookie,
// never to a shared service object. There is no durable persistence.
type SessionStore struct {
	mu     sync.RWMutex
	tokens map[string]*oauth2.Token
}

// NewSessionStore creates an empty [SessionStore].
func NewSessionStore() *SessionStore {
	return &SessionStore{tokens: make(map[string]*oauth2.Token)}
}

// Put stores a token pair under a fresh opaque id and returns the id.
func (s *SessionStore) Put(token *oauth2.Token) string {
	id := shared.GenerateID()

	s.mu.Lock()
	s.tokens[id] = token
	s.mu.Unlock()

	return id
}

// Get returns the token pair stored under id, or nil if the session is unknown.
func (s *SessionStore) Get(id string) *oauth2.Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens[id]
}

// Delete removes the session with the given id.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.tokens, id)
	s.mu.Unlock()
}

// FromRequest resolves the caller's token pair from the request.
//
// An Authorization bearer token wins over the session cookie, so API callers can
// supply the tokens handed to them by the callback redirect. Returns nil when the
// request carries no usable credentials.
func (s *SessionStore) FromRequest(r *http.Request) *oauth2.Token {
	if auth := r.Header.Get("Authorization"); auth != "" {
		const prefix = "Bearer "
		if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
			return &oauth2.Token{AccessToken: auth[len(prefix):]}
		}
	}

	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil
	}

	return s.Get(cookie.Value)
}
