package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/neutral-yo/ytvideofind/internal/services"
	"golang.org/x/oauth2"
)

// CatalogProvider binds a caller's credentials to a catalog service for one request.
type CatalogProvider interface {
	WithCredentials(token *oauth2.Token) services.CatalogService
}

// PlaylistResponse is the wire shape for a playlist summary.
type PlaylistResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// VideoResponse is the wire shape for a video summary.
//
// PlaylistID is only present in playlist mode; search results omit the key entirely.
type VideoResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Thumbnail  string `json:"thumbnail"`
	PlaylistID string `json:"playlistId,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// CatalogHandler serves the catalog query endpoints.
// Implements the Handler interface for registration with a Router.
//
// Each request resolves its own credentials (bearer header or session cookie) and
// queries the upstream API through a service bound to exactly those credentials.
// Upstream failures collapse to HTTP 500 with a fixed error body; the cause is
// only logged server-side.
type CatalogHandler struct {
	provider CatalogProvider
	sessions *SessionStore
	logger   *log.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(provider CatalogProvider, sessions *SessionStore, logger *log.Logger) *CatalogHandler {
	return &CatalogHandler{
		provider: provider,
		sessions: sessions,
		logger:   logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *CatalogHandler) Routes() []string {
	return []string{"GET /api/playlists", "GET /api/videos"}
}

// ServeHTTP dispatches to the playlists or videos endpoint.
func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/playlists":
		h.playlists(w, r)
	case "/api/videos":
		h.videos(w, r)
	default:
		http.NotFound(w, r)
	}
}

// catalog returns a service bound to the credentials carried by this request.
func (h *CatalogHandler) catalog(r *http.Request) services.CatalogService {
	return h.provider.WithCredentials(h.sessions.FromRequest(r))
}

// playlists lists the caller's playlists as [{id, title}].
func (h *CatalogHandler) playlists(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.catalog(r).Playlists(r.Context())
	if err != nil {
		h.logger.Error("failed to fetch playlists", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to fetch playlists"})
		return
	}

	response := make([]PlaylistResponse, len(playlists))
	for i, playlist := range playlists {
		response[i] = PlaylistResponse{ID: playlist.ID, Title: playlist.Title}
	}

	h.writeJSON(w, http.StatusOK, response)
}

// videos lists a playlist's videos when playlistId is supplied, otherwise performs
// a keyword search. Both branches share the 500 error body.
func (h *CatalogHandler) videos(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	playlistID := query.Get("playlistId")

	var videos []services.Video
	var err error

	catalog := h.catalog(r)
	if playlistID != "" {
		videos, err = catalog.ResolvePlaylist(r.Context(), playlistID)
	} else {
		videos, err = catalog.Search(r.Context(), query.Get("query"))
	}

	if err != nil {
		h.logger.Error("failed to search videos", "error", err, "playlistId", playlistID)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to search videos"})
		return
	}

	response := make([]VideoResponse, len(videos))
	for i, video := range videos {
		response[i] = VideoResponse{
			ID:         video.ID,
			Title:      video.Title,
			Thumbnail:  video.Thumbnail,
			PlaylistID: video.PlaylistID,
		}
	}

	h.writeJSON(w, http.StatusOK, response)
}

func (h *CatalogHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}
