// package services defines interfaces for interacting with the video platform's HTTP API
package services

import (
	"context"

	"golang.org/x/oauth2"
)

// CatalogService defines read-only catalog operations against a video platform.
//
// Implementations are bound to a single caller's credentials; see [OAuthService.WithCredentials].
type CatalogService interface {
	// Playlists retrieves playlists owned by the authenticated user (first page, up to 50).
	Playlists(ctx context.Context) ([]Playlist, error)

	// PlaylistItems retrieves the entries of a playlist (first page, up to 50).
	PlaylistItems(ctx context.Context, playlistID string) ([]PlaylistItem, error)

	// Video resolves a video id into its full metadata record.
	Video(ctx context.Context, videoID string) (*Video, error)

	// ResolvePlaylist fetches a playlist's items and resolves each entry into a full
	// video record, preserving item order.
	ResolvePlaylist(ctx context.Context, playlistID string) ([]Video, error)

	// Search performs a keyword search constrained to videos (first page, up to 50).
	Search(ctx context.Context, query string) ([]Video, error)

	// Name returns the name of the service (e.g., "YouTube")
	Name() string
}

// OAuthService extends CatalogService with the authorization-code flow.
type OAuthService interface {
	CatalogService

	// AuthURL returns the provider's consent URL for the given state value,
	// requesting offline access.
	AuthURL(state string) string

	// Exchange trades an authorization code for a token pair.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)

	// WithCredentials returns a copy of the service bound to the given token.
	// The receiver is never mutated; each request carries its own credentials.
	WithCredentials(token *oauth2.Token) CatalogService
}

// Playlist represents a playlist owned by the authenticated user.
type Playlist struct {
	ID          string
	Title       string
	Description string
	ItemCount   int
}

// PlaylistItem represents an entry within a playlist referencing a video.
//
// Distinct from the video's own metadata record, which lacks thumbnail data here.
type PlaylistItem struct {
	ID       string
	VideoID  string
	Title    string
	Position int
}

// Video represents a video's metadata record.
type Video struct {
	ID           string
	Title        string
	Description  string
	Thumbnail    string // medium resolution thumbnail URL
	ChannelTitle string
	PlaylistID   string // set when the video was resolved from a playlist
}
