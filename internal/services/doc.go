// Package services defines the [CatalogService] interface for video platforms and implements it for the YouTube Data API v3.
//
// # Service Interface
//
// Catalog reads (playlists, playlist items, video lookup, search) share a common abstraction
// so HTTP handlers don't depend on the concrete provider.
//
// # YouTube Implementation
//
// [YouTubeService] talks to the REST surface at https://www.googleapis.com/youtube/v3 directly.
//
// Authorization uses the OAuth2 authorization code flow via [oauth2.Config] with Google's
// endpoints; catalog calls send the caller's access token as a bearer credential.
//
// # Credential Binding
//
// The [OAuthService] interface extends CatalogService with the code flow.
//
// [YouTubeService.WithCredentials] returns a per-request copy bound to a token pair, so the
// shared service value is never mutated by one caller's authorization.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrNotAuthenticated] : no token bound to the request
//   - [shared.ErrAPIRequest] : HTTP request to the upstream API failed
//
// # API Mappings
//
// Upstream JSON is projected into the package's domain types:
//   - playlists.list (mine=true) → [Playlist]
//   - playlistItems.list → [PlaylistItem] via snippet.resourceId.videoId
//   - videos.list / search.list → [Video] with the medium thumbnail URL
package services
