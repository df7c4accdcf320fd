// YouTube Data API implementation of [CatalogService]
//
// API response types based on https://developers.google.com/youtube/v3/docs
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/neutral-yo/ytvideofind/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"
	youtubeBaseURL = "https://www.googleapis.com/youtube/v3"

	// Read-only access to the authenticated user's YouTube account.
	youtubeReadonlyScope = "https://www.googleapis.com/auth/youtube.readonly"

	// First page only; listing endpoints accept at most 50 items per page.
	maxPageSize = 50
)

// YouTubeThumbnail represents a single thumbnail rendition.
type YouTubeThumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// YouTubeThumbnails holds the renditions YouTube returns per resource.
type YouTubeThumbnails struct {
	Default YouTubeThumbnail `json:"default"`
	Medium  YouTubeThumbnail `json:"medium"`
	High    YouTubeThumbnail `json:"high"`
}

type resourceID struct {
	Kind    string `json:"kind"`
	VideoID string `json:"videoId"`
}

// YouTubePlaylist represents a playlist resource from playlists.list.
type YouTubePlaylist struct {
	ID      string `json:"id"`
	Snippet struct {
		Title       string            `json:"title"`
		Description string            `json:"description"`
		Thumbnails  YouTubeThumbnails `json:"thumbnails"`
	} `json:"snippet"`
	ContentDetails struct {
		ItemCount int `json:"itemCount"`
	} `json:"contentDetails"`
}

// YouTubePlaylistItem represents a playlistItems.list entry referencing a video.
type YouTubePlaylistItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title      string     `json:"title"`
		Position   int        `json:"position"`
		PlaylistID string     `json:"playlistId"`
		ResourceID resourceID `json:"resourceId"`
	} `json:"snippet"`
}

// YouTubeVideo represents a video resource from videos.list.
type YouTubeVideo struct {
	ID      string `json:"id"`
	Snippet struct {
		Title        string            `json:"title"`
		Description  string            `json:"description"`
		ChannelTitle string            `json:"channelTitle"`
		Thumbnails   YouTubeThumbnails `json:"thumbnails"`
	} `json:"snippet"`
}

// YouTubeSearchResult represents a search.list hit; the video id is nested under id.videoId.
type YouTubeSearchResult struct {
	ID      resourceID `json:"id"`
	Snippet struct {
		Title        string            `json:"title"`
		Description  string            `json:"description"`
		ChannelTitle string            `json:"channelTitle"`
		Thumbnails   YouTubeThumbnails `json:"thumbnails"`
	} `json:"snippet"`
}

type playlistListResponse struct {
	Items []YouTubePlaylist `json:"items"`
}

type playlistItemListResponse struct {
	Items []YouTubePlaylistItem `json:"items"`
}

type videoListResponse struct {
	Items []YouTubeVideo `json:"items"`
}

type searchListResponse struct {
	Items []YouTubeSearchResult `json:"items"`
}

// YouTubeService implements the [OAuthService] interface for the YouTube Data API v3.
// Uses [oauth2] for the authorization code flow and bearer-credentialed catalog reads.
type YouTubeService struct {
	config     *oauth2.Config
	token      *oauth2.Token
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewYouTubeService creates a new YouTube service with the given OAuth2 credentials.
func NewYouTubeService(credentials map[string]string) (*YouTubeService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:3000/auth/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{youtubeReadonlyScope},
		Endpoint: oauth2.Endpoint{
			AuthURL:  googleAuthURL,
			TokenURL: googleTokenURL,
		},
	}

	return &YouTubeService{
		config:     config,
		baseURL:    youtubeBaseURL,
		httpClient: http.DefaultClient,
		// Well under the API's default quota; keeps fan-out bursts polite.
		limiter: rate.NewLimiter(rate.Limit(25), maxPageSize),
	}, nil
}

// SetBaseURL overrides the API base URL (used by tests).
func (y *YouTubeService) SetBaseURL(baseURL string) {
	y.baseURL = baseURL
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// AuthURL returns the Google consent URL for the given state value, requesting offline
// access so a refresh token is issued alongside the access token.
func (y *YouTubeService) AuthURL(state string) string {
	return y.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for a token pair.
func (y *YouTubeService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := y.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	return token, nil
}

// WithCredentials returns a copy of the service bound to the given token.
//
// The receiver is left untouched so concurrent callers never share credentials.
func (y *YouTubeService) WithCredentials(token *oauth2.Token) CatalogService {
	bound := *y
	bound.token = token
	return &bound
}

// doRequest performs an authenticated GET against the YouTube Data API.
func (y *YouTubeService) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	if y.token == nil || y.token.AccessToken == "" {
		return fmt.Errorf("%w: no token bound to request", shared.ErrNotAuthenticated)
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	apiURL := y.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+y.token.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Playlists retrieves the first page of playlists owned by the authenticated user.
//
// Calls playlists.list with mine=true.
func (y *YouTubeService) Playlists(ctx context.Context) ([]Playlist, error) {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("mine", "true")
	params.Set("maxResults", fmt.Sprint(maxPageSize))

	var response playlistListResponse
	if err := y.doRequest(ctx, "/playlists", params, &response); err != nil {
		return nil, err
	}

	playlists := make([]Playlist, len(response.Items))
	for i, item := range response.Items {
		playlists[i] = Playlist{
			ID:          item.ID,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			ItemCount:   item.ContentDetails.ItemCount,
		}
	}

	return playlists, nil
}

// PlaylistItems retrieves the first page of entries for a playlist.
//
// Calls playlistItems.list.
func (y *YouTubeService) PlaylistItems(ctx context.Context, playlistID string) ([]PlaylistItem, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("playlistId", playlistID)
	params.Set("maxResults", fmt.Sprint(maxPageSize))

	var response playlistItemListResponse
	if err := y.doRequest(ctx, "/playlistItems", params, &response); err != nil {
		return nil, err
	}

	items := make([]PlaylistItem, len(response.Items))
	for i, item := range response.Items {
		items[i] = PlaylistItem{
			ID:       item.ID,
			VideoID:  item.Snippet.ResourceID.VideoID,
			Title:    item.Snippet.Title,
			Position: item.Snippet.Position,
		}
	}

	return items, nil
}

// Video resolves a video id into its full metadata record.
//
// Calls videos.list with a single id.
func (y *YouTubeService) Video(ctx context.Context, videoID string) (*Video, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("id", videoID)

	var response videoListResponse
	if err := y.doRequest(ctx, "/videos", params, &response); err != nil {
		return nil, err
	}

	if len(response.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrVideoNotFound, videoID)
	}

	item := response.Items[0]
	return &Video{
		ID:           item.ID,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		Thumbnail:    item.Snippet.Thumbnails.Medium.URL,
		ChannelTitle: item.Snippet.ChannelTitle,
	}, nil
}

// ResolvePlaylist fetches a playlist's items and resolves each entry into a full video record.
//
// Lookups are issued concurrently, one per item; output index i corresponds to item index i
// regardless of completion order. The first failed lookup cancels the rest and fails the
// whole resolution, so callers never see partial results.
func (y *YouTubeService) ResolvePlaylist(ctx context.Context, playlistID string) ([]Video, error) {
	items, err := y.PlaylistItems(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	videos := make([]Video, len(items))
	g, gctx := errgroup.WithContext(ctx)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			video, err := y.Video(gctx, item.VideoID)
			if err != nil {
				return err
			}
			video.PlaylistID = playlistID
			videos[i] = *video
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return videos, nil
}

// Search performs a keyword search constrained to videos.
//
// Calls search.list with type=video. An empty query is passed through verbatim; the
// upstream API decides what that means.
func (y *YouTubeService) Search(ctx context.Context, query string) ([]Video, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("maxResults", fmt.Sprint(maxPageSize))
	params.Set("q", query)

	var response searchListResponse
	if err := y.doRequest(ctx, "/search", params, &response); err != nil {
		return nil, err
	}

	videos := make([]Video, 0, len(response.Items))
	for _, item := range response.Items {
		// Non-video hits slip through on some API versions despite type=video.
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, Video{
			ID:           item.ID.VideoID,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			Thumbnail:    item.Snippet.Thumbnails.Medium.URL,
			ChannelTitle: item.Snippet.ChannelTitle,
		})
	}

	return videos, nil
}
