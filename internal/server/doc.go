// Package server provides HTTP routing, middleware, and the request handlers for the video finder web app.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally; handler routes may
// carry a method prefix ("GET /api/videos") for method filtering.
//
// # OAuth Flow Handler
//
// [OAuthHandler] implements the OAuth2 authorization code flow across two routes.
//
// /auth/youtube redirects to the provider's consent URL with a generated state value
// (CSRF protection) requesting offline access; /auth/callback validates state, exchanges
// the code for a token pair, stores it in the [SessionStore], and redirects home with the
// serialized tokens in the query string. Failures on this path never produce an HTTP
// error status — they redirect with ?error=auth_failed.
//
// # Catalog Query Handler
//
// [CatalogHandler] serves /api/playlists and /api/videos, binding credentials per
// request (Authorization bearer header, then session cookie) so concurrent callers
// never share identity through process-wide state. Upstream failures collapse to a
// fixed 500 JSON body; causes are logged server-side only.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler
// interface and adds routes, allowing handlers to register multiple routes to
// encapsulate route definitions within the implementation.
package server
