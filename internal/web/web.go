// Package web serves the static front end for the video finder.
//
// The default assets are embedded into the binary; deployments can point the
// server at an on-disk directory instead via the static_dir config value.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var assets embed.FS

// Handler returns an [http.Handler] serving the front end assets.
//
// When staticDir is non-empty it is served from disk, otherwise the embedded
// assets are used. The index page is served at "/".
func Handler(staticDir string) http.Handler {
	if staticDir != "" {
		return http.FileServer(http.Dir(staticDir))
	}

	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic("embedded static assets missing: " + err.Error())
	}

	return http.FileServer(http.FS(sub))
}
