package web

import (
	"net/http"

	webembed "github.com/mvidmar/zaloga/web"
)

// NewRouter creates the web router, serving the single-page UI and its
// static assets from the embedded filesystem.
func NewRouter() http.Handler {
	mux := http.NewServeMux()
	static := webembed.StaticFS()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, static, "index.html")
	})

	return mux
}
