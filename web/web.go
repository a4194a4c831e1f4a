// Package web serves the embedded site pages and static assets. The contact
// form lives in static/js/app.js and talks to the submission endpoint; the
// pages here are the minimal shell around it.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed pages static
var assets embed.FS

// Register mounts the site pages and the static file server.
func Register(r chi.Router) {
	staticFS, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}

	r.Get("/", servePage("index.html"))
	r.Get("/contact", servePage("contact.html"))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
}

func servePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := assets.ReadFile("pages/" + name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}
}
