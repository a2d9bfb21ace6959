package api

import (
	"net/http"
	"path/filepath"
	"strings"
)

// staticFileHandler serves the game's web client out of root, rejecting
// any request path that would escape it after cleaning (spec §6's
// "never serve outside wwwRoot" requirement).
func staticFileHandler(root string) http.Handler {
	fs := http.FileServer(http.Dir(root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clean := filepath.Clean(r.URL.Path)
		if clean == "." || strings.HasPrefix(clean, "..") || strings.Contains(clean, "../") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "no-cache")
		fs.ServeHTTP(w, r)
	})
}
