package handlers

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed static
var staticFiles embed.FS

func (h *Handler) HandleStatic(w http.ResponseWriter, r *http.Request) {
	filepath := strings.TrimPrefix(r.URL.Path, "/static/")
	filepath = strings.TrimPrefix(filepath, "/")
	if filepath == "" {
		filepath = "index.html"
	}

	// Prevent directory traversal attacks
	if strings.Contains(filepath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	root, err := fs.Sub(staticFiles, "static")
	if err != nil {
		h.writeError(w, "Static files unavailable", http.StatusInternalServerError)
		return
	}
	if _, err := fs.Stat(root, filepath); err != nil {
		http.NotFound(w, r)
		return
	}

	http.ServeFileFS(w, r, root, filepath)
}
