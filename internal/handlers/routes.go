package handlers

import (
	"log/slog"
	"net/http"
)

// Routes registers every endpoint of the web interface.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/upload", h.HandleUpload)
	mux.HandleFunc("GET /api/uploads", h.HandleUploads)
	mux.HandleFunc("/api/uploads/{id}", h.HandleUploadDetail)
	mux.HandleFunc("GET /api/uploads/{id}/preview", h.HandlePreview)
	mux.HandleFunc("/api/generate", h.HandleGenerate)
	mux.HandleFunc("/", h.HandleStatic)
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
	return mux
}
