package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/retail-labels/labelgen/internal/config"
	"github.com/retail-labels/labelgen/internal/ingest"
	"github.com/retail-labels/labelgen/internal/models"
	"github.com/retail-labels/labelgen/internal/storage"
)

// maxUploadSize bounds the record files accepted by the web interface.
const maxUploadSize = 10 * 1024 * 1024

type Handler struct {
	uploadStore *storage.UploadStore
	config      config.Config
}

func New(cfg config.Config) *Handler {
	return &Handler{
		uploadStore: storage.New(),
		config:      cfg,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// writeLoadError maps ingestion errors to their user facing message.
func (h *Handler) writeLoadError(w http.ResponseWriter, err error) {
	var malformed *ingest.MalformedInputError
	var read *ingest.ReadError
	switch {
	case errors.As(err, &malformed), errors.As(err, &read):
		h.writeError(w, err.Error(), http.StatusBadRequest)
	default:
		h.writeError(w, "Failed to load records: "+err.Error(), http.StatusInternalServerError)
	}
}

// Upload helpers
func (h *Handler) getUploadOrError(w http.ResponseWriter, id string) (*models.UploadSession, bool) {
	upload, exists := h.uploadStore.Get(id)
	if !exists {
		h.writeError(w, "Upload not found", http.StatusNotFound)
		return nil, false
	}
	return upload, true
}
