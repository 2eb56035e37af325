package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"sort"

	"github.com/retail-labels/labelgen/internal/compose"
	"github.com/retail-labels/labelgen/internal/label"
	"github.com/retail-labels/labelgen/internal/models"
	"github.com/retail-labels/labelgen/internal/raster"
)

func (h *Handler) HandleUploads(w http.ResponseWriter, r *http.Request) {
	uploads := h.uploadStore.GetAll()
	list := make([]*models.UploadSession, 0, len(uploads))
	for _, upload := range uploads {
		list = append(list, upload)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	h.writeJSON(w, list)
}

func (h *Handler) HandleUploadDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	upload, ok := h.getUploadOrError(w, id)
	if !ok {
		return
	}

	switch r.Method {
	case "GET":
		h.writeJSON(w, upload)
	case "DELETE":
		h.uploadStore.Delete(id)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandlePreview renders the first page of an upload as HTML.
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	upload, ok := h.getUploadOrError(w, r.PathValue("id"))
	if !ok {
		return
	}

	n := min(len(upload.Records), h.config.ItemsPerPage)
	c := compose.New(label.NewRenderer(raster.New(), h.config.Barcode), h.config.Concurrency)
	pages, err := c.Compose(r.Context(), upload.Records[:n], h.config.ItemsPerPage)
	if err != nil {
		h.writeError(w, "Failed to render preview: "+err.Error(), http.StatusInternalServerError)
		return
	}

	page := models.RenderedPage{}
	if len(pages) > 0 {
		page = pages[0]
	}

	var buf bytes.Buffer
	if err := label.WriteMarkup(&buf, page); err != nil {
		h.writeError(w, "Failed to render preview: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Unable to write preview", "err", err)
	}
}
