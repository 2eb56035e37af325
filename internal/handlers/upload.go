package handlers

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/retail-labels/labelgen/internal/ingest"
	"github.com/retail-labels/labelgen/internal/models"
)

func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	records, filename, ok := h.readRecords(w, r)
	if !ok {
		return
	}

	upload := h.uploadStore.Create(filename, records)
	slog.Info("Records uploaded", "id", upload.ID, "filename", filename, "count", upload.Count)

	h.writeJSON(w, upload)
}

// readRecords loads a record list from the request. A JSON body is parsed
// directly; anything else is expected to be a multipart form with a "file"
// field. Errors have already been written when ok is false.
func (h *Handler) readRecords(w http.ResponseWriter, r *http.Request) (records models.RecordList, filename string, ok bool) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		data, ok := h.readLimited(w, r.Body)
		if !ok {
			return nil, "", false
		}
		records, err := ingest.LoadRecords(r.Context(), bytes.NewReader(data), "request.json")
		if err != nil {
			h.writeLoadError(w, err)
			return nil, "", false
		}
		return records, "request.json", true
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		file, header, err = r.FormFile("files")
		if err != nil {
			h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
			return nil, "", false
		}
	}
	defer file.Close()

	data, ok := h.readLimited(w, file)
	if !ok {
		return nil, "", false
	}

	records, err = ingest.LoadRecords(r.Context(), bytes.NewReader(data), header.Filename)
	if err != nil {
		h.writeLoadError(w, err)
		return nil, "", false
	}
	return records, header.Filename, true
}

func (h *Handler) readLimited(w http.ResponseWriter, r io.Reader) ([]byte, bool) {
	data, err := io.ReadAll(io.LimitReader(r, maxUploadSize))
	if err != nil {
		h.writeError(w, "Error reading file", http.StatusBadRequest)
		return nil, false
	}
	if len(data) >= maxUploadSize {
		h.writeError(w, "File too large (max 10MB)", http.StatusBadRequest)
		return nil, false
	}
	return data, true
}
