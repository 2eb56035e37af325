package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/retail-labels/labelgen/internal/document"
	"github.com/retail-labels/labelgen/internal/models"
	"github.com/retail-labels/labelgen/internal/pipeline"
)

// HandleGenerate returns the PDF for a stored upload ("id" form value) or for
// records sent with the request.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var records models.RecordList
	if id := h.uploadID(r); id != "" {
		upload, ok := h.getUploadOrError(w, id)
		if !ok {
			return
		}
		records = upload.Records
	} else {
		var ok bool
		if records, _, ok = h.readRecords(w, r); !ok {
			return
		}
	}

	var buf bytes.Buffer
	res, err := pipeline.Render(r.Context(), records, pipeline.Options{Config: h.config}, &buf)
	if err != nil {
		var we *document.WriteError
		if errors.As(err, &we) {
			h.writeError(w, "Error generating PDF: "+err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	slog.Info("PDF generated", "records", res.Records, "pages", res.Pages, "bytes", res.Bytes, "raster_failures", res.RasterFailures)

	writePDF(w, document.DefaultFilename, buf.Bytes())
}

func (h *Handler) uploadID(r *http.Request) string {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return r.URL.Query().Get("id")
	}
	return r.FormValue("id")
}

func writePDF(w http.ResponseWriter, filename string, pdf []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		slog.Error("Unable to write PDF response", "err", err)
	}
}
