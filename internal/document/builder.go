package document

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/retail-labels/labelgen/internal/models"
	"github.com/retail-labels/labelgen/internal/pdfs"
)

// DefaultFilename is used when no output name is given.
const DefaultFilename = "barcodes.pdf"

// WriteError reports a failure to produce or persist the document.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to write document: %v", e.Err)
	}
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Builder lays rendered pages out through a pdfs.Writer.
type Builder struct {
	Layout Layout

	// NewWriter creates the writer for one document. Each Build call owns
	// its writer exclusively.
	NewWriter func() pdfs.Writer
}

// NewBuilder returns a builder writing fpdf documents on paper.
func NewBuilder(paper pdfs.PaperSize, layout Layout) *Builder {
	return &Builder{
		Layout: layout,
		NewWriter: func() pdfs.Writer {
			return pdfs.NewFPDFWriter(paper, "Barcode labels")
		},
	}
}

// Build renders pages and persists the document under filename.
func (b *Builder) Build(ctx context.Context, pages []models.RenderedPage, filename string) error {
	if filename == "" {
		filename = DefaultFilename
	}

	w, err := b.render(ctx, pages)
	if err != nil {
		return err
	}
	if err := w.WriteToFile(filename); err != nil {
		return &WriteError{Path: filename, Err: err}
	}

	slog.Info("Document written", "path", filename, "pages", w.PageCount())
	return nil
}

// BuildTo renders pages and streams the document to out.
func (b *Builder) BuildTo(ctx context.Context, pages []models.RenderedPage, out io.Writer) (int64, error) {
	w, err := b.render(ctx, pages)
	if err != nil {
		return 0, err
	}
	n, err := w.WriteTo(out)
	if err != nil {
		return n, &WriteError{Err: err}
	}
	return n, nil
}

func (b *Builder) render(ctx context.Context, pages []models.RenderedPage) (pdfs.Writer, error) {
	w := b.NewWriter()

	// The writer starts empty; the first page is created here and every
	// following rendered page appends a page break.
	w.AddBlankPage()
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i > 0 {
			w.AddBlankPage()
		}
		for j, l := range page.Labels {
			x, y := b.Layout.Position(j)
			if err := drawLabel(w, l, fmt.Sprintf("p%d-l%d", page.Index, j), x, y, b.Layout.LabelWidth, b.Layout.LabelHeight); err != nil {
				return nil, &WriteError{Err: fmt.Errorf("page %d label %d: %w", i+1, j+1, err)}
			}
		}
	}
	if err := w.Err(); err != nil {
		return nil, &WriteError{Err: err}
	}
	return w, nil
}
