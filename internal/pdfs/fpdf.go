package pdfs

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
)

// FPDFWriter implements Writer on top of go-pdf/fpdf using the core fonts.
type FPDFWriter struct {
	pdf   *fpdf.Fpdf
	size  PaperSize
	tr    func(string) string
	names map[string]bool
}

var _ Writer = (*FPDFWriter)(nil)

// NewFPDFWriter creates a portrait document on the given paper. The document
// starts without pages.
func NewFPDFWriter(size PaperSize, title string) *FPDFWriter {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: size.Width, Ht: size.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("labelgen", true)
	if title != "" {
		pdf.SetTitle(title, true)
	}
	pdf.SetCreationDate(time.Now())

	return &FPDFWriter{
		pdf:   pdf,
		size:  size,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""), // cp1252 for the core fonts
		names: make(map[string]bool),
	}
}

func (w *FPDFWriter) PaperSize() PaperSize {
	return w.size
}

func (w *FPDFWriter) AddBlankPage() {
	w.pdf.AddPage()
}

func (w *FPDFWriter) PageCount() int {
	return w.pdf.PageCount()
}

func (w *FPDFWriter) SetFont(family string, style string, size float64) {
	w.pdf.SetFont(family, style, size)
}

func (w *FPDFWriter) Text(x float64, y float64, text string) {
	w.pdf.Text(x, y, w.tr(text))
}

func (w *FPDFWriter) TextWidth(text string) float64 {
	return w.pdf.GetStringWidth(w.tr(text))
}

func (w *FPDFWriter) Rect(x, y, width, height float64) {
	w.pdf.SetLineWidth(0.2)
	w.pdf.Rect(x, y, width, height, "D")
}

// Image places a PNG. Images are registered once per name.
func (w *FPDFWriter) Image(name string, png []byte, x, y, width, height float64) error {
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	if !w.names[name] {
		w.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
		if err := w.pdf.Error(); err != nil {
			return fmt.Errorf("failed to register image %s: %w", name, err)
		}
		w.names[name] = true
	}
	w.pdf.ImageOptions(name, x, y, width, height, false, opts, 0, "")
	return w.pdf.Error()
}

// WriteTo closes the document and streams it to out.
func (w *FPDFWriter) WriteTo(out io.Writer) (int64, error) {
	cw := NewCountWriter(out)
	err := w.pdf.Output(cw)
	return cw.BytesWritten(), err
}

// WriteToFile writes the document next to name and renames it into place, so
// a failed write leaves any existing file untouched.
func (w *FPDFWriter) WriteToFile(name string) error {
	f, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+"-*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := w.WriteTo(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, name); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func (w *FPDFWriter) Err() error {
	return w.pdf.Error()
}
