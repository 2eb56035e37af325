package pdfs

import "io"

// Writer is a minimal, append-only PDF writer. No page navigation.
// Coordinates are millimeters from the top-left corner of the current page.
type Writer interface {
	PaperSize() PaperSize

	AddBlankPage()
	PageCount() int

	SetFont(family string, style string, size float64)
	Text(x float64, y float64, text string)
	TextWidth(text string) float64
	Rect(x, y, w, h float64)
	Image(name string, png []byte, x, y, w, h float64) error

	WriteTo(w io.Writer) (int64, error)
	WriteToFile(filepath string) error
	Err() error
}
