package pdfs

import (
	"fmt"
	"strings"
)

type PaperSize struct {
	Name   string
	Width  float64 // in mm
	Height float64 // in mm
}

var (
	A4Size     = PaperSize{Name: "A4", Width: 210, Height: 297}
	LetterSize = PaperSize{Name: "Letter", Width: 215.9, Height: 279.4} // 8.5" x 11"
	LegalSize  = PaperSize{Name: "Legal", Width: 215.9, Height: 355.6}  // 8.5" x 14"
)

// LookupPaperSize resolves a paper name case-insensitively.
func LookupPaperSize(name string) (PaperSize, error) {
	for _, p := range []PaperSize{A4Size, LetterSize, LegalSize} {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return PaperSize{}, fmt.Errorf("unknown paper size %q (supported: A4, Letter, Legal)", name)
}
