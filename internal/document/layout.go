package document

import (
	"errors"
	"fmt"

	"github.com/retail-labels/labelgen/internal/pdfs"
)

// Layout places labels on a page in a grid, row by row. All values are mm.
type Layout struct {
	Columns     int     `yaml:"columns"`
	LabelWidth  float64 `yaml:"label_width_mm"`
	LabelHeight float64 `yaml:"label_height_mm"`
	Margin      float64 `yaml:"margin_mm"`
	Gutter      float64 `yaml:"gutter_mm"`
}

// Smallest label the drawing routine can fit its text into.
const (
	minLabelWidth  = 50
	minLabelHeight = 35
)

// DefaultLayout is two columns of 80x50mm labels.
func DefaultLayout() Layout {
	return Layout{
		Columns:     2,
		LabelWidth:  80,
		LabelHeight: 50,
		Margin:      4,
		Gutter:      4,
	}
}

// Position returns the top-left corner of the i-th label of a page.
func (l Layout) Position(i int) (x, y float64) {
	col := i % l.Columns
	row := i / l.Columns
	x = l.Margin + float64(col)*(l.LabelWidth+l.Gutter)
	y = l.Margin + float64(row)*(l.LabelHeight+l.Gutter)
	return x, y
}

// Rows returns the number of grid rows needed for n labels.
func (l Layout) Rows(n int) int {
	if l.Columns <= 0 || n <= 0 {
		return 0
	}
	rows := n / l.Columns
	if n%l.Columns != 0 {
		rows++
	}
	return rows
}

// Validate checks that itemsPerPage labels fit on the paper.
func (l Layout) Validate(paper pdfs.PaperSize, itemsPerPage int) error {
	if l.Columns <= 0 {
		return errors.New("layout: columns must be positive")
	}
	if l.LabelWidth < minLabelWidth || l.LabelHeight < minLabelHeight {
		return fmt.Errorf("layout: label must be at least %dx%dmm, got %.1fx%.1fmm",
			minLabelWidth, minLabelHeight, l.LabelWidth, l.LabelHeight)
	}
	if l.Margin < 0 || l.Gutter < 0 {
		return errors.New("layout: margin and gutter cannot be negative")
	}
	if itemsPerPage <= 0 {
		return errors.New("layout: items per page must be positive")
	}

	cols := min(l.Columns, itemsPerPage)
	rows := l.Rows(itemsPerPage)
	width := 2*l.Margin + float64(cols)*l.LabelWidth + float64(cols-1)*l.Gutter
	height := 2*l.Margin + float64(rows)*l.LabelHeight + float64(rows-1)*l.Gutter
	if width > paper.Width || height > paper.Height {
		return fmt.Errorf("layout: %d labels in %d columns need %.1fx%.1fmm, %s paper is %.1fx%.1fmm",
			itemsPerPage, l.Columns, width, height, paper.Name, paper.Width, paper.Height)
	}
	return nil
}
