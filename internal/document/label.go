package document

import (
	"github.com/retail-labels/labelgen/internal/models"
	"github.com/retail-labels/labelgen/internal/pdfs"
)

const (
	pad        = 3.0
	barcodeTop = 22.0
	font       = "Helvetica"
)

// drawLabel draws one label with its top-left corner at (x, y).
func drawLabel(w pdfs.Writer, l models.Label, imageName string, x, y, width, height float64) error {
	w.Rect(x, y, width, height)

	w.SetFont(font, "B", 10)
	w.Text(x+pad, y+6, l.StyleName)
	w.SetFont(font, "", 9)
	w.Text(x+pad, y+10.5, l.ColorRef)
	w.SetFont(font, "", 8)
	w.Text(x+pad, y+15, l.ArtSeason+" "+l.StyleRef)
	w.SetFont(font, "B", 9)
	w.Text(x+pad, y+19.5, l.SizeLabel)

	right := x + width - pad
	w.SetFont(font, "", 7)
	w.Text(right-w.TextWidth(l.Recommended), y+10.5, l.Recommended)
	w.SetFont(font, "B", 12)
	w.Text(right-w.TextWidth(l.Price), y+16, l.Price)
	w.SetFont(font, "", 6)
	w.Text(right-w.TextWidth(l.PriceLabel), y+19.5, l.PriceLabel)

	boxW := width - 2*pad
	boxH := height - barcodeTop - pad
	if !l.HasBarcode() {
		msg := "NO BARCODE " + l.Record.Barcode
		w.SetFont(font, "", 8)
		w.Text(x+(width-w.TextWidth(msg))/2, y+barcodeTop+boxH/2, msg)
		return nil
	}

	imgW, imgH := fit(float64(l.BarcodeW), float64(l.BarcodeH), boxW, boxH)
	return w.Image(imageName, l.Barcode, x+(width-imgW)/2, y+barcodeTop, imgW, imgH)
}

// fit scales a w x h box to fit inside maxW x maxH keeping its aspect ratio.
func fit(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	scale := min(maxW/w, maxH/h)
	return w * scale, h * scale
}
