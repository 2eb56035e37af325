package label

import (
	"context"
	"errors"
	"log/slog"

	"github.com/retail-labels/labelgen/internal/models"
	"github.com/retail-labels/labelgen/internal/raster"
)

// Fixed label wording.
const (
	SizePrefix  = "TAILLE: "
	Recommended = "CONSEILLE:"
	PriceLabel  = "PRIX DE VENTE DETAIL"
)

// Renderer turns records into labels.
type Renderer struct {
	rasterizer raster.Rasterizer
	opts       raster.Options
}

// NewRenderer creates a renderer that rasterizes every barcode with opts.
func NewRenderer(r raster.Rasterizer, opts raster.Options) *Renderer {
	return &Renderer{rasterizer: r, opts: opts}
}

// Render builds the label for one record. A barcode that cannot be rasterized
// is logged and the label is returned without image. A cancelled context
// yields a label without image or error; the caller sees the cancellation.
func (r *Renderer) Render(ctx context.Context, rec models.Record) models.Label {
	l := models.Label{
		Record:      rec,
		SizeLabel:   SizePrefix + rec.Size,
		Recommended: Recommended,
		PriceLabel:  PriceLabel,
	}

	res := r.rasterizer.Rasterize(ctx, rec.Barcode, r.opts)
	if !res.OK() && cancelled(res.Err) {
		return l
	}
	if !res.OK() {
		slog.Warn("Barcode generation failed", "barcode", rec.Barcode, "style", rec.StyleName, "err", res.Err)
		if res.Err != nil {
			l.RasterError = res.Err.Error()
		}
		return l
	}

	data, err := raster.EncodePNG(res.Image)
	if err != nil {
		slog.Warn("Barcode encoding failed", "barcode", rec.Barcode, "err", err)
		l.RasterError = err.Error()
		return l
	}

	b := res.Image.Bounds()
	l.Barcode = data
	l.BarcodeW = b.Dx()
	l.BarcodeH = b.Dy()
	return l
}

func cancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
