// Package raster turns barcode text into images.
//
// Rasterization never panics or returns a bare error: callers receive a Result
// that either carries the image or the reason it could not be produced, and
// decide for themselves how to degrade.
package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	bean "github.com/boombuler/barcode/ean"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/retail-labels/labelgen/internal/ean"
)

// FormatEAN13 is the only supported symbology.
const FormatEAN13 = "EAN13"

// eanModules is the width of an EAN-13 symbol in modules, guard bars included.
const eanModules = 95

// Options controls the look of a rasterized barcode.
type Options struct {
	Format      string `yaml:"format"`
	LineColor   string `yaml:"line_color"`
	Background  string `yaml:"background"` // hex color or "transparent"
	ShowText    bool   `yaml:"show_text"`
	ModuleWidth int    `yaml:"module_width"` // pixels per module
	Height      int    `yaml:"height"`       // bar height in pixels
	Margin      int    `yaml:"margin"`       // quiet zone on every side, pixels
}

// DefaultOptions matches the label renderer: black bars on white, digits shown.
func DefaultOptions() Options {
	return Options{
		Format:      FormatEAN13,
		LineColor:   "#000000",
		Background:  "#ffffff",
		ShowText:    true,
		ModuleWidth: 2,
		Height:      90,
		Margin:      10,
	}
}

// Error describes a failed rasterization.
type Error struct {
	Code string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("rasterize %q: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Result is either an image with the encoded digits or a failure.
type Result struct {
	Image   image.Image
	Content string
	Err     error
}

// OK reports whether the result carries an image.
func (r Result) OK() bool {
	return r.Err == nil && r.Image != nil
}

// Rasterizer converts barcode text into an image.
type Rasterizer interface {
	Rasterize(ctx context.Context, text string, opts Options) Result
}

// EAN13 rasterizes EAN-13 codes with boombuler/barcode.
type EAN13 struct{}

// New returns the default rasterizer.
func New() *EAN13 {
	return &EAN13{}
}

func (EAN13) Rasterize(ctx context.Context, text string, opts Options) Result {
	img, content, err := rasterize(ctx, text, opts)
	if err != nil {
		return Result{Err: &Error{Code: text, Err: err}}
	}
	return Result{Image: img, Content: content}
}

func rasterize(ctx context.Context, text string, opts Options) (image.Image, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	if opts.Format != "" && !strings.EqualFold(opts.Format, FormatEAN13) {
		return nil, "", fmt.Errorf("unsupported format %s", opts.Format)
	}
	if opts.ModuleWidth <= 0 || opts.Height <= 0 {
		return nil, "", errors.New("module width and height must be positive")
	}

	code := strings.TrimSpace(text)
	switch {
	case len(code) == ean.Length && !ean.Validate(code):
		return nil, "", errors.New("invalid EAN-13 checksum")
	case len(code) != ean.Length && len(code) != ean.Length-1:
		return nil, "", fmt.Errorf("expected 12 or 13 digits, got %d characters", len(code))
	}

	bc, err := bean.Encode(code)
	if err != nil {
		return nil, "", err
	}
	scaled, err := barcode.Scale(bc, eanModules*opts.ModuleWidth, opts.Height)
	if err != nil {
		return nil, "", fmt.Errorf("scale barcode: %w", err)
	}

	fg, err := ParseColor(opts.LineColor)
	if err != nil {
		return nil, "", err
	}
	bg, err := ParseColor(opts.Background)
	if err != nil {
		return nil, "", err
	}

	return paint(scaled, bc.Content(), fg, bg, opts), bc.Content(), nil
}

// paint copies the black/white symbol onto a canvas with the requested colors,
// margins and optional human readable digits.
func paint(symbol image.Image, content string, fg, bg color.Color, opts Options) image.Image {
	face := basicfont.Face7x13
	textH := 0
	if opts.ShowText {
		textH = face.Height + 2
	}

	sb := symbol.Bounds()
	m := max(opts.Margin, 0)
	canvas := image.NewNRGBA(image.Rect(0, 0, sb.Dx()+2*m, sb.Dy()+textH+2*m))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for y := sb.Min.Y; y < sb.Max.Y; y++ {
		for x := sb.Min.X; x < sb.Max.X; x++ {
			if isDark(symbol.At(x, y)) {
				canvas.Set(x-sb.Min.X+m, y-sb.Min.Y+m, fg)
			}
		}
	}

	if opts.ShowText {
		d := &font.Drawer{Dst: canvas, Src: image.NewUniform(fg), Face: face}
		w := d.MeasureString(content).Ceil()
		x := m + (sb.Dx()-w)/2
		y := m + sb.Dy() + face.Ascent + 2
		d.Dot = fixed.P(x, y)
		d.DrawString(content)
	}
	return canvas
}

func isDark(c color.Color) bool {
	g := color.GrayModel.Convert(c).(color.Gray)
	return g.Y < 128
}

// ParseColor accepts "#rrggbb", "#rgb" or "transparent".
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "transparent") || s == "" {
		return color.Transparent, nil
	}
	if len(s) == 4 && s[0] == '#' {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// EncodePNG serializes an image as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
