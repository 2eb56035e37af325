package raster

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"image/png"
	"testing"
)

func TestRasterizeValidCode(t *testing.T) {
	opts := DefaultOptions()
	res := New().Rasterize(context.Background(), "4006381333931", opts)
	if !res.OK() {
		t.Fatalf("Expected success, got %v", res.Err)
	}
	if res.Content != "4006381333931" {
		t.Errorf("Expected content 4006381333931, got %s", res.Content)
	}

	b := res.Image.Bounds()
	wantW := eanModules*opts.ModuleWidth + 2*opts.Margin
	if b.Dx() != wantW {
		t.Errorf("Expected width %d, got %d", wantW, b.Dx())
	}
	if b.Dy() <= opts.Height+2*opts.Margin {
		t.Errorf("Expected room for digits below bars, got height %d", b.Dy())
	}

	// The left guard bar starts right after the quiet zone.
	if !isDark(res.Image.At(opts.Margin, opts.Margin+1)) {
		t.Error("Expected a dark guard bar after the margin")
	}
	if isDark(res.Image.At(0, 0)) {
		t.Error("Expected the quiet zone to be background")
	}
}

func TestRasterizeTwelveDigitBody(t *testing.T) {
	res := New().Rasterize(context.Background(), "400638133393", DefaultOptions())
	if !res.OK() {
		t.Fatalf("Expected success, got %v", res.Err)
	}
	if res.Content != "4006381333931" {
		t.Errorf("Expected check digit to be appended, got %s", res.Content)
	}
}

func TestRasterizeFailures(t *testing.T) {
	tests := []struct {
		name string
		code string
		opts func(*Options)
	}{
		{name: "bad checksum", code: "4006381333930"},
		{name: "too short", code: "1234567"},
		{name: "letters", code: "ABCDEFGHIJKLM"},
		{name: "empty", code: ""},
		{name: "other symbology", code: "4006381333931", opts: func(o *Options) { o.Format = "CODE128" }},
		{name: "bad color", code: "4006381333931", opts: func(o *Options) { o.LineColor = "black" }},
		{name: "zero height", code: "4006381333931", opts: func(o *Options) { o.Height = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}
			res := New().Rasterize(context.Background(), tt.code, opts)
			if res.OK() {
				t.Fatal("Expected failure, got image")
			}
			var rerr *Error
			if !errors.As(res.Err, &rerr) {
				t.Fatalf("Expected *Error, got %T", res.Err)
			}
			if rerr.Code != tt.code {
				t.Errorf("Expected code %q in error, got %q", tt.code, rerr.Code)
			}
		})
	}
}

func TestRasterizeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := New().Rasterize(ctx, "4006381333931", DefaultOptions())
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", res.Err)
	}
}

func TestTransparentBackground(t *testing.T) {
	opts := DefaultOptions()
	opts.Background = "transparent"
	opts.ShowText = false
	res := New().Rasterize(context.Background(), "4006381333931", opts)
	if !res.OK() {
		t.Fatalf("Expected success, got %v", res.Err)
	}
	if _, _, _, a := res.Image.At(0, 0).RGBA(); a != 0 {
		t.Errorf("Expected transparent corner, got alpha %d", a)
	}
	if got := res.Image.Bounds().Dy(); got != opts.Height+2*opts.Margin {
		t.Errorf("Expected height %d without digits, got %d", opts.Height+2*opts.Margin, got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.NRGBA
		wantErr bool
	}{
		{input: "#000000", want: color.NRGBA{0, 0, 0, 255}},
		{input: "#fff", want: color.NRGBA{255, 255, 255, 255}},
		{input: "transparent", want: color.NRGBA{}},
		{input: "#zzzzzz", wantErr: true},
		{input: "red", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseColor(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor failed: %v", err)
			}
			got := color.NRGBAModel.Convert(c).(color.NRGBA)
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEncodePNG(t *testing.T) {
	res := New().Rasterize(context.Background(), "3607186681381", DefaultOptions())
	data, err := EncodePNG(res.Image)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Expected decodable PNG: %v", err)
	}
	if cfg.Width != res.Image.Bounds().Dx() {
		t.Errorf("Expected width %d, got %d", res.Image.Bounds().Dx(), cfg.Width)
	}
}
