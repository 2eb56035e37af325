// Package pngbatch writes one PNG file per barcode, outside of any document.
package pngbatch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/retail-labels/labelgen/internal/raster"
)

// DefaultDir is the output directory used when none is given.
const DefaultDir = "barcode_pngs"

// DefaultOptions draws bars on a transparent background without digits.
func DefaultOptions() raster.Options {
	opts := raster.DefaultOptions()
	opts.Background = "transparent"
	opts.ShowText = false
	return opts
}

type Batch struct {
	Dir        string
	Options    raster.Options
	Rasterizer raster.Rasterizer

	// OnCode, when set, is called once per input code with its outcome.
	OnCode func(code string, err error)
}

// Result counts the outcome of a batch.
type Result struct {
	Written []string
	Skipped int
	Errors  int
}

func New(dir string) *Batch {
	if dir == "" {
		dir = DefaultDir
	}
	return &Batch{
		Dir:        dir,
		Options:    DefaultOptions(),
		Rasterizer: raster.New(),
	}
}

// Run writes <code>.png into the batch directory for every code. A code that
// cannot be rasterized or written is logged and counted; only a failure to
// create the directory or a cancelled context stops the batch.
func (b *Batch) Run(ctx context.Context, codes []string) (Result, error) {
	var res Result

	if err := os.MkdirAll(b.Dir, 0755); err != nil {
		return res, fmt.Errorf("failed to create output directory: %w", err)
	}

	seen := make(map[string]bool, len(codes))
	for i, raw := range codes {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		code := strings.TrimSpace(raw)
		if code == "" || seen[code] {
			slog.Debug("Skipping code", "index", i+1, "code", code)
			res.Skipped++
			continue
		}
		seen[code] = true

		path, err := b.write(ctx, code)
		if b.OnCode != nil {
			b.OnCode(code, err)
		}
		if err != nil {
			slog.Warn("Failed to write barcode", "code", code, "error", err)
			res.Errors++
			continue
		}

		slog.Debug("Wrote barcode", "code", code, "path", path)
		res.Written = append(res.Written, path)
	}

	slog.Info("PNG batch complete", "dir", b.Dir, "written", len(res.Written), "skipped", res.Skipped, "errors", res.Errors)
	return res, nil
}

func (b *Batch) write(ctx context.Context, code string) (string, error) {
	r := b.Rasterizer.Rasterize(ctx, code, b.Options)
	if !r.OK() {
		return "", r.Err
	}

	data, err := raster.EncodePNG(r.Image)
	if err != nil {
		return "", err
	}

	path := filepath.Join(b.Dir, code+".png")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// ReadCodes reads one code per line. Blank lines and lines starting with #
// are ignored.
func ReadCodes(r io.Reader) ([]string, error) {
	var codes []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		codes = append(codes, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read codes: %w", err)
	}
	return codes, nil
}
