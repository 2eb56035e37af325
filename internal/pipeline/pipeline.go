// Package pipeline runs a generation from input records to a PDF document.
//
// A run moves through Idle, Loading, Composing and Building, and ends in Done
// or Failed. The first stage error stops the run; labels whose barcode could
// not be rasterized are counted but never fail it.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/retail-labels/labelgen/internal/compose"
	"github.com/retail-labels/labelgen/internal/config"
	"github.com/retail-labels/labelgen/internal/document"
	"github.com/retail-labels/labelgen/internal/ean"
	"github.com/retail-labels/labelgen/internal/ingest"
	"github.com/retail-labels/labelgen/internal/label"
	"github.com/retail-labels/labelgen/internal/models"
	"github.com/retail-labels/labelgen/internal/raster"
	"github.com/retail-labels/labelgen/internal/report"
)

type State int

const (
	Idle State = iota
	Loading
	Composing
	Building
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Composing:
		return "composing"
	case Building:
		return "building"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type Options struct {
	Input  string
	Config config.Config

	// SkipInvalid drops records whose barcode fails the EAN-13 checksum
	// instead of printing them without image.
	SkipInvalid bool

	// Rasterizer defaults to raster.New().
	Rasterizer raster.Rasterizer

	OnState func(State)
	OnPage  func(index, total int)
}

// Result describes a finished run, successful or not.
type Result struct {
	State          State
	Err            error
	Output         string
	Records        int
	Pages          int
	Bytes          int64
	Skipped        []string
	RasterFailures int
	Failures       []report.LabelIssue
}

// Summary converts r into the YAML report shape.
func (r *Result) Summary(opts Options) report.Summary {
	s := report.Summary{
		Config: report.NewRunConfig(opts.Input, r.Output, opts.Config.Paper,
			opts.Config.ItemsPerPage, opts.SkipInvalid),
		State:          r.State.String(),
		Records:        r.Records,
		Pages:          r.Pages,
		Skipped:        r.Skipped,
		RasterFailures: r.Failures,
	}
	if r.Err != nil {
		s.Error = r.Err.Error()
	}
	return s
}

type run struct {
	opts Options
	res  *Result
}

func newRun(opts Options) *run {
	output := opts.Config.Output
	if output == "" {
		output = document.DefaultFilename
	}
	if opts.Rasterizer == nil {
		opts.Rasterizer = raster.New()
	}
	return &run{opts: opts, res: &Result{State: Idle, Output: output}}
}

// Run loads opts.Input and writes the document to opts.Config.Output.
func Run(ctx context.Context, opts Options) (*Result, error) {
	r := newRun(opts)
	if err := opts.Config.Validate(); err != nil {
		return r.fail(fmt.Errorf("invalid configuration: %w", err))
	}

	r.set(Loading)
	records, err := ingest.LoadFile(ctx, opts.Input)
	if err != nil {
		return r.fail(err)
	}
	slog.Info("Loaded records", "input", opts.Input, "count", len(records))

	pages, err := r.compose(ctx, records)
	if err != nil {
		return r.fail(err)
	}

	r.set(Building)
	builder, err := r.builder()
	if err != nil {
		return r.fail(err)
	}
	if err := builder.Build(ctx, pages, r.res.Output); err != nil {
		return r.fail(err)
	}

	r.set(Done)
	return r.res, nil
}

// Render composes records that are already loaded and streams the document
// to out. The Loading state is skipped.
func Render(ctx context.Context, records models.RecordList, opts Options, out io.Writer) (*Result, error) {
	r := newRun(opts)
	if err := opts.Config.Validate(); err != nil {
		return r.fail(fmt.Errorf("invalid configuration: %w", err))
	}

	pages, err := r.compose(ctx, records)
	if err != nil {
		return r.fail(err)
	}

	r.set(Building)
	builder, err := r.builder()
	if err != nil {
		return r.fail(err)
	}
	n, err := builder.BuildTo(ctx, pages, out)
	r.res.Bytes = n
	if err != nil {
		return r.fail(err)
	}

	r.set(Done)
	return r.res, nil
}

func (r *run) compose(ctx context.Context, records models.RecordList) ([]models.RenderedPage, error) {
	r.set(Composing)
	records = r.filter(records)
	r.res.Records = len(records)

	cfg := r.opts.Config
	c := compose.New(label.NewRenderer(r.opts.Rasterizer, cfg.Barcode), cfg.Concurrency)
	c.OnPage = r.opts.OnPage

	pages, err := c.Compose(ctx, records, cfg.ItemsPerPage)
	if err != nil {
		return nil, err
	}

	r.res.Pages = len(pages)
	r.res.Failures = report.Failures(pages)
	r.res.RasterFailures = len(r.res.Failures)
	if r.res.RasterFailures > 0 {
		slog.Warn("Some labels have no barcode", "count", r.res.RasterFailures)
	}
	return pages, nil
}

func (r *run) filter(records models.RecordList) models.RecordList {
	if !r.opts.SkipInvalid {
		return records
	}

	kept := make(models.RecordList, 0, len(records))
	for _, rec := range records {
		if !ean.Validate(rec.Barcode) {
			slog.Warn("Skipping record with invalid barcode", "barcode", rec.Barcode, "style", rec.StyleName)
			r.res.Skipped = append(r.res.Skipped, rec.Barcode)
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

func (r *run) builder() (*document.Builder, error) {
	paper, err := r.opts.Config.PaperSize()
	if err != nil {
		return nil, err
	}
	return document.NewBuilder(paper, r.opts.Config.Layout), nil
}

func (r *run) set(s State) {
	slog.Debug("Pipeline state", "from", r.res.State, "to", s)
	r.res.State = s
	if r.opts.OnState != nil {
		r.opts.OnState(s)
	}
}

func (r *run) fail(err error) (*Result, error) {
	r.res.Err = err
	r.set(Failed)
	return r.res, err
}
