package compose

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/retail-labels/labelgen/internal/chunk"
	"github.com/retail-labels/labelgen/internal/models"
)

// DefaultItemsPerPage is the number of labels on a full page.
const DefaultItemsPerPage = 5

// LabelRenderer renders one record. *label.Renderer satisfies it.
type LabelRenderer interface {
	Render(ctx context.Context, rec models.Record) models.Label
}

// Composer groups records into pages and renders their labels.
type Composer struct {
	Renderer LabelRenderer

	// Concurrency bounds the labels rendered at once inside a page; values
	// below 2 render sequentially.
	Concurrency int

	// OnPage, when set, is called after each page with its index and the
	// total page count.
	OnPage func(index, total int)
}

// New creates a composer around r.
func New(r LabelRenderer, concurrency int) *Composer {
	return &Composer{Renderer: r, Concurrency: concurrency}
}

// Compose splits records into pages of itemsPerPage and renders every label.
// Pages are rendered one after another; record order is preserved.
func (c *Composer) Compose(ctx context.Context, records models.RecordList, itemsPerPage int) ([]models.RenderedPage, error) {
	pages, err := Paginate(records, itemsPerPage)
	if err != nil {
		return nil, err
	}

	rendered := make([]models.RenderedPage, 0, len(pages))
	for _, p := range pages {
		labels, err := c.renderPage(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("failed to compose page %d: %w", p.Index+1, err)
		}
		rendered = append(rendered, models.RenderedPage{Index: p.Index, Labels: labels})
		slog.Debug("Composed page", "page", p.Index+1, "total", len(pages), "labels", len(labels))

		if c.OnPage != nil {
			c.OnPage(p.Index, len(pages))
		}
	}
	return rendered, nil
}

// Paginate groups records into pages without rendering them.
func Paginate(records models.RecordList, itemsPerPage int) ([]models.Page, error) {
	groups, err := chunk.Chunk(records, itemsPerPage)
	if err != nil {
		return nil, fmt.Errorf("invalid items per page %d: %w", itemsPerPage, err)
	}

	pages := make([]models.Page, len(groups))
	for i, g := range groups {
		pages[i] = models.Page{Index: i, Records: g}
	}
	return pages, nil
}

func (c *Composer) renderPage(ctx context.Context, p models.Page) ([]models.Label, error) {
	labels := make([]models.Label, len(p.Records))

	g, gctx := errgroup.WithContext(ctx)
	if c.Concurrency > 1 {
		g.SetLimit(c.Concurrency)
	} else {
		g.SetLimit(1)
	}

	for i, rec := range p.Records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			labels[i] = c.Renderer.Render(gctx, rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return labels, nil
}
