package compose

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/retail-labels/labelgen/internal/label"
	"github.com/retail-labels/labelgen/internal/models"
	"github.com/retail-labels/labelgen/internal/raster"
)

type echoRenderer struct {
	mu    sync.Mutex
	calls int
}

func (e *echoRenderer) Render(ctx context.Context, rec models.Record) models.Label {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	return models.Label{Record: rec}
}

func makeRecords(n int) models.RecordList {
	records := make(models.RecordList, n)
	for i := range records {
		records[i] = models.Record{StyleName: fmt.Sprintf("style-%02d", i), Barcode: "4006381333931"}
	}
	return records
}

func TestComposePageSizes(t *testing.T) {
	tests := []struct {
		name     string
		records  int
		perPage  int
		expected []int
	}{
		{name: "twelve by five", records: 12, perPage: 5, expected: []int{5, 5, 2}},
		{name: "seven by five", records: 7, perPage: 5, expected: []int{5, 2}},
		{name: "exact fit", records: 10, perPage: 5, expected: []int{5, 5}},
		{name: "single page", records: 3, perPage: 5, expected: []int{3}},
		{name: "empty", records: 0, perPage: 5, expected: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, concurrency := range []int{1, 4} {
				r := &echoRenderer{}
				records := makeRecords(tt.records)
				pages, err := New(r, concurrency).Compose(context.Background(), records, tt.perPage)
				if err != nil {
					t.Fatalf("Compose failed: %v", err)
				}
				if len(pages) != len(tt.expected) {
					t.Fatalf("Expected %d pages, got %d", len(tt.expected), len(pages))
				}

				next := 0
				for i, p := range pages {
					if p.Index != i {
						t.Errorf("Expected page index %d, got %d", i, p.Index)
					}
					if len(p.Labels) != tt.expected[i] {
						t.Errorf("Page %d: expected %d labels, got %d", i, tt.expected[i], len(p.Labels))
					}
					for _, l := range p.Labels {
						if l.Record != records[next] {
							t.Errorf("Expected %s at position %d, got %s", records[next].StyleName, next, l.StyleName)
						}
						next++
					}
				}
				if next != tt.records || r.calls != tt.records {
					t.Errorf("Expected %d labels rendered once each, got %d placed and %d calls", tt.records, next, r.calls)
				}
			}
		})
	}
}

func TestComposeInvalidPageSize(t *testing.T) {
	_, err := New(&echoRenderer{}, 1).Compose(context.Background(), makeRecords(3), 0)
	if err == nil {
		t.Fatal("Expected error for page size 0")
	}
}

func TestComposeProgress(t *testing.T) {
	c := New(&echoRenderer{}, 2)
	var seen []string
	c.OnPage = func(index, total int) {
		seen = append(seen, fmt.Sprintf("%d/%d", index+1, total))
	}

	if _, err := c.Compose(context.Background(), makeRecords(7), 5); err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if len(seen) != 2 || seen[0] != "1/2" || seen[1] != "2/2" {
		t.Errorf("Expected progress [1/2 2/2], got %v", seen)
	}
}

func TestComposeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(&echoRenderer{}, 1).Compose(ctx, makeRecords(3), 5)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestComposeKeepsInvalidBarcodes(t *testing.T) {
	records := makeRecords(2)
	records[1].Barcode = "4006381333930"
	r := label.NewRenderer(raster.New(), raster.DefaultOptions())

	pages, err := New(r, 2).Compose(context.Background(), records, 5)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	labels := pages[0].Labels
	if len(labels) != 2 {
		t.Fatalf("Expected 2 labels, got %d", len(labels))
	}
	if !labels[0].HasBarcode() {
		t.Error("Expected first label to carry a barcode")
	}
	if labels[1].HasBarcode() || labels[1].RasterError == "" {
		t.Error("Expected second label to degrade to no barcode")
	}
}
