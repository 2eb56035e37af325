package pdfs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/retail-labels/labelgen/internal/raster"
)

func TestLookupPaperSize(t *testing.T) {
	tests := []struct {
		name     string
		expected PaperSize
		wantErr  bool
	}{
		{name: "A4", expected: A4Size},
		{name: "letter", expected: LetterSize},
		{name: " Legal ", expected: LegalSize},
		{name: "A5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LookupPaperSize(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("LookupPaperSize failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestFPDFWriterWriteToFile(t *testing.T) {
	w := NewFPDFWriter(A4Size, "test")
	for i := 0; i < 3; i++ {
		w.AddBlankPage()
		w.SetFont("Helvetica", "B", 12)
		w.Text(20, 20, "Prix 59,99 €")
		w.Rect(10, 10, 80, 50)
	}
	if w.PageCount() != 3 {
		t.Errorf("Expected 3 pages, got %d", w.PageCount())
	}

	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := w.WriteToFile(path); err != nil {
		t.Fatalf("WriteToFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("Expected PDF header, got %q", data[:min(len(data), 8)])
	}
}

func TestFPDFWriterImageAndCount(t *testing.T) {
	res := raster.New().Rasterize(context.Background(), "4006381333931", raster.DefaultOptions())
	png, err := raster.EncodePNG(res.Image)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	w := NewFPDFWriter(LetterSize, "")
	w.AddBlankPage()
	if err := w.Image("bc-1", png, 10, 10, 60, 30); err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	if err := w.Image("bc-1", png, 10, 50, 60, 30); err != nil {
		t.Fatalf("Image reuse failed: %v", err)
	}

	var buf bytes.Buffer
	n, err := w.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("Expected %d bytes counted, got %d", buf.Len(), n)
	}
}

func TestFPDFWriterBadImage(t *testing.T) {
	w := NewFPDFWriter(A4Size, "")
	w.AddBlankPage()
	if err := w.Image("broken", []byte("not a png"), 0, 0, 10, 10); err == nil {
		t.Error("Expected error for invalid PNG data")
	}
}

func TestFPDFWriterWriteToFileKeepsExistingOnError(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "barcodes.pdf")
	if err := os.WriteFile(target, []byte("previous"), 0644); err != nil {
		t.Fatalf("Failed to write existing file: %v", err)
	}

	w := NewFPDFWriter(A4Size, "")
	w.AddBlankPage()
	if err := w.Image("broken", []byte("not a png"), 0, 0, 10, 10); err == nil {
		t.Fatal("Expected error for invalid PNG data")
	}
	if err := w.WriteToFile(target); err == nil {
		t.Fatal("Expected WriteToFile to fail")
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("Failed to read target: %v", err)
	}
	if string(data) != "previous" {
		t.Errorf("Expected existing file to be untouched, got %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to list directory: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the existing file, got %d entries", len(entries))
	}
}

func TestCountWriter(t *testing.T) {
	var buf bytes.Buffer
	cw := NewCountWriter(&buf)
	cw.Write([]byte("abc"))
	cw.Write([]byte("de"))
	if cw.BytesWritten() != 5 {
		t.Errorf("Expected 5 bytes, got %d", cw.BytesWritten())
	}
}
