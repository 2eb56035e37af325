package ingest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"

	"github.com/retail-labels/labelgen/internal/models"
)

// SupportedExtensions lists the file types LoadRecords understands.
var SupportedExtensions = []string{".json", ".jsonl", ".csv", ".tsv", ".xlsx", ".parquet"}

// LoadFile opens path and loads its records.
func LoadFile(ctx context.Context, path string) (models.RecordList, error) {
	slog.Debug("Opening record file", "path", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Err: fmt.Errorf("failed to open %s: %w", path, err)}
	}
	defer file.Close()

	return LoadRecords(ctx, file, filepath.Base(path))
}

// LoadRecords reads r to the end and parses it according to the extension of
// filename. Files without a known extension are parsed as JSON.
func LoadRecords(ctx context.Context, r io.Reader, filename string) (models.RecordList, error) {
	data, err := io.ReadAll(&ctxReader{ctx: ctx, r: r})
	if err != nil {
		return nil, &ReadError{Err: err}
	}

	slog.Debug("Read record file", "name", filename, "size_bytes", len(data))

	var records models.RecordList
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".jsonl":
		records, err = parseJSONL(data)
	case ".csv":
		records, err = parseDelimited(data, ',')
	case ".tsv":
		records, err = parseDelimited(data, '\t')
	case ".xlsx":
		records, err = parseXLSX(data)
	case ".parquet":
		records, err = parseParquet(data)
	default:
		records, err = parseJSON(data)
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("Parsed records", "name", filename, "count", len(records))
	return records, nil
}

// parseJSON expects an array of record objects.
func parseJSON(data []byte) (models.RecordList, error) {
	var records models.RecordList
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &MalformedInputError{Format: "JSON", Err: err}
	}
	if records == nil {
		records = models.RecordList{}
	}
	return records, nil
}

// parseJSONL expects one record object per line; blank lines are skipped.
func parseJSONL(data []byte) (models.RecordList, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))

	// Increase buffer size for large JSON lines
	const maxCapacity = 10 * 1024 * 1024 // 10MB per line
	scanner.Buffer(make([]byte, 0, 64*1024), maxCapacity)

	records := models.RecordList{}
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var record models.Record
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, &MalformedInputError{Format: "JSONL", Err: fmt.Errorf("line %d: %w", lineNum, err)}
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, &MalformedInputError{Format: "JSONL", Err: err}
	}
	return records, nil
}

func parseDelimited(data []byte, comma rune) (models.RecordList, error) {
	format := "CSV"
	if comma == '\t' {
		format = "TSV"
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &MalformedInputError{Format: format, Err: err}
	}
	return recordsFromRows(rows, format)
}

func parseXLSX(data []byte) (models.RecordList, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &MalformedInputError{Format: "XLSX", Err: err}
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &MalformedInputError{Format: "XLSX", Err: fmt.Errorf("sheet %q: %w", sheet, err)}
	}
	slog.Debug("Read worksheet", "sheet", sheet, "rows", len(rows))
	return recordsFromRows(rows, "XLSX")
}

// recordsFromRows treats the first non-blank row as the header.
func recordsFromRows(rows [][]string, format string) (models.RecordList, error) {
	for len(rows) > 0 && blankRow(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return models.RecordList{}, nil
	}

	mapping := MapColumns(rows[0])
	if len(mapping) == 0 {
		return nil, &MalformedInputError{Format: format, Err: fmt.Errorf("no recognized columns in header %v", rows[0])}
	}
	slog.Debug("Mapped columns", "format", format, "mapping", mapping)

	records := make(models.RecordList, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		records = append(records, recordFromRow(row, mapping))
	}
	return records, nil
}

func parseParquet(data []byte) (models.RecordList, error) {
	pf, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &MalformedInputError{Format: "Parquet", Err: err}
	}

	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[models.Record](pf)
	defer reader.Close()

	records := make(models.RecordList, 0, pf.NumRows())
	rows := make([]models.Record, 128) // Read in batches
	for {
		n, err := reader.Read(rows)
		records = append(records, rows[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &MalformedInputError{Format: "Parquet", Err: err}
		}
	}
	return records, nil
}

// ctxReader stops reading once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
