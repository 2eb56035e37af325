package ingest

import (
	"strings"

	"github.com/retail-labels/labelgen/internal/models"
)

// Field names of a record, in the order columns are claimed.
const (
	FieldStyleName = "styleName"
	FieldColorRef  = "colorRef"
	FieldArtSeason = "artSeason"
	FieldStyleRef  = "styleRef"
	FieldSize      = "size"
	FieldPrice     = "price"
	FieldBarcode   = "barcode"
)

var columnGuesses = []struct {
	field      string
	candidates []string
}{
	{FieldBarcode, []string{"barcode", "ean", "ean13", "ean-13", "code"}},
	{FieldStyleName, []string{"stylename", "style_name", "style name", "style", "product"}},
	{FieldColorRef, []string{"colorref", "color_ref", "color ref", "color_name_ref", "color_name", "color", "colour"}},
	{FieldArtSeason, []string{"artseason", "art_season", "art season", "season", "art"}},
	{FieldStyleRef, []string{"styleref", "style_ref", "style ref", "art_season_style_ref", "season_ref"}},
	{FieldSize, []string{"size", "size_value", "taille", "taille_m"}},
	{FieldPrice, []string{"price", "price_value", "prix", "msrp"}},
}

// MapColumns guesses which header column holds each record field. Headers
// are compared case-insensitively; each column is used for one field at most.
func MapColumns(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}

	mapping := make(map[string]int)
	claimed := make(map[int]bool)
	for _, g := range columnGuesses {
		for _, cand := range g.candidates {
			if i, ok := index[cand]; ok && !claimed[i] {
				mapping[g.field] = i
				claimed[i] = true
				break
			}
		}
	}
	return mapping
}

// recordFromRow builds a record from one row; absent cells are empty.
func recordFromRow(row []string, mapping map[string]int) models.Record {
	cell := func(field string) string {
		i, ok := mapping[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	return models.Record{
		StyleName: cell(FieldStyleName),
		ColorRef:  cell(FieldColorRef),
		ArtSeason: cell(FieldArtSeason),
		StyleRef:  cell(FieldStyleRef),
		Size:      cell(FieldSize),
		Price:     cell(FieldPrice),
		Barcode:   cell(FieldBarcode),
	}
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
