package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Record is the source data of one label.
type Record struct {
	StyleName string `json:"styleName" parquet:"styleName,optional" yaml:"styleName"`
	ColorRef  string `json:"colorRef" parquet:"colorRef,optional" yaml:"colorRef"`
	ArtSeason string `json:"artSeason" parquet:"artSeason,optional" yaml:"artSeason"`
	StyleRef  string `json:"styleRef" parquet:"styleRef,optional" yaml:"styleRef"`
	Size      string `json:"size" parquet:"size,optional" yaml:"size"`
	Price     string `json:"price" parquet:"price,optional" yaml:"price"` // locale formatted, e.g. "59,99 €"
	Barcode   string `json:"barcode" parquet:"barcode,optional" yaml:"barcode"`
}

// RecordList is the ordered content of one ingested file.
type RecordList []Record

// Page is a group of consecutive records rendered onto one document page.
type Page struct {
	Index   int
	Records []Record
}

// Label is a record combined with its rasterized barcode.
type Label struct {
	Record
	SizeLabel   string
	Barcode     []byte // PNG, nil when rasterization failed
	BarcodeW    int
	BarcodeH    int
	RasterError string
	Recommended string
	PriceLabel  string
}

// HasBarcode reports whether the label carries a barcode image.
func (l Label) HasBarcode() bool {
	return len(l.Barcode) > 0
}

// RenderedPage is a page whose labels have been rendered, in record order.
type RenderedPage struct {
	Index  int
	Labels []Label
}

// UploadSession holds a record list uploaded through the web interface.
type UploadSession struct {
	ID        string     `json:"id"`
	Filename  string     `json:"filename"`
	Records   RecordList `json:"-"`
	Count     int        `json:"count"`
	CreatedAt time.Time  `json:"created_at"`
}

// UnmarshalJSON accepts numbers and booleans where text is expected, so a
// barcode written as a bare JSON number still loads. Missing keys stay empty.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return nil
	}

	fields := map[string]*string{
		"styleName": &r.StyleName,
		"colorRef":  &r.ColorRef,
		"artSeason": &r.ArtSeason,
		"styleRef":  &r.StyleRef,
		"size":      &r.Size,
		"price":     &r.Price,
		"barcode":   &r.Barcode,
	}
	for key, dst := range fields {
		v, ok := raw[key]
		if !ok {
			continue
		}
		s, err := scalarText(v)
		if err != nil {
			return fmt.Errorf("field %s: %w", key, err)
		}
		*dst = s
	}
	return nil
}

func scalarText(v json.RawMessage) (string, error) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || string(v) == "null" {
		return "", nil
	}
	switch v[0] {
	case '"':
		var s string
		err := json.Unmarshal(v, &s)
		return s, err
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(v, &b); err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	case '{', '[':
		return "", fmt.Errorf("expected scalar, got %s", v)
	default:
		var n json.Number
		if err := json.Unmarshal(v, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	}
}
