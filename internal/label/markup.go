package label

import (
	"encoding/base64"
	"html/template"
	"io"

	"github.com/retail-labels/labelgen/internal/models"
)

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"dataURL": func(png []byte) template.URL {
		return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
	},
}).Parse(`<div class="page" data-page="{{.Index}}">
{{- range .Labels}}
  <div class="barcode-item">
    <div class="barcode-header">
      <div class="style-name">{{.StyleName}}</div>
      <div class="color-ref">{{.ColorRef}}</div>
    </div>
    <div class="barcode-content">
      <div class="art-season">{{.ArtSeason}} {{.StyleRef}}</div>
      <div class="size">{{.SizeLabel}}</div>
      {{- if .HasBarcode}}
      <img src="{{dataURL .Barcode}}" alt="Barcode {{.Record.Barcode}}" class="barcode-image" width="{{.BarcodeW}}" height="{{.BarcodeH}}">
      {{- else}}
      <div class="barcode-missing">{{.Record.Barcode}}</div>
      {{- end}}
      <div class="price">{{.Price}}</div>
      <div class="consielle">{{.Recommended}}</div>
      <div class="prix-vente">{{.PriceLabel}}</div>
    </div>
  </div>
{{- end}}
</div>
`))

// WriteMarkup renders the HTML fragment of one page.
func WriteMarkup(w io.Writer, page models.RenderedPage) error {
	return pageTemplate.Execute(w, page)
}
