package web

import (
	"embed"
	"html/template"
	"io"
	"net/url"

	"github.com/Sternrassler/pokedex-catalog/pkg/catalog"
	"github.com/Sternrassler/pokedex-catalog/pkg/listing"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

//go:embed templates/*.html
var templateFS embed.FS

type pageTemplates struct {
	index *template.Template
}

type indexData struct {
	listing.View
	Empty bool
}

func mustParseTemplates() *pageTemplates {
	funcs := template.FuncMap{
		"pageURL": func(p catalog.Params, page int) string {
			return "/?" + p.WithPage(page).Query().Encode()
		},
		"toggleURL": func(p catalog.Params, name string) string {
			return "/?" + p.Toggle(name).Query().Encode()
		},
		"selected": func(p catalog.Params, name string) bool {
			return p.Has(name)
		},
		"itemURL": func(name string) string {
			return "/api/items/" + url.PathEscape(name)
		},
		"comma": func(n int) string {
			return humanize.Comma(int64(n))
		},
		"plural": func(n int, singular, plural string) string {
			return english.PluralWord(n, singular, plural)
		},
		"add": func(a, b int) int {
			return a + b
		},
	}

	return &pageTemplates{
		index: template.Must(template.New("index.html").Funcs(funcs).ParseFS(templateFS, "templates/index.html")),
	}
}

func (t *pageTemplates) renderIndex(w io.Writer, view listing.View) error {
	return t.index.Execute(w, indexData{View: view, Empty: len(view.Items) == 0})
}
