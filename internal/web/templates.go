package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"employee-portal/internal/chart"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

var pageNames = []string{"login", "list", "details", "photo", "graph", "map", "notfound"}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"or": func(value, fallback string) string {
			if value == "" {
				return fallback
			}
			return value
		},
		"rupees": chart.FormatRupees,
		"addf": func(a, b float64) float64 {
			return a + b
		},
		"div2": func(v int) int {
			return v / 2
		},
		"f1": func(v float64) string {
			return fmt.Sprintf("%.1f", v)
		},
	}
}

// loadTemplates parses every page against the shared base layout so each
// page can define its own "content" block.
func loadTemplates() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(templateFuncs()).ParseFS(templatesFS,
			"templates/layouts/base.html",
			"templates/pages/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(fmt.Sprintf("Failed to open static assets: %v", err))
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
