package http

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"stock-forecast-dashboard/internal/dashboard/chart"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"dashboard", "stock", "accuracy", "login", "signup"}

// TemplateRenderer renders the dashboard pages. Every page is parsed
// together with the shared layout.
type TemplateRenderer struct {
	pages map[string]*template.Template
}

// NewTemplateRenderer parses the embedded templates.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	funcs := template.FuncMap{
		"widgetConfig": widgetConfig,
		"toJSON":       toJSON,
	}
	r := &TemplateRenderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/partials.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render implements echo.Renderer.
func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// widgetConfig emits a widget configuration as the body of its embed
// script.
func widgetConfig(w chart.Widget) (template.JS, error) {
	s, err := w.ConfigJSON()
	if err != nil {
		return "", err
	}
	return template.JS(s), nil
}

func toJSON(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
