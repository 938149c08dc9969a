package httpserver

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/magazin/internal/middleware/csrf"
	"github.com/Skotchmaster/magazin/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	layoutTemplate  = "templates/base.html"
	partialTemplate = "templates/products.html"
)

var templateFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"datetime": func(t time.Time) string {
		return t.Local().Format("02.01.2006 15:04")
	},
}

// Renderer executes a page template inside the shared layout. Page data is
// an echo.Map; the csrf token, the cart size and the search query are added
// to it before rendering.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	layout, err := template.New(path.Base(layoutTemplate)).
		Funcs(templateFuncs).
		ParseFS(templateFS, layoutTemplate, partialTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, f := range files {
		if f == layoutTemplate || f == partialTemplate {
			continue
		}
		t, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		r.pages[path.Base(f)] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	view := echo.Map{}
	switch d := data.(type) {
	case echo.Map:
		for k, v := range d {
			view[k] = v
		}
	case map[string]any:
		for k, v := range d {
			view[k] = v
		}
	case nil:
	default:
		return fmt.Errorf("template %q: unsupported data %T", name, data)
	}

	if _, ok := view["query"]; !ok {
		view["query"] = ""
	}
	token, _ := c.Get(csrf.ContextKey).(string)
	view["csrf"] = token
	view["cart_count"] = session.FromContext(c.Request().Context()).Count()

	return t.ExecuteTemplate(w, path.Base(layoutTemplate), view)
}
