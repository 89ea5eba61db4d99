// Package dashboard renders the HTML pages of the demo apps.
package dashboard

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages that can be rendered.
const (
	Ecommerce = "ecommerce"
	Weather   = "weather"
	Social    = "social"
	Sample    = "sample"
)

var pages = []string{Ecommerce, Weather, Social, Sample}

var errUnknownPage = errors.New("unknown page")

// View is the data handed to every page.
type View struct {
	Service string
	Time    time.Time
	Data    any
}

// RenderError reports a failed template execution.
type RenderError struct {
	Page string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s dashboard: %v", e.Page, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Renderer holds the parsed page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	fm := funcMap()
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, p := range pages {
		t, err := template.New("layout").Funcs(fm).ParseFS(templateFS, "templates/layout.html", "templates/"+p+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s templates: %w", p, err)
		}
		r.pages[p] = t
	}
	return r, nil
}

// Render executes page into a buffer and copies it to w only on success,
// so a failed render never leaves partial HTML behind.
func (r *Renderer) Render(w io.Writer, page string, v View) error {
	t, ok := r.pages[page]
	if !ok {
		return &RenderError{Page: page, Err: errUnknownPage}
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
		return &RenderError{Page: page, Err: err}
	}
	_, err := buf.WriteTo(w)
	return err
}

func funcMap() template.FuncMap {
	fm := sprig.HtmlFuncMap()
	p := message.NewPrinter(language.English)

	extra := map[string]any{
		"number": func(v int) string { return p.Sprintf("%d", v) },
		"fixed":  func(v float64) string { return p.Sprintf("%.1f", v) },
		// Casers are stateful, so each call gets its own.
		"title": func(s string) string { return cases.Title(language.English).String(s) },
		"usd": func(v decimal.Decimal) string {
			return "$" + p.Sprintf("%.2f", v.InexactFloat64())
		},
	}
	for name, fn := range extra {
		fm[name] = fn
	}
	return fm
}
