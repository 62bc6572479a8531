// Package web renders the site pages and serves their static assets.
package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aretw0/vitrine/pkg/carousel"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names.
const (
	PageHome           = "home"
	PageProducts       = "products"
	PageServiceCenters = "service_centers"
	PageFAQ            = "faq"
	PageContact        = "contact"
	PageTerms          = "terms"
	PageNotFound       = "not_found"
)

var pages = []string{PageHome, PageProducts, PageServiceCenters, PageFAQ, PageContact, PageTerms, PageNotFound}

// Renderer executes page templates inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page template.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes page with data. Output is buffered so a failing template never
// produces a half-written page.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded assets.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

var funcs = template.FuncMap{
	"price":   FormatPrice,
	"inc":     func(i int) int { return i + 1 },
	"ms":      func(d time.Duration) int64 { return d.Milliseconds() },
	"json":    toJSON,
	"zoomMin": func() float64 { return carousel.MinZoom },
	"zoomMax": func() float64 { return carousel.MaxZoom },
	"zoomStep": func() float64 {
		return carousel.ZoomStep
	},
	"year":        func() int { return time.Now().Year() },
	"growthChart": NewGrowthChart,
}

func toJSON(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

// FormatPrice renders a rupee amount with Indian digit grouping.
func FormatPrice(d decimal.Decimal) string {
	whole := d.Truncate(0).Abs().String()
	paise := d.Sub(d.Truncate(0)).Abs()

	var grouped string
	if len(whole) <= 3 {
		grouped = whole
	} else {
		head, tail := whole[:len(whole)-3], whole[len(whole)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		grouped = strings.Join(append(parts, tail), ",")
	}

	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	if !paise.IsZero() {
		return fmt.Sprintf("%s₹%s.%02d", sign, grouped, paise.Shift(2).Round(0).IntPart())
	}
	return fmt.Sprintf("%s₹%s", sign, grouped)
}
