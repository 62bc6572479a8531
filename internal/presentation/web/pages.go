package web

import (
	"fmt"
	"strings"

	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/site"
)

// NavItem is a header link.
type NavItem struct {
	Label  string
	Path   string
	Active bool
}

// Layout is the data every page shares.
type Layout struct {
	Title       string
	Path        string
	Company     site.Company
	AnalyticsID string
	FormURL     string
	// Phone is the company number formatted for tel: links.
	Phone string
	Nav   []NavItem
}

// CarouselView is a carousel rendered server side and driven by the client script.
type CarouselView struct {
	Name    string
	Product string
	Policy  domain.AutoAdvancePolicy
	Slides  []domain.Slide
}

// NewCarouselView adapts a site carousel for rendering.
func NewCarouselView(c site.Carousel, product string) CarouselView {
	return CarouselView{Name: c.Name, Product: product, Policy: c.Policy, Slides: c.Slides}
}

// CatalogState carries a catalog read outcome.
type CatalogState struct {
	Products []ProductView
	// Failed is set when the catalog could not be read. The page offers a retry.
	Failed bool
}

// ProductView is a product with its gallery.
type ProductView struct {
	domain.Product
	Gallery     CarouselView
	Highlighted bool
	// BookURL is the external order form. Empty falls back to the contact page.
	BookURL string
}

// HomePage is the landing page.
type HomePage struct {
	Layout
	Hero         CarouselView
	Founder      site.Founder
	About        site.About
	Growth       site.Growth
	Catalog      CatalogState
	Testimonials CarouselView
	Quotes       []domain.Testimonial
	Locator      LocatorView
	FAQs         []domain.FAQ
}

// ProductsPage lists the full catalog.
type ProductsPage struct {
	Layout
	Catalog CatalogState
	Model   int
}

// LocatorView is the service-center map state.
type LocatorView struct {
	Centers  []domain.ServiceCenter
	View     domain.MapView
	Selected *domain.ServiceCenter
}

// ServiceCentersPage shows the locator on its own.
type ServiceCentersPage struct {
	Layout
	Locator LocatorView
}

// FAQPage lists the questions.
type FAQPage struct {
	Layout
	FAQs []domain.FAQ
}

// ContactPage shows direct links and the embedded form.
type ContactPage struct {
	Layout
	Contact site.Contact
}

// TermsPage shows the legal copy.
type TermsPage struct {
	Layout
	Sections []site.TermsSection
}

// NotFoundPage is rendered for unknown routes.
type NotFoundPage struct {
	Layout
}

// Chart geometry, in SVG user units.
const (
	chartWidth   = 600
	chartHeight  = 240
	chartPadding = 40
)

// ChartPoint is one plotted value.
type ChartPoint struct {
	X, Y  float64
	Label string
	Value float64
}

// GrowthChart is a line chart laid out for an inline SVG.
type GrowthChart struct {
	Title    string
	Width    int
	Height   int
	Baseline float64
	Points   []ChartPoint
}

// Polyline is the points attribute of the chart line.
func (c GrowthChart) Polyline() string {
	parts := make([]string, len(c.Points))
	for i, p := range c.Points {
		parts[i] = fmt.Sprintf("%.1f,%.1f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

// NewGrowthChart spreads the points evenly along x and scales y from zero to
// the largest value.
func NewGrowthChart(g site.Growth) GrowthChart {
	c := GrowthChart{
		Title:    g.Title,
		Width:    chartWidth,
		Height:   chartHeight,
		Baseline: chartHeight - chartPadding,
	}
	if len(g.Points) == 0 {
		return c
	}
	var top float64
	for _, p := range g.Points {
		top = max(top, p.Value)
	}
	plotW := float64(chartWidth - 2*chartPadding)
	plotH := float64(chartHeight - 2*chartPadding)
	step := 0.0
	if len(g.Points) > 1 {
		step = plotW / float64(len(g.Points)-1)
	}
	for i, p := range g.Points {
		x := chartPadding + step*float64(i)
		if len(g.Points) == 1 {
			x = chartPadding + plotW/2
		}
		y := c.Baseline
		if top > 0 {
			y -= max(p.Value, 0) / top * plotH
		}
		c.Points = append(c.Points, ChartPoint{X: x, Y: y, Label: fmt.Sprint(p.Year), Value: p.Value})
	}
	return c
}
