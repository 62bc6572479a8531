package http

import (
	"context"
	"encoding/xml"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/aretw0/vitrine/internal/presentation/web"
	"github.com/aretw0/vitrine/pkg/catalog"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/site"
)

var nav = []web.NavItem{
	{Label: "Home", Path: "/"},
	{Label: "Products", Path: "/products"},
	{Label: "Service Centers", Path: "/service-centers"},
	{Label: "FAQ", Path: "/faq"},
	{Label: "Contact", Path: "/contact"},
}

func (s *Server) layout(title, p string) web.Layout {
	items := make([]web.NavItem, len(nav))
	for i, item := range nav {
		item.Active = item.Path == p
		items[i] = item
	}
	return web.Layout{
		Title:       title,
		Path:        p,
		Company:     s.site.Company(),
		AnalyticsID: s.analyticsID,
		FormURL:     s.formURL,
		Phone:       s.site.Phone(),
		Nav:         items,
	}
}

// catalogState reads the catalog for a page. A failed read is rendered as a
// retry prompt rather than an error page.
func (s *Server) catalogState(ctx context.Context, limit, model int) web.CatalogState {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		s.logger.Warn("catalog unavailable", "err", err)
		return web.CatalogState{Failed: true}
	}
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	views := make([]web.ProductView, len(products))
	for i, p := range products {
		views[i] = web.ProductView{
			Product:     p,
			Gallery:     web.NewCarouselView(s.site.Gallery(p), p.ID),
			Highlighted: model == i+1,
			BookURL:     s.formURL,
		}
	}
	return web.CatalogState{Products: views}
}

func (s *Server) locatorView(city string) web.LocatorView {
	loc := s.site.Locator()
	view := web.LocatorView{Centers: loc.Centers(), View: loc.DefaultView()}
	if city == "" {
		return view
	}
	if center, mv, ok := loc.Select(city); ok {
		view.View = mv
		view.Selected = &center
	}
	return view
}

func (s *Server) render(w http.ResponseWriter, status int, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.pages.Render(w, page, data); err != nil {
		s.logger.Error("render failed", "page", page, "err", err)
	}
}

func (s *Server) carouselView(name string) web.CarouselView {
	c, ok := s.site.Carousel(name)
	if !ok {
		return web.CarouselView{}
	}
	return web.NewCarouselView(c, "")
}

// teaserSize is how many products the landing page previews.
const teaserSize = 3

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, web.PageHome, web.HomePage{
		Layout:       s.layout("", "/"),
		Hero:         s.carouselView(site.CarouselHero),
		Founder:      s.site.Founder(),
		About:        s.site.About(),
		Growth:       s.site.Growth(),
		Catalog:      s.catalogState(r.Context(), teaserSize, 0),
		Testimonials: s.carouselView(site.CarouselTestimonials),
		Quotes:       s.site.Testimonials(),
		Locator:      s.locatorView(""),
		FAQs:         s.site.FAQs(),
	})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	model, _ := strconv.Atoi(r.URL.Query().Get("model"))
	s.render(w, http.StatusOK, web.PageProducts, web.ProductsPage{
		Layout:  s.layout("Products", "/products"),
		Catalog: s.catalogState(r.Context(), 0, model),
		Model:   model,
	})
}

func (s *Server) handleServiceCenters(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, web.PageServiceCenters, web.ServiceCentersPage{
		Layout:  s.layout("Service Centers", "/service-centers"),
		Locator: s.locatorView(r.URL.Query().Get("city")),
	})
}

func (s *Server) handleFAQ(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, web.PageFAQ, web.FAQPage{
		Layout: s.layout("FAQ", "/faq"),
		FAQs:   s.site.FAQs(),
	})
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, web.PageContact, web.ContactPage{
		Layout:  s.layout("Contact", "/contact"),
		Contact: s.site.Contact(),
	})
}

func (s *Server) handleTerms(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, web.PageTerms, web.TermsPage{
		Layout:   s.layout("Terms & Conditions", "/terms"),
		Sections: s.site.Terms(),
	})
}

// handleNotFound serves public files when configured, and the 404 page otherwise.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if s.publicDir != "" && r.Method == http.MethodGet {
		name := filepath.Join(s.publicDir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			http.ServeFile(w, r, name)
			return
		}
	}
	s.render(w, http.StatusNotFound, web.PageNotFound, web.NotFoundPage{
		Layout: s.layout("Page not found", r.URL.Path),
	})
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlset struct {
	XMLName xml.Name     `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 urlset"`
	URLs    []sitemapURL `xml:"url"`
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	base := s.baseURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + r.Host
	}
	set := urlset{URLs: []sitemapURL{
		{Loc: base + "/", ChangeFreq: "weekly", Priority: "1.0"},
		{Loc: base + "/products", ChangeFreq: "weekly", Priority: "0.9"},
		{Loc: base + "/service-centers", ChangeFreq: "monthly", Priority: "0.7"},
		{Loc: base + "/faq", ChangeFreq: "monthly", Priority: "0.6"},
		{Loc: base + "/contact", ChangeFreq: "monthly", Priority: "0.6"},
		{Loc: base + "/terms", ChangeFreq: "yearly", Priority: "0.3"},
	}}
	if products, err := s.catalog.Products(r.Context()); err == nil {
		for i := range products {
			set.URLs = append(set.URLs, sitemapURL{
				Loc:        base + "/products?model=" + strconv.Itoa(i+1),
				ChangeFreq: "weekly",
				Priority:   "0.8",
			})
		}
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write([]byte(xml.Header))
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		s.logger.Error("sitemap encode failed", "err", err)
	}
}

// LocatorResult is the JSON form of a service-center lookup.
type LocatorResult struct {
	Centers  []domain.ServiceCenter `json:"centers"`
	View     domain.MapView         `json:"view"`
	Selected *domain.ServiceCenter  `json:"selected,omitempty"`
}

func (s *Server) findServiceCenter(w http.ResponseWriter, r *http.Request) {
	v := s.locatorView(r.URL.Query().Get("city"))
	writeJSON(w, s.logger, http.StatusOK, LocatorResult{Centers: v.Centers, View: v.View, Selected: v.Selected})
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.Products(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if model, err := strconv.Atoi(r.URL.Query().Get("model")); err == nil {
		p, ok := catalog.Find(products, model)
		if !ok {
			writeJSON(w, s.logger, http.StatusNotFound, errorBody{Error: "no such model"})
			return
		}
		products = []domain.Product{p}
	}
	if products == nil {
		products = []domain.Product{}
	}
	writeJSON(w, s.logger, http.StatusOK, products)
}
