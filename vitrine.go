package vitrine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/vitrine/internal/logging"
	apihttp "github.com/aretw0/vitrine/pkg/adapters/http"
	"github.com/aretw0/vitrine/pkg/adapters/mcp"
	"github.com/aretw0/vitrine/pkg/carousel"
	"github.com/aretw0/vitrine/pkg/catalog"
	"github.com/aretw0/vitrine/pkg/clock"
	"github.com/aretw0/vitrine/pkg/dialogue"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/observability"
	"github.com/aretw0/vitrine/pkg/ports"
	"github.com/aretw0/vitrine/pkg/site"
)

// App is the high-level entry point: site content, catalog and the shared
// time source and observability every engine is built with.
type App struct {
	site        *site.Site
	siteFile    string
	catalog     ports.CatalogSource
	catalogFile string
	catalogMW   []ports.CatalogMiddleware
	clock       ports.Clock
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithSite uses an already loaded site.
func WithSite(s *site.Site) Option {
	return func(a *App) {
		a.site = s
	}
}

// WithSiteFile loads the site from a YAML file instead of the bundled one.
func WithSiteFile(path string) Option {
	return func(a *App) {
		a.siteFile = path
	}
}

// WithCatalog injects a catalog source.
func WithCatalog(c ports.CatalogSource) Option {
	return func(a *App) {
		a.catalog = c
	}
}

// WithCatalogFile reads the catalog from a JSON file on every request.
func WithCatalogFile(path string) Option {
	return func(a *App) {
		a.catalogFile = path
	}
}

// WithCatalogMiddleware wraps the catalog source, innermost first.
func WithCatalogMiddleware(mw ...ports.CatalogMiddleware) Option {
	return func(a *App) {
		a.catalogMW = append(a.catalogMW, mw...)
	}
}

// WithClock injects the time source for every engine.
func WithClock(c ports.Clock) Option {
	return func(a *App) {
		a.clock = c
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithMetrics records engine events into m.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *App) {
		a.metrics = m
	}
}

// New builds an App. Without options it serves the bundled site and catalog.
func New(opts ...Option) (*App, error) {
	a := &App{
		clock:  clock.New(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.site == nil {
		var err error
		if a.siteFile != "" {
			a.site, err = site.LoadFile(a.siteFile)
		} else {
			a.site, err = site.Default()
		}
		if err != nil {
			return nil, fmt.Errorf("load site: %w", err)
		}
	}

	if a.catalog == nil {
		if a.catalogFile != "" {
			a.catalog = catalog.NewFileSource(a.catalogFile)
		} else {
			def, err := catalog.Default()
			if err != nil {
				return nil, fmt.Errorf("load catalog: %w", err)
			}
			a.catalog = def
		}
	}
	for _, mw := range a.catalogMW {
		a.catalog = mw(a.catalog)
	}
	return a, nil
}

// Site returns the loaded site content.
func (a *App) Site() *site.Site { return a.site }

// Catalog returns the catalog source.
func (a *App) Catalog() ports.CatalogSource { return a.catalog }

// Products reads the catalog.
func (a *App) Products(ctx context.Context) ([]domain.Product, error) {
	return a.catalog.Products(ctx)
}

// Lint reports dangling references in the chatbot script.
func (a *App) Lint() []dialogue.Issue {
	return a.site.Graph().Lint()
}

// NewCarousel creates a started carousel for a configured name.
func (a *App) NewCarousel(name string, hooks ...domain.CarouselHooks) (*carousel.Engine, error) {
	c, ok := a.site.Carousel(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCarousel, name)
	}
	return a.startCarousel(c, hooks)
}

// NewGallery creates a manual carousel over a product's images.
func (a *App) NewGallery(p domain.Product, hooks ...domain.CarouselHooks) (*carousel.Engine, error) {
	return a.startCarousel(a.site.Gallery(p), hooks)
}

func (a *App) startCarousel(c site.Carousel, hooks []domain.CarouselHooks) (*carousel.Engine, error) {
	all := append([]domain.CarouselHooks{observability.LogCarouselHooks(a.logger)}, hooks...)
	if a.metrics != nil {
		all = append(all, a.metrics.CarouselHooks())
	}
	eng, err := carousel.New(c.Slides,
		carousel.WithName(c.Name),
		carousel.WithPolicy(c.Policy),
		carousel.WithClock(a.clock),
		carousel.WithLogger(a.logger),
		carousel.WithHooks(domain.MergeCarouselHooks(all...)),
	)
	if err != nil {
		return nil, err
	}
	eng.Start()
	return eng, nil
}

// NewChat creates a conversation over the site's chatbot script. Call Start to greet.
// A nil handler ignores effects.
func (a *App) NewChat(handler ports.EffectHandler, hooks ...domain.DialogueHooks) *dialogue.Engine {
	all := append([]domain.DialogueHooks{observability.LogDialogueHooks(a.logger)}, hooks...)
	if a.metrics != nil {
		all = append(all, a.metrics.DialogueHooks())
	}
	opts := []dialogue.Option{
		dialogue.WithClock(a.clock),
		dialogue.WithDelays(a.site.Delays()),
		dialogue.WithLogger(a.logger),
		dialogue.WithHooks(domain.MergeDialogueHooks(all...)),
	}
	if handler != nil {
		opts = append(opts, dialogue.WithEffectHandler(handler))
	}
	return dialogue.New(a.site.Graph(), opts...)
}

// HTTPServer builds the site server sharing this App's clock, logger and metrics.
func (a *App) HTTPServer(opts ...apihttp.Option) (*apihttp.Server, error) {
	base := []apihttp.Option{
		apihttp.WithClock(a.clock),
		apihttp.WithLogger(a.logger),
		apihttp.WithVersion(Version),
	}
	if a.metrics != nil {
		base = append(base, apihttp.WithMetrics(a.metrics))
	}
	return apihttp.NewServer(a.site, a.catalog, append(base, opts...)...)
}

// MCPServer exposes the catalog, chatbot script and locator as MCP tools.
func (a *App) MCPServer() *mcp.Server {
	return mcp.NewServer(a.site, a.catalog, Version)
}
