package vitrine_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/vitrine"
	"github.com/aretw0/vitrine/pkg/catalog"
	"github.com/aretw0/vitrine/pkg/clock"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/observability"
	"github.com/aretw0/vitrine/pkg/ports"
)

func TestNew_Defaults(t *testing.T) {
	app, err := vitrine.New()
	require.NoError(t, err)

	assert.Equal(t, "Ali Enterprises", app.Site().Company().Name)
	products, err := app.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 3)
	assert.Empty(t, app.Lint())
	assert.NotEmpty(t, vitrine.Version)
}

func TestNew_Files(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(catalogPath, []byte(`[{"name":"Mixer","price":"n/a"}]`), 0o644))

	app, err := vitrine.New(vitrine.WithCatalogFile(catalogPath))
	require.NoError(t, err)
	products, err := app.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "mixer", products[0].ID)
	assert.True(t, products[0].Price.IsZero())

	_, err = vitrine.New(vitrine.WithSiteFile(filepath.Join(dir, "missing.yaml")))
	assert.Error(t, err)

	missing, err := vitrine.New(vitrine.WithCatalogFile(filepath.Join(dir, "missing.json")))
	require.NoError(t, err, "catalog is read lazily")
	_, err = missing.Products(context.Background())
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestNew_CatalogMiddleware(t *testing.T) {
	var order []string
	tag := func(name string) ports.CatalogMiddleware {
		return func(next ports.CatalogSource) ports.CatalogSource {
			order = append(order, name)
			return next
		}
	}

	app, err := vitrine.New(
		vitrine.WithCatalog(catalog.Static{{ID: "bare"}}),
		vitrine.WithCatalogMiddleware(tag("inner"), tag("outer")),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"inner", "outer"}, order)

	products, err := app.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestApp_NewCarousel(t *testing.T) {
	clk := clock.NewManual(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	app, err := vitrine.New(vitrine.WithClock(clk))
	require.NoError(t, err)

	_, err = app.NewCarousel("banner")
	assert.ErrorIs(t, err, domain.ErrUnknownCarousel)

	var changes int
	eng, err := app.NewCarousel("testimonials", domain.CarouselHooks{
		OnChange: func(context.Context, *domain.SlideEvent) { changes++ },
	})
	require.NoError(t, err)
	defer eng.Close()
	assert.Equal(t, 5, eng.Len())

	clk.Advance(5 * time.Second)
	assert.Equal(t, 1, eng.Snapshot().State.ActiveIndex)
	assert.Equal(t, 1, changes)
}

func TestApp_NewGallery(t *testing.T) {
	app, err := vitrine.New(vitrine.WithCatalog(catalog.Static{{ID: "bare", Name: "Bare"}}))
	require.NoError(t, err)

	eng, err := app.NewGallery(domain.Product{ID: "bare", Name: "Bare"})
	require.NoError(t, err)
	defer eng.Close()
	assert.False(t, eng.Snapshot().AutoAdvance)
	require.Len(t, eng.Slides(), 1)
	assert.Equal(t, domain.PlaceholderImage, eng.Slides()[0].Src)
}

func TestApp_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	clk := clock.NewManual(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	app, err := vitrine.New(vitrine.WithClock(clk), vitrine.WithMetrics(metrics))
	require.NoError(t, err)

	chat := app.NewChat(nil)
	require.NoError(t, chat.Start())
	clk.Advance(800 * time.Millisecond)
	require.NoError(t, chat.Select(context.Background(), 0))
	clk.Advance(time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.NodeVisits.WithLabelValues("root")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.NodeVisits.WithLabelValues("general-questions")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Selections.WithLabelValues("root")))
}

func TestApp_HTTPServer(t *testing.T) {
	app, err := vitrine.New()
	require.NoError(t, err)
	srv, err := app.HTTPServer()
	require.NoError(t, err)
	defer srv.Close()
	assert.NotNil(t, srv.Handler())
	assert.NotNil(t, app.MCPServer())
}
