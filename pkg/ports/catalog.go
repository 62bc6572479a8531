package ports

import (
	"context"

	"github.com/aretw0/vitrine/pkg/domain"
)

// CatalogSource supplies normalized product records.
type CatalogSource interface {
	// Products returns the catalog in document order.
	// Failures wrap domain.ErrCatalogUnavailable.
	Products(ctx context.Context) ([]domain.Product, error)
}

// CatalogMiddleware decorates a CatalogSource, e.g. with a cache.
type CatalogMiddleware func(CatalogSource) CatalogSource
