// Package redis caches catalog reads in Redis so replicas share one copy
// of the normalized products between source reads.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/vitrine/internal/logging"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/ports"
)

// DefaultTTL bounds how stale a cached catalog can be.
const DefaultTTL = time.Minute

// CatalogCache implements ports.CatalogSource in front of another source.
// Redis failures never fail a read: the cache is skipped and the source is used.
type CatalogCache struct {
	client *backend.Client
	source ports.CatalogSource
	key    string
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*CatalogCache)

// WithTTL sets the expiration of the cached catalog.
func WithTTL(ttl time.Duration) Option {
	return func(c *CatalogCache) {
		c.ttl = ttl
	}
}

// WithKey sets the cache key.
func WithKey(key string) Option {
	return func(c *CatalogCache) {
		c.key = key
	}
}

// WithLogger reports cache failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *CatalogCache) {
		c.logger = logger
	}
}

// Connect creates a client for url (redis://[:password@]host:port/db).
// The connection is established lazily.
func Connect(url string) (*backend.Client, error) {
	redisOpts, err := backend.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return backend.NewClient(redisOpts), nil
}

// Middleware caches whichever source it wraps. The client is shared, so
// closing it is left to the caller.
func Middleware(client *backend.Client, opts ...Option) ports.CatalogMiddleware {
	return func(next ports.CatalogSource) ports.CatalogSource {
		return NewFromClient(client, next, opts...)
	}
}

// NewFromClient wraps source using an existing client.
func NewFromClient(client *backend.Client, source ports.CatalogSource, opts ...Option) *CatalogCache {
	c := &CatalogCache{
		client: client,
		source: source,
		key:    "vitrine:catalog",
		ttl:    DefaultTTL,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Products returns the cached catalog, reading through to the source on a miss.
// Source failures are not cached.
func (c *CatalogCache) Products(ctx context.Context) ([]domain.Product, error) {
	val, err := c.client.Get(ctx, c.key).Bytes()
	switch {
	case err == nil:
		var products []domain.Product
		if err := json.Unmarshal(val, &products); err == nil {
			return products, nil
		}
		c.logger.Warn("discarding corrupt cached catalog", "key", c.key)
	case !errors.Is(err, backend.Nil):
		c.logger.Warn("catalog cache unavailable", "key", c.key, "err", err)
	}

	products, err := c.source.Products(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(products)
	if err != nil {
		return products, nil
	}
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to cache catalog", "key", c.key, "err", err)
	}
	return products, nil
}

// Invalidate drops the cached catalog so the next read hits the source.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}

// Ping checks the connection.
func (c *CatalogCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the client.
func (c *CatalogCache) Close() error {
	return c.client.Close()
}
