package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/ports"
)

//go:embed data/products.json
var defaultCatalog []byte

// Parse decodes and normalizes a catalog document.
func Parse(r io.Reader) ([]domain.Product, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	out := make([]domain.Product, 0, len(records))
	for _, rec := range records {
		out = append(out, normalize(rec))
	}
	return out, nil
}

// FileSource reads the catalog from a file on every call, so edits and
// transient failures are picked up by the next request.
type FileSource struct {
	fsys fs.FS
	name string
}

// NewFileSource reads path from the OS filesystem.
func NewFileSource(path string) *FileSource {
	return &FileSource{name: path}
}

// NewFSSource reads name from fsys.
func NewFSSource(fsys fs.FS, name string) *FileSource {
	return &FileSource{fsys: fsys, name: name}
}

// Products implements ports.CatalogSource.
func (s *FileSource) Products(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		f   io.ReadCloser
		err error
	)
	if s.fsys != nil {
		f, err = s.fsys.Open(s.name)
	} else {
		f, err = os.Open(s.name)
	}
	if err != nil {
		return nil, errors.Join(domain.ErrCatalogUnavailable, err)
	}
	defer f.Close()

	products, err := Parse(f)
	if err != nil {
		return nil, errors.Join(domain.ErrCatalogUnavailable, fmt.Errorf("%s: %w", s.name, err))
	}
	return products, nil
}

// Static serves a fixed product list.
type Static []domain.Product

// Products implements ports.CatalogSource.
func (s Static) Products(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(s))
	copy(out, s)
	return out, nil
}

// Default returns the catalog bundled with the binary.
func Default() (Static, error) {
	products, err := Parse(bytes.NewReader(defaultCatalog))
	if err != nil {
		return nil, err
	}
	return Static(products), nil
}

// DefaultJSON returns a copy of the bundled catalog file.
func DefaultJSON() []byte {
	return bytes.Clone(defaultCatalog)
}

// Find returns the product at the 1-based model position used by deep links.
func Find(products []domain.Product, model int) (domain.Product, bool) {
	if model < 1 || model > len(products) {
		return domain.Product{}, false
	}
	return products[model-1], true
}

var (
	_ ports.CatalogSource = (*FileSource)(nil)
	_ ports.CatalogSource = Static(nil)
)
