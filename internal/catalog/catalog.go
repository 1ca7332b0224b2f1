package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"cart-service/internal/models"
	"cart-service/internal/util"

	"go.uber.org/zap"
)

// Catalog is the immutable product set loaded once at startup.
type Catalog struct {
	products []models.Product
	byID     map[int64]*models.Product
}

// NewCatalog builds a catalog from a product list. Records that fail the
// shape check (zero or duplicate id, negative price or stock) invalidate the
// whole payload and yield an empty catalog, recoverable rather than fatal.
func NewCatalog(products []models.Product) (*Catalog, error) {
	byID := make(map[int64]*models.Product, len(products))
	for i := range products {
		p := &products[i]
		if p.ID == 0 {
			return empty(), fmt.Errorf("product at index %d has no id", i)
		}
		if p.Price < 0 || p.Stock < 0 {
			return empty(), fmt.Errorf("product %d has negative price or stock", p.ID)
		}
		if _, dup := byID[p.ID]; dup {
			return empty(), fmt.Errorf("duplicate product id %d", p.ID)
		}
		byID[p.ID] = p
	}
	return &Catalog{products: products, byID: byID}, nil
}

func empty() *Catalog {
	return &Catalog{byID: map[int64]*models.Product{}}
}

// Products returns all products in catalog order.
func (c *Catalog) Products() []models.Product {
	return c.products
}

// FindByID returns the product with the given id, or nil.
func (c *Catalog) FindByID(id int64) *models.Product {
	return c.byID[id]
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Loader fetches the product list from the configured JSON resource.
type Loader struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewLoader creates a catalog loader for the given URL.
func NewLoader(url string) *Loader {
	return &Loader{
		url:    url,
		client: http.DefaultClient,
		logger: util.GetLogger(),
	}
}

// Load performs the one-time catalog fetch. On any failure (network error,
// non-2xx status, malformed or invalid JSON) it logs, bumps the failure
// counter and returns an empty catalog: the service degrades to "no products
// available" instead of failing startup.
func (l *Loader) Load(ctx context.Context) *Catalog {
	products, err := l.fetch(ctx)
	if err != nil {
		util.CatalogLoadFailuresTotal.Inc()
		l.logger.Error("Failed to load catalog, continuing with empty catalog",
			zap.String("url", l.url),
			zap.Error(err))
		return empty()
	}

	cat, err := NewCatalog(products)
	if err != nil {
		util.CatalogLoadFailuresTotal.Inc()
		l.logger.Error("Catalog payload failed validation, continuing with empty catalog",
			zap.String("url", l.url),
			zap.Error(err))
		return empty()
	}

	l.logger.Info("Catalog loaded", zap.Int("products", cat.Len()))
	return cat
}

func (l *Loader) fetch(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog fetch returned status %d", resp.StatusCode)
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode catalog payload: %w", err)
	}

	return products, nil
}
