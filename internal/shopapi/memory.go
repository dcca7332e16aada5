package shopapi

import (
	"context"
	"sync"

	"github.com/oqdoku94/web-larek-frontend/internal/domain"
)

// MemoryCache is the fallback ProductCache when no redis address is
// configured. Entries live for the process lifetime, which matches the
// single-session scope of the storefront.
type MemoryCache struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{products: make(map[string]domain.Product)}
}

func (m *MemoryCache) Get(_ context.Context, id string) (domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	product, ok := m.products[id]
	if !ok {
		return domain.Product{}, ErrCacheMiss
	}
	return product, nil
}

func (m *MemoryCache) Set(_ context.Context, product domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	return nil
}
