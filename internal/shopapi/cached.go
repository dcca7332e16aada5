package shopapi

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/singleflight"

	"github.com/oqdoku94/web-larek-frontend/internal/domain"
)

// CachedClient decorates a ShopAPI with a product cache. Only product
// detail fetches are cached; the catalog list is already snapshotted by
// the store and orders must always reach the backend.
type CachedClient struct {
	api   ShopAPI
	cache ProductCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewCachedClient(api ShopAPI, cache ProductCache) *CachedClient {
	return &CachedClient{
		api:   api,
		cache: cache,
	}
}

func (c *CachedClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return c.api.ListProducts(ctx)
}

func (c *CachedClient) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	v, err, _ := c.sfg.Do(id, func() (interface{}, error) {
		product, err := c.cache.Get(ctx, id)
		if err == nil {
			return product, nil
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		product, err = c.api.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}

		go func() {
			if errSet := c.cache.Set(context.Background(), product); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return product, nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	return v.(domain.Product), nil
}

func (c *CachedClient) SubmitOrder(ctx context.Context, order domain.Order) (domain.OrderConfirmation, error) {
	return c.api.SubmitOrder(ctx, order)
}
