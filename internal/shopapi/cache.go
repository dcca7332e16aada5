package shopapi

import (
	"context"
	"errors"

	"github.com/oqdoku94/web-larek-frontend/internal/domain"
)

// ProductCache keeps recently fetched product details so reopening a
// preview does not hit the backend again.
type ProductCache interface {
	Get(ctx context.Context, id string) (domain.Product, error)
	Set(ctx context.Context, product domain.Product) error
	Delete(ctx context.Context, id string) error
}

var ErrCacheMiss = errors.New("cache miss")
