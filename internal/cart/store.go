package cart

import (
	"context"
	"errors"

	"github.com/mahedy25/storefront-api/internal/domain"
)

var ErrCartNotFound = errors.New("cart not found")

// Store is the durable mirror of cart aggregates. The service defines the
// interface; Redis provides the implementation.
type Store interface {
	Get(ctx context.Context, cartID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, cartID string) error
}
