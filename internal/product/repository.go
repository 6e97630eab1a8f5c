package product

import (
	"context"
	"errors"

	"github.com/mahedy25/storefront-api/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Repository reads the catalog and accepts rating-aggregate writes from the
// review module. Stock itself is denormalized onto cart lines, so nothing
// here mutates inventory.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	ListPublished(ctx context.Context, skip, limit int64) ([]domain.Product, int64, error)
	UpdateRating(ctx context.Context, id string, avgRating float64, numReviews int64, distribution []domain.RatingCount) error
}
