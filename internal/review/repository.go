package review

import (
	"context"
	"errors"

	"github.com/mahedy25/storefront-api/internal/domain"
)

var ErrReviewNotFound = errors.New("review not found")

// RatingCounts maps a rating value (1..5) to the number of reviews carrying
// it, as returned by the grouping query. Missing buckets mean zero.
type RatingCounts map[int]int64

type Repository interface {
	GetByProductAndUser(ctx context.Context, productID, userID string) (*domain.Review, error)
	Upsert(ctx context.Context, review *domain.Review) error
	ListByProduct(ctx context.Context, productID string, skip, limit int64) ([]domain.Review, int64, error)
	CountRatings(ctx context.Context, productID string) (RatingCounts, error)
}
