package review

import (
	"context"
	"errors"
	"math"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/mahedy25/storefront-api/internal/apperr"
	"github.com/mahedy25/storefront-api/internal/domain"
	"github.com/mahedy25/storefront-api/internal/product"
	"github.com/mahedy25/storefront-api/internal/validation"
)

// Service writes reviews and keeps the product rating aggregates consistent:
// after every create or update, the product's average rating, review count
// and 1..5 distribution are recomputed from the review collection.
// SettingsSource supplies the current store settings (page size).
type SettingsSource interface {
	Get(ctx context.Context) (domain.Setting, error)
}

type Service struct {
	reviews  Repository
	products product.Repository
	settings SettingsSource
	validate *validatorv10.Validate
}

func NewService(reviews Repository, products product.Repository, settings SettingsSource) *Service {
	return &Service{
		reviews:  reviews,
		products: products,
		settings: settings,
		validate: validation.New(),
	}
}

// CreateUpdate stores the buyer's review (one per product+user) and refreshes
// the product's rating aggregate. Returns true when an existing review was
// replaced.
func (s *Service) CreateUpdate(ctx context.Context, rev domain.Review, userID string) (bool, error) {
	if userID == "" {
		return false, apperr.New(apperr.KindAuthentication, "user not authenticated")
	}
	rev.UserID = userID

	in := validation.ReviewInput{
		User:    rev.UserID,
		Product: rev.Product,
		Title:   rev.Title,
		Comment: rev.Comment,
		Rating:  rev.Rating,
	}
	if err := s.validate.Struct(in); err != nil {
		return false, apperr.Wrap(apperr.KindValidation, validation.FormatErrors(err), err)
	}

	existing, err := s.reviews.GetByProductAndUser(ctx, rev.Product, rev.UserID)
	if err != nil && !errors.Is(err, ErrReviewNotFound) {
		return false, apperr.Wrap(apperr.KindDownstream, "failed to look up review", err)
	}
	updated := existing != nil
	if updated {
		rev.ID = existing.ID
		rev.CreatedAt = existing.CreatedAt
	}

	if err := s.reviews.Upsert(ctx, &rev); err != nil {
		return false, apperr.Wrap(apperr.KindDownstream, "failed to save review", err)
	}

	if err := s.refreshProductRating(ctx, rev.Product); err != nil {
		return false, err
	}
	return updated, nil
}

// List pages through a product's reviews, newest first.
func (s *Service) List(ctx context.Context, productID string, page int64) ([]domain.Review, int64, error) {
	if page < 1 {
		page = 1
	}

	setting, err := s.settings.Get(ctx)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.KindDownstream, "failed to load settings", err)
	}
	limit := setting.PageSize
	if limit <= 0 {
		limit = domain.DefaultSetting().PageSize
	}

	reviews, total, err := s.reviews.ListByProduct(ctx, productID, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.KindDownstream, "failed to list reviews", err)
	}

	totalPages := total / limit
	if total%limit != 0 || total == 0 {
		totalPages++
	}
	return reviews, totalPages, nil
}

// GetByProductAndUser returns the caller's own review, or nil without error
// when none exists.
func (s *Service) GetByProductAndUser(ctx context.Context, productID, userID string) (*domain.Review, error) {
	if userID == "" {
		return nil, apperr.New(apperr.KindAuthentication, "user not authenticated")
	}

	rev, err := s.reviews.GetByProductAndUser(ctx, productID, userID)
	if errors.Is(err, ErrReviewNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindDownstream, "failed to get review", err)
	}
	return rev, nil
}

func (s *Service) refreshProductRating(ctx context.Context, productID string) error {
	counts, err := s.reviews.CountRatings(ctx, productID)
	if err != nil {
		return apperr.Wrap(apperr.KindDownstream, "failed to aggregate ratings", err)
	}

	avg, total, distribution := Summarize(counts)
	if err := s.products.UpdateRating(ctx, productID, avg, total, distribution); err != nil {
		return apperr.Wrap(apperr.KindDownstream, "failed to update product rating", err)
	}
	return nil
}

// Summarize turns raw rating counts into the aggregate stored on the
// product: average rounded to 1 decimal, total count, and the full 1..5
// distribution with zero-filled gaps.
func Summarize(counts RatingCounts) (avgRating float64, numReviews int64, distribution []domain.RatingCount) {
	var weighted int64
	for rating, count := range counts {
		numReviews += count
		weighted += int64(rating) * count
	}

	if numReviews > 0 {
		avgRating = math.Round(float64(weighted)/float64(numReviews)*10) / 10
	}

	distribution = make([]domain.RatingCount, 0, 5)
	for rating := 1; rating <= 5; rating++ {
		distribution = append(distribution, domain.RatingCount{
			Rating: rating,
			Count:  counts[rating],
		})
	}
	return avgRating, numReviews, distribution
}
