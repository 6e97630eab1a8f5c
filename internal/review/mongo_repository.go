package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mahedy25/storefront-api/internal/domain"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection("reviews")}
}

func (m *mongoRepository) GetByProductAndUser(ctx context.Context, productID, userID string) (*domain.Review, error) {
	var r domain.Review
	filter := bson.M{"product": productID, "user": userID}
	err := m.collection.FindOne(ctx, filter).Decode(&r)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &r, nil
}

// Upsert writes the buyer's single review for the product, replacing
// title/comment/rating on resubmission.
func (m *mongoRepository) Upsert(ctx context.Context, review *domain.Review) error {
	now := time.Now()
	if review.ID == "" {
		review.ID = primitive.NewObjectID().Hex()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	review.UpdatedAt = now

	filter := bson.M{"product": review.Product, "user": review.UserID}
	update := bson.M{
		"$set": bson.M{
			"title":                review.Title,
			"comment":              review.Comment,
			"rating":               review.Rating,
			"is_verified_purchase": review.IsVerifiedPurchase,
			"updated_at":           review.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":        review.ID,
			"product":    review.Product,
			"user":       review.UserID,
			"created_at": review.CreatedAt,
		},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert review: %w", err)
	}
	return nil
}

func (m *mongoRepository) ListByProduct(ctx context.Context, productID string, skip, limit int64) ([]domain.Review, int64, error) {
	filter := bson.M{"product": productID}

	total, err := m.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []domain.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, total, nil
}

// CountRatings groups the product's reviews by rating value.
func (m *mongoRepository) CountRatings(ctx context.Context, productID string) (RatingCounts, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"product": productID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$rating",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := m.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Rating int   `bson:"_id"`
		Count  int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode rating counts: %w", err)
	}

	counts := RatingCounts{}
	for _, row := range rows {
		counts[row.Rating] = row.Count
	}
	return counts, nil
}
