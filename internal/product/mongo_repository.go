package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mahedy25/storefront-api/internal/domain"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection("products")}
}

func (m *mongoRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

func (m *mongoRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return m.findOne(ctx, bson.M{"slug": slug})
}

func (m *mongoRepository) findOne(ctx context.Context, filter bson.M) (*domain.Product, error) {
	var p domain.Product
	err := m.collection.FindOne(ctx, filter).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

func (m *mongoRepository) ListPublished(ctx context.Context, skip, limit int64) ([]domain.Product, int64, error) {
	filter := bson.M{"is_published": true}

	total, err := m.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, total, nil
}

func (m *mongoRepository) UpdateRating(ctx context.Context, id string, avgRating float64, numReviews int64, distribution []domain.RatingCount) error {
	update := bson.M{"$set": bson.M{
		"avg_rating":          avgRating,
		"num_reviews":         numReviews,
		"rating_distribution": distribution,
		"updated_at":          time.Now(),
	}}

	res, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update product rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}
