package setting

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mahedy25/storefront-api/internal/domain"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection("settings")}
}

func (m *mongoRepository) Get(ctx context.Context) (*domain.Setting, error) {
	var s domain.Setting
	err := m.collection.FindOne(ctx, bson.M{}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return &s, nil
}

func (m *mongoRepository) Upsert(ctx context.Context, s *domain.Setting) (*domain.Setting, error) {
	update := bson.M{"$set": bson.M{
		"delivery_options":        s.DeliveryOptions,
		"payment_methods":         s.PaymentMethods,
		"default_payment_method":  s.DefaultPaymentMethod,
		"tax_rate":                s.TaxRate,
		"free_shipping_min_price": s.FreeShippingMinPrice,
		"page_size":               s.PageSize,
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var updated domain.Setting
	if err := m.collection.FindOneAndUpdate(ctx, bson.M{}, update, opts).Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to upsert setting: %w", err)
	}
	return &updated, nil
}
