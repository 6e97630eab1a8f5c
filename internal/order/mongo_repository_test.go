package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/mahedy25/storefront-api/internal/db"
	"github.com/mahedy25/storefront-api/internal/domain"
)

func setupTestDB(t *testing.T) Repository {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	database, err := db.ConnectMongo(ctx, uri, "testdb")
	require.NoError(t, err)

	repo := NewMongoRepository(database)
	require.NoError(t, repo.(*mongoRepository).CreateIndexes(ctx))
	return repo
}

func sampleOrder(userID string) *domain.Order {
	return &domain.Order{
		UserID: userID,
		Items: []domain.OrderItem{{
			Product: "p1", ClientID: "c1", Name: "Shirt", Slug: "shirt",
			Image: "/images/shirt.jpg", Category: "Shirts",
			Price: 25, CountInStock: 10, Quantity: 2,
		}},
		ShippingAddress: domain.ShippingAddress{
			FullName: "A B", Street: "1 Main St", City: "Dhaka",
			PostalCode: "1000", Country: "BD", Province: "Dhaka", Phone: "555",
		},
		ExpectedDeliveryDate: time.Now().AddDate(0, 0, 7),
		PaymentMethod:        "PayPal",
		ItemsPrice:           50,
		TaxPrice:             7.5,
		TotalPrice:           57.5,
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleOrder("user1"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "user1", got.UserID)
	assert.Equal(t, 57.5, got.TotalPrice)
	assert.False(t, got.IsPaid)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Shirt", got.Items[0].Name)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetByID(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestSetPaid_PersistsPaymentResult(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleOrder("user1"))
	require.NoError(t, err)

	paidAt := time.Now().UTC().Truncate(time.Millisecond)
	result := domain.PaymentResult{
		ID: "evt_1", Status: "COMPLETED",
		EmailAddress: "buyer@example.com", PricePaid: "57.50",
	}
	require.NoError(t, repo.SetPaid(ctx, id, paidAt, result))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.IsPaid)
	require.NotNil(t, got.PaidAt)
	assert.WithinDuration(t, paidAt, *got.PaidAt, time.Second)
	require.NotNil(t, got.PaymentResult)
	assert.Equal(t, "57.50", got.PaymentResult.PricePaid)
}

func TestSetPaid_UnknownOrder(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.SetPaid(context.Background(), "missing", time.Now(), domain.PaymentResult{})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListByUser_SortsNewestFirst(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	first := sampleOrder("user1")
	first.CreatedAt = time.Now().Add(-time.Hour)
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)

	second := sampleOrder("user1")
	_, err = repo.Create(ctx, second)
	require.NoError(t, err)

	_, err = repo.Create(ctx, sampleOrder("someone-else"))
	require.NoError(t, err)

	orders, total, err := repo.ListByUser(ctx, "user1", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, orders, 2)
	assert.True(t, orders[0].CreatedAt.After(orders[1].CreatedAt))
}
