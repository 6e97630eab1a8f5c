package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahedy25/storefront-api/internal/apperr"
	"github.com/mahedy25/storefront-api/internal/domain"
)

type mockRepository struct {
	orders  map[string]*domain.Order
	nextID  int
	err     error
	created []*domain.Order
}

func newMockRepository() *mockRepository {
	return &mockRepository{orders: map[string]*domain.Order{}}
}

func (m *mockRepository) Create(_ context.Context, order *domain.Order) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.nextID++
	order.ID = fmt.Sprintf("order-%d", m.nextID)
	cp := *order
	m.orders[order.ID] = &cp
	m.created = append(m.created, &cp)
	return order.ID, nil
}

func (m *mockRepository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockRepository) SetPaid(_ context.Context, id string, paidAt time.Time, result domain.PaymentResult) error {
	o, ok := m.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	o.IsPaid = true
	o.PaidAt = &paidAt
	o.PaymentResult = &result
	return nil
}

func (m *mockRepository) SetDelivered(_ context.Context, id string, deliveredAt time.Time) error {
	o, ok := m.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	o.IsDelivered = true
	o.DeliveredAt = &deliveredAt
	return nil
}

func (m *mockRepository) ListByUser(_ context.Context, userID string, skip, limit int64) ([]domain.Order, int64, error) {
	var all []domain.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			all = append(all, *o)
		}
	}
	total := int64(len(all))
	if skip >= total {
		return nil, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return all[skip:end], total, nil
}

type mockPublisher struct {
	published []*domain.Order
	err       error
}

func (m *mockPublisher) PublishReceipt(_ context.Context, o *domain.Order) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, o)
	return nil
}

type staticSettings struct{ s domain.Setting }

func (f staticSettings) Get(context.Context) (domain.Setting, error) { return f.s, nil }

func newTestService() (*Service, *mockRepository, *mockPublisher) {
	repo := newMockRepository()
	pub := &mockPublisher{}
	svc := NewService(repo, staticSettings{domain.DefaultSetting()}, pub, slog.Default())
	return svc, repo, pub
}

func checkoutCart() domain.Cart {
	return domain.Cart{
		ID: "sess1",
		Items: []domain.OrderItem{{
			Product: "p1", ClientID: "c1", Name: "Shirt", Slug: "shirt",
			Image: "/images/shirt.jpg", Category: "Shirts",
			Price: 25, CountInStock: 10, Quantity: 2,
		}},
		ShippingAddress: &domain.ShippingAddress{
			FullName: "A B", Street: "1 Main St", City: "Dhaka",
			PostalCode: "1000", Country: "BD", Province: "Dhaka", Phone: "555",
		},
		PaymentMethod: "PayPal",
	}
}

func TestCreate_RequiresAuthenticatedUser(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), checkoutCart(), "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
}

func TestCreate_RecomputesAndPersists(t *testing.T) {
	svc, repo, _ := newTestService()

	o, err := svc.Create(context.Background(), checkoutCart(), "user1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", o.ID)
	assert.Equal(t, "user1", o.UserID)
	assert.Equal(t, 50.0, o.ItemsPrice)
	assert.Equal(t, 0.0, o.ShippingPrice) // free over 35 on the default option
	assert.Equal(t, 7.5, o.TaxPrice)
	assert.Equal(t, 57.5, o.TotalPrice)
	assert.False(t, o.IsPaid)
	assert.False(t, o.ExpectedDeliveryDate.IsZero())
	require.Len(t, repo.created, 1)
}

func TestCreate_DiscardsClientTotals(t *testing.T) {
	svc, _, _ := newTestService()

	c := checkoutCart()
	// Tampered client-side totals must never reach the persisted order.
	c.ItemsPrice = 0.01
	c.TotalPrice = 0.01
	zero := 0.0
	c.TaxPrice = &zero
	c.ShippingPrice = &zero

	o, err := svc.Create(context.Background(), c, "user1")
	require.NoError(t, err)
	assert.Equal(t, 50.0, o.ItemsPrice)
	assert.Equal(t, 57.5, o.TotalPrice)
}

func TestCreate_RejectsEmptyCart(t *testing.T) {
	svc, _, _ := newTestService()

	c := checkoutCart()
	c.Items = nil
	_, err := svc.Create(context.Background(), c, "user1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreate_RejectsMissingAddress(t *testing.T) {
	svc, _, _ := newTestService()

	c := checkoutCart()
	c.ShippingAddress = nil
	_, err := svc.Create(context.Background(), c, "user1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreate_RejectsMissingPaymentMethod(t *testing.T) {
	svc, _, _ := newTestService()

	c := checkoutCart()
	c.PaymentMethod = ""
	_, err := svc.Create(context.Background(), c, "user1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestMarkPaid_TransitionsAndNotifies(t *testing.T) {
	svc, repo, pub := newTestService()

	o, err := svc.Create(context.Background(), checkoutCart(), "user1")
	require.NoError(t, err)

	paid, err := svc.MarkPaid(context.Background(), o.ID, PaymentCapture{
		EventID:     "evt_123",
		Email:       "buyer@example.com",
		AmountMinor: 5750,
	})
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	require.NotNil(t, paid.PaidAt)
	require.NotNil(t, paid.PaymentResult)
	assert.Equal(t, "evt_123", paid.PaymentResult.ID)
	assert.Equal(t, "COMPLETED", paid.PaymentResult.Status)
	assert.Equal(t, "buyer@example.com", paid.PaymentResult.EmailAddress)
	assert.Equal(t, "57.50", paid.PaymentResult.PricePaid)

	assert.True(t, repo.orders[o.ID].IsPaid)
	require.Len(t, pub.published, 1)
}

func TestMarkPaid_RedeliveryIsNoop(t *testing.T) {
	svc, repo, pub := newTestService()

	o, err := svc.Create(context.Background(), checkoutCart(), "user1")
	require.NoError(t, err)

	capture := PaymentCapture{EventID: "evt_123", Email: "buyer@example.com", AmountMinor: 5750}
	_, err = svc.MarkPaid(context.Background(), o.ID, capture)
	require.NoError(t, err)
	firstPaidAt := *repo.orders[o.ID].PaidAt

	// Duplicate webhook delivery: no mutation, no second receipt.
	_, err = svc.MarkPaid(context.Background(), o.ID, PaymentCapture{EventID: "evt_456", AmountMinor: 5750})
	require.NoError(t, err)
	assert.Equal(t, firstPaidAt, *repo.orders[o.ID].PaidAt)
	assert.Equal(t, "evt_123", repo.orders[o.ID].PaymentResult.ID)
	assert.Len(t, pub.published, 1)
}

func TestMarkPaid_UnknownOrder(t *testing.T) {
	svc, _, pub := newTestService()

	_, err := svc.MarkPaid(context.Background(), "missing", PaymentCapture{EventID: "evt_1"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Empty(t, pub.published)
}

func TestMarkPaid_ReceiptFailureIsNonFatal(t *testing.T) {
	svc, repo, pub := newTestService()
	pub.err = errors.New("broker down")

	o, err := svc.Create(context.Background(), checkoutCart(), "user1")
	require.NoError(t, err)

	paid, err := svc.MarkPaid(context.Background(), o.ID, PaymentCapture{EventID: "evt_123", AmountMinor: 5750})
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	assert.True(t, repo.orders[o.ID].IsPaid)
}

func TestMarkDelivered(t *testing.T) {
	svc, repo, _ := newTestService()

	o, err := svc.Create(context.Background(), checkoutCart(), "user1")
	require.NoError(t, err)

	delivered, err := svc.MarkDelivered(context.Background(), o.ID)
	require.NoError(t, err)
	assert.True(t, delivered.IsDelivered)
	require.NotNil(t, delivered.DeliveredAt)
	assert.True(t, repo.orders[o.ID].IsDelivered)
}

func TestListByUser_Pages(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, checkoutCart(), "user1")
		require.NoError(t, err)
	}

	orders, totalPages, err := svc.ListByUser(ctx, "user1", 1)
	require.NoError(t, err)
	assert.Len(t, orders, 3)
	assert.Equal(t, int64(1), totalPages)

	orders, totalPages, err = svc.ListByUser(ctx, "nobody", 1)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, int64(1), totalPages)
}
