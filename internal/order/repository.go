package order

import (
	"context"
	"errors"
	"time"

	"github.com/mahedy25/storefront-api/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

// Repository persists order documents. Orders are written once at creation;
// afterwards only the paid/delivered transitions touch them.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	SetPaid(ctx context.Context, id string, paidAt time.Time, result domain.PaymentResult) error
	SetDelivered(ctx context.Context, id string, deliveredAt time.Time) error
	ListByUser(ctx context.Context, userID string, skip, limit int64) ([]domain.Order, int64, error)
}
