package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/mahedy25/storefront-api/internal/apperr"
	"github.com/mahedy25/storefront-api/internal/domain"
	"github.com/mahedy25/storefront-api/internal/pricing"
	"github.com/mahedy25/storefront-api/internal/validation"
)

// SettingsSource supplies current delivery options and tax rate.
type SettingsSource interface {
	Get(ctx context.Context) (domain.Setting, error)
}

// ReceiptPublisher delivers the purchase-receipt notification after a paid
// transition. Delivery is best effort; the paid state is authoritative
// whether or not the receipt goes out.
type ReceiptPublisher interface {
	PublishReceipt(ctx context.Context, order *domain.Order) error
}

// PaymentCapture carries the fields read from a provider's charge-succeeded
// event. AmountMinor is in the provider's minor units (cents).
type PaymentCapture struct {
	EventID     string
	Email       string
	AmountMinor int64
}

type Service struct {
	repo     Repository
	settings SettingsSource
	receipts ReceiptPublisher
	validate *validatorv10.Validate
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(repo Repository, settings SettingsSource, receipts ReceiptPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		settings: settings,
		receipts: receipts,
		validate: validation.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// Create recomputes all pricing from the submitted line items and shipping
// choice, validates the assembled order and persists it. Client-submitted
// totals are discarded: the recompute is the integrity control against price
// tampering.
func (s *Service) Create(ctx context.Context, c domain.Cart, userID string) (*domain.Order, error) {
	if userID == "" {
		return nil, apperr.New(apperr.KindAuthentication, "user not authenticated")
	}

	setting, err := s.settings.Get(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindDownstream, "failed to load settings", err)
	}

	res, err := pricing.CalcDeliveryDateAndPrice(pricing.Input{
		Items:             c.Items,
		ShippingAddress:   c.ShippingAddress,
		DeliveryDateIndex: c.DeliveryDateIndex,
		DeliveryOptions:   setting.DeliveryOptions,
		TaxRate:           setting.TaxRate,
		Now:               s.now(),
	})
	if err != nil {
		return nil, err
	}

	in := validation.OrderInput{
		User:                 userID,
		Items:                c.Items,
		PaymentMethod:        c.PaymentMethod,
		ItemsPrice:           res.ItemsPrice,
		TotalPrice:           res.TotalPrice,
		ExpectedDeliveryDate: res.ExpectedDeliveryDate,
	}
	if c.ShippingAddress != nil {
		in.ShippingAddress = *c.ShippingAddress
	}
	if res.ShippingPrice != nil {
		in.ShippingPrice = *res.ShippingPrice
	}
	if res.TaxPrice != nil {
		in.TaxPrice = *res.TaxPrice
	}

	if err := s.validate.Struct(in); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, validation.FormatErrors(err), err)
	}

	order := &domain.Order{
		UserID:               in.User,
		Items:                in.Items,
		ShippingAddress:      in.ShippingAddress,
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
		PaymentMethod:        in.PaymentMethod,
		ItemsPrice:           in.ItemsPrice,
		ShippingPrice:        in.ShippingPrice,
		TaxPrice:             in.TaxPrice,
		TotalPrice:           in.TotalPrice,
		CreatedAt:            s.now(),
	}

	id, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindDownstream, "failed to save order", err)
	}
	order.ID = id
	return order, nil
}

// MarkPaid applies the payment confirmation to the order. A redelivered
// event hits the paid guard and returns the order untouched, without a
// second receipt. Receipt publishing failures are logged and swallowed.
func (s *Service) MarkPaid(ctx context.Context, orderID string, capture PaymentCapture) (*domain.Order, error) {
	o, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.IsPaid {
		s.logger.Info("order already paid, skipping transition",
			"order_id", orderID, "event_id", capture.EventID)
		return o, nil
	}

	paidAt := s.now()
	result := domain.PaymentResult{
		ID:           capture.EventID,
		Status:       "COMPLETED",
		EmailAddress: capture.Email,
		PricePaid:    fmt.Sprintf("%.2f", float64(capture.AmountMinor)/100),
	}

	if err := s.repo.SetPaid(ctx, orderID, paidAt, result); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, apperr.Wrap(apperr.KindNotFound, "order not found", err)
		}
		return nil, apperr.Wrap(apperr.KindDownstream, "failed to mark order paid", err)
	}

	o.IsPaid = true
	o.PaidAt = &paidAt
	o.PaymentResult = &result

	if s.receipts != nil {
		if err := s.receipts.PublishReceipt(ctx, o); err != nil {
			s.logger.Warn("failed to publish purchase receipt",
				"order_id", orderID, "error", err)
		}
	}
	return o, nil
}

// MarkDelivered is the admin-side transition for fulfilled orders.
func (s *Service) MarkDelivered(ctx context.Context, orderID string) (*domain.Order, error) {
	o, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.IsDelivered {
		return o, nil
	}

	deliveredAt := s.now()
	if err := s.repo.SetDelivered(ctx, orderID, deliveredAt); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, apperr.Wrap(apperr.KindNotFound, "order not found", err)
		}
		return nil, apperr.Wrap(apperr.KindDownstream, "failed to mark order delivered", err)
	}

	o.IsDelivered = true
	o.DeliveredAt = &deliveredAt
	return o, nil
}

func (s *Service) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.findOrder(ctx, orderID)
}

// ListByUser pages through the buyer's order history, newest first. The page
// size comes from the store settings.
func (s *Service) ListByUser(ctx context.Context, userID string, page int64) ([]domain.Order, int64, error) {
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

	orders, total, err := s.repo.ListByUser(ctx, userID, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.KindDownstream, "failed to list orders", err)
	}

	totalPages := total / limit
	if total%limit != 0 || total == 0 {
		totalPages++
	}
	return orders, totalPages, nil
}

func (s *Service) findOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, apperr.Wrap(apperr.KindNotFound, "order not found", err)
		}
		return nil, apperr.Wrap(apperr.KindDownstream, "failed to load order", err)
	}
	return o, nil
}
