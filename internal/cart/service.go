package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mahedy25/storefront-api/internal/apperr"
	"github.com/mahedy25/storefront-api/internal/domain"
	"github.com/mahedy25/storefront-api/internal/pricing"
)

// ErrInsufficientStock rejects a merge that would push a line's quantity
// over the product's stock count.
var ErrInsufficientStock = apperr.New(apperr.KindValidation, "not enough items in stock")

// ErrInvalidQuantity rejects non-positive quantities; dropping a line goes
// through RemoveItem, not a zero update.
var ErrInvalidQuantity = apperr.New(apperr.KindValidation, "quantity must be at least 1")

// SettingsSource supplies the current store settings (delivery options, tax
// rate) without binding the cart to the settings package.
type SettingsSource interface {
	Get(ctx context.Context) (domain.Setting, error)
}

// Service owns the cart aggregates. Every operation loads the aggregate,
// replaces its item list, recomputes the derived pricing fields and writes
// the whole aggregate back. A cart is owned by exactly one session; there is
// no cross-session sharing, so last writer wins.
type Service struct {
	store    Store
	settings SettingsSource
	now      func() time.Time
}

func NewService(store Store, settings SettingsSource) *Service {
	return &Service{
		store:    store,
		settings: settings,
		now:      time.Now,
	}
}

// Get returns the session's cart, or a fresh empty aggregate when none has
// been stored yet.
func (s *Service) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	return s.load(ctx, cartID)
}

// AddItem merges the item into an existing line with the same
// product+size+color or appends a new line. It returns the ClientID of the
// affected line so the caller can route to its detail view.
func (s *Service) AddItem(ctx context.Context, cartID string, item domain.OrderItem, quantity int) (string, error) {
	if quantity < 1 {
		return "", ErrInvalidQuantity
	}

	c, err := s.load(ctx, cartID)
	if err != nil {
		return "", err
	}

	var clientID string
	merged := false
	for i, line := range c.Items {
		if !line.SameVariant(item) {
			continue
		}
		if line.CountInStock < quantity+line.Quantity {
			return "", ErrInsufficientStock
		}
		c.Items[i].Quantity += quantity
		clientID = c.Items[i].ClientID
		merged = true
		break
	}
	if !merged {
		if item.CountInStock < quantity {
			return "", ErrInsufficientStock
		}
		item.Quantity = quantity
		if item.ClientID == "" {
			item.ClientID = uuid.NewString()
		}
		clientID = item.ClientID
		c.Items = append(c.Items, item)
	}

	if err := s.recomputeAndSave(ctx, c); err != nil {
		return "", err
	}
	return clientID, nil
}

// UpdateItem replaces the quantity of the matching line. A missing line is a
// no-op. The quantity must be positive but is otherwise taken as-is, without
// a stock re-check.
func (s *Service) UpdateItem(ctx context.Context, cartID string, item domain.OrderItem, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	c, err := s.load(ctx, cartID)
	if err != nil {
		return err
	}

	found := false
	for i, line := range c.Items {
		if line.SameVariant(item) {
			c.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	return s.recomputeAndSave(ctx, c)
}

// RemoveItem drops the line matching the item's product+size+color.
func (s *Service) RemoveItem(ctx context.Context, cartID string, item domain.OrderItem) error {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return err
	}

	kept := c.Items[:0]
	for _, line := range c.Items {
		if !line.SameVariant(item) {
			kept = append(kept, line)
		}
	}
	c.Items = kept
	return s.recomputeAndSave(ctx, c)
}

func (s *Service) SetShippingAddress(ctx context.Context, cartID string, addr domain.ShippingAddress) error {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return err
	}
	c.ShippingAddress = &addr
	return s.recomputeAndSave(ctx, c)
}

// SetPaymentMethod updates the selected method. Payment choice does not
// affect pricing, so no recompute happens.
func (s *Service) SetPaymentMethod(ctx context.Context, cartID, method string) error {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return err
	}
	c.PaymentMethod = method
	return s.save(ctx, c)
}

func (s *Service) SetDeliveryDateIndex(ctx context.Context, cartID string, index int) error {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return err
	}
	c.DeliveryDateIndex = &index
	return s.recomputeAndSave(ctx, c)
}

// ClearCart empties the item list but keeps address, payment method and
// delivery choice.
func (s *Service) ClearCart(ctx context.Context, cartID string) error {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return err
	}
	c.Items = nil
	return s.recomputeAndSave(ctx, c)
}

// Reset drops the stored aggregate entirely, used after order submission.
func (s *Service) Reset(ctx context.Context, cartID string) error {
	err := s.store.Delete(ctx, cartID)
	if err != nil {
		return apperr.Wrap(apperr.KindDownstream, "failed to reset cart", err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, cartID string) (*domain.Cart, error) {
	c, err := s.store.Get(ctx, cartID)
	if err == nil {
		return c, nil
	}
	if errors.Is(err, ErrCartNotFound) {
		return &domain.Cart{ID: cartID, CreatedAt: s.now()}, nil
	}
	return nil, apperr.Wrap(apperr.KindDownstream, "failed to load cart", err)
}

func (s *Service) recomputeAndSave(ctx context.Context, c *domain.Cart) error {
	setting, err := s.settings.Get(ctx)
	if err != nil {
		return apperr.Wrap(apperr.KindDownstream, "failed to load settings", err)
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
		return err
	}

	c.ItemsPrice = res.ItemsPrice
	c.ShippingPrice = res.ShippingPrice
	c.TaxPrice = res.TaxPrice
	c.TotalPrice = res.TotalPrice
	idx := res.DeliveryDateIndex
	c.DeliveryDateIndex = &idx
	c.ExpectedDeliveryDate = res.ExpectedDeliveryDate

	return s.save(ctx, c)
}

func (s *Service) save(ctx context.Context, c *domain.Cart) error {
	c.UpdatedAt = s.now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = c.UpdatedAt
	}
	if err := s.store.Save(ctx, c); err != nil {
		return apperr.Wrap(apperr.KindDownstream, "failed to save cart", err)
	}
	return nil
}
