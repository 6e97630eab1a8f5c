// Package pricing computes the derived monetary fields of a cart or order.
// It is pure: same input, same output, no I/O. Callers must re-invoke it
// after every cart mutation.
package pricing

import (
	"math"
	"time"

	"github.com/mahedy25/storefront-api/internal/apperr"
	"github.com/mahedy25/storefront-api/internal/domain"
)

// DefaultTaxRate applies when the settings document carries no rate. An
// explicit zero rate is honored as-is.
const DefaultTaxRate = 0.15

// epsilon matches IEEE-754 double machine epsilon; adding it before rounding
// keeps values like 1.005 from rounding down due to binary representation.
const epsilon = 2.220446049250313e-16

// Round2 rounds to 2 decimals, half up on the epsilon-adjusted value.
// Rounding is idempotent: Round2(Round2(v)) == Round2(v).
func Round2(v float64) float64 {
	return math.Round((v+epsilon)*100) / 100
}

type Input struct {
	Items             []domain.OrderItem
	ShippingAddress   *domain.ShippingAddress
	DeliveryDateIndex *int
	DeliveryOptions   []domain.DeliveryOption
	TaxRate           *float64
	Now               time.Time
}

type Result struct {
	ItemsPrice           float64
	ShippingPrice        *float64
	TaxPrice             *float64
	TotalPrice           float64
	DeliveryDateIndex    int
	ExpectedDeliveryDate time.Time
}

// CalcDeliveryDateAndPrice resolves the effective delivery option and
// computes items/shipping/tax/total prices. Shipping and tax stay nil without
// a shipping address: logistics cannot be priced without a destination. The
// delivery index defaults to the last (slowest, cheapest) option.
func CalcDeliveryDateAndPrice(in Input) (Result, error) {
	if len(in.DeliveryOptions) == 0 {
		return Result{}, apperr.New(apperr.KindValidation, "no delivery options configured")
	}

	idx := len(in.DeliveryOptions) - 1
	if in.DeliveryDateIndex != nil {
		idx = *in.DeliveryDateIndex
	}
	if idx < 0 || idx >= len(in.DeliveryOptions) {
		return Result{}, apperr.Newf(apperr.KindValidation, "delivery option index %d out of range", idx)
	}
	option := in.DeliveryOptions[idx]

	var itemsPrice float64
	for _, item := range in.Items {
		itemsPrice += item.Price * float64(item.Quantity)
	}
	itemsPrice = Round2(itemsPrice)

	taxRate := DefaultTaxRate
	if in.TaxRate != nil {
		taxRate = *in.TaxRate
	}

	var shippingPrice, taxPrice *float64
	if in.ShippingAddress != nil {
		ship := option.ShippingPrice
		// Free shipping applies when the tier has a threshold and the item
		// total is strictly above it.
		if option.FreeShippingMinPrice > 0 && itemsPrice > option.FreeShippingMinPrice {
			ship = 0
		}
		shippingPrice = &ship

		tax := Round2(itemsPrice * taxRate)
		taxPrice = &tax
	}

	total := itemsPrice
	if shippingPrice != nil {
		total += Round2(*shippingPrice)
	}
	if taxPrice != nil {
		total += Round2(*taxPrice)
	}

	return Result{
		ItemsPrice:           itemsPrice,
		ShippingPrice:        shippingPrice,
		TaxPrice:             taxPrice,
		TotalPrice:           Round2(total),
		DeliveryDateIndex:    idx,
		ExpectedDeliveryDate: in.Now.AddDate(0, 0, option.DaysToDeliver),
	}, nil
}
