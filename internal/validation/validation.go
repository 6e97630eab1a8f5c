// Package validation checks order input shapes before persistence, replacing
// ad hoc field checks with declarative tags plus one struct-level rule.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/mahedy25/storefront-api/internal/domain"
)

// OrderInput is the sanitized order shape assembled by the order service
// after the server-side recompute. Client totals never reach this struct.
type OrderInput struct {
	User                 string                 `validate:"required"`
	Items                []domain.OrderItem     `validate:"required,min=1,dive"`
	ShippingAddress      domain.ShippingAddress `validate:"required"`
	PaymentMethod        string                 `validate:"required"`
	ItemsPrice           float64                `validate:"gte=0"`
	ShippingPrice        float64                `validate:"gte=0"`
	TaxPrice             float64                `validate:"gte=0"`
	TotalPrice           float64                `validate:"gt=0"`
	ExpectedDeliveryDate time.Time              `validate:"required"`
}

// ReviewInput is the shape checked before a review is written.
type ReviewInput struct {
	User    string `validate:"required"`
	Product string `validate:"required"`
	Title   string `validate:"required"`
	Comment string `validate:"required"`
	Rating  int    `validate:"required,min=1,max=5"`
}

// New returns a validator with the order total consistency rule registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterStructValidation(orderTotalValidation, OrderInput{})
	return v
}

// orderTotalValidation verifies totalPrice equals the sum of the three price
// components, compared in cents to dodge float drift.
func orderTotalValidation(sl validatorv10.StructLevel) {
	in := sl.Current().Interface().(OrderInput)

	sumCents := int(math.Round((in.ItemsPrice + in.ShippingPrice + in.TaxPrice) * 100))
	totalCents := int(math.Round(in.TotalPrice * 100))
	if sumCents != totalCents {
		sl.ReportError(in.TotalPrice, "totalPrice", "TotalPrice", "total_match_components", "")
	}
}

// FormatErrors flattens validator field errors into one user-facing message,
// "field: rule" pairs joined by periods.
func FormatErrors(err error) string {
	var fieldErrs validatorv10.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s: failed %s validation", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, ". ")
}
