package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahedy25/storefront-api/internal/apperr"
	"github.com/mahedy25/storefront-api/internal/domain"
)

var testOptions = domain.DefaultSetting().DeliveryOptions

func intPtr(i int) *int { return &i }

func ratePtr(r float64) *float64 { return &r }

func item(price float64, qty int) domain.OrderItem {
	return domain.OrderItem{Product: "p1", Price: price, Quantity: qty}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.01, Round2(1.005))
	assert.Equal(t, 7.5, Round2(7.5))
	assert.Equal(t, 49.99, Round2(49.985001))
	assert.Equal(t, 0.0, Round2(0))
}

func TestRound2_Idempotent(t *testing.T) {
	for _, v := range []float64{0, 0.005, 1.005, 4.9, 12.9, 33.333, 57.5, 1234.567} {
		once := Round2(v)
		assert.Equal(t, once, Round2(once), "value %v", v)
	}
}

func TestCalc_ItemsPriceIsRoundedSum(t *testing.T) {
	res, err := CalcDeliveryDateAndPrice(Input{
		Items:           []domain.OrderItem{item(19.99, 3), item(0.1, 2)},
		DeliveryOptions: testOptions,
		Now:             time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, 60.17, res.ItemsPrice)
}

func TestCalc_NoAddress_NoShippingNoTax(t *testing.T) {
	res, err := CalcDeliveryDateAndPrice(Input{
		Items:           []domain.OrderItem{item(500, 4)},
		DeliveryOptions: testOptions,
		Now:             time.Now(),
	})
	require.NoError(t, err)
	assert.Nil(t, res.ShippingPrice)
	assert.Nil(t, res.TaxPrice)
	assert.Equal(t, 2000.0, res.ItemsPrice)
	assert.Equal(t, 2000.0, res.TotalPrice)
}

func TestCalc_DefaultsToLastDeliveryOption(t *testing.T) {
	res, err := CalcDeliveryDateAndPrice(Input{
		Items:           []domain.OrderItem{item(10, 1)},
		DeliveryOptions: testOptions,
		Now:             time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, len(testOptions)-1, res.DeliveryDateIndex)
}

func TestCalc_FreeShippingAboveThreshold(t *testing.T) {
	addr := &domain.ShippingAddress{City: "Dhaka"}

	// Last option: flat 4.9, free above 35.
	res, err := CalcDeliveryDateAndPrice(Input{
		Items:           []domain.OrderItem{item(40, 1)},
		ShippingAddress: addr,
		DeliveryOptions: testOptions,
		Now:             time.Now(),
	})
	require.NoError(t, err)
	require.NotNil(t, res.ShippingPrice)
	assert.Equal(t, 0.0, *res.ShippingPrice)

	res, err = CalcDeliveryDateAndPrice(Input{
		Items:           []domain.OrderItem{item(20, 1)},
		ShippingAddress: addr,
		DeliveryOptions: testOptions,
		Now:             time.Now(),
	})
	require.NoError(t, err)
	require.NotNil(t, res.ShippingPrice)
	assert.Equal(t, 4.9, *res.ShippingPrice)
}

func TestCalc_ZeroThresholdNeverFree(t *testing.T) {
	res, err := CalcDeliveryDateAndPrice(Input{
		Items:             []domain.OrderItem{item(1000, 1)},
		ShippingAddress:   &domain.ShippingAddress{City: "Dhaka"},
		DeliveryDateIndex: intPtr(0), // Tomorrow: 12.9, no free threshold
		DeliveryOptions:   testOptions,
		Now:               time.Now(),
	})
	require.NoError(t, err)
	require.NotNil(t, res.ShippingPrice)
	assert.Equal(t, 12.9, *res.ShippingPrice)
}

func TestCalc_TotalIsExactSum(t *testing.T) {
	cases := []struct {
		items []domain.OrderItem
		addr  *domain.ShippingAddress
		idx   *int
	}{
		{[]domain.OrderItem{item(25, 2)}, nil, nil},
		{[]domain.OrderItem{item(25, 2)}, &domain.ShippingAddress{City: "x"}, nil},
		{[]domain.OrderItem{item(9.99, 3), item(4.5, 1)}, &domain.ShippingAddress{City: "x"}, intPtr(1)},
		{[]domain.OrderItem{item(0.01, 1)}, &domain.ShippingAddress{City: "x"}, intPtr(0)},
	}
	for _, tc := range cases {
		res, err := CalcDeliveryDateAndPrice(Input{
			Items:             tc.items,
			ShippingAddress:   tc.addr,
			DeliveryDateIndex: tc.idx,
			DeliveryOptions:   testOptions,
			Now:               time.Now(),
		})
		require.NoError(t, err)

		want := res.ItemsPrice
		if res.ShippingPrice != nil {
			want += *res.ShippingPrice
		}
		if res.TaxPrice != nil {
			want += *res.TaxPrice
		}
		assert.Equal(t, Round2(want), res.TotalPrice)
	}
}

func TestCalc_TaxIsFifteenPercent(t *testing.T) {
	res, err := CalcDeliveryDateAndPrice(Input{
		Items:           []domain.OrderItem{item(25, 2)},
		ShippingAddress: &domain.ShippingAddress{City: "Dhaka"},
		DeliveryOptions: testOptions,
		Now:             time.Now(),
	})
	require.NoError(t, err)
	require.NotNil(t, res.TaxPrice)
	assert.Equal(t, 7.5, *res.TaxPrice)
	assert.Equal(t, 57.5, res.TotalPrice)
}

func TestCalc_ZeroTaxRateIsHonored(t *testing.T) {
	res, err := CalcDeliveryDateAndPrice(Input{
		Items:           []domain.OrderItem{item(25, 2)},
		ShippingAddress: &domain.ShippingAddress{City: "Dhaka"},
		TaxRate:         ratePtr(0),
		DeliveryOptions: testOptions,
		Now:             time.Now(),
	})
	require.NoError(t, err)
	require.NotNil(t, res.TaxPrice)
	assert.Equal(t, 0.0, *res.TaxPrice)
	assert.Equal(t, 50.0, res.TotalPrice)
}

func TestCalc_ExpectedDeliveryDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	res, err := CalcDeliveryDateAndPrice(Input{
		Items:             []domain.OrderItem{item(10, 1)},
		DeliveryDateIndex: intPtr(1), // 3 days
		DeliveryOptions:   testOptions,
		Now:               now,
	})
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, 3), res.ExpectedDeliveryDate)
}

func TestCalc_IndexOutOfRange(t *testing.T) {
	_, err := CalcDeliveryDateAndPrice(Input{
		Items:             []domain.OrderItem{item(10, 1)},
		DeliveryDateIndex: intPtr(7),
		DeliveryOptions:   testOptions,
		Now:               time.Now(),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCalc_NoOptionsConfigured(t *testing.T) {
	_, err := CalcDeliveryDateAndPrice(Input{Items: []domain.OrderItem{item(10, 1)}, Now: time.Now()})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
