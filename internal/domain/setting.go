package domain

// DeliveryOption is one shipping tier. A zero FreeShippingMinPrice means the
// tier never ships free.
type DeliveryOption struct {
	Name                 string  `json:"name" bson:"name"`
	DaysToDeliver        int     `json:"daysToDeliver" bson:"days_to_deliver"`
	ShippingPrice        float64 `json:"shippingPrice" bson:"shipping_price"`
	FreeShippingMinPrice float64 `json:"freeShippingMinPrice" bson:"free_shipping_min_price"`
}

type PaymentMethod struct {
	Name       string  `json:"name" bson:"name"`
	Commission float64 `json:"commission" bson:"commission"`
	IsDefault  bool    `json:"isDefault" bson:"is_default"`
}

// Setting is the single store-wide configuration document. TaxRate is a
// pointer so a configured zero rate is distinguishable from an absent one.
type Setting struct {
	ID                   string           `json:"id" bson:"_id,omitempty"`
	DeliveryOptions      []DeliveryOption `json:"deliveryOptions" bson:"delivery_options"`
	PaymentMethods       []PaymentMethod  `json:"paymentMethods" bson:"payment_methods"`
	DefaultPaymentMethod string           `json:"defaultPaymentMethod" bson:"default_payment_method"`
	TaxRate              *float64         `json:"taxRate,omitempty" bson:"tax_rate,omitempty"`
	FreeShippingMinPrice float64          `json:"freeShippingMinPrice" bson:"free_shipping_min_price"`
	PageSize             int64            `json:"pageSize" bson:"page_size"`
}

// TaxRateValue unwraps TaxRate with the fallback applied.
func (s Setting) TaxRateValue(fallback float64) float64 {
	if s.TaxRate == nil {
		return fallback
	}
	return *s.TaxRate
}

// DefaultSetting is the compiled fallback used until the settings document
// exists. The delivery list is ordered fastest first; the last entry is the
// default option.
func DefaultSetting() Setting {
	taxRate := 0.15
	return Setting{
		DeliveryOptions: []DeliveryOption{
			{Name: "Tomorrow", DaysToDeliver: 1, ShippingPrice: 12.9, FreeShippingMinPrice: 0},
			{Name: "Next 3 Days", DaysToDeliver: 3, ShippingPrice: 6.9, FreeShippingMinPrice: 0},
			{Name: "Next 7 Days", DaysToDeliver: 7, ShippingPrice: 4.9, FreeShippingMinPrice: 35},
		},
		PaymentMethods: []PaymentMethod{
			{Name: "PayPal", IsDefault: true},
			{Name: "Stripe", IsDefault: true},
			{Name: "Cash On Delivery", IsDefault: true},
		},
		DefaultPaymentMethod: "PayPal",
		TaxRate:              &taxRate,
		FreeShippingMinPrice: 35,
		PageSize:             9,
	}
}
