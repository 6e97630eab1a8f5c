package domain

import "time"

// PaymentResult is the record attached by the payment-confirmation event.
// PricePaid is kept as a 2-decimal string, already converted from the
// provider's minor units.
type PaymentResult struct {
	ID           string `json:"id" bson:"id"`
	Status       string `json:"status" bson:"status"`
	EmailAddress string `json:"emailAddress" bson:"email_address"`
	PricePaid    string `json:"pricePaid" bson:"price_paid"`
}

// Order is an immutable snapshot of a cart at creation time. After creation
// only the paid/delivered flags, their timestamps and the payment result are
// ever written, and only by the payment-confirmation path or an admin.
type Order struct {
	ID                   string          `json:"id" bson:"_id,omitempty"`
	UserID               string          `json:"user" bson:"user"`
	Items                []OrderItem     `json:"items" bson:"items"`
	ShippingAddress      ShippingAddress `json:"shippingAddress" bson:"shipping_address"`
	ExpectedDeliveryDate time.Time       `json:"expectedDeliveryDate" bson:"expected_delivery_date"`
	PaymentMethod        string          `json:"paymentMethod" bson:"payment_method"`
	PaymentResult        *PaymentResult  `json:"paymentResult,omitempty" bson:"payment_result,omitempty"`
	ItemsPrice           float64         `json:"itemsPrice" bson:"items_price"`
	ShippingPrice        float64         `json:"shippingPrice" bson:"shipping_price"`
	TaxPrice             float64         `json:"taxPrice" bson:"tax_price"`
	TotalPrice           float64         `json:"totalPrice" bson:"total_price"`
	IsPaid               bool            `json:"isPaid" bson:"is_paid"`
	PaidAt               *time.Time      `json:"paidAt,omitempty" bson:"paid_at,omitempty"`
	IsDelivered          bool            `json:"isDelivered" bson:"is_delivered"`
	DeliveredAt          *time.Time      `json:"deliveredAt,omitempty" bson:"delivered_at,omitempty"`
	CreatedAt            time.Time       `json:"createdAt" bson:"created_at"`
	UpdatedAt            time.Time       `json:"updatedAt" bson:"updated_at"`
}
