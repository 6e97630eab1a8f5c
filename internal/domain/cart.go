package domain

import "time"

// OrderItem is one product+variant line in a cart or order. Display fields
// (name, image, slug, category) and the stock count are denormalized from the
// product document at the time the line is added.
type OrderItem struct {
	Product      string  `json:"product" bson:"product" validate:"required"`
	ClientID     string  `json:"clientId" bson:"client_id" validate:"required"`
	Name         string  `json:"name" bson:"name" validate:"required"`
	Slug         string  `json:"slug" bson:"slug" validate:"required"`
	Image        string  `json:"image" bson:"image" validate:"required"`
	Category     string  `json:"category" bson:"category" validate:"required"`
	Price        float64 `json:"price" bson:"price" validate:"required,gt=0"`
	CountInStock int     `json:"countInStock" bson:"count_in_stock" validate:"gte=0"`
	Quantity     int     `json:"quantity" bson:"quantity" validate:"required,min=1"`
	Size         string  `json:"size,omitempty" bson:"size,omitempty"`
	Color        string  `json:"color,omitempty" bson:"color,omitempty"`
}

// SameVariant reports whether two lines refer to the same product variant.
// Lines are unique by product+size+color.
func (i OrderItem) SameVariant(o OrderItem) bool {
	return i.Product == o.Product && i.Size == o.Size && i.Color == o.Color
}

type ShippingAddress struct {
	FullName   string `json:"fullName" bson:"full_name" validate:"required"`
	Street     string `json:"street" bson:"street" validate:"required"`
	City       string `json:"city" bson:"city" validate:"required"`
	PostalCode string `json:"postalCode" bson:"postal_code" validate:"required"`
	Country    string `json:"country" bson:"country" validate:"required"`
	Province   string `json:"province" bson:"province" validate:"required"`
	Phone      string `json:"phone" bson:"phone" validate:"required"`
}

// Cart is the per-session aggregate. The four price fields and the expected
// delivery date are derived; they are recomputed after every mutation of the
// item list, the shipping address, or the delivery option.
type Cart struct {
	ID                   string           `json:"id" bson:"_id"`
	Items                []OrderItem      `json:"items" bson:"items"`
	ShippingAddress      *ShippingAddress `json:"shippingAddress,omitempty" bson:"shipping_address,omitempty"`
	PaymentMethod        string           `json:"paymentMethod,omitempty" bson:"payment_method,omitempty"`
	DeliveryDateIndex    *int             `json:"deliveryDateIndex,omitempty" bson:"delivery_date_index,omitempty"`
	ItemsPrice           float64          `json:"itemsPrice" bson:"items_price"`
	ShippingPrice        *float64         `json:"shippingPrice,omitempty" bson:"shipping_price,omitempty"`
	TaxPrice             *float64         `json:"taxPrice,omitempty" bson:"tax_price,omitempty"`
	TotalPrice           float64          `json:"totalPrice" bson:"total_price"`
	ExpectedDeliveryDate time.Time        `json:"expectedDeliveryDate" bson:"expected_delivery_date"`
	CreatedAt            time.Time        `json:"createdAt" bson:"created_at"`
	UpdatedAt            time.Time        `json:"updatedAt" bson:"updated_at"`
}
