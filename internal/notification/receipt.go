// Package notification publishes purchase-receipt events after an order is
// paid. Downstream consumers (the mailer among them) render and deliver the
// actual receipt; this side only guarantees the event carries everything a
// receipt needs.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/mahedy25/storefront-api/internal/domain"
)

type receiptItem struct {
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size,omitempty"`
	Color    string  `json:"color,omitempty"`
}

type receiptEvent struct {
	OrderID       string        `json:"order_id"`
	UserID        string        `json:"user_id"`
	EmailAddress  string        `json:"email_address"`
	Items         []receiptItem `json:"items"`
	ItemsPrice    float64       `json:"items_price"`
	TaxPrice      float64       `json:"tax_price"`
	ShippingPrice float64       `json:"shipping_price"`
	TotalPrice    float64       `json:"total_price"`
	PricePaid     string        `json:"price_paid"`
	PaidAt        time.Time     `json:"paid_at"`
}

type KafkaReceiptPublisher struct {
	writer *kafka.Writer
}

func NewKafkaReceiptPublisher(brokers []string, topic string) *KafkaReceiptPublisher {
	return &KafkaReceiptPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *KafkaReceiptPublisher) PublishReceipt(ctx context.Context, order *domain.Order) error {
	event := receiptEvent{
		OrderID:       order.ID,
		UserID:        order.UserID,
		Items:         make([]receiptItem, 0, len(order.Items)),
		ItemsPrice:    order.ItemsPrice,
		TaxPrice:      order.TaxPrice,
		ShippingPrice: order.ShippingPrice,
		TotalPrice:    order.TotalPrice,
	}
	if order.PaymentResult != nil {
		event.EmailAddress = order.PaymentResult.EmailAddress
		event.PricePaid = order.PaymentResult.PricePaid
	}
	if order.PaidAt != nil {
		event.PaidAt = *order.PaidAt
	}
	for _, item := range order.Items {
		event.Items = append(event.Items, receiptItem{
			Name:     item.Name,
			Image:    item.Image,
			Price:    item.Price,
			Quantity: item.Quantity,
			Size:     item.Size,
			Color:    item.Color,
		})
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal receipt event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.ID),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish receipt event: %w", err)
	}
	return nil
}

func (p *KafkaReceiptPublisher) Close() error {
	return p.writer.Close()
}
