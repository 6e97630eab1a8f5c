package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig carries the handlers and cross-cutting knobs the router wires
// together.
type RouterConfig struct {
	Carts          *CartHandler
	Orders         *OrderHandler
	Products       *ProductHandler
	Reviews        *ReviewHandler
	Settings       *SettingHandler
	PaymentWebhook *WebhookHandler
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionAuth)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Provider callbacks authenticate by signature, not session.
		r.Post("/webhooks/payment", cfg.PaymentWebhook.HandlePayment)

		r.Get("/products", cfg.Products.List)
		r.Get("/products/slug/{slug}", cfg.Products.GetBySlug)
		r.Get("/products/{productID}/reviews", cfg.Reviews.List)

		r.Get("/settings", cfg.Settings.Get)

		r.Group(func(r chi.Router) {
			r.Use(RequireUser)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cfg.Carts.Get)
				r.Delete("/", cfg.Carts.Reset)
				r.Post("/clear", cfg.Carts.Clear)
				r.Post("/items", cfg.Carts.AddItem)
				r.Put("/items", cfg.Carts.UpdateItem)
				r.Delete("/items", cfg.Carts.RemoveItem)
				r.Put("/shipping-address", cfg.Carts.SetShippingAddress)
				r.Put("/payment-method", cfg.Carts.SetPaymentMethod)
				r.Put("/delivery-option", cfg.Carts.SetDeliveryOption)
			})

			r.Post("/orders", cfg.Orders.Create)
			r.Get("/orders", cfg.Orders.List)
			r.Get("/orders/{orderID}", cfg.Orders.Get)

			r.Post("/products/{productID}/reviews", cfg.Reviews.CreateUpdate)
			r.Get("/products/{productID}/reviews/mine", cfg.Reviews.Mine)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin)

			r.Put("/orders/{orderID}/deliver", cfg.Orders.MarkDelivered)
			r.Put("/settings", cfg.Settings.Update)
		})
	})

	return r
}
