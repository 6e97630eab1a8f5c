package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mahedy25/storefront-api/internal/cart"
	"github.com/mahedy25/storefront-api/internal/domain"
	"github.com/mahedy25/storefront-api/internal/order"
)

type OrderHandler struct {
	orders *order.Service
	carts  *cart.Service
	logger *slog.Logger
}

func NewOrderHandler(orders *order.Service, carts *cart.Service, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, carts: carts, logger: logger}
}

type listOrdersResponse struct {
	Orders     []domain.Order `json:"orders"`
	TotalPages int64          `json:"totalPages"`
}

// Create submits the client's cart snapshot as an order. All prices in
// the snapshot are recomputed server-side before persisting.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c domain.Cart
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respondFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := userIDFrom(r.Context())
	o, err := h.orders.Create(r.Context(), c, userID)
	if err != nil {
		respondActionError(w, err)
		return
	}

	// The user's server-side cart is spent once the order exists. Failure to
	// clear it must not fail the order.
	if err := h.carts.Reset(r.Context(), userID); err != nil {
		h.logger.Warn("failed to reset cart after order creation",
			"user_id", userID, "order_id", o.ID, "error", err)
	}

	respondJSON(w, http.StatusCreated, ActionResponse{
		Success: true,
		Message: "order created",
		OrderID: o.ID,
	})
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)

	orders, totalPages, err := h.orders.ListByUser(r.Context(), userIDFrom(r.Context()), page)
	if err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listOrdersResponse{Orders: orders, TotalPages: totalPages})
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetByID(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		respondActionError(w, err)
		return
	}

	// Orders are visible to their owner and to admins only.
	if o.UserID != userIDFrom(r.Context()) && roleFrom(r.Context()) != "admin" {
		respondFailure(w, http.StatusNotFound, "order not found")
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.MarkDelivered(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ActionResponse{
		Success: true,
		Message: "order marked as delivered",
		OrderID: o.ID,
	})
}
