package http

import (
	"encoding/json"
	"net/http"

	"github.com/mahedy25/storefront-api/internal/cart"
	"github.com/mahedy25/storefront-api/internal/domain"
)

type CartHandler struct {
	carts *cart.Service
}

func NewCartHandler(carts *cart.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

type cartItemRequest struct {
	Item     domain.OrderItem `json:"item"`
	Quantity int              `json:"quantity"`
}

type addItemResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	ClientID string `json:"clientId"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Get(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	clientID, err := h.carts.AddItem(r.Context(), userIDFrom(r.Context()), req.Item, req.Quantity)
	if err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, addItemResponse{
		Success:  true,
		Message:  "item added to cart",
		ClientID: clientID,
	})
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.carts.UpdateItem(r.Context(), userIDFrom(r.Context()), req.Item, req.Quantity); err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ActionResponse{Success: true, Message: "cart updated"})
}

// RemoveItem identifies the line by variant key passed as query parameters,
// so DELETE requests carry no body.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	item := domain.OrderItem{
		Product: r.URL.Query().Get("product"),
		Size:    r.URL.Query().Get("size"),
		Color:   r.URL.Query().Get("color"),
	}
	if item.Product == "" {
		respondFailure(w, http.StatusBadRequest, "product is required")
		return
	}

	if err := h.carts.RemoveItem(r.Context(), userIDFrom(r.Context()), item); err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ActionResponse{Success: true, Message: "item removed from cart"})
}

func (h *CartHandler) SetShippingAddress(w http.ResponseWriter, r *http.Request) {
	var addr domain.ShippingAddress
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		respondFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.carts.SetShippingAddress(r.Context(), userIDFrom(r.Context()), addr); err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ActionResponse{Success: true, Message: "shipping address saved"})
}

func (h *CartHandler) SetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.carts.SetPaymentMethod(r.Context(), userIDFrom(r.Context()), req.PaymentMethod); err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ActionResponse{Success: true, Message: "payment method saved"})
}

func (h *CartHandler) SetDeliveryOption(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.carts.SetDeliveryDateIndex(r.Context(), userIDFrom(r.Context()), req.Index); err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ActionResponse{Success: true, Message: "delivery option saved"})
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.ClearCart(r.Context(), userIDFrom(r.Context())); err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ActionResponse{Success: true, Message: "cart cleared"})
}

func (h *CartHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Reset(r.Context(), userIDFrom(r.Context())); err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ActionResponse{Success: true, Message: "cart reset"})
}
