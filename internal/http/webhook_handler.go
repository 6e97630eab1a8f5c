package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/mahedy25/storefront-api/internal/apperr"
	"github.com/mahedy25/storefront-api/internal/order"
)

const maxWebhookBody = 1 << 20

// paymentEvent mirrors the provider's webhook envelope. Only the fields the
// transition needs are decoded.
type paymentEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			Amount         int64 `json:"amount"`
			BillingDetails struct {
				Email string `json:"email"`
			} `json:"billing_details"`
			Metadata struct {
				OrderID string `json:"orderId"`
			} `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

type WebhookHandler struct {
	orders *order.Service
	secret string
	logger *slog.Logger
}

// NewWebhookHandler builds the payment provider callback endpoint. When
// secret is non-empty, every request must carry a valid HMAC-SHA256 body
// signature in X-Webhook-Signature.
func NewWebhookHandler(orders *order.Service, secret string, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{orders: orders, secret: secret, logger: logger}
}

func (h *WebhookHandler) HandlePayment(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		respondFailure(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if h.secret != "" && !h.verifySignature(body, r.Header.Get("X-Webhook-Signature")) {
		respondFailure(w, http.StatusUnauthorized, "invalid webhook signature")
		return
	}

	var evt paymentEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		respondFailure(w, http.StatusBadRequest, "invalid event payload")
		return
	}

	// Events other than a successful charge are acknowledged and ignored so
	// the provider does not retry them.
	if evt.Type != "charge.succeeded" {
		w.WriteHeader(http.StatusOK)
		return
	}

	orderID := evt.Data.Object.Metadata.OrderID
	if orderID == "" {
		respondFailure(w, http.StatusBadRequest, "event metadata is missing orderId")
		return
	}

	o, err := h.orders.MarkPaid(r.Context(), orderID, order.PaymentCapture{
		EventID:     evt.ID,
		Email:       evt.Data.Object.BillingDetails.Email,
		AmountMinor: evt.Data.Object.Amount,
	})
	if err != nil {
		// The provider references an order this system does not know. That is
		// a payload problem, not a missing resource on a REST path.
		if apperr.KindOf(err) == apperr.KindNotFound || errors.Is(err, order.ErrOrderNotFound) {
			respondFailure(w, http.StatusBadRequest, "order not found")
			return
		}
		respondActionError(w, err)
		return
	}

	h.logger.Info("payment captured", "order_id", o.ID, "event_id", evt.ID)
	respondJSON(w, http.StatusOK, ActionResponse{
		Success: true,
		Message: "order paid successfully",
		OrderID: o.ID,
	})
}

func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
