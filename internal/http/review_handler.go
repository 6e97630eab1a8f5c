package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mahedy25/storefront-api/internal/domain"
	"github.com/mahedy25/storefront-api/internal/review"
)

type ReviewHandler struct {
	reviews *review.Service
}

func NewReviewHandler(reviews *review.Service) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type createReviewRequest struct {
	Title   string `json:"title"`
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

type listReviewsResponse struct {
	Reviews    []domain.Review `json:"reviews"`
	TotalPages int64           `json:"totalPages"`
}

func (h *ReviewHandler) CreateUpdate(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.reviews.CreateUpdate(r.Context(), domain.Review{
		Product: chi.URLParam(r, "productID"),
		Title:   req.Title,
		Comment: req.Comment,
		Rating:  req.Rating,
	}, userIDFrom(r.Context()))
	if err != nil {
		respondActionError(w, err)
		return
	}

	message := "review created"
	if updated {
		message = "review updated"
	}
	respondJSON(w, http.StatusOK, ActionResponse{Success: true, Message: message})
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)

	reviews, totalPages, err := h.reviews.List(r.Context(), chi.URLParam(r, "productID"), page)
	if err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listReviewsResponse{Reviews: reviews, TotalPages: totalPages})
}

// Mine returns the caller's own review for a product, or null when they have
// not reviewed it yet.
func (h *ReviewHandler) Mine(w http.ResponseWriter, r *http.Request) {
	rev, err := h.reviews.GetByProductAndUser(r.Context(), chi.URLParam(r, "productID"), userIDFrom(r.Context()))
	if err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rev)
}
