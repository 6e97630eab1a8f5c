package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mahedy25/storefront-api/internal/domain"
	"github.com/mahedy25/storefront-api/internal/product"
	"github.com/mahedy25/storefront-api/internal/setting"
)

type ProductHandler struct {
	products product.Repository
	settings *setting.Cache
}

func NewProductHandler(products product.Repository, settings *setting.Cache) *ProductHandler {
	return &ProductHandler{products: products, settings: settings}
}

type listProductsResponse struct {
	Products   []domain.Product `json:"products"`
	TotalPages int64            `json:"totalPages"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}

	s, err := h.settings.Get(r.Context())
	if err != nil {
		respondActionError(w, err)
		return
	}
	limit := s.PageSize
	if limit <= 0 {
		limit = domain.DefaultSetting().PageSize
	}

	products, total, err := h.products.ListPublished(r.Context(), (page-1)*limit, limit)
	if err != nil {
		respondActionError(w, err)
		return
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}
	respondJSON(w, http.StatusOK, listProductsResponse{Products: products, TotalPages: totalPages})
}

func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			respondFailure(w, http.StatusNotFound, "product not found")
			return
		}
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}
