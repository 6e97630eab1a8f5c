package http

import (
	"encoding/json"
	"net/http"

	"github.com/mahedy25/storefront-api/internal/domain"
	"github.com/mahedy25/storefront-api/internal/setting"
)

type SettingHandler struct {
	settings *setting.Cache
}

func NewSettingHandler(settings *setting.Cache) *SettingHandler {
	return &SettingHandler{settings: settings}
}

func (h *SettingHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.Get(r.Context())
	if err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s)
}

// Update replaces the storefront settings document and refreshes the
// in-process cache so subsequent pricing runs see the new values.
func (h *SettingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var s domain.Setting
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		respondFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(s.DeliveryOptions) == 0 {
		respondFailure(w, http.StatusBadRequest, "at least one delivery option is required")
		return
	}

	updated, err := h.settings.Update(r.Context(), s)
	if err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
