package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/raselworshop/pet-adoption-server/internal/model"
	"github.com/raselworshop/pet-adoption-server/internal/repository"
	"github.com/raselworshop/pet-adoption-server/internal/service"
	"github.com/raselworshop/pet-adoption-server/pkg/auth"
)

// CampaignHandler handles donation-campaign endpoints.
type CampaignHandler struct {
	svc service.CampaignService
}

// NewCampaignHandler creates a CampaignHandler.
func NewCampaignHandler(svc service.CampaignService) *CampaignHandler {
	return &CampaignHandler{svc: svc}
}

// List handles GET /api/campaigns.
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	limit, offset := pageParams(r)
	result, err := h.svc.List(r.Context(), limit, offset)
	if err != nil {
		slog.Error("campaign list failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "list_failed"})
		return
	}
	if result.Campaigns == nil {
		result.Campaigns = []*model.Campaign{}
	}

	_ = json.NewEncoder(w).Encode(result)
}

// Random handles GET /api/campaigns/random.
func (h *CampaignHandler) Random(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	limit, _ := pageParams(r)
	campaigns, err := h.svc.Random(r.Context(), limit)
	if err != nil {
		slog.Error("random campaign fetch failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "fetch_failed"})
		return
	}
	if campaigns == nil {
		campaigns = []*model.Campaign{}
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"campaigns": campaigns})
}

// Get handles GET /api/campaigns/{id}. The response includes the donor ledger.
func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := chi.URLParam(r, "id")

	campaign, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("campaign lookup failed", "error", err, "campaign_id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "lookup_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"campaign": campaign})
}

type createCampaignRequest struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	TargetAmount int    `json:"target_amount"`
}

// Create handles POST /api/campaigns (auth required).
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	campaign, err := h.svc.Create(r.Context(), ident.Email, service.CreateCampaignInput{
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		TargetAmount: req.TargetAmount,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_input"})
			return
		}
		slog.Error("campaign create failed", "error", err, "owner", ident.Email)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "create_failed"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{"campaign": campaign})
}

type campaignPatchRequest struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	Description  *string `json:"description"`
	ImageURL     *string `json:"image_url"`
	TargetAmount *int    `json:"target_amount"`
}

// Update handles PUT /api/campaigns/{id} (auth required, owner or admin).
func (h *CampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	id := chi.URLParam(r, "id")

	var req campaignPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	patch := model.CampaignPatch{
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		TargetAmount: req.TargetAmount,
	}
	err := h.svc.Update(r.Context(), id, ident.Email, ident.Role == model.RoleAdmin, patch)
	if err != nil {
		h.writeMutationError(w, err, "campaign update failed", id)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// Delete handles DELETE /api/campaigns/{id} (auth required, owner or admin).
// Deleting a campaign drops its donor ledger with it.
func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id, ident.Email, ident.Role == model.RoleAdmin); err != nil {
		h.writeMutationError(w, err, "campaign delete failed", id)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

type pauseRequest struct {
	Paused bool `json:"paused"`
}

// Pause handles PATCH /api/campaigns/{id}/pause (auth required, owner or admin).
func (h *CampaignHandler) Pause(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	id := chi.URLParam(r, "id")

	var req pauseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	err := h.svc.SetPaused(r.Context(), id, ident.Email, ident.Role == model.RoleAdmin, req.Paused)
	if err != nil {
		h.writeMutationError(w, err, "campaign pause failed", id)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (h *CampaignHandler) writeMutationError(w http.ResponseWriter, err error, msg, campaignID string) {
	if errors.Is(err, service.ErrInvalidInput) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_input"})
		return
	}
	if errors.Is(err, service.ErrForbidden) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "forbidden"})
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
		return
	}
	slog.Error(msg, "error", err, "campaign_id", campaignID)
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "update_failed"})
}
