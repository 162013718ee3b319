package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/raselworshop/pet-adoption-server/internal/model"
	"github.com/raselworshop/pet-adoption-server/internal/repository"
	"github.com/raselworshop/pet-adoption-server/internal/service"
	"github.com/raselworshop/pet-adoption-server/pkg/auth"
)

// AdoptionHandler handles adoption-request endpoints.
type AdoptionHandler struct {
	svc service.AdoptionService
}

// NewAdoptionHandler creates an AdoptionHandler.
func NewAdoptionHandler(svc service.AdoptionService) *AdoptionHandler {
	return &AdoptionHandler{svc: svc}
}

type submitRequest struct {
	PetID          string `json:"pet_id"`
	AdopterName    string `json:"adopter_name"`
	AdopterPhone   string `json:"adopter_phone"`
	AdopterAddress string `json:"adopter_address"`
}

// Submit handles POST /api/adoptions (auth required).
func (h *AdoptionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	request, err := h.svc.Submit(r.Context(), service.SubmitRequestInput{
		PetID:          req.PetID,
		AdopterName:    req.AdopterName,
		AdopterEmail:   ident.Email,
		AdopterPhone:   req.AdopterPhone,
		AdopterAddress: req.AdopterAddress,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_input"})
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "pet_unavailable"})
			return
		}
		if errors.Is(err, repository.ErrDuplicate) {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "request_pending"})
			return
		}
		slog.Error("adoption submit failed", "error", err, "pet_id", req.PetID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "submit_failed"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{"request": request})
}

type resolveRequest struct {
	Decision string `json:"decision"`
}

// Resolve handles PATCH /api/adoptions/{id} (auth required, pet owner or admin).
func (h *AdoptionHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	id := chi.URLParam(r, "id")

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	err := h.svc.Resolve(r.Context(), id, req.Decision, ident.Email, ident.Role == model.RoleAdmin)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_decision"})
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
		slog.Error("adoption resolve failed", "error", err, "request_id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "resolve_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// Cancel handles POST /api/adoptions/{id}/cancel (auth required, adopter or admin).
func (h *AdoptionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.svc.Cancel(r.Context(), id, ident.Email, ident.Role == model.RoleAdmin); err != nil {
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
		slog.Error("adoption cancel failed", "error", err, "request_id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "cancel_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// MyRequests handles GET /api/me/adoptions (auth required).
func (h *AdoptionHandler) MyRequests(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	limit, offset := pageParams(r)
	requests, err := h.svc.ListByAdopter(r.Context(), ident.Email, limit, offset)
	if err != nil {
		slog.Error("adoption list failed", "error", err, "adopter", ident.Email)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "list_failed"})
		return
	}
	if requests == nil {
		requests = []*model.AdoptionRequest{}
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"requests": requests})
}

// IncomingRequests handles GET /api/me/pets/requests (auth required).
// Lists requests submitted against the caller's own listings.
func (h *AdoptionHandler) IncomingRequests(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	limit, offset := pageParams(r)
	requests, err := h.svc.ListByPetOwner(r.Context(), ident.Email, limit, offset)
	if err != nil {
		slog.Error("incoming request list failed", "error", err, "owner", ident.Email)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "list_failed"})
		return
	}
	if requests == nil {
		requests = []*model.AdoptionRequest{}
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"requests": requests})
}

func pageParams(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	return limit, offset
}
