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

// PetHandler handles pet listing endpoints.
type PetHandler struct {
	svc service.PetService
}

// NewPetHandler creates a PetHandler.
func NewPetHandler(svc service.PetService) *PetHandler {
	return &PetHandler{svc: svc}
}

// List handles GET /api/pets. Supports search, category, adopted, limit and
// offset query parameters.
func (h *PetHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	q := r.URL.Query()
	filter := model.PetFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}
	if v := q.Get("adopted"); v != "" {
		adopted, err := strconv.ParseBool(v)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_adopted"})
			return
		}
		filter.Adopted = &adopted
	}
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter.Offset, _ = strconv.Atoi(q.Get("offset"))

	pets, err := h.svc.List(r.Context(), filter)
	if err != nil {
		slog.Error("pet list failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "list_failed"})
		return
	}
	if pets == nil {
		pets = []*model.Pet{}
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"pets": pets})
}

// Get handles GET /api/pets/{id}.
func (h *PetHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := chi.URLParam(r, "id")

	pet, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("pet lookup failed", "error", err, "pet_id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "lookup_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"pet": pet})
}

type createPetRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// Create handles POST /api/pets (auth required).
func (h *PetHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	var req createPetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	pet, err := h.svc.Create(r.Context(), ident.Email, service.CreatePetInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_input"})
			return
		}
		slog.Error("pet create failed", "error", err, "owner", ident.Email)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "create_failed"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{"pet": pet})
}

type petPatchRequest struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

// Update handles PUT /api/pets/{id} (auth required, owner or admin).
func (h *PetHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	id := chi.URLParam(r, "id")

	var req petPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	patch := model.PetPatch{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := h.svc.Update(r.Context(), id, ident.Email, ident.Role == model.RoleAdmin, patch); err != nil {
		h.writeMutationError(w, err, "pet update failed", id)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// Delete handles DELETE /api/pets/{id} (auth required, owner or admin).
func (h *PetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id, ident.Email, ident.Role == model.RoleAdmin); err != nil {
		h.writeMutationError(w, err, "pet delete failed", id)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// MyPets handles GET /api/me/pets (auth required).
func (h *PetHandler) MyPets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	pets, err := h.svc.ListByOwner(r.Context(), ident.Email)
	if err != nil {
		slog.Error("owned pet list failed", "error", err, "owner", ident.Email)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "list_failed"})
		return
	}
	if pets == nil {
		pets = []*model.Pet{}
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"pets": pets})
}

type setAdoptedRequest struct {
	Adopted bool `json:"adopted"`
}

// SetAdopted handles PATCH /api/admin/pets/{id}/adopted (admin only).
// The response distinguishes a flipped flag from one that already carried
// the requested value.
func (h *PetHandler) SetAdopted(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := chi.URLParam(r, "id")

	var req setAdoptedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	changed, err := h.svc.SetAdopted(r.Context(), id, req.Adopted)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("set adopted failed", "error", err, "pet_id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "update_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "changed": changed})
}

func (h *PetHandler) writeMutationError(w http.ResponseWriter, err error, msg, petID string) {
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
	slog.Error(msg, "error", err, "pet_id", petID)
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "update_failed"})
}
