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
)

// AdminHandler handles user-management and analytics endpoints. All routes
// are mounted behind the admin middleware.
type AdminHandler struct {
	users     service.AdminUserService
	analytics service.AnalyticsService
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(users service.AdminUserService, analytics service.AnalyticsService) *AdminHandler {
	return &AdminHandler{users: users, analytics: analytics}
}

// Users handles GET /api/admin/users.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	limit, offset := pageParams(r)
	users, err := h.users.List(r.Context(), limit, offset)
	if err != nil {
		slog.Error("user list failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "list_failed"})
		return
	}
	if users == nil {
		users = []*model.User{}
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"users": users})
}

type banRequest struct {
	Banned bool `json:"banned"`
}

// Ban handles PATCH /api/admin/users/{id}/ban.
func (h *AdminHandler) Ban(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := chi.URLParam(r, "id")

	var req banRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	if err := h.users.SetBanned(r.Context(), id, req.Banned); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("ban update failed", "error", err, "user_id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "update_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

type roleRequest struct {
	Role string `json:"role"`
}

// Role handles PATCH /api/admin/users/{id}/role.
func (h *AdminHandler) Role(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := chi.URLParam(r, "id")

	var req roleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	if err := h.users.SetRole(r.Context(), id, req.Role); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_role"})
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("role update failed", "error", err, "user_id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "update_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// Analytics handles GET /api/admin/analytics.
func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	report, err := h.analytics.Report(r.Context())
	if err != nil {
		slog.Error("analytics report failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "report_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(report)
}
