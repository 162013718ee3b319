package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/raselworshop/pet-adoption-server/internal/repository"
	"github.com/raselworshop/pet-adoption-server/internal/service"
	"github.com/raselworshop/pet-adoption-server/pkg/auth"
)

// AuthHandler handles registration, login and account endpoints.
type AuthHandler struct {
	svc    service.AuthService
	tokens *auth.TokenService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc service.AuthService, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{svc: svc, tokens: tokens}
}

type registerRequest struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Password   string `json:"password"`
	ProviderID string `json:"provider_id"`
}

// Register handles POST /api/auth/register.
// Registration is idempotent: posting an identity that already exists
// returns the existing account with created=false.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	result, err := h.svc.Register(r.Context(), service.RegisterInput{
		Email:      req.Email,
		Name:       req.Name,
		Password:   req.Password,
		ProviderID: req.ProviderID,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_input"})
			return
		}
		slog.Error("register failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "register_failed"})
		return
	}

	token, err := h.tokens.Generate(auth.Identity{
		UserID: result.User.ID,
		Email:  result.User.Email,
		Role:   result.User.Role,
	})
	if err != nil {
		slog.Error("token generation failed", "error", err, "user_id", result.User.ID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "token_failed"})
		return
	}

	if result.Created {
		w.WriteHeader(http.StatusCreated)
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"token":   token,
		"user":    result.User,
		"created": result.Created,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	user, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "bad_credentials"})
			return
		}
		if errors.Is(err, service.ErrBanned) {
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "banned"})
			return
		}
		slog.Error("login failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "login_failed"})
		return
	}

	token, err := h.tokens.Generate(auth.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		slog.Error("token generation failed", "error", err, "user_id", user.ID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "token_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"token": token,
		"user":  user,
	})
}

// Me handles GET /api/me (auth required).
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	user, err := h.svc.GetUser(r.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("me lookup failed", "error", err, "user_id", id.UserID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "lookup_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"user": user})
}

type providerEmailRequest struct {
	ProviderID string `json:"provider_id"`
	Email      string `json:"email"`
}

// UpdateProviderEmail handles PUT /api/users/provider-email (auth required).
// Attaches a real email address to a provider-only account.
func (h *AuthHandler) UpdateProviderEmail(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req providerEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	if err := h.svc.UpdateProviderEmail(r.Context(), req.ProviderID, req.Email); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_input"})
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		if errors.Is(err, repository.ErrDuplicate) {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "email_taken"})
			return
		}
		slog.Error("provider email update failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "update_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
