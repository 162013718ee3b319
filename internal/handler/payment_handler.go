package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/raselworshop/pet-adoption-server/internal/service"
	"github.com/raselworshop/pet-adoption-server/pkg/stripe"
)

// PaymentHandler handles payment-intent creation and gateway callbacks.
type PaymentHandler struct {
	svc service.PaymentService
}

// NewPaymentHandler creates a PaymentHandler.
func NewPaymentHandler(svc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

type createIntentRequest struct {
	Amount int `json:"amount"`
}

// CreateIntent handles POST /api/payments/create-intent (auth required).
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req createIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	clientSecret, err := h.svc.CreateIntent(r.Context(), req.Amount)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_amount"})
			return
		}
		if errors.Is(err, stripe.ErrNotConfigured) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "payments_unavailable"})
			return
		}
		slog.Error("payment intent failed", "error", err, "amount", req.Amount)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "intent_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]string{"client_secret": clientSecret})
}

// Webhook handles POST /api/payments/webhook. The route is public; the
// signature header is the authentication.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	sigHeader := r.Header.Get("Stripe-Signature")
	if sigHeader == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "missing_signature"})
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "read_body_failed"})
		return
	}

	if err := h.svc.ProcessWebhook(r.Context(), payload, sigHeader); err != nil {
		if strings.Contains(err.Error(), "signature") {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "signature_verification_failed"})
			return
		}
		slog.Error("webhook processing failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "webhook_processing_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]bool{"received": true})
}
