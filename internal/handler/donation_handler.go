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

// DonationHandler handles donation recording and refunds.
type DonationHandler struct {
	svc service.CampaignService
}

// NewDonationHandler creates a DonationHandler.
func NewDonationHandler(svc service.CampaignService) *DonationHandler {
	return &DonationHandler{svc: svc}
}

type recordDonationRequest struct {
	CampaignID    string `json:"campaign_id"`
	DonorName     string `json:"donor_name"`
	DonorEmail    string `json:"donor_email"`
	Amount        int    `json:"amount"`
	TransactionID string `json:"transaction_id"`
}

// Record handles POST /api/donations (auth required).
// Replaying a transaction id is not an error: the response carries
// already_recorded=true and the ledger is left untouched.
func (h *DonationHandler) Record(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	var req recordDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	result, err := h.svc.RecordDonation(r.Context(), service.RecordDonationInput{
		CampaignID:    req.CampaignID,
		DonorName:     req.DonorName,
		DonorEmail:    req.DonorEmail,
		UserEmail:     ident.Email,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_input"})
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "campaign_not_found"})
			return
		}
		if errors.Is(err, repository.ErrCampaignPaused) {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "campaign_paused"})
			return
		}
		slog.Error("donation record failed", "error", err, "campaign_id", req.CampaignID, "transaction_id", req.TransactionID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "record_failed"})
		return
	}

	if !result.AlreadyRecorded {
		w.WriteHeader(http.StatusCreated)
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"donor":            result.Donor,
		"already_recorded": result.AlreadyRecorded,
	})
}

type refundRequest struct {
	CampaignID    string `json:"campaign_id"`
	TransactionID string `json:"transaction_id"`
}

// Refund handles POST /api/donations/refund (auth required).
// Removes the caller's entries from the campaign ledger and decrements the
// total by the same amount. A transaction id narrows the refund to one entry.
func (h *DonationHandler) Refund(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	var req refundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	result, err := h.svc.Refund(r.Context(), service.RefundInput{
		CampaignID:    req.CampaignID,
		DonorEmail:    ident.Email,
		TransactionID: req.TransactionID,
	})
	if err != nil {
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
		slog.Error("refund failed", "error", err, "campaign_id", req.CampaignID, "donor", ident.Email)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "refund_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"refunded_entries": result.Entries,
		"refunded_amount":  result.Amount,
	})
}
