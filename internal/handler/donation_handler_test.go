package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/raselworshop/pet-adoption-server/internal/model"
	"github.com/raselworshop/pet-adoption-server/internal/repository"
	"github.com/raselworshop/pet-adoption-server/internal/service"
	"github.com/raselworshop/pet-adoption-server/pkg/auth"
)

// ---------------------------------------------------------------------------
// Mock CampaignService
// ---------------------------------------------------------------------------

type mockCampaignService struct {
	createFunc         func(ctx context.Context, ownerEmail string, in service.CreateCampaignInput) (*model.Campaign, error)
	getFunc            func(ctx context.Context, id string) (*model.Campaign, error)
	listFunc           func(ctx context.Context, limit, offset int) (*model.CampaignListResult, error)
	randomFunc         func(ctx context.Context, limit int) ([]*model.Campaign, error)
	updateFunc         func(ctx context.Context, id, callerEmail string, isAdmin bool, patch model.CampaignPatch) error
	deleteFunc         func(ctx context.Context, id, callerEmail string, isAdmin bool) error
	setPausedFunc      func(ctx context.Context, id, callerEmail string, isAdmin bool, paused bool) error
	recordDonationFunc func(ctx context.Context, in service.RecordDonationInput) (*service.DonationResult, error)
	refundFunc         func(ctx context.Context, in service.RefundInput) (*repository.RefundResult, error)
}

func (m *mockCampaignService) Create(ctx context.Context, ownerEmail string, in service.CreateCampaignInput) (*model.Campaign, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, ownerEmail, in)
	}
	return &model.Campaign{}, nil
}
func (m *mockCampaignService) Get(ctx context.Context, id string) (*model.Campaign, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockCampaignService) List(ctx context.Context, limit, offset int) (*model.CampaignListResult, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, limit, offset)
	}
	return &model.CampaignListResult{}, nil
}
func (m *mockCampaignService) Random(ctx context.Context, limit int) ([]*model.Campaign, error) {
	if m.randomFunc != nil {
		return m.randomFunc(ctx, limit)
	}
	return nil, nil
}
func (m *mockCampaignService) Update(ctx context.Context, id, callerEmail string, isAdmin bool, patch model.CampaignPatch) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, callerEmail, isAdmin, patch)
	}
	return nil
}
func (m *mockCampaignService) Delete(ctx context.Context, id, callerEmail string, isAdmin bool) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, callerEmail, isAdmin)
	}
	return nil
}
func (m *mockCampaignService) SetPaused(ctx context.Context, id, callerEmail string, isAdmin bool, paused bool) error {
	if m.setPausedFunc != nil {
		return m.setPausedFunc(ctx, id, callerEmail, isAdmin, paused)
	}
	return nil
}
func (m *mockCampaignService) RecordDonation(ctx context.Context, in service.RecordDonationInput) (*service.DonationResult, error) {
	if m.recordDonationFunc != nil {
		return m.recordDonationFunc(ctx, in)
	}
	return &service.DonationResult{}, nil
}
func (m *mockCampaignService) Refund(ctx context.Context, in service.RefundInput) (*repository.RefundResult, error) {
	if m.refundFunc != nil {
		return m.refundFunc(ctx, in)
	}
	return &repository.RefundResult{}, nil
}

// helper: request carrying a member identity
func memberRequest(method, url, body string) *http.Request {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, url, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, url, nil)
	}
	r.Header.Set("Content-Type", "application/json")
	ctx := auth.WithIdentity(r.Context(), auth.Identity{
		UserID: "user-1",
		Email:  "alice@example.com",
		Role:   model.RoleMember,
	})
	return r.WithContext(ctx)
}

// ---------------------------------------------------------------------------
// POST /api/donations tests
// ---------------------------------------------------------------------------

func TestDonationHandler_Record_RequiresAuth(t *testing.T) {
	h := NewDonationHandler(&mockCampaignService{})
	req := httptest.NewRequest(http.MethodPost, "/api/donations", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Record(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestDonationHandler_Record_Success(t *testing.T) {
	var captured service.RecordDonationInput
	svc := &mockCampaignService{
		recordDonationFunc: func(ctx context.Context, in service.RecordDonationInput) (*service.DonationResult, error) {
			captured = in
			return &service.DonationResult{
				Donor: &model.Donor{Email: in.DonorEmail, Amount: in.Amount},
			}, nil
		},
	}
	h := NewDonationHandler(svc)

	body := `{"campaign_id":"c1","donor_name":"Alice","donor_email":"alice@example.com","amount":50,"transaction_id":"txn_1"}`
	req := memberRequest(http.MethodPost, "/api/donations", body)
	rec := httptest.NewRecorder()
	h.Record(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.UserEmail != "alice@example.com" {
		t.Errorf("expected caller email attached, got %q", captured.UserEmail)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if resp["already_recorded"] != false {
		t.Errorf("expected already_recorded=false, got %v", resp["already_recorded"])
	}
}

func TestDonationHandler_Record_ReplayReturns200(t *testing.T) {
	svc := &mockCampaignService{
		recordDonationFunc: func(ctx context.Context, in service.RecordDonationInput) (*service.DonationResult, error) {
			return &service.DonationResult{AlreadyRecorded: true}, nil
		},
	}
	h := NewDonationHandler(svc)

	body := `{"campaign_id":"c1","donor_email":"alice@example.com","amount":50,"transaction_id":"txn_1"}`
	req := memberRequest(http.MethodPost, "/api/donations", body)
	rec := httptest.NewRecorder()
	h.Record(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for replay, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if resp["already_recorded"] != true {
		t.Errorf("expected already_recorded=true, got %v", resp["already_recorded"])
	}
}

func TestDonationHandler_Record_PausedCampaign(t *testing.T) {
	svc := &mockCampaignService{
		recordDonationFunc: func(ctx context.Context, in service.RecordDonationInput) (*service.DonationResult, error) {
			return nil, repository.ErrCampaignPaused
		},
	}
	h := NewDonationHandler(svc)

	body := `{"campaign_id":"c1","donor_email":"a@b.com","amount":50,"transaction_id":"t"}`
	req := memberRequest(http.MethodPost, "/api/donations", body)
	rec := httptest.NewRecorder()
	h.Record(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestDonationHandler_Record_MissingCampaign(t *testing.T) {
	svc := &mockCampaignService{
		recordDonationFunc: func(ctx context.Context, in service.RecordDonationInput) (*service.DonationResult, error) {
			return nil, repository.ErrNotFound
		},
	}
	h := NewDonationHandler(svc)

	body := `{"campaign_id":"missing","donor_email":"a@b.com","amount":50,"transaction_id":"t"}`
	req := memberRequest(http.MethodPost, "/api/donations", body)
	rec := httptest.NewRecorder()
	h.Record(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// POST /api/donations/refund tests
// ---------------------------------------------------------------------------

func TestDonationHandler_Refund_UsesCallerEmail(t *testing.T) {
	var captured service.RefundInput
	svc := &mockCampaignService{
		refundFunc: func(ctx context.Context, in service.RefundInput) (*repository.RefundResult, error) {
			captured = in
			return &repository.RefundResult{Entries: 2, Amount: 80}, nil
		},
	}
	h := NewDonationHandler(svc)

	body := `{"campaign_id":"c1"}`
	req := memberRequest(http.MethodPost, "/api/donations/refund", body)
	rec := httptest.NewRecorder()
	h.Refund(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.DonorEmail != "alice@example.com" {
		t.Errorf("refund must target the caller's entries, got %q", captured.DonorEmail)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if resp["refunded_entries"].(float64) != 2 || resp["refunded_amount"].(float64) != 80 {
		t.Errorf("unexpected refund payload: %v", resp)
	}
}

func TestDonationHandler_Refund_NothingToRefund(t *testing.T) {
	svc := &mockCampaignService{
		refundFunc: func(ctx context.Context, in service.RefundInput) (*repository.RefundResult, error) {
			return nil, repository.ErrNotFound
		},
	}
	h := NewDonationHandler(svc)

	req := memberRequest(http.MethodPost, "/api/donations/refund", `{"campaign_id":"c1"}`)
	rec := httptest.NewRecorder()
	h.Refund(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
