package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/raselworshop/pet-adoption-server/internal/service"
	"github.com/raselworshop/pet-adoption-server/pkg/stripe"
)

// ---------------------------------------------------------------------------
// Mock PaymentService
// ---------------------------------------------------------------------------

type mockPaymentService struct {
	createIntentFunc   func(ctx context.Context, amount int) (string, error)
	processWebhookFunc func(ctx context.Context, payload []byte, sigHeader string) error
}

func (m *mockPaymentService) CreateIntent(ctx context.Context, amount int) (string, error) {
	if m.createIntentFunc != nil {
		return m.createIntentFunc(ctx, amount)
	}
	return "pi_secret", nil
}
func (m *mockPaymentService) ProcessWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	if m.processWebhookFunc != nil {
		return m.processWebhookFunc(ctx, payload, sigHeader)
	}
	return nil
}

// ---------------------------------------------------------------------------
// POST /api/payments/create-intent tests
// ---------------------------------------------------------------------------

func TestPaymentHandler_CreateIntent_Success(t *testing.T) {
	svc := &mockPaymentService{
		createIntentFunc: func(ctx context.Context, amount int) (string, error) {
			if amount != 50 {
				t.Errorf("expected amount 50, got %d", amount)
			}
			return "pi_123_secret", nil
		},
	}
	h := NewPaymentHandler(svc)

	req := memberRequest(http.MethodPost, "/api/payments/create-intent", `{"amount":50}`)
	rec := httptest.NewRecorder()
	h.CreateIntent(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "pi_123_secret") {
		t.Errorf("expected client secret in response, got %s", rec.Body.String())
	}
}

func TestPaymentHandler_CreateIntent_InvalidAmount(t *testing.T) {
	svc := &mockPaymentService{
		createIntentFunc: func(ctx context.Context, amount int) (string, error) {
			return "", service.ErrInvalidInput
		},
	}
	h := NewPaymentHandler(svc)

	req := memberRequest(http.MethodPost, "/api/payments/create-intent", `{"amount":0}`)
	rec := httptest.NewRecorder()
	h.CreateIntent(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPaymentHandler_CreateIntent_GatewayNotConfigured(t *testing.T) {
	svc := &mockPaymentService{
		createIntentFunc: func(ctx context.Context, amount int) (string, error) {
			return "", stripe.ErrNotConfigured
		},
	}
	h := NewPaymentHandler(svc)

	req := memberRequest(http.MethodPost, "/api/payments/create-intent", `{"amount":50}`)
	rec := httptest.NewRecorder()
	h.CreateIntent(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "payments_unavailable") {
		t.Errorf("expected payments_unavailable error, got %s", rec.Body.String())
	}
}

// ---------------------------------------------------------------------------
// POST /api/payments/webhook tests
// ---------------------------------------------------------------------------

func TestPaymentHandler_Webhook_MissingSignature(t *testing.T) {
	h := NewPaymentHandler(&mockPaymentService{})

	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Webhook(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "missing_signature") {
		t.Errorf("expected missing_signature error, got %s", rec.Body.String())
	}
}

func TestPaymentHandler_Webhook_InvalidSignature(t *testing.T) {
	svc := &mockPaymentService{
		processWebhookFunc: func(ctx context.Context, payload []byte, sigHeader string) error {
			return errors.New("webhook signature: stripe: signature verification failed")
		},
	}
	h := NewPaymentHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader(`{}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=bad")
	rec := httptest.NewRecorder()
	h.Webhook(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestPaymentHandler_Webhook_Success(t *testing.T) {
	var gotPayload []byte
	var gotSig string
	svc := &mockPaymentService{
		processWebhookFunc: func(ctx context.Context, payload []byte, sigHeader string) error {
			gotPayload = payload
			gotSig = sigHeader
			return nil
		},
	}
	h := NewPaymentHandler(svc)

	body := `{"type":"payment_intent.succeeded"}`
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader(body))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	rec := httptest.NewRecorder()
	h.Webhook(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if string(gotPayload) != body {
		t.Errorf("expected raw payload to pass through, got %s", gotPayload)
	}
	if gotSig != "t=1,v1=abc" {
		t.Errorf("unexpected signature header %q", gotSig)
	}
	if !strings.Contains(rec.Body.String(), "received") {
		t.Errorf("expected received ack, got %s", rec.Body.String())
	}
}

func TestPaymentHandler_Webhook_ProcessingError(t *testing.T) {
	svc := &mockPaymentService{
		processWebhookFunc: func(ctx context.Context, payload []byte, sigHeader string) error {
			return errors.New("db error")
		},
	}
	h := NewPaymentHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader(`{}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	rec := httptest.NewRecorder()
	h.Webhook(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
