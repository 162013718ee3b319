package service

import (
	"context"
	"errors"
	"testing"

	"github.com/raselworshop/pet-adoption-server/pkg/stripe"
)

type mockStripeClient struct {
	createIntentFunc  func(ctx context.Context, params stripe.IntentParams) (string, error)
	verifyWebhookFunc func(payload []byte, sigHeader string) error
}

func (m *mockStripeClient) CreatePaymentIntent(ctx context.Context, params stripe.IntentParams) (string, error) {
	if m.createIntentFunc != nil {
		return m.createIntentFunc(ctx, params)
	}
	return "", nil
}
func (m *mockStripeClient) VerifyWebhookSignature(payload []byte, sigHeader string) error {
	if m.verifyWebhookFunc != nil {
		return m.verifyWebhookFunc(payload, sigHeader)
	}
	return nil
}

func TestPaymentService_CreateIntent_RejectsNonPositiveAmount(t *testing.T) {
	svc := NewPaymentService(&mockStripeClient{})

	if _, err := svc.CreateIntent(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero, got %v", err)
	}
	if _, err := svc.CreateIntent(context.Background(), -5); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative, got %v", err)
	}
}

func TestPaymentService_CreateIntent_ConvertsToCents(t *testing.T) {
	var gotParams stripe.IntentParams
	client := &mockStripeClient{
		createIntentFunc: func(ctx context.Context, params stripe.IntentParams) (string, error) {
			gotParams = params
			return "pi_secret", nil
		},
	}
	svc := NewPaymentService(client)

	secret, err := svc.CreateIntent(context.Background(), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "pi_secret" {
		t.Errorf("unexpected secret %q", secret)
	}
	if gotParams.Amount != 5000 || gotParams.Currency != "usd" {
		t.Errorf("expected 5000 usd cents, got %+v", gotParams)
	}
}

func TestPaymentService_CreateIntent_WrapsGatewayError(t *testing.T) {
	client := &mockStripeClient{
		createIntentFunc: func(ctx context.Context, params stripe.IntentParams) (string, error) {
			return "", stripe.ErrNotConfigured
		},
	}
	svc := NewPaymentService(client)

	_, err := svc.CreateIntent(context.Background(), 50)
	if !errors.Is(err, stripe.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured in chain, got %v", err)
	}
}

func TestPaymentService_ProcessWebhook_RejectsBadSignature(t *testing.T) {
	client := &mockStripeClient{
		verifyWebhookFunc: func(payload []byte, sigHeader string) error {
			return errors.New("stripe: signature verification failed")
		},
	}
	svc := NewPaymentService(client)

	err := svc.ProcessWebhook(context.Background(), []byte(`{}`), "t=1,v1=bad")
	if err == nil {
		t.Fatal("expected error for bad signature, got nil")
	}
}

func TestPaymentService_ProcessWebhook_VerifiesBeforeParsing(t *testing.T) {
	verified := false
	client := &mockStripeClient{
		verifyWebhookFunc: func(payload []byte, sigHeader string) error {
			verified = true
			if sigHeader != "t=1,v1=abc" {
				t.Errorf("unexpected signature header %q", sigHeader)
			}
			return nil
		},
	}
	svc := NewPaymentService(client)

	payload := []byte(`{"type":"payment_intent.succeeded","data":{"object":{"id":"pi_1","amount":5000}}}`)
	if err := svc.ProcessWebhook(context.Background(), payload, "t=1,v1=abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !verified {
		t.Error("expected signature to be verified")
	}
}

func TestPaymentService_ProcessWebhook_RejectsMalformedPayload(t *testing.T) {
	svc := NewPaymentService(&mockStripeClient{})

	err := svc.ProcessWebhook(context.Background(), []byte("not json"), "t=1,v1=abc")
	if err == nil {
		t.Fatal("expected error for malformed payload, got nil")
	}
}

func TestPaymentService_ProcessWebhook_IgnoresUnknownEventType(t *testing.T) {
	svc := NewPaymentService(&mockStripeClient{})

	payload := []byte(`{"type":"charge.refunded","data":{"object":{"id":"ch_1"}}}`)
	if err := svc.ProcessWebhook(context.Background(), payload, "t=1,v1=abc"); err != nil {
		t.Fatalf("unexpected error for unknown event type: %v", err)
	}
}
