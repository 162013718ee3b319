package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/raselworshop/pet-adoption-server/pkg/stripe"
)

// PaymentService issues payment intents against the gateway. It owns no
// state; donations are only recorded once the client reports the completed
// transaction id, so the webhook is an audit trail rather than the ledger
// write path.
type PaymentService interface {
	// CreateIntent takes an amount in whole currency units and returns the
	// gateway client secret.
	CreateIntent(ctx context.Context, amount int) (string, error)
	// ProcessWebhook verifies the gateway signature and logs the event.
	ProcessWebhook(ctx context.Context, payload []byte, sigHeader string) error
}

type paymentService struct {
	client stripe.Client
}

// NewPaymentService creates a PaymentService.
func NewPaymentService(client stripe.Client) PaymentService {
	return &paymentService{client: client}
}

func (s *paymentService) CreateIntent(ctx context.Context, amount int) (string, error) {
	if amount <= 0 {
		return "", ErrInvalidInput
	}

	secret, err := s.client.CreatePaymentIntent(ctx, stripe.IntentParams{
		Amount:   amount * 100, // whole units to cents
		Currency: "usd",
	})
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return secret, nil
}

func (s *paymentService) ProcessWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	if err := s.client.VerifyWebhookSignature(payload, sigHeader); err != nil {
		return fmt.Errorf("webhook signature: %w", err)
	}

	var event struct {
		Type string `json:"type"`
		Data struct {
			Object struct {
				ID     string `json:"id"`
				Amount int    `json:"amount"`
			} `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("webhook payload: %w", err)
	}

	switch event.Type {
	case "payment_intent.succeeded":
		slog.Info("payment succeeded", "intent_id", event.Data.Object.ID, "amount", event.Data.Object.Amount)
	case "payment_intent.payment_failed":
		slog.Warn("payment failed", "intent_id", event.Data.Object.ID)
	}
	return nil
}
