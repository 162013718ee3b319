// Package stripe provides a lightweight Stripe API client for the adoption
// backend. Uses raw HTTP calls (no SDK) to minimize external dependencies.
package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// IntentParams are the parameters for a PaymentIntent.
type IntentParams struct {
	Amount   int    // minor currency units (cents)
	Currency string // "usd"
}

// Client is the payment gateway interface consumed by the payment service.
type Client interface {
	// CreatePaymentIntent creates a card PaymentIntent and returns its
	// client secret for browser-side confirmation.
	CreatePaymentIntent(ctx context.Context, params IntentParams) (string, error)
	// VerifyWebhookSignature checks the Stripe-Signature header.
	VerifyWebhookSignature(payload []byte, sigHeader string) error
}

// RealClient is the raw HTTP implementation of Client.
type RealClient struct {
	SecretKey     string
	WebhookSecret string // whsec_...
	httpClient    *http.Client
	baseURL       string
}

// NewClient creates a RealClient.
func NewClient(secretKey, webhookSecret string) *RealClient {
	return &RealClient{
		SecretKey:     secretKey,
		WebhookSecret: webhookSecret,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		baseURL:       "https://api.stripe.com",
	}
}

// ErrNotConfigured is returned when no secret key is set.
var ErrNotConfigured = errors.New("stripe: not configured")

// CreatePaymentIntent creates a card PaymentIntent via the v1 API.
func (c *RealClient) CreatePaymentIntent(ctx context.Context, params IntentParams) (string, error) {
	if c.SecretKey == "" {
		return "", ErrNotConfigured
	}

	data := url.Values{}
	data.Set("amount", strconv.Itoa(params.Amount))
	data.Set("currency", params.Currency)
	data.Set("payment_method_types[]", "card")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/payment_intents",
		strings.NewReader(data.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.SecretKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var intent struct {
		ClientSecret string `json:"client_secret"`
		Error        *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return "", err
	}
	if intent.Error != nil {
		return "", fmt.Errorf("stripe create payment intent: %s", intent.Error.Message)
	}
	if intent.ClientSecret == "" {
		return "", errors.New("stripe create payment intent: empty client secret in response")
	}
	return intent.ClientSecret, nil
}

// VerifyWebhookSignature checks the Stripe-Signature header with HMAC-SHA256.
func (c *RealClient) VerifyWebhookSignature(payload []byte, sigHeader string) error {
	if c.WebhookSecret == "" {
		return ErrNotConfigured
	}

	var timestamp string
	var signatures []string
	for _, part := range strings.Split(sigHeader, ",") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return errors.New("stripe: invalid signature header format")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return errors.New("stripe: invalid timestamp in signature header")
	}
	if time.Since(time.Unix(ts, 0)) > 5*time.Minute {
		return errors.New("stripe: webhook timestamp too old (replay attack protection)")
	}

	mac := hmac.New(sha256.New, []byte(c.WebhookSecret))
	mac.Write([]byte(timestamp + "." + string(payload)))
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return errors.New("stripe: signature verification failed")
}
