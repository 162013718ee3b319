package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestCreatePaymentIntent_NotConfigured(t *testing.T) {
	c := NewClient("", "")
	_, err := c.CreatePaymentIntent(context.Background(), IntentParams{Amount: 5000, Currency: "usd"})
	if err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestCreatePaymentIntent_Success(t *testing.T) {
	var gotAmount, gotCurrency, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment_intents" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		user, _, ok := r.BasicAuth()
		if !ok || user != "sk_test_123" {
			t.Errorf("expected basic auth with secret key, got %q", user)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		gotAmount = r.PostForm.Get("amount")
		gotCurrency = r.PostForm.Get("currency")
		gotMethod = r.PostForm.Get("payment_method_types[]")
		fmt.Fprint(w, `{"id":"pi_1","client_secret":"pi_1_secret_abc"}`)
	}))
	defer srv.Close()

	c := NewClient("sk_test_123", "")
	c.baseURL = srv.URL

	secret, err := c.CreatePaymentIntent(context.Background(), IntentParams{Amount: 5000, Currency: "usd"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "pi_1_secret_abc" {
		t.Errorf("unexpected client secret %q", secret)
	}
	if gotAmount != "5000" || gotCurrency != "usd" || gotMethod != "card" {
		t.Errorf("unexpected form values: amount=%s currency=%s method=%s", gotAmount, gotCurrency, gotMethod)
	}
}

func TestCreatePaymentIntent_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"Amount must be at least 50 cents"}}`)
	}))
	defer srv.Close()

	c := NewClient("sk_test_123", "")
	c.baseURL = srv.URL

	_, err := c.CreatePaymentIntent(context.Background(), IntentParams{Amount: 1, Currency: "usd"})
	if err == nil || !strings.Contains(err.Error(), "Amount must be at least 50 cents") {
		t.Fatalf("expected stripe error message, got %v", err)
	}
}

func signPayload(secret string, ts int64, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(ts, 10) + "." + string(payload)))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature_Valid(t *testing.T) {
	c := NewClient("sk_test_123", "whsec_test")
	payload := []byte(`{"type":"payment_intent.succeeded"}`)
	ts := time.Now().Unix()
	header := fmt.Sprintf("t=%d,v1=%s", ts, signPayload("whsec_test", ts, payload))

	if err := c.VerifyWebhookSignature(payload, header); err != nil {
		t.Fatalf("expected valid signature, got %v", err)
	}
}

func TestVerifyWebhookSignature_WrongSecret(t *testing.T) {
	c := NewClient("sk_test_123", "whsec_test")
	payload := []byte(`{}`)
	ts := time.Now().Unix()
	header := fmt.Sprintf("t=%d,v1=%s", ts, signPayload("whsec_other", ts, payload))

	if err := c.VerifyWebhookSignature(payload, header); err == nil {
		t.Fatal("expected verification failure")
	}
}

func TestVerifyWebhookSignature_StaleTimestamp(t *testing.T) {
	c := NewClient("sk_test_123", "whsec_test")
	payload := []byte(`{}`)
	ts := time.Now().Add(-10 * time.Minute).Unix()
	header := fmt.Sprintf("t=%d,v1=%s", ts, signPayload("whsec_test", ts, payload))

	if err := c.VerifyWebhookSignature(payload, header); err == nil {
		t.Fatal("expected stale timestamp rejection")
	}
}

func TestVerifyWebhookSignature_MalformedHeader(t *testing.T) {
	c := NewClient("sk_test_123", "whsec_test")
	if err := c.VerifyWebhookSignature([]byte(`{}`), "garbage"); err == nil {
		t.Fatal("expected malformed header rejection")
	}
}
