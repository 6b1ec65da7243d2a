package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripeClient_CreateIntent(t *testing.T) {
	var gotForm map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/payment_intents", r.URL.Path)
		require.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"amount":           r.PostForm.Get("amount"),
			"currency":         r.PostForm.Get("currency"),
			"metadata[userId]": r.PostForm.Get("metadata[userId]"),
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","client_secret":"pi_123_secret_abc","status":"requires_payment_method"}`))
	}))
	defer server.Close()

	client := NewStripeClient(server.URL, "sk_test_123", 5*time.Second, zerolog.Nop())

	intent, err := client.CreateIntent(context.Background(), 113000, "cad", map[string]string{"userId": "user-1"})
	require.NoError(t, err)

	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret_abc", intent.ClientSecret)
	assert.Equal(t, "113000", gotForm["amount"])
	assert.Equal(t, "cad", gotForm["currency"])
	assert.Equal(t, "user-1", gotForm["metadata[userId]"])
}

func TestStripeClient_CreateIntent_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"type":"card_error","message":"Your card was declined."}}`))
	}))
	defer server.Close()

	client := NewStripeClient(server.URL, "sk_test_123", 5*time.Second, zerolog.Nop())

	_, err := client.CreateIntent(context.Background(), 1000, "cad", nil)
	require.Error(t, err)
	// Processor message is surfaced verbatim.
	assert.Equal(t, "Your card was declined.", err.Error())
}

func TestStripeClient_ConfirmIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payment_intents/pi_123/confirm", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "pi_123_secret_abc", r.PostForm.Get("client_secret"))
		assert.Equal(t, "4242424242424242", r.PostForm.Get("payment_method_data[card][number]"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","status":"succeeded","created":1700000000}`))
	}))
	defer server.Close()

	client := NewStripeClient(server.URL, "sk_test_123", 5*time.Second, zerolog.Nop())

	result, err := client.ConfirmIntent(context.Background(), "pi_123_secret_abc",
		CardDetails{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123"},
		BillingDetails{Name: "Test User"})
	require.NoError(t, err)

	assert.Equal(t, "pi_123", result.ID)
	assert.Equal(t, "succeeded", result.Status)
	assert.True(t, result.Succeeded())
	assert.NotEmpty(t, result.UpdateTime)
}

func TestStripeClient_ConfirmIntent_MalformedSecret(t *testing.T) {
	client := NewStripeClient("http://localhost:1", "sk", time.Second, zerolog.Nop())

	_, err := client.ConfirmIntent(context.Background(), "not-a-secret", CardDetails{}, BillingDetails{})
	require.Error(t, err)
}

func TestStripeClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewStripeClient(server.URL, "sk_test_123", 20*time.Millisecond, zerolog.Nop())

	_, err := client.CreateIntent(context.Background(), 1000, "cad", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment gateway unreachable")
}

func TestIntentIDFromClientSecret(t *testing.T) {
	assert.Equal(t, "pi_123", IntentIDFromClientSecret("pi_123_secret_abc"))
	assert.Empty(t, IntentIDFromClientSecret("garbage"))
	assert.Empty(t, IntentIDFromClientSecret("_secret_abc"))
}
