package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"phone-kart/internal/model"

	"github.com/rs/zerolog"
)

// stripeClient implements Processor against the Stripe PaymentIntents API.
type stripeClient struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
	logger     zerolog.Logger
}

// NewStripeClient creates a Stripe-backed processor. Every request is
// bounded by the given timeout.
func NewStripeClient(baseURL, secretKey string, timeout time.Duration, logger zerolog.Logger) Processor {
	return &stripeClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
		logger:     logger.With().Str("component", "stripe-client").Logger(),
	}
}

type stripeIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Created      int64  `json:"created"`
}

type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateIntent creates a payment intent for the given amount.
func (c *stripeClient) CreateIntent(ctx context.Context, amountMinorUnits int64, currency string, metadata map[string]string) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountMinorUnits, 10))
	form.Set("currency", currency)
	for k, v := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var intent stripeIntent
	if err := c.postForm(ctx, "/v1/payment_intents", form, &intent); err != nil {
		c.logger.Error().
			Err(err).
			Int64("amount", amountMinorUnits).
			Str("currency", currency).
			Msg("failed to create payment intent")
		return nil, err
	}

	c.logger.Info().
		Str("intent_id", intent.ID).
		Int64("amount", amountMinorUnits).
		Str("currency", currency).
		Msg("payment intent created")

	return &Intent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       intent.Status,
	}, nil
}

// ConfirmIntent confirms the intent referenced by the client secret.
func (c *stripeClient) ConfirmIntent(ctx context.Context, clientSecret string, card CardDetails, billing BillingDetails) (*model.PaymentResult, error) {
	intentID := IntentIDFromClientSecret(clientSecret)
	if intentID == "" {
		return nil, fmt.Errorf("malformed client secret")
	}

	form := url.Values{}
	form.Set("payment_method_data[type]", "card")
	form.Set("payment_method_data[card][number]", card.Number)
	form.Set("payment_method_data[card][exp_month]", strconv.Itoa(card.ExpMonth))
	form.Set("payment_method_data[card][exp_year]", strconv.Itoa(card.ExpYear))
	form.Set("payment_method_data[card][cvc]", card.CVC)
	if billing.Name != "" {
		form.Set("payment_method_data[billing_details][name]", billing.Name)
	}
	if billing.Email != "" {
		form.Set("payment_method_data[billing_details][email]", billing.Email)
	}
	form.Set("client_secret", clientSecret)

	var intent stripeIntent
	if err := c.postForm(ctx, "/v1/payment_intents/"+intentID+"/confirm", form, &intent); err != nil {
		c.logger.Warn().
			Err(err).
			Str("intent_id", intentID).
			Msg("payment confirmation failed")
		return nil, err
	}

	c.logger.Info().
		Str("intent_id", intent.ID).
		Str("status", intent.Status).
		Msg("payment intent confirmed")

	return &model.PaymentResult{
		ID:         intent.ID,
		Status:     intent.Status,
		UpdateTime: time.Unix(intent.Created, 0).UTC().Format(time.RFC3339),
	}, nil
}

// postForm sends a form-encoded request and decodes the JSON response into
// out. Processor-declared errors are returned with the processor's message
// verbatim.
func (c *stripeClient) postForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("payment gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var sErr stripeError
		if jsonErr := json.Unmarshal(body, &sErr); jsonErr == nil && sErr.Error.Message != "" {
			return fmt.Errorf("%s", sErr.Error.Message)
		}
		return fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}

	return nil
}

// IntentIDFromClientSecret extracts the intent identifier from a client
// secret of the form "pi_xxx_secret_yyy".
func IntentIDFromClientSecret(clientSecret string) string {
	idx := strings.Index(clientSecret, "_secret_")
	if idx <= 0 {
		return ""
	}
	return clientSecret[:idx]
}
