// Package payment talks to the external card processor. The checkout flow
// only depends on the Processor interface; the Stripe implementation lives
// alongside it.
package payment

import (
	"context"

	"phone-kart/internal/model"
)

// Intent is a processor-side payment hold. The client secret is the opaque
// token handed to the payer for confirmation.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

// CardDetails identifies the card used to confirm a hold.
type CardDetails struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
}

// BillingDetails accompany a confirmation.
type BillingDetails struct {
	Name  string
	Email string
}

// Processor creates and confirms payment holds. Implementations must bound
// every call with a timeout; a timed-out call is indistinguishable from a
// gateway failure and is surfaced as such.
type Processor interface {
	// CreateIntent reserves funds for the given amount in minor currency
	// units. Metadata is attached to the hold for reconciliation.
	CreateIntent(ctx context.Context, amountMinorUnits int64, currency string, metadata map[string]string) (*Intent, error)

	// ConfirmIntent confirms the hold identified by the client secret.
	// On processor-side decline the returned error carries the processor's
	// message verbatim.
	ConfirmIntent(ctx context.Context, clientSecret string, card CardDetails, billing BillingDetails) (*model.PaymentResult, error)
}
