// Package checkout drives the two-phase checkout of a cart: price and
// create a processor hold, confirm the charge, then persist the order. A
// small state machine guards the step ordering so a confirmation can never
// run without a hold and an order can never be written twice.
package checkout

import "fmt"

// Status is the position of a checkout session in its lifecycle.
type Status string

const (
	// StatusDraft is a session with a priced cart and no processor hold.
	StatusDraft Status = "DRAFT"

	// StatusIntentCreated means the processor holds the authoritative
	// total and returned a client secret.
	StatusIntentCreated Status = "INTENT_CREATED"

	// StatusConfirmed means the processor accepted the charge.
	StatusConfirmed Status = "CONFIRMED"

	// StatusOrderPersisted is the terminal success state.
	StatusOrderPersisted Status = "ORDER_PERSISTED"

	// StatusFailed means the order write failed after the payment step.
	// The charge may stand; the session must not be retried blindly.
	StatusFailed Status = "FAILED"

	// StatusAbandoned means the customer walked away before persisting.
	StatusAbandoned Status = "ABANDONED"
)

// transitions lists the allowed next states for each status. A confirm
// failure keeps the session in INTENT_CREATED so the customer can retry
// with another card against the same hold.
var transitions = map[Status][]Status{
	StatusDraft:          {StatusIntentCreated, StatusAbandoned},
	StatusIntentCreated:  {StatusConfirmed, StatusAbandoned},
	StatusConfirmed:      {StatusOrderPersisted, StatusFailed},
	StatusOrderPersisted: {},
	StatusFailed:         {},
	StatusAbandoned:      {},
}

// CanTransition reports whether moving from one status to another is
// allowed.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether a status has no outgoing transitions.
func Terminal(s Status) bool {
	return len(transitions[s]) == 0
}

// ErrInvalidTransition is returned when a session is asked to move to a
// state its current status does not allow.
type ErrInvalidTransition struct {
	From, To Status
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid checkout transition %s -> %s", e.From, e.To)
}
