// Package idempotency de-duplicates order creation on client retry. A
// client that re-sends the same Idempotency-Key receives the previously
// created order id instead of a duplicate order.
package idempotency

import "context"

// Store maps idempotency keys to previously produced results within a
// scope. Keys expire after the store's TTL.
type Store interface {
	// Recall returns the remembered value for the key, if any.
	Recall(ctx context.Context, scope, key string) (string, bool, error)

	// Remember records the value produced for the key.
	Remember(ctx context.Context, scope, key, value string) error
}
