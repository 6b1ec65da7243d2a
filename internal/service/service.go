package service

import (
	"context"

	"phone-kart/internal/model"
)

// PhoneService defines operations for catalogue browsing.
type PhoneService interface {
	// GetAll retrieves all phones with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Phone, error)

	// GetByID retrieves a single phone with configured prices. An optional
	// campaign code applies a transient promotional discount to the
	// response; it is never persisted.
	GetByID(ctx context.Context, id, campaignCode string) (*model.PhoneDetail, error)
}

// CheckoutService is the server side of the two-phase checkout flow. Both
// phases recompute prices from the catalogue independently; prices the
// client sends are never trusted.
type CheckoutService interface {
	// CreatePaymentIntent validates the checkout request, computes the
	// authoritative total and creates a processor hold for it.
	CreatePaymentIntent(ctx context.Context, userID string, req *model.CheckoutRequest) (*model.PaymentIntentResponse, error)

	// CreateOrder re-validates and re-computes identically to
	// CreatePaymentIntent, then persists the order with the processor's
	// confirmation snapshot. A non-empty idempotency key makes retried
	// calls return the originally created order.
	CreateOrder(ctx context.Context, userID, idempotencyKey string, req *model.CreateOrderRequest) (*model.OrderResponse, error)

	// GetMyOrders retrieves the caller's orders with phone details.
	GetMyOrders(ctx context.Context, userID string) ([]model.OrderResponse, error)
}
