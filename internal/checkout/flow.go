package checkout

import (
	"context"

	"phone-kart/internal/cart"
	"phone-kart/internal/model"
	"phone-kart/internal/payment"
	"phone-kart/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Flow runs one checkout session over a cart. It is not safe for
// concurrent use; each session gets its own Flow.
type Flow struct {
	cart      *cart.Store
	svc       service.CheckoutService
	processor payment.Processor
	logger    zerolog.Logger

	userID       string
	status       Status
	request      model.CheckoutRequest
	clientSecret string
	result       *model.PaymentResult
	order        *model.OrderResponse
}

// NewFlow starts a checkout session for the cart's current contents. The
// cart is snapshotted once; later cart edits do not affect this session.
func NewFlow(c *cart.Store, svc service.CheckoutService, processor payment.Processor, userID string, addr model.ShippingAddress, paymentMethod string, logger zerolog.Logger) *Flow {
	return &Flow{
		cart:      c,
		svc:       svc,
		processor: processor,
		userID:    userID,
		status:    StatusDraft,
		request: model.CheckoutRequest{
			OrderItems:      c.Snapshot(),
			ShippingAddress: addr,
			PaymentMethod:   paymentMethod,
			ShippingPrice:   model.FlexPrice{Value: c.ShippingFee()},
		},
		logger: logger.With().Str("component", "checkout-flow").Str("user_id", userID).Logger(),
	}
}

// Status returns the session's current status.
func (f *Flow) Status() Status {
	return f.status
}

// Order returns the persisted order, or nil before ORDER_PERSISTED.
func (f *Flow) Order() *model.OrderResponse {
	return f.order
}

// CreateIntent prices the snapshotted cart server-side and places a
// processor hold for the total.
func (f *Flow) CreateIntent(ctx context.Context) error {
	if err := f.transition(StatusIntentCreated); err != nil {
		return err
	}

	resp, err := f.svc.CreatePaymentIntent(ctx, f.userID, &f.request)
	if err != nil {
		f.status = StatusDraft
		return err
	}

	f.clientSecret = resp.ClientSecret
	f.logger.Info().Msg("payment intent created")
	return nil
}

// Confirm submits the card to the processor against the existing hold. A
// declined or failed confirmation leaves the session in INTENT_CREATED so
// the customer can retry with a different card.
func (f *Flow) Confirm(ctx context.Context, card payment.CardDetails, billing payment.BillingDetails) error {
	if err := f.transition(StatusConfirmed); err != nil {
		return err
	}

	result, err := f.processor.ConfirmIntent(ctx, f.clientSecret, card, billing)
	if err != nil {
		f.status = StatusIntentCreated
		f.logger.Warn().Err(err).Msg("payment confirmation failed")
		return model.WrapDomainError(model.ErrCodeProcessor, "Payment confirmation failed", err)
	}

	f.result = result
	f.logger.Info().Str("payment_status", result.Status).Msg("payment confirmed")
	return nil
}

// Persist writes the order with the confirmation snapshot and empties the
// cart. A persistence failure is terminal for the session: the charge may
// stand, so the error is surfaced as-is for the operator to reconcile.
func (f *Flow) Persist(ctx context.Context) error {
	if err := f.transition(StatusOrderPersisted); err != nil {
		return err
	}

	req := &model.CreateOrderRequest{
		CheckoutRequest: f.request,
		PaymentResult:   *f.result,
	}

	order, err := f.svc.CreateOrder(ctx, f.userID, uuid.NewString(), req)
	if err != nil {
		f.status = StatusFailed
		return err
	}

	f.order = order
	f.cart.Clear()
	f.logger.Info().Str("order_id", order.ID.String()).Msg("checkout complete")
	return nil
}

// Abandon ends the session without an order. The cart is left intact.
func (f *Flow) Abandon() error {
	return f.transition(StatusAbandoned)
}

// transition moves the session to the target status, or fails without
// side effects when the move is not allowed.
func (f *Flow) transition(to Status) error {
	if !CanTransition(f.status, to) {
		return &ErrInvalidTransition{From: f.status, To: to}
	}
	f.status = to
	return nil
}
