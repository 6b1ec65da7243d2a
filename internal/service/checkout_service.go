package service

import (
	"context"
	"fmt"
	"time"

	"phone-kart/internal/idempotency"
	"phone-kart/internal/model"
	"phone-kart/internal/payment"
	"phone-kart/internal/pricing"
	"phone-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Fixed tax rate applied to the items subtotal.
var taxRate = decimal.NewFromFloat(0.13)

const idempotencyScopeOrder = "order"

// checkoutService implements CheckoutService.
type checkoutService struct {
	orderRepo repository.OrderRepository
	phoneRepo repository.PhoneRepository
	processor payment.Processor
	idemStore idempotency.Store // nil disables duplicate-order protection
	currency  string
	logger    zerolog.Logger
}

// NewCheckoutService creates a new checkout service. idemStore may be nil.
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	phoneRepo repository.PhoneRepository,
	processor payment.Processor,
	idemStore idempotency.Store,
	currency string,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		orderRepo: orderRepo,
		phoneRepo: phoneRepo,
		processor: processor,
		idemStore: idemStore,
		currency:  currency,
		logger:    logger.With().Str("service", "checkout").Logger(),
	}
}

// totals holds the authoritative monetary breakdown of a checkout request.
type totals struct {
	Items    []model.OrderItem
	Shipping decimal.Decimal
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// CreatePaymentIntent validates the request, computes the authoritative
// total and creates a processor hold for it.
func (s *checkoutService) CreatePaymentIntent(ctx context.Context, userID string, req *model.CheckoutRequest) (*model.PaymentIntentResponse, error) {
	t, err := s.priceCheckout(ctx, req)
	if err != nil {
		return nil, err
	}

	amount := t.Total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	intent, err := s.processor.CreateIntent(ctx, amount, s.currency, map[string]string{"userId": userID})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Int64("amount", amount).
			Msg("failed to create payment intent")
		return nil, model.WrapDomainError(model.ErrCodeProcessor, "Payment gateway error", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("intent_id", intent.ID).
		Str("total", t.Total.StringFixed(2)).
		Msg("payment intent created")

	return &model.PaymentIntentResponse{ClientSecret: intent.ClientSecret}, nil
}

// CreateOrder re-validates and re-computes the totals, then persists the
// order with the processor's confirmation snapshot.
func (s *checkoutService) CreateOrder(ctx context.Context, userID, idempotencyKey string, req *model.CreateOrderRequest) (*model.OrderResponse, error) {
	if resp, ok := s.recallOrder(ctx, userID, idempotencyKey); ok {
		return resp, nil
	}

	t, err := s.priceCheckout(ctx, &req.CheckoutRequest)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &model.Order{
		ID:              uuid.New(),
		UserID:          userID,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      t.Subtotal,
		TaxPrice:        t.Tax,
		ShippingPrice:   t.Shipping,
		TotalPrice:      t.Total,
		Status:          model.OrderStatusPending,
		IsPaid:          req.PaymentResult.Succeeded(),
		PaymentResult:   req.PaymentResult,
		CreatedAt:       now,
	}
	if order.IsPaid {
		order.PaidAt = &now
	}

	for i := range t.Items {
		t.Items[i].ID = uuid.New()
		t.Items[i].OrderID = order.ID
	}

	if err := s.persistOrder(ctx, order, t.Items); err != nil {
		// The charge may already be captured: log everything an operator
		// needs to reconcile manually.
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Str("order_id", order.ID.String()).
			Str("payment_intent_id", req.PaymentResult.ID).
			Str("payment_status", req.PaymentResult.Status).
			Str("total", t.Total.StringFixed(2)).
			Msg("order write failed after payment step")
		return nil, model.WrapDomainError(model.ErrCodePersistence,
			"Order could not be recorded; do not re-pay, verify your order status first", err)
	}

	s.rememberOrder(ctx, userID, idempotencyKey, order.ID)

	phones, err := s.phonesForItems(ctx, t.Items)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to retrieve phone details")
		return nil, fmt.Errorf("failed to retrieve phone details: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID).
		Int("item_count", len(t.Items)).
		Bool("is_paid", order.IsPaid).
		Msg("order created successfully")

	return &model.OrderResponse{Order: *order, Items: t.Items, Phones: phones}, nil
}

// GetMyOrders retrieves the caller's orders with phone details populated.
func (s *checkoutService) GetMyOrders(ctx context.Context, userID string) ([]model.OrderResponse, error) {
	orders, itemsByOrder, err := s.orderRepo.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get orders")
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	responses := make([]model.OrderResponse, 0, len(orders))
	for _, order := range orders {
		items := itemsByOrder[order.ID]
		phones, err := s.phonesForItems(ctx, items)
		if err != nil {
			s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to retrieve phone details")
			return nil, fmt.Errorf("failed to retrieve phone details: %w", err)
		}
		responses = append(responses, model.OrderResponse{Order: order, Items: items, Phones: phones})
	}

	return responses, nil
}

// priceCheckout validates a checkout request and computes its totals from
// the current catalogue. Client-supplied prices are never consulted.
func (s *checkoutService) priceCheckout(ctx context.Context, req *model.CheckoutRequest) (*totals, error) {
	if req == nil || len(req.OrderItems) == 0 {
		return nil, model.ErrNoOrderItems
	}
	if !req.ShippingAddress.Complete() {
		return nil, model.ErrInvalidShippingAddr
	}
	if req.PaymentMethod == "" {
		return nil, model.ErrPaymentMethodRequired
	}

	shipping := req.ShippingPrice.Value
	if req.ShippingPrice.Invalid {
		s.logger.Warn().Msg("invalid shipping price, defaulting to 0")
		shipping = decimal.Zero
	}

	ids := make([]string, len(req.OrderItems))
	for i, item := range req.OrderItems {
		if item.PhoneID == "" {
			return nil, model.NewDomainError(model.ErrCodeValidation,
				fmt.Sprintf("Missing phone ID for item %d", i))
		}
		if item.Quantity < 1 {
			s.logger.Warn().
				Str("phone_id", item.PhoneID).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return nil, model.ErrInvalidQuantity
		}
		ids[i] = item.PhoneID
	}

	phones, err := s.phoneRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to look up phones: %w", err)
	}

	phoneByID := make(map[string]model.Phone, len(phones))
	for _, p := range phones {
		phoneByID[p.ID] = p
	}

	subtotal := decimal.Zero
	items := make([]model.OrderItem, len(req.OrderItems))
	for i, item := range req.OrderItems {
		phone, ok := phoneByID[item.PhoneID]
		if !ok {
			s.logger.Warn().Str("phone_id", item.PhoneID).Msg("phone not found")
			return nil, model.ErrPhoneNotFound
		}

		unit := pricing.Round2(pricing.ConfiguredPrice(
			phone.Price, phone.DiscountPercentage,
			phone.Storage, item.SelectedStorage,
			phone.RAMSize, item.SelectedRAM,
		))

		items[i] = model.OrderItem{
			PhoneID:         item.PhoneID,
			Quantity:        item.Quantity,
			UnitPrice:       unit,
			SelectedColor:   item.SelectedColor,
			SelectedStorage: item.SelectedStorage,
			SelectedRAM:     item.SelectedRAM,
		}
		subtotal = subtotal.Add(unit.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	tax := pricing.Round2(subtotal.Mul(taxRate))

	return &totals{
		Items:    items,
		Shipping: shipping,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax).Add(shipping),
	}, nil
}

// persistOrder writes the order and its items in a single transaction.
func (s *checkoutService) persistOrder(ctx context.Context, order *model.Order, items []model.OrderItem) (err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return err
	}
	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// recallOrder returns a previously created order for the idempotency key,
// if one exists.
func (s *checkoutService) recallOrder(ctx context.Context, userID, key string) (*model.OrderResponse, bool) {
	if s.idemStore == nil || key == "" {
		return nil, false
	}

	val, found, err := s.idemStore.Recall(ctx, idempotencyScopeOrder, userID+":"+key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed")
		return nil, false
	}
	if !found {
		return nil, false
	}

	orderID, err := uuid.Parse(val)
	if err != nil {
		return nil, false
	}

	order, items, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil || order == nil {
		return nil, false
	}

	phones, err := s.phonesForItems(ctx, items)
	if err != nil {
		return nil, false
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("idempotency_key", key).
		Msg("returning existing order for idempotency key")

	return &model.OrderResponse{Order: *order, Items: items, Phones: phones}, true
}

// rememberOrder records the order id for the idempotency key. Failures are
// logged only; the order itself was created.
func (s *checkoutService) rememberOrder(ctx context.Context, userID, key string, orderID uuid.UUID) {
	if s.idemStore == nil || key == "" {
		return
	}
	if err := s.idemStore.Remember(ctx, idempotencyScopeOrder, userID+":"+key, orderID.String()); err != nil {
		s.logger.Warn().
			Err(err).
			Str("idempotency_key", key).
			Str("order_id", orderID.String()).
			Msg("failed to record idempotency key")
	}
}

// phonesForItems fetches the phone details referenced by order items.
func (s *checkoutService) phonesForItems(ctx context.Context, items []model.OrderItem) ([]model.Phone, error) {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.PhoneID
	}
	return s.phoneRepo.GetByIDs(ctx, ids)
}
