package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus values for the order lifecycle. Orders are created as
// pending and are immutable once written.
const OrderStatusPending = "pending"

// PaymentStatusSucceeded is the processor status that marks an order paid.
const PaymentStatusSucceeded = "succeeded"

// ShippingAddress is the delivery destination for an order. All four
// fields are required.
type ShippingAddress struct {
	Address    string `json:"address" db:"address"`
	City       string `json:"city" db:"city"`
	PostalCode string `json:"postalCode" db:"postal_code"`
	Country    string `json:"country" db:"country"`
}

// Complete reports whether every required address field is present.
func (a ShippingAddress) Complete() bool {
	return a.Address != "" && a.City != "" && a.PostalCode != "" && a.Country != ""
}

// PaymentResult is the opaque confirmation snapshot returned by the
// payment processor.
type PaymentResult struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	UpdateTime string `json:"updateTime,omitempty"`
}

// Succeeded reports whether the processor confirmed the charge.
func (p PaymentResult) Succeeded() bool {
	return p.Status == PaymentStatusSucceeded
}

// Order represents a customer order. Monetary fields are authoritative:
// they are recomputed server-side from the catalogue at creation time.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          string          `json:"userId" db:"user_id"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod" db:"payment_method"`
	ItemsPrice      decimal.Decimal `json:"itemsPrice" db:"items_price"`
	TaxPrice        decimal.Decimal `json:"taxPrice" db:"tax_price"`
	ShippingPrice   decimal.Decimal `json:"shippingPrice" db:"shipping_price"`
	TotalPrice      decimal.Decimal `json:"totalPrice" db:"total_price"`
	Status          string          `json:"status" db:"status"`
	IsPaid          bool            `json:"isPaid" db:"is_paid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty" db:"paid_at"`
	PaymentResult   PaymentResult   `json:"paymentResult"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
}

// OrderItem represents a priced line item in a persisted order.
type OrderItem struct {
	ID              uuid.UUID       `json:"-" db:"id"`
	OrderID         uuid.UUID       `json:"-" db:"order_id"`
	PhoneID         string          `json:"phoneId" db:"phone_id"`
	Quantity        int             `json:"quantity" db:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice" db:"unit_price"`
	SelectedColor   string          `json:"selectedColor,omitempty" db:"selected_color"`
	SelectedStorage string          `json:"selectedStorage,omitempty" db:"selected_storage"`
	SelectedRAM     string          `json:"selectedRam,omitempty" db:"selected_ram"`
}

// OrderItemRequest is a single cart line in a checkout request. Any price
// the client attaches is ignored; prices are recomputed from the catalogue.
type OrderItemRequest struct {
	PhoneID         string `json:"phoneId"`
	Quantity        int    `json:"quantity"`
	SelectedColor   string `json:"selectedColor,omitempty"`
	SelectedStorage string `json:"selectedStorage,omitempty"`
	SelectedRAM     string `json:"selectedRam,omitempty"`
}

// FlexPrice accepts a JSON number or numeric string. Clients have been
// observed sending the shipping price both ways; anything unparseable is
// recorded so the service can default it to zero with a warning.
type FlexPrice struct {
	Value   decimal.Decimal
	Invalid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexPrice) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		f.Invalid = true
		return nil
	}
	s = strings.Trim(s, `"`)
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		f.Invalid = true
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		f.Invalid = true
		return nil
	}
	f.Value = d
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f FlexPrice) MarshalJSON() ([]byte, error) {
	if f.Invalid {
		return json.Marshal(nil)
	}
	return json.Marshal(f.Value)
}

// CheckoutRequest is the shared payload of the two checkout phases:
// payment-intent creation and order creation.
type CheckoutRequest struct {
	OrderItems      []OrderItemRequest `json:"orderItems"`
	ShippingAddress ShippingAddress    `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	ShippingPrice   FlexPrice          `json:"shippingPrice"`
}

// CreateOrderRequest extends CheckoutRequest with the processor's
// confirmation snapshot.
type CreateOrderRequest struct {
	CheckoutRequest
	PaymentResult PaymentResult `json:"paymentResult"`
}

// PaymentIntentResponse carries the processor hold token back to the client.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// OrderResponse is an order with its items and phone details populated.
type OrderResponse struct {
	Order
	Items  []OrderItem `json:"orderItems"`
	Phones []Phone     `json:"phones"`
}
