// Package cart holds client-side cart state as an explicit, serializable
// store with reducer-style transitions. Two lines with the same composite
// identity (phone, color, storage, RAM) are always merged, never
// duplicated, and a line's discount percentage is frozen when it is added.
package cart

import (
	"sync"

	"phone-kart/internal/model"
	"phone-kart/internal/pricing"

	"github.com/shopspring/decimal"
)

// Shipping fee schedule: flat fee, waived above the free-shipping
// threshold.
var (
	flatShippingFee       = decimal.NewFromInt(15)
	freeShippingThreshold = decimal.NewFromInt(500)
)

// CompositeID uniquely identifies a cart line.
type CompositeID struct {
	PhoneID string
	Color   string
	Storage string
	RAM     string
}

// LineItem is one cart line: a phone snapshot plus the chosen
// configuration. DiscountPercentage is captured at add time; later catalog
// changes do not alter it.
type LineItem struct {
	PhoneID            string
	Name               string
	Image              string
	BasePrice          decimal.Decimal
	DiscountPercentage int
	SelectedColor      string
	SelectedStorage    string
	SelectedRAM        string
	StorageOptions     []string
	RAMOptions         []string
	Quantity           int
}

// Key returns the line's composite identity.
func (li LineItem) Key() CompositeID {
	return CompositeID{
		PhoneID: li.PhoneID,
		Color:   li.SelectedColor,
		Storage: li.SelectedStorage,
		RAM:     li.SelectedRAM,
	}
}

// UnitPrice returns the discounted configured price of one unit.
func (li LineItem) UnitPrice() decimal.Decimal {
	return pricing.ConfiguredPrice(li.BasePrice, li.DiscountPercentage,
		li.StorageOptions, li.SelectedStorage, li.RAMOptions, li.SelectedRAM)
}

// OriginalUnitPrice returns the pre-discount configured price of one unit.
func (li LineItem) OriginalUnitPrice() decimal.Decimal {
	return pricing.OriginalConfiguredPrice(li.BasePrice,
		li.StorageOptions, li.SelectedStorage, li.RAMOptions, li.SelectedRAM)
}

// Store owns the cart state. Transitions go through methods; there are no
// ambient globals. The mutex lets an embedder share one store between a UI
// goroutine and a checkout flow.
type Store struct {
	mu     sync.Mutex
	items  map[CompositeID]*LineItem
	order  []CompositeID
	isOpen bool
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{
		items: make(map[CompositeID]*LineItem),
	}
}

// Add inserts a line or, when a line with the same composite identity
// already exists, merges by summing quantities. The existing line's frozen
// discount wins on merge.
func (s *Store) Add(item LineItem) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := item.Key()
	if existing, ok := s.items[key]; ok {
		existing.Quantity += item.Quantity
		return
	}

	li := item
	s.items[key] = &li
	s.order = append(s.order, key)
}

// UpdateQuantity sets a line's quantity. A quantity of zero or less
// removes the line.
func (s *Store) UpdateQuantity(key CompositeID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[key]
	if !ok {
		return
	}
	if quantity <= 0 {
		s.removeLocked(key)
		return
	}
	item.Quantity = quantity
}

// UpdateConfiguration changes a line's selected color/storage/RAM. The
// line is re-keyed under its new composite identity; if a line already
// exists there, the two are merged.
func (s *Store) UpdateConfiguration(key CompositeID, color, storage, ram string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[key]
	if !ok {
		return
	}

	s.removeLocked(key)

	item.SelectedColor = color
	item.SelectedStorage = storage
	item.SelectedRAM = ram

	newKey := item.Key()
	if existing, ok := s.items[newKey]; ok {
		existing.Quantity += item.Quantity
		return
	}
	s.items[newKey] = item
	s.order = append(s.order, newKey)
}

// Remove deletes a line from the cart.
func (s *Store) Remove(key CompositeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(key)
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[CompositeID]*LineItem)
	s.order = nil
}

// SetOpen records whether the cart drawer is open.
func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = open
}

// IsOpen reports whether the cart drawer is open.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// Items returns the cart lines in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]LineItem, 0, len(s.order))
	for _, key := range s.order {
		items = append(items, *s.items[key])
	}
	return items
}

// ItemCount returns the total quantity across all lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Subtotal returns the discounted total of all lines, rounded to cents.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, key := range s.order {
		item := s.items[key]
		total = total.Add(pricing.Round2(item.UnitPrice()).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// ShippingFee returns the shipping fee for the current subtotal.
func (s *Store) ShippingFee() decimal.Decimal {
	if s.Subtotal().GreaterThanOrEqual(freeShippingThreshold) {
		return decimal.Zero
	}
	if len(s.Items()) == 0 {
		return decimal.Zero
	}
	return flatShippingFee
}

// Snapshot converts the cart lines into checkout order items.
func (s *Store) Snapshot() []model.OrderItemRequest {
	items := s.Items()
	out := make([]model.OrderItemRequest, len(items))
	for i, item := range items {
		out[i] = model.OrderItemRequest{
			PhoneID:         item.PhoneID,
			Quantity:        item.Quantity,
			SelectedColor:   item.SelectedColor,
			SelectedStorage: item.SelectedStorage,
			SelectedRAM:     item.SelectedRAM,
		}
	}
	return out
}

// removeLocked deletes a key from items and the insertion order. Callers
// must hold the mutex.
func (s *Store) removeLocked(key CompositeID) {
	if _, ok := s.items[key]; !ok {
		return
	}
	delete(s.items, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
