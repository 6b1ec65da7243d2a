package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Phone represents a phone in the catalogue. The first element of Storage
// and RAMSize is the baseline configuration included in the base price.
type Phone struct {
	ID                 string          `json:"id" db:"id"`
	Name               string          `json:"name" db:"name"`
	Brand              string          `json:"brand" db:"brand"`
	Image              string          `json:"image,omitempty" db:"image"`
	Price              decimal.Decimal `json:"price" db:"price"`
	DiscountPercentage int             `json:"discountPercentage" db:"discount_percentage"`
	Colors             []string        `json:"colors,omitempty" db:"colors"`
	Storage            []string        `json:"storage,omitempty" db:"storage"`
	RAMSize            []string        `json:"ramSize,omitempty" db:"ram_size"`
	CreatedAt          time.Time       `json:"createdAt" db:"created_at"`
}

// PhoneDetail is a Phone enriched with configured prices for the baseline
// selection. EffectiveDiscount reflects a transient campaign discount when
// one was supplied at navigation time; it is never persisted on the phone.
type PhoneDetail struct {
	Phone
	EffectiveDiscount int             `json:"effectiveDiscount"`
	ConfiguredPrice   decimal.Decimal `json:"configuredPrice"`
	OriginalPrice     decimal.Decimal `json:"originalPrice"`
}
