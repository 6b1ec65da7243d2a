// Package pricing computes configured phone prices. All functions are
// pure: same inputs always yield the same outputs and nothing here ever
// returns an error. Malformed selections degrade to the baseline
// configuration instead of failing.
package pricing

import "github.com/shopspring/decimal"

// Upgrade surcharge schedule: every index step above the baseline (the
// first-listed option) adds a fixed fraction of the base price per step.
var (
	storageStepRate = decimal.NewFromFloat(0.10)
	ramStepRate     = decimal.NewFromFloat(0.05)
	hundred         = decimal.NewFromInt(100)
)

// ConfiguredPrice returns the discounted price of a phone for the given
// storage/RAM selection. The discount percentage is clamped to [0,100].
// Internal arithmetic keeps full precision; callers round at the
// presentation or order-pricing boundary.
func ConfiguredPrice(basePrice decimal.Decimal, discountPct int, storageOptions []string, selectedStorage string, ramOptions []string, selectedRAM string) decimal.Decimal {
	price := OriginalConfiguredPrice(basePrice, storageOptions, selectedStorage, ramOptions, selectedRAM)

	if discountPct <= 0 {
		return price
	}
	if discountPct > 100 {
		discountPct = 100
	}
	factor := hundred.Sub(decimal.NewFromInt(int64(discountPct))).Div(hundred)
	return price.Mul(factor)
}

// OriginalConfiguredPrice returns the pre-discount price for the given
// selection: base price plus upgrade surcharges. This is the struck-through
// reference price shown next to a discounted one.
func OriginalConfiguredPrice(basePrice decimal.Decimal, storageOptions []string, selectedStorage string, ramOptions []string, selectedRAM string) decimal.Decimal {
	surcharge := stepSurcharge(basePrice, storageOptions, selectedStorage, storageStepRate).
		Add(stepSurcharge(basePrice, ramOptions, selectedRAM, ramStepRate))
	return basePrice.Add(surcharge)
}

// stepSurcharge computes the surcharge for one option dimension. A
// selection that is absent, unknown, or the first-listed option carries no
// surcharge.
func stepSurcharge(basePrice decimal.Decimal, options []string, selected string, stepRate decimal.Decimal) decimal.Decimal {
	idx := optionIndex(options, selected)
	if idx <= 0 {
		return decimal.Zero
	}
	return basePrice.Mul(stepRate).Mul(decimal.NewFromInt(int64(idx)))
}

func optionIndex(options []string, selected string) int {
	if selected == "" {
		return 0
	}
	for i, opt := range options {
		if opt == selected {
			return i
		}
	}
	return 0
}

// Round2 rounds a price to 2 decimal places. Used only at presentation and
// order-pricing boundaries.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
