// Package promotion supplies transient campaign discounts. A campaign code
// maps to a discount percentage that applies at navigation time and is
// frozen into cart lines when a phone is added; it is never persisted on
// the phone itself.
package promotion

import "context"

// CampaignSet maps campaign codes to discount percentages.
type CampaignSet interface {
	// Discount returns the discount percentage for a campaign code.
	Discount(code string) (int, bool)

	// Size returns the number of campaigns in the set.
	Size() int
}

// Loader reads one gzipped campaign file (CODE:PCT lines) into a set.
type Loader interface {
	Load(ctx context.Context, location string) (CampaignSet, error)
}

// mapCampaignSet implements CampaignSet using a map for O(1) lookups.
type mapCampaignSet struct {
	campaigns map[string]int
}

// NewMapCampaignSet creates a new map-based campaign set.
func NewMapCampaignSet(capacity int) CampaignSet {
	return &mapCampaignSet{
		campaigns: make(map[string]int, capacity),
	}
}

// Discount returns the discount percentage for a campaign code.
func (s *mapCampaignSet) Discount(code string) (int, bool) {
	pct, exists := s.campaigns[code]
	return pct, exists
}

// Size returns the number of campaigns in the set.
func (s *mapCampaignSet) Size() int {
	return len(s.campaigns)
}

// Add records a campaign code with its discount percentage.
func (s *mapCampaignSet) Add(code string, pct int) {
	s.campaigns[code] = pct
}
