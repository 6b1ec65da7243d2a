package promotion

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Source answers campaign discount lookups. Campaign files are loaded once
// at initialisation and are read-only afterwards, so no locking is needed.
type Source struct {
	sets   []CampaignSet
	logger zerolog.Logger
}

// NewSource loads every campaign file location with the given loader.
// Later files override earlier ones on code collisions.
func NewSource(ctx context.Context, loader Loader, locations []string, logger zerolog.Logger) (*Source, error) {
	logger = logger.With().Str("component", "campaign-source").Logger()

	sets := make([]CampaignSet, 0, len(locations))
	for _, loc := range locations {
		set, err := loader.Load(ctx, loc)
		if err != nil {
			return nil, fmt.Errorf("failed to load campaigns from %s: %w", loc, err)
		}
		sets = append(sets, set)
	}

	logger.Info().
		Int("file_count", len(sets)).
		Msg("campaign source initialised")

	return &Source{sets: sets, logger: logger}, nil
}

// NewEmptySource creates a source with no campaigns; every lookup misses.
func NewEmptySource(logger zerolog.Logger) *Source {
	return &Source{logger: logger.With().Str("component", "campaign-source").Logger()}
}

// Discount returns the discount percentage for a campaign code. Later
// loaded files win when the same code appears more than once.
func (s *Source) Discount(code string) (int, bool) {
	if code == "" {
		return 0, false
	}
	for i := len(s.sets) - 1; i >= 0; i-- {
		if pct, ok := s.sets[i].Discount(code); ok {
			return pct, true
		}
	}
	s.logger.Debug().Str("campaign", code).Msg("unknown campaign code")
	return 0, false
}
