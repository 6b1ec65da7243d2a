package service

import (
	"context"
	"fmt"

	"phone-kart/internal/model"
	"phone-kart/internal/pricing"
	"phone-kart/internal/promotion"
	"phone-kart/internal/repository"

	"github.com/rs/zerolog"
)

// phoneService implements PhoneService.
type phoneService struct {
	phoneRepo repository.PhoneRepository
	campaigns *promotion.Source
	logger    zerolog.Logger
}

// NewPhoneService creates a new phone service.
func NewPhoneService(phoneRepo repository.PhoneRepository, campaigns *promotion.Source, logger zerolog.Logger) PhoneService {
	return &phoneService{
		phoneRepo: phoneRepo,
		campaigns: campaigns,
		logger:    logger.With().Str("service", "phone").Logger(),
	}
}

// GetAll retrieves all phones with pagination.
func (s *phoneService) GetAll(ctx context.Context, limit, offset int) ([]model.Phone, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	phones, err := s.phoneRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to get all phones")
		return nil, fmt.Errorf("failed to get phones: %w", err)
	}

	s.logger.Debug().
		Int("count", len(phones)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved phones")

	return phones, nil
}

// GetByID retrieves a single phone with configured baseline prices. A
// known campaign code overrides the phone's own discount for this response
// only.
func (s *phoneService) GetByID(ctx context.Context, id, campaignCode string) (*model.PhoneDetail, error) {
	if id == "" {
		s.logger.Warn().Msg("phone ID is empty")
		return nil, model.ErrPhoneNotFound
	}

	phone, err := s.phoneRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("phone_id", id).Msg("failed to get phone by ID")
		return nil, fmt.Errorf("failed to get phone: %w", err)
	}

	if phone == nil {
		return nil, model.ErrPhoneNotFound
	}

	discount := phone.DiscountPercentage
	if campaignCode != "" {
		if pct, ok := s.campaigns.Discount(campaignCode); ok {
			s.logger.Debug().
				Str("phone_id", id).
				Str("campaign", campaignCode).
				Int("discount", pct).
				Msg("applying campaign discount")
			discount = pct
		}
	}

	baselineStorage := first(phone.Storage)
	baselineRAM := first(phone.RAMSize)

	detail := &model.PhoneDetail{
		Phone:             *phone,
		EffectiveDiscount: discount,
		ConfiguredPrice: pricing.Round2(pricing.ConfiguredPrice(
			phone.Price, discount, phone.Storage, baselineStorage, phone.RAMSize, baselineRAM)),
		OriginalPrice: pricing.Round2(pricing.OriginalConfiguredPrice(
			phone.Price, phone.Storage, baselineStorage, phone.RAMSize, baselineRAM)),
	}

	return detail, nil
}

func first(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[0]
}
