package service

import (
	"context"
	"errors"
	"testing"

	"phone-kart/internal/model"
	"phone-kart/internal/promotion"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stubCampaignLoader serves a fixed campaign set for any location.
type stubCampaignLoader struct {
	set promotion.CampaignSet
}

func (l *stubCampaignLoader) Load(ctx context.Context, location string) (promotion.CampaignSet, error) {
	return l.set, nil
}

func campaignSource(t *testing.T, campaigns map[string]int) *promotion.Source {
	t.Helper()
	set := promotion.NewMapCampaignSet(len(campaigns))
	adder, ok := set.(interface{ Add(code string, pct int) })
	require.True(t, ok)
	for code, pct := range campaigns {
		adder.Add(code, pct)
	}
	src, err := promotion.NewSource(context.Background(), &stubCampaignLoader{set: set}, []string{"stub"}, zerolog.Nop())
	require.NoError(t, err)
	return src
}

func TestPhoneServiceGetAll(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name           string
		limit, offset  int
		expectedLimit  int
		expectedOffset int
	}{
		{"defaults applied", 0, -5, 10, 0},
		{"limit clamped", 500, 0, 100, 0},
		{"passthrough", 25, 50, 25, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phoneRepo := new(MockPhoneRepository)
			phoneRepo.On("GetAll", ctx, tt.expectedLimit, tt.expectedOffset).
				Return([]model.Phone{testPhone("P1", 1000, 0)}, nil)

			svc := NewPhoneService(phoneRepo, promotion.NewEmptySource(zerolog.Nop()), zerolog.Nop())

			phones, err := svc.GetAll(ctx, tt.limit, tt.offset)
			require.NoError(t, err)
			assert.Len(t, phones, 1)
			phoneRepo.AssertExpectations(t)
		})
	}
}

func TestPhoneServiceGetAll_RepositoryError(t *testing.T) {
	ctx := context.Background()
	phoneRepo := new(MockPhoneRepository)
	phoneRepo.On("GetAll", ctx, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	svc := NewPhoneService(phoneRepo, promotion.NewEmptySource(zerolog.Nop()), zerolog.Nop())

	_, err := svc.GetAll(ctx, 10, 0)
	assert.Error(t, err)
}

func TestPhoneServiceGetByID(t *testing.T) {
	ctx := context.Background()
	phoneRepo := new(MockPhoneRepository)

	phone := testPhone("P1", 1000, 20)
	phoneRepo.On("GetByID", ctx, "P1").Return(&phone, nil)

	svc := NewPhoneService(phoneRepo, promotion.NewEmptySource(zerolog.Nop()), zerolog.Nop())

	detail, err := svc.GetByID(ctx, "P1", "")
	require.NoError(t, err)
	assert.Equal(t, 20, detail.EffectiveDiscount)
	assert.Equal(t, "800.00", detail.ConfiguredPrice.StringFixed(2))
	assert.Equal(t, "1000.00", detail.OriginalPrice.StringFixed(2))
}

func TestPhoneServiceGetByID_CampaignOverridesDiscount(t *testing.T) {
	ctx := context.Background()
	phoneRepo := new(MockPhoneRepository)

	phone := testPhone("P1", 1000, 10)
	phoneRepo.On("GetByID", ctx, "P1").Return(&phone, nil)

	svc := NewPhoneService(phoneRepo, campaignSource(t, map[string]int{"SUMMER30": 30}), zerolog.Nop())

	detail, err := svc.GetByID(ctx, "P1", "SUMMER30")
	require.NoError(t, err)
	assert.Equal(t, 30, detail.EffectiveDiscount)
	assert.Equal(t, "700.00", detail.ConfiguredPrice.StringFixed(2))
	// The catalogue row itself is untouched.
	assert.Equal(t, 10, detail.Phone.DiscountPercentage)
}

func TestPhoneServiceGetByID_UnknownCampaignKeepsPhoneDiscount(t *testing.T) {
	ctx := context.Background()
	phoneRepo := new(MockPhoneRepository)

	phone := testPhone("P1", 1000, 10)
	phoneRepo.On("GetByID", ctx, "P1").Return(&phone, nil)

	svc := NewPhoneService(phoneRepo, campaignSource(t, map[string]int{"SUMMER30": 30}), zerolog.Nop())

	detail, err := svc.GetByID(ctx, "P1", "NOPE")
	require.NoError(t, err)
	assert.Equal(t, 10, detail.EffectiveDiscount)
}

func TestPhoneServiceGetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	phoneRepo := new(MockPhoneRepository)
	phoneRepo.On("GetByID", ctx, "nope").Return(nil, nil)

	svc := NewPhoneService(phoneRepo, promotion.NewEmptySource(zerolog.Nop()), zerolog.Nop())

	_, err := svc.GetByID(ctx, "nope", "")
	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeNotFound, domainErr.Code)
}

func TestPhoneServiceGetByID_EmptyID(t *testing.T) {
	svc := NewPhoneService(new(MockPhoneRepository), promotion.NewEmptySource(zerolog.Nop()), zerolog.Nop())

	_, err := svc.GetByID(context.Background(), "", "")
	assert.Error(t, err)
}
