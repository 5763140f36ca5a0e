package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

type staticTiers map[uint][]Tier

func (s staticTiers) TiersForEquipment(_ context.Context, equipmentID uint) ([]Tier, error) {
	return s[equipmentID], nil
}

func TestSelectTier(t *testing.T) {
	tiers := []Tier{
		{ID: 1, PeriodStart: 1, PeriodEnd: intPtr(7), PricePerDay: 100, DiscountPercent: 0},
		{ID: 2, PeriodStart: 8, PeriodEnd: nil, PricePerDay: 80, DiscountPercent: 10},
	}

	tests := []struct {
		name   string
		days   int
		wantID uint
	}{
		{"first day", 1, 1},
		{"inside first tier", 5, 1},
		{"upper bound inclusive", 7, 1},
		{"second tier start", 8, 2},
		{"unbounded upper", 100, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, err := SelectTier(1, tiers, tt.days)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, tier.ID)
		})
	}
}

func TestSelectTierPrefersGreatestStart(t *testing.T) {
	tiers := []Tier{
		{ID: 1, PeriodStart: 1, PricePerDay: 100},
		{ID: 2, PeriodStart: 10, PeriodEnd: intPtr(20), PricePerDay: 90},
		{ID: 3, PeriodStart: 5, PeriodEnd: intPtr(30), PricePerDay: 95},
	}

	tier, err := SelectTier(1, tiers, 12)
	require.NoError(t, err)
	assert.Equal(t, uint(2), tier.ID)

	tier, err = SelectTier(1, tiers, 25)
	require.NoError(t, err)
	assert.Equal(t, uint(3), tier.ID)
}

func TestSelectTierTieGoesToHigherID(t *testing.T) {
	tiers := []Tier{
		{ID: 7, PeriodStart: 1, PricePerDay: 120},
		{ID: 4, PeriodStart: 1, PricePerDay: 110},
	}
	tier, err := SelectTier(1, tiers, 3)
	require.NoError(t, err)
	assert.Equal(t, uint(7), tier.ID)
}

func TestSelectTierNoMatch(t *testing.T) {
	tiers := []Tier{{ID: 1, PeriodStart: 1, PeriodEnd: intPtr(7), PricePerDay: 100}}

	_, err := SelectTier(42, tiers, 8)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoPricingAvailable))

	var npe *NoPricingError
	require.ErrorAs(t, err, &npe)
	assert.Equal(t, uint(42), npe.EquipmentID)
	assert.Equal(t, 8, npe.Days)

	_, err = SelectTier(42, nil, 1)
	assert.ErrorIs(t, err, ErrNoPricingAvailable)
}

func TestSelectTierRejectsNonPositivePeriod(t *testing.T) {
	tiers := []Tier{{ID: 1, PeriodStart: 1, PricePerDay: 100}}
	for _, days := range []int{0, -3} {
		_, err := SelectTier(1, tiers, days)
		assert.ErrorIs(t, err, ErrValidation)
		assert.NotErrorIs(t, err, ErrNoPricingAvailable)
	}
}

func TestResolver(t *testing.T) {
	source := staticTiers{
		1: {
			{ID: 1, PeriodStart: 1, PeriodEnd: intPtr(29), PricePerDay: 350},
			{ID: 2, PeriodStart: 30, PricePerDay: 300, DiscountPercent: 15},
		},
	}
	r := NewResolver(source)

	tier, err := r.Resolve(context.Background(), 1, 30)
	require.NoError(t, err)
	assert.Equal(t, 300.0, tier.PricePerDay)
	assert.Equal(t, 15.0, tier.DiscountPercent)

	_, err = r.Resolve(context.Background(), 2, 5)
	assert.ErrorIs(t, err, ErrNoPricingAvailable)
}
