package pricing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceLineGeneratorScenario(t *testing.T) {
	source := staticTiers{
		1: {
			{ID: 1, PeriodStart: 1, PeriodEnd: intPtr(29), PricePerDay: 350},
			{ID: 2, PeriodStart: 30, PricePerDay: 300, DiscountPercent: 15},
		},
	}
	engine := NewEngine(source)

	b, err := engine.Price(context.Background(), LineInput{
		EquipmentID:      1,
		Quantity:         2,
		RentalPeriodDays: 10,
		Fuel: &FuelParams{
			Mode:          FuelModeHourly,
			ConsumptionLH: 35.3,
			HoursPerDay:   8,
			PricePerLiter: 6.5,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 350.0, b.PricePerDay)
	assert.Equal(t, 7000.0, b.BaseCost)
	assert.Equal(t, 18356.0, b.Fuel.Cost)
	assert.Equal(t, 25356.0, b.Total)
}

func TestPriceLineAppliesDiscount(t *testing.T) {
	b, err := PriceLine(Snapshot{PricePerDay: 300, DiscountPercent: 15}, LineInput{Quantity: 1, RentalPeriodDays: 30})
	require.NoError(t, err)
	assert.Equal(t, 7650.0, b.BaseCost)
	assert.Equal(t, b.BaseCost, b.Total)
}

func TestPriceLineAllComponents(t *testing.T) {
	crew := CrewParams{DistanceKm: 100, Technicians: 1, RatePerTechnician: 150, RatePerKm: 1}
	b, err := PriceLine(Snapshot{PricePerDay: 100}, LineInput{
		Quantity:         3,
		RentalPeriodDays: 2,
		Installation:     &crew,
		Disassembly:      &crew,
		TravelService:    &TravelServiceParams{CrewParams: crew, Trips: 2},
		ServiceItems:     []float64{10, 20, 0, 0},
		Additional:       []Extra{{ID: 1, Price: 5}},
		Accessories:      []Extra{{ID: 2, Price: 50}},
	})
	require.NoError(t, err)
	assert.Equal(t, 600.0, b.BaseCost)
	assert.Equal(t, 250.0, b.InstallationCost)
	assert.Equal(t, 250.0, b.DisassemblyCost)
	assert.Equal(t, 500.0, b.TravelServiceCost)
	assert.Equal(t, 30.0, b.ServiceItemsCost)
	assert.Equal(t, 15.0, b.AdditionalCost)
	assert.Equal(t, 150.0, b.AccessoriesCost)
	assert.Equal(t, 1795.0, b.Total)
}

func TestPriceLineDisabledComponentsAreNotValidated(t *testing.T) {
	b, err := PriceLine(Snapshot{PricePerDay: 100}, LineInput{Quantity: 1, RentalPeriodDays: 1})
	require.NoError(t, err)
	assert.Equal(t, 100.0, b.Total)
}

func TestPriceLineRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		snap  Snapshot
		in    LineInput
		field string
	}{
		{"zero quantity", Snapshot{PricePerDay: 1}, LineInput{Quantity: 0, RentalPeriodDays: 1}, "quantity"},
		{"zero period", Snapshot{PricePerDay: 1}, LineInput{Quantity: 1, RentalPeriodDays: 0}, "rental_period_days"},
		{"discount above 100", Snapshot{PricePerDay: 1, DiscountPercent: 120}, LineInput{Quantity: 1, RentalPeriodDays: 1}, "discount_percent"},
		{"negative fuel", Snapshot{PricePerDay: 1}, LineInput{Quantity: 1, RentalPeriodDays: 1, Fuel: &FuelParams{PricePerLiter: -1}}, "fuel_price_per_liter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PriceLine(tt.snap, tt.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestPriceLineNoPricing(t *testing.T) {
	engine := NewEngine(staticTiers{1: {{ID: 1, PeriodStart: 1, PeriodEnd: intPtr(7), PricePerDay: 100}}})
	_, err := engine.Price(context.Background(), LineInput{EquipmentID: 1, Quantity: 1, RentalPeriodDays: 9})
	assert.ErrorIs(t, err, ErrNoPricingAvailable)
}

func TestPriceLineMonotonic(t *testing.T) {
	snap := Snapshot{PricePerDay: 123.45, DiscountPercent: 7.5}
	fuel := FuelParams{Mode: FuelModeHourly, ConsumptionLH: 3.3, HoursPerDay: 6, PricePerLiter: 6.89}

	prev := 0.0
	for q := 1; q <= 5; q++ {
		for d := 1; d <= 40; d += 3 {
			f := fuel
			b, err := PriceLine(snap, LineInput{Quantity: q, RentalPeriodDays: d, Fuel: &f})
			require.NoError(t, err)
			assert.GreaterOrEqual(t, b.Total, b.BaseCost)
			if q == 1 {
				assert.GreaterOrEqual(t, b.Total, prev)
				prev = b.Total
			}
		}
	}
}
