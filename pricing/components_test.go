package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuelCost(t *testing.T) {
	tests := []struct {
		name            string
		params          FuelParams
		days            int
		wantConsumption float64
		wantKm          float64
		wantCost        float64
	}{
		{
			name:            "hourly generator",
			params:          FuelParams{Mode: FuelModeHourly, ConsumptionLH: 35.3, HoursPerDay: 8, PricePerLiter: 6.5},
			days:            10,
			wantConsumption: 2824,
			wantCost:        18356,
		},
		{
			name:            "kilometers vehicle",
			params:          FuelParams{Mode: FuelModeKilometers, ConsumptionPer100km: 12, KilometersPerDay: 150, PricePerLiter: 6},
			days:            4,
			wantConsumption: 72,
			wantKm:          600,
			wantCost:        432,
		},
		{
			name:            "empty mode falls back to hourly",
			params:          FuelParams{ConsumptionLH: 2, HoursPerDay: 5, PricePerLiter: 7},
			days:            1,
			wantConsumption: 10,
			wantCost:        70,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := FuelCost(tt.params, tt.days)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantConsumption, res.TotalConsumption, 1e-9)
			assert.InDelta(t, tt.wantKm, res.TotalKilometers, 1e-9)
			assert.Equal(t, tt.wantCost, res.Cost)
		})
	}
}

func TestFuelCostValidation(t *testing.T) {
	_, err := FuelCost(FuelParams{Mode: FuelModeHourly, ConsumptionLH: -1, HoursPerDay: 8, PricePerLiter: 6}, 3)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "fuel_consumption_lh")

	_, err = FuelCost(FuelParams{Mode: "litres"}, 3)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "fuel_calculation_type")

	_, err = FuelCost(FuelParams{Mode: FuelModeKilometers}, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCrewCosts(t *testing.T) {
	p := CrewParams{DistanceKm: 120, Technicians: 2, RatePerTechnician: 150, RatePerKm: 1.15}

	c, err := InstallationCost(p)
	require.NoError(t, err)
	assert.Equal(t, 438.0, c)

	c, err = DisassemblyCost(p)
	require.NoError(t, err)
	assert.Equal(t, 438.0, c)

	c, err = TravelServiceCost(TravelServiceParams{CrewParams: p, Trips: 3})
	require.NoError(t, err)
	assert.Equal(t, 1314.0, c)
}

func TestCrewCostsValidation(t *testing.T) {
	_, err := InstallationCost(CrewParams{DistanceKm: -5})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "installation_distance_km")

	_, err = DisassemblyCost(CrewParams{Technicians: -1})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "disassembly_number_of_technicians")

	_, err = TravelServiceCost(TravelServiceParams{Trips: 0})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "travel_service_number_of_trips")
}

func TestServiceItemsCost(t *testing.T) {
	c, err := ServiceItemsCost([]float64{100, 0, 25.5, 10})
	require.NoError(t, err)
	assert.Equal(t, 135.5, c)

	c, err = ServiceItemsCost(nil)
	require.NoError(t, err)
	assert.Zero(t, c)

	_, err = ServiceItemsCost([]float64{1, 2, 3, 4, 5})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ServiceItemsCost([]float64{1, -2})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "service_item_2_cost")
}

func TestExtrasCost(t *testing.T) {
	c, err := ExtrasCost([]Extra{{ID: 1, Name: "Kabel 25m", Price: 50}}, 3)
	require.NoError(t, err)
	assert.Equal(t, 150.0, c)

	c, err = ExtrasCost([]Extra{{Price: 10}, {Price: 12.5}}, 2)
	require.NoError(t, err)
	assert.Equal(t, 45.0, c)

	c, err = ExtrasCost(nil, 5)
	require.NoError(t, err)
	assert.Zero(t, c)
}
