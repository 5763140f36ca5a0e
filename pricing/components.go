package pricing

import (
	"strconv"

	"github.com/amirphl/ppp-rental/utils"
)

type FuelMode string

const (
	FuelModeHourly     FuelMode = "hourly"
	FuelModeKilometers FuelMode = "kilometers"
)

// FuelParams are the inputs of the fuel calculator. Hourly mode reads
// ConsumptionLH and HoursPerDay, kilometers mode reads ConsumptionPer100km and
// KilometersPerDay.
type FuelParams struct {
	Mode                FuelMode
	ConsumptionLH       float64
	HoursPerDay         float64
	ConsumptionPer100km float64
	KilometersPerDay    float64
	PricePerLiter       float64
}

type FuelResult struct {
	TotalConsumption float64
	TotalKilometers  float64
	Cost             float64
}

// FuelCost computes the fuel used over the rental period and its price.
func FuelCost(p FuelParams, days int) (FuelResult, error) {
	v := &ValidationError{}
	if days < 1 {
		v.add("rental_period_days", ErrInvalidRentalPeriod.Error())
	}
	nonNegative(v, "fuel_price_per_liter", p.PricePerLiter)

	var res FuelResult
	switch p.Mode {
	case FuelModeHourly, "":
		nonNegative(v, "fuel_consumption_lh", p.ConsumptionLH)
		nonNegative(v, "hours_per_day", p.HoursPerDay)
		res.TotalConsumption = p.ConsumptionLH * p.HoursPerDay * float64(days)
	case FuelModeKilometers:
		nonNegative(v, "fuel_consumption_per_100km", p.ConsumptionPer100km)
		nonNegative(v, "kilometers_per_day", p.KilometersPerDay)
		res.TotalKilometers = p.KilometersPerDay * float64(days)
		res.TotalConsumption = res.TotalKilometers / 100 * p.ConsumptionPer100km
	default:
		v.add("fuel_calculation_type", "must be hourly or kilometers")
	}
	if err := v.orNil(); err != nil {
		return FuelResult{}, err
	}

	res.Cost = utils.RoundMoney(res.TotalConsumption * p.PricePerLiter)
	return res, nil
}

// CrewParams describe one technician trip. DistanceKm is the round trip distance.
type CrewParams struct {
	DistanceKm        float64
	Technicians       int
	RatePerTechnician float64
	RatePerKm         float64
}

func (p CrewParams) validate(v *ValidationError, prefix string) {
	nonNegative(v, prefix+"distance_km", p.DistanceKm)
	if p.Technicians < 0 {
		v.add(prefix+"number_of_technicians", "must not be negative")
	}
	nonNegative(v, prefix+"service_rate_per_technician", p.RatePerTechnician)
	nonNegative(v, prefix+"travel_rate_per_km", p.RatePerKm)
}

func (p CrewParams) cost() float64 {
	return p.DistanceKm*p.RatePerKm + float64(p.Technicians)*p.RatePerTechnician
}

// InstallationCost is distance × km rate plus technicians × technician rate.
func InstallationCost(p CrewParams) (float64, error) {
	v := &ValidationError{}
	p.validate(v, "installation_")
	if err := v.orNil(); err != nil {
		return 0, err
	}
	return utils.RoundMoney(p.cost()), nil
}

// DisassemblyCost uses the installation formula with disassembly parameters.
func DisassemblyCost(p CrewParams) (float64, error) {
	v := &ValidationError{}
	p.validate(v, "disassembly_")
	if err := v.orNil(); err != nil {
		return 0, err
	}
	return utils.RoundMoney(p.cost()), nil
}

// TravelServiceParams is a crew trip repeated Trips times.
type TravelServiceParams struct {
	CrewParams
	Trips int
}

func TravelServiceCost(p TravelServiceParams) (float64, error) {
	v := &ValidationError{}
	p.validate(v, "travel_service_")
	if p.Trips < 1 {
		v.add("travel_service_number_of_trips", "must be at least 1")
	}
	if err := v.orNil(); err != nil {
		return 0, err
	}
	return utils.RoundMoney(p.cost() * float64(p.Trips)), nil
}

// MaxServiceItems is the number of service line costs a quote item carries.
const MaxServiceItems = 4

// ServiceItemsCost sums up to four flat service line costs.
func ServiceItemsCost(costs []float64) (float64, error) {
	v := &ValidationError{}
	if len(costs) > MaxServiceItems {
		v.add("service_items", "at most 4 service items are supported")
	}
	var sum float64
	for i, c := range costs {
		nonNegative(v, serviceItemField(i), c)
		sum += c
	}
	if err := v.orNil(); err != nil {
		return 0, err
	}
	return utils.RoundMoney(sum), nil
}

func serviceItemField(i int) string {
	return "service_item_" + strconv.Itoa(i+1) + "_cost"
}

// Extra is a selected additional equipment or accessory row.
type Extra struct {
	ID    uint
	Name  string
	Price float64
}

// ExtrasCost is Σ price × quantity over the selected rows.
func ExtrasCost(extras []Extra, quantity int) (float64, error) {
	v := &ValidationError{}
	if quantity < 0 {
		v.add("quantity", "must not be negative")
	}
	var sum float64
	for _, e := range extras {
		if e.Price < 0 {
			v.add("extras", "price must not be negative")
			continue
		}
		sum += e.Price * float64(quantity)
	}
	if err := v.orNil(); err != nil {
		return 0, err
	}
	return utils.RoundMoney(sum), nil
}

func nonNegative(v *ValidationError, field string, value float64) {
	if value < 0 {
		v.add(field, "must not be negative")
	}
}
