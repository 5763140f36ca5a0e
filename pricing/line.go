package pricing

import (
	"context"

	"github.com/amirphl/ppp-rental/utils"
)

// Snapshot is the price and discount a line is priced at.
type Snapshot struct {
	PricePerDay     float64
	DiscountPercent float64
}

func SnapshotOf(t Tier) Snapshot {
	return Snapshot{PricePerDay: t.PricePerDay, DiscountPercent: t.DiscountPercent}
}

// LineInput is a quote line with its enabled cost components. A nil component
// is disabled and its parameters are never looked at.
type LineInput struct {
	EquipmentID      uint
	Quantity         int
	RentalPeriodDays int

	Fuel          *FuelParams
	Installation  *CrewParams
	Disassembly   *CrewParams
	TravelService *TravelServiceParams
	ServiceItems  []float64 // nil when service items are disabled
	Additional    []Extra
	Accessories   []Extra
}

// LineBreakdown is the priced result of a line.
type LineBreakdown struct {
	Snapshot
	BaseCost          float64
	Fuel              FuelResult
	InstallationCost  float64
	DisassemblyCost   float64
	TravelServiceCost float64
	ServiceItemsCost  float64
	AdditionalCost    float64
	AccessoriesCost   float64
	Total             float64
}

// BaseLineCost is pricePerDay × (1 − discount/100) × quantity × days.
func BaseLineCost(s Snapshot, quantity, days int) float64 {
	return utils.RoundMoney(s.PricePerDay * (1 - s.DiscountPercent/100) * float64(quantity) * float64(days))
}

// PriceLine aggregates the base cost and every enabled component of in.
func PriceLine(s Snapshot, in LineInput) (LineBreakdown, error) {
	v := &ValidationError{}
	if in.Quantity < 1 {
		v.add("quantity", "must be at least 1")
	}
	if in.RentalPeriodDays < 1 {
		v.add("rental_period_days", ErrInvalidRentalPeriod.Error())
	}
	nonNegative(v, "price_per_day", s.PricePerDay)
	if s.DiscountPercent < 0 || s.DiscountPercent > 100 {
		v.add("discount_percent", "must be between 0 and 100")
	}
	if err := v.orNil(); err != nil {
		return LineBreakdown{}, err
	}

	b := LineBreakdown{Snapshot: s, BaseCost: BaseLineCost(s, in.Quantity, in.RentalPeriodDays)}

	var err error
	if in.Fuel != nil {
		if b.Fuel, err = FuelCost(*in.Fuel, in.RentalPeriodDays); err != nil {
			return LineBreakdown{}, err
		}
	}
	if in.Installation != nil {
		if b.InstallationCost, err = InstallationCost(*in.Installation); err != nil {
			return LineBreakdown{}, err
		}
	}
	if in.Disassembly != nil {
		if b.DisassemblyCost, err = DisassemblyCost(*in.Disassembly); err != nil {
			return LineBreakdown{}, err
		}
	}
	if in.TravelService != nil {
		if b.TravelServiceCost, err = TravelServiceCost(*in.TravelService); err != nil {
			return LineBreakdown{}, err
		}
	}
	if in.ServiceItems != nil {
		if b.ServiceItemsCost, err = ServiceItemsCost(in.ServiceItems); err != nil {
			return LineBreakdown{}, err
		}
	}
	if b.AdditionalCost, err = ExtrasCost(in.Additional, in.Quantity); err != nil {
		return LineBreakdown{}, err
	}
	if b.AccessoriesCost, err = ExtrasCost(in.Accessories, in.Quantity); err != nil {
		return LineBreakdown{}, err
	}

	b.Total = utils.RoundMoney(b.BaseCost + b.Fuel.Cost + b.InstallationCost + b.DisassemblyCost +
		b.TravelServiceCost + b.ServiceItemsCost + b.AdditionalCost + b.AccessoriesCost)
	return b, nil
}

// Engine prices lines against the tiers of a TierSource.
type Engine struct {
	resolver *Resolver
}

func NewEngine(source TierSource) *Engine {
	return &Engine{resolver: NewResolver(source)}
}

// Price resolves the tier of in and aggregates the line.
func (e *Engine) Price(ctx context.Context, in LineInput) (LineBreakdown, error) {
	tier, err := e.resolver.Resolve(ctx, in.EquipmentID, in.RentalPeriodDays)
	if err != nil {
		return LineBreakdown{}, err
	}
	return PriceLine(SnapshotOf(tier), in)
}
