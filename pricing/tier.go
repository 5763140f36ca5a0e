// Package pricing implements the quote pricing rules: tier resolution, the
// optional cost components of a line, line aggregation and quote totals.
package pricing

import "context"

// Tier is a day-count range of an equipment price table. A nil PeriodEnd
// means the range is unbounded above.
type Tier struct {
	ID              uint
	PeriodStart     int
	PeriodEnd       *int
	PricePerDay     float64
	DiscountPercent float64
}

// Contains reports whether days falls within [PeriodStart, PeriodEnd].
func (t Tier) Contains(days int) bool {
	return t.PeriodStart <= days && (t.PeriodEnd == nil || *t.PeriodEnd >= days)
}

// SelectTier picks the tier applicable to days. Among matching tiers the one
// with the greatest PeriodStart wins; equal starts go to the higher ID.
func SelectTier(equipmentID uint, tiers []Tier, days int) (Tier, error) {
	if days < 1 {
		return Tier{}, NewValidationError("rental_period_days", ErrInvalidRentalPeriod.Error())
	}

	var (
		best  Tier
		found bool
	)
	for _, t := range tiers {
		if !t.Contains(days) {
			continue
		}
		if !found || t.PeriodStart > best.PeriodStart || (t.PeriodStart == best.PeriodStart && t.ID > best.ID) {
			best = t
			found = true
		}
	}
	if !found {
		return Tier{}, &NoPricingError{EquipmentID: equipmentID, Days: days}
	}
	return best, nil
}

// TierSource loads the price table of one equipment.
type TierSource interface {
	TiersForEquipment(ctx context.Context, equipmentID uint) ([]Tier, error)
}

// Resolver resolves the applicable tier through a TierSource.
type Resolver struct {
	source TierSource
}

func NewResolver(source TierSource) *Resolver {
	return &Resolver{source: source}
}

// Resolve returns the tier of equipmentID covering days.
func (r *Resolver) Resolve(ctx context.Context, equipmentID uint, days int) (Tier, error) {
	if days < 1 {
		return Tier{}, NewValidationError("rental_period_days", ErrInvalidRentalPeriod.Error())
	}
	tiers, err := r.source.TiersForEquipment(ctx, equipmentID)
	if err != nil {
		return Tier{}, err
	}
	return SelectTier(equipmentID, tiers, days)
}
