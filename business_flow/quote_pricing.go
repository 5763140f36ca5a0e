package businessflow

import (
	"context"
	"errors"
	"slices"

	"github.com/amirphl/ppp-rental/app/dto"
	"github.com/amirphl/ppp-rental/models"
	"github.com/amirphl/ppp-rental/pricing"
	"github.com/amirphl/ppp-rental/repository"
	"github.com/amirphl/ppp-rental/utils"
)

// tierSource reads the price table of an equipment from the pricing repository.
type tierSource struct {
	repo repository.EquipmentPricingRepository
}

func (s tierSource) TiersForEquipment(ctx context.Context, equipmentID uint) ([]pricing.Tier, error) {
	rows, err := s.repo.ListByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	tiers := make([]pricing.Tier, 0, len(rows))
	for _, r := range rows {
		tiers = append(tiers, pricing.Tier{
			ID:              r.ID,
			PeriodStart:     r.PeriodStart,
			PeriodEnd:       r.PeriodEnd,
			PricePerDay:     r.PricePerDay,
			DiscountPercent: r.DiscountPercent,
		})
	}
	return tiers, nil
}

// CrewDefaults fill the rates a crew component leaves out.
type CrewDefaults struct {
	ServiceRatePerTechnician float64
	TravelRatePerKm          float64
}

func (d CrewDefaults) orBuiltin() CrewDefaults {
	if d.ServiceRatePerTechnician <= 0 {
		d.ServiceRatePerTechnician = utils.DefaultServiceRatePerTechnician
	}
	if d.TravelRatePerKm <= 0 {
		d.TravelRatePerKm = utils.DefaultTravelRatePerKm
	}
	return d
}

// linePricer turns quote line requests into priced quote items.
type linePricer struct {
	equipmentRepo  repository.EquipmentRepository
	additionalRepo repository.EquipmentAdditionalRepository
	engine         *pricing.Engine
	defaults       CrewDefaults
}

func newLinePricer(
	equipmentRepo repository.EquipmentRepository,
	pricingRepo repository.EquipmentPricingRepository,
	additionalRepo repository.EquipmentAdditionalRepository,
	defaults CrewDefaults,
) *linePricer {
	return &linePricer{
		equipmentRepo:  equipmentRepo,
		additionalRepo: additionalRepo,
		engine:         pricing.NewEngine(tierSource{repo: pricingRepo}),
		defaults:       defaults.orBuiltin(),
	}
}

// price prices req and returns the item with its equipment name. A nil
// snapshot resolves the tier; otherwise the snapshot is kept and only the
// components are recomputed.
func (p *linePricer) price(ctx context.Context, req *dto.QuoteItemRequest, snapshot *pricing.Snapshot) (*models.QuoteItem, string, error) {
	equipment, err := p.equipmentRepo.ByID(ctx, req.EquipmentID)
	if err != nil {
		return nil, "", NewBusinessError("EQUIPMENT_LOOKUP_FAILED", "Failed to load equipment", err)
	}
	if equipment == nil {
		return nil, "", NewBusinessErrorf("EQUIPMENT_NOT_FOUND", "Equipment %d not found", ErrEquipmentNotFound, req.EquipmentID)
	}

	additionalIDs := uniqueIDs(req.SelectedAdditional)
	accessoryIDs := uniqueIDs(req.SelectedAccessories)
	additional, err := p.loadExtras(ctx, req.EquipmentID, models.AdditionalTypeAdditional, additionalIDs)
	if err != nil {
		return nil, "", err
	}
	accessories, err := p.loadExtras(ctx, req.EquipmentID, models.AdditionalTypeAccessories, accessoryIDs)
	if err != nil {
		return nil, "", err
	}

	in := p.lineInput(req)
	in.Additional = additional
	in.Accessories = accessories

	var breakdown pricing.LineBreakdown
	if snapshot != nil {
		breakdown, err = pricing.PriceLine(*snapshot, in)
	} else {
		breakdown, err = p.engine.Price(ctx, in)
	}
	if err != nil {
		return nil, "", pricingError(err)
	}

	item := p.quoteItem(req, breakdown)
	if notes := pricing.EncodeNotes(pricing.BuildNotes(additionalIDs, accessoryIDs, req.Notes)); notes != "" {
		item.Notes = &notes
	}
	return item, equipment.Name, nil
}

// pricingError classifies an error returned by the pricing package.
func pricingError(err error) error {
	switch {
	case errors.Is(err, pricing.ErrNoPricingAvailable):
		noPricingTotal.Inc()
		return NewBusinessError("NO_PRICING_AVAILABLE", "No pricing available for the rental period", err)
	case errors.Is(err, pricing.ErrValidation):
		return NewBusinessError("VALIDATION_ERROR", "Validation failed", err)
	default:
		return NewBusinessError("PRICING_FAILED", "Failed to price quote line", err)
	}
}

func (p *linePricer) loadExtras(ctx context.Context, equipmentID uint, kind string, ids []uint) ([]pricing.Extra, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := p.additionalRepo.ByIDs(ctx, equipmentID, kind, ids)
	if err != nil {
		return nil, NewBusinessError("EQUIPMENT_ADDITIONAL_LOOKUP_FAILED", "Failed to load selected extras", err)
	}
	if len(rows) != len(ids) {
		return nil, NewBusinessErrorf("EQUIPMENT_ADDITIONAL_NOT_FOUND", "Selected %s rows do not belong to equipment %d", ErrEquipmentAdditionalNotFound, kind, equipmentID)
	}
	extras := make([]pricing.Extra, 0, len(rows))
	for _, r := range rows {
		extras = append(extras, pricing.Extra{ID: r.ID, Name: r.Name, Price: r.Price})
	}
	return extras, nil
}

// lineInput maps the enabled components of req. Omitted technician counts and
// trips default to 1, omitted rates to the configured defaults. An explicit
// zero is passed through to the calculators.
func (p *linePricer) lineInput(req *dto.QuoteItemRequest) pricing.LineInput {
	in := pricing.LineInput{
		EquipmentID:      req.EquipmentID,
		Quantity:         req.Quantity,
		RentalPeriodDays: req.RentalPeriodDays,
	}
	if req.IncludeFuelCost {
		in.Fuel = &pricing.FuelParams{
			Mode:                pricing.FuelMode(req.FuelCalculationType),
			ConsumptionLH:       utils.Deref(req.FuelConsumptionLH),
			HoursPerDay:         utils.Deref(req.HoursPerDay),
			ConsumptionPer100km: utils.Deref(req.FuelConsumptionPer100km),
			KilometersPerDay:    utils.Deref(req.KilometersPerDay),
			PricePerLiter:       utils.Deref(req.FuelPricePerLiter),
		}
	}
	if req.IncludeInstallationCost {
		in.Installation = p.crew(req.InstallationDistanceKm, req.NumberOfTechnicians, req.ServiceRatePerTechnician, req.TravelRatePerKm)
	}
	if req.IncludeDisassemblyCost {
		in.Disassembly = p.crew(req.DisassemblyDistanceKm, req.DisassemblyNumberOfTechnicians, req.DisassemblyServiceRatePerTechnician, req.DisassemblyTravelRatePerKm)
	}
	if req.IncludeTravelServiceCost {
		crew := p.crew(req.TravelServiceDistanceKm, req.TravelServiceNumberOfTechnicians, req.TravelServiceServiceRatePerTechnician, req.TravelServiceTravelRatePerKm)
		in.TravelService = &pricing.TravelServiceParams{CrewParams: *crew, Trips: intOr(req.TravelServiceNumberOfTrips, 1)}
	}
	if req.IncludeServiceItems {
		in.ServiceItems = []float64{req.ServiceItem1Cost, req.ServiceItem2Cost, req.ServiceItem3Cost, req.ServiceItem4Cost}
	}
	return in
}

func (p *linePricer) crew(distance *float64, technicians *int, serviceRate, travelRate *float64) *pricing.CrewParams {
	return &pricing.CrewParams{
		DistanceKm:        utils.Deref(distance),
		Technicians:       intOr(technicians, 1),
		RatePerTechnician: floatOr(serviceRate, p.defaults.ServiceRatePerTechnician),
		RatePerKm:         floatOr(travelRate, p.defaults.TravelRatePerKm),
	}
}

// quoteItem stores the request parameters with the values the calculators
// actually used, and every computed sub-total.
func (p *linePricer) quoteItem(req *dto.QuoteItemRequest, b pricing.LineBreakdown) *models.QuoteItem {
	fuelType := req.FuelCalculationType
	if fuelType == "" {
		fuelType = models.FuelCalculationHourly
	}

	item := &models.QuoteItem{
		EquipmentID:      req.EquipmentID,
		Quantity:         req.Quantity,
		RentalPeriodDays: req.RentalPeriodDays,
		PricePerDay:      b.PricePerDay,
		DiscountPercent:  b.DiscountPercent,
		TotalPrice:       b.Total,

		IncludeFuelCost:         req.IncludeFuelCost,
		FuelCalculationType:     fuelType,
		FuelConsumptionLH:       req.FuelConsumptionLH,
		HoursPerDay:             req.HoursPerDay,
		FuelConsumptionPer100km: req.FuelConsumptionPer100km,
		KilometersPerDay:        req.KilometersPerDay,
		FuelPricePerLiter:       req.FuelPricePerLiter,
		TotalFuelCost:           b.Fuel.Cost,

		IncludeInstallationCost:  req.IncludeInstallationCost,
		InstallationDistanceKm:   req.InstallationDistanceKm,
		NumberOfTechnicians:      req.NumberOfTechnicians,
		ServiceRatePerTechnician: req.ServiceRatePerTechnician,
		TravelRatePerKm:          req.TravelRatePerKm,
		TotalInstallationCost:    b.InstallationCost,

		IncludeDisassemblyCost:              req.IncludeDisassemblyCost,
		DisassemblyDistanceKm:               req.DisassemblyDistanceKm,
		DisassemblyNumberOfTechnicians:      req.DisassemblyNumberOfTechnicians,
		DisassemblyServiceRatePerTechnician: req.DisassemblyServiceRatePerTechnician,
		DisassemblyTravelRatePerKm:          req.DisassemblyTravelRatePerKm,
		TotalDisassemblyCost:                b.DisassemblyCost,

		IncludeTravelServiceCost:              req.IncludeTravelServiceCost,
		TravelServiceDistanceKm:               req.TravelServiceDistanceKm,
		TravelServiceNumberOfTechnicians:      req.TravelServiceNumberOfTechnicians,
		TravelServiceServiceRatePerTechnician: req.TravelServiceServiceRatePerTechnician,
		TravelServiceTravelRatePerKm:          req.TravelServiceTravelRatePerKm,
		TravelServiceNumberOfTrips:            req.TravelServiceNumberOfTrips,
		TotalTravelServiceCost:                b.TravelServiceCost,

		IncludeServiceItems:   req.IncludeServiceItems,
		ServiceItem1Cost:      req.ServiceItem1Cost,
		ServiceItem2Cost:      req.ServiceItem2Cost,
		ServiceItem3Cost:      req.ServiceItem3Cost,
		ServiceItem4Cost:      req.ServiceItem4Cost,
		TotalServiceItemsCost: b.ServiceItemsCost,

		AdditionalCost:  b.AdditionalCost,
		AccessoriesCost: b.AccessoriesCost,
	}

	if req.IncludeInstallationCost {
		item.NumberOfTechnicians = utils.ToPtr(intOr(req.NumberOfTechnicians, 1))
		item.ServiceRatePerTechnician = utils.ToPtr(floatOr(req.ServiceRatePerTechnician, p.defaults.ServiceRatePerTechnician))
		item.TravelRatePerKm = utils.ToPtr(floatOr(req.TravelRatePerKm, p.defaults.TravelRatePerKm))
	}
	if req.IncludeDisassemblyCost {
		item.DisassemblyNumberOfTechnicians = utils.ToPtr(intOr(req.DisassemblyNumberOfTechnicians, 1))
		item.DisassemblyServiceRatePerTechnician = utils.ToPtr(floatOr(req.DisassemblyServiceRatePerTechnician, p.defaults.ServiceRatePerTechnician))
		item.DisassemblyTravelRatePerKm = utils.ToPtr(floatOr(req.DisassemblyTravelRatePerKm, p.defaults.TravelRatePerKm))
	}
	if req.IncludeTravelServiceCost {
		item.TravelServiceNumberOfTechnicians = utils.ToPtr(intOr(req.TravelServiceNumberOfTechnicians, 1))
		item.TravelServiceServiceRatePerTechnician = utils.ToPtr(floatOr(req.TravelServiceServiceRatePerTechnician, p.defaults.ServiceRatePerTechnician))
		item.TravelServiceTravelRatePerKm = utils.ToPtr(floatOr(req.TravelServiceTravelRatePerKm, p.defaults.TravelRatePerKm))
		item.TravelServiceNumberOfTrips = utils.ToPtr(intOr(req.TravelServiceNumberOfTrips, 1))
	}
	return item
}

// quoteTotals re-sums a quote from its persisted line totals.
type quoteTotals struct {
	quoteRepo     repository.QuoteRepository
	quoteItemRepo repository.QuoteItemRepository
	engine        pricing.TotalsEngine
}

func (t quoteTotals) recalculate(ctx context.Context, quoteID uint) (pricing.Totals, error) {
	lines, err := t.quoteItemRepo.LineTotals(ctx, quoteID)
	if err != nil {
		return pricing.Totals{}, NewBusinessError("QUOTE_TOTALS_FAILED", "Failed to load line totals", err)
	}
	totals := t.engine.Compute(lines)
	if err := t.quoteRepo.UpdateTotals(ctx, quoteID, totals.Net, totals.Gross); err != nil {
		return pricing.Totals{}, NewBusinessError("QUOTE_TOTALS_FAILED", "Failed to store quote totals", err)
	}
	return totals, nil
}

func uniqueIDs(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
