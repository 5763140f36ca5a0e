package businessflow

import (
	"context"
	"time"

	"github.com/amirphl/ppp-rental/app/dto"
	"github.com/amirphl/ppp-rental/models"
	"github.com/amirphl/ppp-rental/pricing"
	"github.com/amirphl/ppp-rental/utils"
	"go.uber.org/zap"
)

// Clock returns the current time. Flows take one so tests can pin creation times.
type Clock func() time.Time

func clockOrDefault(c Clock) Clock {
	if c == nil {
		return utils.UTCNow
	}
	return c
}

func loggerOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// Actor is the authenticated staff member a request runs as.
type Actor struct {
	ID   string
	Name string
	Role string
}

// requestFields returns the request scoped log fields carried by ctx.
func requestFields(ctx context.Context) []zap.Field {
	var fields []zap.Field
	if v, ok := ctx.Value(utils.RequestIDKey).(string); ok && v != "" {
		fields = append(fields, zap.String("request_id", v))
	}
	if v, ok := ctx.Value(utils.EndpointKey).(string); ok && v != "" {
		fields = append(fields, zap.String("endpoint", v))
	}
	return fields
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func toCategoryResponse(c *models.EquipmentCategory) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   formatTime(c.CreatedAt),
	}
}

func toPricingTierResponse(p models.EquipmentPricing) dto.PricingTierResponse {
	return dto.PricingTierResponse{
		ID:              p.ID,
		EquipmentID:     p.EquipmentID,
		PeriodStart:     p.PeriodStart,
		PeriodEnd:       p.PeriodEnd,
		PricePerDay:     p.PricePerDay,
		DiscountPercent: p.DiscountPercent,
	}
}

func toPricingTierResponses(rows []models.EquipmentPricing) []dto.PricingTierResponse {
	out := make([]dto.PricingTierResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, toPricingTierResponse(p))
	}
	return out
}

func toEquipmentResponse(e *models.Equipment) dto.EquipmentResponse {
	res := dto.EquipmentResponse{
		ID:                e.ID,
		Name:              e.Name,
		Description:       e.Description,
		Model:             e.Model,
		Power:             e.Power,
		CategoryID:        e.CategoryID,
		Quantity:          e.Quantity,
		AvailableQuantity: e.AvailableQuantity,
		FuelConsumption75: e.FuelConsumption75,
		Dimensions:        e.Dimensions,
		Weight:            e.Weight,
		Engine:            e.Engine,
		Alternator:        e.Alternator,
		FuelTankCapacity:  e.FuelTankCapacity,
		ImageURL:          e.ImageURL,
		IsActive:          utils.IsTrue(e.IsActive),
		Pricing:           toPricingTierResponses(e.Pricing),
		CreatedAt:         formatTime(e.CreatedAt),
		UpdatedAt:         formatTime(e.UpdatedAt),
	}
	if e.Category != nil {
		c := toCategoryResponse(e.Category)
		res.Category = &c
	}
	return res
}

func toAdditionalResponse(a *models.EquipmentAdditional) dto.AdditionalResponse {
	return dto.AdditionalResponse{
		ID:          a.ID,
		EquipmentID: a.EquipmentID,
		Type:        a.Type,
		Name:        a.Name,
		Description: a.Description,
		Price:       a.Price,
		Position:    a.Position,
	}
}

func toServiceItemResponse(s *models.EquipmentServiceItem) dto.ServiceItemResponse {
	return dto.ServiceItemResponse{
		ID:              s.ID,
		EquipmentID:     s.EquipmentID,
		ItemName:        s.ItemName,
		ItemDescription: s.ItemDescription,
		ItemCost:        s.ItemCost,
		SortOrder:       s.SortOrder,
	}
}

func toServiceCostsResponse(c *models.EquipmentServiceCosts) dto.ServiceCostsResponse {
	return dto.ServiceCostsResponse{
		ID:                    c.ID,
		EquipmentID:           c.EquipmentID,
		ServiceIntervalMonths: c.ServiceIntervalMonths,
		WorkerHours:           c.WorkerHours,
		WorkerCostPerHour:     c.WorkerCostPerHour,
		TravelDistanceKm:      c.TravelDistanceKm,
		TravelRatePerKm:       c.TravelRatePerKm,
	}
}

func toClientResponse(c *models.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:            c.ID,
		CompanyName:   c.CompanyName,
		ContactPerson: c.ContactPerson,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		NIP:           c.NIP,
		CreatedAt:     formatTime(c.CreatedAt),
	}
}

func clientFromRequest(req *dto.ClientRequest) *models.Client {
	return &models.Client{
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		NIP:           req.NIP,
	}
}

func toQuoteItemResponse(it *models.QuoteItem) dto.QuoteItemResponse {
	res := dto.QuoteItemResponse{
		ID:               it.ID,
		QuoteID:          it.QuoteID,
		EquipmentID:      it.EquipmentID,
		Quantity:         it.Quantity,
		RentalPeriodDays: it.RentalPeriodDays,
		PricePerDay:      it.PricePerDay,
		DiscountPercent:  it.DiscountPercent,
		TotalPrice:       it.TotalPrice,

		IncludeFuelCost:         it.IncludeFuelCost,
		FuelCalculationType:     it.FuelCalculationType,
		FuelConsumptionLH:       it.FuelConsumptionLH,
		HoursPerDay:             it.HoursPerDay,
		FuelConsumptionPer100km: it.FuelConsumptionPer100km,
		KilometersPerDay:        it.KilometersPerDay,
		FuelPricePerLiter:       it.FuelPricePerLiter,
		TotalFuelCost:           it.TotalFuelCost,

		IncludeInstallationCost:  it.IncludeInstallationCost,
		InstallationDistanceKm:   it.InstallationDistanceKm,
		NumberOfTechnicians:      it.NumberOfTechnicians,
		ServiceRatePerTechnician: it.ServiceRatePerTechnician,
		TravelRatePerKm:          it.TravelRatePerKm,
		TotalInstallationCost:    it.TotalInstallationCost,

		IncludeDisassemblyCost:              it.IncludeDisassemblyCost,
		DisassemblyDistanceKm:               it.DisassemblyDistanceKm,
		DisassemblyNumberOfTechnicians:      it.DisassemblyNumberOfTechnicians,
		DisassemblyServiceRatePerTechnician: it.DisassemblyServiceRatePerTechnician,
		DisassemblyTravelRatePerKm:          it.DisassemblyTravelRatePerKm,
		TotalDisassemblyCost:                it.TotalDisassemblyCost,

		IncludeTravelServiceCost:              it.IncludeTravelServiceCost,
		TravelServiceDistanceKm:               it.TravelServiceDistanceKm,
		TravelServiceNumberOfTechnicians:      it.TravelServiceNumberOfTechnicians,
		TravelServiceServiceRatePerTechnician: it.TravelServiceServiceRatePerTechnician,
		TravelServiceTravelRatePerKm:          it.TravelServiceTravelRatePerKm,
		TravelServiceNumberOfTrips:            it.TravelServiceNumberOfTrips,
		TotalTravelServiceCost:                it.TotalTravelServiceCost,

		IncludeServiceItems:   it.IncludeServiceItems,
		ServiceItem1Cost:      it.ServiceItem1Cost,
		ServiceItem2Cost:      it.ServiceItem2Cost,
		ServiceItem3Cost:      it.ServiceItem3Cost,
		ServiceItem4Cost:      it.ServiceItem4Cost,
		TotalServiceItemsCost: it.TotalServiceItemsCost,

		AdditionalCost:      it.AdditionalCost,
		AccessoriesCost:     it.AccessoriesCost,
		SelectedAdditional:  []uint{},
		SelectedAccessories: []uint{},
	}
	if it.Equipment != nil {
		res.EquipmentName = it.Equipment.Name
	}
	if it.Notes != nil {
		switch n := pricing.ParseNotes(*it.Notes).(type) {
		case pricing.StructuredNotes:
			res.SelectedAdditional = n.SelectedAdditional
			res.SelectedAccessories = n.SelectedAccessories
			res.Notes = n.UserNotes
		case pricing.PlainText:
			res.Notes = string(n)
		}
	}
	return res
}

func toQuoteResponse(q *models.Quote) dto.QuoteResponse {
	res := dto.QuoteResponse{
		ID:              q.ID,
		UUID:            q.UUID.String(),
		QuoteNumber:     q.QuoteNumber,
		ClientID:        q.ClientID,
		CreatedByID:     q.CreatedByID,
		CreatedByName:   q.CreatedByName,
		IsGuestQuote:    q.IsGuestQuote,
		GuestEmail:      q.GuestEmail,
		PricingSchemaID: q.PricingSchemaID,
		Status:          q.Status,
		Notes:           q.Notes,
		TotalNet:        q.TotalNet,
		TotalGross:      q.TotalGross,
		CreatedAt:       formatTime(q.CreatedAt),
		UpdatedAt:       formatTime(q.UpdatedAt),
	}
	if q.Client != nil {
		c := toClientResponse(q.Client)
		res.Client = &c
	}
	for i := range q.Items {
		res.Items = append(res.Items, toQuoteItemResponse(&q.Items[i]))
	}
	return res
}

func toPricingSchemaResponse(s *models.PricingSchema) dto.PricingSchemaResponse {
	return dto.PricingSchemaResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		IsDefault:   s.IsDefault,
		IsActive:    utils.IsTrue(s.IsActive),
		CreatedAt:   formatTime(s.CreatedAt),
	}
}

func toQuestionResponse(q *models.NeedsAssessmentQuestion) dto.QuestionResponse {
	return dto.QuestionResponse{
		ID:         q.ID,
		Category:   q.Category,
		Question:   q.Question,
		Type:       q.Type,
		Options:    q.Options,
		IsRequired: q.IsRequired,
		Position:   q.Position,
		IsActive:   utils.IsTrue(q.IsActive),
	}
}

func toAssessmentResponse(r *models.NeedsAssessmentResponse) dto.AssessmentResponse {
	responses := r.Responses
	if responses == nil {
		responses = map[string]string{}
	}
	return dto.AssessmentResponse{
		ID:                  r.ID,
		ResponseNumber:      r.ResponseNumber,
		ClientCompanyName:   r.ClientCompanyName,
		ClientContactPerson: r.ClientContactPerson,
		ClientPhone:         r.ClientPhone,
		ClientEmail:         r.ClientEmail,
		ClientAddress:       r.ClientAddress,
		Responses:           responses,
		UserID:              r.UserID,
		CreatedAt:           formatTime(r.CreatedAt),
	}
}

func toAPIKeyResponse(k *models.APIKey) dto.APIKeyResponse {
	perms := k.Permissions
	if perms == nil {
		perms = []string{}
	}
	return dto.APIKeyResponse{
		ID:          k.ID,
		Name:        k.Name,
		Prefix:      k.Prefix,
		Permissions: perms,
		IsActive:    utils.IsTrue(k.IsActive),
		LastUsedAt:  formatTimePtr(k.LastUsedAt),
		CreatedAt:   formatTime(k.CreatedAt),
	}
}
