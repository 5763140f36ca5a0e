package dto

// QuoteItemRequest is one quote line with its optional cost components.
// Parameters of a disabled component are ignored.
type QuoteItemRequest struct {
	EquipmentID      uint `json:"equipment_id" validate:"required"`
	Quantity         int  `json:"quantity" validate:"required,min=1"`
	RentalPeriodDays int  `json:"rental_period_days" validate:"required,min=1"`

	IncludeFuelCost         bool     `json:"include_fuel_cost"`
	FuelCalculationType     string   `json:"fuel_calculation_type,omitempty" validate:"omitempty,oneof=hourly kilometers"`
	FuelConsumptionLH       *float64 `json:"fuel_consumption_lh,omitempty"`
	HoursPerDay             *float64 `json:"hours_per_day,omitempty"`
	FuelConsumptionPer100km *float64 `json:"fuel_consumption_per_100km,omitempty"`
	KilometersPerDay        *float64 `json:"kilometers_per_day,omitempty"`
	FuelPricePerLiter       *float64 `json:"fuel_price_per_liter,omitempty"`

	IncludeInstallationCost  bool     `json:"include_installation_cost"`
	InstallationDistanceKm   *float64 `json:"installation_distance_km,omitempty"`
	NumberOfTechnicians      *int     `json:"number_of_technicians,omitempty"`
	ServiceRatePerTechnician *float64 `json:"service_rate_per_technician,omitempty"`
	TravelRatePerKm          *float64 `json:"travel_rate_per_km,omitempty"`

	IncludeDisassemblyCost              bool     `json:"include_disassembly_cost"`
	DisassemblyDistanceKm               *float64 `json:"disassembly_distance_km,omitempty"`
	DisassemblyNumberOfTechnicians      *int     `json:"disassembly_number_of_technicians,omitempty"`
	DisassemblyServiceRatePerTechnician *float64 `json:"disassembly_service_rate_per_technician,omitempty"`
	DisassemblyTravelRatePerKm          *float64 `json:"disassembly_travel_rate_per_km,omitempty"`

	IncludeTravelServiceCost              bool     `json:"include_travel_service_cost"`
	TravelServiceDistanceKm               *float64 `json:"travel_service_distance_km,omitempty"`
	TravelServiceNumberOfTechnicians      *int     `json:"travel_service_number_of_technicians,omitempty"`
	TravelServiceServiceRatePerTechnician *float64 `json:"travel_service_service_rate_per_technician,omitempty"`
	TravelServiceTravelRatePerKm          *float64 `json:"travel_service_travel_rate_per_km,omitempty"`
	TravelServiceNumberOfTrips            *int     `json:"travel_service_number_of_trips,omitempty"`

	IncludeServiceItems bool    `json:"include_service_items"`
	ServiceItem1Cost    float64 `json:"service_item_1_cost"`
	ServiceItem2Cost    float64 `json:"service_item_2_cost"`
	ServiceItem3Cost    float64 `json:"service_item_3_cost"`
	ServiceItem4Cost    float64 `json:"service_item_4_cost"`

	SelectedAdditional  []uint `json:"selected_additional,omitempty"`
	SelectedAccessories []uint `json:"selected_accessories,omitempty"`
	Notes               string `json:"notes,omitempty" validate:"max=5000"`
}

type AddQuoteItemRequest struct {
	QuoteID uint `json:"quote_id" validate:"required"`
	QuoteItemRequest
}

// QuoteItemResponse is a priced quote line
type QuoteItemResponse struct {
	ID               uint    `json:"id"`
	QuoteID          uint    `json:"quote_id"`
	EquipmentID      uint    `json:"equipment_id"`
	EquipmentName    string  `json:"equipment_name,omitempty"`
	Quantity         int     `json:"quantity"`
	RentalPeriodDays int     `json:"rental_period_days"`
	PricePerDay      float64 `json:"price_per_day"`
	DiscountPercent  float64 `json:"discount_percent"`
	TotalPrice       float64 `json:"total_price"`

	IncludeFuelCost         bool     `json:"include_fuel_cost"`
	FuelCalculationType     string   `json:"fuel_calculation_type"`
	FuelConsumptionLH       *float64 `json:"fuel_consumption_lh,omitempty"`
	HoursPerDay             *float64 `json:"hours_per_day,omitempty"`
	FuelConsumptionPer100km *float64 `json:"fuel_consumption_per_100km,omitempty"`
	KilometersPerDay        *float64 `json:"kilometers_per_day,omitempty"`
	FuelPricePerLiter       *float64 `json:"fuel_price_per_liter,omitempty"`
	TotalFuelCost           float64  `json:"total_fuel_cost"`

	IncludeInstallationCost  bool     `json:"include_installation_cost"`
	InstallationDistanceKm   *float64 `json:"installation_distance_km,omitempty"`
	NumberOfTechnicians      *int     `json:"number_of_technicians,omitempty"`
	ServiceRatePerTechnician *float64 `json:"service_rate_per_technician,omitempty"`
	TravelRatePerKm          *float64 `json:"travel_rate_per_km,omitempty"`
	TotalInstallationCost    float64  `json:"total_installation_cost"`

	IncludeDisassemblyCost              bool     `json:"include_disassembly_cost"`
	DisassemblyDistanceKm               *float64 `json:"disassembly_distance_km,omitempty"`
	DisassemblyNumberOfTechnicians      *int     `json:"disassembly_number_of_technicians,omitempty"`
	DisassemblyServiceRatePerTechnician *float64 `json:"disassembly_service_rate_per_technician,omitempty"`
	DisassemblyTravelRatePerKm          *float64 `json:"disassembly_travel_rate_per_km,omitempty"`
	TotalDisassemblyCost                float64  `json:"total_disassembly_cost"`

	IncludeTravelServiceCost              bool     `json:"include_travel_service_cost"`
	TravelServiceDistanceKm               *float64 `json:"travel_service_distance_km,omitempty"`
	TravelServiceNumberOfTechnicians      *int     `json:"travel_service_number_of_technicians,omitempty"`
	TravelServiceServiceRatePerTechnician *float64 `json:"travel_service_service_rate_per_technician,omitempty"`
	TravelServiceTravelRatePerKm          *float64 `json:"travel_service_travel_rate_per_km,omitempty"`
	TravelServiceNumberOfTrips            *int     `json:"travel_service_number_of_trips,omitempty"`
	TotalTravelServiceCost                float64  `json:"total_travel_service_cost"`

	IncludeServiceItems   bool    `json:"include_service_items"`
	ServiceItem1Cost      float64 `json:"service_item_1_cost"`
	ServiceItem2Cost      float64 `json:"service_item_2_cost"`
	ServiceItem3Cost      float64 `json:"service_item_3_cost"`
	ServiceItem4Cost      float64 `json:"service_item_4_cost"`
	TotalServiceItemsCost float64 `json:"total_service_items_cost"`

	AdditionalCost      float64 `json:"additional_cost"`
	AccessoriesCost     float64 `json:"accessories_cost"`
	SelectedAdditional  []uint  `json:"selected_additional"`
	SelectedAccessories []uint  `json:"selected_accessories"`
	Notes               string  `json:"notes,omitempty"`
}

// QuoteResponse is a quote header with its client and, when loaded, its items
type QuoteResponse struct {
	ID              uint                `json:"id"`
	UUID            string              `json:"uuid"`
	QuoteNumber     string              `json:"quote_number"`
	ClientID        uint                `json:"client_id"`
	Client          *ClientResponse     `json:"client,omitempty"`
	CreatedByID     *string             `json:"created_by_id,omitempty"`
	CreatedByName   *string             `json:"created_by_name,omitempty"`
	IsGuestQuote    bool                `json:"is_guest_quote"`
	GuestEmail      *string             `json:"guest_email,omitempty"`
	PricingSchemaID *uint               `json:"pricing_schema_id,omitempty"`
	Status          string              `json:"status"`
	Notes           *string             `json:"notes,omitempty"`
	TotalNet        float64             `json:"total_net"`
	TotalGross      float64             `json:"total_gross"`
	Items           []QuoteItemResponse `json:"items,omitempty"`
	CreatedAt       string              `json:"created_at"`
	UpdatedAt       string              `json:"updated_at"`
}

// CreateQuoteRequest needs either client_id or client
type CreateQuoteRequest struct {
	ClientID        *uint              `json:"client_id,omitempty"`
	Client          *ClientRequest     `json:"client,omitempty"`
	PricingSchemaID *uint              `json:"pricing_schema_id,omitempty"`
	Status          string             `json:"status,omitempty" validate:"omitempty,oneof=draft sent accepted rejected"`
	Notes           *string            `json:"notes,omitempty" validate:"omitempty,max=5000"`
	Items           []QuoteItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
}

type CreateGuestQuoteRequest struct {
	GuestEmail string             `json:"guest_email" validate:"required,email,max=255"`
	Client     ClientRequest      `json:"client"`
	Notes      *string            `json:"notes,omitempty" validate:"omitempty,max=5000"`
	Items      []QuoteItemRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdateQuoteRequest struct {
	ClientID        *uint   `json:"client_id,omitempty"`
	PricingSchemaID *uint   `json:"pricing_schema_id,omitempty"`
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=draft sent accepted rejected"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

type ListQuotesResponse struct {
	Message string          `json:"message"`
	Items   []QuoteResponse `json:"items"`
}

// QuoteItemMutationResponse carries the changed line and the re-summed quote totals
type QuoteItemMutationResponse struct {
	Message    string             `json:"message"`
	Item       *QuoteItemResponse `json:"item,omitempty"`
	TotalNet   float64            `json:"total_net"`
	TotalGross float64            `json:"total_gross"`
}
