package models

import (
	"time"

	"github.com/google/uuid"
)

// Quote statuses
const (
	QuoteStatusDraft    = "draft"
	QuoteStatusSent     = "sent"
	QuoteStatusAccepted = "accepted"
	QuoteStatusRejected = "rejected"
)

// Fuel calculation modes of a quote item
const (
	FuelCalculationHourly     = "hourly"
	FuelCalculationKilometers = "kilometers"
)

// Quote is a priced offer for one client. TotalNet and TotalGross are always
// re-derived from the persisted item totals.
// Table: quotes
type Quote struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	UUID            uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:uk_quotes_uuid" json:"uuid"`
	QuoteNumber     string      `gorm:"size:50;not null;uniqueIndex:uk_quotes_number_day,priority:1" json:"quote_number"`
	// NumberDate is the local day of a daily-reset number, empty for guest numbers.
	NumberDate      string      `gorm:"size:10;not null;default:'';uniqueIndex:uk_quotes_number_day,priority:2" json:"-"`
	ClientID        uint        `gorm:"not null;index:idx_quotes_client_id" json:"client_id"`
	Client          *Client     `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	CreatedByID     *string     `gorm:"size:64;index:idx_quotes_created_by_id" json:"created_by_id,omitempty"`
	CreatedByName   *string     `gorm:"size:255" json:"created_by_name,omitempty"`
	IsGuestQuote    bool        `gorm:"not null;default:false" json:"is_guest_quote"`
	GuestEmail      *string     `gorm:"size:255" json:"guest_email,omitempty"`
	PricingSchemaID *uint       `json:"pricing_schema_id,omitempty"`
	Status          string      `gorm:"size:20;not null;default:'draft'" json:"status"`
	Notes           *string     `gorm:"type:text" json:"notes,omitempty"`
	TotalNet        float64     `gorm:"type:numeric(12,2);not null;default:0" json:"total_net"`
	TotalGross      float64     `gorm:"type:numeric(12,2);not null;default:0" json:"total_gross"`
	Items           []QuoteItem `gorm:"foreignKey:QuoteID" json:"items,omitempty"`
	CreatedAt       time.Time   `gorm:"index:idx_quotes_created_at" json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (Quote) TableName() string {
	return "quotes"
}

type QuoteFilter struct {
	ClientID      *uint      `json:"client_id,omitempty"`
	IsGuestQuote  *bool      `json:"is_guest_quote,omitempty"`
	Status        *string    `json:"status,omitempty"`
	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
}

// QuoteItem is one priced line of a quote. PricePerDay and DiscountPercent are
// a snapshot of the tier resolved when the line was priced.
// Table: quote_items
type QuoteItem struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	QuoteID          uint       `gorm:"not null;index:idx_quote_items_quote_id" json:"quote_id"`
	EquipmentID      uint       `gorm:"not null;index:idx_quote_items_equipment_id" json:"equipment_id"`
	Equipment        *Equipment `gorm:"foreignKey:EquipmentID" json:"equipment,omitempty"`
	Quantity         int        `gorm:"not null" json:"quantity"`
	RentalPeriodDays int        `gorm:"not null" json:"rental_period_days"`
	PricePerDay      float64    `gorm:"type:numeric(10,2);not null" json:"price_per_day"`
	DiscountPercent  float64    `gorm:"type:numeric(5,2);not null;default:0" json:"discount_percent"`
	TotalPrice       float64    `gorm:"type:numeric(12,2);not null" json:"total_price"`

	IncludeFuelCost         bool     `gorm:"not null;default:false" json:"include_fuel_cost"`
	FuelCalculationType     string   `gorm:"size:20;not null;default:'hourly'" json:"fuel_calculation_type"`
	FuelConsumptionLH       *float64 `gorm:"column:fuel_consumption_lh;type:numeric(10,2)" json:"fuel_consumption_lh,omitempty"`
	HoursPerDay             *float64 `gorm:"type:numeric(10,2)" json:"hours_per_day,omitempty"`
	FuelConsumptionPer100km *float64 `gorm:"column:fuel_consumption_per_100km;type:numeric(10,2)" json:"fuel_consumption_per_100km,omitempty"`
	KilometersPerDay        *float64 `gorm:"type:numeric(10,2)" json:"kilometers_per_day,omitempty"`
	FuelPricePerLiter       *float64 `gorm:"type:numeric(10,2)" json:"fuel_price_per_liter,omitempty"`
	TotalFuelCost           float64  `gorm:"type:numeric(12,2);not null;default:0" json:"total_fuel_cost"`

	IncludeInstallationCost  bool     `gorm:"not null;default:false" json:"include_installation_cost"`
	InstallationDistanceKm   *float64 `gorm:"type:numeric(10,2)" json:"installation_distance_km,omitempty"`
	NumberOfTechnicians      *int     `json:"number_of_technicians,omitempty"`
	ServiceRatePerTechnician *float64 `gorm:"type:numeric(10,2)" json:"service_rate_per_technician,omitempty"`
	TravelRatePerKm          *float64 `gorm:"type:numeric(10,2)" json:"travel_rate_per_km,omitempty"`
	TotalInstallationCost    float64  `gorm:"type:numeric(12,2);not null;default:0" json:"total_installation_cost"`

	IncludeDisassemblyCost              bool     `gorm:"not null;default:false" json:"include_disassembly_cost"`
	DisassemblyDistanceKm               *float64 `gorm:"type:numeric(10,2)" json:"disassembly_distance_km,omitempty"`
	DisassemblyNumberOfTechnicians      *int     `json:"disassembly_number_of_technicians,omitempty"`
	DisassemblyServiceRatePerTechnician *float64 `gorm:"type:numeric(10,2)" json:"disassembly_service_rate_per_technician,omitempty"`
	DisassemblyTravelRatePerKm          *float64 `gorm:"type:numeric(10,2)" json:"disassembly_travel_rate_per_km,omitempty"`
	TotalDisassemblyCost                float64  `gorm:"type:numeric(12,2);not null;default:0" json:"total_disassembly_cost"`

	IncludeTravelServiceCost              bool     `gorm:"not null;default:false" json:"include_travel_service_cost"`
	TravelServiceDistanceKm               *float64 `gorm:"type:numeric(10,2)" json:"travel_service_distance_km,omitempty"`
	TravelServiceNumberOfTechnicians      *int     `json:"travel_service_number_of_technicians,omitempty"`
	TravelServiceServiceRatePerTechnician *float64 `gorm:"type:numeric(10,2)" json:"travel_service_service_rate_per_technician,omitempty"`
	TravelServiceTravelRatePerKm          *float64 `gorm:"type:numeric(10,2)" json:"travel_service_travel_rate_per_km,omitempty"`
	TravelServiceNumberOfTrips            *int     `json:"travel_service_number_of_trips,omitempty"`
	TotalTravelServiceCost                float64  `gorm:"type:numeric(12,2);not null;default:0" json:"total_travel_service_cost"`

	IncludeServiceItems   bool    `gorm:"not null;default:false" json:"include_service_items"`
	ServiceItem1Cost      float64 `gorm:"column:service_item_1_cost;type:numeric(10,2);not null;default:0" json:"service_item_1_cost"`
	ServiceItem2Cost      float64 `gorm:"column:service_item_2_cost;type:numeric(10,2);not null;default:0" json:"service_item_2_cost"`
	ServiceItem3Cost      float64 `gorm:"column:service_item_3_cost;type:numeric(10,2);not null;default:0" json:"service_item_3_cost"`
	ServiceItem4Cost      float64 `gorm:"column:service_item_4_cost;type:numeric(10,2);not null;default:0" json:"service_item_4_cost"`
	TotalServiceItemsCost float64 `gorm:"type:numeric(12,2);not null;default:0" json:"total_service_items_cost"`

	AdditionalCost  float64 `gorm:"type:numeric(12,2);not null;default:0" json:"additional_cost"`
	AccessoriesCost float64 `gorm:"type:numeric(12,2);not null;default:0" json:"accessories_cost"`

	// Notes holds either free text or the serialized structured notes payload.
	Notes *string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (QuoteItem) TableName() string {
	return "quote_items"
}

// ServiceItemCosts returns the four service line costs in position order.
func (qi QuoteItem) ServiceItemCosts() []float64 {
	return []float64{qi.ServiceItem1Cost, qi.ServiceItem2Cost, qi.ServiceItem3Cost, qi.ServiceItem4Cost}
}

type QuoteItemFilter struct {
	QuoteID     *uint `json:"quote_id,omitempty"`
	EquipmentID *uint `json:"equipment_id,omitempty"`
}
