// Package models contains the persistent entities of the rental catalog, quotes and assessments
package models

import "time"

// Equipment additional row types
const (
	AdditionalTypeAdditional  = "additional"
	AdditionalTypeAccessories = "accessories"
)

// EquipmentCategory groups equipment in the catalog.
// Table: equipment_categories
type EquipmentCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null;uniqueIndex:uk_equipment_categories_name" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (EquipmentCategory) TableName() string {
	return "equipment_categories"
}

type EquipmentCategoryFilter struct {
	Name *string `json:"name,omitempty"`
}

// Equipment is a rentable catalog entry. Inactive equipment is soft deleted.
// Table: equipment
type Equipment struct {
	ID                uint               `gorm:"primaryKey" json:"id"`
	Name              string             `gorm:"size:255;not null;index:idx_equipment_name" json:"name"`
	Description       *string            `gorm:"type:text" json:"description,omitempty"`
	Model             string             `gorm:"size:255;not null" json:"model"`
	Power             *string            `gorm:"size:100" json:"power,omitempty"`
	CategoryID        uint               `gorm:"not null;index:idx_equipment_category_id" json:"category_id"`
	Category          *EquipmentCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Quantity          int                `gorm:"not null;default:0" json:"quantity"`
	AvailableQuantity int                `gorm:"not null;default:0" json:"available_quantity"`
	FuelConsumption75 *float64           `gorm:"type:numeric(10,2)" json:"fuel_consumption_75,omitempty"`
	Dimensions        *string            `gorm:"size:255" json:"dimensions,omitempty"`
	Weight            *string            `gorm:"size:100" json:"weight,omitempty"`
	Engine            *string            `gorm:"size:255" json:"engine,omitempty"`
	Alternator        *string            `gorm:"size:255" json:"alternator,omitempty"`
	FuelTankCapacity  *float64           `gorm:"type:numeric(10,2)" json:"fuel_tank_capacity,omitempty"`
	ImageURL          *string            `gorm:"size:1024" json:"image_url,omitempty"`
	IsActive          *bool              `gorm:"not null;default:true;index:idx_equipment_is_active" json:"is_active"`
	Pricing           []EquipmentPricing `gorm:"foreignKey:EquipmentID" json:"pricing,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

func (Equipment) TableName() string {
	return "equipment"
}

type EquipmentFilter struct {
	CategoryID   *uint `json:"category_id,omitempty"`
	IsActive     *bool `json:"is_active,omitempty"`
	AvailableMin *int  `json:"available_min,omitempty"`
}

// EquipmentPricing is one day-count tier of an equipment price table.
// A nil PeriodEnd means the tier is unbounded above.
// Table: equipment_pricing
type EquipmentPricing struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	EquipmentID     uint      `gorm:"not null;index:idx_equipment_pricing_equipment_id" json:"equipment_id"`
	PeriodStart     int       `gorm:"not null" json:"period_start"`
	PeriodEnd       *int      `json:"period_end,omitempty"`
	PricePerDay     float64   `gorm:"type:numeric(10,2);not null" json:"price_per_day"`
	DiscountPercent float64   `gorm:"type:numeric(5,2);not null;default:0" json:"discount_percent"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (EquipmentPricing) TableName() string {
	return "equipment_pricing"
}

type EquipmentPricingFilter struct {
	EquipmentID *uint `json:"equipment_id,omitempty"`
}

// EquipmentAdditional is an extra that can be attached to a quote line,
// either additional equipment or an accessory.
// Table: equipment_additional
type EquipmentAdditional struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EquipmentID uint      `gorm:"not null;index:idx_equipment_additional_equipment_id" json:"equipment_id"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Price       float64   `gorm:"type:numeric(10,2);not null;default:0" json:"price"`
	Position    int       `gorm:"not null;default:1" json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (EquipmentAdditional) TableName() string {
	return "equipment_additional"
}

type EquipmentAdditionalFilter struct {
	EquipmentID *uint   `json:"equipment_id,omitempty"`
	Type        *string `json:"type,omitempty"`
	IDs         []uint  `json:"ids,omitempty"`
}

// EquipmentServiceItem names one of the service line costs of a quote line.
// The first four items, ordered by SortOrder then ID, label serviceItem1..4.
// Table: equipment_service_items
type EquipmentServiceItem struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	EquipmentID     uint      `gorm:"not null;index:idx_equipment_service_items_equipment_id" json:"equipment_id"`
	ItemName        string    `gorm:"size:255;not null" json:"item_name"`
	ItemDescription *string   `gorm:"type:text" json:"item_description,omitempty"`
	ItemCost        float64   `gorm:"type:numeric(10,2);not null;default:0" json:"item_cost"`
	SortOrder       int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (EquipmentServiceItem) TableName() string {
	return "equipment_service_items"
}

type EquipmentServiceItemFilter struct {
	EquipmentID *uint `json:"equipment_id,omitempty"`
}

// EquipmentServiceCosts holds the service configuration of one equipment.
// Table: equipment_service_costs
type EquipmentServiceCosts struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	EquipmentID           uint      `gorm:"not null;uniqueIndex:uk_equipment_service_costs_equipment_id" json:"equipment_id"`
	ServiceIntervalMonths int       `gorm:"not null;default:12" json:"service_interval_months"`
	WorkerHours           float64   `gorm:"type:numeric(10,2);not null;default:0" json:"worker_hours"`
	WorkerCostPerHour     float64   `gorm:"type:numeric(10,2);not null;default:0" json:"worker_cost_per_hour"`
	TravelDistanceKm      float64   `gorm:"type:numeric(10,2);not null;default:0" json:"travel_distance_km"`
	TravelRatePerKm       float64   `gorm:"type:numeric(10,2);not null;default:0" json:"travel_rate_per_km"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (EquipmentServiceCosts) TableName() string {
	return "equipment_service_costs"
}

type EquipmentServiceCostsFilter struct {
	EquipmentID *uint `json:"equipment_id,omitempty"`
}
