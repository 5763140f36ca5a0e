package dto

// CategoryResponse is an equipment category
type CategoryResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

type ListCategoriesResponse struct {
	Message string             `json:"message"`
	Items   []CategoryResponse `json:"items"`
}

// PricingTierResponse is one tier of an equipment price table. A missing
// period_end means the tier is unbounded above.
type PricingTierResponse struct {
	ID              uint    `json:"id"`
	EquipmentID     uint    `json:"equipment_id"`
	PeriodStart     int     `json:"period_start"`
	PeriodEnd       *int    `json:"period_end,omitempty"`
	PricePerDay     float64 `json:"price_per_day"`
	DiscountPercent float64 `json:"discount_percent"`
}

type CreatePricingTierRequest struct {
	EquipmentID     uint    `json:"equipment_id" validate:"required"`
	PeriodStart     int     `json:"period_start" validate:"required,min=1"`
	PeriodEnd       *int    `json:"period_end,omitempty" validate:"omitempty,min=1"`
	PricePerDay     float64 `json:"price_per_day" validate:"gte=0"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=100"`
}

type UpdatePricingTierRequest struct {
	PricePerDay     *float64 `json:"price_per_day,omitempty" validate:"omitempty,gte=0"`
	DiscountPercent *float64 `json:"discount_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// EquipmentResponse is a catalog entry with its category and tiers
type EquipmentResponse struct {
	ID                uint                  `json:"id"`
	Name              string                `json:"name"`
	Description       *string               `json:"description,omitempty"`
	Model             string                `json:"model"`
	Power             *string               `json:"power,omitempty"`
	CategoryID        uint                  `json:"category_id"`
	Category          *CategoryResponse     `json:"category,omitempty"`
	Quantity          int                   `json:"quantity"`
	AvailableQuantity int                   `json:"available_quantity"`
	FuelConsumption75 *float64              `json:"fuel_consumption_75,omitempty"`
	Dimensions        *string               `json:"dimensions,omitempty"`
	Weight            *string               `json:"weight,omitempty"`
	Engine            *string               `json:"engine,omitempty"`
	Alternator        *string               `json:"alternator,omitempty"`
	FuelTankCapacity  *float64              `json:"fuel_tank_capacity,omitempty"`
	ImageURL          *string               `json:"image_url,omitempty"`
	IsActive          bool                  `json:"is_active"`
	Pricing           []PricingTierResponse `json:"pricing"`
	CreatedAt         string                `json:"created_at"`
	UpdatedAt         string                `json:"updated_at"`
}

// EquipmentRequest is the payload of equipment create and full update
type EquipmentRequest struct {
	Name              string   `json:"name" validate:"required,max=255"`
	Description       *string  `json:"description,omitempty"`
	Model             string   `json:"model" validate:"required,max=255"`
	Power             *string  `json:"power,omitempty" validate:"omitempty,max=100"`
	CategoryID        uint     `json:"category_id" validate:"required"`
	Quantity          int      `json:"quantity" validate:"gte=0"`
	AvailableQuantity int      `json:"available_quantity" validate:"gte=0"`
	FuelConsumption75 *float64 `json:"fuel_consumption_75,omitempty" validate:"omitempty,gte=0"`
	Dimensions        *string  `json:"dimensions,omitempty" validate:"omitempty,max=255"`
	Weight            *string  `json:"weight,omitempty" validate:"omitempty,max=100"`
	Engine            *string  `json:"engine,omitempty" validate:"omitempty,max=255"`
	Alternator        *string  `json:"alternator,omitempty" validate:"omitempty,max=255"`
	FuelTankCapacity  *float64 `json:"fuel_tank_capacity,omitempty" validate:"omitempty,gte=0"`
	ImageURL          *string  `json:"image_url,omitempty" validate:"omitempty,max=1024"`
}

type UpdateEquipmentQuantityRequest struct {
	Quantity          int `json:"quantity"`
	AvailableQuantity int `json:"available_quantity"`
}

type ListEquipmentResponse struct {
	Message string              `json:"message"`
	Items   []EquipmentResponse `json:"items"`
}

// AdditionalResponse is an additional equipment or accessory row
type AdditionalResponse struct {
	ID          uint    `json:"id"`
	EquipmentID uint    `json:"equipment_id"`
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Position    int     `json:"position"`
}

type CreateAdditionalRequest struct {
	EquipmentID uint    `json:"equipment_id" validate:"required"`
	Type        string  `json:"type" validate:"required,oneof=additional accessories"`
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gte=0"`
	Position    int     `json:"position" validate:"gte=0"`
}

type UpdateAdditionalRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Position    *int     `json:"position,omitempty" validate:"omitempty,gte=0"`
}

type ListAdditionalResponse struct {
	Message string               `json:"message"`
	Items   []AdditionalResponse `json:"items"`
}

// ServiceItemResponse names one service line cost of an equipment
type ServiceItemResponse struct {
	ID              uint    `json:"id"`
	EquipmentID     uint    `json:"equipment_id"`
	ItemName        string  `json:"item_name"`
	ItemDescription *string `json:"item_description,omitempty"`
	ItemCost        float64 `json:"item_cost"`
	SortOrder       int     `json:"sort_order"`
}

type ServiceItemRequest struct {
	ItemName        string  `json:"item_name" validate:"required,max=255"`
	ItemDescription *string `json:"item_description,omitempty"`
	ItemCost        float64 `json:"item_cost" validate:"gte=0"`
	SortOrder       int     `json:"sort_order" validate:"gte=0"`
}

type ListServiceItemsResponse struct {
	Message string                `json:"message"`
	Items   []ServiceItemResponse `json:"items"`
}

type ServiceCostsResponse struct {
	ID                    uint    `json:"id"`
	EquipmentID           uint    `json:"equipment_id"`
	ServiceIntervalMonths int     `json:"service_interval_months"`
	WorkerHours           float64 `json:"worker_hours"`
	WorkerCostPerHour     float64 `json:"worker_cost_per_hour"`
	TravelDistanceKm      float64 `json:"travel_distance_km"`
	TravelRatePerKm       float64 `json:"travel_rate_per_km"`
}

type UpsertServiceCostsRequest struct {
	ServiceIntervalMonths int     `json:"service_interval_months" validate:"required,min=1,max=120"`
	WorkerHours           float64 `json:"worker_hours" validate:"gte=0"`
	WorkerCostPerHour     float64 `json:"worker_cost_per_hour" validate:"gte=0"`
	TravelDistanceKm      float64 `json:"travel_distance_km" validate:"gte=0"`
	TravelRatePerKm       float64 `json:"travel_rate_per_km" validate:"gte=0"`
}
