package dto

// PublicEquipmentResponse is the catalog entry exposed to API key holders
type PublicEquipmentResponse struct {
	ID                uint                  `json:"id"`
	Name              string                `json:"name"`
	CategoryID        uint                  `json:"category_id"`
	Category          string                `json:"category"`
	Description       *string               `json:"description,omitempty"`
	Model             string                `json:"model"`
	Power             *string               `json:"power,omitempty"`
	AvailableQuantity int                   `json:"available_quantity"`
	ImageURL          *string               `json:"image_url,omitempty"`
	Pricing           []PricingTierResponse `json:"pricing"`
}

type PublicEquipmentListResponse struct {
	Message string                    `json:"message"`
	Items   []PublicEquipmentResponse `json:"items"`
}

type PublicQuoteItemRequest struct {
	EquipmentID  uint `json:"equipment_id" validate:"required"`
	Quantity     int  `json:"quantity" validate:"required,min=1"`
	RentalPeriod int  `json:"rental_period" validate:"required,min=1"`
}

// PublicQuoteRequest upserts the client by company name
type PublicQuoteRequest struct {
	ClientCompanyName   string                   `json:"client_company_name" validate:"required,max=255"`
	ClientContactPerson *string                  `json:"client_contact_person,omitempty" validate:"omitempty,max=255"`
	ClientPhone         *string                  `json:"client_phone,omitempty" validate:"omitempty,max=50"`
	ClientEmail         *string                  `json:"client_email,omitempty" validate:"omitempty,email,max=255"`
	ClientAddress       *string                  `json:"client_address,omitempty"`
	Notes               *string                  `json:"notes,omitempty" validate:"omitempty,max=5000"`
	Equipment           []PublicQuoteItemRequest `json:"equipment" validate:"required,min=1,dive"`
}

type PublicQuoteResponse struct {
	Message string        `json:"message"`
	Quote   QuoteResponse `json:"quote"`
}

type PublicAssessmentResponse struct {
	Message        string `json:"message"`
	ID             uint   `json:"id"`
	ResponseNumber string `json:"response_number"`
}
