package dto

type PricingSchemaResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsDefault   bool    `json:"is_default"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
}

type CreatePricingSchemaRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description,omitempty"`
	IsDefault   bool    `json:"is_default"`
}

type UpdatePricingSchemaRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	IsDefault   *bool   `json:"is_default,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type ListPricingSchemasResponse struct {
	Message string                  `json:"message"`
	Items   []PricingSchemaResponse `json:"items"`
}
