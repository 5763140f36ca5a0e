package models

import "time"

// PricingSchema is the pricing scheme a quote is created under.
// Table: pricing_schemas
type PricingSchema struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	IsDefault   bool      `gorm:"not null;default:false" json:"is_default"`
	IsActive    *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (PricingSchema) TableName() string {
	return "pricing_schemas"
}

type PricingSchemaFilter struct {
	IsActive  *bool `json:"is_active,omitempty"`
	IsDefault *bool `json:"is_default,omitempty"`
}
