package models

// All lists every persistent model in migration order.
func All() []any {
	return []any{
		&EquipmentCategory{},
		&Equipment{},
		&EquipmentPricing{},
		&EquipmentAdditional{},
		&EquipmentServiceItem{},
		&EquipmentServiceCosts{},
		&Client{},
		&PricingSchema{},
		&Quote{},
		&QuoteItem{},
		&NeedsAssessmentQuestion{},
		&NeedsAssessmentResponse{},
		&APIKey{},
		&SequenceCounter{},
	}
}
