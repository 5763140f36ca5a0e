// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/amirphl/ppp-rental/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

type EquipmentCategoryRepository interface {
	Repository[models.EquipmentCategory, models.EquipmentCategoryFilter]
	ByName(ctx context.Context, name string) (*models.EquipmentCategory, error)
}

type EquipmentRepository interface {
	Repository[models.Equipment, models.EquipmentFilter]
	// ByIDWithDetails loads the category and the tiers ordered by period start.
	ByIDWithDetails(ctx context.Context, id uint) (*models.Equipment, error)
	ListWithDetails(ctx context.Context, active bool) ([]*models.Equipment, error)
	// ListPublic returns active equipment with stock, ordered by category name then name.
	ListPublic(ctx context.Context) ([]*models.Equipment, error)
	UpdateQuantities(ctx context.Context, id uint, quantity, available int) error
	SetActive(ctx context.Context, id uint, active bool) error
	// DeleteWithCatalog removes the equipment with its tiers, extras and service rows.
	DeleteWithCatalog(ctx context.Context, id uint) (bool, error)
}

type EquipmentPricingRepository interface {
	Repository[models.EquipmentPricing, models.EquipmentPricingFilter]
	ListByEquipment(ctx context.Context, equipmentID uint) ([]*models.EquipmentPricing, error)
}

type EquipmentAdditionalRepository interface {
	Repository[models.EquipmentAdditional, models.EquipmentAdditionalFilter]
	ListByEquipment(ctx context.Context, equipmentID uint, additionalType string) ([]*models.EquipmentAdditional, error)
	ByIDs(ctx context.Context, equipmentID uint, additionalType string, ids []uint) ([]*models.EquipmentAdditional, error)
}

type EquipmentServiceItemRepository interface {
	Repository[models.EquipmentServiceItem, models.EquipmentServiceItemFilter]
	ListByEquipment(ctx context.Context, equipmentID uint) ([]*models.EquipmentServiceItem, error)
}

type EquipmentServiceCostsRepository interface {
	Repository[models.EquipmentServiceCosts, models.EquipmentServiceCostsFilter]
	ByEquipmentID(ctx context.Context, equipmentID uint) (*models.EquipmentServiceCosts, error)
	Upsert(ctx context.Context, costs *models.EquipmentServiceCosts) error
}

type ClientRepository interface {
	Repository[models.Client, models.ClientFilter]
	ByCompanyName(ctx context.Context, companyName string) (*models.Client, error)
}

type QuoteRepository interface {
	Repository[models.Quote, models.QuoteFilter]
	// ByIDWithDetails loads the client and the items with their equipment.
	ByIDWithDetails(ctx context.Context, id uint) (*models.Quote, error)
	ListWithClient(ctx context.Context, limit, offset int) ([]*models.Quote, error)
	UpdateTotals(ctx context.Context, id uint, totalNet, totalGross float64) error
	// DeleteWithItems removes the quote and every item it owns.
	DeleteWithItems(ctx context.Context, id uint) (bool, error)
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error)
}

type QuoteItemRepository interface {
	Repository[models.QuoteItem, models.QuoteItemFilter]
	ListByQuote(ctx context.Context, quoteID uint) ([]*models.QuoteItem, error)
	LineTotals(ctx context.Context, quoteID uint) ([]float64, error)
}

type PricingSchemaRepository interface {
	Repository[models.PricingSchema, models.PricingSchemaFilter]
	// EnsureWithID inserts schema under its preset id unless that id exists,
	// and reports whether a row was inserted.
	EnsureWithID(ctx context.Context, schema *models.PricingSchema) (bool, error)
}

type NeedsAssessmentQuestionRepository interface {
	Repository[models.NeedsAssessmentQuestion, models.NeedsAssessmentQuestionFilter]
	// ListOrdered returns questions ordered by category then position.
	ListOrdered(ctx context.Context, activeOnly bool) ([]*models.NeedsAssessmentQuestion, error)
}

type NeedsAssessmentResponseRepository interface {
	Repository[models.NeedsAssessmentResponse, models.NeedsAssessmentResponseFilter]
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error)
}

type APIKeyRepository interface {
	Repository[models.APIKey, models.APIKeyFilter]
	ByKeyHash(ctx context.Context, keyHash string) (*models.APIKey, error)
	TouchLastUsed(ctx context.Context, id uint, at time.Time) error
}

type SequenceCounterRepository interface {
	// Increment bumps the named counter, creating it at 1, and returns the new value.
	Increment(ctx context.Context, name string) (int64, error)
	ByName(ctx context.Context, name string) (*models.SequenceCounter, error)
}
