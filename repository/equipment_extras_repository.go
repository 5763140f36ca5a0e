package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirphl/ppp-rental/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EquipmentAdditionalRepositoryImpl implements EquipmentAdditionalRepository
type EquipmentAdditionalRepositoryImpl struct {
	*BaseRepository[models.EquipmentAdditional, models.EquipmentAdditionalFilter]
}

func NewEquipmentAdditionalRepository(db *gorm.DB) EquipmentAdditionalRepository {
	return &EquipmentAdditionalRepositoryImpl{
		BaseRepository: NewBaseRepository[models.EquipmentAdditional](db, applyAdditionalFilter, "position ASC, id ASC"),
	}
}

func applyAdditionalFilter(db *gorm.DB, filter models.EquipmentAdditionalFilter) *gorm.DB {
	if filter.EquipmentID != nil {
		db = db.Where("equipment_id = ?", *filter.EquipmentID)
	}
	if filter.Type != nil {
		db = db.Where("type = ?", *filter.Type)
	}
	if len(filter.IDs) > 0 {
		db = db.Where("id IN ?", filter.IDs)
	}
	return db
}

// ListByEquipment lists the rows of one equipment; an empty type lists both kinds.
func (r *EquipmentAdditionalRepositoryImpl) ListByEquipment(ctx context.Context, equipmentID uint, additionalType string) ([]*models.EquipmentAdditional, error) {
	filter := models.EquipmentAdditionalFilter{EquipmentID: &equipmentID}
	if additionalType != "" {
		filter.Type = &additionalType
	}
	return r.ByFilter(ctx, filter, "", 0, 0)
}

func (r *EquipmentAdditionalRepositoryImpl) ByIDs(ctx context.Context, equipmentID uint, additionalType string, ids []uint) ([]*models.EquipmentAdditional, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	filter := models.EquipmentAdditionalFilter{EquipmentID: &equipmentID, IDs: ids}
	if additionalType != "" {
		filter.Type = &additionalType
	}
	return r.ByFilter(ctx, filter, "", 0, 0)
}

// EquipmentServiceItemRepositoryImpl implements EquipmentServiceItemRepository
type EquipmentServiceItemRepositoryImpl struct {
	*BaseRepository[models.EquipmentServiceItem, models.EquipmentServiceItemFilter]
}

func NewEquipmentServiceItemRepository(db *gorm.DB) EquipmentServiceItemRepository {
	return &EquipmentServiceItemRepositoryImpl{
		BaseRepository: NewBaseRepository[models.EquipmentServiceItem](db, applyServiceItemFilter, "sort_order ASC, id ASC"),
	}
}

func applyServiceItemFilter(db *gorm.DB, filter models.EquipmentServiceItemFilter) *gorm.DB {
	if filter.EquipmentID != nil {
		db = db.Where("equipment_id = ?", *filter.EquipmentID)
	}
	return db
}

func (r *EquipmentServiceItemRepositoryImpl) ListByEquipment(ctx context.Context, equipmentID uint) ([]*models.EquipmentServiceItem, error) {
	return r.ByFilter(ctx, models.EquipmentServiceItemFilter{EquipmentID: &equipmentID}, "", 0, 0)
}

// EquipmentServiceCostsRepositoryImpl implements EquipmentServiceCostsRepository
type EquipmentServiceCostsRepositoryImpl struct {
	*BaseRepository[models.EquipmentServiceCosts, models.EquipmentServiceCostsFilter]
}

func NewEquipmentServiceCostsRepository(db *gorm.DB) EquipmentServiceCostsRepository {
	return &EquipmentServiceCostsRepositoryImpl{
		BaseRepository: NewBaseRepository[models.EquipmentServiceCosts](db, applyServiceCostsFilter, ""),
	}
}

func applyServiceCostsFilter(db *gorm.DB, filter models.EquipmentServiceCostsFilter) *gorm.DB {
	if filter.EquipmentID != nil {
		db = db.Where("equipment_id = ?", *filter.EquipmentID)
	}
	return db
}

func (r *EquipmentServiceCostsRepositoryImpl) ByEquipmentID(ctx context.Context, equipmentID uint) (*models.EquipmentServiceCosts, error) {
	var costs models.EquipmentServiceCosts
	err := r.getDB(ctx).Where("equipment_id = ?", equipmentID).Last(&costs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find service costs of equipment %d: %w", equipmentID, err)
	}
	return &costs, nil
}

// Upsert inserts the configuration or overwrites the existing row of the same equipment.
func (r *EquipmentServiceCostsRepositoryImpl) Upsert(ctx context.Context, costs *models.EquipmentServiceCosts) error {
	return r.write(ctx, func(db *gorm.DB) error {
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "equipment_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"service_interval_months",
				"worker_hours",
				"worker_cost_per_hour",
				"travel_distance_km",
				"travel_rate_per_km",
				"updated_at",
			}),
		}).Create(costs).Error
		if err != nil {
			return fmt.Errorf("failed to upsert service costs: %w", err)
		}
		return nil
	})
}
