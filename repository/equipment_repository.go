package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirphl/ppp-rental/models"
	"gorm.io/gorm"
)

// EquipmentCategoryRepositoryImpl implements EquipmentCategoryRepository
type EquipmentCategoryRepositoryImpl struct {
	*BaseRepository[models.EquipmentCategory, models.EquipmentCategoryFilter]
}

func NewEquipmentCategoryRepository(db *gorm.DB) EquipmentCategoryRepository {
	return &EquipmentCategoryRepositoryImpl{
		BaseRepository: NewBaseRepository[models.EquipmentCategory](db, applyCategoryFilter, "name ASC"),
	}
}

func applyCategoryFilter(db *gorm.DB, filter models.EquipmentCategoryFilter) *gorm.DB {
	if filter.Name != nil {
		db = db.Where("name = ?", *filter.Name)
	}
	return db
}

func (r *EquipmentCategoryRepositoryImpl) ByName(ctx context.Context, name string) (*models.EquipmentCategory, error) {
	var category models.EquipmentCategory
	err := r.getDB(ctx).Where("name = ?", name).Last(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find category by name: %w", err)
	}
	return &category, nil
}

// EquipmentRepositoryImpl implements EquipmentRepository
type EquipmentRepositoryImpl struct {
	*BaseRepository[models.Equipment, models.EquipmentFilter]
}

func NewEquipmentRepository(db *gorm.DB) EquipmentRepository {
	return &EquipmentRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Equipment](db, applyEquipmentFilter, "name ASC"),
	}
}

func applyEquipmentFilter(db *gorm.DB, filter models.EquipmentFilter) *gorm.DB {
	if filter.CategoryID != nil {
		db = db.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	if filter.AvailableMin != nil {
		db = db.Where("available_quantity >= ?", *filter.AvailableMin)
	}
	return db
}

func preloadTiers(db *gorm.DB) *gorm.DB {
	return db.Order("period_start ASC, id ASC")
}

func (r *EquipmentRepositoryImpl) ByIDWithDetails(ctx context.Context, id uint) (*models.Equipment, error) {
	var equipment models.Equipment
	err := r.getDB(ctx).
		Preload("Category").
		Preload("Pricing", preloadTiers).
		Where("id = ?", id).
		Last(&equipment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find equipment %d: %w", id, err)
	}
	return &equipment, nil
}

func (r *EquipmentRepositoryImpl) ListWithDetails(ctx context.Context, active bool) ([]*models.Equipment, error) {
	var rows []*models.Equipment
	err := r.getDB(ctx).
		Preload("Category").
		Preload("Pricing", preloadTiers).
		Where("is_active = ?", active).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return rows, nil
}

func (r *EquipmentRepositoryImpl) ListPublic(ctx context.Context) ([]*models.Equipment, error) {
	var rows []*models.Equipment
	err := r.getDB(ctx).
		Select("equipment.*").
		Joins("JOIN equipment_categories ON equipment_categories.id = equipment.category_id").
		Preload("Category").
		Preload("Pricing", preloadTiers).
		Where("equipment.is_active = ? AND equipment.available_quantity > ?", true, 0).
		Order("equipment_categories.name ASC, equipment.name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list public equipment: %w", err)
	}
	return rows, nil
}

func (r *EquipmentRepositoryImpl) UpdateQuantities(ctx context.Context, id uint, quantity, available int) error {
	return r.write(ctx, func(db *gorm.DB) error {
		err := db.Model(&models.Equipment{}).Where("id = ?", id).Updates(map[string]any{
			"quantity":           quantity,
			"available_quantity": available,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update quantities of equipment %d: %w", id, err)
		}
		return nil
	})
}

func (r *EquipmentRepositoryImpl) SetActive(ctx context.Context, id uint, active bool) error {
	return r.write(ctx, func(db *gorm.DB) error {
		err := db.Model(&models.Equipment{}).Where("id = ?", id).Update("is_active", active).Error
		if err != nil {
			return fmt.Errorf("failed to set active flag of equipment %d: %w", id, err)
		}
		return nil
	})
}

func (r *EquipmentRepositoryImpl) DeleteWithCatalog(ctx context.Context, id uint) (bool, error) {
	var affected int64
	err := r.write(ctx, func(db *gorm.DB) error {
		for _, child := range []any{
			&models.EquipmentPricing{},
			&models.EquipmentAdditional{},
			&models.EquipmentServiceItem{},
			&models.EquipmentServiceCosts{},
		} {
			if err := db.Where("equipment_id = ?", id).Delete(child).Error; err != nil {
				return fmt.Errorf("failed to delete catalog rows of equipment %d: %w", id, err)
			}
		}
		res := db.Delete(&models.Equipment{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete equipment %d: %w", id, res.Error)
		}
		affected = res.RowsAffected
		return nil
	})
	return affected > 0, err
}

// EquipmentPricingRepositoryImpl implements EquipmentPricingRepository
type EquipmentPricingRepositoryImpl struct {
	*BaseRepository[models.EquipmentPricing, models.EquipmentPricingFilter]
}

func NewEquipmentPricingRepository(db *gorm.DB) EquipmentPricingRepository {
	return &EquipmentPricingRepositoryImpl{
		BaseRepository: NewBaseRepository[models.EquipmentPricing](db, applyPricingFilter, "period_start ASC, id ASC"),
	}
}

func applyPricingFilter(db *gorm.DB, filter models.EquipmentPricingFilter) *gorm.DB {
	if filter.EquipmentID != nil {
		db = db.Where("equipment_id = ?", *filter.EquipmentID)
	}
	return db
}

func (r *EquipmentPricingRepositoryImpl) ListByEquipment(ctx context.Context, equipmentID uint) ([]*models.EquipmentPricing, error) {
	return r.ByFilter(ctx, models.EquipmentPricingFilter{EquipmentID: &equipmentID}, "", 0, 0)
}
