package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirphl/ppp-rental/models"
	"gorm.io/gorm"
)

// APIKeyRepositoryImpl implements APIKeyRepository
type APIKeyRepositoryImpl struct {
	*BaseRepository[models.APIKey, models.APIKeyFilter]
}

func NewAPIKeyRepository(db *gorm.DB) APIKeyRepository {
	return &APIKeyRepositoryImpl{
		BaseRepository: NewBaseRepository[models.APIKey](db, applyAPIKeyFilter, "id ASC"),
	}
}

func applyAPIKeyFilter(db *gorm.DB, filter models.APIKeyFilter) *gorm.DB {
	if filter.Name != nil {
		db = db.Where("name = ?", *filter.Name)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	return db
}

func (r *APIKeyRepositoryImpl) ByKeyHash(ctx context.Context, keyHash string) (*models.APIKey, error) {
	var key models.APIKey
	err := r.getDB(ctx).Where("key_hash = ?", keyHash).Last(&key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find api key: %w", err)
	}
	return &key, nil
}

func (r *APIKeyRepositoryImpl) TouchLastUsed(ctx context.Context, id uint, at time.Time) error {
	return r.write(ctx, func(db *gorm.DB) error {
		err := db.Model(&models.APIKey{}).Where("id = ?", id).Update("last_used_at", at).Error
		if err != nil {
			return fmt.Errorf("failed to update last use of api key %d: %w", id, err)
		}
		return nil
	})
}
