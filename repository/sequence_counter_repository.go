package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirphl/ppp-rental/models"
	"github.com/amirphl/ppp-rental/utils"
	"gorm.io/gorm"
)

// SequenceCounterRepositoryImpl implements SequenceCounterRepository
type SequenceCounterRepositoryImpl struct {
	*BaseRepository[models.SequenceCounter, struct{}]
}

func NewSequenceCounterRepository(db *gorm.DB) SequenceCounterRepository {
	return &SequenceCounterRepositoryImpl{
		BaseRepository: NewBaseRepository[models.SequenceCounter, struct{}](db, nil, "name ASC"),
	}
}

const incrementCounterSQL = `
	INSERT INTO sequence_counters (name, last_value, created_at, updated_at)
	VALUES (?, 1, ?, ?)
	ON CONFLICT (name) DO UPDATE
	SET last_value = sequence_counters.last_value + 1, updated_at = excluded.updated_at
	RETURNING last_value
`

// Increment is a single upsert statement, so concurrent callers never observe
// the same value.
func (r *SequenceCounterRepositoryImpl) Increment(ctx context.Context, name string) (int64, error) {
	var value int64
	err := r.write(ctx, func(db *gorm.DB) error {
		now := utils.UTCNow()
		if err := db.Raw(incrementCounterSQL, name, now, now).Scan(&value).Error; err != nil {
			return fmt.Errorf("failed to increment counter %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}

func (r *SequenceCounterRepositoryImpl) ByName(ctx context.Context, name string) (*models.SequenceCounter, error) {
	var counter models.SequenceCounter
	err := r.getDB(ctx).Where("name = ?", name).Take(&counter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find counter %s: %w", name, err)
	}
	return &counter, nil
}
