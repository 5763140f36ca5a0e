package repository

import (
	"context"
	"fmt"

	"github.com/amirphl/ppp-rental/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PricingSchemaRepositoryImpl implements PricingSchemaRepository
type PricingSchemaRepositoryImpl struct {
	*BaseRepository[models.PricingSchema, models.PricingSchemaFilter]
}

func NewPricingSchemaRepository(db *gorm.DB) PricingSchemaRepository {
	return &PricingSchemaRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PricingSchema](db, applyPricingSchemaFilter, "id ASC"),
	}
}

func applyPricingSchemaFilter(db *gorm.DB, filter models.PricingSchemaFilter) *gorm.DB {
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsDefault != nil {
		db = db.Where("is_default = ?", *filter.IsDefault)
	}
	return db
}

func (r *PricingSchemaRepositoryImpl) EnsureWithID(ctx context.Context, schema *models.PricingSchema) (bool, error) {
	var inserted bool
	err := r.write(ctx, func(db *gorm.DB) error {
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(schema)
		if res.Error != nil {
			return fmt.Errorf("failed to ensure pricing schema %d: %w", schema.ID, res.Error)
		}
		inserted = res.RowsAffected > 0

		// An explicit id leaves the postgres sequence behind.
		if inserted && db.Dialector.Name() == "postgres" {
			err := db.Exec("SELECT setval(pg_get_serial_sequence('pricing_schemas', 'id'), (SELECT MAX(id) FROM pricing_schemas))").Error
			if err != nil {
				return fmt.Errorf("failed to advance pricing schema sequence: %w", err)
			}
		}
		return nil
	})
	return inserted, err
}
