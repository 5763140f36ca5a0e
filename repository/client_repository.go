package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirphl/ppp-rental/models"
	"gorm.io/gorm"
)

// ClientRepositoryImpl implements ClientRepository
type ClientRepositoryImpl struct {
	*BaseRepository[models.Client, models.ClientFilter]
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &ClientRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Client](db, applyClientFilter, "company_name ASC"),
	}
}

func applyClientFilter(db *gorm.DB, filter models.ClientFilter) *gorm.DB {
	if filter.CompanyName != nil {
		db = db.Where("company_name = ?", *filter.CompanyName)
	}
	return db
}

// ByCompanyName returns the most recently created client with that exact name.
func (r *ClientRepositoryImpl) ByCompanyName(ctx context.Context, companyName string) (*models.Client, error) {
	var client models.Client
	err := r.getDB(ctx).Where("company_name = ?", companyName).Last(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find client by company name: %w", err)
	}
	return &client, nil
}
