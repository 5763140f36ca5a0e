package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirphl/ppp-rental/models"
	"gorm.io/gorm"
)

// QuoteRepositoryImpl implements QuoteRepository
type QuoteRepositoryImpl struct {
	*BaseRepository[models.Quote, models.QuoteFilter]
}

func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &QuoteRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Quote](db, applyQuoteFilter, "created_at DESC, id DESC"),
	}
}

func applyQuoteFilter(db *gorm.DB, filter models.QuoteFilter) *gorm.DB {
	if filter.ClientID != nil {
		db = db.Where("client_id = ?", *filter.ClientID)
	}
	if filter.IsGuestQuote != nil {
		db = db.Where("is_guest_quote = ?", *filter.IsGuestQuote)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at < ?", *filter.CreatedBefore)
	}
	return db
}

func (r *QuoteRepositoryImpl) ByIDWithDetails(ctx context.Context, id uint) (*models.Quote, error) {
	var quote models.Quote
	err := r.getDB(ctx).
		Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Equipment").
		Where("id = ?", id).
		Last(&quote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find quote %d: %w", id, err)
	}
	return &quote, nil
}

func (r *QuoteRepositoryImpl) ListWithClient(ctx context.Context, limit, offset int) ([]*models.Quote, error) {
	db := r.getDB(ctx).Preload("Client").Preload("Items").Order("created_at DESC, id DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if offset > 0 {
		db = db.Offset(offset)
	}

	var rows []*models.Quote
	if err := db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	return rows, nil
}

func (r *QuoteRepositoryImpl) UpdateTotals(ctx context.Context, id uint, totalNet, totalGross float64) error {
	return r.write(ctx, func(db *gorm.DB) error {
		err := db.Model(&models.Quote{}).Where("id = ?", id).Updates(map[string]any{
			"total_net":   totalNet,
			"total_gross": totalGross,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update totals of quote %d: %w", id, err)
		}
		return nil
	})
}

func (r *QuoteRepositoryImpl) DeleteWithItems(ctx context.Context, id uint) (bool, error) {
	var affected int64
	err := r.write(ctx, func(db *gorm.DB) error {
		if err := db.Where("quote_id = ?", id).Delete(&models.QuoteItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete items of quote %d: %w", id, err)
		}
		res := db.Delete(&models.Quote{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete quote %d: %w", id, res.Error)
		}
		affected = res.RowsAffected
		return nil
	})
	return affected > 0, err
}

// CountCreatedBetween counts quotes with start <= created_at < end.
func (r *QuoteRepositoryImpl) CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	return r.Count(ctx, models.QuoteFilter{CreatedAfter: &start, CreatedBefore: &end})
}

// QuoteItemRepositoryImpl implements QuoteItemRepository
type QuoteItemRepositoryImpl struct {
	*BaseRepository[models.QuoteItem, models.QuoteItemFilter]
}

func NewQuoteItemRepository(db *gorm.DB) QuoteItemRepository {
	return &QuoteItemRepositoryImpl{
		BaseRepository: NewBaseRepository[models.QuoteItem](db, applyQuoteItemFilter, "id ASC"),
	}
}

func applyQuoteItemFilter(db *gorm.DB, filter models.QuoteItemFilter) *gorm.DB {
	if filter.QuoteID != nil {
		db = db.Where("quote_id = ?", *filter.QuoteID)
	}
	if filter.EquipmentID != nil {
		db = db.Where("equipment_id = ?", *filter.EquipmentID)
	}
	return db
}

func (r *QuoteItemRepositoryImpl) ListByQuote(ctx context.Context, quoteID uint) ([]*models.QuoteItem, error) {
	return r.ByFilter(ctx, models.QuoteItemFilter{QuoteID: &quoteID}, "", 0, 0)
}

// LineTotals returns the persisted total of every item of the quote.
func (r *QuoteItemRepositoryImpl) LineTotals(ctx context.Context, quoteID uint) ([]float64, error) {
	var totals []float64
	err := r.getDB(ctx).Model(&models.QuoteItem{}).
		Where("quote_id = ?", quoteID).
		Order("id ASC").
		Pluck("total_price", &totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load line totals of quote %d: %w", quoteID, err)
	}
	return totals, nil
}
