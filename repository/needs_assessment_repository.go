package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/amirphl/ppp-rental/models"
	"gorm.io/gorm"
)

// NeedsAssessmentQuestionRepositoryImpl implements NeedsAssessmentQuestionRepository
type NeedsAssessmentQuestionRepositoryImpl struct {
	*BaseRepository[models.NeedsAssessmentQuestion, models.NeedsAssessmentQuestionFilter]
}

func NewNeedsAssessmentQuestionRepository(db *gorm.DB) NeedsAssessmentQuestionRepository {
	return &NeedsAssessmentQuestionRepositoryImpl{
		BaseRepository: NewBaseRepository[models.NeedsAssessmentQuestion](db, applyQuestionFilter, "category ASC, position ASC, id ASC"),
	}
}

func applyQuestionFilter(db *gorm.DB, filter models.NeedsAssessmentQuestionFilter) *gorm.DB {
	if filter.Category != nil {
		db = db.Where("category = ?", *filter.Category)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	return db
}

func (r *NeedsAssessmentQuestionRepositoryImpl) ListOrdered(ctx context.Context, activeOnly bool) ([]*models.NeedsAssessmentQuestion, error) {
	filter := models.NeedsAssessmentQuestionFilter{}
	if activeOnly {
		active := true
		filter.IsActive = &active
	}
	rows, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return rows, nil
}

// NeedsAssessmentResponseRepositoryImpl implements NeedsAssessmentResponseRepository
type NeedsAssessmentResponseRepositoryImpl struct {
	*BaseRepository[models.NeedsAssessmentResponse, models.NeedsAssessmentResponseFilter]
}

func NewNeedsAssessmentResponseRepository(db *gorm.DB) NeedsAssessmentResponseRepository {
	return &NeedsAssessmentResponseRepositoryImpl{
		BaseRepository: NewBaseRepository[models.NeedsAssessmentResponse](db, applyResponseFilter, "created_at DESC, id DESC"),
	}
}

func applyResponseFilter(db *gorm.DB, filter models.NeedsAssessmentResponseFilter) *gorm.DB {
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at < ?", *filter.CreatedBefore)
	}
	return db
}

func (r *NeedsAssessmentResponseRepositoryImpl) CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	return r.Count(ctx, models.NeedsAssessmentResponseFilter{CreatedAfter: &start, CreatedBefore: &end})
}
