package businessflow

import (
	"context"
	"strings"

	"github.com/amirphl/ppp-rental/app/dto"
	"github.com/amirphl/ppp-rental/models"
	"github.com/amirphl/ppp-rental/repository"
	"github.com/amirphl/ppp-rental/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultSchemaName = "Standardowy"

// PricingSchemaFlow manages the pricing schemas a quote can be filed under
type PricingSchemaFlow interface {
	ListSchemas(ctx context.Context) (*dto.ListPricingSchemasResponse, error)
	GetSchema(ctx context.Context, id uint) (*dto.PricingSchemaResponse, error)
	CreateSchema(ctx context.Context, req *dto.CreatePricingSchemaRequest) (*dto.PricingSchemaResponse, error)
	UpdateSchema(ctx context.Context, id uint, req *dto.UpdatePricingSchemaRequest) (*dto.PricingSchemaResponse, error)
	DeleteSchema(ctx context.Context, id uint) error
	// EnsureDefault creates the schema public quotes are filed under when it is missing.
	EnsureDefault(ctx context.Context, id uint) error
}

type PricingSchemaFlowImpl struct {
	db         *gorm.DB
	schemaRepo repository.PricingSchemaRepository
	logger     *zap.Logger
}

func NewPricingSchemaFlow(db *gorm.DB, schemaRepo repository.PricingSchemaRepository, logger *zap.Logger) PricingSchemaFlow {
	return &PricingSchemaFlowImpl{db: db, schemaRepo: schemaRepo, logger: loggerOrNop(logger)}
}

func (f *PricingSchemaFlowImpl) ListSchemas(ctx context.Context) (*dto.ListPricingSchemasResponse, error) {
	rows, err := f.schemaRepo.ByFilter(ctx, models.PricingSchemaFilter{}, "", 0, 0)
	if err != nil {
		return nil, NewBusinessError("PRICING_SCHEMA_LIST_FAILED", "Failed to list pricing schemas", err)
	}
	items := make([]dto.PricingSchemaResponse, 0, len(rows))
	for _, s := range rows {
		items = append(items, toPricingSchemaResponse(s))
	}
	return &dto.ListPricingSchemasResponse{Message: "Pricing schemas retrieved successfully", Items: items}, nil
}

func (f *PricingSchemaFlowImpl) GetSchema(ctx context.Context, id uint) (*dto.PricingSchemaResponse, error) {
	schema, err := f.schemaRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("PRICING_SCHEMA_LOOKUP_FAILED", "Failed to load pricing schema", err)
	}
	if schema == nil {
		return nil, ErrPricingSchemaNotFound
	}
	res := toPricingSchemaResponse(schema)
	return &res, nil
}

// clearDefault unsets the default flag of every schema but keep.
func (f *PricingSchemaFlowImpl) clearDefault(ctx context.Context, keep uint) error {
	current, err := f.schemaRepo.ByFilter(ctx, models.PricingSchemaFilter{IsDefault: utils.ToPtr(true)}, "", 0, 0)
	if err != nil {
		return NewBusinessError("PRICING_SCHEMA_LIST_FAILED", "Failed to list default schemas", err)
	}
	for _, s := range current {
		if s.ID == keep {
			continue
		}
		s.IsDefault = false
		if err := f.schemaRepo.Update(ctx, s); err != nil {
			return NewBusinessError("PRICING_SCHEMA_UPDATE_FAILED", "Failed to clear default schema", err)
		}
	}
	return nil
}

func (f *PricingSchemaFlowImpl) CreateSchema(ctx context.Context, req *dto.CreatePricingSchemaRequest) (*dto.PricingSchemaResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, newValidationError("name", "is required")
	}

	schema := &models.PricingSchema{
		Name:        name,
		Description: req.Description,
		IsDefault:   req.IsDefault,
		IsActive:    utils.ToPtr(true),
	}
	err := repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.schemaRepo.Save(txCtx, schema); err != nil {
			return NewBusinessError("PRICING_SCHEMA_SAVE_FAILED", "Failed to save pricing schema", err)
		}
		if schema.IsDefault {
			return f.clearDefault(txCtx, schema.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := toPricingSchemaResponse(schema)
	return &res, nil
}

func (f *PricingSchemaFlowImpl) UpdateSchema(ctx context.Context, id uint, req *dto.UpdatePricingSchemaRequest) (*dto.PricingSchemaResponse, error) {
	var schema *models.PricingSchema
	err := repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		var err error
		schema, err = f.schemaRepo.ByID(txCtx, id)
		if err != nil {
			return NewBusinessError("PRICING_SCHEMA_LOOKUP_FAILED", "Failed to load pricing schema", err)
		}
		if schema == nil {
			return ErrPricingSchemaNotFound
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return newValidationError("name", "must not be empty")
			}
			schema.Name = name
		}
		if req.Description != nil {
			schema.Description = req.Description
		}
		if req.IsActive != nil {
			schema.IsActive = utils.ToPtr(*req.IsActive)
		}
		if req.IsDefault != nil {
			schema.IsDefault = *req.IsDefault
		}

		if err := f.schemaRepo.Update(txCtx, schema); err != nil {
			return NewBusinessError("PRICING_SCHEMA_UPDATE_FAILED", "Failed to update pricing schema", err)
		}
		if schema.IsDefault {
			return f.clearDefault(txCtx, schema.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := toPricingSchemaResponse(schema)
	return &res, nil
}

func (f *PricingSchemaFlowImpl) DeleteSchema(ctx context.Context, id uint) error {
	deleted, err := f.schemaRepo.Delete(ctx, id)
	if err != nil {
		return NewBusinessError("PRICING_SCHEMA_DELETE_FAILED", "Failed to delete pricing schema", err)
	}
	if !deleted {
		return ErrPricingSchemaNotFound
	}
	return nil
}

func (f *PricingSchemaFlowImpl) EnsureDefault(ctx context.Context, id uint) error {
	if id == 0 {
		return nil
	}
	inserted, err := f.schemaRepo.EnsureWithID(ctx, &models.PricingSchema{
		ID:        id,
		Name:      defaultSchemaName,
		IsDefault: true,
		IsActive:  utils.ToPtr(true),
	})
	if err != nil {
		return NewBusinessError("PRICING_SCHEMA_SAVE_FAILED", "Failed to ensure default pricing schema", err)
	}
	if inserted {
		f.logger.Info("Default pricing schema created", zap.Uint("pricing_schema_id", id))
	}
	return nil
}
