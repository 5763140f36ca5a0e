package businessflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amirphl/ppp-rental/app/dto"
	"github.com/amirphl/ppp-rental/models"
	"github.com/amirphl/ppp-rental/pricing"
	"github.com/amirphl/ppp-rental/repository"
	"github.com/amirphl/ppp-rental/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EquipmentFlow manages the rental catalog: categories, equipment, price
// tiers, extras and service configuration
type EquipmentFlow interface {
	ListCategories(ctx context.Context) (*dto.ListCategoriesResponse, error)
	CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id uint) error

	ListEquipment(ctx context.Context, active bool) (*dto.ListEquipmentResponse, error)
	GetEquipment(ctx context.Context, id uint) (*dto.EquipmentResponse, error)
	CreateEquipment(ctx context.Context, req *dto.EquipmentRequest) (*dto.EquipmentResponse, error)
	UpdateEquipment(ctx context.Context, id uint, req *dto.EquipmentRequest) (*dto.EquipmentResponse, error)
	UpdateQuantity(ctx context.Context, id uint, req *dto.UpdateEquipmentQuantityRequest) (*dto.EquipmentResponse, error)
	DeactivateEquipment(ctx context.Context, id uint) error
	DeleteEquipment(ctx context.Context, id uint) error

	CreateTier(ctx context.Context, req *dto.CreatePricingTierRequest) (*dto.PricingTierResponse, error)
	UpdateTier(ctx context.Context, id uint, req *dto.UpdatePricingTierRequest) (*dto.PricingTierResponse, error)
	DeleteTier(ctx context.Context, id uint) error

	ListAdditional(ctx context.Context, equipmentID uint) (*dto.ListAdditionalResponse, error)
	CreateAdditional(ctx context.Context, req *dto.CreateAdditionalRequest) (*dto.AdditionalResponse, error)
	UpdateAdditional(ctx context.Context, id uint, req *dto.UpdateAdditionalRequest) (*dto.AdditionalResponse, error)
	DeleteAdditional(ctx context.Context, id uint) error

	ListServiceItems(ctx context.Context, equipmentID uint) (*dto.ListServiceItemsResponse, error)
	CreateServiceItem(ctx context.Context, equipmentID uint, req *dto.ServiceItemRequest) (*dto.ServiceItemResponse, error)
	UpdateServiceItem(ctx context.Context, id uint, req *dto.ServiceItemRequest) (*dto.ServiceItemResponse, error)
	DeleteServiceItem(ctx context.Context, id uint) error

	GetServiceCosts(ctx context.Context, equipmentID uint) (*dto.ServiceCostsResponse, error)
	UpsertServiceCosts(ctx context.Context, equipmentID uint, req *dto.UpsertServiceCostsRequest) (*dto.ServiceCostsResponse, error)
}

// CatalogRepos groups the catalog repositories
type CatalogRepos struct {
	Categories   repository.EquipmentCategoryRepository
	Equipment    repository.EquipmentRepository
	Pricing      repository.EquipmentPricingRepository
	Additional   repository.EquipmentAdditionalRepository
	ServiceItems repository.EquipmentServiceItemRepository
	ServiceCosts repository.EquipmentServiceCostsRepository
	QuoteItems   repository.QuoteItemRepository
}

type EquipmentFlowImpl struct {
	db     *gorm.DB
	repos  CatalogRepos
	cache  CatalogCache
	logger *zap.Logger
}

func NewEquipmentFlow(db *gorm.DB, repos CatalogRepos, cache CatalogCache, logger *zap.Logger) EquipmentFlow {
	if cache == nil {
		cache = NoopCatalogCache{}
	}
	return &EquipmentFlowImpl{db: db, repos: repos, cache: cache, logger: loggerOrNop(logger)}
}

// invalidate drops the cached public listing after a catalog write.
func (f *EquipmentFlowImpl) invalidate(ctx context.Context) {
	if err := f.cache.Invalidate(ctx); err != nil {
		f.logger.Warn("Failed to invalidate catalog cache", append(requestFields(ctx), zap.Error(err))...)
	}
}

func (f *EquipmentFlowImpl) ListCategories(ctx context.Context) (*dto.ListCategoriesResponse, error) {
	rows, err := f.repos.Categories.ByFilter(ctx, models.EquipmentCategoryFilter{}, "name ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_LIST_FAILED", "Failed to list categories", err)
	}
	items := make([]dto.CategoryResponse, 0, len(rows))
	for _, c := range rows {
		items = append(items, toCategoryResponse(c))
	}
	return &dto.ListCategoriesResponse{Message: "Categories retrieved successfully", Items: items}, nil
}

func (f *EquipmentFlowImpl) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, newValidationError("name", "is required")
	}

	existing, err := f.repos.Categories.ByName(ctx, name)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_LOOKUP_FAILED", "Failed to look up category", err)
	}
	if existing != nil {
		return nil, ErrCategoryAlreadyExists
	}

	category := &models.EquipmentCategory{Name: name, Description: req.Description}
	if err := f.repos.Categories.Save(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryAlreadyExists
		}
		return nil, NewBusinessError("CATEGORY_SAVE_FAILED", "Failed to save category", err)
	}

	res := toCategoryResponse(category)
	return &res, nil
}

func (f *EquipmentFlowImpl) DeleteCategory(ctx context.Context, id uint) error {
	deleted, err := f.repos.Categories.Delete(ctx, id)
	if err != nil {
		return NewBusinessError("CATEGORY_DELETE_FAILED", "Failed to delete category", err)
	}
	if !deleted {
		return ErrCategoryNotFound
	}
	f.invalidate(ctx)
	return nil
}

func (f *EquipmentFlowImpl) ListEquipment(ctx context.Context, active bool) (*dto.ListEquipmentResponse, error) {
	rows, err := f.repos.Equipment.ListWithDetails(ctx, active)
	if err != nil {
		return nil, NewBusinessError("EQUIPMENT_LIST_FAILED", "Failed to list equipment", err)
	}
	items := make([]dto.EquipmentResponse, 0, len(rows))
	for _, e := range rows {
		items = append(items, toEquipmentResponse(e))
	}
	return &dto.ListEquipmentResponse{Message: "Equipment retrieved successfully", Items: items}, nil
}

func (f *EquipmentFlowImpl) GetEquipment(ctx context.Context, id uint) (*dto.EquipmentResponse, error) {
	equipment, err := f.repos.Equipment.ByIDWithDetails(ctx, id)
	if err != nil {
		return nil, NewBusinessError("EQUIPMENT_LOOKUP_FAILED", "Failed to load equipment", err)
	}
	if equipment == nil {
		return nil, ErrEquipmentNotFound
	}
	res := toEquipmentResponse(equipment)
	return &res, nil
}

func validateQuantities(quantity, available int) error {
	v := map[string]string{}
	if quantity < 0 {
		v["quantity"] = "must not be negative"
	}
	if available < 0 {
		v["available_quantity"] = "must not be negative"
	}
	if len(v) > 0 {
		ve := &pricing.ValidationError{Fields: v}
		return NewBusinessError("VALIDATION_ERROR", "Validation failed", ve)
	}
	if available > quantity {
		return NewBusinessError("VALIDATION_ERROR", "Validation failed",
			fmt.Errorf("%w: %w", ErrQuantityExceedsTotal, pricing.NewValidationError("available_quantity", ErrQuantityExceedsTotal.Error())))
	}
	return nil
}

func (f *EquipmentFlowImpl) checkCategory(ctx context.Context, id uint) error {
	category, err := f.repos.Categories.ByID(ctx, id)
	if err != nil {
		return NewBusinessError("CATEGORY_LOOKUP_FAILED", "Failed to load category", err)
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return nil
}

func applyEquipmentRequest(e *models.Equipment, req *dto.EquipmentRequest) {
	e.Name = strings.TrimSpace(req.Name)
	e.Description = req.Description
	e.Model = strings.TrimSpace(req.Model)
	e.Power = req.Power
	e.CategoryID = req.CategoryID
	e.Quantity = req.Quantity
	e.AvailableQuantity = req.AvailableQuantity
	e.FuelConsumption75 = req.FuelConsumption75
	e.Dimensions = req.Dimensions
	e.Weight = req.Weight
	e.Engine = req.Engine
	e.Alternator = req.Alternator
	e.FuelTankCapacity = req.FuelTankCapacity
	e.ImageURL = req.ImageURL
}

// CreateEquipment stores the equipment with the placeholder tier [1, ∞) @ 100.00.
func (f *EquipmentFlowImpl) CreateEquipment(ctx context.Context, req *dto.EquipmentRequest) (*dto.EquipmentResponse, error) {
	if err := validateQuantities(req.Quantity, req.AvailableQuantity); err != nil {
		return nil, err
	}

	var id uint
	err := repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.checkCategory(txCtx, req.CategoryID); err != nil {
			return err
		}

		equipment := &models.Equipment{IsActive: utils.ToPtr(true)}
		applyEquipmentRequest(equipment, req)
		if err := f.repos.Equipment.Save(txCtx, equipment); err != nil {
			return NewBusinessError("EQUIPMENT_SAVE_FAILED", "Failed to save equipment", err)
		}

		tier := &models.EquipmentPricing{
			EquipmentID:     equipment.ID,
			PeriodStart:     1,
			PricePerDay:     utils.DefaultTierPricePerDay,
			DiscountPercent: 0,
		}
		if err := f.repos.Pricing.Save(txCtx, tier); err != nil {
			return NewBusinessError("PRICING_TIER_SAVE_FAILED", "Failed to save default tier", err)
		}
		id = equipment.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	f.invalidate(ctx)
	f.logger.Info("Equipment created", append(requestFields(ctx), zap.Uint("equipment_id", id), zap.String("name", req.Name))...)
	return f.GetEquipment(ctx, id)
}

func (f *EquipmentFlowImpl) UpdateEquipment(ctx context.Context, id uint, req *dto.EquipmentRequest) (*dto.EquipmentResponse, error) {
	if err := validateQuantities(req.Quantity, req.AvailableQuantity); err != nil {
		return nil, err
	}

	err := repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		equipment, err := f.repos.Equipment.ByID(txCtx, id)
		if err != nil {
			return NewBusinessError("EQUIPMENT_LOOKUP_FAILED", "Failed to load equipment", err)
		}
		if equipment == nil {
			return ErrEquipmentNotFound
		}
		if err := f.checkCategory(txCtx, req.CategoryID); err != nil {
			return err
		}

		applyEquipmentRequest(equipment, req)
		if err := f.repos.Equipment.Update(txCtx, equipment); err != nil {
			return NewBusinessError("EQUIPMENT_UPDATE_FAILED", "Failed to update equipment", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	f.invalidate(ctx)
	return f.GetEquipment(ctx, id)
}

func (f *EquipmentFlowImpl) UpdateQuantity(ctx context.Context, id uint, req *dto.UpdateEquipmentQuantityRequest) (*dto.EquipmentResponse, error) {
	if err := validateQuantities(req.Quantity, req.AvailableQuantity); err != nil {
		return nil, err
	}

	equipment, err := f.repos.Equipment.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("EQUIPMENT_LOOKUP_FAILED", "Failed to load equipment", err)
	}
	if equipment == nil {
		return nil, ErrEquipmentNotFound
	}
	if err := f.repos.Equipment.UpdateQuantities(ctx, id, req.Quantity, req.AvailableQuantity); err != nil {
		return nil, NewBusinessError("EQUIPMENT_UPDATE_FAILED", "Failed to update quantities", err)
	}

	f.invalidate(ctx)
	return f.GetEquipment(ctx, id)
}

func (f *EquipmentFlowImpl) DeactivateEquipment(ctx context.Context, id uint) error {
	equipment, err := f.repos.Equipment.ByID(ctx, id)
	if err != nil {
		return NewBusinessError("EQUIPMENT_LOOKUP_FAILED", "Failed to load equipment", err)
	}
	if equipment == nil {
		return ErrEquipmentNotFound
	}
	if err := f.repos.Equipment.SetActive(ctx, id, false); err != nil {
		return NewBusinessError("EQUIPMENT_UPDATE_FAILED", "Failed to deactivate equipment", err)
	}
	f.invalidate(ctx)
	return nil
}

// DeleteEquipment removes the equipment and its catalog rows. Equipment that
// quote items still reference can only be deactivated.
func (f *EquipmentFlowImpl) DeleteEquipment(ctx context.Context, id uint) error {
	err := repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		inUse, err := f.repos.QuoteItems.Exists(txCtx, models.QuoteItemFilter{EquipmentID: &id})
		if err != nil {
			return NewBusinessError("QUOTE_ITEM_LOOKUP_FAILED", "Failed to check quote items", err)
		}
		if inUse {
			return ErrEquipmentInUse
		}

		deleted, err := f.repos.Equipment.DeleteWithCatalog(txCtx, id)
		if err != nil {
			return NewBusinessError("EQUIPMENT_DELETE_FAILED", "Failed to delete equipment", err)
		}
		if !deleted {
			return ErrEquipmentNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	f.invalidate(ctx)
	f.logger.Info("Equipment deleted", append(requestFields(ctx), zap.Uint("equipment_id", id))...)
	return nil
}

func (f *EquipmentFlowImpl) existingEquipment(ctx context.Context, id uint) error {
	equipment, err := f.repos.Equipment.ByID(ctx, id)
	if err != nil {
		return NewBusinessError("EQUIPMENT_LOOKUP_FAILED", "Failed to load equipment", err)
	}
	if equipment == nil {
		return ErrEquipmentNotFound
	}
	return nil
}

func (f *EquipmentFlowImpl) CreateTier(ctx context.Context, req *dto.CreatePricingTierRequest) (*dto.PricingTierResponse, error) {
	v := map[string]string{}
	if req.PeriodStart < 1 {
		v["period_start"] = "must be at least 1"
	}
	if req.PeriodEnd != nil && *req.PeriodEnd < req.PeriodStart {
		v["period_end"] = "must not be before period_start"
	}
	if req.PricePerDay < 0 {
		v["price_per_day"] = "must not be negative"
	}
	if req.DiscountPercent < 0 || req.DiscountPercent > 100 {
		v["discount_percent"] = "must be between 0 and 100"
	}
	if len(v) > 0 {
		return nil, NewBusinessError("VALIDATION_ERROR", "Validation failed", &pricing.ValidationError{Fields: v})
	}

	if err := f.existingEquipment(ctx, req.EquipmentID); err != nil {
		return nil, err
	}

	tier := &models.EquipmentPricing{
		EquipmentID:     req.EquipmentID,
		PeriodStart:     req.PeriodStart,
		PeriodEnd:       req.PeriodEnd,
		PricePerDay:     utils.RoundMoney(req.PricePerDay),
		DiscountPercent: req.DiscountPercent,
	}
	if err := f.repos.Pricing.Save(ctx, tier); err != nil {
		return nil, NewBusinessError("PRICING_TIER_SAVE_FAILED", "Failed to save pricing tier", err)
	}

	f.invalidate(ctx)
	res := toPricingTierResponse(*tier)
	return &res, nil
}

func (f *EquipmentFlowImpl) UpdateTier(ctx context.Context, id uint, req *dto.UpdatePricingTierRequest) (*dto.PricingTierResponse, error) {
	tier, err := f.repos.Pricing.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("PRICING_TIER_LOOKUP_FAILED", "Failed to load pricing tier", err)
	}
	if tier == nil {
		return nil, ErrPricingTierNotFound
	}

	if req.PricePerDay != nil {
		if *req.PricePerDay < 0 {
			return nil, newValidationError("price_per_day", "must not be negative")
		}
		tier.PricePerDay = utils.RoundMoney(*req.PricePerDay)
	}
	if req.DiscountPercent != nil {
		if *req.DiscountPercent < 0 || *req.DiscountPercent > 100 {
			return nil, newValidationError("discount_percent", "must be between 0 and 100")
		}
		tier.DiscountPercent = *req.DiscountPercent
	}

	if err := f.repos.Pricing.Update(ctx, tier); err != nil {
		return nil, NewBusinessError("PRICING_TIER_UPDATE_FAILED", "Failed to update pricing tier", err)
	}

	f.invalidate(ctx)
	res := toPricingTierResponse(*tier)
	return &res, nil
}

func (f *EquipmentFlowImpl) DeleteTier(ctx context.Context, id uint) error {
	deleted, err := f.repos.Pricing.Delete(ctx, id)
	if err != nil {
		return NewBusinessError("PRICING_TIER_DELETE_FAILED", "Failed to delete pricing tier", err)
	}
	if !deleted {
		return ErrPricingTierNotFound
	}
	f.invalidate(ctx)
	return nil
}

// ListAdditional lists both kinds of extras; equipment without any gets the
// placeholder additional row first.
func (f *EquipmentFlowImpl) ListAdditional(ctx context.Context, equipmentID uint) (*dto.ListAdditionalResponse, error) {
	var rows []*models.EquipmentAdditional
	err := repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.existingEquipment(txCtx, equipmentID); err != nil {
			return err
		}

		var err error
		rows, err = f.repos.Additional.ListByEquipment(txCtx, equipmentID, "")
		if err != nil {
			return NewBusinessError("EQUIPMENT_ADDITIONAL_LIST_FAILED", "Failed to list extras", err)
		}
		if len(rows) > 0 {
			return nil
		}

		placeholder := &models.EquipmentAdditional{
			EquipmentID: equipmentID,
			Type:        models.AdditionalTypeAdditional,
			Name:        utils.DefaultAdditionalName,
			Price:       0,
			Position:    1,
		}
		if err := f.repos.Additional.Save(txCtx, placeholder); err != nil {
			return NewBusinessError("EQUIPMENT_ADDITIONAL_SAVE_FAILED", "Failed to create default extra", err)
		}
		rows = []*models.EquipmentAdditional{placeholder}
		return nil
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.AdditionalResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, toAdditionalResponse(r))
	}
	return &dto.ListAdditionalResponse{Message: "Additional equipment retrieved successfully", Items: items}, nil
}

func (f *EquipmentFlowImpl) CreateAdditional(ctx context.Context, req *dto.CreateAdditionalRequest) (*dto.AdditionalResponse, error) {
	if req.Type != models.AdditionalTypeAdditional && req.Type != models.AdditionalTypeAccessories {
		return nil, newValidationError("type", "must be additional or accessories")
	}
	if req.Price < 0 {
		return nil, newValidationError("price", "must not be negative")
	}
	if err := f.existingEquipment(ctx, req.EquipmentID); err != nil {
		return nil, err
	}

	position := req.Position
	if position == 0 {
		position = 1
	}
	row := &models.EquipmentAdditional{
		EquipmentID: req.EquipmentID,
		Type:        req.Type,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       utils.RoundMoney(req.Price),
		Position:    position,
	}
	if err := f.repos.Additional.Save(ctx, row); err != nil {
		return nil, NewBusinessError("EQUIPMENT_ADDITIONAL_SAVE_FAILED", "Failed to save extra", err)
	}

	res := toAdditionalResponse(row)
	return &res, nil
}

func (f *EquipmentFlowImpl) UpdateAdditional(ctx context.Context, id uint, req *dto.UpdateAdditionalRequest) (*dto.AdditionalResponse, error) {
	row, err := f.repos.Additional.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("EQUIPMENT_ADDITIONAL_LOOKUP_FAILED", "Failed to load extra", err)
	}
	if row == nil {
		return nil, ErrEquipmentAdditionalNotFound
	}

	if req.Name != nil {
		row.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		row.Description = req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, newValidationError("price", "must not be negative")
		}
		row.Price = utils.RoundMoney(*req.Price)
	}
	if req.Position != nil {
		row.Position = *req.Position
	}

	if err := f.repos.Additional.Update(ctx, row); err != nil {
		return nil, NewBusinessError("EQUIPMENT_ADDITIONAL_UPDATE_FAILED", "Failed to update extra", err)
	}
	res := toAdditionalResponse(row)
	return &res, nil
}

func (f *EquipmentFlowImpl) DeleteAdditional(ctx context.Context, id uint) error {
	deleted, err := f.repos.Additional.Delete(ctx, id)
	if err != nil {
		return NewBusinessError("EQUIPMENT_ADDITIONAL_DELETE_FAILED", "Failed to delete extra", err)
	}
	if !deleted {
		return ErrEquipmentAdditionalNotFound
	}
	return nil
}

func (f *EquipmentFlowImpl) ListServiceItems(ctx context.Context, equipmentID uint) (*dto.ListServiceItemsResponse, error) {
	if err := f.existingEquipment(ctx, equipmentID); err != nil {
		return nil, err
	}
	rows, err := f.repos.ServiceItems.ListByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, NewBusinessError("SERVICE_ITEMS_LIST_FAILED", "Failed to list service items", err)
	}
	items := make([]dto.ServiceItemResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, toServiceItemResponse(r))
	}
	return &dto.ListServiceItemsResponse{Message: "Service items retrieved successfully", Items: items}, nil
}

func (f *EquipmentFlowImpl) CreateServiceItem(ctx context.Context, equipmentID uint, req *dto.ServiceItemRequest) (*dto.ServiceItemResponse, error) {
	if req.ItemCost < 0 {
		return nil, newValidationError("item_cost", "must not be negative")
	}
	if err := f.existingEquipment(ctx, equipmentID); err != nil {
		return nil, err
	}

	item := &models.EquipmentServiceItem{
		EquipmentID:     equipmentID,
		ItemName:        strings.TrimSpace(req.ItemName),
		ItemDescription: req.ItemDescription,
		ItemCost:        utils.RoundMoney(req.ItemCost),
		SortOrder:       req.SortOrder,
	}
	if err := f.repos.ServiceItems.Save(ctx, item); err != nil {
		return nil, NewBusinessError("SERVICE_ITEM_SAVE_FAILED", "Failed to save service item", err)
	}
	res := toServiceItemResponse(item)
	return &res, nil
}

func (f *EquipmentFlowImpl) UpdateServiceItem(ctx context.Context, id uint, req *dto.ServiceItemRequest) (*dto.ServiceItemResponse, error) {
	if req.ItemCost < 0 {
		return nil, newValidationError("item_cost", "must not be negative")
	}
	item, err := f.repos.ServiceItems.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("SERVICE_ITEM_LOOKUP_FAILED", "Failed to load service item", err)
	}
	if item == nil {
		return nil, ErrServiceItemNotFound
	}

	item.ItemName = strings.TrimSpace(req.ItemName)
	item.ItemDescription = req.ItemDescription
	item.ItemCost = utils.RoundMoney(req.ItemCost)
	item.SortOrder = req.SortOrder
	if err := f.repos.ServiceItems.Update(ctx, item); err != nil {
		return nil, NewBusinessError("SERVICE_ITEM_UPDATE_FAILED", "Failed to update service item", err)
	}
	res := toServiceItemResponse(item)
	return &res, nil
}

func (f *EquipmentFlowImpl) DeleteServiceItem(ctx context.Context, id uint) error {
	deleted, err := f.repos.ServiceItems.Delete(ctx, id)
	if err != nil {
		return NewBusinessError("SERVICE_ITEM_DELETE_FAILED", "Failed to delete service item", err)
	}
	if !deleted {
		return ErrServiceItemNotFound
	}
	return nil
}

func (f *EquipmentFlowImpl) GetServiceCosts(ctx context.Context, equipmentID uint) (*dto.ServiceCostsResponse, error) {
	costs, err := f.repos.ServiceCosts.ByEquipmentID(ctx, equipmentID)
	if err != nil {
		return nil, NewBusinessError("SERVICE_COSTS_LOOKUP_FAILED", "Failed to load service costs", err)
	}
	if costs == nil {
		return nil, ErrServiceCostsNotFound
	}
	res := toServiceCostsResponse(costs)
	return &res, nil
}

func (f *EquipmentFlowImpl) UpsertServiceCosts(ctx context.Context, equipmentID uint, req *dto.UpsertServiceCostsRequest) (*dto.ServiceCostsResponse, error) {
	if err := f.existingEquipment(ctx, equipmentID); err != nil {
		return nil, err
	}

	costs := &models.EquipmentServiceCosts{
		EquipmentID:           equipmentID,
		ServiceIntervalMonths: req.ServiceIntervalMonths,
		WorkerHours:           req.WorkerHours,
		WorkerCostPerHour:     utils.RoundMoney(req.WorkerCostPerHour),
		TravelDistanceKm:      req.TravelDistanceKm,
		TravelRatePerKm:       req.TravelRatePerKm,
	}
	if err := f.repos.ServiceCosts.Upsert(ctx, costs); err != nil {
		return nil, NewBusinessError("SERVICE_COSTS_SAVE_FAILED", "Failed to save service costs", err)
	}
	return f.GetServiceCosts(ctx, equipmentID)
}
