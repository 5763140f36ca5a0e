package handlers

import (
	"github.com/amirphl/ppp-rental/app/dto"
	businessflow "github.com/amirphl/ppp-rental/business_flow"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// EquipmentHandlerInterface defines the contract for catalog handlers
type EquipmentHandlerInterface interface {
	ListCategories(c fiber.Ctx) error
	CreateCategory(c fiber.Ctx) error
	DeleteCategory(c fiber.Ctx) error

	ListEquipment(c fiber.Ctx) error
	ListInactiveEquipment(c fiber.Ctx) error
	GetEquipment(c fiber.Ctx) error
	CreateEquipment(c fiber.Ctx) error
	UpdateEquipment(c fiber.Ctx) error
	UpdateQuantity(c fiber.Ctx) error
	DeactivateEquipment(c fiber.Ctx) error
	DeleteEquipment(c fiber.Ctx) error

	CreateTier(c fiber.Ctx) error
	UpdateTier(c fiber.Ctx) error
	DeleteTier(c fiber.Ctx) error

	ListAdditional(c fiber.Ctx) error
	CreateAdditional(c fiber.Ctx) error
	UpdateAdditional(c fiber.Ctx) error
	DeleteAdditional(c fiber.Ctx) error

	ListServiceItems(c fiber.Ctx) error
	CreateServiceItem(c fiber.Ctx) error
	UpdateServiceItem(c fiber.Ctx) error
	DeleteServiceItem(c fiber.Ctx) error
	GetServiceCosts(c fiber.Ctx) error
	UpsertServiceCosts(c fiber.Ctx) error
}

// EquipmentHandler handles the rental catalog HTTP requests
type EquipmentHandler struct {
	baseHandler
	flow businessflow.EquipmentFlow
}

// NewEquipmentHandler creates a new equipment handler
func NewEquipmentHandler(flow businessflow.EquipmentFlow, logger *zap.Logger) *EquipmentHandler {
	return &EquipmentHandler{baseHandler: newBaseHandler(logger), flow: flow}
}

// ListCategories
// @Summary List equipment categories
// @Tags Equipment
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListCategoriesResponse}
// @Router /api/v1/equipment-categories [get]
func (h *EquipmentHandler) ListCategories(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment-categories")
	defer cancel()

	res, err := h.flow.ListCategories(ctx)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to list categories", "LIST_CATEGORIES_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Categories retrieved successfully", res)
}

// CreateCategory
// @Summary Create equipment category
// @Tags Equipment
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} dto.APIResponse{data=dto.CategoryResponse}
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 409 {object} dto.APIResponse "Category already exists"
// @Router /api/v1/equipment-categories [post]
func (h *EquipmentHandler) CreateCategory(c fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment-categories")
	defer cancel()

	res, err := h.flow.CreateCategory(ctx, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to create category", "CREATE_CATEGORY_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Category created successfully", res)
}

// DeleteCategory
// @Summary Delete equipment category
// @Tags Equipment
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "Category not found"
// @Router /api/v1/equipment-categories/{id} [delete]
func (h *EquipmentHandler) DeleteCategory(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment-categories/:id")
	defer cancel()

	if err := h.flow.DeleteCategory(ctx, id); err != nil {
		return h.handleFlowError(c, err, "Failed to delete category", "DELETE_CATEGORY_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Category deleted successfully", nil)
}

// ListEquipment
// @Summary List active equipment with category and pricing tiers
// @Tags Equipment
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListEquipmentResponse}
// @Router /api/v1/equipment [get]
func (h *EquipmentHandler) ListEquipment(c fiber.Ctx) error {
	return h.listEquipment(c, true, "/api/v1/equipment")
}

// ListInactiveEquipment
// @Summary List deactivated equipment
// @Tags Equipment
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListEquipmentResponse}
// @Router /api/v1/equipment/inactive [get]
func (h *EquipmentHandler) ListInactiveEquipment(c fiber.Ctx) error {
	return h.listEquipment(c, false, "/api/v1/equipment/inactive")
}

func (h *EquipmentHandler) listEquipment(c fiber.Ctx, active bool, endpoint string) error {
	ctx, cancel := h.createRequestContext(c, endpoint)
	defer cancel()

	res, err := h.flow.ListEquipment(ctx, active)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to list equipment", "LIST_EQUIPMENT_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Equipment retrieved successfully", res)
}

// GetEquipment
// @Summary Get equipment by id
// @Tags Equipment
// @Param id path int true "Equipment ID"
// @Success 200 {object} dto.APIResponse{data=dto.EquipmentResponse}
// @Failure 404 {object} dto.APIResponse "Equipment not found"
// @Router /api/v1/equipment/{id} [get]
func (h *EquipmentHandler) GetEquipment(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment/:id")
	defer cancel()

	res, err := h.flow.GetEquipment(ctx, id)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to get equipment", "GET_EQUIPMENT_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Equipment retrieved successfully", res)
}

// CreateEquipment
// @Summary Create equipment
// @Description Creates the equipment with a default open ended pricing tier
// @Tags Equipment
// @Accept json
// @Produce json
// @Param request body dto.EquipmentRequest true "Equipment"
// @Success 201 {object} dto.APIResponse{data=dto.EquipmentResponse}
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /api/v1/equipment [post]
func (h *EquipmentHandler) CreateEquipment(c fiber.Ctx) error {
	var req dto.EquipmentRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment")
	defer cancel()

	res, err := h.flow.CreateEquipment(ctx, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to create equipment", "CREATE_EQUIPMENT_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Equipment created successfully", res)
}

// UpdateEquipment
// @Summary Update equipment
// @Tags Equipment
// @Accept json
// @Param id path int true "Equipment ID"
// @Param request body dto.EquipmentRequest true "Equipment"
// @Success 200 {object} dto.APIResponse{data=dto.EquipmentResponse}
// @Router /api/v1/equipment/{id} [put]
func (h *EquipmentHandler) UpdateEquipment(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}
	var req dto.EquipmentRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment/:id")
	defer cancel()

	res, err := h.flow.UpdateEquipment(ctx, id, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to update equipment", "UPDATE_EQUIPMENT_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Equipment updated successfully", res)
}

// UpdateQuantity
// @Summary Update total and available quantity
// @Tags Equipment
// @Accept json
// @Param id path int true "Equipment ID"
// @Param request body dto.UpdateEquipmentQuantityRequest true "Quantities"
// @Success 200 {object} dto.APIResponse{data=dto.EquipmentResponse}
// @Failure 400 {object} dto.APIResponse "Available quantity exceeds total"
// @Router /api/v1/equipment/{id}/quantity [patch]
func (h *EquipmentHandler) UpdateQuantity(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}
	var req dto.UpdateEquipmentQuantityRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment/:id/quantity")
	defer cancel()

	res, err := h.flow.UpdateQuantity(ctx, id, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to update quantity", "UPDATE_QUANTITY_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Quantity updated successfully", res)
}

// DeactivateEquipment
// @Summary Deactivate equipment
// @Tags Equipment
// @Param id path int true "Equipment ID"
// @Success 200 {object} dto.APIResponse
// @Router /api/v1/equipment/{id} [delete]
func (h *EquipmentHandler) DeactivateEquipment(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment/:id")
	defer cancel()

	if err := h.flow.DeactivateEquipment(ctx, id); err != nil {
		return h.handleFlowError(c, err, "Failed to deactivate equipment", "DEACTIVATE_EQUIPMENT_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Equipment deactivated successfully", nil)
}

// DeleteEquipment
// @Summary Permanently delete equipment
// @Description Removes the equipment with its pricing, additional and service rows. Fails while quotes reference it.
// @Tags Equipment
// @Param id path int true "Equipment ID"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse "Equipment is used by quotes"
// @Router /api/v1/equipment/{id}/permanent [delete]
func (h *EquipmentHandler) DeleteEquipment(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment/:id/permanent")
	defer cancel()

	if err := h.flow.DeleteEquipment(ctx, id); err != nil {
		return h.handleFlowError(c, err, "Failed to delete equipment", "DELETE_EQUIPMENT_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Equipment deleted permanently", nil)
}

// CreateTier
// @Summary Create pricing tier
// @Tags Equipment Pricing
// @Accept json
// @Param request body dto.CreatePricingTierRequest true "Tier"
// @Success 201 {object} dto.APIResponse{data=dto.PricingTierResponse}
// @Router /api/v1/equipment-pricing [post]
func (h *EquipmentHandler) CreateTier(c fiber.Ctx) error {
	var req dto.CreatePricingTierRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment-pricing")
	defer cancel()

	res, err := h.flow.CreateTier(ctx, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to create pricing tier", "CREATE_PRICING_TIER_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Pricing tier created successfully", res)
}

// UpdateTier
// @Summary Update tier price or discount
// @Tags Equipment Pricing
// @Param id path int true "Tier ID"
// @Param request body dto.UpdatePricingTierRequest true "Changes"
// @Success 200 {object} dto.APIResponse{data=dto.PricingTierResponse}
// @Router /api/v1/equipment-pricing/{id} [patch]
func (h *EquipmentHandler) UpdateTier(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}
	var req dto.UpdatePricingTierRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment-pricing/:id")
	defer cancel()

	res, err := h.flow.UpdateTier(ctx, id, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to update pricing tier", "UPDATE_PRICING_TIER_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Pricing tier updated successfully", res)
}

// DeleteTier
// @Summary Delete pricing tier
// @Tags Equipment Pricing
// @Param id path int true "Tier ID"
// @Router /api/v1/equipment-pricing/{id} [delete]
func (h *EquipmentHandler) DeleteTier(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment-pricing/:id")
	defer cancel()

	if err := h.flow.DeleteTier(ctx, id); err != nil {
		return h.handleFlowError(c, err, "Failed to delete pricing tier", "DELETE_PRICING_TIER_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Pricing tier deleted successfully", nil)
}

// ListAdditional
// @Summary List additional equipment and accessories
// @Description Creates a placeholder additional row when the equipment has none
// @Tags Equipment Additional
// @Param id path int true "Equipment ID"
// @Success 200 {object} dto.APIResponse{data=dto.ListAdditionalResponse}
// @Router /api/v1/equipment/{id}/additional [get]
func (h *EquipmentHandler) ListAdditional(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment/:id/additional")
	defer cancel()

	res, err := h.flow.ListAdditional(ctx, id)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to list additional equipment", "LIST_ADDITIONAL_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Additional equipment retrieved successfully", res)
}

// CreateAdditional
// @Summary Create additional equipment or accessory
// @Tags Equipment Additional
// @Param request body dto.CreateAdditionalRequest true "Additional"
// @Success 201 {object} dto.APIResponse{data=dto.AdditionalResponse}
// @Router /api/v1/equipment-additional [post]
func (h *EquipmentHandler) CreateAdditional(c fiber.Ctx) error {
	var req dto.CreateAdditionalRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment-additional")
	defer cancel()

	res, err := h.flow.CreateAdditional(ctx, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to create additional equipment", "CREATE_ADDITIONAL_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Additional equipment created successfully", res)
}

func (h *EquipmentHandler) UpdateAdditional(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}
	var req dto.UpdateAdditionalRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment-additional/:id")
	defer cancel()

	res, err := h.flow.UpdateAdditional(ctx, id, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to update additional equipment", "UPDATE_ADDITIONAL_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Additional equipment updated successfully", res)
}

func (h *EquipmentHandler) DeleteAdditional(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment-additional/:id")
	defer cancel()

	if err := h.flow.DeleteAdditional(ctx, id); err != nil {
		return h.handleFlowError(c, err, "Failed to delete additional equipment", "DELETE_ADDITIONAL_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Additional equipment deleted successfully", nil)
}

// ListServiceItems
// @Summary List the service items of an equipment
// @Tags Equipment Service
// @Param id path int true "Equipment ID"
// @Success 200 {object} dto.APIResponse{data=dto.ListServiceItemsResponse}
// @Router /api/v1/equipment/{id}/service-items [get]
func (h *EquipmentHandler) ListServiceItems(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment/:id/service-items")
	defer cancel()

	res, err := h.flow.ListServiceItems(ctx, id)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to list service items", "LIST_SERVICE_ITEMS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Service items retrieved successfully", res)
}

// CreateServiceItem
// @Summary Create service item
// @Tags Equipment Service
// @Param id path int true "Equipment ID"
// @Param request body dto.ServiceItemRequest true "Service item"
// @Success 201 {object} dto.APIResponse{data=dto.ServiceItemResponse}
// @Router /api/v1/equipment/{id}/service-items [post]
func (h *EquipmentHandler) CreateServiceItem(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}
	var req dto.ServiceItemRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment/:id/service-items")
	defer cancel()

	res, err := h.flow.CreateServiceItem(ctx, id, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to create service item", "CREATE_SERVICE_ITEM_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Service item created successfully", res)
}

func (h *EquipmentHandler) UpdateServiceItem(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}
	var req dto.ServiceItemRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment-service-items/:id")
	defer cancel()

	res, err := h.flow.UpdateServiceItem(ctx, id, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to update service item", "UPDATE_SERVICE_ITEM_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Service item updated successfully", res)
}

func (h *EquipmentHandler) DeleteServiceItem(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment-service-items/:id")
	defer cancel()

	if err := h.flow.DeleteServiceItem(ctx, id); err != nil {
		return h.handleFlowError(c, err, "Failed to delete service item", "DELETE_SERVICE_ITEM_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Service item deleted successfully", nil)
}

// GetServiceCosts
// @Summary Get service cost parameters
// @Tags Equipment Service
// @Param id path int true "Equipment ID"
// @Success 200 {object} dto.APIResponse{data=dto.ServiceCostsResponse}
// @Failure 404 {object} dto.APIResponse "No service costs recorded"
// @Router /api/v1/equipment/{id}/service-costs [get]
func (h *EquipmentHandler) GetServiceCosts(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment/:id/service-costs")
	defer cancel()

	res, err := h.flow.GetServiceCosts(ctx, id)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to get service costs", "GET_SERVICE_COSTS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Service costs retrieved successfully", res)
}

// UpsertServiceCosts
// @Summary Create or replace service cost parameters
// @Tags Equipment Service
// @Param id path int true "Equipment ID"
// @Param request body dto.UpsertServiceCostsRequest true "Service costs"
// @Success 200 {object} dto.APIResponse{data=dto.ServiceCostsResponse}
// @Router /api/v1/equipment/{id}/service-costs [post]
func (h *EquipmentHandler) UpsertServiceCosts(c fiber.Ctx) error {
	id, ok, err := h.paramID(c, "id")
	if !ok {
		return err
	}
	var req dto.UpsertServiceCostsRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/equipment/:id/service-costs")
	defer cancel()

	res, err := h.flow.UpsertServiceCosts(ctx, id, &req)
	if err != nil {
		return h.handleFlowError(c, err, "Failed to save service costs", "UPSERT_SERVICE_COSTS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Service costs saved successfully", res)
}
